package common

import (
	"bookify/src/config"
	"bookify/src/models"
	"bookify/src/types"
	"bookify/src/utils"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	CartItemID    string    `json:"cart_item_id"`
	RoomID        uint      `json:"room_id"`
	RoomNumber    string    `json:"room_number"`
	RoomTypeID    uint      `json:"room_type_id"`
	RoomTypeName  string    `json:"room_type_name"`
	PricePerNight float64   `json:"price_per_night"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Nights        int       `json:"nights"`
	SubTotal      float64   `json:"sub_total"`
	ImageURL      string    `json:"image_url,omitempty"`
}

// Cart is rebuilt from its serialized form on every request and written back
// whole after each mutation.
type Cart struct {
	Items       []CartItem `json:"items"`
	TotalAmount float64    `json:"total_amount"`
	Currency    string     `json:"currency"`
}

func NewCart() *Cart {
	return &Cart{Items: []CartItem{}, Currency: config.DefaultCurrency()}
}

// CartKey scopes a cart to a signed-in user, or else to an anonymous session.
func CartKey(userID uint, sessionID string) string {
	if userID > 0 {
		return fmt.Sprintf("cart:user:%d", userID)
	}
	return fmt.Sprintf("cart:session:%s", sessionID)
}

// ValidateStay rejects empty or inverted ranges and check-ins before today.
func ValidateStay(checkIn, checkOut, today time.Time) error {
	if !utils.DateOf(checkIn).Before(utils.DateOf(checkOut)) {
		return types.ErrInvalidDateRange
	}
	if utils.DateOf(checkIn).Before(utils.DateOf(today)) {
		return types.ErrDateInPast
	}
	return nil
}

// Add appends room for the given stay, priced at the room type's current rate.
func (c *Cart) Add(room *models.Room, checkIn, checkOut, today time.Time) (*CartItem, error) {
	if err := ValidateStay(checkIn, checkOut, today); err != nil {
		return nil, err
	}
	if room == nil || room.RoomType == nil {
		return nil, types.ErrRoomNotFound
	}
	item := CartItem{
		CartItemID:    uuid.NewString(),
		RoomID:        room.ID,
		RoomNumber:    room.RoomNumber,
		RoomTypeID:    room.RoomTypeID,
		RoomTypeName:  room.RoomType.Name,
		PricePerNight: room.RoomType.PricePerNight,
		CheckIn:       utils.DateOf(checkIn),
		CheckOut:      utils.DateOf(checkOut),
		ImageURL:      room.Thumbnail(),
	}
	item.reprice()
	c.Items = append(c.Items, item)
	c.Recalculate()
	return &c.Items[len(c.Items)-1], nil
}

// Remove drops the item with itemID and reports whether it was present.
func (c *Cart) Remove(itemID string) bool {
	for i, item := range c.Items {
		if item.CartItemID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.Recalculate()
			return true
		}
	}
	return false
}

func (c *Cart) Update(itemID string, checkIn, checkOut, today time.Time) error {
	if err := ValidateStay(checkIn, checkOut, today); err != nil {
		return err
	}
	for i := range c.Items {
		if c.Items[i].CartItemID != itemID {
			continue
		}
		c.Items[i].CheckIn = utils.DateOf(checkIn)
		c.Items[i].CheckOut = utils.DateOf(checkOut)
		c.Items[i].reprice()
		c.Recalculate()
		return nil
	}
	return types.ErrCartItemNotFound
}

func (c *Cart) Recalculate() {
	total := 0.0
	for _, item := range c.Items {
		total += item.SubTotal
	}
	c.TotalAmount = utils.RoundMoney(total)
	if c.Currency == "" {
		c.Currency = config.DefaultCurrency()
	}
}

func (c *Cart) Count() int {
	return len(c.Items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (item *CartItem) reprice() {
	item.Nights = utils.NightsBetween(item.CheckIn, item.CheckOut)
	item.SubTotal = utils.RoundMoney(item.PricePerNight * float64(item.Nights))
}
