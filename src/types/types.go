package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at,omitempty"`
}

type StringList []string

func (a StringList) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *StringList) Scan(value any) error {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		*a = StringList{}
		return nil
	default:
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, a)
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type SlugRequestParams struct {
	Slug string `uri:"slug" binding:"required"`
}

type CartItemRequestParams struct {
	ItemID string `uri:"itemId" binding:"required,uuid"`
}

type StayRequestBody struct {
	CheckIn  string `json:"check_in" form:"check_in" binding:"required,staydate"`
	CheckOut string `json:"check_out" form:"check_out" binding:"required,staydate,afterdate=CheckIn"`
}

type AddCartItemRequestBody struct {
	RoomID   uint   `json:"room_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required,staydate"`
	CheckOut string `json:"check_out" binding:"required,staydate,afterdate=CheckIn"`
}

type RoomSearchQuery struct {
	CheckIn       string  `form:"check_in" binding:"omitempty,staydate"`
	CheckOut      string  `form:"check_out" binding:"omitempty,staydate"`
	TypeID        uint    `form:"type_id"`
	PriceMin      float64 `form:"price_min" binding:"gte=0"`
	PriceMax      float64 `form:"price_max" binding:"gte=0"`
	Adults        int     `form:"adults" binding:"gte=0"`
	Children      int     `form:"children" binding:"gte=0"`
	Search        string  `form:"q" binding:"max=100"`
	FavoritesOnly bool    `form:"favorites"`
	Sort          string  `form:"sort" binding:"omitempty,oneof=popular price-asc price-desc rating"`
	Page          int     `form:"page" binding:"gte=0"`
	PageSize      int     `form:"page_size" binding:"gte=0,lte=100"`
}

type CreateFeedbackRequestBody struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required,max=1000"`
}

type FeedbackApprovalRequestBody struct {
	Approved *bool `json:"approved" binding:"required"`
}

type RoomTypeRequestBody struct {
	Name          string   `json:"name" binding:"required,max=100"`
	Description   string   `json:"description" binding:"max=2000"`
	Capacity      int      `json:"capacity" binding:"required,min=1,max=20"`
	PricePerNight float64  `json:"price_per_night" binding:"required,gt=0"`
	Amenities     []string `json:"amenities"`
}

type RoomRequestBody struct {
	RoomNumber string `json:"room_number" binding:"required,max=20"`
	RoomTypeID uint   `json:"room_type_id" binding:"required"`
	Floor      int    `json:"floor"`
	IsActive   *bool  `json:"is_active"`
}

type RoomImageRequestBody struct {
	URL       string `json:"url" binding:"required,url"`
	SortOrder int    `json:"sort_order"`
}

type RoomImageRequestParams struct {
	ID      uint `uri:"id" binding:"required"`
	ImageID uint `uri:"imageId" binding:"required"`
}

type BookingsQueryFilters struct {
	Status string `form:"status" binding:"omitempty,oneof=PendingPayment Confirmed Cancelled Completed"`
	Search string `form:"q" binding:"max=100"`
	Page   int    `form:"page" binding:"gte=0"`
}

type CheckoutSuccessQuery struct {
	SessionID string `form:"session_id" binding:"required"`
}

type CheckoutLineItem struct {
	Name        string
	Description string
	Currency    string
	UnitAmount  int64
	Quantity    int64
}

// CheckoutSessionInput is everything the payment page needs for one cart.
type CheckoutSessionInput struct {
	LineItems     []CheckoutLineItem
	Metadata      map[string]string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url,omitempty"`
	PaymentStatus string            `json:"payment_status,omitempty"`
	Metadata      map[string]string `json:"-"`
}
