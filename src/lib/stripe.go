package lib

import (
	"bookify/src/config"
	"bookify/src/types"
	"context"
	"strings"

	"github.com/stripe/stripe-go/v82"
)

var stripeClient *stripe.Client

func GetStripeClient() *stripe.Client {
	if stripeClient != nil {
		return stripeClient
	}
	sc := stripe.NewClient(config.StripeSecretKey())
	stripeClient = sc

	return sc
}

func NewStripeClient(c *stripe.Client) {
	stripeClient = c
}

// PaymentGateway hosts the payment page for a checkout.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, input types.CheckoutSessionInput) (*types.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (*types.CheckoutSession, error)
}

type StripeGateway struct {
	client *stripe.Client
}

func NewStripeGateway(c *stripe.Client) *StripeGateway {
	return &StripeGateway{client: c}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, input types.CheckoutSessionInput) (*types.CheckoutSession, error) {
	params := NewCheckoutSessionParams(input)
	cs, err := g.client.V1CheckoutSessions.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	return &types.CheckoutSession{
		ID:            cs.ID,
		URL:           cs.URL,
		PaymentStatus: string(cs.PaymentStatus),
		Metadata:      cs.Metadata,
	}, nil
}

func (g *StripeGateway) GetCheckoutSession(ctx context.Context, id string) (*types.CheckoutSession, error) {
	cs, err := g.client.V1CheckoutSessions.Retrieve(ctx, id, &stripe.CheckoutSessionRetrieveParams{})
	if err != nil {
		return nil, err
	}
	return &types.CheckoutSession{
		ID:            cs.ID,
		URL:           cs.URL,
		PaymentStatus: string(cs.PaymentStatus),
		Metadata:      cs.Metadata,
	}, nil
}

// NewCheckoutSessionParams maps a checkout onto a hosted payment-mode session.
func NewCheckoutSessionParams(input types.CheckoutSessionInput) *stripe.CheckoutSessionCreateParams {
	lineItems := make([]*stripe.CheckoutSessionCreateLineItemParams, 0, len(input.LineItems))
	for _, item := range input.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionCreateLineItemParams{
			PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
				Currency:   stripe.String(strings.ToLower(item.Currency)),
				UnitAmount: stripe.Int64(item.UnitAmount),
				ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
					Name:        stripe.String(item.Name),
					Description: stripe.String(item.Description),
				},
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}
	params := &stripe.CheckoutSessionCreateParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		UIMode:     stripe.String("hosted"),
		SuccessURL: stripe.String(input.SuccessURL),
		CancelURL:  stripe.String(input.CancelURL),
		LineItems:  lineItems,
		Metadata:   input.Metadata,
	}
	if input.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(input.CustomerEmail)
	}
	return params
}
