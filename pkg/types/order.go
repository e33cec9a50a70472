package types

import "github.com/shopspring/decimal"

// OrderLineItem is one purchased line as the platform reports it back.
type OrderLineItem struct {
	ID           string          `json:"id"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage,omitempty"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Reviewed     bool            `json:"reviewed"`
}

// Order is a placed order looked up by id and email.
type Order struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	Status         string          `json:"status"`
	TrackingNumber string          `json:"trackingNumber,omitempty"`
	Carrier        string          `json:"carrier,omitempty"`
	CreatedAt      string          `json:"createdAt,omitempty"`
	Total          decimal.Decimal `json:"total"`
	Items          []OrderLineItem `json:"items"`
	Shipping       ShippingPayload `json:"shipping"`
}
