package types

import "github.com/shopspring/decimal"

// CheckoutItem is one line of the payment session request.
type CheckoutItem struct {
	ID           string          `json:"id"`
	ProductName  string          `json:"productName"`
	ProductImage *string         `json:"productImage"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
}

// CheckoutRequest is the body posted to the platform's /payment/checkout.
type CheckoutRequest struct {
	UserEmail  string          `json:"userEmail"`
	Shipping   ShippingPayload `json:"shipping"`
	Items      []CheckoutItem  `json:"items"`
	SuccessURL string          `json:"successUrl"`
	CancelURL  string          `json:"cancelUrl"`
	Currency   string          `json:"currency"`
}

// CheckoutSession is the platform's answer: where to send the buyer.
type CheckoutSession struct {
	URL string `json:"url"`
}
