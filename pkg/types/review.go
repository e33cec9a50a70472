package types

// ReviewItem rates one line item of an order.
type ReviewItem struct {
	LineItemID string `json:"lineItemId" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment,omitempty"`
}

// ReviewRequest submits reviews for one or more items of a single order.
type ReviewRequest struct {
	OrderID string       `json:"orderId" validate:"required"`
	Items   []ReviewItem `json:"items" validate:"required,min=1,dive"`
}
