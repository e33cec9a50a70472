package types

// ShippingPayload carries the shipping form exactly as the payment endpoint
// expects it. UserName holds the person name, or the company name for
// company accounts.
type ShippingPayload struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Country     string `json:"country" validate:"required"`
	City        string `json:"city" validate:"required"`
	Region      string `json:"region" validate:"required"`
	PostalCode  string `json:"postalCode" validate:"required"`
	UserName    string `json:"userName" validate:"required"`
	CompanyName string `json:"companyName,omitempty"`
}
