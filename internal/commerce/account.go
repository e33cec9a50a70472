package commerce

import (
	"context"

	"github.com/omega-wallet/storefront-api/pkg/types"
)

type shippingRecord struct {
	Email    string                `json:"email"`
	Shipping types.ShippingPayload `json:"shipping"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type otpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// SaveShipping stores a customer's shipping details keyed by email, so the
// next checkout can prefill the form after verification.
func (c *Client) SaveShipping(ctx context.Context, email string, shipping types.ShippingPayload) error {
	return c.postJSON(ctx, "/user/user-shiping", shippingRecord{Email: email, Shipping: shipping}, nil)
}

// RequestEmailVerification asks the platform to mail a one-time code to the
// address.
func (c *Client) RequestEmailVerification(ctx context.Context, email string) error {
	return c.postJSON(ctx, "/user/email-verification", emailRequest{Email: email}, nil)
}

// VerifyOTP exchanges the mailed code for the stored shipping details.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (types.ShippingPayload, error) {
	var shipping types.ShippingPayload
	if err := c.postJSON(ctx, "/user/shipping-detils", otpRequest{Email: email, OTP: otp}, &shipping); err != nil {
		return types.ShippingPayload{}, err
	}
	return shipping, nil
}

// ShippingDetailsByEmail fetches stored shipping details for an already
// verified address.
func (c *Client) ShippingDetailsByEmail(ctx context.Context, email string) (types.ShippingPayload, error) {
	var shipping types.ShippingPayload
	if err := c.postJSON(ctx, "/user/shipping-details-by-email", emailRequest{Email: email}, &shipping); err != nil {
		return types.ShippingPayload{}, err
	}
	return shipping, nil
}
