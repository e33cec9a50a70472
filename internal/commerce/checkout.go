package commerce

import (
	"context"

	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/types"
)

// SubmitCheckout opens a hosted payment session. The platform answers with
// the redirect URL; a session without one is treated as a rejection because
// the buyer has nowhere to go.
func (c *Client) SubmitCheckout(ctx context.Context, req types.CheckoutRequest) (types.CheckoutSession, error) {
	var session types.CheckoutSession
	if err := c.postJSON(ctx, "/payment/checkout", req, &session); err != nil {
		return types.CheckoutSession{}, err
	}
	if session.URL == "" {
		return types.CheckoutSession{}, pkgerrors.New(pkgerrors.CodeRemoteRejected, "checkout session has no redirect url")
	}
	return session, nil
}
