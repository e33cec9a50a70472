// Package checkout drives the hand-off from a priced cart to the platform's
// hosted payment page, including the per-session flow state that guards
// against accidental double submission.
package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/omega-wallet/storefront-api/internal/cart"
	"github.com/omega-wallet/storefront-api/pkg/config"
	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/logger"
	"github.com/omega-wallet/storefront-api/pkg/metrics"
	"github.com/omega-wallet/storefront-api/pkg/types"
)

type paymentGateway interface {
	SubmitCheckout(ctx context.Context, req types.CheckoutRequest) (types.CheckoutSession, error)
}

// Service owns the submit path and the post-payment cleanup.
type Service struct {
	cart    cart.Service
	gateway paymentGateway
	flow    *FlowStore
	cfg     config.CheckoutConfig
	stats   *metrics.CheckoutMetrics
	logg    *logger.Logger
}

// NewService wires the checkout bridge.
func NewService(cartSvc cart.Service, gateway paymentGateway, flow *FlowStore, cfg config.CheckoutConfig, stats *metrics.CheckoutMetrics, logg *logger.Logger) (*Service, error) {
	if cartSvc == nil {
		return nil, fmt.Errorf("cart service required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	if flow == nil {
		return nil, fmt.Errorf("flow store required")
	}
	return &Service{cart: cartSvc, gateway: gateway, flow: flow, cfg: cfg, stats: stats, logg: logg}, nil
}

// Quote prices the session's cart for a delivery option.
func (s *Service) Quote(ctx context.Context, sessionID string, method ShippingMethod) (Quote, error) {
	lines, err := s.cart.Lines(ctx, sessionID)
	if err != nil {
		return Quote{}, err
	}
	return QuoteTotals(lines, method), nil
}

// Submit opens a payment session for the cart. The flow slot moves to
// awaiting_redirect before the platform call so a buyer who leaves for the
// payment page is recognized on return. On failure the flow rearms and the
// cart is left exactly as it was; nothing retries.
func (s *Service) Submit(ctx context.Context, sessionID, email string, shipping types.ShippingPayload, method ShippingMethod) (types.CheckoutSession, error) {
	lines, err := s.cart.Lines(ctx, sessionID)
	if err != nil {
		return types.CheckoutSession{}, err
	}
	if len(lines) == 0 {
		return types.CheckoutSession{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	req, err := s.buildRequest(email, shipping, lines)
	if err != nil {
		return types.CheckoutSession{}, err
	}

	s.stats.IncSubmit()
	if err := s.flow.setState(ctx, sessionID, FlowAwaitingRedirect); err != nil {
		return types.CheckoutSession{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist checkout flow")
	}

	session, err := s.gateway.SubmitCheckout(ctx, req)
	if err != nil {
		s.stats.IncFailure(failureReason(err))
		if resetErr := s.flow.setState(ctx, sessionID, FlowIdle); resetErr != nil && s.logg != nil {
			s.logg.Warn(ctx, "rearm checkout flow failed")
		}
		return types.CheckoutSession{}, err
	}

	s.stats.IncRedirect()
	return session, nil
}

// Confirm finalizes a completed payment: the cart and the flow slot are
// dropped so the session starts clean.
func (s *Service) Confirm(ctx context.Context, sessionID string) error {
	if err := s.cart.Clear(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	if err := s.flow.Reset(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reset checkout flow")
	}
	return nil
}

// buildRequest maps cart lines onto the payment session payload. Items are
// charged at the price the drawer displayed; the platform never re-prices.
func (s *Service) buildRequest(email string, shipping types.ShippingPayload, lines []cart.LineItem) (types.CheckoutRequest, error) {
	if strings.TrimSpace(s.cfg.SuccessURL) == "" || strings.TrimSpace(s.cfg.CancelURL) == "" {
		return types.CheckoutRequest{}, pkgerrors.New(pkgerrors.CodeConfigMissing, "checkout redirect urls are not configured")
	}
	currency := s.cfg.Currency
	if currency == "" {
		currency = "eur"
	}

	items := make([]types.CheckoutItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, types.CheckoutItem{
			ID:           line.ProductID,
			ProductName:  checkoutName(line),
			ProductImage: checkoutImage(line),
			Price:        line.DisplayUnitPrice(),
			Quantity:     line.Quantity,
		})
	}
	return types.CheckoutRequest{
		UserEmail:  email,
		Shipping:   shipping,
		Items:      items,
		SuccessURL: s.cfg.SuccessURL,
		CancelURL:  s.cfg.CancelURL,
		Currency:   currency,
	}, nil
}

// checkoutName labels a package line with both the product and the bundle.
func checkoutName(line cart.LineItem) string {
	if line.IsPackage() {
		return fmt.Sprintf("%s (%s)", line.Attributes.Title, line.SelectedPackage.Title)
	}
	return line.Attributes.Title
}

// checkoutImage picks the first https image, preferring the package's own
// gallery. The payment page rejects plain-http assets, so anything else is
// omitted rather than broken.
func checkoutImage(line cart.LineItem) *string {
	if line.IsPackage() {
		if img := firstHTTPS(line.SelectedPackage.Images); img != nil {
			return img
		}
	}
	return firstHTTPS(line.Attributes.Images)
}

func firstHTTPS(images []string) *string {
	for _, img := range images {
		if strings.HasPrefix(img, "https://") {
			return &img
		}
	}
	return nil
}

func failureReason(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		switch typed.Code() {
		case pkgerrors.CodeNetworkFailure:
			return "network"
		case pkgerrors.CodeRemoteRejected:
			return "rejected"
		case pkgerrors.CodeConfigMissing:
			return "config"
		}
	}
	return "internal"
}
