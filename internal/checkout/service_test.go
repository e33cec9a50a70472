package checkout

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/omega-wallet/storefront-api/internal/cart"
	"github.com/omega-wallet/storefront-api/pkg/config"
	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/types"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// stubCart serves a fixed line list and records clears.
type stubCart struct {
	lines   []cart.LineItem
	cleared bool
	loadErr error
}

func (s *stubCart) Add(context.Context, string, string, int, string) ([]cart.LineItem, error) {
	return s.lines, nil
}

func (s *stubCart) Increase(context.Context, string, int) ([]cart.LineItem, error) {
	return s.lines, nil
}

func (s *stubCart) Decrease(context.Context, string, int) ([]cart.LineItem, error) {
	return s.lines, nil
}

func (s *stubCart) Remove(context.Context, string, int) ([]cart.LineItem, error) {
	return s.lines, nil
}

func (s *stubCart) Clear(context.Context, string) error {
	s.cleared = true
	return nil
}

func (s *stubCart) Lines(context.Context, string) ([]cart.LineItem, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.lines, nil
}

func (s *stubCart) Totals(context.Context, string) (cart.Totals, error) {
	return cart.NewStore(s.lines).Totals(), nil
}

type stubGateway struct {
	calls   int
	lastReq types.CheckoutRequest
	session types.CheckoutSession
	err     error
}

func (s *stubGateway) SubmitCheckout(_ context.Context, req types.CheckoutRequest) (types.CheckoutSession, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return types.CheckoutSession{}, s.err
	}
	return s.session, nil
}

func testConfig() config.CheckoutConfig {
	return config.CheckoutConfig{
		SuccessURL: "https://shop.example.com/success",
		CancelURL:  "https://shop.example.com/cancel",
		Currency:   "eur",
	}
}

func packageLine() cart.LineItem {
	return cart.LineItem{
		ProductID: "prod-1",
		Quantity:  4,
		SelectedPackage: &types.Package{
			Title:  "Family Pack",
			Price:  dec("50.00"),
			Stock:  4,
			Images: []string{"http://cdn.example.com/plain.png", "https://cdn.example.com/pack.png"},
		},
		UnitGrossPrice: dec("50.00"),
		Attributes: cart.Attributes{
			Title:   "Omega Wallet",
			Price:   dec("100"),
			VATRate: dec("19"),
			Stock:   5,
			Images:  []string{"https://cdn.example.com/wallet.png"},
		},
	}
}

func plainLine() cart.LineItem {
	return cart.LineItem{
		ProductID:      "prod-2",
		Quantity:       2,
		UnitGrossPrice: dec("119.00"),
		Attributes: cart.Attributes{
			Title:   "Card Holder",
			Price:   dec("100"),
			VATRate: dec("19"),
			Stock:   9,
			Images:  []string{"http://cdn.example.com/holder.png"},
		},
	}
}

func newTestService(t *testing.T, cartSvc cart.Service, gateway paymentGateway, flow *FlowStore, cfg config.CheckoutConfig) *Service {
	t.Helper()
	svc, err := NewService(cartSvc, gateway, flow, cfg, nil, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestQuoteFeesPerMethod(t *testing.T) {
	t.Parallel()

	lines := []cart.LineItem{packageLine()} // subtotal 200.00

	cases := []struct {
		method ShippingMethod
		grand  string
	}{
		{ShippingFree, "200.00"},
		{ShippingRegular, "207.50"},
		{ShippingExpress, "212.50"},
	}
	for _, tc := range cases {
		quote := QuoteTotals(lines, tc.method)
		if !quote.Subtotal.Equal(dec("200.00")) {
			t.Fatalf("%s: subtotal = %s", tc.method, quote.Subtotal)
		}
		if !quote.GrandTotal.Equal(dec(tc.grand)) {
			t.Fatalf("%s: grand total = %s, want %s", tc.method, quote.GrandTotal, tc.grand)
		}
	}
}

func TestParseShippingMethod(t *testing.T) {
	t.Parallel()

	if _, err := ParseShippingMethod("express"); err != nil {
		t.Fatalf("express: %v", err)
	}
	_, err := ParseShippingMethod("teleport")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitHappyPath(t *testing.T) {
	t.Parallel()

	cartSvc := &stubCart{lines: []cart.LineItem{packageLine(), plainLine()}}
	gateway := &stubGateway{session: types.CheckoutSession{URL: "https://pay.example.com/s/1"}}
	flow := NewFlowStore(newMemoryFlowStore(), nil)
	svc := newTestService(t, cartSvc, gateway, flow, testConfig())
	ctx := context.Background()

	session, err := svc.Submit(ctx, "sess", "a@b.com", types.ShippingPayload{City: "Berlin"}, ShippingRegular)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if session.URL != "https://pay.example.com/s/1" {
		t.Fatalf("session url = %q", session.URL)
	}

	state, err := flow.State(ctx, "sess")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state != FlowAwaitingRedirect {
		t.Fatalf("flow = %s, want awaiting_redirect", state)
	}

	req := gateway.lastReq
	if len(req.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(req.Items))
	}
	if req.Items[0].ProductName != "Omega Wallet (Family Pack)" {
		t.Fatalf("package name = %q", req.Items[0].ProductName)
	}
	if req.Items[0].ProductImage == nil || *req.Items[0].ProductImage != "https://cdn.example.com/pack.png" {
		t.Fatalf("package image = %v, want the bundle's https image", req.Items[0].ProductImage)
	}
	if !req.Items[0].Price.Equal(dec("50.00")) || req.Items[0].Quantity != 4 {
		t.Fatalf("package item charged wrong: %+v", req.Items[0])
	}
	// No https image anywhere on the plain line: the slot stays empty.
	if req.Items[1].ProductImage != nil {
		t.Fatalf("plain image = %v, want nil", req.Items[1].ProductImage)
	}
	if req.Currency != "eur" || req.SuccessURL == "" || req.CancelURL == "" {
		t.Fatalf("request envelope incomplete: %+v", req)
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubCart{}, &stubGateway{}, NewFlowStore(newMemoryFlowStore(), nil), testConfig())
	_, err := svc.Submit(context.Background(), "sess", "a@b.com", types.ShippingPayload{}, ShippingFree)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitMissingRedirectConfig(t *testing.T) {
	t.Parallel()

	gateway := &stubGateway{}
	flow := NewFlowStore(newMemoryFlowStore(), nil)
	svc := newTestService(t, &stubCart{lines: []cart.LineItem{plainLine()}}, gateway, flow, config.CheckoutConfig{})

	_, err := svc.Submit(context.Background(), "sess", "a@b.com", types.ShippingPayload{}, ShippingFree)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConfigMissing {
		t.Fatalf("expected config missing, got %v", err)
	}
	if gateway.calls != 0 {
		t.Fatalf("gateway must not be called without redirect urls")
	}
	state, _ := flow.State(context.Background(), "sess")
	if state != FlowIdle {
		t.Fatalf("flow moved to %s before validation finished", state)
	}
}

func TestSubmitFailureRearmsFlowAndKeepsCart(t *testing.T) {
	t.Parallel()

	cartSvc := &stubCart{lines: []cart.LineItem{plainLine()}}
	gateway := &stubGateway{err: pkgerrors.New(pkgerrors.CodeNetworkFailure, "down")}
	flow := NewFlowStore(newMemoryFlowStore(), nil)
	svc := newTestService(t, cartSvc, gateway, flow, testConfig())
	ctx := context.Background()

	_, err := svc.Submit(ctx, "sess", "a@b.com", types.ShippingPayload{}, ShippingFree)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNetworkFailure {
		t.Fatalf("expected network failure, got %v", err)
	}
	if gateway.calls != 1 {
		t.Fatalf("gateway called %d times, want exactly 1 (no retries)", gateway.calls)
	}
	if cartSvc.cleared {
		t.Fatalf("failed submit must not clear the cart")
	}
	state, err := flow.State(ctx, "sess")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state != FlowIdle {
		t.Fatalf("flow = %s after failure, want idle", state)
	}
}

func TestConfirmClearsCartAndFlow(t *testing.T) {
	t.Parallel()

	cartSvc := &stubCart{lines: []cart.LineItem{plainLine()}}
	flow := NewFlowStore(newMemoryFlowStore(), nil)
	svc := newTestService(t, cartSvc, &stubGateway{}, flow, testConfig())
	ctx := context.Background()

	if err := flow.setState(ctx, "sess", FlowAwaitingRedirect); err != nil {
		t.Fatalf("set state: %v", err)
	}
	if err := svc.Confirm(ctx, "sess"); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if !cartSvc.cleared {
		t.Fatalf("confirm must clear the cart")
	}
	state, _ := flow.State(ctx, "sess")
	if state != FlowIdle {
		t.Fatalf("flow = %s after confirm, want idle", state)
	}
}
