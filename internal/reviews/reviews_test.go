package reviews

import (
	"context"
	"testing"

	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/types"
)

type stubGateway struct {
	calls   int
	lastReq types.ReviewRequest
	err     error
}

func (s *stubGateway) AddReview(_ context.Context, req types.ReviewRequest) error {
	s.calls++
	s.lastReq = req
	return s.err
}

func validRequest() types.ReviewRequest {
	return types.ReviewRequest{
		OrderID: "ord-1",
		Items: []types.ReviewItem{
			{LineItemID: "li-1", Rating: 5, Comment: "great"},
			{LineItemID: "li-2", Rating: 3},
		},
	}
}

func TestSubmitForwardsValidRequest(t *testing.T) {
	t.Parallel()

	gateway := &stubGateway{}
	svc, err := NewService(gateway, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.Submit(context.Background(), validRequest()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if gateway.calls != 1 || gateway.lastReq.OrderID != "ord-1" {
		t.Fatalf("request not forwarded: %+v", gateway.lastReq)
	}
}

func TestSubmitValidation(t *testing.T) {
	t.Parallel()

	gateway := &stubGateway{}
	svc, err := NewService(gateway, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	cases := []struct {
		name string
		req  types.ReviewRequest
	}{
		{"missing order id", types.ReviewRequest{Items: validRequest().Items}},
		{"no items", types.ReviewRequest{OrderID: "ord-1"}},
		{"rating too low", types.ReviewRequest{OrderID: "ord-1", Items: []types.ReviewItem{{LineItemID: "li-1", Rating: 0}}}},
		{"rating too high", types.ReviewRequest{OrderID: "ord-1", Items: []types.ReviewItem{{LineItemID: "li-1", Rating: 6}}}},
		{"missing line item id", types.ReviewRequest{OrderID: "ord-1", Items: []types.ReviewItem{{Rating: 4}}}},
	}
	for _, tc := range cases {
		err := svc.Submit(ctx, tc.req)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
	if gateway.calls != 0 {
		t.Fatalf("invalid requests must not reach the platform")
	}
}

func TestSubmitPropagatesGatewayError(t *testing.T) {
	t.Parallel()

	gateway := &stubGateway{err: pkgerrors.New(pkgerrors.CodeRemoteRejected, "already reviewed")}
	svc, err := NewService(gateway, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	err = svc.Submit(context.Background(), validRequest())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeRemoteRejected {
		t.Fatalf("expected remote rejection, got %v", err)
	}
}
