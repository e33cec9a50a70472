// Package reviews forwards per-line-item ratings to the commerce platform.
package reviews

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/logger"
	"github.com/omega-wallet/storefront-api/pkg/types"
)

type reviewGateway interface {
	AddReview(ctx context.Context, req types.ReviewRequest) error
}

// Service validates and submits order reviews.
type Service struct {
	gateway reviewGateway
	logg    *logger.Logger
}

// NewService wires the review service.
func NewService(gateway reviewGateway, logg *logger.Logger) (*Service, error) {
	if gateway == nil {
		return nil, fmt.Errorf("review gateway required")
	}
	return &Service{gateway: gateway, logg: logg}, nil
}

// Submit checks the request shape and hands it to the platform. Ratings are
// clamped nowhere: an out-of-range rating is the caller's bug, not data to
// repair.
func (s *Service) Submit(ctx context.Context, req types.ReviewRequest) error {
	if strings.TrimSpace(req.OrderID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if len(req.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one review item is required")
	}
	for _, item := range req.Items {
		if strings.TrimSpace(item.LineItemID) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "line item id is required")
		}
		if item.Rating < 1 || item.Rating > 5 {
			return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5").
				WithDetails(map[string]any{"lineItemId": item.LineItemID, "rating": item.Rating})
		}
	}
	return s.gateway.AddReview(ctx, req)
}
