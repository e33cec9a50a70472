// Package orders lets a buyer look up a placed order by id and email. The
// last successful lookup is mirrored to a session slot so the tracking page
// survives reloads without asking the platform again.
package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/logger"
	"github.com/omega-wallet/storefront-api/pkg/redis"
	"github.com/omega-wallet/storefront-api/pkg/types"
)

type orderLookup interface {
	SingleOrder(ctx context.Context, orderID, email string) (types.Order, error)
}

type trackSlotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	TrackKey(sessionID string) string
}

// Service exposes order tracking for a session.
type Service interface {
	Track(ctx context.Context, sessionID, orderID, email string) (types.Order, error)
	Tracked(ctx context.Context, sessionID string) (types.Order, bool, error)
	ClearTracked(ctx context.Context, sessionID string) error
}

type service struct {
	platform orderLookup
	slots    trackSlotStore
	logg     *logger.Logger
}

// NewService wires the tracking service.
func NewService(platform orderLookup, slots trackSlotStore, logg *logger.Logger) (Service, error) {
	if platform == nil {
		return nil, fmt.Errorf("order lookup required")
	}
	if slots == nil {
		return nil, fmt.Errorf("track slot store required")
	}
	return &service{platform: platform, slots: slots, logg: logg}, nil
}

// Track fetches the order and mirrors it to the session slot. A slot write
// failure does not fail the lookup; the buyer still sees the order.
func (s *service) Track(ctx context.Context, sessionID, orderID, email string) (types.Order, error) {
	if strings.TrimSpace(orderID) == "" || strings.TrimSpace(email) == "" {
		return types.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "order id and email are required")
	}

	order, err := s.platform.SingleOrder(ctx, orderID, email)
	if err != nil {
		return types.Order{}, err
	}

	if payload, err := json.Marshal(order); err == nil {
		if err := s.slots.Set(ctx, s.slots.TrackKey(sessionID), payload, 0); err != nil && s.logg != nil {
			s.logg.Warn(ctx, "track slot write failed")
		}
	}
	return order, nil
}

// Tracked returns the mirrored lookup result, if any. Missing or corrupt
// slots read as "nothing tracked".
func (s *service) Tracked(ctx context.Context, sessionID string) (types.Order, bool, error) {
	raw, err := s.slots.Get(ctx, s.slots.TrackKey(sessionID))
	if err != nil {
		if redis.IsMiss(err) {
			return types.Order{}, false, nil
		}
		return types.Order{}, false, err
	}
	var order types.Order
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "track slot corrupt, dropping")
		}
		return types.Order{}, false, nil
	}
	return order, true, nil
}

// ClearTracked drops the mirrored lookup.
func (s *service) ClearTracked(ctx context.Context, sessionID string) error {
	return s.slots.Del(ctx, s.slots.TrackKey(sessionID))
}
