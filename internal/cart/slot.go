package cart

import (
	"context"
	"encoding/json"
	"time"

	"github.com/omega-wallet/storefront-api/pkg/logger"
	"github.com/omega-wallet/storefront-api/pkg/redis"
)

type slotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// Slot mirrors a session's cart to its durable redis slot. Loading is
// fail-soft: a missing or malformed slot is an empty cart, never a
// user-visible error.
type Slot struct {
	store slotStore
	logg  *logger.Logger
}

// NewSlot builds the persistence adapter over the redis client.
func NewSlot(store slotStore, logg *logger.Logger) *Slot {
	return &Slot{store: store, logg: logg}
}

// Save serializes the full line list into the session slot.
func (s *Slot) Save(ctx context.Context, sessionID string, lines []LineItem) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, s.store.CartKey(sessionID), payload, 0)
}

// Load deserializes the session slot.
func (s *Slot) Load(ctx context.Context, sessionID string) ([]LineItem, error) {
	raw, err := s.store.Get(ctx, s.store.CartKey(sessionID))
	if err != nil {
		if redis.IsMiss(err) {
			return nil, nil
		}
		return nil, err
	}
	var lines []LineItem
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "cart slot corrupt, treating as empty")
		}
		return nil, nil
	}
	return lines, nil
}

// Clear removes the session slot.
func (s *Slot) Clear(ctx context.Context, sessionID string) error {
	return s.store.Del(ctx, s.store.CartKey(sessionID))
}
