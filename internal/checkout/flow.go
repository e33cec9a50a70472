package checkout

import (
	"context"
	"time"

	"github.com/omega-wallet/storefront-api/pkg/logger"
	"github.com/omega-wallet/storefront-api/pkg/redis"
)

// FlowState tracks where a session stands relative to the external payment
// redirect. It exists to keep the submit button honest: once a session has
// been handed to the payment page, a plain resubmit must not fire a second
// payment session by accident.
type FlowState string

const (
	// FlowIdle is the rest state: no submission in flight.
	FlowIdle FlowState = "idle"
	// FlowAwaitingRedirect marks a submitted checkout whose buyer is on, or
	// on the way to, the external payment page.
	FlowAwaitingRedirect FlowState = "awaiting_redirect"
	// FlowResumed marks a buyer who came back from the payment page without
	// completing it. Submission is allowed again.
	FlowResumed FlowState = "resumed"
)

// FlowEvent is a client-reported navigation signal.
type FlowEvent string

const (
	// EventEnterShipping fires when the shipping page is entered fresh.
	EventEnterShipping FlowEvent = "enter-shipping"
	// EventPageShow fires when the page is restored from the history cache.
	EventPageShow FlowEvent = "pageshow"
	// EventVisible fires when the tab becomes visible again.
	EventVisible FlowEvent = "visible"
)

// transition applies one event to a state. Entering the shipping page always
// rearms the flow; return signals only matter while a redirect is pending,
// which makes repeated delivery of the same event harmless.
func transition(current FlowState, event FlowEvent) FlowState {
	switch event {
	case EventEnterShipping:
		return FlowIdle
	case EventPageShow, EventVisible:
		if current == FlowAwaitingRedirect {
			return FlowResumed
		}
	}
	return current
}

type flowSlotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CheckoutFlowKey(sessionID string) string
}

// FlowStore persists the per-session flow state. Reads are fail-soft: a
// missing or unrecognized slot is idle.
type FlowStore struct {
	store flowSlotStore
	logg  *logger.Logger
}

// NewFlowStore builds the flow persistence adapter.
func NewFlowStore(store flowSlotStore, logg *logger.Logger) *FlowStore {
	return &FlowStore{store: store, logg: logg}
}

// State reads the current flow state for a session.
func (f *FlowStore) State(ctx context.Context, sessionID string) (FlowState, error) {
	raw, err := f.store.Get(ctx, f.store.CheckoutFlowKey(sessionID))
	if err != nil {
		if redis.IsMiss(err) {
			return FlowIdle, nil
		}
		return FlowIdle, err
	}
	switch state := FlowState(raw); state {
	case FlowIdle, FlowAwaitingRedirect, FlowResumed:
		return state, nil
	default:
		if f.logg != nil {
			f.logg.Warn(ctx, "unknown checkout flow state, treating as idle")
		}
		return FlowIdle, nil
	}
}

func (f *FlowStore) setState(ctx context.Context, sessionID string, state FlowState) error {
	return f.store.Set(ctx, f.store.CheckoutFlowKey(sessionID), string(state), 0)
}

// HandleEvent applies a client navigation event and returns the resulting
// state. Applying the same event twice yields the same state.
func (f *FlowStore) HandleEvent(ctx context.Context, sessionID string, event FlowEvent) (FlowState, error) {
	current, err := f.State(ctx, sessionID)
	if err != nil {
		return FlowIdle, err
	}
	next := transition(current, event)
	if next == current {
		return current, nil
	}
	if err := f.setState(ctx, sessionID, next); err != nil {
		return current, err
	}
	return next, nil
}

// Reset drops the session's flow slot entirely.
func (f *FlowStore) Reset(ctx context.Context, sessionID string) error {
	return f.store.Del(ctx, f.store.CheckoutFlowKey(sessionID))
}
