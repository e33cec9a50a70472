package checkout

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type memoryFlowStore struct {
	values map[string]string
}

func newMemoryFlowStore() *memoryFlowStore {
	return &memoryFlowStore{values: map[string]string{}}
}

func (m *memoryFlowStore) Get(_ context.Context, key string) (string, error) {
	val, ok := m.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return val, nil
}

func (m *memoryFlowStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case string:
		m.values[key] = v
	case []byte:
		m.values[key] = string(v)
	}
	return nil
}

func (m *memoryFlowStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *memoryFlowStore) CheckoutFlowKey(sessionID string) string {
	return "sf:checkout_flow:" + sessionID
}

func TestFlowStartsIdle(t *testing.T) {
	t.Parallel()

	flow := NewFlowStore(newMemoryFlowStore(), nil)
	state, err := flow.State(context.Background(), "sess")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state != FlowIdle {
		t.Fatalf("fresh session state = %s, want idle", state)
	}
}

func TestFlowUnknownSlotValueIsIdle(t *testing.T) {
	t.Parallel()

	store := newMemoryFlowStore()
	store.values[store.CheckoutFlowKey("sess")] = "garbage"

	flow := NewFlowStore(store, nil)
	state, err := flow.State(context.Background(), "sess")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state != FlowIdle {
		t.Fatalf("unknown slot value state = %s, want idle", state)
	}
}

func TestFlowReturnSignalResumesOnlyWhilePending(t *testing.T) {
	t.Parallel()

	store := newMemoryFlowStore()
	flow := NewFlowStore(store, nil)
	ctx := context.Background()

	// A return signal in the rest state changes nothing.
	state, err := flow.HandleEvent(ctx, "sess", EventPageShow)
	if err != nil {
		t.Fatalf("handle event: %v", err)
	}
	if state != FlowIdle {
		t.Fatalf("pageshow while idle moved to %s", state)
	}

	if err := flow.setState(ctx, "sess", FlowAwaitingRedirect); err != nil {
		t.Fatalf("set state: %v", err)
	}
	state, err = flow.HandleEvent(ctx, "sess", EventVisible)
	if err != nil {
		t.Fatalf("handle event: %v", err)
	}
	if state != FlowResumed {
		t.Fatalf("visible while pending moved to %s, want resumed", state)
	}
}

func TestFlowEventsAreIdempotent(t *testing.T) {
	t.Parallel()

	flow := NewFlowStore(newMemoryFlowStore(), nil)
	ctx := context.Background()

	if err := flow.setState(ctx, "sess", FlowAwaitingRedirect); err != nil {
		t.Fatalf("set state: %v", err)
	}

	first, err := flow.HandleEvent(ctx, "sess", EventPageShow)
	if err != nil {
		t.Fatalf("first event: %v", err)
	}
	second, err := flow.HandleEvent(ctx, "sess", EventPageShow)
	if err != nil {
		t.Fatalf("second event: %v", err)
	}
	if first != FlowResumed || second != FlowResumed {
		t.Fatalf("repeated event diverged: %s then %s", first, second)
	}
}

func TestFlowEnterShippingRearms(t *testing.T) {
	t.Parallel()

	flow := NewFlowStore(newMemoryFlowStore(), nil)
	ctx := context.Background()

	if err := flow.setState(ctx, "sess", FlowAwaitingRedirect); err != nil {
		t.Fatalf("set state: %v", err)
	}
	state, err := flow.HandleEvent(ctx, "sess", EventEnterShipping)
	if err != nil {
		t.Fatalf("handle event: %v", err)
	}
	if state != FlowIdle {
		t.Fatalf("shipping entry moved to %s, want idle", state)
	}
}

func TestFlowReset(t *testing.T) {
	t.Parallel()

	store := newMemoryFlowStore()
	flow := NewFlowStore(store, nil)
	ctx := context.Background()

	if err := flow.setState(ctx, "sess", FlowResumed); err != nil {
		t.Fatalf("set state: %v", err)
	}
	if err := flow.Reset(ctx, "sess"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	state, err := flow.State(ctx, "sess")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state != FlowIdle {
		t.Fatalf("state after reset = %s, want idle", state)
	}
}
