package cart

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/logger"
	"github.com/omega-wallet/storefront-api/pkg/types"
)

type productLoader interface {
	Detail(ctx context.Context, id string) (types.Product, error)
}

// Service exposes the cart operations for a session. Every mutation loads
// the persisted lines, applies exactly one change and mirrors the result
// back to the slot, so state survives reloads and redirects.
type Service interface {
	Add(ctx context.Context, sessionID, productID string, quantity int, packageTitle string) ([]LineItem, error)
	Increase(ctx context.Context, sessionID string, index int) ([]LineItem, error)
	Decrease(ctx context.Context, sessionID string, index int) ([]LineItem, error)
	Remove(ctx context.Context, sessionID string, index int) ([]LineItem, error)
	Clear(ctx context.Context, sessionID string) error
	Lines(ctx context.Context, sessionID string) ([]LineItem, error)
	Totals(ctx context.Context, sessionID string) (Totals, error)
}

type service struct {
	slot     *Slot
	products productLoader
	logg     *logger.Logger
}

// NewService builds a cart service backed by the provided stack.
func NewService(slot *Slot, products productLoader, logg *logger.Logger) (Service, error) {
	if slot == nil {
		return nil, fmt.Errorf("cart slot required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{slot: slot, products: products, logg: logg}, nil
}

func (s *service) Add(ctx context.Context, sessionID, productID string, quantity int, packageTitle string) ([]LineItem, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.products.Detail(ctx, productID)
	if err != nil {
		return nil, err
	}

	var selected *types.Package
	if packageTitle != "" {
		pkg, ok := product.PackageByTitle(packageTitle)
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "package not found on product")
		}
		selected = &pkg
	}

	return s.mutate(ctx, sessionID, func(store *Store) error {
		return store.AddItem(product, quantity, selected)
	})
}

func (s *service) Increase(ctx context.Context, sessionID string, index int) ([]LineItem, error) {
	return s.mutate(ctx, sessionID, func(store *Store) error {
		return store.IncreaseQuantity(index)
	})
}

func (s *service) Decrease(ctx context.Context, sessionID string, index int) ([]LineItem, error) {
	return s.mutate(ctx, sessionID, func(store *Store) error {
		return store.DecreaseQuantity(index)
	})
}

func (s *service) Remove(ctx context.Context, sessionID string, index int) ([]LineItem, error) {
	return s.mutate(ctx, sessionID, func(store *Store) error {
		return store.RemoveItem(index)
	})
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	return s.slot.Clear(ctx, sessionID)
}

func (s *service) Lines(ctx context.Context, sessionID string) ([]LineItem, error) {
	return s.slot.Load(ctx, sessionID)
}

func (s *service) Totals(ctx context.Context, sessionID string) (Totals, error) {
	lines, err := s.slot.Load(ctx, sessionID)
	if err != nil {
		return Totals{}, err
	}
	return NewStore(lines).Totals(), nil
}

// mutate runs one operation against the persisted cart. The slot is written
// only when the operation succeeds, so a failed mutation leaves the mirror
// untouched.
func (s *service) mutate(ctx context.Context, sessionID string, op func(*Store) error) ([]LineItem, error) {
	lines, err := s.slot.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	store := NewStore(lines)
	if err := op(store); err != nil {
		return nil, err
	}
	updated := store.Lines()
	if err := s.slot.Save(ctx, sessionID, updated); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist cart")
	}
	return updated, nil
}
