package cart

import (
	"github.com/shopspring/decimal"

	"github.com/omega-wallet/storefront-api/internal/pricing"
	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/types"
)

// Store is the in-memory line-item list for one session. It is not safe for
// concurrent use; the service loads it, applies exactly one mutation and
// saves it back.
type Store struct {
	lines []LineItem
}

// NewStore wraps an existing line list, typically one loaded from the
// persistence slot.
func NewStore(lines []LineItem) *Store {
	return &Store{lines: lines}
}

// Lines returns a copy of the current line list.
func (s *Store) Lines() []LineItem {
	return append([]LineItem(nil), s.lines...)
}

// Len returns the number of lines.
func (s *Store) Len() int {
	return len(s.lines)
}

// Totals sums the cart the way the drawer shows it: unit gross price times
// quantity per line, plus the VAT contained in those figures. No shipping
// fee ever joins these totals; that happens only on the shipping quote.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	VATTotal   decimal.Decimal `json:"vatTotal"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// AddItem appends or merges a line for the product. Lines merge only when
// product and package selection both match; the same product with a
// different (or no) package stays a separate line. The stock bound is the
// package stock for package lines, the product stock otherwise, and a
// violation aborts the whole operation with no partial update.
func (s *Store) AddItem(product types.Product, quantity int, selected *types.Package) error {
	snapshot := pricing.UnitFinalPrice(pricing.PriceFields{
		Price:      product.Price,
		VATRate:    product.VATRate,
		VATAmount:  product.VATAmount,
		Discount:   product.Discount,
		FinalPrice: product.FinalPrice,
	})
	bound := product.Stock
	if selected != nil {
		snapshot = selected.Price
		bound = selected.Stock
		// A package purchase always enters the cart at its bundle quantity.
		quantity = selected.Stock
	}
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	selectedTitle := ""
	if selected != nil {
		selectedTitle = selected.Title
	}

	for i := range s.lines {
		if s.lines[i].ProductID != product.ID || s.lines[i].packageTitle() != selectedTitle {
			continue
		}
		additional := quantity
		if selected != nil {
			additional = 1
		}
		proposed := s.lines[i].Quantity + additional
		if proposed > bound {
			return stockExceeded(bound, proposed)
		}
		s.lines[i].Quantity = proposed
		return nil
	}

	if quantity > bound {
		return stockExceeded(bound, quantity)
	}

	var pkgCopy *types.Package
	if selected != nil {
		val := *selected
		pkgCopy = &val
	}
	s.lines = append(s.lines, LineItem{
		ProductID:       product.ID,
		Quantity:        quantity,
		SelectedPackage: pkgCopy,
		UnitGrossPrice:  snapshot,
		Attributes:      snapshotAttributes(product),
	})
	return nil
}

// IncreaseQuantity bumps a plain product line by one, bounded by the stock
// recorded at add time. Package lines are locked to their bundle quantity.
func (s *Store) IncreaseQuantity(index int) error {
	line, err := s.line(index)
	if err != nil {
		return err
	}
	if line.IsPackage() {
		return pkgerrors.New(pkgerrors.CodeValidation, "package quantity is fixed")
	}
	if line.Attributes.Stock > 0 && line.Quantity >= line.Attributes.Stock {
		return stockExceeded(line.Attributes.Stock, line.Quantity+1)
	}
	s.lines[index].Quantity++
	return nil
}

// DecreaseQuantity lowers a plain product line by one, never below one.
// Removal is always an explicit separate action. Package lines do not move:
// their step and floor both equal the bundle quantity.
func (s *Store) DecreaseQuantity(index int) error {
	line, err := s.line(index)
	if err != nil {
		return err
	}
	if line.IsPackage() {
		return nil
	}
	if line.Quantity > 1 {
		s.lines[index].Quantity--
	}
	return nil
}

// RemoveItem deletes the line unconditionally.
func (s *Store) RemoveItem(index int) error {
	if _, err := s.line(index); err != nil {
		return err
	}
	s.lines = append(s.lines[:index], s.lines[index+1:]...)
	return nil
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.lines = nil
}

// Totals computes the drawer totals from the current lines.
func (s *Store) Totals() Totals {
	subtotal := decimal.Zero
	vatTotal := decimal.Zero
	for _, line := range s.lines {
		unit := line.DisplayUnitPrice()
		subtotal = subtotal.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
		vatTotal = vatTotal.Add(pricing.LineVAT(unit, line.Attributes.VATRate, line.Quantity))
	}
	return Totals{
		Subtotal:   pricing.Round2(subtotal),
		VATTotal:   pricing.Round2(vatTotal),
		GrandTotal: pricing.Round2(subtotal),
	}
}

func (s *Store) line(index int) (LineItem, error) {
	if index < 0 || index >= len(s.lines) {
		return LineItem{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	return s.lines[index], nil
}

func stockExceeded(bound, proposed int) error {
	return pkgerrors.New(pkgerrors.CodeStockExceeded, "quantity exceeds available stock").
		WithDetails(map[string]int{"stock": bound, "requested": proposed})
}
