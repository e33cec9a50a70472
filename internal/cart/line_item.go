package cart

import (
	"github.com/shopspring/decimal"

	"github.com/omega-wallet/storefront-api/internal/pricing"
	"github.com/omega-wallet/storefront-api/pkg/types"
)

// Attributes is the frozen copy of a product's display attributes captured
// when the line is created. The cart renders (and prices) from this copy so
// it never needs to re-fetch the product.
type Attributes struct {
	Title      string           `json:"title"`
	Price      decimal.Decimal  `json:"price"`
	VATRate    decimal.Decimal  `json:"vatRate"`
	VATAmount  *decimal.Decimal `json:"vatAmount,omitempty"`
	Discount   decimal.Decimal  `json:"discount"`
	FinalPrice decimal.Decimal  `json:"finalPrice"`
	PreOrder   string           `json:"preOrder,omitempty"`
	Stock      int              `json:"stock"`
	Images     []string         `json:"images,omitempty"`
}

// LineItem is one cart entry. UnitGrossPrice is snapshotted at add time and
// never mutated afterwards; only Quantity changes in place. A non-nil
// SelectedPackage marks the line as a package purchase with a locked
// quantity.
type LineItem struct {
	ProductID       string          `json:"productId"`
	Quantity        int             `json:"quantity"`
	SelectedPackage *types.Package  `json:"selectedPackage,omitempty"`
	UnitGrossPrice  decimal.Decimal `json:"unitGrossPrice"`
	Attributes      Attributes      `json:"attributes"`
}

// IsPackage reports whether this line is a package purchase.
func (li LineItem) IsPackage() bool {
	return li.SelectedPackage != nil
}

// packageTitle returns the merge-identity component contributed by the
// package selection, empty for plain product lines.
func (li LineItem) packageTitle() string {
	if li.SelectedPackage == nil {
		return ""
	}
	return li.SelectedPackage.Title
}

// DisplayUnitPrice resolves the gross unit price shown and totalled for this
// line: the flat package price for package lines, otherwise the add-time
// snapshot. Recomputing from attributes is a defensive path for lines
// persisted before snapshots existed.
func (li LineItem) DisplayUnitPrice() decimal.Decimal {
	if li.SelectedPackage != nil {
		return li.SelectedPackage.Price
	}
	if li.UnitGrossPrice.IsPositive() {
		return li.UnitGrossPrice
	}
	return pricing.UnitFinalPrice(pricing.PriceFields{
		Price:      li.Attributes.Price,
		VATRate:    li.Attributes.VATRate,
		VATAmount:  li.Attributes.VATAmount,
		Discount:   li.Attributes.Discount,
		FinalPrice: li.Attributes.FinalPrice,
	})
}

// LineTotal is the display unit price times quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.DisplayUnitPrice().Mul(decimal.NewFromInt(int64(li.Quantity)))
}

func snapshotAttributes(p types.Product) Attributes {
	var vatAmount *decimal.Decimal
	if p.VATAmount != nil {
		val := *p.VATAmount
		vatAmount = &val
	}
	return Attributes{
		Title:      p.Title,
		Price:      p.Price,
		VATRate:    p.VATRate,
		VATAmount:  vatAmount,
		Discount:   p.Discount,
		FinalPrice: p.FinalPrice,
		PreOrder:   p.PreOrder,
		Stock:      p.Stock,
		Images:     append([]string(nil), p.Images...),
	}
}
