package types

import "github.com/shopspring/decimal"

// Package is a fixed-quantity bundle of a product sold at a flat gross price.
// Stock doubles as the bundle quantity: selecting a package puts exactly
// Stock units in the cart.
type Package struct {
	Title  string          `json:"title"`
	Price  decimal.Decimal `json:"price"`
	Stock  int             `json:"stock"`
	Images []string        `json:"images,omitempty"`
}

// Product is the normalized view of a catalog product. All numeric fields are
// coerced at the commerce trust boundary; VATAmount stays nil when the
// platform did not send one, so pricing can tell "absent" from "zero".
type Product struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	Discount    decimal.Decimal  `json:"discount"`
	VATRate     decimal.Decimal  `json:"vatRate"`
	VATAmount   *decimal.Decimal `json:"vatAmount,omitempty"`
	FinalPrice  decimal.Decimal  `json:"finalPrice"`
	Stock       int              `json:"stock"`
	PreOrder    string           `json:"preOrder,omitempty"`
	Images      []string         `json:"images,omitempty"`
	Packages    []Package        `json:"packages,omitempty"`
	Category    string           `json:"category,omitempty"`
	IsActive    bool             `json:"isActive"`
}

// PackageByTitle finds the product's package with the given title.
func (p Product) PackageByTitle(title string) (Package, bool) {
	for _, pkg := range p.Packages {
		if pkg.Title == title {
			return pkg, true
		}
	}
	return Package{}, false
}
