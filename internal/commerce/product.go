package commerce

import (
	"context"
	"net/url"

	"github.com/omega-wallet/storefront-api/internal/pricing"
	"github.com/omega-wallet/storefront-api/pkg/types"
)

// packageDTO mirrors the wire shape of a product bundle. Price arrives as a
// number or string depending on the endpoint, so it stays loosely typed
// until normalization.
type packageDTO struct {
	Title  string   `json:"title"`
	Price  any      `json:"price"`
	Stock  int      `json:"stock"`
	Images []string `json:"images"`
}

type productDTO struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Price       any          `json:"price"`
	Discount    any          `json:"discount"`
	VATRate     any          `json:"vatRate"`
	VATAmount   any          `json:"vatAmount"`
	FinalPrice  any          `json:"finalPrice"`
	Stock       int          `json:"stock"`
	PreOrder    string       `json:"preOrder"`
	Images      []string     `json:"images"`
	Packages    []packageDTO `json:"packages"`
	Category    string       `json:"categoryName"`
	IsActive    *bool        `json:"isActive"`
}

// normalizeProduct coerces the loose wire shape into the typed product used
// everywhere downstream. Unusable numerics become zero here, once, at the
// trust boundary. VATAmount keeps its absent/zero distinction.
func normalizeProduct(dto productDTO) types.Product {
	product := types.Product{
		ID:          dto.ID,
		Title:       dto.Title,
		Description: dto.Description,
		Price:       pricing.Amount(dto.Price),
		Discount:    pricing.Amount(dto.Discount),
		VATRate:     pricing.Amount(dto.VATRate),
		FinalPrice:  pricing.Amount(dto.FinalPrice),
		Stock:       dto.Stock,
		PreOrder:    dto.PreOrder,
		Images:      dto.Images,
		Category:    dto.Category,
		IsActive:    true,
	}
	if dto.VATAmount != nil {
		amount := pricing.Amount(dto.VATAmount)
		product.VATAmount = &amount
	}
	if dto.IsActive != nil {
		product.IsActive = *dto.IsActive
	}
	for _, pkg := range dto.Packages {
		product.Packages = append(product.Packages, types.Package{
			Title:  pkg.Title,
			Price:  pricing.Amount(pkg.Price),
			Stock:  pkg.Stock,
			Images: pkg.Images,
		})
	}
	return product
}

// ProductList fetches the catalog slice for a language/category pair.
func (c *Client) ProductList(ctx context.Context, lang, category string) ([]types.Product, error) {
	query := url.Values{}
	if lang != "" {
		query.Set("lang", lang)
	}
	if category != "" {
		query.Set("categoryName", category)
	}
	var dtos []productDTO
	if err := c.get(ctx, "/product/list", query, &dtos); err != nil {
		return nil, err
	}
	products := make([]types.Product, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, normalizeProduct(dto))
	}
	return products, nil
}

// ProductByID fetches one product's detail view.
func (c *Client) ProductByID(ctx context.Context, id string) (types.Product, error) {
	var dto productDTO
	if err := c.get(ctx, "/product/"+url.PathEscape(id), nil, &dto); err != nil {
		return types.Product{}, err
	}
	return normalizeProduct(dto), nil
}
