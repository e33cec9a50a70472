// Package catalog serves browse and detail views of the product catalog. It
// fronts the commerce platform with a short-lived redis cache per
// language/category pair so product grids do not hammer the platform.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/omega-wallet/storefront-api/internal/pricing"
	"github.com/omega-wallet/storefront-api/pkg/logger"
	"github.com/omega-wallet/storefront-api/pkg/redis"
	"github.com/omega-wallet/storefront-api/pkg/types"
)

// DefaultLanguage is used when the session carries no language choice.
const DefaultLanguage = "en"

type platformCatalog interface {
	ProductList(ctx context.Context, lang, category string) ([]types.Product, error)
	ProductByID(ctx context.Context, id string) (types.Product, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CatalogKey(lang, category string) string
}

// Service exposes the read-side catalog operations.
type Service interface {
	List(ctx context.Context, lang, category string) ([]types.Product, error)
	Detail(ctx context.Context, id string) (types.Product, error)
}

type service struct {
	platform platformCatalog
	cache    cacheStore
	ttl      time.Duration
	logg     *logger.Logger
}

// NewService wires the catalog over the platform client and the cache.
func NewService(platform platformCatalog, cache cacheStore, ttl time.Duration, logg *logger.Logger) (Service, error) {
	if platform == nil {
		return nil, fmt.Errorf("platform catalog required")
	}
	if cache == nil {
		return nil, fmt.Errorf("catalog cache required")
	}
	return &service{platform: platform, cache: cache, ttl: ttl, logg: logg}, nil
}

// List returns the products for a language/category pair, serving from cache
// when a fresh copy exists. Cache trouble is never user-visible: a broken or
// unreachable cache falls through to the platform.
func (s *service) List(ctx context.Context, lang, category string) ([]types.Product, error) {
	lang = normalizeLanguage(lang)
	key := s.cache.CatalogKey(lang, category)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var products []types.Product
		if jsonErr := json.Unmarshal([]byte(raw), &products); jsonErr == nil {
			return products, nil
		}
		if s.logg != nil {
			s.logg.Warn(ctx, "catalog cache corrupt, refetching")
		}
	} else if !redis.IsMiss(err) && s.logg != nil {
		s.logg.Warn(ctx, "catalog cache unavailable")
	}

	fetched, err := s.platform.ProductList(ctx, lang, category)
	if err != nil {
		return nil, err
	}
	products := make([]types.Product, 0, len(fetched))
	for _, product := range fetched {
		products = append(products, withComputedPricing(product))
	}

	if payload, err := json.Marshal(products); err == nil {
		if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil && s.logg != nil {
			s.logg.Warn(ctx, "catalog cache write failed")
		}
	}
	return products, nil
}

// Detail returns one product with its display pricing computed.
func (s *service) Detail(ctx context.Context, id string) (types.Product, error) {
	product, err := s.platform.ProductByID(ctx, id)
	if err != nil {
		return types.Product{}, err
	}
	return withComputedPricing(product), nil
}

// withComputedPricing fills the derived display fields. The platform is
// inconsistent about sending vatAmount and finalPrice, so both are settled
// here before a product reaches a template or a cart.
func withComputedPricing(p types.Product) types.Product {
	fields := pricing.PriceFields{
		Price:      p.Price,
		VATRate:    p.VATRate,
		VATAmount:  p.VATAmount,
		Discount:   p.Discount,
		FinalPrice: p.FinalPrice,
	}
	p.FinalPrice = pricing.UnitFinalPrice(fields)
	if p.VATAmount == nil {
		vat := pricing.Round2(p.Price.Mul(p.VATRate).Div(decimal100))
		p.VATAmount = &vat
	}
	return p
}

var decimal100 = pricing.Amount(100)

func normalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return DefaultLanguage
	}
	return lang
}
