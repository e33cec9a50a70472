package catalog

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/omega-wallet/storefront-api/pkg/errors"
	"github.com/omega-wallet/storefront-api/pkg/types"
)

type stubPlatform struct {
	listCalls   int
	detailCalls int
	products    []types.Product
	err         error
}

func (s *stubPlatform) ProductList(_ context.Context, lang, category string) ([]types.Product, error) {
	s.listCalls++
	return s.products, s.err
}

func (s *stubPlatform) ProductByID(_ context.Context, id string) (types.Product, error) {
	s.detailCalls++
	if s.err != nil {
		return types.Product{}, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return types.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

type memoryCache struct {
	values map[string]string
	getErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	val, ok := m.values[key]
	if !ok {
		return "", goredis.Nil
	}
	return val, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	switch v := value.(type) {
	case []byte:
		m.values[key] = string(v)
	case string:
		m.values[key] = v
	}
	return nil
}

func (m *memoryCache) CatalogKey(lang, category string) string {
	return "sf:catalog:" + lang + ":" + category
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleProduct() types.Product {
	return types.Product{
		ID:      "prod-1",
		Title:   "Omega Wallet",
		Price:   dec("100"),
		VATRate: dec("19"),
		Stock:   5,
	}
}

func TestListComputesDisplayPricing(t *testing.T) {
	t.Parallel()

	platform := &stubPlatform{products: []types.Product{sampleProduct()}}
	svc, err := NewService(platform, newMemoryCache(), time.Minute, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	products, err := svc.List(context.Background(), "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	got := products[0]
	if !got.FinalPrice.Equal(dec("119.00")) {
		t.Fatalf("final price = %s, want 119.00", got.FinalPrice)
	}
	if got.VATAmount == nil || !got.VATAmount.Equal(dec("19.00")) {
		t.Fatalf("vat amount = %v, want 19.00", got.VATAmount)
	}
}

func TestListServesSecondCallFromCache(t *testing.T) {
	t.Parallel()

	platform := &stubPlatform{products: []types.Product{sampleProduct()}}
	svc, err := NewService(platform, newMemoryCache(), time.Minute, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.List(ctx, "en", "wallets"); err != nil {
		t.Fatalf("first list: %v", err)
	}
	products, err := svc.List(ctx, "en", "wallets")
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if platform.listCalls != 1 {
		t.Fatalf("platform hit %d times, want 1", platform.listCalls)
	}
	if len(products) != 1 || !products[0].FinalPrice.Equal(dec("119.00")) {
		t.Fatalf("cached copy lost pricing: %+v", products)
	}
}

func TestListCorruptCacheRefetches(t *testing.T) {
	t.Parallel()

	platform := &stubPlatform{products: []types.Product{sampleProduct()}}
	cache := newMemoryCache()
	cache.values[cache.CatalogKey("en", "wallets")] = "{broken"

	svc, err := NewService(platform, cache, time.Minute, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	products, err := svc.List(context.Background(), "en", "wallets")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if platform.listCalls != 1 {
		t.Fatalf("corrupt cache must refetch, platform hits = %d", platform.listCalls)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
}

func TestListUnavailableCacheFallsThrough(t *testing.T) {
	t.Parallel()

	platform := &stubPlatform{products: []types.Product{sampleProduct()}}
	cache := newMemoryCache()
	cache.getErr = goredis.ErrClosed

	svc, err := NewService(platform, cache, time.Minute, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	products, err := svc.List(context.Background(), "en", "")
	if err != nil {
		t.Fatalf("cache outage must not fail the list: %v", err)
	}
	if len(products) != 1 || platform.listCalls != 1 {
		t.Fatalf("expected platform fallback, got %d products, %d hits", len(products), platform.listCalls)
	}
}

func TestListLanguageDefaultsAndNormalizes(t *testing.T) {
	t.Parallel()

	platform := &stubPlatform{products: []types.Product{sampleProduct()}}
	cache := newMemoryCache()
	svc, err := NewService(platform, cache, time.Minute, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	if _, err := svc.List(ctx, "", "wallets"); err != nil {
		t.Fatalf("list default lang: %v", err)
	}
	if _, err := svc.List(ctx, "EN", "wallets"); err != nil {
		t.Fatalf("list upper lang: %v", err)
	}
	// Same normalized key for "", "EN" and "en".
	if platform.listCalls != 1 {
		t.Fatalf("language variants must share a cache key, platform hits = %d", platform.listCalls)
	}
}

func TestDetailComputesPricing(t *testing.T) {
	t.Parallel()

	platform := &stubPlatform{products: []types.Product{sampleProduct()}}
	svc, err := NewService(platform, newMemoryCache(), time.Minute, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	product, err := svc.Detail(context.Background(), "prod-1")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if !product.FinalPrice.Equal(dec("119.00")) {
		t.Fatalf("final price = %s, want 119.00", product.FinalPrice)
	}
}

func TestDetailPropagatesPlatformError(t *testing.T) {
	t.Parallel()

	platform := &stubPlatform{err: pkgerrors.New(pkgerrors.CodeNetworkFailure, "down")}
	svc, err := NewService(platform, newMemoryCache(), time.Minute, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Detail(context.Background(), "prod-1")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNetworkFailure {
		t.Fatalf("expected network failure, got %v", err)
	}
}
