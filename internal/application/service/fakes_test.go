package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/sangkips/shopdesk-pos/internal/domain/enum"
	"github.com/sangkips/shopdesk-pos/pkg/apperror"
	"github.com/sangkips/shopdesk-pos/pkg/pagination"
	"github.com/shopspring/decimal"
)

type fakeCatalog struct {
	mu        sync.Mutex
	products  map[string]entity.Product
	customers []entity.Customer
	calls     int
}

func newFakeCatalog(products ...entity.Product) *fakeCatalog {
	c := &fakeCatalog{products: make(map[string]entity.Product)}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *fakeCatalog) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	p, ok := c.products[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Product")
	}
	return &p, nil
}

func (c *fakeCatalog) ListProducts(ctx context.Context) ([]entity.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	var out []entity.Product
	for _, p := range c.products {
		out = append(out, p)
	}
	return out, nil
}

func (c *fakeCatalog) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	return c.customers, nil
}

// memoryCache is a map-backed ProductCache.
type memoryCache struct {
	mu       sync.Mutex
	products map[string]entity.Product
	list     []entity.Product
	hasList  bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{products: make(map[string]entity.Product)}
}

func (m *memoryCache) GetProduct(ctx context.Context, id string) (*entity.Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, false
	}
	return &p, true
}

func (m *memoryCache) SetProduct(ctx context.Context, p *entity.Product, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = *p
}

func (m *memoryCache) GetProducts(ctx context.Context) ([]entity.Product, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list, m.hasList
}

func (m *memoryCache) SetProducts(ctx context.Context, products []entity.Product, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.list = products
	m.hasList = true
}

func (m *memoryCache) Invalidate(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = make(map[string]entity.Product)
	m.list = nil
	m.hasList = false
}

type fakeSales struct {
	mu       sync.Mutex
	requests []entity.SaleRequest
	result   *entity.PrintData
	err      error
	// started and release, when set, hold CreateSale until released.
	started chan struct{}
	release chan struct{}

	reprint *entity.PrintData
	summary []entity.SaleSummary
}

func (f *fakeSales) CreateSale(ctx context.Context, req entity.SaleRequest) (*entity.PrintData, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeSales) Reprint(ctx context.Context, saleID string) (*entity.PrintData, error) {
	if f.reprint == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return f.reprint, nil
}

func (f *fakeSales) GetSale(ctx context.Context, saleID string) (*entity.SaleDetail, error) {
	for _, s := range f.summary {
		if s.ID == saleID {
			return &entity.SaleDetail{SaleSummary: s}, nil
		}
	}
	return nil, apperror.NewNotFoundError("Sale")
}

func (f *fakeSales) ListSales(ctx context.Context, params *pagination.PaginationParams) ([]entity.SaleSummary, int64, error) {
	start := params.Offset()
	if start >= len(f.summary) {
		return []entity.SaleSummary{}, int64(len(f.summary)), nil
	}
	end := start + params.PerPage
	if end > len(f.summary) {
		end = len(f.summary)
	}
	return f.summary[start:end], int64(len(f.summary)), nil
}

func (f *fakeSales) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type fakeSettingsRepo struct {
	settings *entity.ShopSettings
	err      error
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*entity.ShopSettings, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.settings, nil
}

func (r *fakeSettingsRepo) Create(ctx context.Context, s *entity.ShopSettings) error {
	r.settings = s
	return nil
}

func (r *fakeSettingsRepo) Update(ctx context.Context, s *entity.ShopSettings) error {
	r.settings = s
	return nil
}

type capturePrinter struct {
	mu   sync.Mutex
	jobs [][]byte
	err  error
}

func (p *capturePrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, append([]byte(nil), data...))
	return nil
}

func (p *capturePrinter) Close() error      { return nil }
func (p *capturePrinter) IsConnected() bool { return p.err == nil }

var errBackendDown = errors.New("backend down")

func product(id string, price int64, unit enum.UnitKind, pcsPerUnit, stock int) entity.Product {
	return entity.Product{
		ID:           id,
		Name:         "Product " + id,
		SellingPrice: decimal.NewFromInt(price),
		Unit:         unit,
		PcsPerUnit:   pcsPerUnit,
		Stock:        stock,
		CategoryName: "General",
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
