package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/shopdesk-pos/internal/domain/entity"
	"github.com/sangkips/shopdesk-pos/internal/domain/enum"
	"github.com/sangkips/shopdesk-pos/internal/domain/repository"
	"github.com/sangkips/shopdesk-pos/internal/metrics"
	"github.com/sangkips/shopdesk-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// cartSession is one till's cart plus its checkout inputs. All fields
// below mu are guarded by it.
type cartSession struct {
	id         uuid.UUID
	operatorID string
	createdAt  time.Time

	mu        sync.Mutex
	state     enum.CartState
	cart      *entity.Cart
	checkout  entity.Checkout
	updatedAt time.Time
	// removed is set once the session leaves the map. Callers that looked
	// it up earlier must not act on it.
	removed bool
}

// CartView is a consistent read of a cart session.
type CartView struct {
	ID         uuid.UUID
	OperatorID string
	State      enum.CartState
	Lines      []entity.CartLine
	Checkout   entity.Checkout
	Totals     entity.InvoiceTotals
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CartServiceConfig holds session lifetime settings
type CartServiceConfig struct {
	IdleTTL time.Duration
}

// CartService owns the in-memory cart sessions and the submission state
// machine. Carts are never persisted.
type CartService struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*cartSession

	catalog *CatalogService
	sales   repository.SaleGateway
	idleTTL time.Duration
	now     func() time.Time
}

// NewCartService creates a new cart service
func NewCartService(catalog *CatalogService, sales repository.SaleGateway, cfg CartServiceConfig) *CartService {
	ttl := cfg.IdleTTL
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &CartService{
		sessions: make(map[uuid.UUID]*cartSession),
		catalog:  catalog,
		sales:    sales,
		idleTTL:  ttl,
		now:      time.Now,
	}
}

// StartCleanup evicts idle sessions every interval until ctx is done.
func (s *CartService) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.EvictIdle(); n > 0 {
					log.Printf("Evicted %d idle cart sessions", n)
				}
			}
		}
	}()
}

// EvictIdle removes sessions untouched for longer than the idle TTL.
// Sessions with a submission in flight are kept.
func (s *CartService) EvictIdle() int {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		if sess.state == enum.CartStateOpen && sess.updatedAt.Before(cutoff) {
			sess.removed = true
			delete(s.sessions, id)
			evicted++
		}
		sess.mu.Unlock()
	}
	metrics.OpenCarts.Set(float64(len(s.sessions)))
	return evicted
}

// Open starts an empty cart session owned by operatorID
func (s *CartService) Open(operatorID string) *CartView {
	now := s.now()
	sess := &cartSession{
		id:         uuid.New(),
		operatorID: operatorID,
		createdAt:  now,
		state:      enum.CartStateOpen,
		cart:       entity.NewCart(),
		updatedAt:  now,
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	metrics.OpenCarts.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view()
}

// Get returns the current cart and provisional totals
func (s *CartService) Get(operatorID string, id uuid.UUID) (*CartView, error) {
	sess, err := s.lookup(operatorID, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view(), nil
}

// Discard deletes a session. A session with a submission in flight cannot
// be discarded.
func (s *CartService) Discard(operatorID string, id uuid.UUID) error {
	sess, err := s.lookup(operatorID, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.state == enum.CartStateSubmitting {
		return apperror.ErrCartSubmitting
	}

	sess.removed = true
	delete(s.sessions, id)
	metrics.OpenCarts.Set(float64(len(s.sessions)))
	return nil
}

// AddItem adds qty selling units of a product, merging into an existing
// line. Products without stock are rejected.
func (s *CartService) AddItem(ctx context.Context, operatorID string, id uuid.UUID, productID string, qty int) (*CartView, error) {
	sess, err := s.lookup(operatorID, id)
	if err != nil {
		return nil, err
	}
	// Fail fast before the catalog round trip.
	if err := sess.ensureOpen(); err != nil {
		return nil, err
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock() {
		// The cached copy may predate a restock.
		product, err = s.catalog.FreshProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		if !product.InStock() {
			return nil, apperror.ErrOutOfStock
		}
	}

	return sess.mutate(s.now(), func(c *entity.Cart, _ *entity.Checkout) {
		c.AddOrIncrement(*product, qty)
	})
}

// UpdateItemInput changes a cart line. Nil fields are left as they are.
type UpdateItemInput struct {
	Quantity  *int
	UnitPrice *decimal.Decimal
}

// UpdateItem sets the quantity and/or unit price of a line. A quantity of
// zero or less removes the line.
func (s *CartService) UpdateItem(operatorID string, id uuid.UUID, productID string, input UpdateItemInput) (*CartView, error) {
	sess, err := s.lookup(operatorID, id)
	if err != nil {
		return nil, err
	}
	return sess.mutate(s.now(), func(c *entity.Cart, _ *entity.Checkout) {
		if input.UnitPrice != nil {
			c.SetUnitPrice(productID, *input.UnitPrice)
		}
		if input.Quantity != nil {
			c.SetQuantity(productID, *input.Quantity)
		}
	})
}

// RemoveItem deletes a line
func (s *CartService) RemoveItem(operatorID string, id uuid.UUID, productID string) (*CartView, error) {
	sess, err := s.lookup(operatorID, id)
	if err != nil {
		return nil, err
	}
	return sess.mutate(s.now(), func(c *entity.Cart, _ *entity.Checkout) {
		c.Remove(productID)
	})
}

// Reset clears the cart and the checkout inputs
func (s *CartService) Reset(operatorID string, id uuid.UUID) (*CartView, error) {
	sess, err := s.lookup(operatorID, id)
	if err != nil {
		return nil, err
	}
	return sess.mutate(s.now(), func(c *entity.Cart, co *entity.Checkout) {
		c.Clear()
		*co = entity.Checkout{}
	})
}

// SetCheckout replaces the checkout inputs of a session
func (s *CartService) SetCheckout(operatorID string, id uuid.UUID, checkout entity.Checkout) (*CartView, error) {
	sess, err := s.lookup(operatorID, id)
	if err != nil {
		return nil, err
	}
	return sess.mutate(s.now(), func(_ *entity.Cart, co *entity.Checkout) {
		*co = checkout
	})
}

// Submit records the cart as a sale. Only one submission per session can be
// in flight; while it runs every mutation fails with ErrCartSubmitting. On
// success the cart and checkout are cleared. On failure they are kept so the
// operator can retry.
func (s *CartService) Submit(ctx context.Context, operatorID string, id uuid.UUID) (*entity.PrintData, error) {
	sess, err := s.lookup(operatorID, id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.removed {
		sess.mu.Unlock()
		return nil, apperror.ErrSessionNotFound
	}
	if sess.state == enum.CartStateSubmitting {
		sess.mu.Unlock()
		metrics.SaleSubmissions.WithLabelValues("busy").Inc()
		return nil, apperror.ErrCartSubmitting
	}
	if sess.cart.IsEmpty() {
		sess.mu.Unlock()
		metrics.SaleSubmissions.WithLabelValues("empty").Inc()
		return nil, apperror.ErrCartEmpty
	}
	totals := entity.ComputeTotals(sess.cart, sess.checkout.Discount, sess.checkout.AmountPaid)
	if totals.NetTotal.IsNegative() {
		sess.mu.Unlock()
		metrics.SaleSubmissions.WithLabelValues("negative_total").Inc()
		return nil, apperror.ErrNegativeNetTotal
	}
	req := entity.NewSaleRequest(sess.cart, sess.checkout)
	sess.state = enum.CartStateSubmitting
	sess.mu.Unlock()

	// A disconnecting till does not cancel a sale already sent.
	pd, err := s.sales.CreateSale(context.WithoutCancel(ctx), req)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.state = enum.CartStateOpen
	sess.updatedAt = s.now()
	if err != nil {
		metrics.SaleSubmissions.WithLabelValues("rejected").Inc()
		log.Printf("Sale submission failed (cart %s): %v", id, err)
		return nil, err
	}

	sess.cart.Clear()
	sess.checkout = entity.Checkout{}
	metrics.SaleSubmissions.WithLabelValues("success").Inc()

	if pd == nil {
		pd = &entity.PrintData{}
	}
	return pd, nil
}

// Count returns the number of live sessions
func (s *CartService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *CartService) lookup(operatorID string, id uuid.UUID) (*cartSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, apperror.ErrSessionNotFound
	}
	if sess.operatorID != operatorID {
		return nil, apperror.ErrSessionForbidden
	}
	return sess, nil
}

func (sess *cartSession) ensureOpen() error {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.writable()
}

// mutate applies fn under the session lock unless a submission is running.
func (sess *cartSession) mutate(now time.Time, fn func(*entity.Cart, *entity.Checkout)) (*CartView, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.writable(); err != nil {
		return nil, err
	}
	fn(sess.cart, &sess.checkout)
	sess.updatedAt = now
	return sess.view(), nil
}

// writable must be called with sess.mu held.
func (sess *cartSession) writable() error {
	if sess.removed {
		return apperror.ErrSessionNotFound
	}
	if sess.state == enum.CartStateSubmitting {
		return apperror.ErrCartSubmitting
	}
	return nil
}

// view must be called with sess.mu held.
func (sess *cartSession) view() *CartView {
	return &CartView{
		ID:         sess.id,
		OperatorID: sess.operatorID,
		State:      sess.state,
		Lines:      sess.cart.Lines(),
		Checkout:   sess.checkout,
		Totals:     entity.ComputeTotals(sess.cart, sess.checkout.Discount, sess.checkout.AmountPaid),
		CreatedAt:  sess.createdAt,
		UpdatedAt:  sess.updatedAt,
	}
}
