package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/domain"
	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/ports"
)

// Dependencies groups the collaborators the store talks to.
type Dependencies struct {
	Storage   ports.Storage
	Catalog   ports.Catalog
	Inventory ports.Inventory
	Notifier  ports.Notifier
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for diagnostics. Users only ever see notifier messages.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithNamespace changes the prefix of the storage slot key.
func WithNamespace(namespace string) Option {
	return func(s *Store) {
		s.key = domain.SlotKey(namespace)
	}
}

// Store owns the cart for a session. Mutations are serialized: each one runs
// to completion, remote lookups included, before the next one reads the cart.
// Storage is written before the in-memory snapshot is swapped, so a failed
// mutation leaves both untouched.
type Store struct {
	storage   ports.Storage
	catalog   ports.Catalog
	inventory ports.Inventory
	notifier  ports.Notifier
	logger    *slog.Logger
	key       string

	mutate sync.Mutex

	snapMu sync.RWMutex
	cart   domain.Cart
}

// NewStore builds the store and hydrates it from storage. A missing, unreadable
// or unparseable slot starts an empty cart.
func NewStore(ctx context.Context, deps Dependencies, opts ...Option) (*Store, error) {
	switch {
	case deps.Storage == nil:
		return nil, errors.New("cart storage is required")
	case deps.Catalog == nil:
		return nil, errors.New("catalog client is required")
	case deps.Inventory == nil:
		return nil, errors.New("inventory client is required")
	case deps.Notifier == nil:
		return nil, errors.New("notifier is required")
	}
	s := &Store{
		storage:   deps.Storage,
		catalog:   deps.Catalog,
		inventory: deps.Inventory,
		notifier:  deps.Notifier,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		key:       domain.SlotKey(domain.DefaultNamespace),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.cart = s.hydrate(ctx)
	return s, nil
}

func (s *Store) hydrate(ctx context.Context) domain.Cart {
	text, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read stored cart, starting empty", slog.String("key", s.key), slog.String("error", err.Error()))
		return domain.Cart{}
	}
	if !found || text == "" {
		return domain.Cart{}
	}
	cart, err := domain.Unmarshal(text)
	if err != nil {
		s.logger.WarnContext(ctx, "stored cart is not parseable, starting empty", slog.String("key", s.key), slog.String("error", err.Error()))
		return domain.Cart{}
	}
	s.logger.DebugContext(ctx, "cart hydrated", slog.String("key", s.key), slog.Int("cart.size", len(cart)))
	return cart
}

// Cart returns a copy of the current snapshot. It never performs I/O.
func (s *Store) Cart(_ context.Context) domain.Cart {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.cart.Clone()
}

// AddProduct puts one unit of the product in the cart, or bumps the amount of
// an existing entry through UpdateProductAmount's stock check.
func (s *Store) AddProduct(ctx context.Context, productID int64) {
	s.mutate.Lock()
	defer s.mutate.Unlock()

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		s.addFailed(ctx, productID, fmt.Errorf("fetch product: %w", err))
		return
	}
	current := s.snapshot()
	if existing, ok := current.Find(productID); ok {
		s.updateAmount(ctx, current, productID, existing.Amount+1)
		return
	}
	// The requested ID is authoritative; it keeps the cart unique by ID.
	product.ID = productID
	product.Amount = 1
	next := current.Append(product)
	if err := s.persist(ctx, next); err != nil {
		s.addFailed(ctx, productID, err)
		return
	}
	s.swap(next)
	s.logger.InfoContext(ctx, "product added to cart", slog.Int64("product.id", productID))
}

// RemoveProduct drops the entry for productID.
func (s *Store) RemoveProduct(ctx context.Context, productID int64) {
	s.mutate.Lock()
	defer s.mutate.Unlock()

	current := s.snapshot()
	if !current.Contains(productID) {
		s.fail(ctx, MsgRemoveFailed, "remove", productID, domain.ErrNotInCart)
		return
	}
	next := current.Without(productID)
	if err := s.persist(ctx, next); err != nil {
		s.fail(ctx, MsgRemoveFailed, "remove", productID, err)
		return
	}
	s.swap(next)
	s.logger.InfoContext(ctx, "product removed from cart", slog.Int64("product.id", productID))
}

// UpdateProductAmount sets the absolute amount for a product after checking stock.
func (s *Store) UpdateProductAmount(ctx context.Context, input ports.UpdateProductAmount) {
	s.mutate.Lock()
	defer s.mutate.Unlock()

	s.updateAmount(ctx, s.snapshot(), input.ProductID, input.Amount)
}

// updateAmount runs with the mutation lock held.
func (s *Store) updateAmount(ctx context.Context, current domain.Cart, productID int64, amount int) {
	stock, err := s.inventory.GetStock(ctx, productID)
	if err != nil {
		s.fail(ctx, MsgUpdateFailed, "update", productID, fmt.Errorf("fetch stock: %w", err))
		return
	}
	if amount > stock.Amount {
		s.fail(ctx, MsgStockExceeded, "update", productID, domain.ErrStockExceeded,
			slog.Int("amount", amount), slog.Int("stock", stock.Amount))
		return
	}
	if amount < 1 {
		s.logger.DebugContext(ctx, "ignoring update", slog.Int64("product.id", productID), slog.Int("amount", amount), slog.String("reason", domain.ErrInvalidAmount.Error()))
		return
	}
	// An ID missing from the cart is not guarded: the unchanged cart is written back.
	next := current.WithAmount(productID, amount)
	if err := s.persist(ctx, next); err != nil {
		s.fail(ctx, MsgUpdateFailed, "update", productID, err)
		return
	}
	s.swap(next)
	s.logger.InfoContext(ctx, "product amount updated", slog.Int64("product.id", productID), slog.Int("amount", amount))
}

func (s *Store) persist(ctx context.Context, cart domain.Cart) error {
	text, err := domain.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.storage.Set(ctx, s.key, text); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	return nil
}

func (s *Store) snapshot() domain.Cart {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.cart
}

func (s *Store) swap(next domain.Cart) {
	s.snapMu.Lock()
	s.cart = next
	s.snapMu.Unlock()
}

// addFailed reports both add messages whatever the cause.
func (s *Store) addFailed(ctx context.Context, productID int64, err error) {
	s.logger.WarnContext(ctx, "add product failed", slog.Int64("product.id", productID), slog.String("error", err.Error()))
	s.notifier.Error(ctx, MsgAddFailed)
	s.notifier.Error(ctx, MsgStockExceeded)
}

func (s *Store) fail(ctx context.Context, message, op string, productID int64, err error, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("op", op), slog.Int64("product.id", productID), slog.String("error", err.Error()))
	s.logger.LogAttrs(ctx, slog.LevelWarn, "cart mutation rejected", attrs...)
	s.notifier.Error(ctx, message)
}

var _ ports.Service = (*Store)(nil)
