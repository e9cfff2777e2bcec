package ports

import (
	"context"

	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/domain"
)

// UpdateProductAmount sets an absolute quantity for a product in the cart.
type UpdateProductAmount struct {
	ProductID int64
	Amount    int
}

// Service exposes the cart to UI-facing adapters. Mutations report failures
// through the Notifier only.
type Service interface {
	Cart(ctx context.Context) domain.Cart
	AddProduct(ctx context.Context, productID int64)
	RemoveProduct(ctx context.Context, productID int64)
	UpdateProductAmount(ctx context.Context, input UpdateProductAmount)
}
