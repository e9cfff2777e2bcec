package ports

import (
	"context"

	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/domain"
)

// Catalog looks up products on the remote catalog service.
type Catalog interface {
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
}

// Inventory reads available stock from the remote inventory service.
type Inventory interface {
	GetStock(ctx context.Context, id int64) (domain.Stock, error)
}
