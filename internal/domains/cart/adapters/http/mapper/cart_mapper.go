package mapper

import (
	"encoding/json"

	"github.com/Apurer/rocketshoes-cart/internal/domains/cart/domain"
)

// Cart is the HTTP representation of the cart summary.
type Cart struct {
	Items     []domain.Product `json:"items"`
	Total     json.Number      `json:"total"`
	ItemCount int              `json:"itemCount"`
}

// MutationResult answers every cart mutation. Notifications carry the user-facing
// messages raised while the mutation ran.
type MutationResult struct {
	Cart
	Notifications []string `json:"notifications"`
}

// UpdateAmount is the payload of PUT /cart/items/:productId.
type UpdateAmount struct {
	Amount *int `json:"amount" binding:"required"`
}

// FromCart never returns a nil items slice.
func FromCart(c domain.Cart) Cart {
	items := []domain.Product(c)
	if items == nil {
		items = []domain.Product{}
	}
	return Cart{Items: items, Total: json.Number(c.Total().String()), ItemCount: c.ItemCount()}
}

// FromMutation pairs the resulting cart with the collected notifications.
func FromMutation(c domain.Cart, notifications []string) MutationResult {
	if notifications == nil {
		notifications = []string{}
	}
	return MutationResult{Cart: FromCart(c), Notifications: notifications}
}
