package domain

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultNamespace prefixes the storage slot key when none is configured.
const DefaultNamespace = "@RocketShoes"

var (
	ErrNotInCart     = errors.New("product is not in the cart")
	ErrStockExceeded = errors.New("requested quantity exceeds stock")
	ErrInvalidAmount = errors.New("amount must be at least one")
)

// Cart is an ordered list of products, unique by ID. Mutating helpers return
// new slices and never touch the receiver.
type Cart []Product

// SlotKey returns the storage key holding the serialized cart.
func SlotKey(namespace string) string {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return namespace + ":cart"
}

// Find returns the entry with the given ID.
func (c Cart) Find(id int64) (Product, bool) {
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func (c Cart) Contains(id int64) bool {
	_, ok := c.Find(id)
	return ok
}

// Clone copies the entries. Extra payloads are shared since they are never mutated.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Append returns a new cart with p at the end.
func (c Cart) Append(p Product) Cart {
	out := make(Cart, 0, len(c)+1)
	out = append(out, c...)
	return append(out, p)
}

// Without returns a new cart excluding id, keeping the relative order.
func (c Cart) Without(id int64) Cart {
	out := make(Cart, 0, len(c))
	for _, p := range c {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// WithAmount returns a new cart where the entry matching id has the given
// amount. An unknown id yields an unchanged copy.
func (c Cart) WithAmount(id int64, amount int) Cart {
	out := c.Clone()
	for i := range out {
		if out[i].ID == id {
			out[i].Amount = amount
		}
	}
	return out
}

// Total sums price times amount over all entries.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range c {
		total = total.Add(p.Subtotal())
	}
	return total
}

// ItemCount sums the amounts.
func (c Cart) ItemCount() int {
	n := 0
	for _, p := range c {
		n += p.Amount
	}
	return n
}

// Marshal serializes the cart for the storage slot.
func Marshal(c Cart) (string, error) {
	if c == nil {
		c = Cart{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Unmarshal parses a stored cart. The shape is not validated further.
func Unmarshal(text string) (Cart, error) {
	var c Cart
	if err := json.Unmarshal([]byte(text), &c); err != nil {
		return nil, err
	}
	if c == nil {
		c = Cart{}
	}
	return c, nil
}
