package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry as held in the cart. The cart only ever reads ID
// and mutates Amount; the display fields are views decoded on a best-effort basis.
type Product struct {
	ID     int64
	Title  string
	Price  decimal.Decimal
	Image  string
	Amount int
	// Extra keeps every decoded field except id and amount exactly as received,
	// so persistence round trips never reshape catalog data. A display field
	// present in Extra is written from Extra.
	Extra map[string]json.RawMessage
}

// Stock is the available quantity reported by the inventory service.
type Stock struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

// Subtotal is price times amount.
func (p Product) Subtotal() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Amount)))
}

// MarshalJSON writes Extra verbatim plus id and amount. Display fields built in
// code (absent from Extra) are written only when set.
func (p Product) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(p.Extra)+5)
	for k, v := range p.Extra {
		out[k] = v
	}
	set := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode product %s: %w", key, err)
		}
		out[key] = raw
		return nil
	}
	if err := set("id", p.ID); err != nil {
		return nil, err
	}
	if err := set("amount", p.Amount); err != nil {
		return nil, err
	}
	if _, ok := out["title"]; !ok && p.Title != "" {
		if err := set("title", p.Title); err != nil {
			return nil, err
		}
	}
	if _, ok := out["image"]; !ok && p.Image != "" {
		if err := set("image", p.Image); err != nil {
			return nil, err
		}
	}
	if _, ok := out["price"]; !ok && !p.Price.IsZero() {
		// decimal quotes by default; the catalog and the stored cart use plain numbers.
		out["price"] = json.RawMessage(p.Price.String())
	}
	return json.Marshal(out)
}

// UnmarshalJSON requires id and amount, when present, to be numbers. Title,
// price and image are decoded if they have the expected type and left zero
// otherwise; their raw values stay in Extra either way.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out Product
	if err := takeField(raw, "id", &out.ID); err != nil {
		return err
	}
	if err := takeField(raw, "amount", &out.Amount); err != nil {
		return err
	}
	peekField(raw, "title", &out.Title)
	peekField(raw, "image", &out.Image)
	peekField(raw, "price", &out.Price)
	if len(raw) > 0 {
		out.Extra = raw
	}
	*p = out
	return nil
}

func takeField(raw map[string]json.RawMessage, key string, dst any) error {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	delete(raw, key)
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("decode product %s: %w", key, err)
	}
	return nil
}

// peekField decodes without consuming the raw value. Type mismatches are ignored.
func peekField(raw map[string]json.RawMessage, key string, dst any) {
	if v, ok := raw[key]; ok {
		_ = json.Unmarshal(v, dst)
	}
}
