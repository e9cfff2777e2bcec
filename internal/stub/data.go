package stub

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

//go:embed seed.json
var seedJSON []byte

// Data is the in-memory catalog and inventory. Products are kept as raw JSON so
// fields the cart does not know about are served verbatim.
type Data struct {
	products map[int64]json.RawMessage
	stock    map[int64]json.RawMessage
	order    []int64
}

type document struct {
	Products []json.RawMessage `json:"products"`
	Stock    []json.RawMessage `json:"stock"`
}

type identified struct {
	ID *int64 `json:"id"`
}

// Seed returns the built-in storefront data.
func Seed() *Data {
	data, err := Parse(seedJSON)
	if err != nil {
		panic(fmt.Sprintf("stub: embedded seed is invalid: %v", err))
	}
	return data
}

// Load reads a {"products": [...], "stock": [...]} document from path.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse decodes a stub document. Every entry must carry a numeric id.
func Parse(raw []byte) (*Data, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode stub data: %w", err)
	}
	data := &Data{
		products: make(map[int64]json.RawMessage, len(doc.Products)),
		stock:    make(map[int64]json.RawMessage, len(doc.Stock)),
	}
	for i, entry := range doc.Products {
		id, err := entryID(entry)
		if err != nil {
			return nil, fmt.Errorf("products[%d]: %w", i, err)
		}
		if _, dup := data.products[id]; !dup {
			data.order = append(data.order, id)
		}
		data.products[id] = entry
	}
	for i, entry := range doc.Stock {
		id, err := entryID(entry)
		if err != nil {
			return nil, fmt.Errorf("stock[%d]: %w", i, err)
		}
		data.stock[id] = entry
	}
	return data, nil
}

// Product returns the raw product document.
func (d *Data) Product(id int64) (json.RawMessage, bool) {
	p, ok := d.products[id]
	return p, ok
}

// Stock returns the raw stock document.
func (d *Data) Stock(id int64) (json.RawMessage, bool) {
	s, ok := d.stock[id]
	return s, ok
}

// Products lists products in document order.
func (d *Data) Products() []json.RawMessage {
	out := make([]json.RawMessage, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.products[id])
	}
	return out
}

// ProductIDs returns the product IDs sorted ascending.
func (d *Data) ProductIDs() []int64 {
	ids := append([]int64(nil), d.order...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func entryID(entry json.RawMessage) (int64, error) {
	var probe identified
	if err := json.Unmarshal(entry, &probe); err != nil {
		return 0, err
	}
	if probe.ID == nil {
		return 0, errors.New("missing id")
	}
	return *probe.ID, nil
}
