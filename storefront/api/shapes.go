package api

import (
	"bytes"
	"encoding/json"

	"plant_nursery/model"
)

// ProductList accepts both a bare array and {"products": [...]}.
type ProductList struct {
	Products []model.Products
}

func (p *ProductList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("[")) {
		return json.Unmarshal(data, &p.Products)
	}
	var wrapped struct {
		Products []model.Products `json:"products"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	p.Products = wrapped.Products
	return nil
}

// CartEnvelope accepts {"cart": {"items": [...]}}, {"items": [...]} and a
// bare item array.
type CartEnvelope struct {
	Cart model.Cart
}

func (c *CartEnvelope) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("[")) {
		return json.Unmarshal(data, &c.Cart.Items)
	}
	var shape struct {
		Cart  *model.Cart      `json:"cart"`
		Items []model.CartItem `json:"items"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return err
	}
	switch {
	case shape.Cart != nil:
		c.Cart = *shape.Cart
	default:
		c.Cart.Items = shape.Items
	}
	if c.Cart.Items == nil {
		c.Cart.Items = []model.CartItem{}
	}
	return nil
}
