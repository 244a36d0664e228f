// Package cart holds the shopping-cart aggregate: line items, the discount
// and shipping state, and every piece of pricing arithmetic. All business
// rejections (insufficient stock, invalid coupon) are soft Notices; no
// operation here returns an error or leaves the aggregate half-mutated.
package cart

import (
	"fmt"
	"math"
)

// DefaultStockCeiling caps the quantity of an item whose product carries no
// stock figure of its own.
const DefaultStockCeiling = 10

// FreeShippingThreshold is the subtotal (BRL) at or above which shipping is free.
const FreeShippingThreshold = 300.0

type ShippingOption string

const (
	ShippingExpress  ShippingOption = "express"
	ShippingStandard ShippingOption = "standard"
	ShippingEconomic ShippingOption = "economic"
)

var shippingPrices = map[ShippingOption]float64{
	ShippingExpress:  25.90,
	ShippingStandard: 15.90,
	ShippingEconomic: 9.90,
}

type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
	Category string  `json:"category,omitempty"`
	Quantity int     `json:"quantity"`
	Stock    int     `json:"stock"` // quantity ceiling for this line
}

// Cart is the aggregate state. Items keep insertion order, which is also
// display order.
type Cart struct {
	Items          []Item         `json:"items"`
	DiscountCode   string         `json:"discount_code,omitempty"`
	DiscountAmount float64        `json:"discount_amount,omitempty"`
	Shipping       ShippingOption `json:"shipping"`
}

func New() *Cart {
	return &Cart{Shipping: ShippingStandard}
}

// Notice is the user-visible outcome of a mutation. OK=false means the
// operation was rejected and the cart is unchanged.
type Notice struct {
	OK      bool
	Message string
}

// DiscountTable maps coupon codes to flat BRL deductions. Lookup is
// case-sensitive by contract.
type DiscountTable map[string]float64

// DefaultDiscounts returns the shop's coupon table. PROMO10 and PROMO20 are
// flat amounts, not percentages, deliberately.
func DefaultDiscounts() DiscountTable {
	return DiscountTable{
		"PROMO10": 10,
		"PROMO20": 20,
		"FRETE":   15.90,
	}
}

func (c *Cart) find(id string) int {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return i
		}
	}
	return -1
}

func resolveCeiling(existing, incoming int) int {
	if existing > 0 {
		return existing
	}
	if incoming > 0 {
		return incoming
	}
	return DefaultStockCeiling
}

// AddItem appends item with quantity 1, or bumps the existing line by 1 while
// it is below its stock ceiling. A line at its ceiling is rejected untouched.
func (c *Cart) AddItem(item Item) Notice {
	if i := c.find(item.ID); i >= 0 {
		line := &c.Items[i]
		ceiling := resolveCeiling(line.Stock, item.Stock)
		if line.Quantity >= ceiling {
			return Notice{OK: false, Message: fmt.Sprintf("Estoque insuficiente para %s!", item.Name)}
		}
		line.Quantity++
		return Notice{OK: true, Message: fmt.Sprintf("%s adicionado ao carrinho!", item.Name)}
	}
	item.Quantity = 1
	item.Stock = resolveCeiling(0, item.Stock)
	c.Items = append(c.Items, item)
	return Notice{OK: true, Message: fmt.Sprintf("%s adicionado ao carrinho!", item.Name)}
}

// RemoveItem deletes the line with the given id. Unknown ids are a silent no-op.
func (c *Cart) RemoveItem(id string) Notice {
	i := c.find(id)
	if i < 0 {
		return Notice{}
	}
	name := c.Items[i].Name
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return Notice{OK: true, Message: fmt.Sprintf("%s removido do carrinho", name)}
}

// UpdateQuantity sets the line quantity. Values below 1 are ignored; values
// above the stock ceiling clamp to the ceiling and signal the shortage.
func (c *Cart) UpdateQuantity(id string, quantity int) Notice {
	if quantity < 1 {
		return Notice{}
	}
	i := c.find(id)
	if i < 0 {
		return Notice{}
	}
	line := &c.Items[i]
	ceiling := resolveCeiling(line.Stock, 0)
	if quantity > ceiling {
		line.Quantity = ceiling
		return Notice{OK: false, Message: fmt.Sprintf("Estoque insuficiente! Apenas %d unidades disponíveis.", ceiling)}
	}
	line.Quantity = quantity
	return Notice{OK: true}
}

// Clear empties the cart and drops any applied discount.
func (c *Cart) Clear() Notice {
	c.Items = nil
	c.DiscountCode = ""
	c.DiscountAmount = 0
	return Notice{OK: true, Message: "Carrinho esvaziado"}
}

// ApplyDiscount looks code up in table (exact match). A miss leaves the
// current discount state untouched.
func (c *Cart) ApplyDiscount(code string, table DiscountTable) Notice {
	amount, ok := table[code]
	if !ok {
		return Notice{OK: false, Message: "Cupom inválido"}
	}
	c.DiscountCode = code
	c.DiscountAmount = amount
	return Notice{OK: true, Message: fmt.Sprintf("Cupom %s aplicado com sucesso!", code)}
}

func (c *Cart) SetShipping(option ShippingOption) {
	c.Shipping = option
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) Subtotal() float64 {
	sum := 0.0
	for _, it := range c.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return round2(sum)
}

// ShippingCost is free above the threshold, otherwise the flat tier price.
// An empty cart ships nothing and costs nothing. Unknown options price as
// standard.
func (c *Cart) ShippingCost() float64 {
	if len(c.Items) == 0 {
		return 0
	}
	if c.Subtotal() >= FreeShippingThreshold {
		return 0
	}
	if price, ok := shippingPrices[c.Shipping]; ok {
		return price
	}
	return shippingPrices[ShippingStandard]
}

func (c *Cart) Total() float64 {
	return round2(c.Subtotal() + c.ShippingCost() - c.DiscountAmount)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
