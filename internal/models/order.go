package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuEntry is one numbered line of a rendered menu.
type MenuEntry struct {
	Number int             `json:"number"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// LineItem is one ordered item. Quantity is always at least 1.
type LineItem struct {
	Name     string          `json:"item_name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Subtotal returns price times quantity.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is the insertion-ordered list of line items for one session.
type Order struct {
	Items []LineItem `json:"items"`
}

// Add appends a line item for the entry. Repeated entries are kept as separate lines.
func (o *Order) Add(entry MenuEntry, quantity int) LineItem {
	item := LineItem{
		Name:     entry.Name,
		Price:    entry.Price,
		Quantity: quantity,
	}
	o.Items = append(o.Items, item)
	return item
}

// Len returns the number of line items.
func (o *Order) Len() int {
	return len(o.Items)
}

// Total returns the sum of all subtotals rounded to cents.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total.Round(2)
}

// Channel identifies where an order was placed.
type Channel string

const (
	ChannelConsole Channel = "console"
	ChannelAPI     Channel = "api"
)

// Receipt is a checked-out order.
type Receipt struct {
	ID       string          `json:"id"`
	Items    []LineItem      `json:"items"`
	Total    decimal.Decimal `json:"total"`
	Channel  Channel         `json:"channel"`
	PlacedAt time.Time       `json:"placed_at"`
}

// Selection is one raw round of input submitted through the API.
type Selection struct {
	Selection string `json:"selection"`
	Quantity  string `json:"quantity"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders.
type PlaceOrderRequest struct {
	Items []Selection `json:"items"`
}
