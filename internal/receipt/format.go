package receipt

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/models"
)

const (
	itemNameWidth = 32
	priceWidth    = 6
	ruleWidth     = 52
)

// WriteMenu renders the numbered menu.
func WriteMenu(w io.Writer, entries []models.MenuEntry) {
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintln(w, "Item # | Item name                        | Price")
	fmt.Fprintln(w, "-------|----------------------------------|-------")
	for _, e := range entries {
		fmt.Fprintf(w, "%-7d| %-*s | $%s\n", e.Number, itemNameWidth, e.Name, e.Price.StringFixed(2))
	}
}

// WriteHeading renders the column headings of a receipt.
func WriteHeading(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
	fmt.Fprintln(w, "Item name                       | Price  | Quantity")
	fmt.Fprintln(w, "--------------------------------|--------|----------")
}

// WriteLine renders one line item as "name | $price | quantity".
func WriteLine(w io.Writer, item models.LineItem) {
	fmt.Fprintf(w, "%-*s| $%-*s| %d\n", itemNameWidth, item.Name, priceWidth, item.Price.StringFixed(2), item.Quantity)
}

// WriteFooter renders the total with two decimals.
func WriteFooter(w io.Writer, total decimal.Decimal) {
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
	fmt.Fprintf(w, "Total price: $%s\n", total.StringFixed(2))
	fmt.Fprintln(w, strings.Repeat("-", ruleWidth))
}

// Write renders a full receipt. Items are listed in the order they were added.
func Write(w io.Writer, items []models.LineItem, total decimal.Decimal) {
	WriteHeading(w)
	for _, item := range items {
		WriteLine(w, item)
	}
	WriteFooter(w, total)
}

// String renders a full receipt into a string.
func String(items []models.LineItem, total decimal.Decimal) string {
	var sb strings.Builder
	Write(&sb, items, total)
	return sb.String()
}
