package menu

import (
	"github.com/shopspring/decimal"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/models"
)

// Item is a priced meal within a category.
type Item struct {
	Name  string
	Price decimal.Decimal
}

// Category groups items under a heading such as "Burrito".
type Category struct {
	Name  string
	Items []Item
}

// Catalog is an immutable, ordered category -> item -> price menu.
type Catalog struct {
	categories []Category
}

// New builds a catalog from categories in the given order.
func New(categories ...Category) Catalog {
	return Catalog{categories: copyCategories(categories)}
}

// Categories returns a copy of the catalog's categories.
func (c Catalog) Categories() []Category {
	return copyCategories(c.categories)
}

// Size returns the number of items across all categories.
func (c Catalog) Size() int {
	n := 0
	for _, cat := range c.categories {
		n += len(cat.Items)
	}
	return n
}

// Flatten numbers every item from 1 in category-then-item order.
func Flatten(c Catalog) []models.MenuEntry {
	entries := make([]models.MenuEntry, 0, c.Size())
	for _, cat := range c.categories {
		for _, item := range cat.Items {
			entries = append(entries, models.MenuEntry{
				Number: len(entries) + 1,
				Name:   cat.Name + " - " + item.Name,
				Price:  item.Price,
			})
		}
	}
	return entries
}

// Lookup resolves a 1-based menu number against flattened entries.
func Lookup(entries []models.MenuEntry, number int) (models.MenuEntry, bool) {
	if number < 1 || number > len(entries) {
		return models.MenuEntry{}, false
	}
	return entries[number-1], true
}

func copyCategories(in []Category) []Category {
	out := make([]Category, len(in))
	for i, cat := range in {
		out[i] = Category{
			Name:  cat.Name,
			Items: append([]Item(nil), cat.Items...),
		}
	}
	return out
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Default returns the built-in take-out menu.
func Default() Catalog {
	return New(
		Category{Name: "Burrito", Items: []Item{
			{Name: "Chicken", Price: price("4.49")},
			{Name: "Beef", Price: price("5.49")},
			{Name: "Vegetarian", Price: price("3.99")},
		}},
		Category{Name: "Rice Bowl", Items: []Item{
			{Name: "Teriyaki Chicken", Price: price("9.99")},
			{Name: "Sweet and Sour Pork", Price: price("8.99")},
		}},
		Category{Name: "Sushi", Items: []Item{
			{Name: "California Roll", Price: price("7.49")},
			{Name: "Spicy Tuna Roll", Price: price("8.49")},
		}},
		Category{Name: "Noodles", Items: []Item{
			{Name: "Pad Thai", Price: price("6.99")},
			{Name: "Lo Mein", Price: price("7.99")},
			{Name: "Mee Goreng", Price: price("8.99")},
		}},
		Category{Name: "Pizza", Items: []Item{
			{Name: "Cheese", Price: price("8.99")},
			{Name: "Pepperoni", Price: price("10.99")},
			{Name: "Vegetarian", Price: price("9.99")},
		}},
		Category{Name: "Burger", Items: []Item{
			{Name: "Chicken", Price: price("7.49")},
			{Name: "Beef", Price: price("8.49")},
		}},
	)
}
