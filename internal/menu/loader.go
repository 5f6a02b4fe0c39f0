package menu

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/errors"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML menu of the form
//
//	Burrito:
//	  Chicken: 4.49
//	  Beef: 5.49
//
// keeping categories and items in the order they are written.
func LoadFile(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read menu file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML menu document.
func Parse(data []byte) (Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Catalog{}, fmt.Errorf("parse menu: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return Catalog{}, errors.NewValidationError("menu", "menu is empty")
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return Catalog{}, errors.NewValidationError("menu", "menu must map categories to items")
	}

	var categories []Category
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		cat, err := parseCategory(name, root.Content[i+1])
		if err != nil {
			return Catalog{}, err
		}
		categories = append(categories, cat)
	}

	if len(categories) == 0 {
		return Catalog{}, errors.NewValidationError("menu", "menu is empty")
	}

	return New(categories...), nil
}

func parseCategory(name string, node *yaml.Node) (Category, error) {
	if node.Kind != yaml.MappingNode {
		return Category{}, errors.NewValidationError(name, "category must map items to prices")
	}
	if len(node.Content) == 0 {
		return Category{}, errors.NewValidationError(name, "category has no items")
	}

	cat := Category{Name: name}
	for i := 0; i+1 < len(node.Content); i += 2 {
		itemName := node.Content[i].Value
		value := node.Content[i+1]

		if value.Kind != yaml.ScalarNode {
			return Category{}, errors.NewValidationError(name+" - "+itemName, "price must be a number")
		}
		p, err := decimal.NewFromString(value.Value)
		if err != nil {
			return Category{}, errors.NewValidationError(name+" - "+itemName, "price must be a number")
		}
		if p.IsNegative() {
			return Category{}, errors.NewValidationError(name+" - "+itemName, "price cannot be negative")
		}

		cat.Items = append(cat.Items, Item{Name: itemName, Price: p})
	}

	return cat, nil
}
