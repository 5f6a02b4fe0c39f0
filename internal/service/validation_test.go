package service

import (
	"testing"

	"github.com/tm-acme-shop/acme-shop-takeout/internal/errors"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/menu"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/models"
)

func TestResolveSelection(t *testing.T) {
	entries := menu.Flatten(twoItemCatalog())

	tests := []struct {
		name     string
		input    string
		wantName string
		wantKind string
	}{
		{"first", "1", "A - x", ""},
		{"padded", " 2 ", "B - y", ""},
		{"zero", "0", "", KindOutOfRange},
		{"past end", "3", "", KindOutOfRange},
		{"negative", "-1", "", KindOutOfRange},
		{"letters", "two", "", KindNotANumber},
		{"empty", "", "", KindNotANumber},
		{"decimal", "1.0", "", KindNotANumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := ResolveSelection(tt.input, entries)

			if tt.wantKind == "" {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if entry.Name != tt.wantName {
					t.Errorf("Expected %q, got %q", tt.wantName, entry.Name)
				}
				return
			}

			verr, ok := errors.AsValidation(err)
			if !ok {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if verr.Kind != tt.wantKind {
				t.Errorf("Expected kind %s, got %s", tt.wantKind, verr.Kind)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		input    string
		want     int
		wantKind string
	}{
		{"3", 3, ""},
		{" 12 ", 12, ""},
		{"1", 1, ""},
		{"0", 1, KindNotPositive},
		{"-2", 1, KindNotPositive},
		{"abc", 1, KindNotANumber},
		{"", 1, KindNotANumber},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, verr := ParseQuantity(tt.input)
			if got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}

			if tt.wantKind == "" {
				if verr != nil {
					t.Errorf("Unexpected error: %v", verr)
				}
				return
			}
			if verr == nil || verr.Kind != tt.wantKind {
				t.Errorf("Expected kind %s, got %v", tt.wantKind, verr)
			}
		})
	}
}

func TestValidatePlaceOrderRequest(t *testing.T) {
	if err := ValidatePlaceOrderRequest(&models.PlaceOrderRequest{}); err == nil {
		t.Error("Expected error for empty request")
	}

	tooMany := &models.PlaceOrderRequest{Items: make([]models.Selection, maxItemsPerRequest+1)}
	if err := ValidatePlaceOrderRequest(tooMany); err == nil {
		t.Error("Expected error for oversized request")
	}

	ok := &models.PlaceOrderRequest{Items: []models.Selection{{Selection: "1", Quantity: "1"}}}
	if err := ValidatePlaceOrderRequest(ok); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}
