package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tm-acme-shop/acme-shop-takeout/internal/errors"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/menu"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/models"
)

// Validation error kinds shared by the console loop, the API and metrics.
const (
	KindNotANumber  = "not_a_number"
	KindOutOfRange  = "out_of_range"
	KindNotPositive = "not_positive"
)

const maxItemsPerRequest = 100

// ResolveSelection parses a menu number and resolves it against the entries
// of the current render. Non-numeric and out-of-range input is rejected.
func ResolveSelection(raw string, entries []models.MenuEntry) (models.MenuEntry, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return models.MenuEntry{}, errors.NewValidationError("selection", "please enter a number").
			WithKind(KindNotANumber)
	}

	entry, ok := menu.Lookup(entries, n)
	if !ok {
		verr := errors.NewValidationError("selection",
			fmt.Sprintf("menu selection %d is not valid, choose 1 to %d", n, len(entries))).
			WithKind(KindOutOfRange)
		verr.Details["selection"] = n
		return models.MenuEntry{}, verr
	}
	return entry, nil
}

// ParseQuantity parses a quantity. Input that is not a positive integer yields
// 1 together with a non-nil error describing why it was coerced.
func ParseQuantity(raw string) (int, *errors.ValidationError) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1, errors.NewValidationError("quantity", "Invalid input for quantity").
			WithKind(KindNotANumber)
	}
	if n < 1 {
		return 1, errors.NewValidationError("quantity", "Invalid quantity").
			WithKind(KindNotPositive)
	}
	return n, nil
}

// WantsToStop reports whether the answer to "anything else?" is "n".
func WantsToStop(raw string) bool {
	return strings.ToLower(strings.TrimSpace(raw)) == "n"
}

// ValidatePlaceOrderRequest validates an API order request.
func ValidatePlaceOrderRequest(req *models.PlaceOrderRequest) error {
	if len(req.Items) == 0 {
		return errors.NewValidationError("items", "at least one item is required")
	}

	if len(req.Items) > maxItemsPerRequest {
		return errors.NewValidationError("items",
			fmt.Sprintf("too many items (max %d)", maxItemsPerRequest))
	}

	return nil
}
