package service

import (
	"context"
	"fmt"

	"github.com/tm-acme-shop/acme-shop-takeout/internal/errors"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/logging"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/menu"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/models"
)

// OrderService applies the console ordering rules to whole orders submitted
// through the API.
type OrderService struct {
	catalog  menu.Catalog
	checkout *CheckoutService
	metrics  *metrics.Recorder
	logger   *logging.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(catalog menu.Catalog, checkout *CheckoutService, recorder *metrics.Recorder) *OrderService {
	return &OrderService{
		catalog:  catalog,
		checkout: checkout,
		metrics:  recorder,
		logger:   logging.NewLogger("order-service"),
	}
}

// Menu returns the numbered menu.
func (s *OrderService) Menu() []models.MenuEntry {
	return menu.Flatten(s.catalog)
}

// BuildOrder resolves every selection against one render of the menu. A
// single invalid selection rejects the batch; bad quantities become 1.
func (s *OrderService) BuildOrder(selections []models.Selection) (*models.Order, error) {
	entries := menu.Flatten(s.catalog)
	order := &models.Order{}

	for i, sel := range selections {
		entry, err := ResolveSelection(sel.Selection, entries)
		if err != nil {
			verr, _ := errors.AsValidation(err)
			s.metrics.SelectionRejected(verr.Kind)
			verr.Field = fmt.Sprintf("items[%d].selection", i)
			verr.Details["field"] = verr.Field
			verr.Details["index"] = i
			return nil, verr
		}

		quantity, qerr := ParseQuantity(sel.Quantity)
		if qerr != nil {
			s.metrics.QuantityCoerced()
			s.logger.Debug("Quantity coerced", logging.Fields{
				"index": i,
				"input": sel.Quantity,
				"kind":  qerr.Kind,
			})
		}

		order.Add(entry, quantity)
		s.metrics.ItemAdded()
	}

	return order, nil
}

// PlaceOrder validates, builds and checks out an API order.
func (s *OrderService) PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest) (*models.Receipt, error) {
	if err := ValidatePlaceOrderRequest(req); err != nil {
		return nil, err
	}

	order, err := s.BuildOrder(req.Items)
	if err != nil {
		s.logger.Info("Order rejected", logging.Fields{"error": err.Error()})
		return nil, err
	}

	return s.checkout.Checkout(ctx, order, models.ChannelAPI)
}

func (s *OrderService) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	return s.checkout.GetReceipt(ctx, id)
}

func (s *OrderService) ListReceipts(ctx context.Context, limit int) ([]*models.Receipt, error) {
	return s.checkout.ListReceipts(ctx, limit)
}
