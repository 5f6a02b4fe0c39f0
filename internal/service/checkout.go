package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/config"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/errors"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/events"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/logging"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/metrics"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/models"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/repository"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// CheckoutService turns finished orders into receipts and hands them to the
// archive, cache and event stream.
type CheckoutService struct {
	receipts  repository.ReceiptRepository
	cache     repository.ReceiptCache
	publisher events.Publisher
	metrics   *metrics.Recorder
	config    *config.Config
	logger    *logging.Logger
	now       func() time.Time
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	receipts repository.ReceiptRepository,
	cache repository.ReceiptCache,
	publisher events.Publisher,
	recorder *metrics.Recorder,
	cfg *config.Config,
) *CheckoutService {
	return &CheckoutService{
		receipts:  receipts,
		cache:     cache,
		publisher: publisher,
		metrics:   recorder,
		config:    cfg,
		logger:    logging.NewLogger("checkout-service"),
		now:       time.Now,
	}
}

// Checkout creates a receipt for the order. Empty orders get a receipt but are
// not archived or announced.
func (s *CheckoutService) Checkout(ctx context.Context, order *models.Order, channel models.Channel) (*models.Receipt, error) {
	receipt := &models.Receipt{
		ID:       uuid.NewString(),
		Items:    append([]models.LineItem(nil), order.Items...),
		Total:    order.Total(),
		Channel:  channel,
		PlacedAt: s.now().UTC(),
	}

	if order.Len() == 0 {
		s.logger.Info("Empty order, nothing to archive", logging.Fields{"channel": channel})
		return receipt, nil
	}

	if err := s.receipts.Save(ctx, receipt); err != nil {
		s.logger.Error("Failed to archive receipt", logging.Fields{
			"receipt_id": receipt.ID,
			"error":      err.Error(),
		})
		return nil, err
	}

	if s.config.Features.EnableReceiptCaching && s.cache != nil {
		if err := s.cache.Set(ctx, receipt); err != nil {
			// Log but don't fail
			s.logger.Error("Failed to cache receipt", logging.Fields{
				"receipt_id": receipt.ID,
				"error":      err.Error(),
			})
		}
	}

	if s.config.Features.EnableOrderEvents && s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(ctx, receipt); err != nil {
			// Log but don't fail
			s.logger.Error("Failed to publish order placed event", logging.Fields{
				"receipt_id": receipt.ID,
				"error":      err.Error(),
			})
		}
	}

	s.metrics.OrderPlaced(string(channel), receipt.Total)

	s.logger.Info("Order checked out", logging.Fields{
		"receipt_id": receipt.ID,
		"channel":    channel,
		"line_items": len(receipt.Items),
		"total":      receipt.Total.StringFixed(2),
	})

	return receipt, nil
}

// GetReceipt retrieves a receipt by ID, checking the cache first.
func (s *CheckoutService) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.ErrNotFound
	}

	if s.config.Features.EnableReceiptCaching && s.cache != nil {
		if receipt, err := s.cache.Get(ctx, id); err == nil && receipt != nil {
			s.logger.Debug("Receipt found in cache", logging.Fields{"receipt_id": id})
			return receipt, nil
		}
	}

	receipt, err := s.receipts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.config.Features.EnableReceiptCaching && s.cache != nil {
		if err := s.cache.Set(ctx, receipt); err != nil {
			s.logger.Warn("Failed to refresh receipt cache", logging.Fields{
				"receipt_id": id,
				"error":      err.Error(),
			})
		}
	}

	return receipt, nil
}

// ListReceipts returns the most recent receipts. limit is clamped to [1, 100];
// zero or negative means the default of 20.
func (s *CheckoutService) ListReceipts(ctx context.Context, limit int) ([]*models.Receipt, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.receipts.ListRecent(ctx, limit)
}
