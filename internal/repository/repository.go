package repository

import (
	"context"

	"github.com/tm-acme-shop/acme-shop-takeout/internal/models"
)

// ReceiptRepository archives checked-out orders.
type ReceiptRepository interface {
	Save(ctx context.Context, receipt *models.Receipt) error
	GetByID(ctx context.Context, id string) (*models.Receipt, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Receipt, error)
}

// ReceiptCache defines caching operations for receipts.
type ReceiptCache interface {
	Get(ctx context.Context, id string) (*models.Receipt, error)
	Set(ctx context.Context, receipt *models.Receipt) error
}

var (
	_ ReceiptRepository = (*PostgresReceiptRepository)(nil)
	_ ReceiptRepository = (*MemoryReceiptRepository)(nil)
	_ ReceiptCache      = (*RedisReceiptCache)(nil)
)
