package repository

import (
	"context"
	"sync"

	"github.com/tm-acme-shop/acme-shop-takeout/internal/errors"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/models"
)

// MemoryReceiptRepository keeps receipts for the lifetime of the process.
type MemoryReceiptRepository struct {
	mu       sync.RWMutex
	receipts map[string]*models.Receipt
	order    []string
}

func NewMemoryReceiptRepository() *MemoryReceiptRepository {
	return &MemoryReceiptRepository{
		receipts: make(map[string]*models.Receipt),
	}
}

func (r *MemoryReceiptRepository) Save(ctx context.Context, receipt *models.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.receipts[receipt.ID]; !exists {
		r.order = append(r.order, receipt.ID)
	}
	r.receipts[receipt.ID] = cloneReceipt(receipt)
	return nil
}

func (r *MemoryReceiptRepository) GetByID(ctx context.Context, id string) (*models.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	receipt, ok := r.receipts[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return cloneReceipt(receipt), nil
}

// ListRecent returns up to limit receipts, newest first.
func (r *MemoryReceiptRepository) ListRecent(ctx context.Context, limit int) ([]*models.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Receipt, 0, limit)
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, cloneReceipt(r.receipts[r.order[i]]))
	}
	return out, nil
}

func cloneReceipt(in *models.Receipt) *models.Receipt {
	out := *in
	out.Items = append([]models.LineItem(nil), in.Items...)
	return &out
}
