package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/tm-acme-shop/acme-shop-takeout/internal/errors"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/logging"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/models"
)

// Schema creates the receipts table when it does not exist yet.
const Schema = `
CREATE TABLE IF NOT EXISTS receipts (
	id          TEXT PRIMARY KEY,
	channel     TEXT NOT NULL,
	items       JSONB NOT NULL,
	total       NUMERIC(12, 2) NOT NULL,
	placed_at   TIMESTAMPTZ NOT NULL
)`

// PostgresReceiptRepository implements ReceiptRepository using PostgreSQL.
type PostgresReceiptRepository struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewPostgresReceiptRepository creates a new PostgreSQL receipt repository.
func NewPostgresReceiptRepository(db *sql.DB, logger *logging.Logger) *PostgresReceiptRepository {
	return &PostgresReceiptRepository{
		db:     db,
		logger: logger,
	}
}

// Migrate applies Schema.
func (r *PostgresReceiptRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate receipts: %w", err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (r *PostgresReceiptRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *PostgresReceiptRepository) Save(ctx context.Context, receipt *models.Receipt) error {
	itemsJSON, err := json.Marshal(receipt.Items)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO receipts (id, channel, items, total, placed_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`,
		receipt.ID,
		string(receipt.Channel),
		itemsJSON,
		receipt.Total.StringFixed(2),
		receipt.PlacedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save receipt", logging.Fields{
			"receipt_id": receipt.ID,
			"error":      err.Error(),
		})
		return err
	}

	r.logger.Debug("Receipt saved", logging.Fields{"receipt_id": receipt.ID})
	return nil
}

func (r *PostgresReceiptRepository) GetByID(ctx context.Context, id string) (*models.Receipt, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, channel, items, total, placed_at
		FROM receipts
		WHERE id = $1`, id)

	receipt, err := scanReceipt(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to fetch receipt", logging.Fields{
			"receipt_id": id,
			"error":      err.Error(),
		})
		return nil, err
	}
	return receipt, nil
}

func (r *PostgresReceiptRepository) ListRecent(ctx context.Context, limit int) ([]*models.Receipt, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, channel, items, total, placed_at
		FROM receipts
		ORDER BY placed_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []*models.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	return receipts, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReceipt(s scanner) (*models.Receipt, error) {
	var receipt models.Receipt
	var channel string
	var itemsJSON []byte

	if err := s.Scan(&receipt.ID, &channel, &itemsJSON, &receipt.Total, &receipt.PlacedAt); err != nil {
		return nil, err
	}
	receipt.Channel = models.Channel(channel)

	if err := json.Unmarshal(itemsJSON, &receipt.Items); err != nil {
		return nil, err
	}
	return &receipt, nil
}
