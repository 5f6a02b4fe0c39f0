package events

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/models"
)

func testReceipt() *models.Receipt {
	return &models.Receipt{
		ID: "0b6e3c52-9d1f-4a4e-8f43-5a8f6f1f2d10",
		Items: []models.LineItem{
			{Name: "Burger - Beef", Price: decimal.RequireFromString("8.49"), Quantity: 1},
		},
		Total:    decimal.RequireFromString("8.49"),
		Channel:  models.ChannelAPI,
		PlacedAt: time.Now().UTC(),
	}
}

func TestNewOrderPlacedEvent(t *testing.T) {
	event, err := NewOrderPlacedEvent(testReceipt())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if event.Type != EventTypeOrderPlaced {
		t.Errorf("Expected type order.placed, got %s", event.Type)
	}
	if !strings.HasPrefix(event.ID, "evt_") {
		t.Errorf("Expected event ID to start with 'evt_', got %s", event.ID)
	}
	if event.Metadata["channel"] != "api" {
		t.Errorf("Expected channel metadata 'api', got %s", event.Metadata["channel"])
	}

	var payload models.Receipt
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	if payload.ID != event.OrderID {
		t.Errorf("Expected payload ID %s, got %s", event.OrderID, payload.ID)
	}
}

func TestMockEventPublisher(t *testing.T) {
	m := NewMockEventPublisher()

	if err := m.PublishOrderPlaced(context.Background(), testReceipt()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(m.Events) != 1 {
		t.Errorf("Expected 1 event, got %d", len(m.Events))
	}

	m.Err = stderrors.New("broker down")
	if err := m.PublishOrderPlaced(context.Background(), testReceipt()); err == nil {
		t.Error("Expected error")
	}
	if len(m.Events) != 1 {
		t.Errorf("Expected failed publish not to be recorded, got %d", len(m.Events))
	}
}
