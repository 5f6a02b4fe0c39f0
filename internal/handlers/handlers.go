package handlers

import (
	"context"

	"github.com/tm-acme-shop/acme-shop-takeout/internal/config"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/logging"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/service"
)

// ReadinessCheck reports whether a dependency can serve requests.
type ReadinessCheck func(ctx context.Context) error

// Handlers holds all HTTP handlers for the takeout service.
type Handlers struct {
	orderService *service.OrderService
	config       *config.Config
	logger       *logging.Logger
	checks       map[string]ReadinessCheck
}

// NewHandlers creates a new handlers instance.
func NewHandlers(orderService *service.OrderService, cfg *config.Config) *Handlers {
	return &Handlers{
		orderService: orderService,
		config:       cfg,
		logger:       logging.NewLogger("handlers"),
	}
}

// AddReadinessCheck registers a dependency probed by GET /ready.
func (h *Handlers) AddReadinessCheck(name string, check ReadinessCheck) {
	if h.checks == nil {
		h.checks = make(map[string]ReadinessCheck)
	}
	h.checks[name] = check
}
