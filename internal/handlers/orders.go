package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/errors"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/logging"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/models"
	"github.com/tm-acme-shop/acme-shop-takeout/internal/receipt"
)

// GetMenu handles GET /api/v1/menu
func (h *Handlers) GetMenu(c *gin.Context) {
	entries := h.orderService.Menu()
	c.JSON(http.StatusOK, gin.H{
		"items": entries,
		"count": len(entries),
	})
}

// PlaceOrder handles POST /api/v1/orders
func (h *Handlers) PlaceOrder(c *gin.Context) {
	var req models.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind request", logging.Fields{"error": err.Error()})
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rcpt, err := h.orderService.PlaceOrder(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rcpt)
}

// ListOrders handles GET /api/v1/orders
func (h *Handlers) ListOrders(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			handleError(c, errors.NewValidationError("limit", "limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	receipts, err := h.orderService.ListReceipts(c.Request.Context(), limit)
	if err != nil {
		handleError(c, err)
		return
	}

	if receipts == nil {
		receipts = []*models.Receipt{}
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": receipts,
		"count":  len(receipts),
	})
}

// GetOrder handles GET /api/v1/orders/:id
func (h *Handlers) GetOrder(c *gin.Context) {
	rcpt, err := h.orderService.GetReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, rcpt)
}

// GetOrderReceipt handles GET /api/v1/orders/:id/receipt
func (h *Handlers) GetOrderReceipt(c *gin.Context) {
	rcpt, err := h.orderService.GetReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.String(http.StatusOK, receipt.String(rcpt.Items, rcpt.Total))
}

func handleError(c *gin.Context, err error) {
	if errors.Is(err, errors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if validationErr, ok := errors.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   validationErr.Message,
			"details": validationErr.Details,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
