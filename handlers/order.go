package handlers

import (
	"net/http"

	"tillpoint/models"
	"tillpoint/services/order"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderHandler exposes the till order lifecycle.
type OrderHandler struct {
	Service order.OrderService
}

func NewOrderHandler(svc order.OrderService) *OrderHandler {
	return &OrderHandler{Service: svc}
}

type createOrderRequest struct {
	Items []models.OrderItem `json:"items" binding:"required"`
}

// CreateOrderHandler opens a new order for the authenticated cashier.
func (h *OrderHandler) CreateOrderHandler(c *gin.Context) {
	cashierID := c.GetString("staffID")

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	ord, err := h.Service.CreateOrder(cashierID, req.Items)
	if err != nil {
		getLogger(c).Error("Failed to create order", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ord)
}

// GetOrderHandler returns one order.
func (h *OrderHandler) GetOrderHandler(c *gin.Context) {
	ord, err := h.Service.GetOrder(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, ord)
}

// ListOrdersHandler returns orders filtered by status (defaults to open).
func (h *OrderHandler) ListOrdersHandler(c *gin.Context) {
	status := c.DefaultQuery("status", models.OrderStatusOpen)

	orders, err := h.Service.ListOrders(status)
	if err != nil {
		getLogger(c).Error("Failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

type advanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdvanceStatusHandler moves an order along its lifecycle.
func (h *OrderHandler) AdvanceStatusHandler(c *gin.Context) {
	var req advanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	ord, err := h.Service.AdvanceStatus(c.Param("id"), req.Status)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ord)
}
