package order

import (
	orderRepo "tillpoint/database/repository/order"
	staffRepo "tillpoint/database/repository/staff"
	"tillpoint/models"

	"github.com/hibiken/asynq"
)

// OrderService drives the till order lifecycle and tells the right role when
// an order changes hands.
type OrderService interface {
	CreateOrder(cashierID string, items []models.OrderItem) (*models.Order, error)
	GetOrder(orderID string) (*models.Order, error)
	ListOrders(status string) ([]models.Order, error)
	AdvanceStatus(orderID, nextStatus string) (*models.Order, error)
}

// DefaultOrderService is the production implementation.
type DefaultOrderService struct {
	Repo  orderRepo.OrderRepository
	Staff staffRepo.StaffRepository
	Queue *asynq.Client
}
