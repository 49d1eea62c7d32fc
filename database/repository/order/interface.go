package orderRepo

import (
	"errors"

	"tillpoint/models"
)

// ErrStatusConflict is returned when a status transition loses the race: the
// order is no longer in the status the caller observed.
var ErrStatusConflict = errors.New("order status changed concurrently")

// OrderRepository defines persistence operations for till orders.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	ListByStatus(status string) ([]models.Order, error)

	// UpdateStatus transitions an order from fromStatus to toStatus. The
	// write only lands if the order is still in fromStatus; otherwise
	// ErrStatusConflict is returned.
	UpdateStatus(id, fromStatus, toStatus string) (*models.Order, error)

	NextOrderNumber() (int64, error)
}
