package order

import (
	"encoding/json"
	"errors"
	"fmt"

	orderRepo "tillpoint/database/repository/order"
	"tillpoint/models"
	"tillpoint/services/access"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeNotificationDeliver is the asynq task consumed by the delivery worker.
const TypeNotificationDeliver = "notification:deliver"

// Legal status transitions for a till order.
var transitions = map[string]string{
	models.OrderStatusOpen:      models.OrderStatusPreparing,
	models.OrderStatusPreparing: models.OrderStatusReady,
	models.OrderStatusReady:     models.OrderStatusClosed,
}

// CreateOrder opens a new order and notifies the kitchen.
func (s *DefaultOrderService) CreateOrder(cashierID string, items []models.OrderItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}

	number, err := s.Repo.NextOrderNumber()
	if err != nil {
		return nil, err
	}

	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.UnitPrice
	}

	ord := &models.Order{
		ID:        uuid.NewString(),
		Number:    number,
		CashierID: cashierID,
		Items:     items,
		Status:    models.OrderStatusOpen,
		Total:     total,
	}

	if err := s.Repo.Create(ord); err != nil {
		return nil, err
	}

	s.notifyRole(access.RoleKitchen, models.NotificationPayload{
		Type:  "order_created",
		Title: fmt.Sprintf("New order #%d", ord.Number),
		Body:  fmt.Sprintf("%d items waiting to be prepared.", len(ord.Items)),
		Data:  map[string]string{"orderId": ord.ID},
	})

	return ord, nil
}

// GetOrder returns one order.
func (s *DefaultOrderService) GetOrder(orderID string) (*models.Order, error) {
	return s.Repo.GetByID(orderID)
}

// ListOrders returns orders in the given status, newest first.
func (s *DefaultOrderService) ListOrders(status string) ([]models.Order, error) {
	return s.Repo.ListByStatus(status)
}

// AdvanceStatus moves an order one step along its lifecycle and notifies the
// side of the counter that has to act next.
func (s *DefaultOrderService) AdvanceStatus(orderID, nextStatus string) (*models.Order, error) {
	current, err := s.Repo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if transitions[current.Status] != nextStatus {
		return nil, fmt.Errorf("cannot move order from %s to %s", current.Status, nextStatus)
	}

	// Pin the observed status so a racing transition notifies only once.
	updated, err := s.Repo.UpdateStatus(orderID, current.Status, nextStatus)
	if err != nil {
		if errors.Is(err, orderRepo.ErrStatusConflict) {
			return nil, fmt.Errorf("order %s was updated concurrently, reload and retry", orderID)
		}
		return nil, err
	}

	switch nextStatus {
	case models.OrderStatusReady:
		s.enqueue(models.NotificationPayload{
			RecipientID: updated.CashierID,
			Type:        "order_ready",
			Title:       fmt.Sprintf("Order #%d is ready", updated.Number),
			Body:        "The kitchen finished preparing this order.",
			Data:        map[string]string{"orderId": updated.ID},
		})
	case models.OrderStatusClosed:
		s.notifyRole(access.RoleKitchen, models.NotificationPayload{
			Type:  "order_closed",
			Title: fmt.Sprintf("Order #%d collected", updated.Number),
			Body:  "The order has been handed over.",
			Data:  map[string]string{"orderId": updated.ID},
		})
	}

	return updated, nil
}

// notifyRole fans one payload out to every active staff member with the role.
func (s *DefaultOrderService) notifyRole(role access.Role, payload models.NotificationPayload) {
	all, err := s.Staff.GetAll()
	if err != nil {
		zap.L().Warn("failed to list staff for notification fan-out", zap.Error(err))
		return
	}
	for _, member := range all {
		if member.Role != string(role) || !member.Active {
			continue
		}
		payload.RecipientID = member.ID
		s.enqueue(payload)
	}
}

// enqueue hands a delivery to the background worker. Best-effort: a failed
// enqueue is logged and the order flow continues.
func (s *DefaultOrderService) enqueue(payload models.NotificationPayload) {
	if s.Queue == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("failed to marshal notification payload", zap.Error(err))
		return
	}
	if _, err := s.Queue.Enqueue(asynq.NewTask(TypeNotificationDeliver, body)); err != nil {
		zap.L().Warn("failed to enqueue notification delivery",
			zap.String("recipientId", payload.RecipientID),
			zap.Error(err))
	}
}
