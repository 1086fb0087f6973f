package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// CreateOrderItem is one line of a guest's order submission.
type CreateOrderItem struct {
	DishID   string
	Quantity int
}

// OrderUpdate carries mutable order fields for staff edits.
type OrderUpdate struct {
	Status   domain.OrderStatus
	Quantity int
}

// OrderService coordinates guest ordering, staff handling and payment.
type OrderService struct {
	orders     repository.OrderRepository
	dishes     repository.DishRepository
	guests     repository.GuestRepository
	dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, dishes repository.DishRepository, guests repository.GuestRepository, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{orders: orders, dishes: dishes, guests: guests, dispatcher: dispatcher}
}

// CreateGuestOrders places a batch of orders for the guest. Each dish is
// frozen into a snapshot at order time.
func (s *OrderService) CreateGuestOrders(ctx context.Context, guestID string, items []CreateOrderItem) ([]domain.Order, error) {
	if len(items) == 0 {
		return nil, apperrors.NewEntityError(apperrors.FieldError{
			Field: "orders", Message: "at least one order item is required",
		})
	}

	guest, err := s.guests.GetByID(ctx, guestID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	orders := make([]domain.Order, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, apperrors.NewEntityError(apperrors.FieldError{
				Field: "quantity", Message: "quantity must be positive",
			})
		}
		dish, err := s.dishes.GetByID(ctx, item.DishID)
		if err != nil {
			return nil, apperrors.NewEntityError(apperrors.FieldError{
				Field: "dishId", Message: "dish does not exist",
			})
		}
		if dish.Status != domain.DishStatusAvailable {
			return nil, apperrors.NewEntityError(apperrors.FieldError{
				Field: "dishId", Message: "dish is not available",
			})
		}

		snapshot := domain.DishSnapshot{
			DishID:      &dish.ID,
			Name:        dish.Name,
			Price:       dish.Price,
			Description: dish.Description,
			Image:       dish.Image,
			Status:      dish.Status,
		}
		if err := s.orders.CreateSnapshot(ctx, &snapshot); err != nil {
			return nil, err
		}

		order := domain.Order{
			GuestID:      &guest.ID,
			GuestName:    guest.Name,
			TableNumber:  guest.TableNumber,
			DishSnapshot: snapshot,
			Quantity:     item.Quantity,
			Status:       domain.OrderStatusPending,
		}
		if err := s.orders.Create(ctx, &order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	s.publish(ctx, events.EventOrderCreated, guest.ID, events.NewOrdersPayload(orders))
	return orders, nil
}

// UpdateOrder lets staff change an order's status or quantity.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID string, update OrderUpdate, handlerID string) (*domain.Order, error) {
	if !update.Status.Valid() {
		return nil, apperrors.NewEntityError(apperrors.FieldError{
			Field: "status", Message: "unknown status",
		})
	}
	if update.Quantity <= 0 {
		return nil, apperrors.NewEntityError(apperrors.FieldError{
			Field: "quantity", Message: "quantity must be positive",
		})
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	order.Status = update.Status
	order.Quantity = update.Quantity
	order.HandlerID = &handlerID
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, apperrors.MapError(err)
	}

	guestID := ""
	if order.GuestID != nil {
		guestID = *order.GuestID
	}
	s.publish(ctx, events.EventOrderUpdated, guestID, events.NewOrderPayload(*order))
	return order, nil
}

// PayGuestOrders marks every delivered order of the guest as paid and
// emits a single payment event carrying the full batch in order.
func (s *OrderService) PayGuestOrders(ctx context.Context, guestID, handlerID string) ([]domain.Order, error) {
	payable, err := s.orders.List(ctx, repository.OrderFilter{
		GuestID:  &guestID,
		Statuses: []domain.OrderStatus{domain.OrderStatusDelivered},
	})
	if err != nil {
		return nil, err
	}
	if len(payable) == 0 {
		return nil, apperrors.NewEntityError(apperrors.FieldError{
			Field: "guestId", Message: "guest has no orders waiting for payment",
		})
	}

	paid := make([]domain.Order, 0, len(payable))
	for _, order := range payable {
		order.Status = domain.OrderStatusPaid
		order.HandlerID = &handlerID
		if err := s.orders.Update(ctx, &order); err != nil {
			return nil, apperrors.MapError(err)
		}
		paid = append(paid, order)
	}

	s.publish(ctx, events.EventOrdersPaid, guestID, events.NewOrdersPayload(paid))
	return paid, nil
}

// ListOrders returns orders for the manage console.
func (s *OrderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	return s.orders.List(ctx, filter)
}

// ListGuestOrders returns the calling guest's own orders.
func (s *OrderService) ListGuestOrders(ctx context.Context, guestID string) ([]domain.Order, error) {
	return s.orders.List(ctx, repository.OrderFilter{GuestID: &guestID})
}

// GetOrder returns one order.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return order, nil
}

func (s *OrderService) publish(ctx context.Context, eventType events.EventType, guestID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		GuestID:   guestID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	_ = s.dispatcher.Publish(ctx, event)
}
