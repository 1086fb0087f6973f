package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

func newOrderFixture(t *testing.T) (*OrderService, *fakeOrderRepo, *fakeGuestRepo, *recordingDispatcher, string) {
	t.Helper()
	guests := newFakeGuestRepo()
	guest := &domain.Guest{Name: "An", TableNumber: 5}
	if err := guests.Create(context.Background(), guest); err != nil {
		t.Fatalf("seed guest: %v", err)
	}

	dishes := newFakeDishRepo(
		domain.Dish{ID: "dish-pho", Name: "Phở bò", Price: 50000, Status: domain.DishStatusAvailable},
		domain.Dish{ID: "dish-bun", Name: "Bún chả", Price: 45000, Status: domain.DishStatusAvailable},
		domain.Dish{ID: "dish-out", Name: "Cơm tấm", Price: 40000, Status: domain.DishStatusUnavailable},
	)

	orders := newFakeOrderRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewOrderService(orders, dishes, guests, dispatcher)
	return svc, orders, guests, dispatcher, guest.ID
}

func TestCreateGuestOrders(t *testing.T) {
	svc, _, _, dispatcher, guestID := newOrderFixture(t)

	created, err := svc.CreateGuestOrders(context.Background(), guestID, []CreateOrderItem{
		{DishID: "dish-pho", Quantity: 2},
		{DishID: "dish-bun", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("create orders: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(created))
	}
	for _, order := range created {
		if order.Status != domain.OrderStatusPending {
			t.Fatalf("new order must be pending, got %s", order.Status)
		}
	}
	if created[0].DishSnapshot.Name != "Phở bò" || created[0].DishSnapshot.Price != 50000 {
		t.Fatalf("snapshot must freeze the dish, got %+v", created[0].DishSnapshot)
	}

	published := dispatcher.published()
	if len(published) != 1 {
		t.Fatalf("expected one event, got %d", len(published))
	}
	event := published[0]
	if event.Type != events.EventOrderCreated {
		t.Fatalf("expected %s, got %s", events.EventOrderCreated, event.Type)
	}
	if event.GuestID != guestID {
		t.Fatalf("event must be scoped to the ordering guest")
	}
	payload, ok := event.Payload.([]events.OrderPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", event.Payload)
	}
	if len(payload) != 2 {
		t.Fatalf("payload must carry the full batch, got %d", len(payload))
	}
}

func TestCreateGuestOrders_UnavailableDish(t *testing.T) {
	svc, _, _, dispatcher, guestID := newOrderFixture(t)

	_, err := svc.CreateGuestOrders(context.Background(), guestID, []CreateOrderItem{
		{DishID: "dish-out", Quantity: 1},
	})
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || len(domainErr.Fields) == 0 {
		t.Fatalf("expected field-scoped validation error, got %v", err)
	}
	if domainErr.Fields[0].Field != "dishId" {
		t.Fatalf("expected dishId field error, got %+v", domainErr.Fields)
	}
	if len(dispatcher.published()) != 0 {
		t.Fatalf("failed creation must not publish events")
	}
}

func TestCreateGuestOrders_EmptyBatch(t *testing.T) {
	svc, _, _, _, guestID := newOrderFixture(t)

	_, err := svc.CreateGuestOrders(context.Background(), guestID, nil)
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 422 {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestUpdateOrder(t *testing.T) {
	svc, _, _, dispatcher, guestID := newOrderFixture(t)

	created, err := svc.CreateGuestOrders(context.Background(), guestID, []CreateOrderItem{
		{DishID: "dish-pho", Quantity: 1},
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}

	updated, err := svc.UpdateOrder(context.Background(), created[0].ID, OrderUpdate{
		Status:   domain.OrderStatusProcessing,
		Quantity: 3,
	}, "account-1")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.OrderStatusProcessing || updated.Quantity != 3 {
		t.Fatalf("unexpected order after update: %+v", updated)
	}
	if updated.HandlerID == nil || *updated.HandlerID != "account-1" {
		t.Fatalf("handler must be recorded")
	}

	published := dispatcher.published()
	last := published[len(published)-1]
	if last.Type != events.EventOrderUpdated {
		t.Fatalf("expected %s, got %s", events.EventOrderUpdated, last.Type)
	}
	if last.GuestID != guestID {
		t.Fatalf("update event must be scoped to the order's guest")
	}
}

func TestUpdateOrder_UnknownStatus(t *testing.T) {
	svc, _, _, _, _ := newOrderFixture(t)

	_, err := svc.UpdateOrder(context.Background(), "order-1", OrderUpdate{
		Status:   "Cooked",
		Quantity: 1,
	}, "account-1")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 422 {
		t.Fatalf("expected 422 for unknown status, got %v", err)
	}
}

func TestPayGuestOrders(t *testing.T) {
	svc, _, _, dispatcher, guestID := newOrderFixture(t)

	created, err := svc.CreateGuestOrders(context.Background(), guestID, []CreateOrderItem{
		{DishID: "dish-pho", Quantity: 1},
		{DishID: "dish-bun", Quantity: 2},
	})
	if err != nil {
		t.Fatalf("seed orders: %v", err)
	}
	for _, order := range created {
		if _, err := svc.UpdateOrder(context.Background(), order.ID, OrderUpdate{
			Status:   domain.OrderStatusDelivered,
			Quantity: order.Quantity,
		}, "account-1"); err != nil {
			t.Fatalf("deliver: %v", err)
		}
	}

	paid, err := svc.PayGuestOrders(context.Background(), guestID, "account-1")
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if len(paid) != 2 {
		t.Fatalf("expected 2 paid orders, got %d", len(paid))
	}
	for _, order := range paid {
		if order.Status != domain.OrderStatusPaid {
			t.Fatalf("expected paid status, got %s", order.Status)
		}
	}

	published := dispatcher.published()
	last := published[len(published)-1]
	if last.Type != events.EventOrdersPaid {
		t.Fatalf("expected %s, got %s", events.EventOrdersPaid, last.Type)
	}
	payload, ok := last.Payload.([]events.OrderPayload)
	if !ok || len(payload) != 2 {
		t.Fatalf("payment event must carry the settled batch, got %T", last.Payload)
	}

	// Nothing left to pay; a second settle attempt is a validation error.
	if _, err := svc.PayGuestOrders(context.Background(), guestID, "account-1"); err == nil {
		t.Fatalf("expected error when guest has no delivered orders")
	}
}
