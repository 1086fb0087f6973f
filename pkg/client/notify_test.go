package client

import (
	"strings"
	"testing"
)

func TestOrderStatusName(t *testing.T) {
	cases := []struct {
		locale, status, want string
	}{
		{LocaleVI, "Pending", "Chờ xử lý"},
		{LocaleVI, "Processing", "Đang nấu"},
		{LocaleVI, "Delivered", "Đã phục vụ"},
		{LocaleVI, "Paid", "Đã thanh toán"},
		{LocaleVI, "Rejected", "Từ chối"},
		{LocaleEN, "Delivered", "Delivered"},
		{LocaleEN, "bogus", "Rejected"},
	}
	for _, tc := range cases {
		if got := OrderStatusName(tc.locale, tc.status); got != tc.want {
			t.Errorf("OrderStatusName(%q, %q) = %q, want %q", tc.locale, tc.status, got, tc.want)
		}
	}
}

func TestUpdateOrderMessage(t *testing.T) {
	order := Order{
		Quantity:     2,
		Status:       "Processing",
		DishSnapshot: DishSnapshot{Name: "Phở bò"},
	}

	vi := UpdateOrderMessage(LocaleVI, order)
	if !strings.Contains(vi, "Phở bò") || !strings.Contains(vi, "Đang nấu") {
		t.Fatalf("unexpected vi message: %q", vi)
	}

	en := UpdateOrderMessage(LocaleEN, order)
	if !strings.Contains(en, "Phở bò") || !strings.Contains(en, "Processing") {
		t.Fatalf("unexpected en message: %q", en)
	}
}

func TestPaymentMessage(t *testing.T) {
	orders := []Order{
		{ID: "o1", Guest: &OrderGuest{Name: "An", TableNumber: 5}},
		{ID: "o2", Guest: &OrderGuest{Name: "An", TableNumber: 5}},
	}

	vi := PaymentMessage(LocaleVI, orders)
	if !strings.Contains(vi, "An") || !strings.Contains(vi, "5") || !strings.Contains(vi, "2") {
		t.Fatalf("unexpected vi message: %q", vi)
	}

	en := PaymentMessage(LocaleEN, orders)
	if !strings.Contains(en, "An") || !strings.Contains(en, "table 5") || !strings.Contains(en, "2 orders") {
		t.Fatalf("unexpected en message: %q", en)
	}

	if msg := PaymentMessage(LocaleEN, nil); msg != "" {
		t.Fatalf("empty batch must produce empty message, got %q", msg)
	}
}
