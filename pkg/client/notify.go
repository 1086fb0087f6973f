package client

import "fmt"

// Supported notification locales.
const (
	LocaleVI = "vi"
	LocaleEN = "en"
)

var viOrderStatus = map[string]string{
	"Pending":    "Chờ xử lý",
	"Processing": "Đang nấu",
	"Delivered":  "Đã phục vụ",
	"Paid":       "Đã thanh toán",
}

// OrderStatusName renders an order status for the given locale. An
// unknown status falls back to the rejected wording, matching how the
// status set is closed over five values.
func OrderStatusName(locale, status string) string {
	if locale == LocaleVI {
		if name, ok := viOrderStatus[status]; ok {
			return name
		}
		return "Từ chối"
	}
	switch status {
	case "Pending", "Processing", "Delivered", "Paid":
		return status
	default:
		return "Rejected"
	}
}

// UpdateOrderMessage builds the notification text for an update-order
// event.
func UpdateOrderMessage(locale string, order Order) string {
	status := OrderStatusName(locale, order.Status)
	if locale == LocaleVI {
		return fmt.Sprintf("Món %s (số lượng: %d) vừa được cập nhật sang trạng thái %q",
			order.DishSnapshot.Name, order.Quantity, status)
	}
	return fmt.Sprintf("Dish %s (quantity: %d) is now %q",
		order.DishSnapshot.Name, order.Quantity, status)
}

// PaymentMessage builds the notification text for a payment event,
// which carries the full batch of settled orders. The guest identity
// is read from the first order of the batch.
func PaymentMessage(locale string, orders []Order) string {
	if len(orders) == 0 {
		return ""
	}

	guestName := ""
	tableNumber := orders[0].TableNumber
	if orders[0].Guest != nil {
		guestName = orders[0].Guest.Name
		tableNumber = orders[0].Guest.TableNumber
	}

	if locale == LocaleVI {
		return fmt.Sprintf("Khách %s tại bàn %d đã thanh toán thành công %d đơn",
			guestName, tableNumber, len(orders))
	}
	return fmt.Sprintf("Guest %s at table %d paid %d orders successfully",
		guestName, tableNumber, len(orders))
}

// DishStatusName renders a dish status for the given locale.
func DishStatusName(locale, status string) string {
	if locale == LocaleVI {
		switch status {
		case "Available":
			return "Có sẵn"
		case "Unavailable":
			return "Không có sẵn"
		default:
			return "Ẩn"
		}
	}
	return status
}

// TableStatusName renders a table status for the given locale.
func TableStatusName(locale, status string) string {
	if locale == LocaleVI {
		switch status {
		case "Available":
			return "Có sẵn"
		case "Reserved":
			return "Đã đặt"
		default:
			return "Ẩn"
		}
	}
	return status
}
