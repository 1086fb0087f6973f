package domain

import "time"

// TableStatus enumerates lifecycle states for tables.
type TableStatus string

const (
	TableStatusAvailable TableStatus = "Available"
	TableStatusReserved  TableStatus = "Reserved"
	TableStatusHidden    TableStatus = "Hidden"
)

// Table is a physical table. Token is the secret embedded in the table's
// QR code; rotating it invalidates previously printed codes.
type Table struct {
	Number    int
	Capacity  int
	Status    TableStatus
	Token     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
