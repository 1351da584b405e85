package models

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	StatusPending InvoiceStatus = "pending"
	StatusPaid    InvoiceStatus = "paid"
)

func (s InvoiceStatus) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// Invoice is a stored invoice row. Amount is in minor currency units (cents).
type Invoice struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	CustomerID uuid.UUID     `json:"customer_id" db:"customer_id"`
	Amount     int64         `json:"amount" db:"amount"`
	Status     InvoiceStatus `json:"status" db:"status"`
	Date       string        `json:"date" db:"date"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}

// NewInvoice is a validated, normalized submission ready to persist.
// CustomerID stays a string here: the store owns the id format.
type NewInvoice struct {
	CustomerID  string
	AmountCents int64
	Status      InvoiceStatus
	Date        string
}
