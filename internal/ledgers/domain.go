// Package ledgers records per-customer and per-supplier account movements.
package ledgers

import "time"

// CustomerEntry is a debit or credit on a customer's account.
type CustomerEntry struct {
	ID               int64     `json:"id"`
	CustomerID       int64     `json:"customer_id"`
	Description      string    `json:"description"`
	Amount           float64   `json:"amount"`
	Type             string    `json:"type"`
	RecordedByUserID int64     `json:"recorded_by_user_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateCustomerEntryRequest is the POST /customer-ledger body.
type CreateCustomerEntryRequest struct {
	CustomerID  int64   `json:"customer_id" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required,max=500"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Type        string  `json:"type" validate:"required,oneof=debit credit"`
}

// SupplierEntry is a purchase from or payment to a supplier.
type SupplierEntry struct {
	ID               int64     `json:"id"`
	SupplierID       int64     `json:"supplier_id"`
	TransactionType  string    `json:"transaction_type"`
	Amount           float64   `json:"amount"`
	Description      string    `json:"description"`
	RecordedByUserID int64     `json:"recorded_by_user_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateSupplierEntryRequest is the POST /supplier-ledger body.
type CreateSupplierEntryRequest struct {
	SupplierID      int64   `json:"supplier_id" validate:"required,gt=0"`
	TransactionType string  `json:"transaction_type" validate:"required,oneof=purchase payment"`
	Amount          float64 `json:"amount" validate:"gt=0"`
	Description     string  `json:"description" validate:"required,max=500"`
}
