// Package deposits records cash banked by staff.
package deposits

import "time"

// Deposit is an amount of cash taken to the bank.
type Deposit struct {
	ID          int64     `json:"id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	InitiatedAt time.Time `json:"initiated_at"`
	StaffID     int64     `json:"staff_id"`
}

// CreateDepositRequest is the POST /bank-deposits body.
type CreateDepositRequest struct {
	Amount      float64 `json:"amount" validate:"gt=0"`
	Description string  `json:"description" validate:"required,max=500"`
}

// Listing is the GET /bank-deposits body: every visible deposit plus
// their summed amount.
type Listing struct {
	Deposits []Deposit `json:"deposits"`
	Total    float64   `json:"total"`
}
