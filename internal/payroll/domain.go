package payroll

import "time"

// Entry is one month's salary record for a staff member.
type Entry struct {
	ID               int64     `json:"id"`
	StaffID          int64     `json:"staff_id"`
	Month            string    `json:"month"`
	SalaryAmount     float64   `json:"salary_amount"`
	PaymentDate      *string   `json:"payment_date"`
	Status           string    `json:"status"`
	RecordedByUserID int64     `json:"recorded_by_user_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateEntryRequest is the POST /payroll body.
type CreateEntryRequest struct {
	StaffID      int64   `json:"staff_id" validate:"required,gt=0"`
	Month        string  `json:"month" validate:"required,datetime=2006-01"`
	SalaryAmount float64 `json:"salary_amount" validate:"gt=0"`
	PaymentDate  *string `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	Status       string  `json:"status" validate:"required,oneof=paid unpaid pending"`
}

// UpdateEntryRequest is the PUT /payroll body. The staff member an entry
// belongs to cannot be changed.
type UpdateEntryRequest struct {
	ID           int64    `json:"id"`
	Month        *string  `json:"month" validate:"omitempty,datetime=2006-01"`
	SalaryAmount *float64 `json:"salary_amount" validate:"omitempty,gt=0"`
	PaymentDate  *string  `json:"payment_date" validate:"omitempty,datetime=2006-01-02"`
	Status       *string  `json:"status" validate:"omitempty,oneof=paid unpaid pending"`
}

func (r UpdateEntryRequest) empty() bool {
	return r.Month == nil && r.SalaryAmount == nil && r.PaymentDate == nil && r.Status == nil
}
