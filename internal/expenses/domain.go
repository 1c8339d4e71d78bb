package expenses

import "time"

// Expense is an operating cost recorded against a vehicle or activity.
type Expense struct {
	ID               int64     `json:"id"`
	LorryID          string    `json:"lorry_id"`
	ExpenseType      string    `json:"expense_type"`
	Amount           float64   `json:"amount"`
	Description      string    `json:"description"`
	ExpenseDate      string    `json:"expense_date"`
	RecordedByUserID int64     `json:"recorded_by_user_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateExpenseRequest is the POST /expenses body.
type CreateExpenseRequest struct {
	LorryID     string  `json:"lorry_id" validate:"required,max=50"`
	ExpenseType string  `json:"expense_type" validate:"required,max=100"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Description string  `json:"description" validate:"max=500"`
	ExpenseDate string  `json:"expense_date" validate:"required,datetime=2006-01-02"`
}

// CompanyExpense is a company-level cost raised by a staff member or admin.
type CompanyExpense struct {
	ID                int64     `json:"id"`
	Description       string    `json:"description"`
	Amount            float64   `json:"amount"`
	InitiatedByUserID int64     `json:"initiated_by_user_id"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreateCompanyExpenseRequest is the POST /company-expenses body.
type CreateCompanyExpenseRequest struct {
	Description string  `json:"description" validate:"required,max=500"`
	Amount      float64 `json:"amount" validate:"gt=0"`
}
