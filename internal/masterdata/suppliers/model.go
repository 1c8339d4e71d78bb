package suppliers

import (
	"time"
)

// Supplier represents a supplier entity
type Supplier struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	ContactName      string    `json:"contact_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	RecordedByUserID int64     `json:"recorded_by_user_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateRequest is the POST /suppliers body.
type CreateRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	ContactName string `json:"contact_name" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Phone       string `json:"phone" validate:"required,phone"`
	Address     string `json:"address" validate:"max=500"`
}

// UpdateRequest is the PUT /suppliers body.
type UpdateRequest struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	ContactName *string `json:"contact_name" validate:"omitempty,min=1,max=200"`
	Email       *string `json:"email" validate:"omitempty,email,max=254"`
	Phone       *string `json:"phone" validate:"omitempty,phone"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
}

func (r UpdateRequest) empty() bool {
	return r.Name == nil && r.ContactName == nil && r.Email == nil && r.Phone == nil && r.Address == nil
}
