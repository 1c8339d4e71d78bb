package customers

import "time"

// Customer is a buyer in the shared customer directory.
type Customer struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Email            *string   `json:"email"`
	Phone            *string   `json:"phone"`
	RecordedByUserID int64     `json:"recorded_by_user_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateRequest is the POST /customers body.
type CreateRequest struct {
	Name  string  `json:"name" validate:"required,max=200"`
	Email *string `json:"email" validate:"omitempty,email,max=254"`
	Phone *string `json:"phone" validate:"omitempty,phone"`
}

// UpdateRequest is the PUT /customers body.
type UpdateRequest struct {
	ID    int64   `json:"id"`
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email *string `json:"email" validate:"omitempty,email,max=254"`
	Phone *string `json:"phone" validate:"omitempty,phone"`
}

func (r UpdateRequest) empty() bool {
	return r.Name == nil && r.Email == nil && r.Phone == nil
}
