package sales

import "time"

// Sale is a recorded sale attributed to the principal who entered it.
type Sale struct {
	ID               int64     `json:"id"`
	CustomerName     string    `json:"customer_name"`
	TotalAmount      float64   `json:"total_amount"`
	PaidAmount       float64   `json:"paid_amount"`
	PaymentStatus    string    `json:"payment_status"`
	PaymentMethod    string    `json:"payment_method"`
	Profit           float64   `json:"profit"`
	RecordedByUserID int64     `json:"recorded_by_user_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateSaleRequest is the POST /sales body.
type CreateSaleRequest struct {
	CustomerName  string  `json:"customer_name" validate:"required,max=200"`
	TotalAmount   float64 `json:"total_amount" validate:"gt=0"`
	PaidAmount    float64 `json:"paid_amount" validate:"gte=0,ltefield=TotalAmount"`
	PaymentStatus string  `json:"payment_status" validate:"required,oneof=paid partial unpaid"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=cash transfer"`
	Profit        float64 `json:"profit"`
}

func (r CreateSaleRequest) sale(ownerID int64) Sale {
	return Sale{
		CustomerName:     r.CustomerName,
		TotalAmount:      r.TotalAmount,
		PaidAmount:       r.PaidAmount,
		PaymentStatus:    r.PaymentStatus,
		PaymentMethod:    r.PaymentMethod,
		Profit:           r.Profit,
		RecordedByUserID: ownerID,
	}
}
