package inventory

import (
	"time"
)

// Item is a stocked product line.
type Item struct {
	ID               int64     `json:"id"`
	ItemName         string    `json:"item_name"`
	Quantity         int64     `json:"quantity"`
	UnitPrice        float64   `json:"unit_price"`
	TotalValue       float64   `json:"total_value"`
	ReorderLevel     int64     `json:"reorder_level"`
	RecordedByUserID int64     `json:"recorded_by_user_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateItemRequest is the POST /inventory body. Quantity may be negative
// for admins recording a correction.
type CreateItemRequest struct {
	ItemName     string  `json:"item_name" validate:"required,max=200"`
	Quantity     int64   `json:"quantity"`
	UnitPrice    float64 `json:"unit_price" validate:"gte=0"`
	ReorderLevel int64   `json:"reorder_level" validate:"gte=0"`
}

// UpdateItemRequest is the PUT /inventory body. Absent fields keep their
// stored value.
type UpdateItemRequest struct {
	ID           int64    `json:"id"`
	ItemName     *string  `json:"item_name" validate:"omitempty,min=1,max=200"`
	Quantity     *int64   `json:"quantity"`
	UnitPrice    *float64 `json:"unit_price" validate:"omitempty,gte=0"`
	ReorderLevel *int64   `json:"reorder_level" validate:"omitempty,gte=0"`
}

// Fields lists the wire names present in the request.
func (r UpdateItemRequest) Fields() []string {
	var fields []string
	if r.ItemName != nil {
		fields = append(fields, "item_name")
	}
	if r.Quantity != nil {
		fields = append(fields, "quantity")
	}
	if r.UnitPrice != nil {
		fields = append(fields, "unit_price")
	}
	if r.ReorderLevel != nil {
		fields = append(fields, "reorder_level")
	}
	return fields
}

// Adjustment is a signed correction to an item's quantity.
type Adjustment struct {
	ID               int64     `json:"id"`
	ItemID           int64     `json:"item_id"`
	QuantityAdjusted int64     `json:"quantity_adjusted"`
	Reason           string    `json:"reason"`
	AdjustmentDate   time.Time `json:"adjustment_date"`
	RecordedByUserID int64     `json:"recorded_by_user_id"`
}

// CreateAdjustmentRequest is the POST /stock-adjustments body.
type CreateAdjustmentRequest struct {
	ItemID           int64  `json:"item_id" validate:"required,gt=0"`
	QuantityAdjusted int64  `json:"quantity_adjusted" validate:"ne=0"`
	Reason           string `json:"reason" validate:"required,max=500"`
}

// Movement records stock moving between two locations.
type Movement struct {
	ID               int64     `json:"id"`
	ItemID           int64     `json:"item_id"`
	QuantityMoved    int64     `json:"quantity_moved"`
	FromLocationID   int64     `json:"from_location_id"`
	ToLocationID     int64     `json:"to_location_id"`
	MovementDate     time.Time `json:"movement_date"`
	RecordedByUserID int64     `json:"recorded_by_user_id"`
}

// CreateMovementRequest is the POST /stock-movements body.
type CreateMovementRequest struct {
	ItemID         int64 `json:"item_id" validate:"required,gt=0"`
	QuantityMoved  int64 `json:"quantity_moved" validate:"required,gt=0"`
	FromLocationID int64 `json:"from_location_id" validate:"required,gt=0"`
	ToLocationID   int64 `json:"to_location_id" validate:"required,gt=0,nefield=FromLocationID"`
}

// valueOf is the stock value of quantity units at price.
func valueOf(quantity int64, price float64) float64 {
	return float64(quantity) * price
}
