package httpx

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movementInput struct {
	ItemID         int64   `json:"item_id" validate:"required,gt=0"`
	FromLocationID int64   `json:"from_location_id" validate:"required,gt=0"`
	ToLocationID   int64   `json:"to_location_id" validate:"required,gt=0,nefield=FromLocationID"`
	Status         string  `json:"status" validate:"omitempty,oneof=paid unpaid"`
	Phone          string  `json:"phone" validate:"omitempty,phone"`
	Amount         float64 `json:"amount" validate:"gt=0"`
}

func TestBindReportsFirstFieldByWireName(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"from_location_id":1,"to_location_id":1,"amount":3}`))
	var in movementInput
	err := Bind(req, &in)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "item_id is required", err.Error())
}

func TestBindCrossField(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"item_id":4,"from_location_id":1,"to_location_id":1,"amount":3}`))
	var in movementInput
	err := Bind(req, &in)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "to_location_id must differ from from_location_id", err.Error())
}

func TestBindOneOfAndPhone(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"item_id":4,"from_location_id":1,"to_location_id":2,"amount":3,"status":"late"}`))
	var in movementInput
	err := Bind(req, &in)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "status must be one of: paid, unpaid", err.Error())

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{"item_id":4,"from_location_id":1,"to_location_id":2,"amount":3,"phone":"call me"}`))
	err = Bind(req, &in)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "phone must be a valid phone number", err.Error())
}

func TestDecodeJSONRejectsUnknownAndTrailing(t *testing.T) {
	var in movementInput
	err := DecodeJSON(httptest.NewRequest("POST", "/", strings.NewReader(`{"item_id":1,"owner":9}`)), &in)
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "owner")

	err = DecodeJSON(httptest.NewRequest("POST", "/", strings.NewReader(`{"item_id":1}{"item_id":2}`)), &in)
	require.ErrorIs(t, err, ErrValidation)

	err = DecodeJSON(httptest.NewRequest("POST", "/", strings.NewReader(``)), &in)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "request body is required", err.Error())
}

func TestDecodeJSONWrongType(t *testing.T) {
	var in movementInput
	err := DecodeJSON(httptest.NewRequest("POST", "/", strings.NewReader(`{"item_id":"four"}`)), &in)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "item_id has the wrong type", err.Error())
}

func TestQueryID(t *testing.T) {
	id, err := QueryID(httptest.NewRequest("DELETE", "/?id=42", nil), "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = QueryID(httptest.NewRequest("DELETE", "/", nil), "id")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = QueryID(httptest.NewRequest("DELETE", "/?id=-3", nil), "id")
	assert.True(t, errors.Is(err, ErrValidation))

	id, err = OptionalQueryID(httptest.NewRequest("GET", "/", nil), "staff_id")
	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestTargetIDPrefersBody(t *testing.T) {
	id, err := TargetID(httptest.NewRequest("PUT", "/", nil), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	id, err = TargetID(httptest.NewRequest("PUT", "/?id=7", nil), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	id, err = TargetID(httptest.NewRequest("PUT", "/?id=9", nil), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)

	_, err = TargetID(httptest.NewRequest("PUT", "/?id=9", nil), 7)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "id in body does not match id parameter", err.Error())

	_, err = TargetID(httptest.NewRequest("PUT", "/", nil), 0)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "id is required", err.Error())

	_, err = TargetID(httptest.NewRequest("PUT", "/", nil), -1)
	assert.ErrorIs(t, err, ErrValidation)
}

type boundsInput struct {
	Code  string `json:"code" validate:"min=3,max=5"`
	Seats int64  `json:"seats" validate:"min=1,max=9"`
	Tags  []int  `json:"tags" validate:"max=2"`
}

func TestMinMaxWordingFollowsKind(t *testing.T) {
	tests := []struct {
		name string
		in   boundsInput
		msg  string
	}{
		{"short string", boundsInput{Code: "ab", Seats: 1}, "code must be at least 3 characters"},
		{"long string", boundsInput{Code: "abcdef", Seats: 1}, "code must be at most 5 characters"},
		{"small number", boundsInput{Code: "abc", Seats: 0}, "seats must be at least 1"},
		{"large number", boundsInput{Code: "abc", Seats: 10}, "seats must be at most 9"},
		{"long list", boundsInput{Code: "abc", Seats: 1, Tags: []int{1, 2, 3}}, "tags must be at most 2 items"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(&tc.in)
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}
