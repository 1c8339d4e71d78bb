package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// DecodeJSON decodes the JSON request body into target. Unknown fields and
// trailing data are rejected.
func DecodeJSON(r *http.Request, target any) error {
	if r.Body == nil {
		return Validation("request body is required")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return decodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Validation("request body must contain a single JSON object")
	}
	return nil
}

func decodeError(err error) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		sizeErr   *http.MaxBytesError
	)
	switch {
	case errors.Is(err, io.EOF):
		return Validation("request body is required")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return Validation("request body is not valid JSON")
	case errors.As(err, &typeErr):
		return Validation("%s has the wrong type", typeErr.Field)
	case errors.As(err, &sizeErr):
		return Validation("request body exceeds %d bytes", sizeErr.Limit)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		return Validation("unknown field %s", strings.TrimPrefix(err.Error(), "json: unknown field "))
	default:
		return Validation("request body is not valid JSON")
	}
}

// Bind decodes the request body and validates the result.
func Bind(r *http.Request, target any) error {
	if err := DecodeJSON(r, target); err != nil {
		return err
	}
	return Validate(target)
}

// QueryID reads a required positive integer id from the query string.
func QueryID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, Validation("%s is required", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, Validation("%s must be a positive integer", name)
	}
	return id, nil
}

// OptionalQueryID reads an optional positive integer; zero means absent.
func OptionalQueryID(r *http.Request, name string) (int64, error) {
	if strings.TrimSpace(r.URL.Query().Get(name)) == "" {
		return 0, nil
	}
	return QueryID(r, name)
}

// TargetID resolves the row an update applies to. The id carried in the
// body wins; the id query parameter is accepted when the body omits it.
func TargetID(r *http.Request, bodyID int64) (int64, error) {
	if bodyID == 0 {
		return QueryID(r, "id")
	}
	if bodyID < 0 {
		return 0, Validation("id must be a positive integer")
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("id")); raw != "" && raw != strconv.FormatInt(bodyID, 10) {
		return 0, Validation("id in body does not match id parameter")
	}
	return bodyID, nil
}
