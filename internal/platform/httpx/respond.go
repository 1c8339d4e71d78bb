package httpx

import (
	"encoding/json"
	"net/http"
)

type messageBody struct {
	Message string `json:"message"`
}

type errorBody struct {
	Error string `json:"error"`
}

// WriteResult is the body returned by create, update and delete handlers.
type WriteResult struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Created reports a newly inserted row.
func Created(w http.ResponseWriter, id int64) {
	JSON(w, http.StatusCreated, WriteResult{Success: true, ID: id})
}

// Written reports a successful update or delete.
func Written(w http.ResponseWriter, id int64) {
	JSON(w, http.StatusOK, WriteResult{Success: true, ID: id})
}

// MethodNotAllowed rejects a method the resource does not support.
func MethodNotAllowed(w http.ResponseWriter, allow ...string) {
	for _, m := range allow {
		w.Header().Add("Allow", m)
	}
	JSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
}
