package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope returned by every JSON endpoint.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
	Meta    *Meta        `json:"meta,omitempty"`
}

type ErrorDetail struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Code is the machine readable error kind clients switch on.
type Code string

const (
	CodeBadRequest       Code = "BAD_REQUEST"
	CodeValidation       Code = "VALIDATION_ERROR"
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeForbidden        Code = "FORBIDDEN"
	CodeNotFound         Code = "NOT_FOUND"
	CodeConflict         Code = "CONFLICT"
	CodeInvalidOperation Code = "INVALID_OPERATION"
	CodeInternal         Code = "INTERNAL_SERVER_ERROR"
)

type Meta struct {
	Page       int   `json:"page,omitempty"`
	Limit      int   `json:"limit,omitempty"`
	TotalItems int64 `json:"total_items,omitempty"`
	TotalPages int   `json:"total_pages,omitempty"`
}

// NewMeta derives TotalPages from total and limit.
func NewMeta(page, limit int, total int64) *Meta {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &Meta{Page: page, Limit: limit, TotalItems: total, TotalPages: pages}
}

func writeJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// headers are gone already, so only the log sees this
		slog.Error("failed to encode response", "status", status, "error", err)
	}
}

func ok(w http.ResponseWriter, status int, message string, data any, meta *Meta) {
	writeJSON(w, status, Response{Success: true, Message: message, Data: data, Meta: meta})
}

func fail(w http.ResponseWriter, status int, code Code, message string, details map[string]string) {
	writeJSON(w, status, Response{
		Error: &ErrorDetail{Code: code, Message: message, Details: details},
	})
}

func Success(w http.ResponseWriter, data any) {
	ok(w, http.StatusOK, "", data, nil)
}

func SuccessWithMessage(w http.ResponseWriter, message string, data any) {
	ok(w, http.StatusOK, message, data, nil)
}

func SuccessWithMeta(w http.ResponseWriter, data any, meta *Meta) {
	ok(w, http.StatusOK, "", data, meta)
}

func Created(w http.ResponseWriter, message string, data any) {
	ok(w, http.StatusCreated, message, data, nil)
}

func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	fail(w, http.StatusBadRequest, CodeBadRequest, message, details)
}

func ValidationError(w http.ResponseWriter, details map[string]string) {
	fail(w, http.StatusUnprocessableEntity, CodeValidation, "Validation failed", details)
}

func Unauthorized(w http.ResponseWriter, message string) {
	fail(w, http.StatusUnauthorized, CodeUnauthorized, message, nil)
}

func Forbidden(w http.ResponseWriter, message string) {
	fail(w, http.StatusForbidden, CodeForbidden, message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	fail(w, http.StatusNotFound, CodeNotFound, message, nil)
}

func Conflict(w http.ResponseWriter, message string) {
	fail(w, http.StatusConflict, CodeConflict, message, nil)
}

// InvalidOperation reports a well-formed request the current state does not allow.
func InvalidOperation(w http.ResponseWriter, message string) {
	fail(w, http.StatusUnprocessableEntity, CodeInvalidOperation, message, nil)
}

func InternalServerError(w http.ResponseWriter, message string) {
	fail(w, http.StatusInternalServerError, CodeInternal, message, nil)
}
