// Package error defines the API error taxonomy and its wire encoding.
package error

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is the JSON body returned on every failed request. ErrorID echoes the
// request id so a client report can be matched to server logs.
type Error struct {
	Code    ErrorCode `json:"code"`
	Status  int       `json:"-"`
	Message string    `json:"message"`
	ErrorID string    `json:"error_id"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// EncodeError writes a typed error response, deriving the HTTP status from
// the code.
func EncodeError(w http.ResponseWriter, code ErrorCode, message, errorID string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code.StatusCode())
	return json.NewEncoder(w).Encode(&Error{
		Code:    code,
		Status:  code.StatusCode(),
		Message: message,
		ErrorID: errorID,
	})
}

func EncodeInternalError(w http.ResponseWriter, errorID string) error {
	return EncodeError(w, InternalServerError, "internal server error", errorID)
}
