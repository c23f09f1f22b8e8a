// Package shared centralizes the response envelope so every endpoint answers
// in the same discriminated shape: {isError:false, data} on success,
// {isError:true, errorCode, errorMessage} on failure.
package shared

import (
	"encoding/json"
	"net/http"

	"github.com/Omkar76/nscc-backend/pkg/derrors"
)

type successEnvelope struct {
	IsError bool `json:"isError"`
	Data    any  `json:"data"`
}

type errorEnvelope struct {
	IsError      bool   `json:"isError"`
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// WriteData writes a success envelope.
func WriteData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{IsError: false, Data: data})
}

// WriteError translates a domain error into the error envelope. Errors that
// never passed through pkg/derrors surface as UNCAUGHT with their raw message
// for diagnostics.
func WriteError(w http.ResponseWriter, err error) {
	code := derrors.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(code))
	_ = json.NewEncoder(w).Encode(errorEnvelope{
		IsError:      true,
		ErrorCode:    string(code),
		ErrorMessage: derrors.MessageOf(err),
	})
}

// The 4xx/5xx mapping lives here, at the transport boundary; domain code only
// knows codes.
func statusFor(code derrors.Code) int {
	switch code {
	case derrors.CodeNotFound:
		return http.StatusNotFound
	case derrors.CodeRequiredFieldMissing, derrors.CodeBadRequest:
		return http.StatusBadRequest
	case derrors.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
