package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Códigos de error propios del cliente (los demás son el status HTTP como string).
const (
	CodeNetwork         = "NETWORK_ERROR"
	CodeInvalidResponse = "INVALID_RESPONSE"
)

// APIError forma normalizada de todo fallo del cliente: fallos de red,
// respuestas no-2xx y JSON malformado comparten esta estructura.
type APIError struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Error implementa el contrato error.
func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s: %s", e.Code, e.Message)
}

// Status devuelve el status HTTP del error, o 0 si no proviene de una respuesta.
func (e *APIError) Status() int {
	n, err := strconv.Atoi(e.Code)
	if err != nil {
		return 0
	}
	return n
}

// retryableStatus estados HTTP que ameritan reintento con backoff.
var retryableStatus = map[int]bool{
	http.StatusInternalServerError: true, // 500
	http.StatusBadGateway:          true, // 502
	http.StatusServiceUnavailable:  true, // 503
	http.StatusGatewayTimeout:      true, // 504
	http.StatusRequestTimeout:      true, // 408
	http.StatusTooManyRequests:     true, // 429
}

// IsRetryable clasifica un error: fallos de red y errores transitorios del
// servidor se reintentan; errores de cliente (4xx), auth y parseo, no.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == CodeNetwork {
		return true
	}
	return retryableStatus[apiErr.Status()]
}

// networkError construye el APIError para un fallo sin respuesta HTTP.
func networkError(err error) *APIError {
	return &APIError{
		Code:      CodeNetwork,
		Message:   err.Error(),
		Timestamp: time.Now(),
	}
}

// statusError construye el APIError para una respuesta no-2xx.
func statusError(status int, message string, details map[string]any) *APIError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &APIError{
		Code:      strconv.Itoa(status),
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// invalidResponseError construye el APIError para JSON malformado en una respuesta 2xx.
func invalidResponseError(err error) *APIError {
	return &APIError{
		Code:      CodeInvalidResponse,
		Message:   "invalid JSON response: " + err.Error(),
		Timestamp: time.Now(),
	}
}
