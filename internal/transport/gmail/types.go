// Package gmail implements a Transport that sends messages and creates drafts
// through the Gmail REST API.
package gmail

import (
	"fmt"
	"net/http"
)

// sendMessageRequest is the body of users.messages.send.
type sendMessageRequest struct {
	Raw string `json:"raw"`
}

// createDraftRequest is the body of users.drafts.create.
type createDraftRequest struct {
	Message sendMessageRequest `json:"message"`
}

// apiErrorResponse represents an error response from the Gmail API.
type apiErrorResponse struct {
	Error apiErrorDetail `json:"error"`
}

// apiErrorDetail represents the error detail in a Gmail API error response.
type apiErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// APIError is returned for any non-2xx Gmail API response.
type APIError struct {
	StatusCode int
	// Status is Google's canonical error status, e.g. "PERMISSION_DENIED".
	Status  string
	Message string
	// Permanent is false for 401, 429 and 5xx, where a later attempt may succeed.
	Permanent bool
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("Gmail API error (HTTP %d %s): %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("Gmail API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// classifyError categorizes an HTTP error response.
func classifyError(statusCode int, status, message string) *APIError {
	err := &APIError{
		StatusCode: statusCode,
		Status:     status,
		Message:    message,
	}

	switch {
	case statusCode == http.StatusUnauthorized,
		statusCode == http.StatusTooManyRequests,
		statusCode >= 500:
		err.Permanent = false
	default:
		err.Permanent = true
	}

	return err
}
