package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrImageRequired is returned when an analyze request carries no image.
	ErrImageRequired = errors.New("please provide an image")
	// ErrEmailTaken is returned when signing up with a registered email.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotAuthenticated is returned when the caller's token is missing,
	// invalid, expired or revoked.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrAnalysisNotFound is returned when a record is absent or owned by
	// another user. The two cases are deliberately indistinguishable.
	ErrAnalysisNotFound = errors.New("image analysis not found")
	// ErrUploadFailed is returned when the image hosting call fails.
	ErrUploadFailed = errors.New("failed to upload image")
	// ErrAnalysisFailed is returned when the AI vision call fails.
	ErrAnalysisFailed = errors.New("failed to analyze image")
)

// ErrorResponse is the uniform error envelope returned by every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewErrorResponse builds the failure envelope for a message.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message}
}

// HTTPError pairs a status code with a caller-safe message.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ToErrorResponse converts an HTTPError to the response envelope.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return NewErrorResponse(e.Message)
}

// MapErrorToHTTP maps domain errors to HTTP errors. Messages come from the
// sentinel, never from wrapped detail, so upstream internals are not leaked.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrImageRequired):
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: "Please provide an image"}
	case errors.Is(err, ErrEmailTaken):
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: "User with this email already exists"}
	case errors.Is(err, ErrInvalidCredentials):
		return &HTTPError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
	case errors.Is(err, ErrNotAuthenticated):
		return &HTTPError{StatusCode: http.StatusUnauthorized, Message: "Not authenticated"}
	case errors.Is(err, ErrAnalysisNotFound):
		return &HTTPError{StatusCode: http.StatusNotFound, Message: "Image analysis not found"}
	case errors.Is(err, ErrUploadFailed):
		return &HTTPError{StatusCode: http.StatusBadGateway, Message: "Failed to upload image"}
	case errors.Is(err, ErrAnalysisFailed):
		return &HTTPError{StatusCode: http.StatusBadGateway, Message: "Failed to analyze image"}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Internal server error"}
	}
}
