package translate

import (
	"errors"
	"fmt"
	"net/http"

	"dogtalk/internal/models"
)

var (
	// ErrInvalidRequest marks a translate request that failed validation.
	ErrInvalidRequest = errors.New("invalid translate request")

	// ErrUpstream marks a failed call to the generative-text provider.
	ErrUpstream = errors.New("upstream generation failed")
)

// ServiceError represents errors from the translate service with HTTP context
type ServiceError struct {
	Code       string
	Message    string
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewValidationError(err error) *ServiceError {
	return &ServiceError{
		Code:       models.ErrorCodeValidation,
		Message:    err.Error(),
		StatusCode: http.StatusBadRequest,
		Err:        fmt.Errorf("%w: %w", ErrInvalidRequest, err),
	}
}

func NewInternalError(message string, err error) *ServiceError {
	return &ServiceError{
		Code:       models.ErrorCodeInternalError,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}
