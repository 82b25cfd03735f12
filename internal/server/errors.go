// Package server provides the HTTP REST API for the learning recommender.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/learning-recommender/internal/schemas"
	"github.com/jonathan/learning-recommender/internal/server/middleware"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrSnapshotNotFound indicates the similarity snapshot is not cached
type ErrSnapshotNotFound struct {
	ID string
}

func (e *ErrSnapshotNotFound) Error() string {
	return fmt.Sprintf("similarity snapshot not found: %s", e.ID)
}

// ErrRunNotFound indicates a stored ranking run does not exist
type ErrRunNotFound struct {
	RunID uuid.UUID
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("ranking run not found: %s", e.RunID)
}

// ErrStoreUnavailable indicates the endpoint needs a database that is not configured
type ErrStoreUnavailable struct{}

func (e *ErrStoreUnavailable) Error() string {
	return "database is not configured"
}

// ErrForbidden indicates the caller may not act for the requested user
type ErrForbidden struct {
	UserID uuid.UUID
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("access denied for user: %s", e.UserID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation:
		return http.StatusBadRequest
	case *ErrForbidden:
		return http.StatusForbidden
	case *ErrSnapshotNotFound, *ErrRunNotFound:
		return http.StatusNotFound
	case *ErrStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// validationError converts validator, schema and decode failures into an ErrValidation.
func validationError(err error) *ErrValidation {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Namespace(), Message: fmt.Sprintf("failed on the '%s' rule", fe.Tag())}
	}

	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) && len(schemaErr.Errors) > 0 {
		fe := schemaErr.Errors[0]
		return &ErrValidation{Field: fe.Field, Message: fe.Message}
	}

	return &ErrValidation{Field: "body", Message: err.Error()}
}

// forbiddenError maps middleware.ErrForbidden to an ErrForbidden for userID.
func forbiddenError(err error, userID uuid.UUID) error {
	if errors.Is(err, middleware.ErrForbidden) {
		return &ErrForbidden{UserID: userID}
	}
	return err
}
