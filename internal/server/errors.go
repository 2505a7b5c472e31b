// Package server provides the HTTP API for the resume builder.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/enhance"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/schemas"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrSessionNotFound indicates the builder session is closed or never existed
type ErrSessionNotFound struct {
	ID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("builder session not found: %s", e.ID)
}

// ErrAuthUnavailable is returned by auth routes when no user database is configured.
var ErrAuthUnavailable = errors.New("authentication is not configured")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		emailExists   *ErrEmailAlreadyExists
		badCreds      *ErrInvalidCredentials
		mismatch      *ErrPasswordMismatch
		userMissing   *ErrUserNotFound
		sessionGone   *ErrSessionNotFound
		validation    *ErrValidation
		modelInvalid  *resume.ValidationError
		exportInvalid *export.ValidationError
		schemaInvalid *schemas.ValidationError
		enhanceReq    *enhance.RequestError
		enhanceFailed *resume.EnhancementError
		exportFailed  *export.Failure
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &exportFailed):
		return http.StatusInternalServerError
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &badCreds), errors.As(err, &mismatch):
		return http.StatusUnauthorized
	case errors.As(err, &userMissing), errors.As(err, &sessionGone), errors.Is(err, resume.ErrUnknownSection):
		return http.StatusNotFound
	case errors.Is(err, resume.ErrLastEntry), errors.Is(err, resume.ErrStaleEnhancement), errors.Is(err, export.ErrExportInProgress):
		return http.StatusConflict
	case errors.As(err, &validation), errors.As(err, &modelInvalid), errors.As(err, &exportInvalid),
		errors.As(err, &schemaInvalid), errors.As(err, &enhanceReq):
		return http.StatusBadRequest
	case errors.As(err, &enhanceFailed):
		return http.StatusBadGateway
	case errors.Is(err, ErrAuthUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the text safe to show a user for err. Internal
// failures collapse to a generic message.
func PublicMessage(err error) string {
	var (
		exportFailed  *export.Failure
		enhanceFailed *resume.EnhancementError
		exportInvalid *export.ValidationError
		modelInvalid  *resume.ValidationError
		enhanceReq    *enhance.RequestError
		schemaInvalid *schemas.ValidationError
	)
	switch {
	case errors.As(err, &exportFailed):
		return exportFailed.UserMessage()
	case errors.As(err, &schemaInvalid):
		return "Resume document does not match the schema"
	case errors.As(err, &enhanceFailed):
		return enhanceFailed.Message
	case errors.As(err, &exportInvalid):
		return exportInvalid.Message
	case errors.As(err, &modelInvalid):
		return modelInvalid.Message
	case errors.As(err, &enhanceReq):
		return enhanceReq.Message
	}
	if HTTPStatus(err) >= http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}

// errorDetails returns structured detail for errors that carry it.
func errorDetails(err error) any {
	var schemaInvalid *schemas.ValidationError
	if errors.As(err, &schemaInvalid) {
		return schemaInvalid.Errors
	}
	return nil
}
