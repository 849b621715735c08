package custom_error

import (
	"errors"
	"fmt"
	"net/http"
)

type CustomError interface {
	Error() string
}

// NotFoundError signals a missing asset, user or request.
type NotFoundError struct {
	Resource string
	ID       int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Resource, e.ID)
}

func NewNotFound(resource string, id int) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError signals malformed input rejected before any write.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InvalidTransitionError signals a lifecycle rule violation: the asset was
// in a state the requested action is not legal from.
type InvalidTransitionError struct {
	Action        string
	CurrentStatus string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s is not allowed while status is %q", e.Action, e.CurrentStatus)
}

func NewInvalidTransition(action, currentStatus string) *InvalidTransitionError {
	return &InvalidTransitionError{Action: action, CurrentStatus: currentStatus}
}

// ConflictError signals that the asset state changed between read and
// write. The conditional update matched nothing even though the current
// status satisfies the precondition.
type ConflictError struct {
	Resource string
	ID       int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %d was modified concurrently, retry the operation", e.Resource, e.ID)
}

func NewConflict(resource string, id int) *ConflictError {
	return &ConflictError{Resource: resource, ID: id}
}

type UniqueViolationError struct {
	message string
	code    string // PostgreSQL error code (e.g., "23505")
}

type ForeignKeyViolationError struct {
	message string
	code    string // PostgreSQL error code (e.g., "23503")
}

func (f *ForeignKeyViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", f.message, f.code)
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s (code: %s)", e.message, e.code)
}

func WrapDBError(message, code string) CustomError {
	switch code {
	case "23505":
		return &UniqueViolationError{
			message: message,
			code:    code,
		}
	case "23503":
		return &ForeignKeyViolationError{
			message: "Value is already used by other resources " + message,
			code:    code,
		}
	default:
		return fmt.Errorf("uncategorized error occurred with code %s: %s", code, message)
	}
}

// StatusCode maps a domain error to the HTTP status handlers respond with.
func StatusCode(err error) int {
	var (
		notFound   *NotFoundError
		validation *ValidationError
		transition *InvalidTransitionError
		conflict   *ConflictError
		unique     *UniqueViolationError
		foreignKey *ForeignKeyViolationError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &transition):
		return http.StatusBadRequest
	case errors.As(err, &conflict), errors.As(err, &unique):
		return http.StatusConflict
	case errors.As(err, &foreignKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
