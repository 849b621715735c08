package custom_error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapDBError(t *testing.T) {
	err := WrapDBError("Duplicate serial number", "23505")
	var unique *UniqueViolationError
	assert.True(t, errors.As(err, &unique))

	err = WrapDBError("assets", "23503")
	var fk *ForeignKeyViolationError
	assert.True(t, errors.As(err, &fk))

	err = WrapDBError("something", "42601")
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "42601")
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{NewNotFound("asset", 7), http.StatusNotFound},
		{NewValidation("quantity must match serial numbers"), http.StatusBadRequest},
		{NewInvalidTransition("assign", "maintenance"), http.StatusBadRequest},
		{NewConflict("asset", 7), http.StatusConflict},
		{WrapDBError("duplicate", "23505"), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
		{fmt.Errorf("assign asset: %w", NewNotFound("asset", 3)), http.StatusNotFound},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, StatusCode(tt.err), tt.err.Error())
	}
}

func TestInvalidTransitionMessage(t *testing.T) {
	err := NewInvalidTransition("start maintenance", "assigned")
	assert.Equal(t, `start maintenance is not allowed while status is "assigned"`, err.Error())
}
