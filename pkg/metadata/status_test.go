package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStatus(t *testing.T) {
	for _, valid := range []string{"available", "assigned", "maintenance", "in-repair", "retired"} {
		status, err := NewStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, valid, status.String())
	}

	_, err := NewStatus("borrowed")
	assert.Error(t, err)

	_, err = NewStatus("")
	assert.Error(t, err)
}
