package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := WrapStorage(KindText, "list", cause)

	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Nil(t, WrapStorage(KindText, "list", nil))
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Missing: []string{"Component", "ID"}, Invalid: []string{"ImageURL"}}
	assert.Contains(t, err.Error(), "Component, ID")
	assert.Contains(t, err.Error(), "ImageURL")
	assert.Equal(t, []string{"Component", "ID", "ImageURL"}, err.Fields())
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, ErrEmptyFilter, ErrValidation)
}

func TestNotFoundWraps(t *testing.T) {
	err := NotFound(KindLocation, Filter{ColumnName: "Miami"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "Miami")
}
