package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpecializationsMatchBaseKind(t *testing.T) {
	assert.ErrorIs(t, ErrRoleNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrPhoneFormat, ErrValidation)
	assert.ErrorIs(t, ErrPasswordTooShort, ErrValidation)
}

func TestWrappedErrorsKeepKind(t *testing.T) {
	err := fmt.Errorf("permission name: %w", ErrConflict)
	assert.ErrorIs(t, err, ErrConflict)
	assert.False(t, errors.Is(err, ErrNotFound))
}
