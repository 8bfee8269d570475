package legalrights_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/natmusissunny/legalrights"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := legalrights.Errorf(legalrights.ENOTFOUND, "source %q not found", "test")

	assert.Equal(t, legalrights.ENOTFOUND, legalrights.ErrorCode(err))
	assert.Equal(t, "source \"test\" not found", legalrights.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, legalrights.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, legalrights.ErrorMessage(nil))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	t.Run("keeps code through fmt wrapping", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("load index: %w", legalrights.Errorf(legalrights.EDIMENSION, "want 3, got 4"))

		assert.Equal(t, legalrights.EDIMENSION, legalrights.ErrorCode(err))
		assert.Equal(t, "want 3, got 4", legalrights.ErrorMessage(err))
	})

	t.Run("reports internal for plain errors", func(t *testing.T) {
		t.Parallel()

		err := errors.New("disk on fire")

		assert.Equal(t, legalrights.EINTERNAL, legalrights.ErrorCode(err))
		assert.Equal(t, "disk on fire", legalrights.ErrorMessage(err))
	})
}
