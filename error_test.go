package hydroagent_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hhaeri/HydroAgent"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := hydroagent.Errorf(hydroagent.ENOTFOUND, "no listing row matches %q", "3-001")

	assert.Equal(t, hydroagent.ENOTFOUND, hydroagent.ErrorCode(err))
	assert.Equal(t, "no listing row matches \"3-001\"", hydroagent.ErrorMessage(err))
}

func TestWrapf(t *testing.T) {
	t.Parallel()

	t.Run("keeps the cause reachable", func(t *testing.T) {
		t.Parallel()

		err := hydroagent.Wrapf(hydroagent.ETIMEOUT, context.DeadlineExceeded, "loading %s exceeded %s", "https://example.com", "60s")

		assert.Equal(t, hydroagent.ETIMEOUT, hydroagent.ErrorCode(err))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, "loading https://example.com exceeded 60s: context deadline exceeded", err.Error())
	})

	t.Run("outer code wins over a wrapped application error", func(t *testing.T) {
		t.Parallel()

		inner := hydroagent.Errorf(hydroagent.ENOTFOUND, "no row")
		err := hydroagent.Wrapf(hydroagent.ESTRUCTURE, inner, "listing")

		assert.Equal(t, hydroagent.ESTRUCTURE, hydroagent.ErrorCode(err))
		assert.Equal(t, "listing: no row", hydroagent.ErrorMessage(err))
	})

	t.Run("code survives fmt wrapping", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("resolving: %w", hydroagent.Errorf(hydroagent.ENOTFOUND, "no row"))

		assert.Equal(t, hydroagent.ENOTFOUND, hydroagent.ErrorCode(err))
	})
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, hydroagent.EINTERNAL, hydroagent.ErrorCode(err))
	assert.Equal(t, "Internal error.", hydroagent.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, hydroagent.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, hydroagent.ErrorMessage(nil))
}
