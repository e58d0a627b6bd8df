package hunt_test

import (
	"context"
	"testing"
	"time"

	"github.com/hhaeri/HydroAgent"
	"github.com/hhaeri/HydroAgent/hunt"
	"github.com/hhaeri/HydroAgent/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Retrier implements hydroagent.Hunter at compile time.
var _ hydroagent.Hunter = (*hunt.Retrier)(nil)

// failingHunter fails with code for the first n calls, then succeeds.
func failingHunter(code string, n int, calls *int) *mock.Hunter {
	return &mock.Hunter{
		GetBasinDocumentsFn: func(ctx context.Context, identifier string) (*hydroagent.HuntResult, error) {
			*calls++
			if *calls <= n {
				return &hydroagent.HuntResult{}, hydroagent.Errorf(code, "attempt %d failed", *calls)
			}
			return hydroagent.NewHuntResult(&hydroagent.Resolution{BasinName: identifier, LatestYear: 2024}, nil), nil
		},
	}
}

func TestRetrier_GetBasinDocuments(t *testing.T) {
	t.Parallel()

	delays := []time.Duration{time.Millisecond, time.Millisecond}

	t.Run("retries timeouts until success", func(t *testing.T) {
		t.Parallel()

		var calls int
		r := &hunt.Retrier{Hunter: failingHunter(hydroagent.ETIMEOUT, 2, &calls), Delays: delays}

		result, err := r.GetBasinDocuments(context.Background(), "3-001")

		require.NoError(t, err)
		assert.True(t, result.Found())
		assert.Equal(t, 3, calls)
	})

	t.Run("returns the last error after all attempts", func(t *testing.T) {
		t.Parallel()

		var calls int
		r := &hunt.Retrier{Hunter: failingHunter(hydroagent.ERESOURCE, 10, &calls), Delays: delays}

		result, err := r.GetBasinDocuments(context.Background(), "3-001")

		assert.Equal(t, hydroagent.ERESOURCE, hydroagent.ErrorCode(err))
		assert.Equal(t, "attempt 3 failed", hydroagent.ErrorMessage(err))
		assert.False(t, result.Found())
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry structure or not-found errors", func(t *testing.T) {
		t.Parallel()

		for _, code := range []string{hydroagent.ESTRUCTURE, hydroagent.ENOTFOUND, hydroagent.EINVALID} {
			var calls int
			r := &hunt.Retrier{Hunter: failingHunter(code, 10, &calls), Delays: delays}

			_, err := r.GetBasinDocuments(context.Background(), "3-001")

			assert.Equal(t, code, hydroagent.ErrorCode(err))
			assert.Equal(t, 1, calls, code)
		}
	})

	t.Run("stops waiting when the context is canceled", func(t *testing.T) {
		t.Parallel()

		var calls int
		r := &hunt.Retrier{Hunter: failingHunter(hydroagent.ETIMEOUT, 10, &calls), Delays: []time.Duration{time.Hour}}
		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(20*time.Millisecond, cancel)

		result, err := r.GetBasinDocuments(ctx, "3-001")

		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, result.Found())
		assert.Equal(t, 1, calls)
	})
}
