package hunt

import (
	"context"
	"log/slog"
	"time"

	"github.com/hhaeri/HydroAgent"
)

// DefaultRetryDelays returns the backoff delays for hunt retries: 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{2 * time.Second, 4 * time.Second}
}

var _ hydroagent.Hunter = (*Retrier)(nil)

// Retrier retries queries that failed on a timeout or a browser resource
// error. Structure and not-found errors are returned at once.
type Retrier struct {
	Hunter hydroagent.Hunter
	Logger *slog.Logger

	// Delays holds the wait before each retry. Nil uses DefaultRetryDelays.
	Delays []time.Duration
}

// GetBasinDocuments implements hydroagent.Hunter.
func (r *Retrier) GetBasinDocuments(ctx context.Context, identifier string) (*hydroagent.HuntResult, error) {
	delays := r.Delays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	logger := loggerOrDiscard(r.Logger)
	maxAttempts := len(delays) + 1

	var (
		result *hydroagent.HuntResult
		err    error
	)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err = r.Hunter.GetBasinDocuments(ctx, identifier)
		if err == nil || !retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		if ctx.Err() != nil {
			return hydroagent.NewHuntResult(nil, nil), ctx.Err()
		}
		logger.Warn("retrying hunt", "identifier", identifier, "attempt", attempt+2, "error", err)

		select {
		case <-ctx.Done():
			return hydroagent.NewHuntResult(nil, nil), ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
	return result, err
}

func retryable(err error) bool {
	switch hydroagent.ErrorCode(err) {
	case hydroagent.ETIMEOUT, hydroagent.ERESOURCE:
		return true
	}
	return false
}
