package hydroagent

import (
	"context"
	"time"
)

// Page is a live, script-capable document. One Page serves one query and is
// never used by two goroutines at once.
type Page interface {
	// Navigate loads url and returns once the markup is parsed and an element
	// matching ready exists. Background network activity is not awaited.
	// The context bounds the whole load.
	Navigate(ctx context.Context, url string, ready string) error

	// HTML returns a snapshot of the current rendered markup.
	HTML(ctx context.Context) (string, error)

	// Text returns the text content of the first element matching selector.
	// Returns ENOTFOUND if no element matches.
	Text(ctx context.Context, selector string) (string, error)

	// Input replaces the value of the control matching selector with text
	// and presses Enter. Returns ENOTFOUND if no element matches.
	Input(ctx context.Context, selector string, text string) error

	// Close releases the page. Close is safe to call multiple times.
	Close() error
}

// Browser hands out pages backed by a browser process.
type Browser interface {
	// NewPage opens a fresh page. The caller owns it and must Close it.
	NewPage(ctx context.Context) (Page, error)

	// Close releases browser resources.
	Close() error
}

// DefaultPollInterval is the interval between checks in WaitForChange.
const DefaultPollInterval = 250 * time.Millisecond

// Poll calls cond every interval until it reports true. It returns ETIMEOUT
// once timeout elapses and the context error if ctx is done first.
func Poll(ctx context.Context, timeout, interval time.Duration, cond func(context.Context) (bool, error)) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		ok, err := cond(pctx)
		if err != nil && pctx.Err() == nil {
			return err
		}
		if ok && err == nil {
			return nil
		}

		select {
		case <-pctx.Done():
			if err := ctx.Err(); err != nil {
				return err
			}
			return Errorf(ETIMEOUT, "condition not met within %s", timeout)
		case <-ticker.C:
		}
	}
}

// WaitForChange waits until the text of selector differs from before and
// returns the new text.
func WaitForChange(ctx context.Context, page Page, selector, before string, timeout, interval time.Duration) (string, error) {
	var current string
	err := Poll(ctx, timeout, interval, func(ctx context.Context) (bool, error) {
		text, err := page.Text(ctx, selector)
		if err != nil {
			if ErrorCode(err) == ENOTFOUND {
				// The region may be re-rendered; an empty region counts as content.
				current = ""
				return before != "", nil
			}
			return false, err
		}
		current = text
		return text != before, nil
	})
	if err != nil {
		if ErrorCode(err) == ETIMEOUT {
			return current, Wrapf(ETIMEOUT, err, "waiting for %q to change", selector)
		}
		return current, err
	}
	return current, nil
}
