package rod

import (
	"context"
	"errors"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
	"github.com/hhaeri/HydroAgent"
)

var _ hydroagent.Page = (*Page)(nil)

// Page is one Chrome tab.
type Page struct {
	page      *rod.Page
	closeOnce sync.Once
	closeErr  error
	onClose   func()
}

func newPage(p *rod.Page, onClose func()) *Page {
	return &Page{page: p, onClose: onClose}
}

// Navigate loads url, waits for DOMContentLoaded, then waits for an element
// matching ready. Subresources and background requests are not awaited.
func (p *Page) Navigate(ctx context.Context, url string, ready string) error {
	page := p.page.Context(ctx)

	wait := page.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := page.Navigate(url); err != nil {
		return translate(ctx, err, "navigating to %s", url)
	}
	wait()
	if err := ctx.Err(); err != nil {
		return translate(ctx, err, "loading %s", url)
	}

	if ready == "" {
		return nil
	}
	if _, err := page.Element(ready); err != nil {
		return translate(ctx, err, "waiting for %q on %s", ready, url)
	}
	return nil
}

// HTML returns the rendered markup of the current document.
func (p *Page) HTML(ctx context.Context) (string, error) {
	html, err := p.page.Context(ctx).HTML()
	if err != nil {
		return "", translate(ctx, err, "reading page HTML")
	}
	return html, nil
}

// Text returns the text of the first element matching selector.
func (p *Page) Text(ctx context.Context, selector string) (string, error) {
	has, el, err := p.page.Context(ctx).Has(selector)
	if err != nil {
		return "", translate(ctx, err, "finding %q", selector)
	}
	if !has {
		return "", hydroagent.Errorf(hydroagent.ENOTFOUND, "no element matches %q", selector)
	}

	text, err := el.Text()
	if err != nil {
		return "", translate(ctx, err, "reading text of %q", selector)
	}
	return text, nil
}

// Input focuses the control matching selector, replaces its value with text
// through simulated keystrokes, and presses Enter.
func (p *Page) Input(ctx context.Context, selector string, text string) error {
	has, el, err := p.page.Context(ctx).Has(selector)
	if err != nil {
		return translate(ctx, err, "finding %q", selector)
	}
	if !has {
		return hydroagent.Errorf(hydroagent.ENOTFOUND, "no element matches %q", selector)
	}

	if err := el.SelectAllText(); err != nil {
		return translate(ctx, err, "clearing %q", selector)
	}
	if err := el.Input(text); err != nil {
		return translate(ctx, err, "typing into %q", selector)
	}
	if err := el.Type(input.Enter); err != nil {
		return translate(ctx, err, "submitting %q", selector)
	}
	return nil
}

// Close closes the tab. Close is safe to call multiple times.
func (p *Page) Close() error {
	p.closeOnce.Do(func() {
		p.closeErr = p.page.Close()
		if p.onClose != nil {
			p.onClose()
		}
	})
	return p.closeErr
}

// translate maps rod and context failures onto application error codes.
// Caller cancellation is returned unchanged so errors.Is keeps working.
func translate(ctx context.Context, err error, format string, args ...any) error {
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return err
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return hydroagent.Wrapf(hydroagent.ETIMEOUT, err, format, args...)
	default:
		return hydroagent.Wrapf(hydroagent.ERESOURCE, err, format, args...)
	}
}
