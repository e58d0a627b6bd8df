package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/hhaeri/HydroAgent"
)

// Ensure LoggingBrowser and LoggingPage implement the page capability.
var (
	_ hydroagent.Browser = (*LoggingBrowser)(nil)
	_ hydroagent.Page    = (*LoggingPage)(nil)
)

// LoggingBrowser wraps a Browser so every page it hands out logs its
// operations at debug level.
type LoggingBrowser struct {
	next   hydroagent.Browser
	logger *slog.Logger
}

// NewLoggingBrowser creates a new LoggingBrowser.
func NewLoggingBrowser(next hydroagent.Browser, logger *slog.Logger) *LoggingBrowser {
	return &LoggingBrowser{next: next, logger: logger}
}

// NewPage delegates to the wrapped browser and wraps the page.
func (b *LoggingBrowser) NewPage(ctx context.Context) (hydroagent.Page, error) {
	page, err := b.next.NewPage(ctx)
	if err != nil {
		b.logger.Error("new page", "err", err)
		return nil, err
	}
	return NewLoggingPage(page, b.logger), nil
}

// Close delegates to the wrapped browser.
func (b *LoggingBrowser) Close() error {
	return b.next.Close()
}

// LoggingPage wraps a Page with debug logging.
type LoggingPage struct {
	next   hydroagent.Page
	logger *slog.Logger
}

// NewLoggingPage creates a new LoggingPage.
func NewLoggingPage(next hydroagent.Page, logger *slog.Logger) *LoggingPage {
	return &LoggingPage{next: next, logger: logger}
}

// Navigate delegates to the wrapped page and logs the load.
func (p *LoggingPage) Navigate(ctx context.Context, url string, ready string) (err error) {
	defer func(begin time.Time) {
		p.logger.Debug("navigate",
			"url", url,
			"ready", ready,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Navigate(ctx, url, ready)
}

// HTML delegates to the wrapped page and logs the snapshot size.
func (p *LoggingPage) HTML(ctx context.Context) (html string, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("snapshot",
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.HTML(ctx)
}

// Text delegates to the wrapped page. Polling calls it repeatedly, so only
// failures other than a missing element are logged.
func (p *LoggingPage) Text(ctx context.Context, selector string) (string, error) {
	text, err := p.next.Text(ctx, selector)
	if err != nil && hydroagent.ErrorCode(err) != hydroagent.ENOTFOUND {
		p.logger.Debug("text", "selector", selector, "err", err)
	}
	return text, err
}

// Input delegates to the wrapped page and logs the submitted text.
func (p *LoggingPage) Input(ctx context.Context, selector string, text string) (err error) {
	defer func(begin time.Time) {
		p.logger.Debug("input",
			"selector", selector,
			"text", text,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Input(ctx, selector, text)
}

// Close delegates to the wrapped page.
func (p *LoggingPage) Close() error {
	err := p.next.Close()
	p.logger.Debug("page closed", "err", err)
	return err
}
