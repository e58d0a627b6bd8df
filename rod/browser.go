// Package rod implements hydroagent.Browser and hydroagent.Page with Chrome
// automation through github.com/go-rod/rod.
package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/hhaeri/HydroAgent"
)

// DefaultMaxPages is the default number of pages before browser recycling.
const DefaultMaxPages = 75

var _ hydroagent.Browser = (*Browser)(nil)

// Browser hands out Chrome tabs and recycles the Chrome process after
// maxPages tabs to cap memory growth. Chrome accumulates memory over time
// and the baseline never returns to initial levels even with proper page
// cleanup. Recycling waits until no tab is open.
//
// Browser is safe for concurrent use.
type Browser struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount int
	openPages int
	maxPages  int
	headless  bool
	mu        sync.Mutex
	closed    bool
}

// Option configures a Browser.
type Option func(*Browser)

// WithMaxPages sets the maximum number of pages before the browser is recycled.
// Defaults to 75 if not specified.
func WithMaxPages(n int) Option {
	return func(b *Browser) {
		b.maxPages = n
	}
}

// WithHeadless controls whether Chrome runs without a window. Defaults to true.
func WithHeadless(headless bool) Option {
	return func(b *Browser) {
		b.headless = headless
	}
}

// NewBrowser launches Chrome. Close must be called when the Browser is no
// longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewBrowser(opts ...Option) (*Browser, error) {
	b := &Browser{
		maxPages: DefaultMaxPages,
		headless: true,
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.launchBrowser(); err != nil {
		return nil, hydroagent.Wrapf(hydroagent.ERESOURCE, err, "starting browser")
	}

	return b, nil
}

// NewPage opens a blank tab bound to no context. Callers pass a context to
// each page operation instead.
func (b *Browser) NewPage(ctx context.Context) (hydroagent.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, hydroagent.Errorf(hydroagent.ERESOURCE, "browser closed")
	}

	if b.pageCount >= b.maxPages && b.openPages == 0 {
		b.recycleBrowser()
	}

	p, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, hydroagent.Wrapf(hydroagent.ERESOURCE, err, "opening page")
	}

	b.pageCount++
	b.openPages++
	return newPage(p, b.release), nil
}

// release is called once per page when it closes.
func (b *Browser) release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.openPages--
}

// Close releases browser resources. Close is safe to call multiple times.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	return b.closeBrowser()
}

// launchBrowser starts a new browser instance with stability flags.
func (b *Browser) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(b.headless)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.browser = browser
	b.launcher = lnchr
	return nil
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (b *Browser) closeBrowser() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}

// recycleBrowser starts a fresh browser and closes the old one.
// If launching the new browser fails, the old browser is kept.
// Must be called with mu held.
func (b *Browser) recycleBrowser() {
	oldBrowser := b.browser
	oldLauncher := b.launcher
	b.browser = nil
	b.launcher = nil

	if err := b.launchBrowser(); err != nil {
		b.browser = oldBrowser
		b.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	b.pageCount = 0
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (b *Browser) LauncherPID() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.launcher == nil {
		return 0
	}
	return b.launcher.PID()
}
