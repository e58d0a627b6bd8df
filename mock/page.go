package mock

import (
	"context"

	"github.com/hhaeri/HydroAgent"
)

var _ hydroagent.Page = (*Page)(nil)

// Page is a mock implementation of hydroagent.Page.
type Page struct {
	NavigateFn func(ctx context.Context, url string, ready string) error
	HTMLFn     func(ctx context.Context) (string, error)
	TextFn     func(ctx context.Context, selector string) (string, error)
	InputFn    func(ctx context.Context, selector string, text string) error
	CloseFn    func() error
}

func (p *Page) Navigate(ctx context.Context, url string, ready string) error {
	return p.NavigateFn(ctx, url, ready)
}

func (p *Page) HTML(ctx context.Context) (string, error) {
	return p.HTMLFn(ctx)
}

func (p *Page) Text(ctx context.Context, selector string) (string, error) {
	return p.TextFn(ctx, selector)
}

func (p *Page) Input(ctx context.Context, selector string, text string) error {
	return p.InputFn(ctx, selector, text)
}

func (p *Page) Close() error {
	return p.CloseFn()
}

var _ hydroagent.Browser = (*Browser)(nil)

// Browser is a mock implementation of hydroagent.Browser.
type Browser struct {
	NewPageFn func(ctx context.Context) (hydroagent.Page, error)
	CloseFn   func() error
}

func (b *Browser) NewPage(ctx context.Context) (hydroagent.Page, error) {
	return b.NewPageFn(ctx)
}

func (b *Browser) Close() error {
	return b.CloseFn()
}
