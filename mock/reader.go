package mock

import (
	"context"

	"github.com/hhaeri/HydroAgent"
)

var _ hydroagent.TableReader = (*TableReader)(nil)

// TableReader is a mock implementation of hydroagent.TableReader.
type TableReader struct {
	ReadTableFn func(html string, baseURL string) (*hydroagent.Table, error)
}

func (r *TableReader) ReadTable(html string, baseURL string) (*hydroagent.Table, error) {
	return r.ReadTableFn(html, baseURL)
}

var _ hydroagent.OutlineReader = (*OutlineReader)(nil)

// OutlineReader is a mock implementation of hydroagent.OutlineReader.
type OutlineReader struct {
	ReadOutlineFn func(html string, baseURL string) (hydroagent.Outline, error)
}

func (r *OutlineReader) ReadOutline(html string, baseURL string) (hydroagent.Outline, error) {
	return r.ReadOutlineFn(html, baseURL)
}

var _ hydroagent.DocumentProber = (*DocumentProber)(nil)

// DocumentProber is a mock implementation of hydroagent.DocumentProber.
type DocumentProber struct {
	IsDocumentFn func(ctx context.Context, url string) (bool, error)
}

func (p *DocumentProber) IsDocument(ctx context.Context, url string) (bool, error) {
	return p.IsDocumentFn(ctx, url)
}
