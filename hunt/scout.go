// Package hunt resolves basin identifiers to document links. It drives a
// hydroagent.Page through the portal's listing table and basin detail pages.
package hunt

import (
	"context"
	"log/slog"
	"time"

	"github.com/hhaeri/HydroAgent"
)

// Portal defaults.
const (
	DefaultListingURL     = "https://sgma.water.ca.gov/portal/gspar/submitted"
	DefaultSearchSelector = "input[type='search']"
	DefaultRowsSelector   = "table tbody"
	DefaultListingTimeout = 15 * time.Second
	DefaultFilterTimeout  = 10 * time.Second
)

var _ hydroagent.Resolver = (*Scout)(nil)

// Scout finds a basin's latest report row in the listing table. Zero-valued
// fields fall back to the package defaults.
type Scout struct {
	Tables   hydroagent.TableReader
	Synonyms []hydroagent.HeaderSynonym
	Logger   *slog.Logger

	ListingURL     string
	SearchSelector string
	RowsSelector   string
	ListingTimeout time.Duration
	FilterTimeout  time.Duration
	PollInterval   time.Duration
}

// Resolve loads the listing, maps its header, filters it by q, and returns
// the matching row with the latest report year.
func (s *Scout) Resolve(ctx context.Context, page hydroagent.Page, q hydroagent.BasinQuery) (*hydroagent.Resolution, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	listingURL := orString(s.ListingURL, DefaultListingURL)
	logger := loggerOrDiscard(s.Logger)

	if err := load(ctx, page, listingURL, "table", orDuration(s.ListingTimeout, DefaultListingTimeout)); err != nil {
		return nil, err
	}

	// Map the header before filtering so a layout change fails fast.
	table, err := s.readTable(ctx, page, listingURL)
	if err != nil {
		return nil, err
	}
	synonyms := s.Synonyms
	if synonyms == nil {
		synonyms = hydroagent.HeaderSynonyms
	}
	cols, err := hydroagent.MapColumns(table.Headers, synonyms)
	if err != nil {
		return nil, err
	}

	if err := s.filter(ctx, page, q, logger); err != nil {
		return nil, err
	}

	table, err = s.readTable(ctx, page, listingURL)
	if err != nil {
		return nil, err
	}
	logger.Debug("listing filtered", "query", q.String(), "rows", len(table.Rows))

	row, year, err := hydroagent.SelectLatest(table.Rows, cols, q)
	if err != nil {
		return nil, err
	}

	return &hydroagent.Resolution{
		DetailURL:  row.LinkFor(cols[hydroagent.RoleBasinName]),
		BasinName:  row.Cell(cols[hydroagent.RoleBasinName]),
		LatestYear: year,
	}, nil
}

// filter types q into the table's search control and waits for the row
// region to change. A region that never changes is tolerated because rows
// are matched against q again afterwards.
func (s *Scout) filter(ctx context.Context, page hydroagent.Page, q hydroagent.BasinQuery, logger *slog.Logger) error {
	rowsSelector := orString(s.RowsSelector, DefaultRowsSelector)
	searchSelector := orString(s.SearchSelector, DefaultSearchSelector)
	timeout := orDuration(s.FilterTimeout, DefaultFilterTimeout)

	fctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	before, err := page.Text(fctx, rowsSelector)
	if err != nil && hydroagent.ErrorCode(err) != hydroagent.ENOTFOUND {
		return boundError(ctx, fctx, err, timeout, "reading listing rows")
	}

	if err := page.Input(fctx, searchSelector, q.String()); err != nil {
		if hydroagent.ErrorCode(err) == hydroagent.ENOTFOUND {
			return hydroagent.Wrapf(hydroagent.ESTRUCTURE, err, "listing has no search control")
		}
		return boundError(ctx, fctx, err, timeout, "filtering listing")
	}

	// The wait gets what is left of the filter bound, not a fresh one.
	deadline, _ := fctx.Deadline()
	_, err = hydroagent.WaitForChange(ctx, page, rowsSelector, before, time.Until(deadline), s.PollInterval)
	switch {
	case err == nil:
		return nil
	case hydroagent.ErrorCode(err) == hydroagent.ETIMEOUT && ctx.Err() == nil:
		logger.Warn("listing rows unchanged after filter", "query", q.String(), "timeout", timeout)
		return nil
	default:
		return err
	}
}

func (s *Scout) readTable(ctx context.Context, page hydroagent.Page, baseURL string) (*hydroagent.Table, error) {
	html, err := page.HTML(ctx)
	if err != nil {
		return nil, err
	}
	return s.Tables.ReadTable(html, baseURL)
}

// load navigates within its own bound. Exceeding the bound is ETIMEOUT;
// cancellation of ctx is returned as the context error.
func load(ctx context.Context, page hydroagent.Page, url, ready string, timeout time.Duration) error {
	lctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := page.Navigate(lctx, url, ready); err != nil {
		return boundError(ctx, lctx, err, timeout, "loading %s", url)
	}
	return nil
}

// boundError classifies err from an operation run under bctx, a child of
// ctx with the given timeout.
func boundError(ctx, bctx context.Context, err error, timeout time.Duration, format string, args ...any) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if bctx.Err() != nil || hydroagent.ErrorCode(err) == hydroagent.ETIMEOUT {
		args = append(args, timeout)
		return hydroagent.Wrapf(hydroagent.ETIMEOUT, err, format+" exceeded %s", args...)
	}
	if code := hydroagent.ErrorCode(err); code != hydroagent.EINTERNAL {
		return err
	}
	return hydroagent.Wrapf(hydroagent.ERESOURCE, err, format, args...)
}

func orString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orDuration(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
