package hydroagent

import (
	"context"
	"time"
)

// Resolution is the listing row chosen for a basin query.
type Resolution struct {
	DetailURL  string
	BasinName  string
	LatestYear int
}

// HuntResult is the outcome of one basin query. A nil BasinName means no
// basin matched, and then every other field is nil too.
type HuntResult struct {
	BasinName       *string `json:"basin_name"`
	LatestYear      *int    `json:"latest_year"`
	AnnualReportURL *string `json:"annual_report_url"`
	GSPURL          *string `json:"gsp_url"`
}

// NewHuntResult builds a result from a resolution and the harvested documents.
// A nil resolution yields the empty result regardless of docs.
func NewHuntResult(res *Resolution, docs *DocumentSet) *HuntResult {
	if res == nil {
		return &HuntResult{}
	}

	name := res.BasinName
	year := res.LatestYear
	r := &HuntResult{
		BasinName:  &name,
		LatestYear: &year,
	}
	if docs != nil {
		if docs.AnnualReport != nil {
			u := docs.AnnualReport.URL
			r.AnnualReportURL = &u
		}
		if docs.Plan != nil {
			u := docs.Plan.URL
			r.GSPURL = &u
		}
	}
	return r
}

// Found reports whether the query matched a basin.
func (r *HuntResult) Found() bool {
	return r != nil && r.BasinName != nil
}

// Resolver finds a basin's detail page and latest reporting year.
type Resolver interface {
	// Resolve returns ENOTFOUND when no row matches and ESTRUCTURE when the
	// listing header cannot be mapped.
	Resolve(ctx context.Context, page Page, q BasinQuery) (*Resolution, error)
}

// Harvester extracts document links from a basin detail page.
type Harvester interface {
	// Harvest never fails on a missing document; absent documents are nil
	// fields. A detail page load that exceeds its bound returns ETIMEOUT.
	Harvest(ctx context.Context, page Page, detailURL string, year int) (*DocumentSet, error)
}

// Hunter resolves a basin identifier to its latest documents.
type Hunter interface {
	// GetBasinDocuments always returns a non-nil result. On error the result
	// is empty and the error carries the failing stage and identifier.
	GetBasinDocuments(ctx context.Context, identifier string) (*HuntResult, error)
}

// TableReader parses the listing table out of a page snapshot.
type TableReader interface {
	// ReadTable returns ESTRUCTURE if the HTML has no table with a header row.
	// Links are resolved against baseURL.
	ReadTable(html string, baseURL string) (*Table, error)
}

// OutlineReader flattens a page snapshot into text labels and links.
type OutlineReader interface {
	ReadOutline(html string, baseURL string) (Outline, error)
}

// DocumentProber checks a URL's content type when its path gives no hint.
type DocumentProber interface {
	IsDocument(ctx context.Context, url string) (bool, error)
}

// Hunt is a recorded basin query and its outcome.
type Hunt struct {
	ID         string      `json:"id"`
	Identifier string      `json:"identifier"`
	Result     *HuntResult `json:"result"`
	Error      string      `json:"error,omitempty"`
	HuntedAt   time.Time   `json:"huntedAt"`
}

// Validate returns an error if the hunt contains invalid fields.
func (h *Hunt) Validate() error {
	if h.Identifier == "" {
		return Errorf(EINVALID, "hunt identifier required")
	}
	if h.Result == nil {
		return Errorf(EINVALID, "hunt result required")
	}
	return nil
}

// HuntService records hunt outcomes.
type HuntService interface {
	// CreateHunt stores a hunt, assigning its ID and HuntedAt if unset.
	CreateHunt(ctx context.Context, hunt *Hunt) error

	// FindHuntByID retrieves a hunt by ID.
	// Returns ENOTFOUND if the hunt does not exist.
	FindHuntByID(ctx context.Context, id string) (*Hunt, error)

	// FindHunts retrieves hunts matching the filter, newest first.
	FindHunts(ctx context.Context, filter HuntFilter) ([]*Hunt, error)
}

// HuntFilter represents a filter for FindHunts.
type HuntFilter struct {
	Identifier *string `json:"identifier"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
