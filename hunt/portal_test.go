package hunt_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/hhaeri/HydroAgent"
	"github.com/hhaeri/HydroAgent/hunt"
	"github.com/hhaeri/HydroAgent/mock"
)

const (
	detailURL = "https://sgma.water.ca.gov/portal/gspar/preview/202"
	planURL   = "https://sgma.water.ca.gov/portal/gsp/preview/86"
	reportURL = "https://sgma.water.ca.gov/portal/service/gspar/document/3002"
)

// listingHTML is the submitted reports listing before any filter is applied.
const listingHTML = `<html><body>
<label>Search: <input type="search"></label>
<table id="submitted">
<thead><tr><th>Report Year</th><th>Basin</th><th>Submitting Agency</th></tr></thead>
<tbody>
<tr><td>2023</td><td><a href="/portal/gspar/preview/150">3-001 SANTA CRUZ MID-COUNTY</a></td><td>Santa Cruz Mid-County GSA</td></tr>
<tr><td>2024</td><td><a href="/portal/gspar/preview/203">5-022.11 KAWEAH</a></td><td>Mid-Kaweah GSA</td></tr>
<tr><td>2024</td><td><a href="/portal/gspar/preview/202">3-001 SANTA CRUZ MID-COUNTY</a></td><td>Santa Cruz Mid-County GSA</td></tr>
<tr><td>2022</td><td><a href="/portal/gspar/preview/99">3-001 SANTA CRUZ MID-COUNTY</a></td><td>Santa Cruz Mid-County GSA</td></tr>
</tbody></table>
</body></html>`

// filteredHTML is the listing after "3-001" was submitted in the search box.
const filteredHTML = `<html><body>
<label>Search: <input type="search"></label>
<table id="submitted">
<thead><tr><th>Report Year</th><th>Basin</th><th>Submitting Agency</th></tr></thead>
<tbody>
<tr><td>2023</td><td><a href="/portal/gspar/preview/150">3-001 SANTA CRUZ MID-COUNTY</a></td><td>Santa Cruz Mid-County GSA</td></tr>
<tr><td>2024</td><td><a href="/portal/gspar/preview/202">3-001 SANTA CRUZ MID-COUNTY</a></td><td>Santa Cruz Mid-County GSA</td></tr>
<tr><td>2022</td><td><a href="/portal/gspar/preview/99">3-001 SANTA CRUZ MID-COUNTY</a></td><td>Santa Cruz Mid-County GSA</td></tr>
</tbody></table>
</body></html>`

const detailHTML = `<html><body>
<h1>3-001 Santa Cruz Mid-County</h1>
<h3>Groundwater Sustainability Plan</h3>
<p><a href="/portal/gsp/preview/86">Santa Cruz Mid-County Basin GSP</a></p>
<h3>Annual Report PDF(s)</h3>
<ul>
<li><a href="/portal/service/gspar/document/3001">3-001_WY_2023.pdf</a></li>
<li><a href="/portal/service/gspar/document/3002">3-001_WY_2024.pdf</a></li>
</ul>
</body></html>`

// portal is an in-memory stand-in for the live portal. Pages maps URLs to
// markup. The listing switches to Filtered once the search box is submitted.
type portal struct {
	Pages    map[string]string
	Filtered string

	mu       sync.Mutex
	current  string
	filtered bool
	closed   atomic.Int32
	visited  []string
}

func newPortal() *portal {
	return &portal{
		Pages: map[string]string{
			hunt.DefaultListingURL: listingHTML,
			detailURL:              detailHTML,
		},
		Filtered: filteredHTML,
	}
}

// Page returns a mock page reading from the portal.
func (p *portal) Page() *mock.Page {
	return &mock.Page{
		NavigateFn: func(ctx context.Context, url string, ready string) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.mu.Lock()
			defer p.mu.Unlock()
			if _, ok := p.Pages[url]; !ok {
				return hydroagent.Errorf(hydroagent.ERESOURCE, "no page at %s", url)
			}
			p.current = url
			p.filtered = false
			p.visited = append(p.visited, url)
			return nil
		},
		HTMLFn: func(ctx context.Context) (string, error) {
			p.mu.Lock()
			defer p.mu.Unlock()
			return p.html(), nil
		},
		TextFn: func(ctx context.Context, selector string) (string, error) {
			p.mu.Lock()
			defer p.mu.Unlock()
			if selector != hunt.DefaultRowsSelector || p.current != hunt.DefaultListingURL {
				return "", hydroagent.Errorf(hydroagent.ENOTFOUND, "no element matches %q", selector)
			}
			return p.html(), nil
		},
		InputFn: func(ctx context.Context, selector string, text string) error {
			p.mu.Lock()
			defer p.mu.Unlock()
			if selector != hunt.DefaultSearchSelector || p.current != hunt.DefaultListingURL {
				return hydroagent.Errorf(hydroagent.ENOTFOUND, "no element matches %q", selector)
			}
			p.filtered = true
			return nil
		},
		CloseFn: func() error {
			p.closed.Add(1)
			return nil
		},
	}
}

// Browser returns a mock browser handing out portal pages.
func (p *portal) Browser() *mock.Browser {
	return &mock.Browser{
		NewPageFn: func(ctx context.Context) (hydroagent.Page, error) {
			return p.Page(), nil
		},
		CloseFn: func() error { return nil },
	}
}

// Closed returns how many pages were closed.
func (p *portal) Closed() int {
	return int(p.closed.Load())
}

// Visited returns the URLs navigated to, in order.
func (p *portal) Visited() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.visited...)
}

func (p *portal) html() string {
	if p.current == hunt.DefaultListingURL && p.filtered {
		return p.Filtered
	}
	return p.Pages[p.current]
}
