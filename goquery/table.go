package goquery

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/hhaeri/HydroAgent"
)

var _ hydroagent.TableReader = (*TableReader)(nil)

// TableReader reads the first table on a page that has a header row.
type TableReader struct {
	selector string
}

// NewTableReader creates a TableReader that considers tables matching selector.
// An empty selector means every table.
func NewTableReader(selector string) *TableReader {
	if selector == "" {
		selector = "table"
	}
	return &TableReader{selector: selector}
}

// ReadTable parses html and returns the header labels and body rows of the
// first table with a header row.
func (r *TableReader) ReadTable(html string, baseURL string) (*hydroagent.Table, error) {
	doc, base, err := parse(html, baseURL)
	if err != nil {
		return nil, err
	}

	var table *hydroagent.Table
	doc.Find(r.selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		table = readTable(sel, base)
		return table == nil
	})
	if table == nil {
		return nil, hydroagent.Errorf(hydroagent.ESTRUCTURE, "no table with a header row matching %q", r.selector)
	}
	return table, nil
}

// readTable returns nil when sel has no usable header row.
func readTable(sel *goquery.Selection, base *url.URL) *hydroagent.Table {
	header := sel.Find("thead tr").Last()
	rows := sel.Find("tbody tr")
	if header.Length() == 0 {
		// No thead: the first row carrying th cells is the header.
		all := sel.Find("tr")
		header = all.FilterFunction(func(_ int, tr *goquery.Selection) bool {
			return tr.Children().Filter("th").Length() > 0
		}).First()
		if header.Length() == 0 {
			return nil
		}
		rows = header.NextAll().Filter("tr")
	}

	var headers []string
	header.Children().Filter("th, td").Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, normalizeSpace(cell.Text()))
	})
	if len(headers) == 0 {
		return nil
	}

	table := &hydroagent.Table{Headers: headers}
	rows.Each(func(_ int, tr *goquery.Selection) {
		var row hydroagent.BasinRow
		tr.Children().Filter("td, th").Each(func(_ int, cell *goquery.Selection) {
			row.Cells = append(row.Cells, normalizeSpace(cell.Text()))
			row.Links = append(row.Links, linkTarget(base, cell.Find("a[href]").First()))
		})
		if len(row.Cells) > 0 {
			table.Rows = append(table.Rows, row)
		}
	})
	return table
}
