// Package markdown renders hunt outcomes as a Markdown report using
// github.com/nao1215/markdown.
package markdown

import (
	"io"
	"strconv"
	"time"

	"github.com/hhaeri/HydroAgent"
	"github.com/nao1215/markdown"
)

// none marks a field with no value.
const none = "-"

// Writer outputs hunts as a Markdown table.
type Writer struct {
	output io.Writer
	title  string
}

// NewWriter creates a Writer that outputs to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{output: w, title: "Basin Documents"}
}

// WithTitle sets the report heading.
func (w *Writer) WithTitle(title string) *Writer {
	w.title = title
	return w
}

// Write renders hunts in the given order.
func (w *Writer) Write(hunts []*hydroagent.Hunt) error {
	md := markdown.NewMarkdown(w.output)

	md.H1(w.title)
	md.PlainText("")

	rows := make([][]string, 0, len(hunts))
	var failed []*hydroagent.Hunt
	for _, h := range hunts {
		rows = append(rows, row(h))
		if h.Error != "" {
			failed = append(failed, h)
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Query", "Basin", "Latest Year", "Annual Report", "GSP", "Hunted"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(failed) > 0 {
		md.H2("Errors")
		md.PlainText("")
		items := make([]string, 0, len(failed))
		for _, h := range failed {
			items = append(items, markdown.Code(h.Identifier)+": "+h.Error)
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	return md.Build()
}

func row(h *hydroagent.Hunt) []string {
	r := h.Result
	if r == nil {
		r = &hydroagent.HuntResult{}
	}

	hunted := none
	if !h.HuntedAt.IsZero() {
		hunted = h.HuntedAt.UTC().Format(time.DateTime)
	}
	return []string{
		h.Identifier,
		deref(r.BasinName),
		year(r.LatestYear),
		link("PDF", r.AnnualReportURL),
		link("GSP", r.GSPURL),
		hunted,
	}
}

func deref(s *string) string {
	if s == nil {
		return none
	}
	return *s
}

func year(y *int) string {
	if y == nil {
		return none
	}
	return strconv.Itoa(*y)
}

func link(text string, url *string) string {
	if url == nil {
		return none
	}
	return markdown.Link(text, *url)
}
