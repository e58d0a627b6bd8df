package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hhaeri/HydroAgent"
	"github.com/hhaeri/HydroAgent/markdown"
)

// writeHunts renders hunts to w in the named format.
func writeHunts(w io.Writer, format, title string, hunts []*hydroagent.Hunt) error {
	switch format {
	case "json":
		if hunts == nil {
			hunts = []*hydroagent.Hunt{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(hunts)
	case "markdown":
		return markdown.NewWriter(w).WithTitle(title).Write(hunts)
	default:
		for _, h := range hunts {
			writeText(w, h)
		}
		return nil
	}
}

func writeText(w io.Writer, h *hydroagent.Hunt) {
	r := h.Result
	if !r.Found() {
		fmt.Fprintf(w, "%s: no basin found\n", h.Identifier)
		return
	}

	fmt.Fprintf(w, "%s: %s (%d)\n", h.Identifier, *r.BasinName, *r.LatestYear)
	fmt.Fprintf(w, "  annual report: %s\n", orNone(r.AnnualReportURL))
	fmt.Fprintf(w, "  gsp:           %s\n", orNone(r.GSPURL))
}

func orNone(s *string) string {
	if s == nil {
		return "(none)"
	}
	return *s
}
