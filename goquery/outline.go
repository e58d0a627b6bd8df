package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hhaeri/HydroAgent"
	"golang.org/x/net/html"
)

var _ hydroagent.OutlineReader = (*OutlineReader)(nil)

// skipElements never contribute text to an outline.
var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// OutlineReader flattens a page body into text labels and links.
type OutlineReader struct{}

// NewOutlineReader creates a new OutlineReader.
func NewOutlineReader() *OutlineReader {
	return &OutlineReader{}
}

// ReadOutline walks the body in document order. Each link becomes a link
// element carrying its full visible text. Every other element contributes
// its own text, excluding descendants, as a text element.
func (r *OutlineReader) ReadOutline(markup string, baseURL string) (hydroagent.Outline, error) {
	doc, base, err := parse(markup, baseURL)
	if err != nil {
		return nil, err
	}

	var outline hydroagent.Outline
	doc.Find("body *").Each(func(_ int, sel *goquery.Selection) {
		name := goquery.NodeName(sel)
		if skipElements[name] || sel.ParentsFiltered("script, style, noscript, template").Length() > 0 {
			return
		}

		if name == "a" {
			target := linkTarget(base, sel)
			if target == "" {
				return
			}
			outline = append(outline, hydroagent.Element{
				Kind: hydroagent.ElementLink,
				Text: normalizeSpace(sel.Text()),
				URL:  target,
			})
			return
		}

		if sel.Closest("a").Length() > 0 {
			return
		}
		if text := ownText(sel); text != "" {
			outline = append(outline, hydroagent.Element{
				Kind: hydroagent.ElementText,
				Text: text,
			})
		}
	})
	return outline, nil
}

// ownText returns the normalized text of sel's direct text children.
func ownText(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	var b strings.Builder
	for c := sel.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			b.WriteByte(' ')
		}
	}
	return normalizeSpace(b.String())
}
