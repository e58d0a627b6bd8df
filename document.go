package hydroagent

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// DocumentKind identifies the type of document a link points to.
type DocumentKind string

// Document kinds harvested from a basin detail page.
const (
	KindAnnualReport DocumentKind = "annual_report"
	KindPlan         DocumentKind = "gsp"
)

// Strategy records how a document link was found.
type Strategy string

// Link discovery strategies.
const (
	StrategyPattern  Strategy = "pattern"
	StrategyFallback Strategy = "fallback"
	StrategyProbe    Strategy = "probe"
	StrategyText     Strategy = "text"
	StrategySubpage  Strategy = "subpage"
)

// DocumentLink is a candidate document link on a detail page.
type DocumentLink struct {
	Kind     DocumentKind
	URL      string
	Text     string
	Strategy Strategy

	// Distance is the number of outline elements between the anchor label and
	// the link. Zero for links not found relative to an anchor.
	Distance int
}

// DocumentSet holds the documents harvested from one detail page.
// Either field may be nil; a basin may lack one of the two documents.
type DocumentSet struct {
	AnnualReport *DocumentLink
	Plan         *DocumentLink
}

// ElementKind distinguishes outline elements.
type ElementKind int

// Outline element kinds.
const (
	ElementText ElementKind = iota
	ElementLink
)

// Element is a text label or a link on a page, in document order.
type Element struct {
	Kind ElementKind
	Text string
	URL  string // links only, resolved against the page URL
}

// Outline is a page flattened into its text labels and links in document order.
type Outline []Element

// AnnualReportAnchors are labels that precede annual report links when the
// file names do not follow the water-year convention.
var AnnualReportAnchors = []string{"Annual Report PDF"}

// DocumentExtensions mark link targets that are downloadable documents.
var DocumentExtensions = []string{".pdf", ".doc", ".docx", ".xls", ".xlsx", ".zip"}

// DocumentPathHints mark portal URLs that serve documents without an extension.
var DocumentPathHints = []string{"/document/", "/download/"}

// PlanPhrases identify sustainability plan links (case-insensitive).
var PlanPhrases = []string{"groundwater sustainability plan"}

// planAbbrevRe matches the GSP abbreviation when no letter touches it, so
// "3-001_GSP_2020.pdf" and "GSP2020" match but "GSPA" does not.
var planAbbrevRe = regexp.MustCompile(`(?:^|[^A-Za-z])GSP(?:[^A-Za-z]|$)`)

// waterYearAnyRe matches any water-year token.
var waterYearAnyRe = regexp.MustCompile(`WY_\d{4}`)

// WaterYearToken returns the file-name token for a water year, e.g. "WY_2024".
func WaterYearToken(year int) string {
	return fmt.Sprintf("WY_%04d", year)
}

// ContainsWaterYear reports whether text contains the token for year and the
// token is not the prefix of a longer number.
func ContainsWaterYear(text string, year int) bool {
	token := WaterYearToken(year)
	for i := 0; ; {
		j := strings.Index(text[i:], token)
		if j < 0 {
			return false
		}
		end := i + j + len(token)
		if end == len(text) || text[end] < '0' || text[end] > '9' {
			return true
		}
		i = end
	}
}

// IsDocumentLike reports whether a link looks like a downloadable document by
// its target path or its visible text.
func IsDocumentLike(rawURL, text string) bool {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	p = strings.ToLower(p)

	ext := path.Ext(p)
	for _, e := range DocumentExtensions {
		if ext == e {
			return true
		}
	}
	for _, hint := range DocumentPathHints {
		if strings.Contains(p, hint) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(text), ".pdf")
}

// IsPlanLink reports whether link text names a sustainability plan. Texts
// carrying a water-year token or "annual report" are excluded so a plan
// lookup never claims the annual report.
func IsPlanLink(text string) bool {
	lower := strings.ToLower(text)
	if waterYearAnyRe.MatchString(text) || strings.Contains(lower, "annual report") {
		return false
	}
	for _, phrase := range PlanPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return planAbbrevRe.MatchString(text)
}

// Links returns the link elements in document order.
func (o Outline) Links() []Element {
	var links []Element
	for _, el := range o {
		if el.Kind == ElementLink {
			links = append(links, el)
		}
	}
	return links
}

// MatchWaterYear returns the first link whose text carries the water-year
// token for year, or nil.
func (o Outline) MatchWaterYear(year int) *DocumentLink {
	for _, el := range o {
		if el.Kind == ElementLink && el.URL != "" && ContainsWaterYear(el.Text, year) {
			return &DocumentLink{
				Kind:     KindAnnualReport,
				URL:      el.URL,
				Text:     el.Text,
				Strategy: StrategyPattern,
			}
		}
	}
	return nil
}

// AnchoredLinks returns the links that follow the first text element
// containing one of the anchors (case-insensitive), in document order.
func (o Outline) AnchoredLinks(anchors []string) []DocumentLink {
	start := -1
	for i, el := range o {
		if el.Kind == ElementText && containsAnyFold(el.Text, anchors) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	var links []DocumentLink
	for i := start + 1; i < len(o); i++ {
		el := o[i]
		if el.Kind != ElementLink || el.URL == "" {
			continue
		}
		links = append(links, DocumentLink{
			Kind:     KindAnnualReport,
			URL:      el.URL,
			Text:     el.Text,
			Strategy: StrategyFallback,
			Distance: i - start,
		})
	}
	return links
}

// FirstDocumentLike returns the nearest candidate that looks like a
// document, or nil.
func FirstDocumentLike(candidates []DocumentLink) *DocumentLink {
	for i := range candidates {
		if IsDocumentLike(candidates[i].URL, candidates[i].Text) {
			c := candidates[i]
			return &c
		}
	}
	return nil
}

// Plan returns the first sustainability plan link, or nil.
func (o Outline) Plan() *DocumentLink {
	for _, el := range o {
		if el.Kind == ElementLink && el.URL != "" && IsPlanLink(el.Text) {
			return &DocumentLink{
				Kind:     KindPlan,
				URL:      el.URL,
				Text:     el.Text,
				Strategy: StrategyText,
			}
		}
	}
	return nil
}

func containsAnyFold(s string, subs []string) bool {
	s = strings.ToLower(s)
	for _, sub := range subs {
		if strings.Contains(s, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}
