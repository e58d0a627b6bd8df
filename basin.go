package hydroagent

import (
	"regexp"
	"strconv"
	"strings"
)

// BasinQuery identifies a basin either by code (e.g. "3-001") or by a
// fragment of its name (e.g. "Santa Cruz").
type BasinQuery string

// basinCodeRe matches Bulletin 118 style codes such as "3-001" or "5-022.08".
var basinCodeRe = regexp.MustCompile(`^\d{1,2}-\d{3}(\.\d{2})?$`)

// Validate returns an error if the query is blank.
func (q BasinQuery) Validate() error {
	if strings.TrimSpace(string(q)) == "" {
		return Errorf(EINVALID, "basin identifier required")
	}
	return nil
}

// IsCode reports whether the query looks like a basin code rather than a name.
func (q BasinQuery) IsCode() bool {
	return basinCodeRe.MatchString(strings.TrimSpace(string(q)))
}

// String returns the trimmed query.
func (q BasinQuery) String() string {
	return strings.TrimSpace(string(q))
}

// ColumnRole is the semantic meaning of a listing table column.
type ColumnRole string

// Column roles recognized in the listing table header.
const (
	RoleBasinName  ColumnRole = "basin_name"
	RoleBasinCode  ColumnRole = "basin_code"
	RoleReportYear ColumnRole = "report_year"
)

// RequiredRoles must be present in every mapped header.
var RequiredRoles = []ColumnRole{RoleBasinName, RoleReportYear}

// HeaderSynonym maps a case-insensitive header fragment to a column role.
type HeaderSynonym struct {
	Fragment string
	Role     ColumnRole
}

// HeaderSynonyms is consulted in order, so more specific fragments must come
// before the generic ones they contain ("basin number" before "basin").
var HeaderSynonyms = []HeaderSynonym{
	{"basin number", RoleBasinCode},
	{"basin code", RoleBasinCode},
	{"basin id", RoleBasinCode},
	{"basin no", RoleBasinCode},
	{"basin name", RoleBasinName},
	{"basin", RoleBasinName},
	{"report year", RoleReportYear},
	{"water year", RoleReportYear},
	{"year", RoleReportYear},
}

// ColumnMap maps column roles to zero-based column positions.
type ColumnMap map[ColumnRole]int

// MapColumns classifies each header by the first synonym it contains.
// The first header claiming a role keeps it. Returns ESTRUCTURE when a
// required role cannot be mapped.
func MapColumns(headers []string, synonyms []HeaderSynonym) (ColumnMap, error) {
	m := make(ColumnMap)
	for i, h := range headers {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		for _, syn := range synonyms {
			if !strings.Contains(h, syn.Fragment) {
				continue
			}
			if _, ok := m[syn.Role]; !ok {
				m[syn.Role] = i
			}
			break
		}
	}

	for _, role := range RequiredRoles {
		if _, ok := m[role]; !ok {
			return nil, Errorf(ESTRUCTURE, "no %s column in header %q", role, headers)
		}
	}
	return m, nil
}

// Table is a snapshot of the listing table.
type Table struct {
	Headers []string
	Rows    []BasinRow
}

// BasinRow is one listing table row. Links holds the resolved target of the
// first link in each cell, or "" for cells without one.
type BasinRow struct {
	Cells []string
	Links []string
}

// Cell returns the text at col, or "" when the row is too short.
func (r BasinRow) Cell(col int) string {
	if col < 0 || col >= len(r.Cells) {
		return ""
	}
	return r.Cells[col]
}

// LinkFor returns the link in column col, falling back to the first link
// anywhere in the row.
func (r BasinRow) LinkFor(col int) string {
	if col >= 0 && col < len(r.Links) && r.Links[col] != "" {
		return r.Links[col]
	}
	for _, l := range r.Links {
		if l != "" {
			return l
		}
	}
	return ""
}

// yearRe finds a standalone four-digit year, e.g. in "2024 (Draft)".
var yearRe = regexp.MustCompile(`(?:^|\D)(\d{4})(?:\D|$)`)

// ParseYear extracts the first four-digit year from s.
func ParseYear(s string) (int, bool) {
	m := yearRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return year, true
}

// Matches reports whether the row refers to the queried basin. Code queries
// require an exact token match in the code or basin column; name queries
// match a case-insensitive substring of the basin column.
func (r BasinRow) Matches(q BasinQuery, cols ColumnMap) bool {
	name := r.Cell(cols[RoleBasinName])
	query := q.String()

	if q.IsCode() {
		if col, ok := cols[RoleBasinCode]; ok && strings.EqualFold(strings.TrimSpace(r.Cell(col)), query) {
			return true
		}
		for _, tok := range strings.FieldsFunc(name, isCodeSeparator) {
			if tok == query {
				return true
			}
		}
		return false
	}

	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

func isCodeSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '(', ')', '[', ']', ',', ':', ';', '/':
		return true
	}
	return false
}

// SelectLatest returns the matching row with the greatest report year.
// Rows without a parseable year or a link are skipped. Ties keep the row
// that appears first. Returns ENOTFOUND when no row qualifies.
func SelectLatest(rows []BasinRow, cols ColumnMap, q BasinQuery) (BasinRow, int, error) {
	var best BasinRow
	bestYear := 0
	found := false

	for _, row := range rows {
		if !row.Matches(q, cols) {
			continue
		}
		year, ok := ParseYear(row.Cell(cols[RoleReportYear]))
		if !ok {
			continue
		}
		if row.LinkFor(cols[RoleBasinName]) == "" {
			continue
		}
		if !found || year > bestYear {
			best, bestYear, found = row, year, true
		}
	}

	if !found {
		return BasinRow{}, 0, Errorf(ENOTFOUND, "no listing row matches %q", q.String())
	}
	return best, bestYear, nil
}
