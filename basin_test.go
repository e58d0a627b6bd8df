package hydroagent_test

import (
	"testing"

	"github.com/hhaeri/HydroAgent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasinQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query  hydroagent.BasinQuery
		isCode bool
	}{
		{"3-001", true},
		{" 5-022.08 ", true},
		{"Santa Cruz", false},
		{"3-1", false},
		{"3-001 Santa Cruz", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.query), func(t *testing.T) {
			t.Parallel()
			assert.NoError(t, tt.query.Validate())
			assert.Equal(t, tt.isCode, tt.query.IsCode())
		})
	}

	t.Run("blank is invalid", func(t *testing.T) {
		t.Parallel()

		err := hydroagent.BasinQuery(" \t").Validate()
		assert.Equal(t, hydroagent.EINVALID, hydroagent.ErrorCode(err))
	})
}

func TestMapColumns(t *testing.T) {
	t.Parallel()

	t.Run("maps roles regardless of column order", func(t *testing.T) {
		t.Parallel()

		orders := [][]string{
			{"Basin", "Report Year", "Agency"},
			{"Agency", "Report Year", "Basin"},
			{"Water Year", "Agency", "Basin Name"},
		}
		for _, headers := range orders {
			cols, err := hydroagent.MapColumns(headers, hydroagent.HeaderSynonyms)
			require.NoError(t, err)

			for i, h := range headers {
				switch h {
				case "Basin", "Basin Name":
					assert.Equal(t, i, cols[hydroagent.RoleBasinName], headers)
				case "Report Year", "Water Year":
					assert.Equal(t, i, cols[hydroagent.RoleReportYear], headers)
				}
			}
		}
	})

	t.Run("specific synonyms win over generic ones", func(t *testing.T) {
		t.Parallel()

		cols, err := hydroagent.MapColumns([]string{"BASIN NUMBER", "Basin Name", "Year Submitted"}, hydroagent.HeaderSynonyms)

		require.NoError(t, err)
		assert.Equal(t, hydroagent.ColumnMap{
			hydroagent.RoleBasinCode:  0,
			hydroagent.RoleBasinName:  1,
			hydroagent.RoleReportYear: 2,
		}, cols)
	})

	t.Run("first header claiming a role keeps it", func(t *testing.T) {
		t.Parallel()

		cols, err := hydroagent.MapColumns([]string{"Report Year", "Basin", "Basin Subbasin", "Year"}, hydroagent.HeaderSynonyms)

		require.NoError(t, err)
		assert.Equal(t, 0, cols[hydroagent.RoleReportYear])
		assert.Equal(t, 1, cols[hydroagent.RoleBasinName])
	})

	t.Run("returns ESTRUCTURE when a required role is missing", func(t *testing.T) {
		t.Parallel()

		_, err := hydroagent.MapColumns([]string{"Basin", "Agency"}, hydroagent.HeaderSynonyms)

		require.Error(t, err)
		assert.Equal(t, hydroagent.ESTRUCTURE, hydroagent.ErrorCode(err))
		assert.Contains(t, err.Error(), "report_year")
	})
}

func TestParseYear(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"2024", 2024, true},
		{"2024 (Draft)", 2024, true},
		{"WY 2023", 2023, true},
		{"12345", 0, false},
		{"", 0, false},
		{"n/a", 0, false},
	}
	for _, tt := range tests {
		got, ok := hydroagent.ParseYear(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestSelectLatest(t *testing.T) {
	t.Parallel()

	cols := hydroagent.ColumnMap{hydroagent.RoleBasinName: 0, hydroagent.RoleReportYear: 1}
	row := func(name, year, link string) hydroagent.BasinRow {
		return hydroagent.BasinRow{Cells: []string{name, year}, Links: []string{link, ""}}
	}

	t.Run("greatest year wins", func(t *testing.T) {
		t.Parallel()

		rows := []hydroagent.BasinRow{
			row("3-001 Santa Cruz", "2022", "/a"),
			row("3-001 Santa Cruz", "2024", "/b"),
			row("3-001 Santa Cruz", "2023", "/c"),
		}

		got, year, err := hydroagent.SelectLatest(rows, cols, "3-001")

		require.NoError(t, err)
		assert.Equal(t, 2024, year)
		assert.Equal(t, "/b", got.LinkFor(0))
	})

	t.Run("ties keep the first row in order", func(t *testing.T) {
		t.Parallel()

		rows := []hydroagent.BasinRow{
			row("Santa Cruz Mid-County", "2024", "/first"),
			row("Santa Cruz Mid-County", "2024", "/second"),
		}

		got, _, err := hydroagent.SelectLatest(rows, cols, "santa cruz")

		require.NoError(t, err)
		assert.Equal(t, "/first", got.LinkFor(0))
	})

	t.Run("skips rows without a year or a link", func(t *testing.T) {
		t.Parallel()

		rows := []hydroagent.BasinRow{
			row("3-001 Santa Cruz", "pending", "/a"),
			row("3-001 Santa Cruz", "2025", ""),
			row("3-001 Santa Cruz", "2021", "/c"),
		}

		got, year, err := hydroagent.SelectLatest(rows, cols, "3-001")

		require.NoError(t, err)
		assert.Equal(t, 2021, year)
		assert.Equal(t, "/c", got.LinkFor(0))
	})

	t.Run("falls back to a link elsewhere in the row", func(t *testing.T) {
		t.Parallel()

		rows := []hydroagent.BasinRow{
			{Cells: []string{"3-001 Santa Cruz", "2024"}, Links: []string{"", "/year-link"}},
		}

		got, _, err := hydroagent.SelectLatest(rows, cols, "3-001")

		require.NoError(t, err)
		assert.Equal(t, "/year-link", got.LinkFor(0))
	})

	t.Run("code column matches exactly", func(t *testing.T) {
		t.Parallel()

		codeCols := hydroagent.ColumnMap{hydroagent.RoleBasinCode: 0, hydroagent.RoleBasinName: 1, hydroagent.RoleReportYear: 2}
		rows := []hydroagent.BasinRow{
			{Cells: []string{"3-001.01", "Santa Cruz", "2024"}, Links: []string{"", "/sub", ""}},
			{Cells: []string{"3-001", "Santa Cruz", "2023"}, Links: []string{"", "/basin", ""}},
		}

		got, year, err := hydroagent.SelectLatest(rows, codeCols, "3-001")

		require.NoError(t, err)
		assert.Equal(t, 2023, year)
		assert.Equal(t, "/basin", got.LinkFor(1))
	})

	t.Run("returns ENOTFOUND when nothing matches", func(t *testing.T) {
		t.Parallel()

		_, _, err := hydroagent.SelectLatest([]hydroagent.BasinRow{row("5-022 Kaweah", "2024", "/k")}, cols, "3-001")

		require.Error(t, err)
		assert.Equal(t, hydroagent.ENOTFOUND, hydroagent.ErrorCode(err))
	})
}
