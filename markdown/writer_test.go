package markdown_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/hhaeri/HydroAgent"
	"github.com/hhaeri/HydroAgent/markdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Write(t *testing.T) {
	t.Parallel()

	t.Run("renders found and failed hunts", func(t *testing.T) {
		t.Parallel()

		at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
		hunts := []*hydroagent.Hunt{
			{
				Identifier: "3-001",
				Result: hydroagent.NewHuntResult(
					&hydroagent.Resolution{BasinName: "3-001 SANTA CRUZ MID-COUNTY", LatestYear: 2024},
					&hydroagent.DocumentSet{
						AnnualReport: &hydroagent.DocumentLink{URL: "https://sgma.water.ca.gov/portal/service/gspar/document/3002"},
					},
				),
				HuntedAt: at,
			},
			{
				Identifier: "9-999",
				Result:     &hydroagent.HuntResult{},
				Error:      "no listing row matches \"9-999\"",
			},
		}

		var buf bytes.Buffer
		err := markdown.NewWriter(&buf).Write(hunts)

		require.NoError(t, err)
		out := buf.String()
		assert.Contains(t, out, "# Basin Documents")
		assert.Contains(t, out, "| Query")
		assert.Contains(t, out, "3-001 SANTA CRUZ MID-COUNTY")
		assert.Contains(t, out, "2024")
		assert.Contains(t, out, "[PDF](https://sgma.water.ca.gov/portal/service/gspar/document/3002)")
		assert.Contains(t, out, "2026-03-01 09:30:00")
		assert.Contains(t, out, "## Errors")
		assert.Contains(t, out, "`9-999`")
		assert.Less(t, bytes.Index(buf.Bytes(), []byte("3-001 SANTA")), bytes.Index(buf.Bytes(), []byte("| 9-999")))
	})

	t.Run("omits the error section when all hunts succeed", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := markdown.NewWriter(&buf).WithTitle("History").Write([]*hydroagent.Hunt{
			{Identifier: "3-001", Result: &hydroagent.HuntResult{}},
		})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "# History")
		assert.NotContains(t, buf.String(), "## Errors")
	})
}
