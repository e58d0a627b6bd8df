package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/hhaeri/HydroAgent"
	"github.com/hhaeri/HydroAgent/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuntService_FindHunts_OffsetWithoutLimit(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewHuntService(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 3 {
		require.NoError(t, svc.CreateHunt(ctx, foundHunt("3-001", base.Add(time.Duration(i)*time.Minute))))
	}

	hunts, err := svc.FindHunts(ctx, hydroagent.HuntFilter{Offset: 2})

	require.NoError(t, err)
	require.Len(t, hunts, 1)
	assert.Equal(t, base, hunts[0].HuntedAt)
}
