package postgres

import (
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every version must be reversible, and the reporting views read by SQL
// consumers must be created by some up migration.
func TestMigrations_PairedAndCreateStatsViews(t *testing.T) {
	src, err := (&file.File{}).Open("file://../../../db/migrations")
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	var up strings.Builder
	versions := 0
	v, err := src.First()
	for err == nil {
		versions++

		r, _, rerr := src.ReadUp(v)
		require.NoError(t, rerr, "version %d has no up migration", v)
		b, _ := io.ReadAll(r)
		_ = r.Close()
		up.Write(b)

		d, _, derr := src.ReadDown(v)
		require.NoError(t, derr, "version %d has no down migration", v)
		_ = d.Close()

		v, err = src.Next(v)
	}
	require.True(t, errors.Is(err, fs.ErrNotExist), "unexpected error walking migrations: %v", err)
	assert.GreaterOrEqual(t, versions, 2)

	for _, view := range []string{
		"user_stats",
		"user_dashboard_stats",
		"weekly_workout_summary",
		"monthly_workout_summary",
		"workout_type_distribution",
	} {
		assert.Contains(t, up.String(), "CREATE OR REPLACE VIEW "+view+" AS", view)
	}
}
