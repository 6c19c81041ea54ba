package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"ReviewBoard/internal/domain"
)

func TestLatestPerPhaseSQLBaseQuery(t *testing.T) {
	t.Parallel()

	repo := NewPostgresRepository(nil)

	query, args, err := repo.latestPerPhaseSQL(domain.RecordFilter{
		Project: "demo",
		Root:    domain.RootAsset,
	})
	require.NoError(t, err)

	require.Contains(t, query, "DISTINCT ON (project, root, asset_path, relation, phase)")
	require.Contains(t, query, "FROM review_records")
	require.Contains(t, query, "deleted = $")
	require.Contains(t, query, "modified_at DESC, submitted_at DESC NULLS LAST, id DESC")
	require.NotContains(t, query, "LIMIT")

	require.Contains(t, args, "demo")
	require.Contains(t, args, domain.RootAsset)
	require.Contains(t, args, 0)
}

func TestLatestPerPhaseSQLNameKeyAndLimit(t *testing.T) {
	t.Parallel()

	repo := NewPostgresRepository(nil)

	query, args, err := repo.latestPerPhaseSQL(domain.RecordFilter{
		Project: "demo",
		NameKey: "ali",
		Limit:   500,
	})
	require.NoError(t, err)

	require.Contains(t, query, "asset_path ILIKE")
	require.Contains(t, query, "LIMIT 500")
	require.Contains(t, args, "%ali%")
}

func TestLatestPerPhaseSQLParameterizesUserInput(t *testing.T) {
	t.Parallel()

	repo := NewPostgresRepository(nil)

	malicious := "x'; DROP TABLE review_records; --"
	query, args, err := repo.latestPerPhaseSQL(domain.RecordFilter{
		Project: malicious,
		NameKey: malicious,
	})
	require.NoError(t, err)

	// User values travel only as placeholders, never in the SQL text.
	require.NotContains(t, query, "DROP TABLE")
	require.Contains(t, args, malicious)
}

func TestEscapeLikePattern(t *testing.T) {
	t.Parallel()

	got := escapeLikePattern(`50%_done\x`)
	require.Equal(t, `50\%\_done\\x`, got)
}

func TestSchemaEmbedded(t *testing.T) {
	t.Parallel()

	if !strings.Contains(Schema, "CREATE TABLE IF NOT EXISTS review_records") {
		t.Fatalf("schema.sql not embedded")
	}
}
