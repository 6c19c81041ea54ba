package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"ReviewBoard/internal/domain"
	"ReviewBoard/internal/ports"
)

//go:embed schema.sql
var Schema string

// recordColumns are read in this order by scanRecord.
var recordColumns = []string{
	"id",
	"project",
	"root",
	"asset_path",
	"relation",
	"phase",
	"work_status",
	"approval_status",
	"take",
	"submitted_at",
	"modified_at",
	"deleted",
}

// PostgresRepository reads the review_records log.
type PostgresRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ReviewRepository = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// LatestPerPhase selects the newest active record per (asset, phase) group
// using DISTINCT ON, so one dedup pass happens in the database instead of
// materializing the full submission history. Ties on modified_at fall to
// submitted_at (nulls lose), then to the higher id — the same rules the
// engine's in-memory resolver applies.
func (r *PostgresRepository) LatestPerPhase(ctx context.Context, filter domain.RecordFilter) ([]domain.ReviewRecord, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database is not configured")
	}

	query, args, err := r.latestPerPhaseSQL(filter)
	if err != nil {
		return nil, fmt.Errorf("build latest query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query latest records: %w", err)
	}
	defer rows.Close()

	var records []domain.ReviewRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return records, nil
}

func (r *PostgresRepository) latestPerPhaseSQL(filter domain.RecordFilter) (string, []any, error) {
	builder := r.builder.
		Select(recordColumns...).
		Options("DISTINCT ON (project, root, asset_path, relation, phase)").
		From("review_records").
		Where(sq.Eq{"project": filter.Project, "deleted": 0}).
		OrderBy(
			"project", "root", "asset_path", "relation", "phase",
			"modified_at DESC",
			"submitted_at DESC NULLS LAST",
			"id DESC",
		)

	if filter.Root != "" {
		builder = builder.Where(sq.Eq{"root": filter.Root})
	}
	if key := strings.TrimSpace(filter.NameKey); key != "" {
		builder = builder.Where(sq.ILike{"asset_path": "%" + escapeLikePattern(key) + "%"})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	return builder.ToSql()
}

func scanRecord(rows *sql.Rows) (domain.ReviewRecord, error) {
	var (
		rec         domain.ReviewRecord
		phase       string
		submittedAt sql.NullTime
	)
	err := rows.Scan(
		&rec.ID,
		&rec.Project,
		&rec.Root,
		&rec.AssetPath,
		&rec.Relation,
		&phase,
		&rec.WorkStatus,
		&rec.ApprovalStatus,
		&rec.Take,
		&submittedAt,
		&rec.ModifiedAt,
		&rec.Deleted,
	)
	if err != nil {
		return domain.ReviewRecord{}, err
	}
	rec.Phase = domain.Phase(phase)
	if submittedAt.Valid {
		at := submittedAt.Time
		rec.SubmittedAt = &at
	}
	return rec, nil
}

// escapeLikePattern neutralizes LIKE metacharacters in a user-supplied key
// so it only ever matches literally.
func escapeLikePattern(key string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(key)
}
