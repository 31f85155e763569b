package history

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/mmrzaf/datemath/internal/domain"
)

type PostgresRepository struct {
	dsn string
	db  *sql.DB
}

func NewPostgresRepository(dsn string) *PostgresRepository {
	return &PostgresRepository{dsn: strings.TrimSpace(dsn)}
}

func (r *PostgresRepository) Init() error {
	if r.dsn == "" {
		return fmt.Errorf("datemath db dsn is required")
	}
	db, err := sql.Open("postgres", r.dsn)
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return err
	}
	r.db = db
	return r.applyMigrations()
}

func (r *PostgresRepository) DB() *sql.DB { return r.db }

func (r *PostgresRepository) applyMigrations() error {
	if _, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`); err != nil {
		return err
	}
	var cur int
	if err := r.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&cur); err != nil {
		return err
	}

	type mig struct {
		v  int
		up func(*sql.DB) error
	}
	migs := []mig{
		{1, migrateV1EvaluationsPG},
	}

	for _, m := range migs {
		if cur >= m.v {
			continue
		}
		if err := m.up(r.db); err != nil {
			return fmt.Errorf("migration %d failed: %w", m.v, err)
		}
		if _, err := r.db.Exec(`INSERT INTO schema_migrations(version) VALUES ($1)`, m.v); err != nil {
			return err
		}
		cur = m.v
	}
	return nil
}

func migrateV1EvaluationsPG(db *sql.DB) error {
	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT PRIMARY KEY,
		input TEXT NOT NULL,
		tz TEXT NOT NULL,
		anchor TIMESTAMPTZ,
		result TIMESTAMPTZ,
		status TEXT NOT NULL,
		error TEXT,
		evaluated_at TIMESTAMPTZ NOT NULL
	)`); err != nil {
		return err
	}
	_, _ = db.Exec(`CREATE INDEX IF NOT EXISTS idx_evaluations_evaluated_at ON evaluations(evaluated_at DESC)`)
	return nil
}

func (r *PostgresRepository) Record(ev *domain.Evaluation) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}

	query := `
		INSERT INTO evaluations (id, input, tz, anchor, result, status, error, evaluated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(query,
		ev.ID, ev.Input, ev.TZ,
		optTime(ev.Anchor), optTime(ev.Result),
		string(ev.Status), ev.Error, ev.EvaluatedAt,
	)
	return err
}

func (r *PostgresRepository) Get(id string) (*domain.Evaluation, error) {
	query := `
		SELECT id, input, tz, anchor, result, status, error, evaluated_at
		FROM evaluations WHERE id = $1
	`
	return scanEvaluationPG(r.db.QueryRow(query, id))
}

func (r *PostgresRepository) List(limit int, status string) ([]*domain.Evaluation, error) {
	query := `
		SELECT id, input, tz, anchor, result, status, error, evaluated_at
		FROM evaluations
	`

	args := make([]interface{}, 0)
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}

	query += " ORDER BY evaluated_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	evals := make([]*domain.Evaluation, 0)
	for rows.Next() {
		ev, err := scanEvaluationPG(rows)
		if err != nil {
			return nil, err
		}
		evals = append(evals, ev)
	}
	return evals, rows.Err()
}

func (r *PostgresRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func scanEvaluationPG(row rowScanner) (*domain.Evaluation, error) {
	var ev domain.Evaluation
	var anchor, result sql.NullTime
	var errorStr sql.NullString
	var statusStr string

	err := row.Scan(&ev.ID, &ev.Input, &ev.TZ, &anchor, &result, &statusStr, &errorStr, &ev.EvaluatedAt)
	if err != nil {
		return nil, err
	}

	ev.Status = domain.EvalStatus(statusStr)
	if anchor.Valid {
		t := anchor.Time
		ev.Anchor = &t
	}
	if result.Valid {
		t := result.Time
		ev.Result = &t
	}
	if errorStr.Valid {
		ev.Error = errorStr.String
	}
	return &ev, nil
}

func optTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
