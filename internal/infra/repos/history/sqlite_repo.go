package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mmrzaf/datemath/internal/domain"
)

type SQLiteRepository struct {
	dbPath string
	db     *sql.DB
}

func NewSQLiteRepository(dbPath string) *SQLiteRepository {
	return &SQLiteRepository{dbPath: dbPath}
}

func (r *SQLiteRepository) Init() error {
	if dir := filepath.Dir(r.dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	db, err := sql.Open("sqlite3", r.dbPath)
	if err != nil {
		return err
	}
	r.db = db

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT PRIMARY KEY,
		input TEXT NOT NULL,
		tz TEXT NOT NULL,
		anchor TEXT,
		result TEXT,
		status TEXT NOT NULL,
		error TEXT,
		evaluated_at TIMESTAMP NOT NULL
	)`

	_, err = r.db.Exec(createTableSQL)
	return err
}

func (r *SQLiteRepository) DB() *sql.DB { return r.db }

func (r *SQLiteRepository) Record(ev *domain.Evaluation) error {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}

	query := `
		INSERT INTO evaluations (id, input, tz, anchor, result, status, error, evaluated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		ev.ID, ev.Input, ev.TZ,
		formatOptTime(ev.Anchor), formatOptTime(ev.Result),
		string(ev.Status), ev.Error,
		ev.EvaluatedAt.Format(time.RFC3339Nano),
	)
	return err
}

func (r *SQLiteRepository) Get(id string) (*domain.Evaluation, error) {
	query := `
		SELECT id, input, tz, anchor, result, status, error, evaluated_at
		FROM evaluations WHERE id = ?
	`
	return scanEvaluation(r.db.QueryRow(query, id))
}

func (r *SQLiteRepository) List(limit int, status string) ([]*domain.Evaluation, error) {
	query := `
		SELECT id, input, tz, anchor, result, status, error, evaluated_at
		FROM evaluations
	`

	args := make([]interface{}, 0)
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}

	query += " ORDER BY evaluated_at DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	evals := make([]*domain.Evaluation, 0)
	for rows.Next() {
		ev, err := scanEvaluation(rows)
		if err != nil {
			return nil, err
		}
		evals = append(evals, ev)
	}
	return evals, rows.Err()
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvaluation(row rowScanner) (*domain.Evaluation, error) {
	var ev domain.Evaluation
	var anchorStr, resultStr, errorStr sql.NullString
	var statusStr, evaluatedAtStr string

	err := row.Scan(&ev.ID, &ev.Input, &ev.TZ, &anchorStr, &resultStr, &statusStr, &errorStr, &evaluatedAtStr)
	if err != nil {
		return nil, err
	}

	ev.Status = domain.EvalStatus(statusStr)
	ev.Anchor = parseOptTime(anchorStr)
	ev.Result = parseOptTime(resultStr)
	if errorStr.Valid {
		ev.Error = errorStr.String
	}
	ev.EvaluatedAt, _ = time.Parse(time.RFC3339Nano, evaluatedAtStr)

	return &ev, nil
}

func formatOptTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func parseOptTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s.String)
	if err != nil {
		return nil
	}
	return &t
}
