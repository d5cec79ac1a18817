package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	_ "modernc.org/sqlite"

	"github.com/inference-gateway/adk/types"
)

// SQLTaskStore is a database/sql-backed TaskStore. Task snapshots are stored
// as JSON-serialized composite columns rather than normalized relations,
// since the task shape is defined by the protocol's generated types, not by
// this store.
type SQLTaskStore struct {
	db        *sql.DB
	tableName string
	logger    *zap.Logger
}

type taskRow struct {
	ID            string
	ContextID     string
	StatusJSON    string
	HistoryJSON   string
	ArtifactsJSON string
	MetadataJSON  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewSQLTaskStore opens (or adopts) a database/sql connection and ensures the
// configured task table exists. The caller owns db's lifecycle.
func NewSQLTaskStore(db *sql.DB, tableName string, logger *zap.Logger) (*SQLTaskStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sql task store: db connection is required")
	}
	if tableName == "" {
		tableName = "tasks"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &SQLTaskStore{db: db, tableName: tableName, logger: logger}

	if err := s.initSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("sql task store: schema init: %w", err)
	}

	return s, nil
}

var _ TaskStore = (*SQLTaskStore)(nil)

func (s *SQLTaskStore) initSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	createTable := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id TEXT PRIMARY KEY,
	context_id TEXT NOT NULL,
	status_json TEXT NOT NULL,
	history_json TEXT,
	artifacts_json TEXT,
	metadata_json TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
)`, s.tableName)

	if _, err := s.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("create %s table: %w", s.tableName, err)
	}

	createIndex := fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS idx_%s_context_id ON %s(context_id)`,
		s.tableName, s.tableName,
	)
	if _, err := s.db.ExecContext(ctx, createIndex); err != nil {
		return fmt.Errorf("create context_id index on %s: %w", s.tableName, err)
	}

	return nil
}

func (s *SQLTaskStore) Save(ctx context.Context, task *types.Task) error {
	if task == nil {
		return wrapInternal("cannot save a nil task", nil)
	}

	row, err := taskToRow(task)
	if err != nil {
		return wrapInternal("failed to serialize task", err)
	}

	query := fmt.Sprintf(`
INSERT INTO %s (id, context_id, status_json, history_json, artifacts_json, metadata_json, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	context_id = excluded.context_id,
	status_json = excluded.status_json,
	history_json = excluded.history_json,
	artifacts_json = excluded.artifacts_json,
	metadata_json = excluded.metadata_json,
	updated_at = excluded.updated_at
`, s.tableName)

	_, err = s.db.ExecContext(ctx, query,
		row.ID, row.ContextID, row.StatusJSON,
		row.HistoryJSON, row.ArtifactsJSON, row.MetadataJSON,
		row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return wrapInternal("failed to save task", err)
	}

	s.logger.Debug("task saved", zap.String("task_id", task.ID))

	return nil
}

func (s *SQLTaskStore) Get(ctx context.Context, taskID string) (*types.Task, error) {
	query := fmt.Sprintf(`
SELECT id, context_id, status_json, history_json, artifacts_json, metadata_json, created_at, updated_at
FROM %s WHERE id = ?`, s.tableName)

	var row taskRow
	err := s.db.QueryRowContext(ctx, query, taskID).Scan(
		&row.ID, &row.ContextID, &row.StatusJSON,
		&row.HistoryJSON, &row.ArtifactsJSON, &row.MetadataJSON,
		&row.CreatedAt, &row.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapInternal("failed to query task", err)
	}

	task, err := rowToTask(&row)
	if err != nil {
		return nil, wrapInternal(fmt.Sprintf("failed to deserialize task %s", taskID), err)
	}

	return task, nil
}

func (s *SQLTaskStore) Delete(ctx context.Context, taskID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.tableName)
	if _, err := s.db.ExecContext(ctx, query, taskID); err != nil {
		return wrapInternal("failed to delete task", err)
	}
	return nil
}

func (s *SQLTaskStore) List(ctx context.Context) ([]*types.Task, error) {
	query := fmt.Sprintf(`
SELECT id, context_id, status_json, history_json, artifacts_json, metadata_json, created_at, updated_at
FROM %s`, s.tableName)

	return s.queryTasks(ctx, query)
}

func (s *SQLTaskStore) ListByContext(ctx context.Context, contextID string) ([]*types.Task, error) {
	query := fmt.Sprintf(`
SELECT id, context_id, status_json, history_json, artifacts_json, metadata_json, created_at, updated_at
FROM %s WHERE context_id = ?`, s.tableName)

	return s.queryTasks(ctx, query, contextID)
}

func (s *SQLTaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]*types.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapInternal("failed to query tasks", err)
	}
	defer rows.Close()

	var out []*types.Task
	for rows.Next() {
		var row taskRow
		if err := rows.Scan(
			&row.ID, &row.ContextID, &row.StatusJSON,
			&row.HistoryJSON, &row.ArtifactsJSON, &row.MetadataJSON,
			&row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, wrapInternal("failed to scan task row", err)
		}

		task, err := rowToTask(&row)
		if err != nil {
			s.logger.Error("skipping task row with corrupt payload",
				zap.String("task_id", row.ID), zap.Error(err))
			continue
		}

		out = append(out, task)
	}

	return out, rows.Err()
}

func taskToRow(task *types.Task) (*taskRow, error) {
	now := time.Now().UTC()

	statusJSON, err := json.Marshal(task.Status)
	if err != nil {
		return nil, fmt.Errorf("marshal status: %w", err)
	}

	historyJSON := []byte("[]")
	if len(task.History) > 0 {
		if historyJSON, err = json.Marshal(task.History); err != nil {
			return nil, fmt.Errorf("marshal history: %w", err)
		}
	}

	artifactsJSON := []byte("[]")
	if len(task.Artifacts) > 0 {
		if artifactsJSON, err = json.Marshal(task.Artifacts); err != nil {
			return nil, fmt.Errorf("marshal artifacts: %w", err)
		}
	}

	metadataJSON := []byte("null")
	if task.Metadata != nil {
		if metadataJSON, err = json.Marshal(task.Metadata); err != nil {
			return nil, fmt.Errorf("marshal metadata: %w", err)
		}
	}

	return &taskRow{
		ID:            task.ID,
		ContextID:     task.ContextID,
		StatusJSON:    string(statusJSON),
		HistoryJSON:   string(historyJSON),
		ArtifactsJSON: string(artifactsJSON),
		MetadataJSON:  string(metadataJSON),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func rowToTask(row *taskRow) (*types.Task, error) {
	task := &types.Task{
		ID:        row.ID,
		ContextID: row.ContextID,
		Kind:      "task",
	}

	if err := json.Unmarshal([]byte(row.StatusJSON), &task.Status); err != nil {
		return nil, fmt.Errorf("unmarshal status: %w", err)
	}

	if row.HistoryJSON != "" && row.HistoryJSON != "[]" {
		if err := json.Unmarshal([]byte(row.HistoryJSON), &task.History); err != nil {
			return nil, fmt.Errorf("unmarshal history: %w", err)
		}
	}

	if row.ArtifactsJSON != "" && row.ArtifactsJSON != "[]" {
		if err := json.Unmarshal([]byte(row.ArtifactsJSON), &task.Artifacts); err != nil {
			return nil, fmt.Errorf("unmarshal artifacts: %w", err)
		}
	}

	if row.MetadataJSON != "" && row.MetadataJSON != "null" {
		if err := json.Unmarshal([]byte(row.MetadataJSON), &task.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}

	return task, nil
}
