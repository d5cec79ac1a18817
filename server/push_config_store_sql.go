package server

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"

	"github.com/inference-gateway/adk/types"
)

// SQLPushConfigStore is a database/sql-backed PushConfigStore. When an
// encryption key is supplied, each configuration's JSON payload is sealed
// with AES-256-GCM before it is written; rows written under a different (or
// absent) key, and rows that fail to decrypt, are skipped rather than
// failing the whole read.
type SQLPushConfigStore struct {
	db        *sql.DB
	tableName string
	aead      cipher.AEAD
	logger    *zap.Logger
}

// NewSQLPushConfigStore opens (or adopts) a database/sql connection and
// ensures the configured push config table exists. encryptionKey, if
// non-nil, must be exactly 32 bytes; when nil, payloads are stored as plain
// JSON.
func NewSQLPushConfigStore(db *sql.DB, tableName string, encryptionKey []byte, logger *zap.Logger) (*SQLPushConfigStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sql push config store: db connection is required")
	}
	if tableName == "" {
		tableName = "push_notification_configs"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var aead cipher.AEAD
	if encryptionKey != nil {
		block, err := aes.NewCipher(encryptionKey)
		if err != nil {
			return nil, fmt.Errorf("sql push config store: invalid encryption key: %w", err)
		}
		aead, err = cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("sql push config store: init GCM: %w", err)
		}
	}

	s := &SQLPushConfigStore{db: db, tableName: tableName, aead: aead, logger: logger}

	if err := s.initSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("sql push config store: schema init: %w", err)
	}

	return s, nil
}

var _ PushConfigStore = (*SQLPushConfigStore)(nil)

func (s *SQLPushConfigStore) initSchema(ctx context.Context) error {
	createTable := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	task_id TEXT NOT NULL,
	config_id TEXT NOT NULL,
	payload TEXT NOT NULL,
	PRIMARY KEY (task_id, config_id)
)`, s.tableName)

	_, err := s.db.ExecContext(ctx, createTable)
	return err
}

// Set inserts or replaces a config by (taskID, config_id). An anonymous
// config (cfg.ID == nil) is always appended as a new row under a generated
// key, never matched against a prior anonymous row for replacement —
// mirroring InMemoryPushConfigStore.Set, which only matches when cfg.ID is
// non-nil.
func (s *SQLPushConfigStore) Set(ctx context.Context, taskID string, cfg types.PushNotificationConfig) error {
	configID := uuid.New().String()
	if cfg.ID != nil {
		configID = *cfg.ID
	}

	payload, err := s.seal(cfg)
	if err != nil {
		return wrapInternal("failed to seal push notification config", err)
	}

	query := fmt.Sprintf(`
INSERT INTO %s (task_id, config_id, payload)
VALUES (?, ?, ?)
ON CONFLICT(task_id, config_id) DO UPDATE SET payload = excluded.payload
`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query, taskID, configID, payload); err != nil {
		return wrapInternal("failed to save push notification config", err)
	}

	return nil
}

func (s *SQLPushConfigStore) Get(ctx context.Context, taskID string) ([]types.PushNotificationConfig, error) {
	query := fmt.Sprintf(`SELECT payload FROM %s WHERE task_id = ?`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, wrapInternal("failed to query push notification configs", err)
	}
	defer rows.Close()

	var out []types.PushNotificationConfig
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, wrapInternal("failed to scan push notification config row", err)
		}

		cfg, err := s.unseal(payload)
		if err != nil {
			s.logger.Error("skipping push notification config with corrupt payload",
				zap.String("task_id", taskID), zap.Error(err))
			continue
		}

		out = append(out, cfg)
	}

	return out, rows.Err()
}

func (s *SQLPushConfigStore) Delete(ctx context.Context, taskID string, configID *string) error {
	if configID == nil {
		query := fmt.Sprintf(`DELETE FROM %s WHERE task_id = ?`, s.tableName)
		_, err := s.db.ExecContext(ctx, query, taskID)
		if err != nil {
			return wrapInternal("failed to delete push notification configs", err)
		}
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE task_id = ? AND config_id = ?`, s.tableName)
	if _, err := s.db.ExecContext(ctx, query, taskID, *configID); err != nil {
		return wrapInternal("failed to delete push notification config", err)
	}

	return nil
}

func (s *SQLPushConfigStore) seal(cfg types.PushNotificationConfig) (string, error) {
	plaintext, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}

	if s.aead == nil {
		return string(plaintext), nil
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := s.aead.Seal(nonce, nonce, plaintext, nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (s *SQLPushConfigStore) unseal(payload string) (types.PushNotificationConfig, error) {
	var cfg types.PushNotificationConfig

	if s.aead == nil {
		if err := json.Unmarshal([]byte(payload), &cfg); err != nil {
			return cfg, fmt.Errorf("unmarshal config: %w", err)
		}
		return cfg, nil
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return cfg, fmt.Errorf("decode payload: %w", err)
	}

	nonceSize := s.aead.NonceSize()
	if len(raw) < nonceSize {
		return cfg, fmt.Errorf("payload shorter than nonce size")
	}

	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return cfg, fmt.Errorf("decrypt payload: %w", err)
	}

	if err := json.Unmarshal(plaintext, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}
