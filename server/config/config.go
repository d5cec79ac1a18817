package config

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all application configuration for the A2A server runtime.
type Config struct {
	AgentName         string             // Build-time metadata, not configurable via environment
	AgentDescription   string             // Build-time metadata, not configurable via environment
	AgentVersion       string             // Build-time metadata, not configurable via environment
	AgentURL           string             `env:"AGENT_URL"`
	AgentCardFilePath  string             `env:"AGENT_CARD_FILE_PATH" description:"Path to JSON file containing static agent card definition"`
	Debug              bool               `env:"DEBUG,default=false"`
	CapabilitiesConfig CapabilitiesConfig `env:",prefix=CAPABILITIES_"`
	StorageConfig      StorageConfig      `env:",prefix=STORAGE_"`
	PushConfig         PushConfig         `env:",prefix=PUSH_"`
	AuthConfig         AuthConfig         `env:",prefix=AUTH_"`
	TaskRetentionConfig TaskRetentionConfig `env:",prefix=TASK_RETENTION_"`
	ServerConfig       ServerConfig       `env:",prefix=SERVER_"`
	TelemetryConfig    TelemetryConfig    `env:",prefix=TELEMETRY_"`
}

// CapabilitiesConfig defines the capabilities advertised on the agent card.
// These three fields are the single source of truth read by the capability
// gate, the extended-card endpoint, and the unauthenticated card endpoint.
type CapabilitiesConfig struct {
	Streaming              bool `env:"STREAMING,default=true" description:"Enable streaming support"`
	PushNotifications      bool `env:"PUSH_NOTIFICATIONS,default=true" description:"Enable push notifications"`
	StateTransitionHistory bool `env:"STATE_TRANSITION_HISTORY,default=false" description:"Enable state transition history"`
}

// StorageConfig selects and configures the task store / push config store backend.
type StorageConfig struct {
	Provider        string `env:"PROVIDER,default=memory" description:"Task store backend (memory, sql, redis)"`
	SQLDriverName   string `env:"SQL_DRIVER_NAME,default=sqlite" description:"database/sql driver name for the sql provider"`
	SQLDataSource   string `env:"SQL_DATA_SOURCE,default=file::memory:?cache=shared" description:"database/sql data source name"`
	SQLTaskTable    string `env:"SQL_TASK_TABLE,default=tasks" description:"table name for the SQL task store"`
	SQLPushTable    string `env:"SQL_PUSH_TABLE,default=push_notification_configs" description:"table name for the SQL push config store"`
	RedisURL        string `env:"REDIS_URL,default=redis://localhost:6379/0" description:"connection URL for the redis provider"`
	EncryptionKeyB64 string `env:"ENCRYPTION_KEY_BASE64" description:"base64-encoded 32-byte AES-256-GCM key; when set, push config secrets are encrypted at rest"`
}

// PushConfig tunes the push notification sender.
type PushConfig struct {
	DispatchTimeout time.Duration `env:"DISPATCH_TIMEOUT,default=30s" description:"per-dispatch HTTP deadline for push notification delivery"`
	UserAgent       string        `env:"USER_AGENT,default=a2a-adk/1.0" description:"User-Agent header sent with push dispatches"`
	UseCloudEvents  bool          `env:"USE_CLOUD_EVENTS,default=false" description:"wrap push notification bodies in a CloudEvents envelope instead of bare task JSON"`
}

// TLSConfig holds TLS configuration.
type TLSConfig struct {
	Enable   bool   `env:"ENABLE,default=false"`
	CertPath string `env:"CERT_PATH" description:"TLS certificate path"`
	KeyPath  string `env:"KEY_PATH" description:"TLS key path"`
}

// AuthConfig holds configuration for verifying inbound OIDC bearer tokens at
// the HTTP adapter boundary.
type AuthConfig struct {
	Enable       bool   `env:"ENABLE,default=false"`
	IssuerURL    string `env:"ISSUER_URL"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
}

// TaskRetentionConfig defines how many completed and failed tasks to retain
// in stores that support operational cleanup.
type TaskRetentionConfig struct {
	MaxCompletedTasks int           `env:"MAX_COMPLETED_TASKS,default=100" description:"Maximum number of completed tasks to retain (0 = unlimited)"`
	MaxFailedTasks    int           `env:"MAX_FAILED_TASKS,default=50" description:"Maximum number of failed tasks to retain (0 = unlimited)"`
	CleanupInterval   time.Duration `env:"CLEANUP_INTERVAL,default=5m" description:"How often to run cleanup (0 = manual cleanup only)"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port                  string        `env:"PORT,default=8080" description:"HTTP server port"`
	RPCPath               string        `env:"RPC_PATH,default=/a2a" description:"JSON-RPC endpoint path"`
	ReadTimeout           time.Duration `env:"READ_TIMEOUT,default=120s" description:"HTTP server read timeout"`
	WriteTimeout          time.Duration `env:"WRITE_TIMEOUT,default=120s" description:"HTTP server write timeout"`
	IdleTimeout           time.Duration `env:"IDLE_TIMEOUT,default=120s" description:"HTTP server idle timeout"`
	DisableHealthcheckLog bool          `env:"DISABLE_HEALTHCHECK_LOG,default=true" description:"Disable logging for health check requests"`
	TLSConfig             TLSConfig     `env:",prefix=TLS_"`
}

// MetricsConfig holds metrics server configuration.
type MetricsConfig struct {
	Port         string        `env:"PORT,default=9090" description:"Metrics server port"`
	Host         string        `env:"HOST,default=" description:"Metrics server host (empty for all interfaces)"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT,default=30s" description:"Metrics server read timeout"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT,default=30s" description:"Metrics server write timeout"`
	IdleTimeout  time.Duration `env:"IDLE_TIMEOUT,default=60s" description:"Metrics server idle timeout"`
}

// TelemetryConfig holds telemetry configuration.
type TelemetryConfig struct {
	Enable        bool          `env:"ENABLE,default=false" description:"Enable telemetry collection"`
	MetricsConfig MetricsConfig `env:",prefix=METRICS_"`
}

// Load loads configuration from environment variables, merging with the provided base config.
func Load(ctx context.Context, baseConfig *Config) (*Config, error) {
	return LoadWithLookuper(ctx, baseConfig, envconfig.OsLookuper())
}

// LoadWithLookuper creates and loads configuration using a custom lookuper and merges with user config.
func LoadWithLookuper(ctx context.Context, baseConfig *Config, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config

	if baseConfig != nil {
		cfg = *baseConfig
	}

	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	})
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// NewWithDefaults creates a new config with defaults applied from struct tags only.
func NewWithDefaults(ctx context.Context, baseConfig *Config) (*Config, error) {
	return LoadWithLookuper(ctx, baseConfig, &emptyLookuper{})
}

// emptyLookuper ensures that only default values from struct tags are used.
type emptyLookuper struct{}

func (e *emptyLookuper) Lookup(key string) (string, bool) {
	return "", false
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.StorageConfig.Provider {
	case "memory", "sql", "redis":
	default:
		return fmt.Errorf("unsupported storage provider: %s", c.StorageConfig.Provider)
	}

	if c.StorageConfig.EncryptionKeyB64 != "" {
		if _, err := decodeEncryptionKey(c.StorageConfig.EncryptionKeyB64); err != nil {
			return fmt.Errorf("invalid STORAGE_ENCRYPTION_KEY_BASE64: %w", err)
		}
	}

	return nil
}

// decodeEncryptionKey validates that the configured key base64-decodes to
// exactly 32 bytes, the key size AES-256-GCM requires.
func decodeEncryptionKey(b64 string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("not valid base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("decoded key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}
