package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/realtysync/provider-sync/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	HostPort                           string  `mapstructure:"host_port"`
	Namespace                          string  `mapstructure:"namespace"`
	TaskQueue                          string  `mapstructure:"task_queue"`
	MaxConcurrentActivityExecutionSize int     `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64 `mapstructure:"worker_activities_per_second"`
	MaxConcurrentActivityTaskPollers   int     `mapstructure:"max_concurrent_activity_task_pollers"`
}

// RedisConfig holds Redis configuration.
// An empty URL falls back to the Postgres-backed cache and a process-local rate limiter.
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// ProviderConfig holds the upstream listings API configuration
type ProviderConfig struct {
	Name              string        `mapstructure:"name"`
	BaseURL           string        `mapstructure:"base_url"`
	TokenPath         string        `mapstructure:"token_path"`
	DefaultCity       string        `mapstructure:"default_city"`
	DefaultLang       string        `mapstructure:"default_lang"`
	TokenTTL          time.Duration `mapstructure:"token_ttl"`
	TokenTimeout      time.Duration `mapstructure:"token_timeout"`
	FetchTimeout      time.Duration `mapstructure:"fetch_timeout"`
	RequestsPerSecond int           `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// SecurityConfig holds credential encryption and redaction configuration
type SecurityConfig struct {
	CredentialKey    string   `mapstructure:"credential_key"`
	RedactPatterns   []string `mapstructure:"redact_patterns"`
	SecretKeys       []string `mapstructure:"secret_keys"`
	MaxMessageLength int      `mapstructure:"max_message_length"`
}

// SyncConfig holds sync orchestration configuration
type SyncConfig struct {
	Cities            []string `mapstructure:"cities"`
	Langs             []string `mapstructure:"langs"`
	MaxPages          int      `mapstructure:"max_pages"`
	PageSize          int      `mapstructure:"page_size"`
	StoreRaw          bool     `mapstructure:"store_raw"`
	ContentHashDrift  bool     `mapstructure:"content_hash_drift"`
	DetailBatchSize   int      `mapstructure:"detail_batch_size"`
	DetailConcurrency int      `mapstructure:"detail_concurrency"`
}

// QualityConfig holds data quality runner configuration
type QualityConfig struct {
	Limit int `mapstructure:"limit"`
	Cap   int `mapstructure:"cap"`
}

// AlertsConfig holds alert dispatcher configuration
type AlertsConfig struct {
	TelegramAPIURL   string        `mapstructure:"telegram_api_url"`
	TelegramBotToken string        `mapstructure:"telegram_bot_token"`
	TelegramChatID   string        `mapstructure:"telegram_chat_id"`
	DedupeTTL        time.Duration `mapstructure:"dedupe_ttl"`
	SuppressionTTL   time.Duration `mapstructure:"suppression_ttl"`
	QuietHours       string        `mapstructure:"quiet_hours"` // e.g. "23:00-08:00"
	Timezone         string        `mapstructure:"timezone"`
	Window           time.Duration `mapstructure:"window"`      // lookback for failure aggregates
	StaleAfter       time.Duration `mapstructure:"stale_after"` // no successful run within this window raises an alert
	MaxMessageLength int           `mapstructure:"max_message_length"`
}

// ScheduleConfig holds the intervals of the recurring jobs
type ScheduleConfig struct {
	ListInterval    time.Duration `mapstructure:"list_interval"`
	DetailInterval  time.Duration `mapstructure:"detail_interval"`
	QualityInterval time.Duration `mapstructure:"quality_interval"`
	AlertInterval   time.Duration `mapstructure:"alert_interval"`
}

// WorkerConfig holds configuration for the sync worker
type WorkerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Temporal   TemporalConfig `mapstructure:"temporal"`
	Redis      RedisConfig    `mapstructure:"redis"`
	Provider   ProviderConfig `mapstructure:"provider"`
	Security   SecurityConfig `mapstructure:"security"`
	Sync       SyncConfig     `mapstructure:"sync"`
	Quality    QualityConfig  `mapstructure:"quality"`
	Alerts     AlertsConfig   `mapstructure:"alerts"`
	Schedule   ScheduleConfig `mapstructure:"schedule"`
}

// SessionConfig holds configuration for the session bootstrap command
type SessionConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Provider   ProviderConfig `mapstructure:"provider"`
	Security   SecurityConfig `mapstructure:"security"`
}

// LoadWorkerConfig loads configuration for the sync worker
func LoadWorkerConfig(configFile string, envPath string) (*WorkerConfig, error) {
	v := configureViper("worker", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setProviderDefaults(v)
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "provider-sync")
	v.SetDefault("temporal.max_concurrent_activity_execution_size", 20)
	v.SetDefault("temporal.worker_activities_per_second", 20)
	v.SetDefault("temporal.max_concurrent_activity_task_pollers", 4)
	v.SetDefault("sync.max_pages", 50)
	v.SetDefault("sync.page_size", 100)
	v.SetDefault("sync.store_raw", true)
	v.SetDefault("sync.content_hash_drift", false)
	v.SetDefault("sync.detail_batch_size", 20)
	v.SetDefault("sync.detail_concurrency", 4)
	v.SetDefault("quality.limit", 500)
	v.SetDefault("quality.cap", 2000)
	v.SetDefault("alerts.telegram_api_url", "https://api.telegram.org")
	v.SetDefault("alerts.dedupe_ttl", "30m")
	v.SetDefault("alerts.suppression_ttl", "12h")
	v.SetDefault("alerts.timezone", "UTC")
	v.SetDefault("alerts.window", "1h")
	v.SetDefault("alerts.stale_after", "6h")
	v.SetDefault("alerts.max_message_length", 3500)
	v.SetDefault("schedule.list_interval", "15m")
	v.SetDefault("schedule.detail_interval", "1h")
	v.SetDefault("schedule.quality_interval", "30m")
	v.SetDefault("schedule.alert_interval", "5m")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg WorkerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if err := validateDatabase(cfg.Database); err != nil {
		return nil, err
	}
	if cfg.Provider.BaseURL == "" {
		return nil, fmt.Errorf("%w: provider.base_url is required", domain.ErrConfiguration)
	}
	if cfg.Security.CredentialKey == "" {
		return nil, fmt.Errorf("%w: security.credential_key is required", domain.ErrConfiguration)
	}

	return &cfg, nil
}

// LoadSessionConfig loads configuration for the session bootstrap command
func LoadSessionConfig(configFile string, envPath string) (*SessionConfig, error) {
	v := configureViper("session", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setProviderDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SessionConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateDatabase(cfg.Database); err != nil {
		return nil, err
	}
	if cfg.Security.CredentialKey == "" {
		return nil, fmt.Errorf("%w: security.credential_key is required", domain.ErrConfiguration)
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
}

func setProviderDefaults(v *viper.Viper) {
	v.SetDefault("provider.name", domain.DEFAULT_PROVIDER)
	v.SetDefault("provider.token_path", "/auth/token")
	v.SetDefault("provider.default_lang", "ru")
	v.SetDefault("provider.token_ttl", "240s")
	v.SetDefault("provider.token_timeout", "10s")
	v.SetDefault("provider.fetch_timeout", "120s")
	v.SetDefault("provider.requests_per_second", 5)
	v.SetDefault("provider.burst", 5)
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func validateDatabase(db DatabaseConfig) error {
	if db.Host == "" {
		return fmt.Errorf("%w: database.host is required", domain.ErrConfiguration)
	}
	if db.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", domain.ErrConfiguration)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/worker/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("PROVIDER_SYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		"database.auto_migrate",
		// Temporal
		"temporal.host_port",
		"temporal.namespace",
		"temporal.task_queue",
		"temporal.max_concurrent_activity_execution_size",
		"temporal.worker_activities_per_second",
		"temporal.max_concurrent_activity_task_pollers",
		// Redis
		"redis.url",
		// Provider
		"provider.name",
		"provider.base_url",
		"provider.token_path",
		"provider.default_city",
		"provider.default_lang",
		"provider.token_ttl",
		"provider.token_timeout",
		"provider.fetch_timeout",
		"provider.requests_per_second",
		"provider.burst",
		// Security
		"security.credential_key",
		"security.redact_patterns",
		"security.secret_keys",
		"security.max_message_length",
		// Sync
		"sync.cities",
		"sync.langs",
		"sync.max_pages",
		"sync.page_size",
		"sync.store_raw",
		"sync.content_hash_drift",
		"sync.detail_batch_size",
		"sync.detail_concurrency",
		// Quality
		"quality.limit",
		"quality.cap",
		// Alerts
		"alerts.telegram_api_url",
		"alerts.telegram_bot_token",
		"alerts.telegram_chat_id",
		"alerts.dedupe_ttl",
		"alerts.suppression_ttl",
		"alerts.quiet_hours",
		"alerts.timezone",
		"alerts.window",
		"alerts.stale_after",
		"alerts.max_message_length",
		// Schedule
		"schedule.list_interval",
		"schedule.detail_interval",
		"schedule.quality_interval",
		"schedule.alert_interval",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Locales expands the configured cities and languages into every (city, lang) pair.
// The provider defaults are used when the lists are empty.
func (c *WorkerConfig) Locales() []domain.Locale {
	cities := c.Sync.Cities
	if len(cities) == 0 && c.Provider.DefaultCity != "" {
		cities = []string{c.Provider.DefaultCity}
	}
	langs := c.Sync.Langs
	if len(langs) == 0 && c.Provider.DefaultLang != "" {
		langs = []string{c.Provider.DefaultLang}
	}

	locales := make([]domain.Locale, 0, len(cities)*len(langs))
	for _, city := range cities {
		for _, lang := range langs {
			locales = append(locales, domain.Locale{City: city, Lang: lang})
		}
	}
	return locales
}
