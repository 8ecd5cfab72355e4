package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	DB          DBConfig
	Log         LogConfig
	CORS        CORSConfig
	S3          S3Config
	Analysis    AnalysisConfig
	Language    LanguageConfig
	Classifier  ClassifierConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Maintenance MaintenanceConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// S3Config holds the backup bucket settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// AnalysisConfig holds pipeline settings.
type AnalysisConfig struct {
	CanonicalLanguage string        `mapstructure:"canonical_language"`
	TimeoutPerCall    time.Duration `mapstructure:"timeout_per_call"`
	CandidateLabels   []string      `mapstructure:"candidate_labels"`
	MaxTextLength     int           `mapstructure:"max_text_length"`
}

// LanguageConfig holds language detection and translation settings.
type LanguageConfig struct {
	Provider    string        `mapstructure:"provider"`
	APIKey      string        `mapstructure:"api_key"`
	Endpoint    string        `mapstructure:"endpoint"`
	TimeoutSecs int           `mapstructure:"timeout_secs"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

// ClassifierProviderConfig holds settings for a single classification provider.
type ClassifierProviderConfig struct {
	Provider       string `mapstructure:"provider"`
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	SentimentModel string `mapstructure:"sentiment_model"`
	Endpoint       string `mapstructure:"endpoint"`
	TimeoutSecs    int    `mapstructure:"timeout_secs"`
}

// ClassifierConfig holds the ordered classification providers.
type ClassifierConfig struct {
	Primary   ClassifierProviderConfig `mapstructure:"primary"`
	Secondary ClassifierProviderConfig `mapstructure:"secondary"`
}

// Providers returns the configured providers in fallback order.
func (c *ClassifierConfig) Providers() []ClassifierProviderConfig {
	var out []ClassifierProviderConfig
	for _, p := range []ClassifierProviderConfig{c.Primary, c.Secondary} {
		if p.Provider != "" {
			out = append(out, p)
		}
	}
	return out
}

// RedisConfig holds the translation cache connection. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// KafkaConfig holds case event publishing settings. No brokers disables publishing.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// MaintenanceConfig holds scheduled job settings.
type MaintenanceConfig struct {
	SessionMaxAge   time.Duration `mapstructure:"session_max_age"`
	CleanupSchedule string        `mapstructure:"cleanup_schedule"`
	BackupSchedule  string        `mapstructure:"backup_schedule"`
	BackupPrefix    string        `mapstructure:"backup_prefix"`
}

// Load reads configuration from environment variables with the NYAYA_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("NYAYA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "nyaya")
	v.SetDefault("db.password", "nyaya_secret")
	v.SetDefault("db.name", "nyaya_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:8501")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "nyaya-backups")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Analysis defaults
	v.SetDefault("analysis.canonical_language", "en")
	v.SetDefault("analysis.timeout_per_call", "10s")
	v.SetDefault("analysis.candidate_labels", "")
	v.SetDefault("analysis.max_text_length", 10000)

	// Language defaults
	v.SetDefault("language.provider", "google")
	v.SetDefault("language.api_key", "")
	v.SetDefault("language.endpoint", "")
	v.SetDefault("language.timeout_secs", 10)
	v.SetDefault("language.cache_ttl", "24h")

	// Classifier defaults
	v.SetDefault("classifier.primary.provider", "huggingface")
	v.SetDefault("classifier.primary.api_key", "")
	v.SetDefault("classifier.primary.model", "facebook/bart-large-mnli")
	v.SetDefault("classifier.primary.sentiment_model", "cardiffnlp/twitter-roberta-base-sentiment-latest")
	v.SetDefault("classifier.primary.endpoint", "")
	v.SetDefault("classifier.primary.timeout_secs", 10)
	v.SetDefault("classifier.secondary.provider", "")
	v.SetDefault("classifier.secondary.api_key", "")
	v.SetDefault("classifier.secondary.model", "gemini-1.5-flash")
	v.SetDefault("classifier.secondary.sentiment_model", "")
	v.SetDefault("classifier.secondary.endpoint", "")
	v.SetDefault("classifier.secondary.timeout_secs", 10)

	// Redis defaults
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Kafka defaults
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "nyaya.case.analyzed")

	// Maintenance defaults
	v.SetDefault("maintenance.session_max_age", "24h")
	v.SetDefault("maintenance.cleanup_schedule", "0 * * * *")
	v.SetDefault("maintenance.backup_schedule", "30 2 * * *")
	v.SetDefault("maintenance.backup_prefix", "backups")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                          "NYAYA_SERVER_PORT",
		"server.read_timeout":                  "NYAYA_SERVER_READ_TIMEOUT",
		"server.write_timeout":                 "NYAYA_SERVER_WRITE_TIMEOUT",
		"server.environment":                   "NYAYA_SERVER_ENVIRONMENT",
		"db.host":                              "NYAYA_DB_HOST",
		"db.port":                              "NYAYA_DB_PORT",
		"db.user":                              "NYAYA_DB_USER",
		"db.password":                          "NYAYA_DB_PASSWORD",
		"db.name":                              "NYAYA_DB_NAME",
		"db.sslmode":                           "NYAYA_DB_SSLMODE",
		"db.max_open":                          "NYAYA_DB_MAX_OPEN",
		"db.max_idle":                          "NYAYA_DB_MAX_IDLE",
		"log.level":                            "NYAYA_LOG_LEVEL",
		"log.format":                           "NYAYA_LOG_FORMAT",
		"log.output":                           "NYAYA_LOG_OUTPUT",
		"cors.allowed_origins":                 "NYAYA_CORS_ALLOWED_ORIGINS",
		"s3.region":                            "NYAYA_S3_REGION",
		"s3.bucket":                            "NYAYA_S3_BUCKET",
		"s3.endpoint":                          "NYAYA_S3_ENDPOINT",
		"s3.access_key":                        "NYAYA_S3_ACCESS_KEY",
		"s3.secret_key":                        "NYAYA_S3_SECRET_KEY",
		"s3.presign_expiry":                    "NYAYA_S3_PRESIGN_EXPIRY",
		"analysis.canonical_language":          "NYAYA_ANALYSIS_CANONICAL_LANGUAGE",
		"analysis.timeout_per_call":            "NYAYA_ANALYSIS_TIMEOUT_PER_CALL",
		"analysis.candidate_labels":            "NYAYA_ANALYSIS_CANDIDATE_LABELS",
		"analysis.max_text_length":             "NYAYA_ANALYSIS_MAX_TEXT_LENGTH",
		"language.provider":                    "NYAYA_LANGUAGE_PROVIDER",
		"language.api_key":                     "NYAYA_LANGUAGE_API_KEY",
		"language.endpoint":                    "NYAYA_LANGUAGE_ENDPOINT",
		"language.timeout_secs":                "NYAYA_LANGUAGE_TIMEOUT_SECS",
		"language.cache_ttl":                   "NYAYA_LANGUAGE_CACHE_TTL",
		"classifier.primary.provider":          "NYAYA_CLASSIFIER_PRIMARY_PROVIDER",
		"classifier.primary.api_key":           "NYAYA_CLASSIFIER_PRIMARY_API_KEY",
		"classifier.primary.model":             "NYAYA_CLASSIFIER_PRIMARY_MODEL",
		"classifier.primary.sentiment_model":   "NYAYA_CLASSIFIER_PRIMARY_SENTIMENT_MODEL",
		"classifier.primary.endpoint":          "NYAYA_CLASSIFIER_PRIMARY_ENDPOINT",
		"classifier.primary.timeout_secs":      "NYAYA_CLASSIFIER_PRIMARY_TIMEOUT_SECS",
		"classifier.secondary.provider":        "NYAYA_CLASSIFIER_SECONDARY_PROVIDER",
		"classifier.secondary.api_key":         "NYAYA_CLASSIFIER_SECONDARY_API_KEY",
		"classifier.secondary.model":           "NYAYA_CLASSIFIER_SECONDARY_MODEL",
		"classifier.secondary.sentiment_model": "NYAYA_CLASSIFIER_SECONDARY_SENTIMENT_MODEL",
		"classifier.secondary.endpoint":        "NYAYA_CLASSIFIER_SECONDARY_ENDPOINT",
		"classifier.secondary.timeout_secs":    "NYAYA_CLASSIFIER_SECONDARY_TIMEOUT_SECS",
		"redis.addr":                           "NYAYA_REDIS_ADDR",
		"redis.password":                       "NYAYA_REDIS_PASSWORD",
		"redis.db":                             "NYAYA_REDIS_DB",
		"kafka.brokers":                        "NYAYA_KAFKA_BROKERS",
		"kafka.topic":                          "NYAYA_KAFKA_TOPIC",
		"maintenance.session_max_age":          "NYAYA_MAINTENANCE_SESSION_MAX_AGE",
		"maintenance.cleanup_schedule":         "NYAYA_MAINTENANCE_CLEANUP_SCHEDULE",
		"maintenance.backup_schedule":          "NYAYA_MAINTENANCE_BACKUP_SCHEDULE",
		"maintenance.backup_prefix":            "NYAYA_MAINTENANCE_BACKUP_PREFIX",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if NYAYA_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("NYAYA_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
		Output: v.GetString("log.output"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Analysis = AnalysisConfig{
		CanonicalLanguage: strings.ToLower(strings.TrimSpace(v.GetString("analysis.canonical_language"))),
		TimeoutPerCall:    v.GetDuration("analysis.timeout_per_call"),
		CandidateLabels:   splitList(v.GetString("analysis.candidate_labels")),
		MaxTextLength:     v.GetInt("analysis.max_text_length"),
	}
	cfg.Language = LanguageConfig{
		Provider:    v.GetString("language.provider"),
		APIKey:      v.GetString("language.api_key"),
		Endpoint:    v.GetString("language.endpoint"),
		TimeoutSecs: v.GetInt("language.timeout_secs"),
		CacheTTL:    v.GetDuration("language.cache_ttl"),
	}
	cfg.Classifier = ClassifierConfig{
		Primary:   loadClassifierProvider(v, "classifier.primary"),
		Secondary: loadClassifierProvider(v, "classifier.secondary"),
	}
	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}
	cfg.Kafka = KafkaConfig{
		Brokers: splitList(v.GetString("kafka.brokers")),
		Topic:   v.GetString("kafka.topic"),
	}
	cfg.Maintenance = MaintenanceConfig{
		SessionMaxAge:   v.GetDuration("maintenance.session_max_age"),
		CleanupSchedule: v.GetString("maintenance.cleanup_schedule"),
		BackupSchedule:  v.GetString("maintenance.backup_schedule"),
		BackupPrefix:    v.GetString("maintenance.backup_prefix"),
	}

	if cfg.Analysis.TimeoutPerCall < 0 {
		return nil, fmt.Errorf("analysis.timeout_per_call must not be negative, got %s", cfg.Analysis.TimeoutPerCall)
	}
	return cfg, nil
}

func loadClassifierProvider(v *viper.Viper, prefix string) ClassifierProviderConfig {
	return ClassifierProviderConfig{
		Provider:       v.GetString(prefix + ".provider"),
		APIKey:         v.GetString(prefix + ".api_key"),
		Model:          v.GetString(prefix + ".model"),
		SentimentModel: v.GetString(prefix + ".sentiment_model"),
		Endpoint:       v.GetString(prefix + ".endpoint"),
		TimeoutSecs:    v.GetInt(prefix + ".timeout_secs"),
	}
}

// splitList parses a comma-separated string, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
