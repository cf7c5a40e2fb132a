package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/SscSPs/transactions_app/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values of DATA_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	DataBackend   string
	DatabaseURL   string
	SQLitePath    string
	RunMigrations bool

	LogLevel  string
	LogFormat string

	DefaultCurrency domain.Currency
	Report          ReportConfig

	RateLimit          string
	CORSAllowedOrigins []string

	AMQP AMQPConfig
}

// ReportConfig sizes the chunked report aggregation.
type ReportConfig struct {
	ChunkSize  int
	MaxWorkers int
	PageSize   int
}

// AMQPConfig configures the optional report-completed publisher. An empty URL disables it.
type AMQPConfig struct {
	URL        string
	Exchange   string
	RoutingKey string
}

// Enabled reports whether a broker URL is configured.
func (c AMQPConfig) Enabled() bool {
	return c.URL != ""
}

// SetDefaults registers every key with its default value on the global viper instance.
func SetDefaults() {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("DATA_BACKEND", BackendPostgres)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("SQLITE_DB_PATH", "transactions.db")
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("DEFAULT_CURRENCY", string(domain.EGP))
	viper.SetDefault("REPORT_CHUNK_SIZE", 10000)
	viper.SetDefault("REPORT_MAX_WORKERS", 10)
	viper.SetDefault("REPORT_PAGE_SIZE", 10000)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", "transactions")
	viper.SetDefault("AMQP_ROUTING_KEY", "report.completed")
}

// LoadConfig loads configuration from environment variables and .env file if present.
// Values bound from command line flags take precedence over both.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	SetDefaults()
	viper.AutomaticEnv()

	cfg := &Config{
		Port:          viper.GetString("PORT"),
		IsProduction:  viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck: viper.GetBool("ENABLE_DB_CHECK"),
		DataBackend:   strings.ToLower(strings.TrimSpace(viper.GetString("DATA_BACKEND"))),
		DatabaseURL:   viper.GetString("PGSQL_URL"),
		SQLitePath:    viper.GetString("SQLITE_DB_PATH"),
		RunMigrations: viper.GetBool("RUN_MIGRATIONS"),
		LogLevel:      strings.ToLower(viper.GetString("LOG_LEVEL")),
		LogFormat:     strings.ToLower(viper.GetString("LOG_FORMAT")),
		Report: ReportConfig{
			ChunkSize:  viper.GetInt("REPORT_CHUNK_SIZE"),
			MaxWorkers: viper.GetInt("REPORT_MAX_WORKERS"),
			PageSize:   viper.GetInt("REPORT_PAGE_SIZE"),
		},
		RateLimit:          viper.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		AMQP: AMQPConfig{
			URL:        viper.GetString("AMQP_URL"),
			Exchange:   viper.GetString("AMQP_EXCHANGE"),
			RoutingKey: viper.GetString("AMQP_ROUTING_KEY"),
		},
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	currency, err := domain.ParseCurrency(viper.GetString("DEFAULT_CURRENCY"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_CURRENCY: %w", err)
	}
	cfg.DefaultCurrency = currency

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DataBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("PGSQL_URL is required for the %s backend", BackendPostgres)
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_DB_PATH is required for the %s backend", BackendSQLite)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown DATA_BACKEND %q (want %s, %s or %s)", c.DataBackend, BackendPostgres, BackendSQLite, BackendMemory)
	}

	if c.Report.ChunkSize <= 0 {
		return fmt.Errorf("REPORT_CHUNK_SIZE must be positive, got %d", c.Report.ChunkSize)
	}
	if c.Report.MaxWorkers <= 0 {
		return fmt.Errorf("REPORT_MAX_WORKERS must be positive, got %d", c.Report.MaxWorkers)
	}
	if c.Report.PageSize <= 0 {
		return fmt.Errorf("REPORT_PAGE_SIZE must be positive, got %d", c.Report.PageSize)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
