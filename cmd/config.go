package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"marketplace/internal/pkg/errs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBDriver   string `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"marketplace"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"marketplace.db"`

	RedisAddr         string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisStream       string `env:"REDIS_STREAM" envDefault:"marketplace.events"`
	RedisStreamMaxLen int64  `env:"REDIS_STREAM_MAXLEN" envDefault:"100000"`

	PolicyFile string `env:"POLICY_FILE"`

	OutboxBatchSize int    `env:"OUTBOX_BATCH_SIZE" envDefault:"100"`
	OutboxSchedule  string `env:"OUTBOX_SCHEDULE" envDefault:"*/2 * * * * *"`
	ExpirySchedule  string `env:"EXPIRY_SCHEDULE" envDefault:"0 * * * * *"`
	ExpiryBatchSize int    `env:"EXPIRY_BATCH_SIZE" envDefault:"100"`

	OTELEnabled bool   `env:"OTEL_ENABLED" envDefault:"false"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"marketplace"`
}

// LoadConfig reads the .env file named by --env-file (missing is fine),
// then the environment. --policy-file overrides POLICY_FILE.
func LoadConfig(args []string) (Config, error) {
	flags := pflag.NewFlagSet("marketplace", pflag.ContinueOnError)
	envFile := flags.String("env-file", ".env", "dotenv file loaded before reading the environment")
	policyFile := flags.String("policy-file", "", "YAML file overriding the sourcing policies")
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, errs.NewConfigurationErrorWithCause("env file "+*envFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errs.NewConfigurationErrorWithCause("environment", err)
	}
	if *policyFile != "" {
		cfg.PolicyFile = *policyFile
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that would otherwise only fail once a job or
// the server starts.
func (c Config) Validate() error {
	var problems []error

	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		problems = append(problems, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DBDriver))
	}
	if strings.TrimSpace(c.HTTPPort) == "" {
		problems = append(problems, errors.New("HTTP_PORT is required"))
	}
	if c.OutboxBatchSize < 1 {
		problems = append(problems, errors.New("OUTBOX_BATCH_SIZE must be positive"))
	}
	if c.ExpiryBatchSize < 1 {
		problems = append(problems, errors.New("EXPIRY_BATCH_SIZE must be positive"))
	}

	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(c.OutboxSchedule); err != nil {
		problems = append(problems, fmt.Errorf("OUTBOX_SCHEDULE: %w", err))
	}
	if _, err := parser.Parse(c.ExpirySchedule); err != nil {
		problems = append(problems, fmt.Errorf("EXPIRY_SCHEDULE: %w", err))
	}

	if len(problems) > 0 {
		return errs.NewConfigurationErrorWithCause("config", errors.Join(problems...))
	}
	return nil
}

// PostgresDSN returns the connection string for gorm's postgres driver.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
