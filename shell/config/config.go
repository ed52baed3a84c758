package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Journal drivers.
const (
	JournalDriverNone     = "none"
	JournalDriverSQLite   = "sqlite"
	JournalDriverPostgres = "postgres"
)

// Postgres connection adapters.
const (
	PostgresAdapterPGX  = "pgx"
	PostgresAdapterSQL  = "sql"
	PostgresAdapterSQLX = "sqlx"
)

const (
	envHTTPAddr      = "LIBRARY_HTTP_ADDR"
	envLoanDays      = "LIBRARY_LOAN_DAYS"
	envBorrowLimit   = "LIBRARY_BORROW_LIMIT"
	envTopN          = "LIBRARY_REPORT_TOP_N"
	envJournalDriver = "LIBRARY_JOURNAL_DRIVER"
	envPostgresDSN   = "LIBRARY_POSTGRES_DSN"
	envPostgresAdpt  = "LIBRARY_POSTGRES_ADAPTER"
	envSQLitePath    = "LIBRARY_SQLITE_PATH"
	envLogLevel      = "LIBRARY_LOG_LEVEL"

	defaultHTTPAddr    = ":8080"
	defaultLoanDays    = 14
	defaultBorrowLimit = 5
	defaultTopN        = 5
	defaultSQLitePath  = "data/library.db"
)

var (
	// ErrInvalidSetting is returned when an environment variable cannot be parsed.
	ErrInvalidSetting = errors.New("invalid setting")

	// ErrMissingPostgresDSN is returned when the postgres journal is selected without a DSN.
	ErrMissingPostgresDSN = errors.New("postgres journal selected but " + envPostgresDSN + " is empty")
)

// Config holds all runtime settings.
type Config struct {
	HTTPAddr        string
	LoanPeriod      time.Duration
	BorrowLimit     int
	TopN            int
	JournalDriver   string
	PostgresDSN     string
	PostgresAdapter string
	SQLitePath      string
	LogLevel        slog.Level
}

// Load reads the settings from the environment. The given .env files are loaded first if they
// exist; variables already present in the environment win.
func Load(envFiles ...string) (Config, error) {
	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}

		if err := godotenv.Load(file); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	loanDays, err := intSetting(envLoanDays, defaultLoanDays)
	if err != nil {
		return Config{}, err
	}

	borrowLimit, err := intSetting(envBorrowLimit, defaultBorrowLimit)
	if err != nil {
		return Config{}, err
	}

	topN, err := intSetting(envTopN, defaultTopN)
	if err != nil {
		return Config{}, err
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(withDefault(os.Getenv(envLogLevel), "INFO"))); err != nil {
		return Config{}, errors.Join(ErrInvalidSetting, fmt.Errorf("%s: %w", envLogLevel, err))
	}

	cfg := Config{
		HTTPAddr:        withDefault(os.Getenv(envHTTPAddr), defaultHTTPAddr),
		LoanPeriod:      time.Duration(loanDays) * 24 * time.Hour,
		BorrowLimit:     borrowLimit,
		TopN:            topN,
		JournalDriver:   strings.ToLower(withDefault(os.Getenv(envJournalDriver), JournalDriverSQLite)),
		PostgresDSN:     os.Getenv(envPostgresDSN),
		PostgresAdapter: strings.ToLower(withDefault(os.Getenv(envPostgresAdpt), PostgresAdapterPGX)),
		SQLitePath:      resolvePath(withDefault(os.Getenv(envSQLitePath), defaultSQLitePath)),
		LogLevel:        logLevel,
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	switch c.JournalDriver {
	case JournalDriverNone, JournalDriverSQLite:
	case JournalDriverPostgres:
		if c.PostgresDSN == "" {
			return ErrMissingPostgresDSN
		}

		switch c.PostgresAdapter {
		case PostgresAdapterPGX, PostgresAdapterSQL, PostgresAdapterSQLX:
		default:
			return errors.Join(ErrInvalidSetting, fmt.Errorf("%s: unknown adapter %q", envPostgresAdpt, c.PostgresAdapter))
		}
	default:
		return errors.Join(ErrInvalidSetting, fmt.Errorf("%s: unknown driver %q", envJournalDriver, c.JournalDriver))
	}

	if c.LoanPeriod <= 0 {
		return errors.Join(ErrInvalidSetting, fmt.Errorf("%s must be positive", envLoanDays))
	}

	if c.BorrowLimit < 0 || c.TopN < 0 {
		return errors.Join(ErrInvalidSetting, fmt.Errorf("%s and %s must not be negative", envBorrowLimit, envTopN))
	}

	return nil
}

func intSetting(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Join(ErrInvalidSetting, fmt.Errorf("%s: %w", key, err))
	}

	return value, nil
}

func withDefault(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func resolvePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}

	if cwd, err := os.Getwd(); err == nil {
		return filepath.Clean(filepath.Join(cwd, p))
	}

	return p
}
