package config

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/farellandr/seatsavvy/internal/concierge"
	"github.com/farellandr/seatsavvy/internal/notify"
	"github.com/farellandr/seatsavvy/internal/qr"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	RendererRemote = "remote"
	RendererLocal  = "local"

	defaultPort      = "8080"
	defaultSQLiteDSN = "file::memory:?cache=shared"
	devJWTSecret     = "seatsavvy-dev-secret"
)

type Config struct {
	Port string

	StoreDriver string
	StoreDSN    string

	JWTSecret  string
	SessionTTL time.Duration

	QRRenderer string
	QREndpoint string

	GeminiAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string
	ExternalTimeout time.Duration

	NATSURL           string
	CancellationDelay time.Duration

	SeedFile string
}

// LoadConfig reads the environment. Unset values fall back to defaults that
// run the demo fully in memory.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", defaultPort),
		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
		StoreDSN:      os.Getenv("STORE_DSN"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		QRRenderer:    strings.ToLower(getEnv("QR_RENDERER", RendererRemote)),
		QREndpoint:    getEnv("QR_ENDPOINT", qr.DefaultEndpoint),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", concierge.DefaultModel),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", concierge.DefaultBaseURL),
		NATSURL:       os.Getenv("NATS_URL"),
		SeedFile:      os.Getenv("SEED_FILE"),
	}

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ExternalTimeout, err = getDuration("EXTERNAL_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CancellationDelay, err = getDuration("CANCELLATION_DELAY", 2*time.Second); err != nil {
		return nil, err
	}

	switch cfg.StoreDriver {
	case DriverSQLite:
		if cfg.StoreDSN == "" {
			cfg.StoreDSN = defaultSQLiteDSN
		}
	case DriverPostgres:
		if cfg.StoreDSN == "" {
			return nil, fmt.Errorf("STORE_DSN is required for the %s driver", DriverPostgres)
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.QRRenderer != RendererRemote && cfg.QRRenderer != RendererLocal {
		return nil, fmt.Errorf("unknown QR_RENDERER %q", cfg.QRRenderer)
	}

	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET not set, using development secret")
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY not set, concierge will only apologise")
	}
	return cfg, nil
}

// InitDatabase opens the configured store database.
func InitDatabase(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StoreDriver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.StoreDSN)
	default:
		dialector = sqlite.Open(cfg.StoreDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}

	if cfg.StoreDriver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite allows one writer; a single connection also keeps an
		// in-memory database alive for the whole session.
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// InitPublisher connects to NATS when NATS_URL is set. Without it
// cancellation notices are dropped.
func InitPublisher(cfg *Config) (notify.Publisher, error) {
	if cfg.NATSURL == "" {
		return notify.NoopPublisher{}, nil
	}
	return notify.NewNATSPublisher(cfg.NATSURL, nats.Timeout(cfg.ExternalTimeout))
}

func InitRenderer(cfg *Config) qr.Renderer {
	if cfg.QRRenderer == RendererLocal {
		return qr.NewLocalRenderer(qr.DefaultSize)
	}
	return qr.NewRemoteRenderer(cfg.QREndpoint)
}

func InitConcierge(cfg *Config, logger *slog.Logger) *concierge.Client {
	return concierge.New(concierge.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.ExternalTimeout,
	}, &http.Client{Timeout: cfg.ExternalTimeout}, logger)
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}
