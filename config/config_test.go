package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/farellandr/seatsavvy/internal/clock"
	"github.com/farellandr/seatsavvy/internal/models"
	"github.com/farellandr/seatsavvy/internal/notify"
	"github.com/farellandr/seatsavvy/internal/qr"
	"github.com/farellandr/seatsavvy/internal/store"
)

var envKeys = []string{
	"PORT", "STORE_DRIVER", "STORE_DSN", "JWT_SECRET", "SESSION_TTL",
	"QR_RENDERER", "QR_ENDPOINT", "GEMINI_API_KEY", "GEMINI_MODEL", "GEMINI_BASE_URL",
	"EXTERNAL_TIMEOUT", "NATS_URL", "CANCELLATION_DELAY", "SEED_FILE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.StoreDriver != DriverSQLite || cfg.StoreDSN != defaultSQLiteDSN {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.SessionTTL != 24*time.Hour || cfg.ExternalTimeout != 10*time.Second || cfg.CancellationDelay != 2*time.Second {
		t.Fatalf("unexpected durations %+v", cfg)
	}
	if cfg.JWTSecret == "" || cfg.QRRenderer != RendererRemote || cfg.QREndpoint != qr.DefaultEndpoint {
		t.Fatalf("unexpected secret or renderer %+v", cfg)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CANCELLATION_DELAY", "0s")
	t.Setenv("QR_RENDERER", "LOCAL")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.CancellationDelay != 0 || cfg.QRRenderer != RendererLocal || cfg.JWTSecret != "s3cret" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if _, ok := InitRenderer(cfg).(*qr.LocalRenderer); !ok {
		t.Fatal("expected local renderer")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{key: "SESSION_TTL", value: "forever"},
		{key: "CANCELLATION_DELAY", value: "-1s"},
		{key: "STORE_DRIVER", value: "mongo"},
		{key: "STORE_DRIVER", value: "postgres"},
		{key: "QR_RENDERER", value: "ascii"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := LoadConfig(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestInitPublisher_NoopWithoutURL(t *testing.T) {
	p, err := InitPublisher(&Config{})
	if err != nil {
		t.Fatalf("init publisher: %v", err)
	}
	if _, ok := p.(notify.NoopPublisher); !ok {
		t.Fatalf("expected noop publisher, got %T", p)
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDatabase(&Config{StoreDriver: DriverSQLite, StoreDSN: ":memory:"})
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestDefaultSeed(t *testing.T) {
	seed, err := LoadSeed("")
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	if len(seed.Events) != 4 || len(seed.Profiles) != 4 {
		t.Fatalf("expected 4 events and 4 profiles, got %d and %d", len(seed.Events), len(seed.Profiles))
	}

	s, err := store.New(newTestDB(t))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	if err := seed.Apply(ctx, s, clock.NewFixed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("apply: %v", err)
	}

	events, err := s.ListEvents(ctx, "")
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 4 || events[0].Title != "THE SUMMER FORMAL CONCERT" || events[3].Price != 45.5 {
		t.Fatalf("unexpected catalog %+v", events)
	}
	mine, err := s.ListEvents(ctx, "manager1")
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(mine) != 3 {
		t.Fatalf("expected 3 events for manager1, got %d", len(mine))
	}

	manager, err := s.FindProfileByRole(ctx, models.RoleManager)
	if err != nil {
		t.Fatalf("find manager: %v", err)
	}
	if manager.ID != "manager1" {
		t.Fatalf("expected manager1 as the default manager, got %s", manager.ID)
	}
}

func TestLoadSeed_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.toml")
	body := `
[[events]]
organizer_id = "admin1"
title = "Open Mic"
date = "01.09.2026"
price = 0
location = "Basement Bar"
image = "https://picsum.photos/600/600"
description = "Bring a song."
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	seed, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}

	s, err := store.New(newTestDB(t))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := seed.Apply(context.Background(), s, clock.NewSystem()); err != nil {
		t.Fatalf("apply: %v", err)
	}
	events, err := s.ListEvents(context.Background(), "")
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 || events[0].ID == "" || events[0].Category != models.CategoryConcert {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestSeedApply_RejectsInvalid(t *testing.T) {
	seed := &Seed{Events: []SeedEvent{{Title: "No details"}}}
	s, err := store.New(newTestDB(t))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := seed.Apply(context.Background(), s, clock.NewSystem()); err == nil {
		t.Fatal("expected validation error")
	}
}
