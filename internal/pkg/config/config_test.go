package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.StoreDriver != StoreMemory || cfg.PasswordScheme != "plain" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("unexpected token ttl: %s", cfg.TokenTTL)
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("redis should be disabled by default")
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":              "9090",
		"STORE_DRIVER":      "postgres",
		"POSTGRES_DSN":      "postgres://u:p@db/app",
		"PASSWORD_SCHEME":   "bcrypt",
		"PROTECT_DASHBOARD": "true",
		"REDIS_ADDR":        "redis:6379",
		"TOKEN_TTL":         "30m",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.StoreDriver != StorePostgres || cfg.Postgres.DSN != "postgres://u:p@db/app" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.PasswordScheme != "bcrypt" || !cfg.ProtectDashboard || cfg.Redis.Addr != "redis:6379" || cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadWith_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"store driver":    {"STORE_DRIVER": "sqlite"},
		"password scheme": {"PASSWORD_SCHEME": "md5"},
		"login rate":      {"LOGIN_RATE": "-1"},
		"login burst":     {"LOGIN_BURST": "0"},
		"default secret":  {"ENV": "production"},
		"bad duration":    {"TOKEN_TTL": "forever"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadWith_ProductionWithSecret(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":        "production",
		"JWT_SECRET": "a-real-secret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("expected production env")
	}
}

func TestLoadWith_ZeroLoginRateDisablesLimiter(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"LOGIN_RATE":  "0",
		"LOGIN_BURST": "0",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LoginRate != 0 {
		t.Fatalf("expected LOGIN_RATE 0, got %v", cfg.LoginRate)
	}
}
