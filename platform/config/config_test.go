package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":4101" || cfg.SocketAddr != ":8000" {
		t.Fatalf("unexpected addrs %q %q", cfg.HTTPAddr, cfg.SocketAddr)
	}
	if cfg.TurnTimeout != 2*time.Minute || cfg.AskTimeout != 3*time.Second {
		t.Fatalf("unexpected timeouts %s %s", cfg.TurnTimeout, cfg.AskTimeout)
	}
	if cfg.StartingCash != 1500 {
		t.Fatalf("expected starting cash 1500, got %d", cfg.StartingCash)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Fatalf("unexpected secret %q", cfg.JWTSecret)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("TURN_TIMEOUT", "0s")
	t.Setenv("STARTING_CASH", "2000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.TurnTimeout != 0 || cfg.StartingCash != 2000 {
		t.Fatalf("unexpected overrides %s %d", cfg.TurnTimeout, cfg.StartingCash)
	}
}

func TestLoadErrors(t *testing.T) {
	tcs := []struct {
		key, value string
	}{
		{"STARTING_CASH", "lots"},
		{"STARTING_CASH", "-5"},
		{"ASK_TIMEOUT", "0s"},
		{"TURN_TIMEOUT", "soon"},
		{"JWT_SECRET", ""},
	}
	for _, tc := range tcs {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "s3cret")
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "parse env:") {
				t.Fatalf("expected parse env prefix, got %v", err)
			}
		})
	}
}
