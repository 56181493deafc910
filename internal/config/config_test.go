package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "CLIENT_ORIGIN", "FINNHUB_API_KEY", "SESSION_TTL", "QUOTE_TIMEOUT", "REDIS_DB"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "4000" {
		t.Errorf("Port = %q, want 4000", cfg.Port)
	}
	if cfg.ClientOrigin != "http://localhost:5173" {
		t.Errorf("ClientOrigin = %q", cfg.ClientOrigin)
	}
	if cfg.FinnhubAPIKey != "" {
		t.Errorf("FinnhubAPIKey = %q, want empty", cfg.FinnhubAPIKey)
	}
	if cfg.SessionTTL != 7*24*time.Hour {
		t.Errorf("SessionTTL = %v, want 168h", cfg.SessionTTL)
	}
	if cfg.QuoteTimeout != 10*time.Second {
		t.Errorf("QuoteTimeout = %v, want 10s", cfg.QuoteTimeout)
	}
	if cfg.RedisDB != 0 {
		t.Errorf("RedisDB = %d, want 0", cfg.RedisDB)
	}
}

func TestLoad_Overrides(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "port_and_origin",
			env:  map[string]string{"PORT": "9000", "CLIENT_ORIGIN": "https://app.example.com"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != "9000" || cfg.ClientOrigin != "https://app.example.com" {
					t.Errorf("got port=%q origin=%q", cfg.Port, cfg.ClientOrigin)
				}
			},
		},
		{
			name: "valid_durations",
			env:  map[string]string{"SESSION_TTL": "2h", "QUOTE_TIMEOUT": "3s"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.SessionTTL != 2*time.Hour || cfg.QuoteTimeout != 3*time.Second {
					t.Errorf("got ttl=%v timeout=%v", cfg.SessionTTL, cfg.QuoteTimeout)
				}
			},
		},
		{
			name: "invalid_durations_fall_back",
			env:  map[string]string{"SESSION_TTL": "forever", "QUOTE_TIMEOUT": "-1s"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.SessionTTL != 7*24*time.Hour || cfg.QuoteTimeout != 10*time.Second {
					t.Errorf("got ttl=%v timeout=%v", cfg.SessionTTL, cfg.QuoteTimeout)
				}
			},
		},
		{
			name: "invalid_redis_db_falls_back",
			env:  map[string]string{"REDIS_DB": "one"},
			check: func(t *testing.T, cfg *Config) {
				if cfg.RedisDB != 0 {
					t.Errorf("RedisDB = %d, want 0", cfg.RedisDB)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.check(t, cfg)
			if Get() != cfg {
				t.Error("Get() should return the most recently loaded config")
			}
		})
	}
}
