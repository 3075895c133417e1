package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Defaults{Port: "5001", StoragePath: "user_data.db"})
	if err != nil {
		t.Fatalf("expected defaults to load, got %v", err)
	}

	if cfg.Server.Port != "5001" {
		t.Errorf("expected port 5001, got %s", cfg.Server.Port)
	}
	if cfg.Storage.Path != "user_data.db" {
		t.Errorf("expected storage path user_data.db, got %s", cfg.Storage.Path)
	}
	if cfg.Upstream.UserServiceURL != "http://localhost:5001" {
		t.Errorf("unexpected default user service URL: %s", cfg.Upstream.UserServiceURL)
	}
	if cfg.Upstream.Timeout != 5 {
		t.Errorf("expected default upstream timeout 5, got %d", cfg.Upstream.Timeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("USER_SERVICE_URL", "http://users.internal:8080")
	t.Setenv("UPSTREAM_TIMEOUT", "2")

	cfg, err := Load(Defaults{Port: "5003", StoragePath: "order_data.db"})
	if err != nil {
		t.Fatalf("expected overrides to load, got %v", err)
	}

	if cfg.Server.Port != "9999" {
		t.Errorf("expected port override 9999, got %s", cfg.Server.Port)
	}
	if cfg.Upstream.UserServiceURL != "http://users.internal:8080" {
		t.Errorf("expected user service URL override, got %s", cfg.Upstream.UserServiceURL)
	}
	if cfg.Upstream.Timeout != 2 {
		t.Errorf("expected upstream timeout override 2, got %d", cfg.Upstream.Timeout)
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")

	if _, err := Load(Defaults{Port: "5001", StoragePath: "user_data.db"}); err == nil {
		t.Error("expected invalid log level to be rejected")
	}
}

func TestUpstreamConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		upstream UpstreamConfig
		wantErr  bool
	}{
		{
			name:     "valid",
			upstream: UpstreamConfig{UserServiceURL: "http://localhost:5001", ProductServiceURL: "http://localhost:5002", Timeout: 5},
			wantErr:  false,
		},
		{
			name:     "missing user service URL",
			upstream: UpstreamConfig{ProductServiceURL: "http://localhost:5002", Timeout: 5},
			wantErr:  true,
		},
		{
			name:     "missing product service URL",
			upstream: UpstreamConfig{UserServiceURL: "http://localhost:5001", Timeout: 5},
			wantErr:  true,
		},
		{
			name:     "non-positive timeout",
			upstream: UpstreamConfig{UserServiceURL: "http://localhost:5001", ProductServiceURL: "http://localhost:5002", Timeout: 0},
			wantErr:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.upstream.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("expected valid config, got %v", err)
			}
		})
	}
}
