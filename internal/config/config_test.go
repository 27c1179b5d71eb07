package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
jwt:
  secret: "test-secret"
admin:
  username: "admin"
  password_hash: "$2a$10$abcdefghijklmnopqrstuv"
`

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.JWT.SessionExpiration != "2h" {
		t.Errorf("session expiration = %s, want 2h", cfg.JWT.SessionExpiration)
	}
	if cfg.Database.MaxConns != 20 {
		t.Errorf("max conns = %d, want 20", cfg.Database.MaxConns)
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		t.Error("expected default CORS origin")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("DB_MAX_CONNS", "7")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://omnia.example, https://staging.omnia.example")

	cfg, err := LoadConfig(writeConfigFile(t, minimalConfig))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9999" {
		t.Errorf("port = %s, want 9999", cfg.Server.Port)
	}
	if cfg.Database.MaxConns != 7 {
		t.Errorf("max conns = %d, want 7", cfg.Database.MaxConns)
	}
	want := []string{"https://omnia.example", "https://staging.omnia.example"}
	if len(cfg.CORS.AllowedOrigins) != len(want) {
		t.Fatalf("origins = %v, want %v", cfg.CORS.AllowedOrigins, want)
	}
	for i, origin := range want {
		if cfg.CORS.AllowedOrigins[i] != origin {
			t.Errorf("origin[%d] = %s, want %s", i, cfg.CORS.AllowedOrigins[i], origin)
		}
	}
}

func TestLoadConfigRejectsIncomplete(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing jwt secret", `
admin:
  username: "admin"
  password_hash: "x"
`},
		{"missing admin credentials", `
jwt:
  secret: "test-secret"
`},
		{"bad session expiration", `
jwt:
  secret: "test-secret"
  session_expiration: "soon"
admin:
  username: "admin"
  password_hash: "x"
`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfigFile(t, tc.content)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "omnia"
	cfg.Database.Password = "pw"
	cfg.Database.DBName = "schedule"

	got := cfg.GetPostgresConnectionString()
	want := "postgres://omnia:pw@localhost:5432/schedule?sslmode=disable"
	if got != want {
		t.Errorf("conn string = %s, want %s", got, want)
	}
}
