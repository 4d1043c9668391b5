package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  secret: "super-secret"
storage:
  driver: memory
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Auth.ClaimKey != "empId" {
		t.Errorf("ClaimKey = %q, want empId", cfg.Auth.ClaimKey)
	}
	if cfg.Auth.Header != "token" {
		t.Errorf("Header = %q, want token", cfg.Auth.Header)
	}
	if cfg.Auth.ProtectedPrefix != "/admin" {
		t.Errorf("ProtectedPrefix = %q, want /admin", cfg.Auth.ProtectedPrefix)
	}
	if len(cfg.Auth.ExcludedPaths) != 1 || cfg.Auth.ExcludedPaths[0] != "/admin/employee/login" {
		t.Errorf("ExcludedPaths = %v", cfg.Auth.ExcludedPaths)
	}
	if cfg.AuthTTL() != 2*time.Hour {
		t.Errorf("AuthTTL = %v, want 2h", cfg.AuthTTL())
	}
	if cfg.Employee.DefaultPassword != "123456" {
		t.Errorf("DefaultPassword = %q, want 123456", cfg.Employee.DefaultPassword)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"secret vacío", "storage:\n  driver: memory\n"},
		{"ttl ilegible", "auth:\n  secret: s\n  ttl: banana\nstorage:\n  driver: memory\n"},
		{"ttl negativo", "auth:\n  secret: s\n  ttl: -5m\nstorage:\n  driver: memory\n"},
		{"driver desconocido", "auth:\n  secret: s\nstorage:\n  driver: oracle\n"},
		{"postgres sin dsn", "auth:\n  secret: s\nstorage:\n  driver: postgres\n"},
		{"cache desconocido", "auth:\n  secret: s\nstorage:\n  driver: memory\ncache:\n  kind: memcached\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.body)
			_, err := Load(path)
			if !errors.Is(err, ErrConfiguration) {
				t.Fatalf("err = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("COMANDAS_AUTH_SECRET", "desde-env")
	t.Setenv("COMANDAS_ADDR", ":9999")

	path := writeConfig(t, `
auth:
  secret: "del-yaml"
storage:
  driver: memory
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.Secret != "desde-env" {
		t.Errorf("Secret = %q, el env debe pisar el YAML", cfg.Auth.Secret)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Server.Addr)
	}
}
