package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, root, body string) {
	t.Helper()
	dir := filepath.Join(root, "conf")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, fileName), []byte(body), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Fatalf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 0 {
		t.Fatalf("timeout = %v, want 0", cfg.API.Timeout)
	}
	if cfg.Forms.PasswordPolicy != DefaultPasswordPolicy {
		t.Fatalf("policy = %q", cfg.Forms.PasswordPolicy)
	}
	if cfg.Routes["admin"] != DefaultDestination || cfg.Routes["employee"] != DefaultDestination {
		t.Fatalf("routes = %v", cfg.Routes)
	}
	if want := filepath.Join(home, ".staffdesk", "session.json"); cfg.Session.Path != want {
		t.Fatalf("session path = %q, want %q", cfg.Session.Path, want)
	}
	if Get() != cfg {
		t.Fatalf("Get() did not return the cached config")
	}
}

func TestLoadFrom_YAMLThenEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	root := t.TempDir()
	writeYAML(t, root, `
api:
  base_url: http://yaml.example:5000/
  timeout: 5s
forms:
  password_policy: composite
routes:
  admin: /admin-dashboard
  employee: /employee-dashboard
`)
	t.Setenv("STAFFDESK_API__BASE_URL", "http://env.example:7000")

	cfg, err := LoadFrom(root)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.API.BaseURL != "http://env.example:7000" {
		t.Fatalf("env override ignored: %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v", cfg.API.Timeout)
	}
	if cfg.Forms.PasswordPolicy != "composite" {
		t.Fatalf("policy = %q", cfg.Forms.PasswordPolicy)
	}
	if cfg.Routes["employee"] != "/employee-dashboard" {
		t.Fatalf("routes = %v", cfg.Routes)
	}
}

func TestLoadFrom_RejectsUnknownPolicy(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STAFFDESK_FORMS__PASSWORD_POLICY", "lenient")

	if _, err := LoadFrom(t.TempDir()); err == nil {
		t.Fatalf("expected validation error for unknown policy")
	}
}

func TestLoadFrom_RejectsBadBaseURL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("STAFFDESK_API__BASE_URL", "not a url")

	if _, err := LoadFrom(t.TempDir()); err == nil {
		t.Fatalf("expected validation error for base url")
	}
}

func TestLoadFrom_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	root := t.TempDir()
	writeYAML(t, root, "session:\n  path: ~/s/session.json\nlog:\n  dir: ~/logs\n")

	cfg, err := LoadFrom(root)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if want := filepath.Join(home, "s", "session.json"); cfg.Session.Path != want {
		t.Fatalf("session path = %q, want %q", cfg.Session.Path, want)
	}
	if want := filepath.Join(home, "logs"); cfg.Log.Dir != want {
		t.Fatalf("log dir = %q, want %q", cfg.Log.Dir, want)
	}
}
