// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` struct from three layers (highest
precedence last):

  1. Optional `.env` file at `<root>/conf/.env`, then `./.env`.
  2. Optional `conf/staffdesk.yaml`.
  3. Environment variables prefixed `STAFFDESK_`, where `__` maps to “.”
     (e.g., `STAFFDESK_API__BASE_URL → api.base_url`).

After merging, the tree is unmarshalled into typed structs, defaulted,
validated, and cached in an `atomic.Pointer`.

Notes
-----
  • Logs use the global sugared logger (`zap.S()`), which is a no-op until
    the CLI installs the file logger.  Config is loaded first because the
    logger directory itself is configurable.
*/
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/yanizio/staffdesk/internal/nav"
)

const (
	envPrefix = "STAFFDESK_"
	fileName  = "staffdesk.yaml"

	DefaultBaseURL        = "http://localhost:5000"
	DefaultPasswordPolicy = "first_failing"
	DefaultDestination    = nav.DefaultDestination
)

var current atomic.Pointer[Config]

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves STAFFDESK_ROOT or climbs directories until
// conf/staffdesk.yaml is found.  Falls back to the working directory.
func rootDir() string {
	if r := os.Getenv(envPrefix + "ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", fileName)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return wd
}

// homeDir is the per-user state directory holding the session file and logs.
func homeDir(root string) string {
	if h, err := os.UserHomeDir(); err == nil && h != "" {
		return filepath.Join(h, ".staffdesk")
	}
	return filepath.Join(root, ".staffdesk")
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads .env, YAML, env overrides, validates, and caches Config.
func Load() (*Config, error) {
	return LoadFrom(rootDir())
}

// LoadFrom is Load with an explicit root directory.
func LoadFrom(root string) (*Config, error) {
	zap.S().Debugw("config root resolved", "root", root)

	// .env files are optional.
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))
	_ = godotenv.Load()

	k := koanf.New(".")

	yamlPath := filepath.Join(root, "conf", fileName)
	if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
			return nil, err
		}
		zap.S().Debugw("config yaml absent", "file", yamlPath)
	}

	// STAFFDESK_API__BASE_URL → api.base_url
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ToLower(strings.ReplaceAll(s, "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	cfg.Paths.Home = homeDir(root)
	applyDefaults(&cfg)

	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"base_url", cfg.API.BaseURL,
		"password_policy", cfg.Forms.PasswordPolicy,
		"routes", len(cfg.Routes),
	)
	return &cfg, nil
}

// applyDefaults fills every unset key.  The default routes send both admin
// and employee to the administrative dashboard, which is how the portal has
// always behaved.
func applyDefaults(c *Config) {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.Session.Path == "" {
		c.Session.Path = filepath.Join(c.Paths.Home, "session.json")
	}
	c.Session.Path = expandHome(c.Session.Path)
	if c.Forms.PasswordPolicy == "" {
		c.Forms.PasswordPolicy = DefaultPasswordPolicy
	}
	if c.Log.Dir == "" {
		c.Log.Dir = filepath.Join(c.Paths.Home, "logs")
	}
	c.Log.Dir = expandHome(c.Log.Dir)
	if len(c.Routes) == 0 {
		c.Routes = nav.DefaultRoutes()
	}
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// expandHome rewrites a leading "~/" to the user's home directory.
func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	h, err := os.UserHomeDir()
	if err != nil || h == "" {
		return p
	}
	return filepath.Join(h, p[2:])
}

func Get() *Config  { return current.Load() }
func Reload() error { _, err := Load(); return err }
