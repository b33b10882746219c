// internal/config/model.go
//
// Typed configuration model for staffdesk.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                             – dotenv values,
//   • optional `conf/staffdesk.yaml`              – static file,
//   • `STAFFDESK_`-prefixed environment overrides – highest precedence.
//
// Validation happens immediately after defaults are applied; the CLI fails
// fast on a malformed base URL or an unknown password policy.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

// API holds backend connection settings.
type API struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`
	// Timeout of zero means no client-side deadline, matching the browser
	// forms this client replaces.
	Timeout time.Duration `koanf:"timeout" validate:"gte=0"`
}

// Session locates the persisted token/role/id triple.
type Session struct {
	Path string `koanf:"path" validate:"required"`
}

// Forms holds form-behaviour switches.
type Forms struct {
	// PasswordPolicy is "first_failing" (report the first broken rule) or
	// "composite" (one generic message).
	PasswordPolicy string `koanf:"password_policy" validate:"required,oneof=first_failing composite"`
}

// Log holds logger settings.
type Log struct {
	Dir string `koanf:"dir" validate:"required"`
	Tee bool   `koanf:"tee"`
}

// Paths is resolved at runtime.
type Paths struct {
	Root string // STAFFDESK_ROOT or discovered parent
	Home string // per-user state directory
}

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads.
type Config struct {
	API     API     `koanf:"api"`
	Session Session `koanf:"session"`
	Forms   Forms   `koanf:"forms"`
	Log     Log     `koanf:"log"`

	// Routes maps a role returned by the login endpoint to the destination
	// the client should open.  Roles not listed raise a warning instead.
	Routes map[string]string `koanf:"routes" validate:"dive,keys,required,endkeys,required"`

	Paths Paths `koanf:"-"`
}
