// internal/form/definition.go
//
// staffdesk – Forms subsystem: YAML definition loader.
//
// Context
//   Each form (login, signup, add-employee) is declared in a YAML file that
//   ships inside its component (components/<comp>/forms/*.yaml, embedded).
//   The definition names the fields, which are required, which are trimmed
//   before validation and transmission, the fallback failure messages, and
//   how success is presented.  At start-up every component's definitions are
//   parsed into an in-memory registry; controllers fetch them by ID.
//
// Workflow
//   •  Structs mirror the YAML schema: FormDef → FieldDef / Messages.
//   •  LoadFormDef parses one file from an fs.FS and checks structural rules.
//   •  RegisterFS walks an fs.FS, loads every “*.yaml”, and registers it.
//      Later registrations override earlier ones with the same ID.
//   •  GetFormDef offers read-only access by ID.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------
// Data structures
// -----------------------------------------------------------------------------

// FormDef represents one form definition loaded from YAML.
//
// ID is namespaced by component, e.g. “auth/login”.
type FormDef struct {
	ID             string     `yaml:"id"`
	Title          string     `yaml:"title"`
	Endpoint       string     `yaml:"endpoint"`         // Backend path, informational.
	Fields         []FieldDef `yaml:"fields"`           // In display order.
	Messages       Messages   `yaml:"messages"`         // Failure fallbacks.
	Popup          bool       `yaml:"popup"`            // Failures raise a dismissible popup.
	ClearOnSuccess bool       `yaml:"clear_on_success"` // Empty the values after success.
}

// FieldDef describes one input.
type FieldDef struct {
	Name        string   `yaml:"name"`        // Submission key.  Required.
	Label       string   `yaml:"label"`       // Human-readable label.  Required.
	Type        string   `yaml:"type"`        // text, email, password, or select.
	Placeholder string   `yaml:"placeholder"` // Optional.
	Required    bool     `yaml:"required"`
	Trim        bool     `yaml:"trim"`    // Trim before validation and sending.
	Options     []string `yaml:"options"` // For select.
	ErrorMsg    string   `yaml:"error"`   // Message when the value is malformed.
}

// Messages are the fallbacks used when the backend does not say what went
// wrong.  Failure covers replies marked unsuccessful; Error covers transport
// failures and error statuses.
type Messages struct {
	Failure string `yaml:"failure"`
	Error   string `yaml:"error"`
}

// Field returns the named field definition.
func (fd *FormDef) Field(name string) (FieldDef, bool) {
	return lo.Find(fd.Fields, func(f FieldDef) bool { return f.Name == name })
}

// Required returns the names of required fields in definition order.
func (fd *FormDef) Required() []string {
	return lo.FilterMap(fd.Fields, func(f FieldDef, _ int) (string, bool) {
		return f.Name, f.Required
	})
}

// -----------------------------------------------------------------------------
// Registry
// -----------------------------------------------------------------------------

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*FormDef)
)

// ErrUnknownForm is returned when a form ID has not been registered.
var ErrUnknownForm = errors.New("form: unknown form")

// GetFormDef returns a parsed FormDef by ID.
func GetFormDef(id string) (*FormDef, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fd, ok := registry[id]
	return fd, ok
}

// MustFormDef is GetFormDef for IDs that ship with the binary.
func MustFormDef(id string) *FormDef {
	fd, ok := GetFormDef(id)
	if !ok {
		panic(fmt.Errorf("%w: %q", ErrUnknownForm, id))
	}
	return fd
}

// All returns every registered definition sorted by ID.
func All() []*FormDef {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := lo.Values(registry)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// -----------------------------------------------------------------------------
// Loader API
// -----------------------------------------------------------------------------

// LoadFormDef parses one YAML file, validates its structure, and returns a
// populated FormDef.  It never mutates the registry.
func LoadFormDef(fsys fs.FS, path string) (*FormDef, error) {
	raw, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read form file %s: %w", path, err)
	}

	var fd FormDef
	if err := yaml.Unmarshal(raw, &fd); err != nil {
		return nil, fmt.Errorf("parse YAML %s: %w", path, err)
	}

	if err := validateFormDef(&fd, path); err != nil {
		return nil, err
	}
	return &fd, nil
}

// RegisterFS loads every “*.yaml” under fsys and registers it.  The first
// bad file aborts the walk so issues surface loudly.
func RegisterFS(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".yaml") {
			return nil
		}
		fd, err := LoadFormDef(fsys, path)
		if err != nil {
			return err
		}
		register(fd)
		return nil
	})
}

func register(fd *FormDef) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[fd.ID] = fd
}

// -----------------------------------------------------------------------------
// Validation helpers
// -----------------------------------------------------------------------------

var fieldTypes = map[string]bool{
	"text":     true,
	"email":    true,
	"password": true,
	"select":   true,
}

// validateFormDef enforces structural rules that YAML tags cannot express.
func validateFormDef(fd *FormDef, path string) error {
	if fd.ID == "" {
		return fmt.Errorf("form definition %s: missing required 'id'", path)
	}
	if len(fd.Fields) == 0 {
		return fmt.Errorf("form definition %s: must have 'fields'", path)
	}

	seen := make(map[string]struct{}, len(fd.Fields))
	for i := range fd.Fields {
		f := &fd.Fields[i]
		if err := validateField(f, path); err != nil {
			return err
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("form %s: duplicate field name '%s'", path, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

// validateField confirms that essential attributes are present and sane.
func validateField(f *FieldDef, path string) error {
	if f.Name == "" {
		return fmt.Errorf("form %s: field missing 'name'", path)
	}
	if f.Name == FormKey {
		return fmt.Errorf("form %s: field name '%s' is reserved", path, FormKey)
	}
	if f.Label == "" {
		return fmt.Errorf("form %s: field '%s' missing 'label'", path, f.Name)
	}
	if !fieldTypes[f.Type] {
		return fmt.Errorf("form %s: field '%s' has unsupported type %q", path, f.Name, f.Type)
	}
	if f.Type == "select" && len(f.Options) == 0 {
		return fmt.Errorf("form %s: select field '%s' has no options", path, f.Name)
	}
	return nil
}
