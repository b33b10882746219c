// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  At start-up the CLI calls
// LoadForms, which hands every component's embedded form definitions to the
// form registry.

package component

import (
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/yanizio/staffdesk/internal/form"
)

// Component contract.
//
// Forms returns the component's form definitions, typically an embed.FS
// rooted at its forms/ directory.  It may return nil.
type Component interface {
	Name() string
	Forms() fs.FS
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component sorted by name.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// LoadForms registers the form definitions of every component.
func LoadForms() error {
	for _, c := range All() {
		fsys := c.Forms()
		if fsys == nil {
			continue
		}
		if err := form.RegisterFS(fsys); err != nil {
			return fmt.Errorf("component %s: %w", c.Name(), err)
		}
	}
	return nil
}
