// Package demo provides sample toolsets for exercising the tool-use loop.
// All state lives in the injected store and sandbox.
package demo

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/petasbytes/toolloop/internal/fsops"
	"github.com/petasbytes/toolloop/internal/logging"
	"github.com/petasbytes/toolloop/internal/store"
	"github.com/petasbytes/toolloop/tools"
)

// Toolset names accepted by Register.
const (
	Basic      = "basic"
	Spells     = "spells"
	Appliances = "appliances"
	Pokemon    = "pokemon"
	Patients   = "patients"
	Notes      = "notes"
	Files      = "files"

	// All expands to every toolset.
	All = "all"
)

const timeLayout = "2006-01-02 15:04:05"

// ErrNoSandbox is returned when a file-backed toolset is requested without one.
var ErrNoSandbox = errors.New("demo: toolset requires a sandbox")

// Deps carries what the toolsets need. Zero fields get in-memory or no-op
// defaults, except Sandbox which the notes and files toolsets require.
type Deps struct {
	Store   store.Store
	Sandbox *fsops.Sandbox
	Now     func() time.Time
	Log     *slog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Store == nil {
		d.Store = store.NewMemory()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Log == nil {
		d.Log = logging.NewNop()
	}
	return d
}

type registrar func(reg *tools.Registry, d Deps) error

var toolsets = map[string]registrar{
	Basic:      registerBasic,
	Spells:     registerSpells,
	Appliances: registerAppliances,
	Pokemon:    registerPokemon,
	Patients:   registerPatients,
	Notes:      registerNotes,
	Files:      registerFiles,
}

// Toolsets lists the registrable toolset names, sorted.
func Toolsets() []string {
	names := make([]string, 0, len(toolsets))
	for name := range toolsets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Register adds the named toolsets to reg in the order given. "all" expands
// to every toolset; file-backed ones are skipped under "all" when no sandbox
// is configured.
func Register(reg *tools.Registry, deps Deps, names ...string) error {
	deps = deps.withDefaults()
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" || name == "none" {
			continue
		}
		if name == All {
			for _, n := range Toolsets() {
				if deps.Sandbox == nil && (n == Notes || n == Files) {
					continue
				}
				if err := toolsets[n](reg, deps); err != nil {
					return fmt.Errorf("toolset %s: %w", n, err)
				}
			}
			continue
		}
		fn, ok := toolsets[name]
		if !ok {
			return fmt.Errorf("unknown toolset %q (have %s)", raw, strings.Join(Toolsets(), ", "))
		}
		if err := fn(reg, deps); err != nil {
			return fmt.Errorf("toolset %s: %w", name, err)
		}
	}
	return nil
}
