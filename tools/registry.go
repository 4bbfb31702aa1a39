package tools

import (
	"errors"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrToolNotFound classifies a dispatch for a name nothing is registered under.
var ErrToolNotFound = errors.New("tool not found")

// Descriptor is a registered tool.
type Descriptor struct {
	Name        string
	Description string
	Callable    Callable
	Schema      Schema
}

// Declaration is the model-facing view of a tool.
type Declaration struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema Schema `json:"input_schema"`
}

// Registry maps tool names to descriptors in registration order.
// It is not safe for concurrent registration.
type Registry struct {
	tools *orderedmap.OrderedMap[string, Descriptor]
}

func NewRegistry() *Registry {
	return &Registry{tools: orderedmap.New[string, Descriptor]()}
}

// RegisterOption customises a single registration.
type RegisterOption func(*Descriptor)

// WithSchema supplies an explicit input schema instead of inferring one.
func WithSchema(s Schema) RegisterOption {
	return func(d *Descriptor) {
		if s.Properties == nil {
			s.Properties = map[string]Property{}
		}
		if s.Required == nil {
			s.Required = []string{}
		}
		if s.Type == "" {
			s.Type = "object"
		}
		d.Schema = s
	}
}

// Register adds or replaces the tool called name. A replaced tool keeps its
// original position in DescribeAll. The callable is not checked against the
// schema.
func (r *Registry) Register(name string, c Callable, description string, opts ...RegisterOption) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("register tool: empty name")
	}
	if c == nil {
		return fmt.Errorf("register tool %q: nil callable", name)
	}

	d := Descriptor{Name: name, Description: description, Callable: c}
	for _, opt := range opts {
		opt(&d)
	}
	if d.Schema.Type == "" {
		d.Schema = Infer(c)
	}
	if err := d.Schema.Validate(); err != nil {
		return fmt.Errorf("register tool %q: %w", name, err)
	}

	r.tools.Set(name, d)
	return nil
}

// MustRegister is Register for static wiring; it panics on error.
func (r *Registry) MustRegister(name string, c Callable, description string, opts ...RegisterOption) {
	if err := r.Register(name, c, description, opts...); err != nil {
		panic(err)
	}
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	return r.tools.Get(name)
}

// DescribeAll returns a declaration per tool in registration order.
func (r *Registry) DescribeAll() []Declaration {
	if r == nil {
		return nil
	}
	out := make([]Declaration, 0, r.tools.Len())
	for pair := r.tools.Oldest(); pair != nil; pair = pair.Next() {
		d := pair.Value
		out = append(out, Declaration{Name: d.Name, Description: d.Description, InputSchema: d.Schema})
	}
	return out
}

// Names returns registered names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, r.tools.Len())
	for pair := r.tools.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return r.tools.Len()
}
