package demo_test

import (
	"context"
	"testing"
	"time"

	"github.com/petasbytes/toolloop/internal/fsops"
	"github.com/petasbytes/toolloop/internal/store"
	"github.com/petasbytes/toolloop/tools"
	"github.com/petasbytes/toolloop/tools/demo"
)

var fixedNow = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func newDeps(t *testing.T) demo.Deps {
	t.Helper()
	sb, err := fsops.New(t.TempDir(), "")
	if err != nil {
		t.Fatalf("sandbox: %v", err)
	}
	return demo.Deps{
		Store:   store.NewMemory(),
		Sandbox: sb,
		Now:     func() time.Time { return fixedNow },
	}
}

func newRegistry(t *testing.T, deps demo.Deps, sets ...string) *tools.Registry {
	t.Helper()
	reg := tools.NewRegistry()
	if err := demo.Register(reg, deps, sets...); err != nil {
		t.Fatalf("register %v: %v", sets, err)
	}
	return reg
}

func call(t *testing.T, reg *tools.Registry, name string, args map[string]any) (any, error) {
	t.Helper()
	d, ok := reg.Lookup(name)
	if !ok {
		t.Fatalf("tool %s not registered", name)
	}
	if args == nil {
		args = map[string]any{}
	}
	return d.Callable.Call(context.Background(), args)
}

func mustCall(t *testing.T, reg *tools.Registry, name string, args map[string]any) any {
	t.Helper()
	out, err := call(t, reg, name, args)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	return out
}
