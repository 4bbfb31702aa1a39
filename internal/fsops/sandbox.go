// Package fsops performs file operations confined to a sandbox root.
package fsops

import (
	"os"

	"github.com/petasbytes/toolloop/internal/safety"
)

// Sandbox resolves relative paths against fixed read and write roots.
type Sandbox struct {
	readRoot  string
	writeRoot string
}

// New resolves the roots once. Empty roots follow safety.InitSandboxRoot.
func New(readRoot, writeRoot string) (*Sandbox, error) {
	r, w, err := safety.InitSandboxRoot(readRoot, writeRoot)
	if err != nil {
		return nil, err
	}
	return &Sandbox{readRoot: r, writeRoot: w}, nil
}

// FromEnv builds a Sandbox from AGT_READ_ROOT and AGT_WRITE_ROOT.
func FromEnv() (*Sandbox, error) {
	return New(os.Getenv("AGT_READ_ROOT"), os.Getenv("AGT_WRITE_ROOT"))
}

func (s *Sandbox) ReadRoot() string  { return s.readRoot }
func (s *Sandbox) WriteRoot() string { return s.writeRoot }

// Exists reports whether relPath names a regular file under the read root.
func (s *Sandbox) Exists(relPath string) (bool, error) {
	abs, err := safety.ValidateRelPath(s.readRoot, relPath)
	if err != nil {
		return false, err
	}
	fi, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !fi.IsDir(), nil
}
