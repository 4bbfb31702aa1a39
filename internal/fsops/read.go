package fsops

import (
	"os"

	"github.com/petasbytes/toolloop/internal/safety"
)

// ReadFile reads a file addressed by a path relative to the read root.
// Policy violations come back as safety.ToolError.
func (s *Sandbox) ReadFile(relPath string) (string, error) {
	absPath, err := safety.ValidateRelPath(s.readRoot, relPath)
	if err != nil {
		return "", err
	}

	fi, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		return "", safety.ToolError{Code: safety.CodeNotFound, Message: "file does not exist: " + relPath}
	}
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "", safety.ToolError{Code: safety.CodeNotAFile, Message: "path is a directory"}
	}

	b, err := os.ReadFile(absPath)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Stat returns file info for a path relative to the read root.
func (s *Sandbox) Stat(relPath string) (os.FileInfo, error) {
	absPath, err := safety.ValidateRelPath(s.readRoot, relPath)
	if err != nil {
		return nil, err
	}
	fi, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		return nil, safety.ToolError{Code: safety.CodeNotFound, Message: "file does not exist: " + relPath}
	}
	return fi, err
}
