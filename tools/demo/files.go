package demo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/petasbytes/toolloop/internal/fsops"
	"github.com/petasbytes/toolloop/internal/safety"
	"github.com/petasbytes/toolloop/tools"
)

const (
	defaultReadLimit   = 200 // lines per page when limit <= 0
	defaultListPage    = 200 // entries per page when page_size <= 0
	maxLineRunes       = 2000
	overallRuneCap     = 12_000
	truncationSentinel = "-- truncated; use offset/limit to fetch more --\n"
)

type readFileArgs struct {
	Path   string `json:"path" jsonschema_description:"Relative file path."`
	Offset int    `json:"offset,omitempty" jsonschema_description:"Line offset (0-based) to start reading from."`
	Limit  int    `json:"limit,omitempty" jsonschema_description:"Maximum lines to return from offset (default 200)."`
}

type listFilesArgs struct {
	Path     string `json:"path,omitempty" jsonschema_description:"Optional relative directory to list (defaults to the sandbox root)."`
	Page     int    `json:"page,omitempty" jsonschema_description:"1-based page number (default 1)."`
	PageSize int    `json:"page_size,omitempty" jsonschema_description:"Page size (default 200)."`
}

type editFileArgs struct {
	Path   string `json:"path" jsonschema_description:"Target relative file path"`
	OldStr string `json:"old_str,omitempty" jsonschema_description:"Exact text to replace; empty only when creating a new file."`
	NewStr string `json:"new_str" jsonschema_description:"New text to write or replace old_str with"`
}

func registerFiles(reg *tools.Registry, d Deps) error {
	if d.Sandbox == nil {
		return ErrNoSandbox
	}
	sb := d.Sandbox

	if err := reg.Register("read_file", tools.Func(func(_ context.Context, in readFileArgs) (string, error) {
		return readPage(sb, in)
	}), "Read a file addressed by a relative path within the sandbox. Long output is paged by line; directories and unsafe paths are rejected."); err != nil {
		return err
	}

	if err := reg.Register("list_files", tools.Func(func(_ context.Context, in listFilesArgs) ([]string, error) {
		return listPage(sb, in)
	}), "List names of entries in a directory within the sandbox (non-recursive). Directories end with '/'."); err != nil {
		return err
	}

	return reg.Register("edit_file", tools.Func(func(_ context.Context, in editFileArgs) (string, error) {
		return editFile(sb, in)
	}), `Create or modify a text file addressed by a relative path within the sandbox.

When old_str is empty and the file doesn't exist, a new file is created.

When editing an existing file, all occurrences of old_str are replaced with new_str; old_str and new_str must be different.`)
}

// clampRunes cuts s to at most n runes.
func clampRunes(s string, n int) (string, bool) {
	r := []rune(s)
	if len(r) <= n {
		return s, false
	}
	return string(r[:n]), true
}

// readPage returns lines [offset, offset+limit) with each line and the whole
// page capped. A trailing sentinel marks any truncation.
func readPage(sb *fsops.Sandbox, in readFileArgs) (string, error) {
	content, err := sb.ReadFile(in.Path)
	if err != nil {
		return "", err
	}

	limit := in.Limit
	if limit <= 0 {
		limit = defaultReadLimit
	}
	offset := max(in.Offset, 0)

	lines := strings.Split(content, "\n")
	offset = min(offset, len(lines))
	end := min(offset+limit, len(lines))

	truncated := end < len(lines)
	for i := offset; i < end; i++ {
		if clamped, did := clampRunes(lines[i], maxLineRunes); did {
			lines[i] = clamped
			truncated = true
		}
	}

	out := strings.Join(lines[offset:end], "\n")
	if clamped, did := clampRunes(out, overallRuneCap); did {
		out = clamped
		truncated = true
	}

	if truncated {
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		out += truncationSentinel
	}
	return out, nil
}

func listPage(sb *fsops.Sandbox, in listFilesArgs) ([]string, error) {
	page := max(in.Page, 1)
	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = defaultListPage
	}

	names, err := sb.ListFiles(in.Path)
	if err != nil {
		return nil, err
	}
	start := (page - 1) * pageSize
	if start >= len(names) {
		return []string{}, nil
	}
	end := min(start+pageSize, len(names))
	return names[start:end], nil
}

func editFile(sb *fsops.Sandbox, in editFileArgs) (string, error) {
	if in.Path == "" || in.OldStr == in.NewStr {
		return "", errors.New("invalid edit parameters")
	}

	old, err := sb.ReadFile(in.Path)
	var te safety.ToolError
	switch {
	case errors.As(err, &te) && te.Code == safety.CodeNotFound:
		if in.OldStr != "" {
			return "", err
		}
		if err := sb.WriteFile(in.Path, in.NewStr); err != nil {
			return "", err
		}
		return fmt.Sprintf("Successfully created file %s", in.Path), nil
	case err != nil:
		return "", err
	}

	if in.OldStr == "" {
		return "", errors.New("old_str must be provided when editing an existing file")
	}
	updated := strings.ReplaceAll(old, in.OldStr, in.NewStr)
	if updated == old {
		return "", errors.New("old_str not found in file")
	}
	if err := sb.WriteFile(in.Path, updated); err != nil {
		return "", err
	}
	return "OK", nil
}
