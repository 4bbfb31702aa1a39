package demo

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/petasbytes/toolloop/internal/safety"
	"github.com/petasbytes/toolloop/tools"
)

const noteExt = ".md"

type noteArgs struct {
	Filename string `json:"filename" jsonschema_description:"The name of the file (without path)"`
	Content  string `json:"content" jsonschema_description:"The markdown content to write to the file"`
}

type readNoteArgs struct {
	Filepath string `json:"filepath" jsonschema_description:"The path to the file, relative to the vault"`
}

type NoteWrite struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Time     string `json:"time"`
	Status   string `json:"status"`
	Size     int    `json:"size"`
	SizeDiff *int   `json:"size_diff,omitempty"`
}

type NoteRead struct {
	Filepath     string  `json:"filepath"`
	Content      *string `json:"content"`
	Exists       bool    `json:"exists"`
	Size         int     `json:"size,omitempty"`
	LastModified string  `json:"last_modified,omitempty"`
	Error        string  `json:"error,omitempty"`
}

func withNoteExt(name string) string {
	if strings.HasSuffix(name, noteExt) {
		return name
	}
	return name + noteExt
}

func registerNotes(reg *tools.Registry, d Deps) error {
	if d.Sandbox == nil {
		return ErrNoSandbox
	}
	sb := d.Sandbox

	// write stores content and reports whether the note existed and its
	// previous size in runes.
	write := func(filename, content string) (NoteWrite, int, bool, error) {
		if strings.TrimSpace(filename) == "" {
			return NoteWrite{}, 0, false, errors.New("filename is required")
		}
		name := withNoteExt(filename)
		existed, err := sb.Exists(name)
		if err != nil {
			return NoteWrite{}, 0, false, err
		}
		prev := 0
		if existed {
			old, err := sb.ReadFile(name)
			if err != nil {
				return NoteWrite{}, 0, false, err
			}
			prev = utf8.RuneCountInString(old)
		}
		if err := sb.WriteFile(name, content); err != nil {
			return NoteWrite{}, 0, false, err
		}
		status := "created"
		if existed {
			status = "updated"
		}
		return NoteWrite{
			Filename: name,
			Path:     filepath.Join(sb.WriteRoot(), name),
			Time:     d.Now().Format(timeLayout),
			Status:   status,
			Size:     utf8.RuneCountInString(content),
		}, prev, existed, nil
	}

	if err := reg.Register("create_markdown_file", tools.Func(func(_ context.Context, in noteArgs) (NoteWrite, error) {
		w, _, _, err := write(in.Filename, in.Content)
		return w, err
	}), "Create a new markdown file in the notes vault"); err != nil {
		return err
	}

	if err := reg.Register("read_markdown_file", tools.Func(func(_ context.Context, in readNoteArgs) (NoteRead, error) {
		rel := in.Filepath
		if filepath.Dir(rel) == "." {
			rel = withNoteExt(rel)
		}
		fi, err := sb.Stat(rel)
		var te safety.ToolError
		if errors.As(err, &te) && te.Code == safety.CodeNotFound {
			return NoteRead{Filepath: rel, Error: "File not found"}, nil
		}
		if err != nil {
			return NoteRead{}, err
		}
		content, err := sb.ReadFile(rel)
		if err != nil {
			return NoteRead{}, err
		}
		return NoteRead{
			Filepath:     rel,
			Content:      &content,
			Exists:       true,
			Size:         utf8.RuneCountInString(content),
			LastModified: fi.ModTime().Format(timeLayout),
		}, nil
	}), "Read the contents of a markdown file from the notes vault"); err != nil {
		return err
	}

	return reg.Register("update_markdown_file", tools.Func(func(_ context.Context, in noteArgs) (NoteWrite, error) {
		w, prev, existed, err := write(in.Filename, in.Content)
		if err != nil {
			return w, err
		}
		diff := w.Size
		if existed {
			diff = w.Size - prev
		}
		w.SizeDiff = &diff
		return w, nil
	}), "Update the contents of an existing markdown file in the notes vault; creates it when missing")
}
