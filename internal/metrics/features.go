package metrics

import "unicode"

// Features are size counts of a piece of text. Words are runs of
// non-whitespace runes; a non-empty text has one line more than it has '\n'.
type Features struct {
	Bytes int `json:"bytes"`
	Runes int `json:"runes"`
	Words int `json:"words"`
	Lines int `json:"lines"`
}

// CountFeatures scans s once. Invalid UTF-8 bytes count as one rune each.
func CountFeatures(s string) Features {
	f := Features{Bytes: len(s)}
	if s == "" {
		return f
	}
	f.Lines = 1
	inWord := false
	for _, r := range s {
		f.Runes++
		if r == '\n' {
			f.Lines++
		}
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			f.Words++
			inWord = true
		}
	}
	return f
}

// Fields renders f for an event payload.
func (f Features) Fields() map[string]any {
	return map[string]any{
		"bytes": f.Bytes,
		"runes": f.Runes,
		"words": f.Words,
		"lines": f.Lines,
	}
}
