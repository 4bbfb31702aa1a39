package tools

import (
	"bytes"
	"strings"

	"github.com/tidwall/gjson"
)

// RawArgKey holds the original text when arguments can't be read as an object.
const RawArgKey = "raw"

// DecodeArgs turns model-supplied arguments into a mapping:
//   - a JSON object is returned as-is
//   - a JSON string holding an object is unwrapped
//   - empty input or null gives an empty mapping
//   - anything else is wrapped as {"raw": text}
func DecodeArgs(raw []byte) map[string]any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return map[string]any{}
	}
	if !gjson.ValidBytes(trimmed) {
		return map[string]any{RawArgKey: string(trimmed)}
	}

	res := gjson.ParseBytes(trimmed)
	switch {
	case res.Type == gjson.Null:
		return map[string]any{}
	case res.IsObject():
		if m, ok := res.Value().(map[string]any); ok {
			return m
		}
	case res.Type == gjson.String:
		inner := strings.TrimSpace(res.Str)
		if gjson.Valid(inner) {
			if obj := gjson.Parse(inner); obj.IsObject() {
				if m, ok := obj.Value().(map[string]any); ok {
					return m
				}
			}
		}
		return map[string]any{RawArgKey: res.Str}
	}
	return map[string]any{RawArgKey: string(trimmed)}
}
