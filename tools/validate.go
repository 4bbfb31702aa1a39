package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
)

// ValidateArgs checks args against s: every required property must be present
// and every declared property that is present must match its primitive type.
// Undeclared arguments are ignored.
func ValidateArgs(args map[string]any, s Schema) error {
	for _, name := range s.Required {
		if _, ok := args[name]; !ok {
			return fmt.Errorf("missing required argument: %s", name)
		}
	}

	// Sorted for a stable first error.
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		prop, ok := s.Properties[name]
		if !ok {
			continue
		}
		if err := checkType(args[name], prop.Type); err != nil {
			return fmt.Errorf("argument %s: %w", name, err)
		}
	}
	return nil
}

func checkType(v any, want string) error {
	ok := false
	switch want {
	case TypeString:
		_, ok = v.(string)
	case TypeBoolean:
		_, ok = v.(bool)
	case TypeNumber:
		ok = isNumber(v)
	case TypeInteger:
		ok = isInteger(v)
	default:
		return nil
	}
	if !ok {
		return fmt.Errorf("expected %s but got %T", want, v)
	}
	return nil
}

func isNumber(v any) bool {
	switch n := v.(type) {
	case float32, float64, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		_, err := n.Float64()
		return err == nil
	}
	return false
}

func isInteger(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return float64(n) == math.Trunc(float64(n))
	case float64:
		return n == math.Trunc(n) && !math.IsInf(n, 0)
	case json.Number:
		_, err := n.Int64()
		return err == nil
	}
	return false
}
