package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Violation is one mismatch between a value and its schema
type Violation struct {
	Path    string
	Message string
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// ValidationError lists every violation found in a value
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "schema violation: " + strings.Join(parts, "; ")
}

// Validate walks a decoded JSON value (as produced by encoding/json into
// any) and checks it against s. Unknown object properties are ignored.
func Validate(value any, s *Schema) error {
	var violations []Violation
	walk(value, s, "", &violations)
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func walk(value any, s *Schema, path string, out *[]Violation) {
	fail := func(format string, args ...any) {
		*out = append(*out, Violation{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if value == nil {
		fail("expected %s, got null", s.Type)
		return
	}

	switch s.Type {
	case TypeObject:
		obj, ok := value.(map[string]any)
		if !ok {
			fail("expected object, got %s", kindOf(value))
			return
		}
		for _, name := range s.Required {
			if _, present := obj[name]; !present {
				*out = append(*out, Violation{Path: join(path, name), Message: "required field missing"})
			}
		}
		// sorted so violations are reported deterministically
		names := make([]string, 0, len(obj))
		for name := range obj {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			prop, known := s.Properties[name]
			if !known {
				continue
			}
			walk(obj[name], prop, join(path, name), out)
		}

	case TypeArray:
		arr, ok := value.([]any)
		if !ok {
			fail("expected array, got %s", kindOf(value))
			return
		}
		if s.Items == nil {
			return
		}
		for i, item := range arr {
			walk(item, s.Items, fmt.Sprintf("%s[%d]", path, i), out)
		}

	case TypeString:
		if _, ok := value.(string); !ok {
			fail("expected string, got %s", kindOf(value))
		}

	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			fail("expected boolean, got %s", kindOf(value))
		}

	case TypeInteger, TypeNumber:
		n, ok := toFloat(value)
		if !ok {
			fail("expected %s, got %s", s.Type, kindOf(value))
			return
		}
		if s.Type == TypeInteger && n != math.Trunc(n) {
			fail("expected integer, got %v", n)
			return
		}
		if s.Minimum != nil && n < *s.Minimum {
			fail("value %v below minimum %v", n, *s.Minimum)
		}
		if s.Maximum != nil && n > *s.Maximum {
			fail("value %v above maximum %v", n, *s.Maximum)
		}

	default:
		fail("unsupported schema type %q", s.Type)
	}
}

func toFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func kindOf(value any) string {
	switch value.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
