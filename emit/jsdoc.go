package emit

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"go.typeforge.dev/ts2schema/schema"
)

// applyJSDocTags applies the recognized JSDoc tags of spec 4.5.8 onto
// an already-built property schema. Unrecognized tags are ignored.
func applyJSDocTags(s *jsonschema.Schema, tags map[string]string) {
	for name, raw := range tags {
		switch strings.ToLower(name) {
		case "minimum":
			if n, ok := parseNumber(raw); ok {
				s.Minimum = &n
			}
		case "maximum":
			if n, ok := parseNumber(raw); ok {
				s.Maximum = &n
			}
		case "minlength":
			if n, ok := parseInt(raw); ok {
				s.MinLength = &n
			}
		case "maxlength":
			if n, ok := parseInt(raw); ok {
				s.MaxLength = &n
			}
		case "pattern":
			s.Pattern = raw
		case "format":
			s.Format = raw
		case "default":
			s.Default = schema.RawValue(parseJSONOrString(raw))
		case "example":
			s.Examples = append(s.Examples, parseJSONOrString(raw))
		case "examples":
			s.Examples = append(s.Examples, parseJSONOrString(raw))
		case "deprecated":
			s.Deprecated = true
		case "title":
			s.Title = raw
		case "additionalproperties":
			if s.Type == "object" {
				if v, ok := parseBool(raw); ok {
					s.AdditionalProperties = boolSchema(v)
				}
			}
		}
	}
}

func parseNumber(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)

	return f, err == nil
}

func parseInt(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))

	return n, err == nil
}

func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// parseJSONOrString parses raw as a JSON value; if that fails, raw is
// kept as a plain string, per spec 4.5.8's "text fallback".
func parseJSONOrString(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}

	return raw
}
