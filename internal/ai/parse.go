package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

// fencedJSONRE matches the first markdown code block whose body looks
// like a JSON object or array.
var fencedJSONRE = regexp.MustCompile("(?s)```(?:json)?\\s*([{\\[].*?[}\\]])\\s*```")

// ExtractJSON pulls a typed value out of a model response that may wrap
// its JSON in prose or markdown fences. Attempts, in order: the first
// fenced code block, the outermost brace or bracket pair, then the raw
// text. If nothing parses, fallback is returned; extraction never
// fails with an error.
func ExtractJSON[T any](raw string, fallback T) T {
	if m := fencedJSONRE.FindStringSubmatch(raw); m != nil {
		if v, ok := decodeJSON[T](m[1]); ok {
			return v
		}
	}
	if body, ok := outermostJSON(raw); ok {
		if v, ok := decodeJSON[T](body); ok {
			return v
		}
	}
	if v, ok := decodeJSON[T](raw); ok {
		return v
	}
	return fallback
}

// outermostJSON slices raw from the first opening brace or bracket to
// the matching closer's last occurrence. Whichever opener appears
// first decides whether an object or an array is extracted.
func outermostJSON(raw string) (string, bool) {
	start := strings.IndexAny(raw, "{[")
	if start < 0 {
		return "", false
	}
	closer := "}"
	if raw[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(raw, closer)
	if end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

func decodeJSON[T any](s string) (T, bool) {
	var v T
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

var (
	mermaidFenceOpenRE  = regexp.MustCompile("(?m)^```(?:mermaid)?")
	mermaidFenceCloseRE = regexp.MustCompile("(?m)```$")
)

// StripFences removes markdown code fences a model wrapped around
// non-JSON output such as mermaid diagrams.
func StripFences(s string) string {
	s = mermaidFenceOpenRE.ReplaceAllString(s, "")
	s = mermaidFenceCloseRE.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
