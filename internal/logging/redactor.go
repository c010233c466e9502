package logging

import (
	"regexp"
	"strings"
)

var segmentSplit = regexp.MustCompile(`[^a-z0-9]+`)

// redactor hides sensitive values in log key-value pairs.
type redactor struct {
	sensitiveWords map[string]bool
}

func newRedactor() *redactor {
	words := []string{"secret", "password", "token", "key", "auth", "credential"}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return &redactor{sensitiveWords: m}
}

// redact walks a flattened key-value slice and replaces the value of any
// sensitive key with "[REDACTED]". The input slice is not modified.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	result := make([]any, len(pairs))
	copy(result, pairs)
	for i := 0; i+1 < len(result); i += 2 {
		key, ok := result[i].(string)
		if !ok {
			continue
		}
		if r.isSensitive(key) {
			result[i+1] = "[REDACTED]"
		}
	}
	return result
}

// isSensitive reports whether key contains a sensitive word as a
// separate segment. Segments are split on non-alphanumeric runs, so
// "api_token" is sensitive while "secretary" is not.
func (r *redactor) isSensitive(key string) bool {
	for _, part := range segmentSplit.Split(strings.ToLower(key), -1) {
		if r.sensitiveWords[part] {
			return true
		}
	}
	return false
}
