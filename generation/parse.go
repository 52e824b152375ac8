package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedSuggestions is returned when a reply holds no usable JSON array.
var ErrMalformedSuggestions = errors.New("suggestions are not a JSON array of strings")

// ParseSuggestions pulls a JSON string array out of a model reply. The reply
// may wrap the array in prose or markdown fences; everything from the first
// '[' to the last ']' is decoded.
func ParseSuggestions(reply string) ([]string, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start < 0 || end < start {
		return nil, ErrMalformedSuggestions
	}

	var raw []string
	if err := json.Unmarshal([]byte(reply[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSuggestions, err)
	}

	actions := make([]string, 0, len(raw))
	for _, a := range raw {
		if a = strings.TrimSpace(a); a != "" {
			actions = append(actions, a)
		}
	}
	if len(actions) == 0 {
		return nil, ErrMalformedSuggestions
	}
	return actions, nil
}

// CleanName strips whitespace and quotes from a generated name and keeps
// only its first line.
func CleanName(reply string) string {
	name := strings.TrimSpace(reply)
	if i := strings.IndexAny(name, "\r\n"); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(strings.Trim(name, "\"' "))
}
