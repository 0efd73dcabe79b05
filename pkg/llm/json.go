package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSONObject parses a model response as a JSON object. Models sometimes
// wrap the object in markdown fences or prose, so after a failed direct parse
// the span from the first '{' to the last '}' is tried once. No repair beyond
// that: a response that still fails is a model failure.
func ParseJSONObject(raw string) (map[string]interface{}, error) {
	cleaned := stripFences(strings.TrimSpace(raw))

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &result); err == nil {
		return result, nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("extracted span is not valid JSON: %w", err)
	}
	return result, nil
}

func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
