package extraction

import (
	"fmt"
	"strings"
)

// ExtractJSON recovers a JSON object from a model completion. Models wrap
// JSON in markdown fences or surround it with prose; this strips fences and
// returns the first balanced top-level object, respecting string literals.
func ExtractJSON(content string) ([]byte, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.IndexByte(content, '{')
	if start < 0 {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		ch := content[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return []byte(content[start : i+1]), nil
				}
			}
		}
	}

	return nil, fmt.Errorf("unbalanced JSON object in model output")
}
