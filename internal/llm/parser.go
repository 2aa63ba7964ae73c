package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nstrayer/aisle-list/internal/model"
)

// cleanMarkdownWrapper strips a markdown code fence the model sometimes
// wraps around JSON output.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// parseAssignments decodes verifier output. Every entry must carry an id
// and a category; a single incomplete entry fails the whole response, so
// the caller reports one opaque failure rather than applying a partial
// result.
func parseAssignments(content string) ([]model.Assignment, error) {
	content = cleanMarkdownWrapper(content)

	var assignments []model.Assignment
	if err := json.Unmarshal([]byte(content), &assignments); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	for i, a := range assignments {
		if a.ID == "" || a.Category == "" {
			return nil, fmt.Errorf("assignment %d is missing required fields", i)
		}
	}

	return assignments, nil
}

// parseItemNames decodes the extraction response: a JSON array of item
// name strings. Blank entries are dropped.
func parseItemNames(content string) ([]string, error) {
	content = cleanMarkdownWrapper(content)

	var names []string
	if err := json.Unmarshal([]byte(content), &names); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("no items found in response")
	}

	return cleaned, nil
}
