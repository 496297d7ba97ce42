package store

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// SplitFrontmatter separates optional YAML frontmatter from a markdown
// document. Content without frontmatter is returned unchanged as the body.
func SplitFrontmatter(content string) (ScheduleMeta, string, error) {
	var meta ScheduleMeta
	trimmed := strings.TrimLeft(content, " \t\r\n")

	if !strings.HasPrefix(trimmed, frontmatterDelimiter+"\n") && !strings.HasPrefix(trimmed, frontmatterDelimiter+"\r\n") {
		return meta, content, nil
	}

	rest := trimmed[len(frontmatterDelimiter):]
	idx := strings.Index(rest, "\n"+frontmatterDelimiter)
	if idx == -1 {
		return meta, content, fmt.Errorf("unclosed frontmatter delimiter")
	}

	yamlContent := rest[:idx]
	body := rest[idx+len("\n"+frontmatterDelimiter):]
	body = strings.TrimLeft(body, "\r\n")

	if err := yaml.Unmarshal([]byte(yamlContent), &meta); err != nil {
		return ScheduleMeta{}, body, fmt.Errorf("parsing frontmatter YAML: %w", err)
	}
	return meta, body, nil
}
