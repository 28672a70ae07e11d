package ai

import (
	"strings"
	"unicode"

	"github.com/appfeat/gitgo/internal/domain"
)

// ParseModelList extracts model entries from `llm models` output. Each
// useful line looks like "Provider: family/model-id (aliases)"; section
// headers end with a colon and are skipped. Ids with embedded whitespace or
// non-printable characters are rejected outright.
func ParseModelList(out string) []domain.Model {
	var models []domain.Model
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasSuffix(line, ":") {
			continue
		}
		core := line
		if idx := strings.Index(core, "("); idx >= 0 {
			core = core[:idx]
		}
		core = strings.TrimSpace(core)
		if idx := strings.LastIndex(core, ":"); idx >= 0 {
			core = core[idx+1:]
		}
		id := strings.TrimSpace(core)
		if !printableNoSpace(id) {
			continue
		}
		models = append(models, domain.Model{ID: id, Label: line})
	}
	return models
}

func printableNoSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
