package domain

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var modelVersionPattern = regexp.MustCompile(`(\d+)\.(\d+)`)

// ScoreModel ranks a model for the default-choice menu: gemini families
// first, then higher version numbers, with a nudge for fast/cheap variants.
func ScoreModel(m Model) int {
	name := m.ID
	score := 500
	if strings.Contains(name, "gemini") {
		score = 1000
	}
	if v := modelVersionPattern.FindStringSubmatch(name); v != nil {
		major, _ := strconv.Atoi(v[1])
		minor, _ := strconv.Atoi(v[2])
		score += major*100 + minor*10
	}
	if strings.Contains(name, "flash") {
		score += 50
	}
	if strings.Contains(name, "lite") || strings.Contains(name, "mini") {
		score += 30
	}
	return score
}

// DefaultModelChoices builds the short selection menu: the saved model
// first when it still exists, then the best-scored model per family, at
// most two entries total.
func DefaultModelChoices(models []Model, savedID string) []Model {
	var choices []Model
	for _, m := range models {
		if m.ID == savedID {
			choices = append(choices, m)
			break
		}
	}

	var gemini, other []Model
	for _, m := range models {
		if strings.Contains(m.ID, "gemini") {
			gemini = append(gemini, m)
		} else {
			other = append(other, m)
		}
	}
	for _, family := range [][]Model{gemini, other} {
		if best, ok := bestScored(family); ok && !containsModel(choices, best) {
			choices = append(choices, best)
		}
	}

	if len(choices) > 2 {
		choices = choices[:2]
	}
	return choices
}

func bestScored(models []Model) (Model, bool) {
	if len(models) == 0 {
		return Model{}, false
	}
	sorted := make([]Model, len(models))
	copy(sorted, models)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ScoreModel(sorted[i]) > ScoreModel(sorted[j])
	})
	return sorted[0], true
}

func containsModel(models []Model, m Model) bool {
	for _, existing := range models {
		if existing.ID == m.ID {
			return true
		}
	}
	return false
}
