package validation

import (
	"fmt"
	"strings"

	"fitnessfinder/internal/models"
)

var skillLevels = map[string]struct{}{
	models.SkillLevelBeginner:     {},
	models.SkillLevelIntermediate: {},
	models.SkillLevelAdvanced:     {},
}

// ValidateSessionTitle validates a session title.
func ValidateSessionTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > 120 {
		return fmt.Errorf("title must be at most 120 characters")
	}
	return nil
}

// ValidateInterests enforces the "at least one interest" rule for sessions
// and profiles that require a tag set.
func ValidateInterests(interests []string) error {
	if len(NormalizeInterests(interests)) == 0 {
		return fmt.Errorf("at least one interest is required")
	}
	return nil
}

// ValidateSkillLevel checks the skill level against the accepted values.
// An empty value is allowed; the form treats it as unspecified.
func ValidateSkillLevel(level string) error {
	if level == "" {
		return nil
	}
	if _, ok := skillLevels[level]; !ok {
		return fmt.Errorf("skill level must be one of Beginner, Intermediate, or Advanced")
	}
	return nil
}
