package services

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxNoteLength        = 1000
	maxReviewNoteLength  = 2000
	maxFocusNameLength   = 120
	maxDescriptionLength = 2000
	maxCues              = 50
	maxCueLength         = 200
	maxDisplayNameLength = 120
	minLessonMinutes     = 5
	maxLessonMinutes     = 480
)

// optionalText trims s and returns nil for blank input.
func optionalText(s *string, field string, max int) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(v) > max {
		return nil, invalidInput(fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return &v, nil
}

func requiredText(s, field string, max int) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", invalidInput(field + " is required")
	}
	if utf8.RuneCountInString(v) > max {
		return "", invalidInput(fmt.Sprintf("%s must be at most %d characters", field, max))
	}
	return v, nil
}

// normalizeCues trims every cue and drops empty ones, keeping order.
func normalizeCues(cues []string) ([]string, error) {
	out := make([]string, 0, len(cues))
	for _, c := range cues {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if utf8.RuneCountInString(c) > maxCueLength {
			return nil, invalidInput(fmt.Sprintf("cues must be at most %d characters", maxCueLength))
		}
		out = append(out, c)
	}
	if len(out) > maxCues {
		return nil, invalidInput(fmt.Sprintf("at most %d cues are allowed", maxCues))
	}
	return out, nil
}
