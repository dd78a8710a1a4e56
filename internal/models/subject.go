package models

import (
	"fmt"
	"strings"

	"github.com/obliviraorg/edumentor/internal/constants"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority accepts high, medium or low in any case.
func ParsePriority(s string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	}
	return "", fmt.Errorf("%w: %q (use high, medium or low)", ErrInvalidPriority, s)
}

// DurationMin is the study time a subject of this priority asks for per day.
func (p Priority) DurationMin() int {
	if p == PriorityHigh {
		return constants.HighPriorityMin
	}
	return constants.StandardPriorityMin
}

// Next cycles high -> medium -> low -> high.
func (p Priority) Next() Priority {
	switch p {
	case PriorityHigh:
		return PriorityMedium
	case PriorityMedium:
		return PriorityLow
	default:
		return PriorityHigh
	}
}

type Subject struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Priority Priority `json:"priority"`
}
