package validation

import (
	"fmt"
	"strings"

	"github.com/obliviraorg/edumentor/internal/constants"
	"github.com/obliviraorg/edumentor/internal/models"
	"github.com/obliviraorg/edumentor/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictEmptySubjectName   ConflictType = "empty_subject_name"
	ConflictDuplicateSubject   ConflictType = "duplicate_subject"
	ConflictExamPassed         ConflictType = "exam_passed"
	ConflictPastMidnight       ConflictType = "past_midnight"
	ConflictOverBudget         ConflictType = "over_budget"
	ConflictOverlappingItems   ConflictType = "overlapping_items"
	ConflictOverlapsSleep      ConflictType = "overlaps_sleep"
	ConflictInvalidSleepWindow ConflictType = "invalid_sleep_window"
	ConflictInvalidBudget      ConflictType = "invalid_budget"
)

// Conflict is a non-fatal problem found in inputs or a generated plan.
type Conflict struct {
	Type        ConflictType
	Description string
	Day         string   // weekday label (weekly plans only)
	Items       []string // subject, exam or block names involved
	IDs         []string // IDs involved (for auto-fixing)
}

type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Merge appends the conflicts of other.
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var report strings.Builder
	report.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&report, "- %s\n", conflict.Description)
	}
	return report.String()
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateSubjects flags blank names and names repeated case-insensitively.
func (v *Validator) ValidateSubjects(subjects []models.Subject) ValidationResult {
	result := ValidationResult{}

	type group struct {
		name string
		ids  []string
	}
	var order []string
	groups := make(map[string]*group)

	for _, s := range subjects {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptySubjectName,
				Description: "A subject has no name",
				IDs:         []string{s.ID},
			})
			continue
		}
		key := strings.ToLower(name)
		g, ok := groups[key]
		if !ok {
			g = &group{name: name}
			groups[key] = g
			order = append(order, key)
		}
		g.ids = append(g.ids, s.ID)
	}

	for _, key := range order {
		g := groups[key]
		if len(g.ids) < 2 {
			continue
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateSubject,
			Description: fmt.Sprintf("Subject %q is listed %d times", g.name, len(g.ids)),
			Items:       []string{g.name},
			IDs:         g.ids,
		})
	}
	return result
}

// ValidateExams flags exams whose date has already passed.
func (v *Validator) ValidateExams(exams []models.Exam) ValidationResult {
	result := ValidationResult{}
	for _, e := range exams {
		if e.DaysUntil >= 0 {
			continue
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictExamPassed,
			Description: fmt.Sprintf("Exam %q was %d day(s) ago and still counts toward intensification", e.Name, -e.DaysUntil),
			Items:       []string{e.Name},
			IDs:         []string{e.ID},
		})
	}
	return result
}

// ValidateWeekly checks each day for overlapping items, items ending after
// midnight and study time above the daily budget.
func (v *Validator) ValidateWeekly(schedule models.WeeklySchedule) ValidationResult {
	result := ValidationResult{}
	budget := utils.HoursToMinutes(schedule.DailyHours)

	for _, day := range schedule.Days {
		for i, item := range day.Items {
			if i > 0 && item.Start < day.Items[i-1].End() {
				prev := day.Items[i-1]
				result.Conflicts = append(result.Conflicts, Conflict{
					Type: ConflictOverlappingItems,
					Description: fmt.Sprintf("%s: %s (%s) overlaps %s (%s)", day.Day,
						item.Subject, utils.FormatMinutes(item.Start), prev.Subject, utils.FormatMinutes(prev.Start)),
					Day:   day.Day,
					Items: []string{prev.Subject, item.Subject},
				})
			}
			if item.End() > constants.MinutesPerDay {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictPastMidnight,
					Description: fmt.Sprintf("%s: %s runs past midnight", day.Day, item.Subject),
					Day:         day.Day,
					Items:       []string{item.Subject},
				})
			}
		}

		if total := day.TotalMinutes(); total > budget {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type: ConflictOverBudget,
				Description: fmt.Sprintf("%s: %s of study exceeds the %s daily budget", day.Day,
					utils.FormatDuration(total), utils.FormatDuration(budget)),
				Day: day.Day,
			})
		}
	}
	return result
}

// ValidateRoutine flags waking blocks that run into sleep and a sleep
// block outside a single day.
func (v *Validator) ValidateRoutine(routine models.Routine) ValidationResult {
	result := ValidationResult{}

	sleep, ok := routine.Block("sleep")
	if !ok {
		return result
	}

	if sleep.Start < 0 || sleep.Start > constants.MinutesPerDay {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidSleepWindow,
			Description: "Sleep must be between 0 and 24 hours",
			Items:       []string{sleep.Activity},
			IDs:         []string{sleep.ID},
		})
	}

	for _, b := range routine.Blocks {
		if b.ID == sleep.ID || b.End <= sleep.Start {
			continue
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type: ConflictOverlapsSleep,
			Description: fmt.Sprintf("%s (%s-%s) runs into sleep starting %s", b.Activity,
				utils.FormatMinutes(b.Start), utils.FormatMinutes(b.End), utils.FormatMinutes(sleep.Start)),
			Items: []string{b.Activity, sleep.Activity},
			IDs:   []string{b.ID, sleep.ID},
		})
	}
	return result
}

// AutoFixDuplicateSubjects keeps the first subject of every duplicate group
// and removes the rest through deleteFunc.
func AutoFixDuplicateSubjects(conflicts []Conflict, deleteFunc func(id string) error) []FixAction {
	actions := []FixAction{}

	for _, conflict := range conflicts {
		if conflict.Type != ConflictDuplicateSubject || len(conflict.IDs) <= 1 {
			continue
		}

		keep := conflict.IDs[0]
		var deleted, failed []string
		for _, id := range conflict.IDs[1:] {
			if err := deleteFunc(id); err != nil {
				failed = append(failed, id)
				continue
			}
			deleted = append(deleted, id)
		}

		name := strings.Join(conflict.Items, ", ")
		switch {
		case len(deleted) > 0:
			msg := fmt.Sprintf("Removed %d duplicate subject(s) named %q (kept ID: %s)", len(deleted), name, keep)
			if len(failed) > 0 {
				msg += fmt.Sprintf(" (failed to remove: %v)", failed)
			}
			actions = append(actions, FixAction{Action: msg, SourceConflict: conflict})
		case len(failed) > 0:
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Failed to remove duplicates of %q: %v", name, failed),
				SourceConflict: conflict,
			})
		}
	}
	return actions
}
