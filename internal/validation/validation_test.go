package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/obliviraorg/edumentor/internal/models"
	"github.com/obliviraorg/edumentor/internal/scheduler"
)

func hasConflict(result ValidationResult, typ ConflictType) bool {
	for _, c := range result.Conflicts {
		if c.Type == typ {
			return true
		}
	}
	return false
}

func TestValidateSubjects_Duplicates(t *testing.T) {
	subjects := []models.Subject{
		{ID: "1", Name: "Mathematics", Priority: models.PriorityHigh},
		{ID: "2", Name: "Physics", Priority: models.PriorityMedium},
		{ID: "3", Name: " mathematics", Priority: models.PriorityLow},
		{ID: "4", Name: "", Priority: models.PriorityLow},
	}

	result := New().ValidateSubjects(subjects)

	if !hasConflict(result, ConflictDuplicateSubject) {
		t.Fatal("expected duplicate subject conflict")
	}
	if !hasConflict(result, ConflictEmptySubjectName) {
		t.Error("expected empty name conflict")
	}
	for _, c := range result.Conflicts {
		if c.Type == ConflictDuplicateSubject && strings.Join(c.IDs, ",") != "1,3" {
			t.Errorf("duplicate IDs = %v, want [1 3]", c.IDs)
		}
	}
}

func TestValidateSubjects_Clean(t *testing.T) {
	result := New().ValidateSubjects([]models.Subject{{ID: "1", Name: "Chemistry"}})
	if result.HasConflicts() {
		t.Errorf("unexpected conflicts: %s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("FormatReport() = %q", result.FormatReport())
	}
}

func TestValidateExams(t *testing.T) {
	exams := []models.Exam{
		{ID: "a", Name: "Calculus", DaysUntil: 4},
		{ID: "b", Name: "Biology", DaysUntil: -2},
	}
	result := New().ValidateExams(exams)
	if len(result.Conflicts) != 1 || result.Conflicts[0].Type != ConflictExamPassed {
		t.Fatalf("conflicts = %+v", result.Conflicts)
	}
	if result.Conflicts[0].IDs[0] != "b" {
		t.Errorf("flagged exam = %v", result.Conflicts[0].IDs)
	}
}

func TestValidateWeekly(t *testing.T) {
	generated := scheduler.New().GenerateWeekly([]models.Subject{
		{Name: "Mathematics", Priority: models.PriorityHigh},
		{Name: "Physics", Priority: models.PriorityMedium},
	}, 4)
	if result := New().ValidateWeekly(generated); result.HasConflicts() {
		t.Errorf("generated schedule has conflicts: %s", result.FormatReport())
	}

	edited, err := generated.WithItem(0, 1, models.ScheduleItem{Start: 600, DurationMin: 900, Subject: "Physics", Type: models.ActivityReview})
	if err != nil {
		t.Fatalf("WithItem: %v", err)
	}
	result := New().ValidateWeekly(edited)
	for _, typ := range []ConflictType{ConflictOverlappingItems, ConflictPastMidnight, ConflictOverBudget} {
		if !hasConflict(result, typ) {
			t.Errorf("expected %s conflict, got %s", typ, result.FormatReport())
		}
	}
	for _, c := range result.Conflicts {
		if c.Day != "Monday" {
			t.Errorf("conflict on %q, want Monday only", c.Day)
		}
	}
}

func TestValidateRoutine_OverlapsSleep(t *testing.T) {
	routine := scheduler.New().GenerateRoutine(models.RoutineBudget{
		StudyHours: 6, SleepHours: 8, ExerciseMinutes: 30, LeisureHours: 2,
	}, nil)

	result := New().ValidateRoutine(routine)
	if !hasConflict(result, ConflictOverlapsSleep) {
		t.Fatal("expected leisure and dinner to run into a 16:00 sleep start")
	}
	var ids []string
	for _, c := range result.Conflicts {
		ids = append(ids, c.IDs[0])
	}
	if strings.Join(ids, ",") != "leisure,evening" {
		t.Errorf("overlapping blocks = %v, want [leisure evening]", ids)
	}
}

func TestValidateRoutine_ShortDay(t *testing.T) {
	routine := scheduler.New().GenerateRoutine(models.RoutineBudget{StudyHours: 2, SleepHours: 6}, nil)
	if result := New().ValidateRoutine(routine); result.HasConflicts() {
		t.Errorf("unexpected conflicts: %s", result.FormatReport())
	}
}

func TestValidateRoutine_InvalidSleepWindow(t *testing.T) {
	routine := models.Routine{Blocks: []models.TimeBlock{
		{ID: "sleep", Activity: "Sleep", Start: -120, End: 1800, Type: models.BlockSleep},
	}}
	if !hasConflict(New().ValidateRoutine(routine), ConflictInvalidSleepWindow) {
		t.Error("expected invalid sleep window conflict")
	}
}

func TestAutoFixDuplicateSubjects(t *testing.T) {
	conflicts := []Conflict{
		{Type: ConflictDuplicateSubject, Items: []string{"Mathematics"}, IDs: []string{"1", "3", "5"}},
		{Type: ConflictExamPassed, IDs: []string{"x"}},
	}

	var deleted []string
	actions := AutoFixDuplicateSubjects(conflicts, func(id string) error {
		if id == "5" {
			return errors.New("locked")
		}
		deleted = append(deleted, id)
		return nil
	})

	if strings.Join(deleted, ",") != "3" {
		t.Errorf("deleted = %v, want [3]", deleted)
	}
	if len(actions) != 1 {
		t.Fatalf("actions = %+v", actions)
	}
	if !strings.Contains(actions[0].Action, "failed to remove: [5]") {
		t.Errorf("action = %q", actions[0].Action)
	}
}

func TestMerge(t *testing.T) {
	var result ValidationResult
	result.Merge(ValidationResult{Conflicts: []Conflict{{Type: ConflictExamPassed}}})
	result.Merge(ValidationResult{})
	if len(result.Conflicts) != 1 {
		t.Errorf("Merge() kept %d conflicts", len(result.Conflicts))
	}
}
