package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/obliviraorg/edumentor/internal/models"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(SessionDSN(), models.DefaultSettings())
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInitSeedsSession(t *testing.T) {
	store := setupStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings != models.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", settings)
	}

	subjects, err := store.GetAllSubjects()
	if err != nil {
		t.Fatalf("GetAllSubjects failed: %v", err)
	}
	if len(subjects) != 2 || subjects[0].Name != "Mathematics" || subjects[1].Name != "Physics" {
		t.Fatalf("seeded subjects = %+v", subjects)
	}
	if subjects[0].Priority != models.PriorityHigh || subjects[1].Priority != models.PriorityMedium {
		t.Errorf("seeded priorities = %s, %s", subjects[0].Priority, subjects[1].Priority)
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	store := setupStore(t)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	subjects, _ := store.GetAllSubjects()
	if len(subjects) != 2 {
		t.Errorf("Load reseeded: %d subjects", len(subjects))
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	a := setupStore(t)
	b := setupStore(t)

	if err := a.AddSubject(models.Subject{ID: "chem", Name: "Chemistry", Priority: models.PriorityLow}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.GetSubject("chem"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("subject leaked across sessions: %v", err)
	}
}

func TestSubjectsKeepInsertionOrder(t *testing.T) {
	store := setupStore(t)

	for _, s := range []models.Subject{
		{ID: "c", Name: "Chemistry", Priority: models.PriorityLow},
		{ID: "a", Name: "Art", Priority: models.PriorityHigh},
	} {
		if err := store.AddSubject(s); err != nil {
			t.Fatalf("AddSubject failed: %v", err)
		}
	}

	subjects, _ := store.GetAllSubjects()
	var names []string
	for _, s := range subjects {
		names = append(names, s.Name)
	}
	want := []string{"Mathematics", "Physics", "Chemistry", "Art"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order = %v, want %v", names, want)
		}
	}

	// Deleting and updating keeps relative order.
	if err := store.DeleteSubject(subjects[1].ID); err != nil {
		t.Fatal(err)
	}
	if err := store.UpdateSubject(models.Subject{ID: "c", Name: "Organic Chemistry", Priority: models.PriorityHigh}); err != nil {
		t.Fatal(err)
	}
	subjects, _ = store.GetAllSubjects()
	if len(subjects) != 3 || subjects[1].Name != "Organic Chemistry" || subjects[1].Priority != models.PriorityHigh {
		t.Errorf("after edits = %+v", subjects)
	}

	// A subject added after a delete goes to the end.
	if err := store.AddSubject(models.Subject{ID: "z", Name: "Zoology", Priority: models.PriorityLow}); err != nil {
		t.Fatal(err)
	}
	subjects, _ = store.GetAllSubjects()
	if subjects[len(subjects)-1].ID != "z" {
		t.Errorf("new subject not last: %+v", subjects)
	}
}

func TestSubjectNotFound(t *testing.T) {
	store := setupStore(t)
	if err := store.DeleteSubject("missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("DeleteSubject error = %v", err)
	}
	if err := store.UpdateSubject(models.Subject{ID: "missing", Name: "x", Priority: models.PriorityLow}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("UpdateSubject error = %v", err)
	}
}

func TestRejectsUnknownPriority(t *testing.T) {
	store := setupStore(t)
	if err := store.AddSubject(models.Subject{ID: "x", Name: "X", Priority: "urgent"}); err == nil {
		t.Error("expected CHECK constraint failure")
	}
}

func TestExams(t *testing.T) {
	store := setupStore(t)
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	first, _ := models.NewExam("e1", "Calculus", "Mathematics", "2026-06-05", now)
	second, _ := models.NewExam("e2", "Mechanics", "", "2026-07-01", now)
	for _, e := range []models.Exam{first, second} {
		if err := store.AddExam(e); err != nil {
			t.Fatalf("AddExam failed: %v", err)
		}
	}

	exams, err := store.GetAllExams()
	if err != nil {
		t.Fatalf("GetAllExams failed: %v", err)
	}
	if len(exams) != 2 || exams[0].ID != "e1" || exams[1].ID != "e2" {
		t.Fatalf("exams = %+v", exams)
	}
	if exams[0].DaysUntil != 4 || !exams[0].CreatedAt.Equal(now) {
		t.Errorf("exam round trip = %+v", exams[0])
	}

	if err := store.DeleteExam("e1"); err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteExam("e1"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("second delete error = %v", err)
	}
}

func TestWeeklyScheduleReplacesPrevious(t *testing.T) {
	store := setupStore(t)

	if _, err := store.GetWeeklySchedule(); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("empty session error = %v", err)
	}

	first := models.WeeklySchedule{DailyHours: 2, Days: []models.DaySchedule{
		{Day: "Monday", Items: []models.ScheduleItem{{Start: 540, DurationMin: 120, Subject: "Mathematics", Type: models.ActivityStudy}}},
	}}
	second := models.WeeklySchedule{DailyHours: 4, Days: []models.DaySchedule{
		{Day: "Monday", Items: []models.ScheduleItem{
			{Start: 540, DurationMin: 120, SubjectID: "m", Subject: "Mathematics", Type: models.ActivityStudy},
			{Start: 720, DurationMin: 60, SubjectID: "p", Subject: "Physics", Type: models.ActivityReview},
		}},
		{Day: "Tuesday", Items: []models.ScheduleItem{}},
	}}

	for _, s := range []models.WeeklySchedule{first, second} {
		if err := store.SaveWeeklySchedule(s); err != nil {
			t.Fatalf("SaveWeeklySchedule failed: %v", err)
		}
	}

	got, err := store.GetWeeklySchedule()
	if err != nil {
		t.Fatalf("GetWeeklySchedule failed: %v", err)
	}
	if got.DailyHours != 4 || len(got.Days) != 2 {
		t.Fatalf("schedule = %+v", got)
	}
	if got.Days[1].Day != "Tuesday" || len(got.Days[1].Items) != 0 {
		t.Errorf("empty day = %+v", got.Days[1])
	}
	for i, item := range second.Days[0].Items {
		if got.Days[0].Items[i] != item {
			t.Errorf("item %d = %+v, want %+v", i, got.Days[0].Items[i], item)
		}
	}

	var count int
	if err := store.GetDB().QueryRow("SELECT COUNT(*) FROM weekly_schedules").Scan(&count); err != nil || count != 1 {
		t.Errorf("stored schedules = %d, want 1", count)
	}
}

func TestRoutineRoundTrip(t *testing.T) {
	store := setupStore(t)

	routine := models.Routine{
		ExamAdjusted: true,
		StudyHours:   6,
		LeisureHours: 1,
		Blocks: []models.TimeBlock{
			{ID: "wake", Activity: "Wake Up & Morning Routine", Start: 360, End: 420, Type: models.BlockBreak},
			{ID: "sleep", Activity: "Sleep", Start: 960, End: 1800, Type: models.BlockSleep},
		},
	}
	if err := store.SaveRoutine(routine); err != nil {
		t.Fatalf("SaveRoutine failed: %v", err)
	}

	got, err := store.GetRoutine()
	if err != nil {
		t.Fatalf("GetRoutine failed: %v", err)
	}
	if !got.ExamAdjusted || got.StudyHours != 6 || got.LeisureHours != 1 {
		t.Errorf("routine header = %+v", got)
	}
	for i, b := range routine.Blocks {
		if got.Blocks[i] != b {
			t.Errorf("block %d = %+v, want %+v", i, got.Blocks[i], b)
		}
	}
}

func TestSaveSettings(t *testing.T) {
	store := setupStore(t)

	settings := models.DefaultSettings()
	settings.DailyStudyHours = 5.5
	settings.Timezone = "Asia/Tokyo"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	got, err := store.GetSettings()
	if err != nil || got != settings {
		t.Errorf("GetSettings = %+v, %v; want %+v", got, err, settings)
	}
}
