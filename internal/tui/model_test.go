package tui

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/obliviraorg/edumentor/internal/constants"
	"github.com/obliviraorg/edumentor/internal/models"
	"github.com/obliviraorg/edumentor/internal/runner"
	"github.com/obliviraorg/edumentor/internal/scheduler"
	"github.com/obliviraorg/edumentor/internal/storage/sqlite"
)

func setupModel(t *testing.T) Model {
	t.Helper()
	defaults := models.DefaultSettings()
	defaults.GenerateDelayMs = 0
	store := sqlite.NewStore(sqlite.SessionDSN(), defaults)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	m := NewModel(context.Background(), store, scheduler.New())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func press(t *testing.T, m Model, keys string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch keys {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	updated, _ := m.Update(msg)
	return updated.(Model)
}

// drain runs cmd and any batched commands, returning the first message of type T.
func drain[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	pending := []tea.Cmd{cmd}
	for len(pending) > 0 {
		next := pending[0]
		pending = pending[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			pending = append(pending, msg...)
		case T:
			return msg
		}
	}
	var zero T
	t.Fatalf("no %T produced", zero)
	return zero
}

func TestNewModelLoadsSession(t *testing.T) {
	m := setupModel(t)

	if m.state != constants.StateTrainer {
		t.Errorf("state = %v, want trainer", m.state)
	}
	if m.subjectList.Len() != 2 {
		t.Errorf("subjects = %d, want 2", m.subjectList.Len())
	}
	if m.weeklyModel.Schedule != nil || m.routineModel.Routine != nil {
		t.Error("expected no plans before generating")
	}
}

func TestTabSwitchesPanels(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, "tab")
	if m.state != constants.StateRoutine {
		t.Fatalf("state = %v, want routine", m.state)
	}
	m = press(t, m, "tab")
	if m.state != constants.StateTrainer {
		t.Fatalf("state = %v, want trainer", m.state)
	}
}

func TestGenerateWeekly(t *testing.T) {
	m := setupModel(t)

	cmd := m.generateWeekly()
	if !m.weeklyPending {
		t.Fatal("expected a pending generation")
	}
	msg := drain[weeklyResultMsg](t, cmd)
	m = m.handleWeeklyResult(msg)

	if m.weeklyPending {
		t.Error("generation still pending after result")
	}
	if m.weeklyModel.Schedule == nil {
		t.Fatal("schedule not set")
	}
	if got := len(m.weeklyModel.Schedule.Days); got != 7 {
		t.Errorf("days = %d, want 7", got)
	}
	if _, err := m.store.GetWeeklySchedule(); err != nil {
		t.Errorf("schedule not saved: %v", err)
	}
}

func TestSupersededResultIsDropped(t *testing.T) {
	m := setupModel(t)

	first := m.generateWeekly()
	second := m.generateWeekly()

	stale := drain[weeklyResultMsg](t, first)
	m = m.handleWeeklyResult(stale)
	if m.weeklyModel.Schedule != nil {
		t.Fatal("superseded result was applied")
	}
	if !m.weeklyPending {
		t.Fatal("stale result cleared the pending flag")
	}

	latest := drain[weeklyResultMsg](t, second)
	m = m.handleWeeklyResult(latest)
	if m.weeklyModel.Schedule == nil {
		t.Fatal("latest result was not applied")
	}
}

func TestGenerationErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus string
	}{
		{"cancelled", context.Canceled, "Generation cancelled"},
		{"superseded", runner.ErrSuperseded, ""},
		{"failed", errors.New("boom"), "Generation failed: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := setupModel(t)
			m.routinePending = true
			m = m.handleRoutineResult(routineResultMsg{Seq: m.routineRunner.Latest(), Err: tt.err})

			if m.routinePending {
				t.Error("pending flag not cleared")
			}
			if m.routineModel.Routine != nil {
				t.Error("routine set from a failed result")
			}
			if m.status != tt.wantStatus {
				t.Errorf("status = %q, want %q", m.status, tt.wantStatus)
			}
		})
	}
}

func TestCyclePriorityKey(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, "p")
	subjects, err := m.store.GetAllSubjects()
	if err != nil {
		t.Fatalf("GetAllSubjects failed: %v", err)
	}
	if subjects[0].Priority != models.PriorityMedium {
		t.Errorf("priority = %s, want medium", subjects[0].Priority)
	}
}

func TestDeleteKeyRemovesSelectedSubject(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, "d")
	if m.subjectList.Len() != 1 {
		t.Fatalf("subjects = %d, want 1", m.subjectList.Len())
	}
	selected, ok := m.subjectList.Selected()
	if !ok || selected.Name != "Physics" {
		t.Errorf("selected = %+v, want Physics", selected)
	}
}

func TestFormOpensAndEscReturns(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, "a")
	if m.state != constants.StateAddSubject || m.form == nil {
		t.Fatalf("state = %v, want add subject form", m.state)
	}
	m = press(t, m, "esc")
	if m.state != constants.StateTrainer || m.form != nil {
		t.Errorf("state = %v, want trainer without form", m.state)
	}
}

func TestRenameBlock(t *testing.T) {
	m := setupModel(t)

	msg := drain[routineResultMsg](t, m.generateRoutine())
	m = m.handleRoutineResult(msg)
	if m.routineModel.Routine == nil {
		t.Fatal("routine not set")
	}
	before := *m.routineModel.Routine

	if err := m.renameBlock("study-1", "Calculus Drills"); err != nil {
		t.Fatalf("renameBlock failed: %v", err)
	}
	block, _ := m.routineModel.Routine.Block("study-1")
	if block.Activity != "Calculus Drills" {
		t.Errorf("activity = %q", block.Activity)
	}
	if b, _ := before.Block("study-1"); b.Activity == "Calculus Drills" {
		t.Error("rename mutated the previous routine")
	}

	saved, err := m.store.GetRoutine()
	if err != nil {
		t.Fatalf("GetRoutine failed: %v", err)
	}
	if b, _ := saved.Block("study-1"); b.Activity != "Calculus Drills" {
		t.Errorf("saved activity = %q", b.Activity)
	}

	if err := m.renameBlock("missing", "x"); !errors.Is(err, models.ErrItemNotFound) {
		t.Errorf("err = %v, want ErrItemNotFound", err)
	}
	if err := m.renameBlock("study-1", "  "); !errors.Is(err, models.ErrEmptyName) {
		t.Errorf("err = %v, want ErrEmptyName", err)
	}
}

func TestParseBudget(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"6", 6, false},
		{" 1.5 ", 1.5, false},
		{"0", 0, false},
		{"-1", 0, true},
		{"NaN", 0, true},
		{"abc", 0, true},
		{"24", 24, false},
		{"25", 0, true},
		{"1e12", 0, true},
	}
	for _, tt := range tests {
		got, err := parseBudget("study_hours", tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseBudget(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseBudget(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := parseBudget("exercise_minutes", "90"); err != nil {
		t.Errorf("exercise_minutes 90: %v", err)
	}
	if _, err := parseBudget("exercise_minutes", "1441"); err == nil {
		t.Error("expected exercise_minutes 1441 to be rejected")
	}
}

func TestEditWeeklyItem(t *testing.T) {
	m := setupModel(t)

	msg := drain[weeklyResultMsg](t, m.generateWeekly())
	m = m.handleWeeklyResult(msg)
	if m.weeklyModel.Schedule == nil {
		t.Fatal("schedule not set")
	}
	before := *m.weeklyModel.Schedule

	day, index, item, ok := m.weeklyModel.Selected()
	if !ok || day != 0 || index != 0 {
		t.Fatalf("Selected() = %d, %d, %v", day, index, ok)
	}
	selected := item
	item.Subject = "Chemistry"
	item.SubjectID = ""
	item.Start = 600
	item.DurationMin = 45
	if err := m.editItem(day, index, item); err != nil {
		t.Fatalf("editItem failed: %v", err)
	}

	got := m.weeklyModel.Schedule.Days[0].Items[0]
	if got.Subject != "Chemistry" || got.Start != 600 || got.DurationMin != 45 {
		t.Errorf("item = %+v", got)
	}
	if before.Days[0].Items[0] != selected {
		t.Error("edit mutated the previous schedule")
	}

	saved, err := m.store.GetWeeklySchedule()
	if err != nil {
		t.Fatalf("GetWeeklySchedule failed: %v", err)
	}
	if saved.Days[0].Items[0].Subject != "Chemistry" {
		t.Errorf("saved subject = %q", saved.Days[0].Items[0].Subject)
	}

	if err := m.editItem(0, 99, item); !errors.Is(err, models.ErrItemNotFound) {
		t.Errorf("err = %v, want ErrItemNotFound", err)
	}
	item.Subject = " "
	if err := m.editItem(0, 0, item); !errors.Is(err, models.ErrEmptyName) {
		t.Errorf("err = %v, want ErrEmptyName", err)
	}
}

func TestItemFormAppliesEdits(t *testing.T) {
	m := setupModel(t)
	m = m.handleWeeklyResult(drain[weeklyResultMsg](t, m.generateWeekly()))

	m = press(t, m, "]")
	day, index, item, ok := m.weeklyModel.Selected()
	if !ok || (day == 0 && index == 0) {
		t.Fatalf("Selected() after ] = %d, %d, %v", day, index, ok)
	}

	m = press(t, m, "e")
	if m.state != constants.StateEditItem || m.itemForm == nil {
		t.Fatalf("state = %v, want edit item form", m.state)
	}
	if m.itemForm.Subject != item.Subject || m.itemForm.Duration != strconv.Itoa(item.DurationMin) {
		t.Errorf("form = %+v, want values of %+v", m.itemForm, item)
	}

	m.itemForm.Start = "18:30"
	m.itemForm.Duration = "50"
	if err := m.applyForm(); err != nil {
		t.Fatalf("applyForm failed: %v", err)
	}
	got := m.weeklyModel.Schedule.Days[day].Items[index]
	if got.Start != 18*60+30 || got.DurationMin != 50 || got.Subject != item.Subject {
		t.Errorf("item = %+v", got)
	}
	if got.SubjectID != item.SubjectID {
		t.Errorf("subject id changed without a rename")
	}

	m.itemForm.Start = "25:00"
	if err := m.applyForm(); err == nil {
		t.Error("expected an error for an invalid start time")
	}
}

func TestRemoveExam(t *testing.T) {
	m := setupModel(t)

	m = press(t, m, "tab")
	m = press(t, m, "d")
	if m.state != constants.StateRoutine || m.status != "No exams to remove" {
		t.Fatalf("state = %v, status = %q", m.state, m.status)
	}

	exam, err := models.NewExam("exam-1", "Finals", "Math", "2026-11-02", time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewExam failed: %v", err)
	}
	if err := m.store.AddExam(exam); err != nil {
		t.Fatalf("AddExam failed: %v", err)
	}
	m.exams = []models.Exam{exam}

	m = press(t, m, "d")
	if m.state != constants.StateRemoveExam || m.removeForm == nil {
		t.Fatalf("state = %v, want remove exam form", m.state)
	}
	if m.removeForm.ID != "exam-1" {
		t.Errorf("form id = %q, want exam-1", m.removeForm.ID)
	}
	if err := m.applyForm(); err != nil {
		t.Fatalf("applyForm failed: %v", err)
	}

	if len(m.exams) != 0 {
		t.Errorf("exams = %d, want 0", len(m.exams))
	}
	stored, err := m.store.GetAllExams()
	if err != nil {
		t.Fatalf("GetAllExams failed: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("stored exams = %d, want 0", len(stored))
	}
	if err := m.removeExam("exam-1"); err == nil {
		t.Error("expected an error removing a missing exam")
	}
}
