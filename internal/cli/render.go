package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/obliviraorg/edumentor/internal/models"
	"github.com/obliviraorg/edumentor/internal/utils"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// RenderWeekly prints the weekly plan followed by per-subject totals.
func RenderWeekly(w io.Writer, schedule models.WeeklySchedule) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Weekly study plan (%gh per day)", schedule.DailyHours)))

	t := newTable("Day", "Time", "Subject", "Type", "Duration")
	empty := true
	for _, day := range schedule.Days {
		for i, item := range day.Items {
			label := ""
			if i == 0 {
				label = day.Day
			}
			t.Row(label,
				utils.FormatMinutes(item.Start)+"-"+utils.FormatMinutes(item.End()),
				item.Subject,
				string(item.Type),
				utils.FormatDuration(item.DurationMin))
			empty = false
		}
	}
	if empty {
		fmt.Fprintln(w, mutedStyle.Render("  No study sessions scheduled. Add subjects or raise the daily hours."))
		return
	}
	fmt.Fprintln(w, t.Render())

	totals := newTable("Subject", "Per week")
	for _, total := range schedule.TotalsBySubject() {
		totals.Row(total.Subject, utils.FormatDuration(total.Minutes))
	}
	fmt.Fprintln(w, totals.Render())
}

// RenderRoutine prints the routine blocks in order.
func RenderRoutine(w io.Writer, routine models.Routine) {
	title := fmt.Sprintf("Daily routine (%s study)", utils.FormatDuration(routine.StudyMinutes()))
	if routine.ExamAdjusted {
		title += fmt.Sprintf(" [exam mode: %gh study, %gh leisure]", routine.StudyHours, routine.LeisureHours)
	}
	fmt.Fprintln(w, titleStyle.Render(title))

	t := newTable("#", "Time", "Activity", "Type", "Duration")
	for i, b := range routine.Blocks {
		t.Row(strconv.Itoa(i+1),
			utils.FormatMinutes(b.Start)+"-"+utils.FormatMinutes(b.End),
			b.Activity,
			string(b.Type),
			utils.FormatDuration(b.DurationMin()))
	}
	fmt.Fprintln(w, t.Render())
}

// RenderExams prints upcoming exams with their countdown.
func RenderExams(w io.Writer, exams []models.Exam) {
	if len(exams) == 0 {
		return
	}
	t := newTable("Exam", "Date", "Days left", "Urgency")
	for _, e := range exams {
		t.Row(e.Name, e.Date, strconv.Itoa(e.DaysUntil), string(e.Urgency()))
	}
	fmt.Fprintln(w, t.Render())
}
