package models

import "fmt"

type ActivityType string

const (
	ActivityStudy    ActivityType = "study"
	ActivityReview   ActivityType = "review"
	ActivityPractice ActivityType = "practice"
)

// ActivityCycle is indexed by a subject's position in the input list.
var ActivityCycle = []ActivityType{ActivityStudy, ActivityReview, ActivityPractice}

type ScheduleItem struct {
	Start       int          `json:"start_min"` // minutes from midnight
	DurationMin int          `json:"duration_min"`
	SubjectID   string       `json:"subject_id,omitempty"`
	Subject     string       `json:"subject"`
	Type        ActivityType `json:"type"`
}

func (i ScheduleItem) End() int {
	return i.Start + i.DurationMin
}

type DaySchedule struct {
	Day   string         `json:"day"`
	Items []ScheduleItem `json:"items"`
}

// TotalMinutes sums the allocated study time of the day.
func (d DaySchedule) TotalMinutes() int {
	total := 0
	for _, item := range d.Items {
		total += item.DurationMin
	}
	return total
}

type WeeklySchedule struct {
	DailyHours float64       `json:"daily_hours"`
	Days       []DaySchedule `json:"days"`
}

// SubjectTotal is the weekly study time of one subject.
type SubjectTotal struct {
	Subject string `json:"subject"`
	Minutes int    `json:"minutes"`
}

// Clone returns a deep copy that shares no slices with w.
func (w WeeklySchedule) Clone() WeeklySchedule {
	out := WeeklySchedule{DailyHours: w.DailyHours}
	if w.Days == nil {
		return out
	}
	out.Days = make([]DaySchedule, len(w.Days))
	for i, day := range w.Days {
		items := make([]ScheduleItem, len(day.Items))
		copy(items, day.Items)
		out.Days[i] = DaySchedule{Day: day.Day, Items: items}
	}
	return out
}

// WithItem returns a copy of w with the item at (day, index) replaced.
// w itself is left untouched.
func (w WeeklySchedule) WithItem(day, index int, item ScheduleItem) (WeeklySchedule, error) {
	if day < 0 || day >= len(w.Days) {
		return WeeklySchedule{}, fmt.Errorf("%w: day %d", ErrItemNotFound, day)
	}
	if index < 0 || index >= len(w.Days[day].Items) {
		return WeeklySchedule{}, fmt.Errorf("%w: %s item %d", ErrItemNotFound, w.Days[day].Day, index)
	}
	out := w.Clone()
	out.Days[day].Items[index] = item
	return out, nil
}

// TotalsBySubject returns weekly minutes per subject in order of first appearance.
func (w WeeklySchedule) TotalsBySubject() []SubjectTotal {
	var totals []SubjectTotal
	index := make(map[string]int)
	for _, day := range w.Days {
		for _, item := range day.Items {
			i, ok := index[item.Subject]
			if !ok {
				i = len(totals)
				index[item.Subject] = i
				totals = append(totals, SubjectTotal{Subject: item.Subject})
			}
			totals[i].Minutes += item.DurationMin
		}
	}
	return totals
}
