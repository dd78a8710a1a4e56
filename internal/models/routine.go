package models

import "fmt"

type BlockType string

const (
	BlockStudy    BlockType = "study"
	BlockBreak    BlockType = "break"
	BlockSleep    BlockType = "sleep"
	BlockExercise BlockType = "exercise"
	BlockLeisure  BlockType = "leisure"
)

type TimeBlock struct {
	ID       string    `json:"id"`
	Activity string    `json:"activity"`
	Start    int       `json:"start_min"` // minutes from midnight
	End      int       `json:"end_min"`   // may pass 1440 for the next morning
	Type     BlockType `json:"type"`
}

func (b TimeBlock) DurationMin() int {
	return b.End - b.Start
}

// RoutineBudget holds the daily budgets a routine is built from.
type RoutineBudget struct {
	StudyHours      float64 `json:"study_hours"`
	SleepHours      float64 `json:"sleep_hours"`
	ExerciseMinutes float64 `json:"exercise_minutes"`
	LeisureHours    float64 `json:"leisure_hours"`
}

type Routine struct {
	Blocks       []TimeBlock `json:"blocks"`
	ExamAdjusted bool        `json:"exam_adjusted"`
	StudyHours   float64     `json:"study_hours"`   // after exam adjustment
	LeisureHours float64     `json:"leisure_hours"` // after exam adjustment
}

// Clone returns a deep copy that shares no slices with r.
func (r Routine) Clone() Routine {
	out := r
	if r.Blocks != nil {
		out.Blocks = make([]TimeBlock, len(r.Blocks))
		copy(out.Blocks, r.Blocks)
	}
	return out
}

// Block looks up a block by its ID.
func (r Routine) Block(id string) (TimeBlock, bool) {
	for _, b := range r.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return TimeBlock{}, false
}

// WithActivity returns a copy of r with the activity label of block id replaced.
func (r Routine) WithActivity(id, activity string) (Routine, error) {
	for i, b := range r.Blocks {
		if b.ID != id {
			continue
		}
		out := r.Clone()
		out.Blocks[i].Activity = activity
		return out, nil
	}
	return Routine{}, fmt.Errorf("%w: block %q", ErrItemNotFound, id)
}

// StudyMinutes sums the study blocks.
func (r Routine) StudyMinutes() int {
	total := 0
	for _, b := range r.Blocks {
		if b.Type == BlockStudy {
			total += b.DurationMin()
		}
	}
	return total
}
