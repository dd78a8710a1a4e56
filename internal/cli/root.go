package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/obliviraorg/edumentor/internal/config"
	"github.com/obliviraorg/edumentor/internal/constants"
	"github.com/obliviraorg/edumentor/internal/errors"
	"github.com/obliviraorg/edumentor/internal/models"
	"github.com/obliviraorg/edumentor/internal/runner"
	"github.com/obliviraorg/edumentor/internal/scheduler"
	"github.com/obliviraorg/edumentor/internal/storage"
	"github.com/obliviraorg/edumentor/internal/utils"
	"github.com/obliviraorg/edumentor/internal/validation"
)

type Context struct {
	Ctx       context.Context
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	Config    config.Config
	Out       io.Writer
	// NowFunc overrides the clock used for exam countdowns.
	NowFunc func() time.Time
}

func (c *Context) Context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Now returns the current time in the session timezone.
func (c *Context) Now() (time.Time, error) {
	if c.NowFunc != nil {
		return c.NowFunc(), nil
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Time{}, err
	}
	return utils.NowInTimezone(settings.Timezone)
}

// Generate runs fn through a runner so the CLI shares the TUI's delay and
// cancellation behavior.
func Generate[T any](ctx context.Context, delay time.Duration, fn func() T) (T, error) {
	r := runner.New[T](delay)
	res := <-r.Submit(ctx, func(context.Context) (T, error) {
		return fn(), nil
	})
	return res.Value, res.Err
}

// ParseSubject parses NAME or NAME:PRIORITY; the priority defaults to medium.
func ParseSubject(s string) (models.Subject, error) {
	name, prio, hasPrio := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Subject{}, fmt.Errorf("subject %q: %w", s, models.ErrEmptyName)
	}

	priority := models.PriorityMedium
	if hasPrio {
		var err error
		if priority, err = models.ParsePriority(prio); err != nil {
			return models.Subject{}, fmt.Errorf("subject %q: %w", name, err)
		}
	}
	return models.Subject{ID: uuid.NewString(), Name: name, Priority: priority}, nil
}

// ParseExam parses NAME@YYYY-MM-DD, counting days from now.
func ParseExam(s string, now time.Time) (models.Exam, error) {
	i := strings.LastIndex(s, "@")
	if i < 0 {
		return models.Exam{}, fmt.Errorf("%w: %q (use NAME@%s)", models.ErrInvalidExamDate, s, "YYYY-MM-DD")
	}
	return models.NewExam(uuid.NewString(), s[:i], "", strings.TrimSpace(s[i+1:]), now)
}

// PrintWarnings writes each conflict as a warning line.
func PrintWarnings(w io.Writer, result validation.ValidationResult) {
	if !result.HasConflicts() {
		return
	}
	fmt.Fprintln(w)
	for _, conflict := range result.Conflicts {
		fmt.Fprintln(w, warningStyle.Render(errors.Warning(conflict.Description)))
	}
}

// WriteJSON writes v indented.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// DefaultDelay is the configured cosmetic delay, or zero when instant is set.
func (c *Context) DefaultDelay(instant bool) time.Duration {
	if instant {
		return 0
	}
	settings, err := c.Store.GetSettings()
	if err != nil {
		return constants.DefaultGenerateDelay
	}
	return settings.GenerateDelay()
}
