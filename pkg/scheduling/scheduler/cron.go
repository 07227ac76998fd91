package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/rainbow/pkg/common/validation"
)

// parser accepts five-field expressions, an optional leading seconds field,
// and descriptors such as "@hourly" or "@every 30s".
var parser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ParseCron parses a cron expression into a schedule.
func ParseCron(expr string) (cron.Schedule, error) {
	if expr == "" {
		return nil, fmt.Errorf("cron expression cannot be empty")
	}
	schedule, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return schedule, nil
}

// ValidateCron reports whether expr can be scheduled.
func ValidateCron(expr string) error {
	_, err := ParseCron(expr)
	return err
}

// NextRuns returns the next n activation times of expr after from.
// n must not be negative.
func NextRuns(expr string, from time.Time, n int) ([]time.Time, error) {
	if err := validation.ValidateNonNegativeInt("scheduler", "count", n); err != nil {
		return nil, err
	}
	schedule, err := ParseCron(expr)
	if err != nil {
		return nil, err
	}

	runs := make([]time.Time, 0, n)
	current := from
	for i := 0; i < n; i++ {
		current = schedule.Next(current)
		if current.IsZero() {
			break
		}
		runs = append(runs, current)
	}
	return runs, nil
}

// everySchedule fires at a fixed interval measured from the previous activation.
type everySchedule struct {
	interval time.Duration
}

func (e everySchedule) Next(t time.Time) time.Time {
	return t.Add(e.interval)
}
