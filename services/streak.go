package services

import (
	"context"
	"strconv"
	"time"

	"github.com/helthtracer/backend/models"
	"github.com/helthtracer/backend/stores"
)

// StreakCalculator computes the number of consecutive calendar days,
// counting backward from today, on which the user completed every habit
// that existed as of that day.
type StreakCalculator struct {
	habits stores.HabitStore
	logs   stores.HabitLogStore
}

// NewStreakCalculator creates a StreakCalculator over the given stores.
func NewStreakCalculator(habits stores.HabitStore, logs stores.HabitLogStore) *StreakCalculator {
	return &StreakCalculator{habits: habits, logs: logs}
}

// CurrentStreak scans day by day backward from today. The scan stops at the
// first day where some then-existing habit lacks a COMPLETED log, or at the
// day before the earliest habit's creation date. A user with no habits has
// no streak, and an incomplete today yields 0 regardless of prior history.
//
// Habits are evaluated daily regardless of their frequency field; there is
// no frequency-aware scheduling.
func (c *StreakCalculator) CurrentStreak(ctx context.Context, userID uint, today time.Time) (int, error) {
	habits, err := c.habits.ListByUser(ctx, userID)
	if err != nil {
		return 0, &DependencyError{Op: "calculate streak", Err: err}
	}
	if len(habits) == 0 {
		return 0, nil
	}

	day := truncateToDay(today)
	// ListByUser orders by creation time ascending.
	earliest := truncateToDay(habits[0].CreatedAt)

	logs, err := c.logs.FindByUserAndDateRange(ctx, userID, earliest, day)
	if err != nil {
		return 0, &DependencyError{Op: "calculate streak", Err: err}
	}

	completed := make(map[string]bool, len(logs))
	for _, log := range logs {
		if log.Status == models.StatusCompleted {
			completed[logKey(log.HabitID, log.Date)] = true
		}
	}

	streak := 0
	for !day.Before(earliest) {
		if !c.allCompleted(habits, day, completed) {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}

// allCompleted reports whether every habit existing as of day has a
// COMPLETED log for it. Habits created after day carry no requirement:
// a habit created today must not retroactively break yesterday's streak.
func (c *StreakCalculator) allCompleted(habits []models.Habit, day time.Time, completed map[string]bool) bool {
	active := 0
	for _, habit := range habits {
		if truncateToDay(habit.CreatedAt).After(day) {
			continue
		}
		active++
		if !completed[logKey(habit.ID, day)] {
			return false
		}
	}
	return active > 0
}

func logKey(habitID uint, date time.Time) string {
	return date.Format(stores.DateLayout) + "#" + strconv.FormatUint(uint64(habitID), 10)
}
