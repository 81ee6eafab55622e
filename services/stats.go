package services

import (
	"context"
	"math"
	"time"

	"github.com/helthtracer/backend/stores"
)

// UserStats is the derived per-user statistics snapshot. It is computed
// fresh on every request and never persisted or cached.
type UserStats struct {
	TotalHabits        int64   `json:"totalHabits"`
	CompletedThisMonth int64   `json:"completedThisMonth"`
	CompletionRate     int     `json:"completionRate"`
	AverageSleep       float64 `json:"averageSleep"`
	CurrentStreak      int     `json:"currentStreak"`
}

// StatsService composes habit counts, the monthly completion rate, the
// sleep average and the current streak into a single snapshot.
type StatsService struct {
	habits stores.HabitStore
	logs   stores.HabitLogStore
	sleep  stores.SleepStore
	streak *StreakCalculator
	now    func() time.Time
}

// NewStatsService creates a StatsService over the given stores.
func NewStatsService(habits stores.HabitStore, logs stores.HabitLogStore, sleep stores.SleepStore) *StatsService {
	return &StatsService{
		habits: habits,
		logs:   logs,
		sleep:  sleep,
		streak: NewStreakCalculator(habits, logs),
		now:    time.Now,
	}
}

// GetUserStats aggregates the snapshot over the current calendar month.
// A user with no habits or no sleep data gets zero-valued fields; a store
// failure fails the whole aggregation, never a partial result.
func (s *StatsService) GetUserStats(ctx context.Context, userID uint) (*UserStats, error) {
	now := s.now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, -1)
	daysInMonth := endOfMonth.Day()

	totalHabits, err := s.habits.CountByUser(ctx, userID)
	if err != nil {
		return nil, &DependencyError{Op: "user stats", Err: err}
	}

	completed, err := s.logs.CountCompletedInRange(ctx, userID, startOfMonth, endOfMonth)
	if err != nil {
		return nil, &DependencyError{Op: "user stats", Err: err}
	}

	rate := 0
	if totalPossible := totalHabits * int64(daysInMonth); totalPossible > 0 {
		rate = int(math.Round(float64(completed) / float64(totalPossible) * 100))
	}

	avgSleep := 0.0
	if avg, err := s.sleep.AverageDurationHours(ctx, userID); err != nil {
		return nil, &DependencyError{Op: "user stats", Err: err}
	} else if avg != nil {
		avgSleep = *avg
	}

	streak, err := s.streak.CurrentStreak(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		TotalHabits:        totalHabits,
		CompletedThisMonth: completed,
		CompletionRate:     rate,
		AverageSleep:       avgSleep,
		CurrentStreak:      streak,
	}, nil
}
