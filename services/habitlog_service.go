package services

import (
	"context"
	"time"

	"github.com/helthtracer/backend/models"
	"github.com/helthtracer/backend/stores"
)

// HabitLogService commits per-day habit statuses with create-or-update
// semantics: at most one log row exists per (habit, date).
type HabitLogService struct {
	habits stores.HabitStore
	logs   stores.HabitLogStore
}

// NewHabitLogService creates a HabitLogService over the given stores.
func NewHabitLogService(habits stores.HabitStore, logs stores.HabitLogStore) *HabitLogService {
	return &HabitLogService{habits: habits, logs: logs}
}

// Upsert records status for (habitID, date). A first call for the pair
// creates the log; later calls overwrite the status in place. Repeated
// identical calls are idempotent.
func (s *HabitLogService) Upsert(ctx context.Context, habitID uint, date time.Time, status string) (*models.HabitLog, error) {
	if habitID == 0 {
		return nil, &ValidationError{Field: "habit_id", Reason: "required"}
	}
	if date.IsZero() {
		return nil, &ValidationError{Field: "date", Reason: "required"}
	}
	if status == "" {
		return nil, &ValidationError{Field: "status", Reason: "required"}
	}

	habit, err := s.habits.FindByID(ctx, habitID)
	if err != nil {
		return nil, &DependencyError{Op: "upsert habit log", Err: err}
	}
	if habit == nil {
		return nil, &NotFoundError{Resource: "habit", ID: habitID}
	}

	day := truncateToDay(date)
	log := models.HabitLog{HabitID: habitID, Date: day, Status: status}
	if err := s.logs.Upsert(ctx, &log); err != nil {
		return nil, &DependencyError{Op: "upsert habit log", Err: err}
	}

	// Re-read so the caller sees the canonical row: on a conflict-update
	// the insert path does not report the surviving row's id.
	saved, err := s.logs.FindByHabitAndDate(ctx, habitID, day)
	if err != nil {
		return nil, &DependencyError{Op: "upsert habit log", Err: err}
	}
	if saved == nil {
		return &log, nil
	}
	return saved, nil
}

// Delete removes the log for (habitID, date). Deleting a record that does
// not exist is a no-op, not an error.
func (s *HabitLogService) Delete(ctx context.Context, habitID uint, date time.Time) error {
	if habitID == 0 {
		return &ValidationError{Field: "habit_id", Reason: "required"}
	}
	if date.IsZero() {
		return &ValidationError{Field: "date", Reason: "required"}
	}
	if err := s.logs.DeleteByHabitAndDate(ctx, habitID, truncateToDay(date)); err != nil {
		return &DependencyError{Op: "delete habit log", Err: err}
	}
	return nil
}

// ListMonth returns the user's habit logs for one calendar month.
func (s *HabitLogService) ListMonth(ctx context.Context, userID uint, year int, month time.Month) ([]models.HabitLog, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, -1)
	logs, err := s.logs.FindByUserAndDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, &DependencyError{Op: "list habit logs", Err: err}
	}
	return logs, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
