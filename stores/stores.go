// Package stores defines the persistence capabilities consumed by the
// analytics services, plus GORM-backed implementations. Services depend on
// the interfaces only, so tests substitute in-memory fakes.
package stores

import (
	"context"
	"time"

	"github.com/helthtracer/backend/models"
)

// DateLayout is the canonical calendar-date format used for DATE columns.
// String comparison avoids timezone/type mismatches with the DATE type.
const DateLayout = "2006-01-02"

// HabitStore persists habits owned by users.
type HabitStore interface {
	FindByID(ctx context.Context, id uint) (*models.Habit, error)
	// ListByUser returns the user's habits ordered by creation time
	// ascending, oldest first.
	ListByUser(ctx context.Context, userID uint) ([]models.Habit, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	Create(ctx context.Context, habit *models.Habit) error
	Update(ctx context.Context, habit *models.Habit) error
	Delete(ctx context.Context, id uint) error
}

// HabitLogStore persists per-day habit status records.
type HabitLogStore interface {
	// FindByHabitAndDate returns nil without error when no log exists.
	FindByHabitAndDate(ctx context.Context, habitID uint, date time.Time) (*models.HabitLog, error)
	FindByUserAndDateRange(ctx context.Context, userID uint, start, end time.Time) ([]models.HabitLog, error)
	// CountCompletedInRange counts the user's logs with status COMPLETED
	// whose date falls inside [start, end] inclusive.
	CountCompletedInRange(ctx context.Context, userID uint, start, end time.Time) (int64, error)
	// Upsert creates the log or overwrites the status of the existing row
	// for the same (habit_id, date). ID and date are immutable.
	Upsert(ctx context.Context, log *models.HabitLog) error
	// DeleteByHabitAndDate removes the matching record; absent rows are a
	// no-op, not an error.
	DeleteByHabitAndDate(ctx context.Context, habitID uint, date time.Time) error
}

// SleepStore persists sleep sessions.
type SleepStore interface {
	// AverageDurationHours averages (end - start) in hours over the user's
	// closed sessions. Returns nil when no closed session exists.
	AverageDurationHours(ctx context.Context, userID uint) (*float64, error)
	Create(ctx context.Context, session *models.SleepSession) error
	Update(ctx context.Context, session *models.SleepSession) error
	FindByID(ctx context.Context, id uint) (*models.SleepSession, error)
	// ListByUser returns sessions newest first.
	ListByUser(ctx context.Context, userID uint) ([]models.SleepSession, error)
}
