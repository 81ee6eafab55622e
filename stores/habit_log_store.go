package stores

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/helthtracer/backend/models"
)

// GormHabitLogStore is the MySQL-backed HabitLogStore.
type GormHabitLogStore struct {
	db *gorm.DB
}

// NewGormHabitLogStore creates a HabitLogStore over the given gorm connection.
func NewGormHabitLogStore(db *gorm.DB) *GormHabitLogStore {
	return &GormHabitLogStore{db: db}
}

func (s *GormHabitLogStore) FindByHabitAndDate(ctx context.Context, habitID uint, date time.Time) (*models.HabitLog, error) {
	var log models.HabitLog
	err := s.db.WithContext(ctx).
		Where("habit_id = ? AND date = ?", habitID, date.Format(DateLayout)).
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

func (s *GormHabitLogStore) FindByUserAndDateRange(ctx context.Context, userID uint, start, end time.Time) ([]models.HabitLog, error) {
	var logs []models.HabitLog
	err := s.db.WithContext(ctx).
		Joins("JOIN habits ON habits.id = habit_logs.habit_id").
		Where("habits.user_id = ? AND habit_logs.date BETWEEN ? AND ?",
			userID, start.Format(DateLayout), end.Format(DateLayout)).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *GormHabitLogStore) CountCompletedInRange(ctx context.Context, userID uint, start, end time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.HabitLog{}).
		Joins("JOIN habits ON habits.id = habit_logs.habit_id").
		Where("habits.user_id = ? AND habit_logs.date BETWEEN ? AND ? AND habit_logs.status = ?",
			userID, start.Format(DateLayout), end.Format(DateLayout), models.StatusCompleted).
		Count(&count).Error
	return count, err
}

// Upsert relies on the (habit_id, date) unique index so concurrent writers
// for the same pair converge on a single row.
func (s *GormHabitLogStore) Upsert(ctx context.Context, log *models.HabitLog) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "habit_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":     log.Status,
			"updated_at": time.Now(),
		}),
	}).Create(log).Error
}

func (s *GormHabitLogStore) DeleteByHabitAndDate(ctx context.Context, habitID uint, date time.Time) error {
	return s.db.WithContext(ctx).
		Where("habit_id = ? AND date = ?", habitID, date.Format(DateLayout)).
		Delete(&models.HabitLog{}).Error
}
