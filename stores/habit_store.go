package stores

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/helthtracer/backend/models"
)

// GormHabitStore is the MySQL-backed HabitStore.
type GormHabitStore struct {
	db *gorm.DB
}

// NewGormHabitStore creates a HabitStore over the given gorm connection.
func NewGormHabitStore(db *gorm.DB) *GormHabitStore {
	return &GormHabitStore{db: db}
}

func (s *GormHabitStore) FindByID(ctx context.Context, id uint) (*models.Habit, error) {
	var habit models.Habit
	if err := s.db.WithContext(ctx).First(&habit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &habit, nil
}

func (s *GormHabitStore) ListByUser(ctx context.Context, userID uint) ([]models.Habit, error) {
	var habits []models.Habit
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&habits).Error
	if err != nil {
		return nil, err
	}
	return habits, nil
}

func (s *GormHabitStore) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Habit{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (s *GormHabitStore) Create(ctx context.Context, habit *models.Habit) error {
	return s.db.WithContext(ctx).Create(habit).Error
}

func (s *GormHabitStore) Update(ctx context.Context, habit *models.Habit) error {
	return s.db.WithContext(ctx).Save(habit).Error
}

// Delete removes the habit and its logs.
func (s *GormHabitStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", id).Delete(&models.HabitLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Habit{}, id).Error
	})
}
