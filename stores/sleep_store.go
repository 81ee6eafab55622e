package stores

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/helthtracer/backend/models"
)

// GormSleepStore is the MySQL-backed SleepStore.
type GormSleepStore struct {
	db *gorm.DB
}

// NewGormSleepStore creates a SleepStore over the given gorm connection.
func NewGormSleepStore(db *gorm.DB) *GormSleepStore {
	return &GormSleepStore{db: db}
}

// AverageDurationHours averages closed-session durations in SQL. Open
// sessions (NULL end_time) never contribute.
func (s *GormSleepStore) AverageDurationHours(ctx context.Context, userID uint) (*float64, error) {
	var avg sql.NullFloat64
	err := s.db.WithContext(ctx).
		Raw("SELECT AVG(TIMESTAMPDIFF(SECOND, start_time, end_time)) / 3600 FROM sleep_sessions WHERE user_id = ? AND end_time IS NOT NULL", userID).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	if !avg.Valid {
		return nil, nil
	}
	return &avg.Float64, nil
}

func (s *GormSleepStore) Create(ctx context.Context, session *models.SleepSession) error {
	return s.db.WithContext(ctx).Create(session).Error
}

func (s *GormSleepStore) Update(ctx context.Context, session *models.SleepSession) error {
	return s.db.WithContext(ctx).Save(session).Error
}

func (s *GormSleepStore) FindByID(ctx context.Context, id uint) (*models.SleepSession, error) {
	var session models.SleepSession
	if err := s.db.WithContext(ctx).First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (s *GormSleepStore) ListByUser(ctx context.Context, userID uint) ([]models.SleepSession, error) {
	var sessions []models.SleepSession
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
