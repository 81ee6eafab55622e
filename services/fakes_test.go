package services

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/helthtracer/backend/models"
	"github.com/helthtracer/backend/stores"
)

// In-memory store fakes. Each carries an injectable err so tests can force
// dependency failures on any call.

type fakeHabitStore struct {
	habits map[uint]models.Habit
	err    error
}

func newFakeHabitStore() *fakeHabitStore {
	return &fakeHabitStore{habits: map[uint]models.Habit{}}
}

func (f *fakeHabitStore) add(id, userID uint, createdAt time.Time) {
	f.habits[id] = models.Habit{
		ID:        id,
		UserID:    userID,
		Title:     "habit " + strconv.Itoa(int(id)),
		CreatedAt: createdAt,
	}
}

func (f *fakeHabitStore) FindByID(_ context.Context, id uint) (*models.Habit, error) {
	if f.err != nil {
		return nil, f.err
	}
	if h, ok := f.habits[id]; ok {
		return &h, nil
	}
	return nil, nil
}

func (f *fakeHabitStore) ListByUser(_ context.Context, userID uint) ([]models.Habit, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Habit
	for _, h := range f.habits {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeHabitStore) CountByUser(ctx context.Context, userID uint) (int64, error) {
	habits, err := f.ListByUser(ctx, userID)
	return int64(len(habits)), err
}

func (f *fakeHabitStore) Create(_ context.Context, habit *models.Habit) error {
	if f.err != nil {
		return f.err
	}
	f.habits[habit.ID] = *habit
	return nil
}

func (f *fakeHabitStore) Update(ctx context.Context, habit *models.Habit) error {
	return f.Create(ctx, habit)
}

func (f *fakeHabitStore) Delete(_ context.Context, id uint) error {
	if f.err != nil {
		return f.err
	}
	delete(f.habits, id)
	return nil
}

type fakeHabitLogStore struct {
	habits *fakeHabitStore
	logs   map[string]models.HabitLog
	nextID uint
	err    error
}

func newFakeHabitLogStore(habits *fakeHabitStore) *fakeHabitLogStore {
	return &fakeHabitLogStore{habits: habits, logs: map[string]models.HabitLog{}, nextID: 1}
}

func key(habitID uint, date time.Time) string {
	return strconv.Itoa(int(habitID)) + "#" + date.Format(stores.DateLayout)
}

func (f *fakeHabitLogStore) FindByHabitAndDate(_ context.Context, habitID uint, date time.Time) (*models.HabitLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	if log, ok := f.logs[key(habitID, date)]; ok {
		return &log, nil
	}
	return nil, nil
}

func (f *fakeHabitLogStore) FindByUserAndDateRange(_ context.Context, userID uint, start, end time.Time) ([]models.HabitLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.HabitLog
	for _, log := range f.logs {
		habit, ok := f.habits.habits[log.HabitID]
		if !ok || habit.UserID != userID {
			continue
		}
		if log.Date.Before(start) || log.Date.After(end) {
			continue
		}
		out = append(out, log)
	}
	return out, nil
}

func (f *fakeHabitLogStore) CountCompletedInRange(ctx context.Context, userID uint, start, end time.Time) (int64, error) {
	logs, err := f.FindByUserAndDateRange(ctx, userID, start, end)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, log := range logs {
		if log.Status == models.StatusCompleted {
			n++
		}
	}
	return n, nil
}

func (f *fakeHabitLogStore) Upsert(_ context.Context, log *models.HabitLog) error {
	if f.err != nil {
		return f.err
	}
	k := key(log.HabitID, log.Date)
	if existing, ok := f.logs[k]; ok {
		existing.Status = log.Status
		f.logs[k] = existing
		return nil
	}
	log.ID = f.nextID
	f.nextID++
	f.logs[k] = *log
	return nil
}

func (f *fakeHabitLogStore) DeleteByHabitAndDate(_ context.Context, habitID uint, date time.Time) error {
	if f.err != nil {
		return f.err
	}
	delete(f.logs, key(habitID, date))
	return nil
}

type fakeSleepStore struct {
	sessions []models.SleepSession
	err      error
}

func (f *fakeSleepStore) AverageDurationHours(_ context.Context, userID uint) (*float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	var sum float64
	var n int
	for _, s := range f.sessions {
		if s.UserID != userID || s.EndTime == nil {
			continue
		}
		sum += s.EndTime.Sub(s.StartTime).Hours()
		n++
	}
	if n == 0 {
		return nil, nil
	}
	avg := sum / float64(n)
	return &avg, nil
}

func (f *fakeSleepStore) Create(_ context.Context, session *models.SleepSession) error {
	if f.err != nil {
		return f.err
	}
	session.ID = uint(len(f.sessions) + 1)
	f.sessions = append(f.sessions, *session)
	return nil
}

func (f *fakeSleepStore) Update(_ context.Context, session *models.SleepSession) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.sessions {
		if f.sessions[i].ID == session.ID {
			f.sessions[i] = *session
			return nil
		}
	}
	return nil
}

func (f *fakeSleepStore) FindByID(_ context.Context, id uint) (*models.SleepSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, s := range f.sessions {
		if s.ID == id {
			session := s
			return &session, nil
		}
	}
	return nil, nil
}

func (f *fakeSleepStore) ListByUser(_ context.Context, userID uint) ([]models.SleepSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.SleepSession
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}
