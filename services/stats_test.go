package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helthtracer/backend/models"
)

func newStatsFixture(now time.Time) (*StatsService, *fakeHabitStore, *fakeHabitLogStore, *fakeSleepStore) {
	habits := newFakeHabitStore()
	logs := newFakeHabitLogStore(habits)
	sleep := &fakeSleepStore{}
	svc := NewStatsService(habits, logs, sleep)
	svc.now = func() time.Time { return now }
	return svc, habits, logs, sleep
}

func TestStats_NoHabitsNoData(t *testing.T) {
	svc, _, _, _ := newStatsFixture(day(2024, time.June, 15))

	stats, err := svc.GetUserStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalHabits)
	assert.Equal(t, int64(0), stats.CompletedThisMonth)
	assert.Equal(t, 0, stats.CompletionRate, "no division by zero when totalPossible is 0")
	assert.Equal(t, 0.0, stats.AverageSleep)
	assert.Equal(t, 0, stats.CurrentStreak)
}

func TestStats_CompletionRateRounded(t *testing.T) {
	// June has 30 days: 2 habits, 15 COMPLETED logs -> round(15/60*100) = 25
	now := day(2024, time.June, 20)
	svc, habits, logs, _ := newStatsFixture(now)
	habits.add(1, 1, day(2024, time.January, 1))
	habits.add(2, 1, day(2024, time.January, 1))

	for i := 1; i <= 15; i++ {
		completeDay(t, logs, 1, day(2024, time.June, i))
	}

	stats, err := svc.GetUserStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalHabits)
	assert.Equal(t, int64(15), stats.CompletedThisMonth)
	assert.Equal(t, 25, stats.CompletionRate)
}

func TestStats_CompletedCountsCurrentMonthOnly(t *testing.T) {
	now := day(2024, time.June, 20)
	svc, habits, logs, _ := newStatsFixture(now)
	habits.add(1, 1, day(2024, time.January, 1))

	completeDay(t, logs, 1, day(2024, time.May, 31))
	completeDay(t, logs, 1, day(2024, time.June, 1))
	completeDay(t, logs, 1, day(2024, time.June, 30))
	completeDay(t, logs, 1, day(2024, time.July, 1))

	stats, err := svc.GetUserStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.CompletedThisMonth)
}

func TestStats_NonCompletedStatusExcluded(t *testing.T) {
	now := day(2024, time.June, 20)
	svc, habits, logs, _ := newStatsFixture(now)
	habits.add(1, 1, day(2024, time.January, 1))

	completeDay(t, logs, 1, day(2024, time.June, 1))
	require.NoError(t, logs.Upsert(context.Background(), &models.HabitLog{
		HabitID: 1, Date: day(2024, time.June, 2), Status: "SKIPPED",
	}))

	stats, err := svc.GetUserStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.CompletedThisMonth)
}

func TestStats_AverageSleepEightHours(t *testing.T) {
	svc, _, _, sleep := newStatsFixture(day(2024, time.June, 15))
	start := time.Date(2024, time.January, 1, 22, 0, 0, 0, time.Local)
	end := time.Date(2024, time.January, 2, 6, 0, 0, 0, time.Local)
	sleep.sessions = append(sleep.sessions, models.SleepSession{
		ID: 1, UserID: 1, StartTime: start, EndTime: &end,
	})

	stats, err := svc.GetUserStats(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, stats.AverageSleep, 1e-9)
}

func TestStats_OpenSleepSessionsExcluded(t *testing.T) {
	svc, _, _, sleep := newStatsFixture(day(2024, time.June, 15))
	sleep.sessions = append(sleep.sessions, models.SleepSession{
		ID: 1, UserID: 1, StartTime: time.Date(2024, time.January, 1, 22, 0, 0, 0, time.Local),
	})

	stats, err := svc.GetUserStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.AverageSleep)
}

func TestStats_StreakIncluded(t *testing.T) {
	now := day(2024, time.June, 15)
	svc, habits, logs, _ := newStatsFixture(now)
	habits.add(1, 1, day(2024, time.June, 1))

	for i := 0; i < 3; i++ {
		completeDay(t, logs, 1, now.AddDate(0, 0, -i))
	}

	stats, err := svc.GetUserStats(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.CurrentStreak)
}

func TestStats_AllOrNothingOnStoreFailure(t *testing.T) {
	svc, habits, _, _ := newStatsFixture(day(2024, time.June, 15))
	habits.err = errors.New("store unreachable")

	stats, err := svc.GetUserStats(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsDependency(err))
	assert.Nil(t, stats, "no partial result on dependency failure")
}

func TestStats_SleepStoreFailureFailsAggregation(t *testing.T) {
	svc, habits, logs, sleep := newStatsFixture(day(2024, time.June, 15))
	habits.add(1, 1, day(2024, time.June, 1))
	completeDay(t, logs, 1, day(2024, time.June, 15))
	sleep.err = errors.New("timeout")

	stats, err := svc.GetUserStats(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsDependency(err))
	assert.Nil(t, stats)
}
