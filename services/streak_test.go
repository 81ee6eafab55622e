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

func completeDay(t *testing.T, logs *fakeHabitLogStore, habitID uint, date time.Time) {
	t.Helper()
	require.NoError(t, logs.Upsert(context.Background(), &models.HabitLog{
		HabitID: habitID,
		Date:    date,
		Status:  models.StatusCompleted,
	}))
}

func TestStreak_NoHabits(t *testing.T) {
	habits := newFakeHabitStore()
	logs := newFakeHabitLogStore(habits)
	calc := NewStreakCalculator(habits, logs)

	streak, err := calc.CurrentStreak(context.Background(), 1, day(2024, time.June, 15))
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestStreak_NDaysAllCompleted(t *testing.T) {
	today := day(2024, time.June, 15)
	habits := newFakeHabitStore()
	habits.add(1, 1, day(2024, time.June, 1))
	habits.add(2, 1, day(2024, time.June, 1))
	logs := newFakeHabitLogStore(habits)

	// both habits completed for the last 5 days including today
	for i := 0; i < 5; i++ {
		d := today.AddDate(0, 0, -i)
		completeDay(t, logs, 1, d)
		completeDay(t, logs, 2, d)
	}

	calc := NewStreakCalculator(habits, logs)
	streak, err := calc.CurrentStreak(context.Background(), 1, today)
	require.NoError(t, err)
	assert.Equal(t, 5, streak)
}

func TestStreak_IncompleteTodayIsZero(t *testing.T) {
	today := day(2024, time.June, 15)
	habits := newFakeHabitStore()
	habits.add(1, 1, day(2024, time.June, 1))
	logs := newFakeHabitLogStore(habits)

	// long history of completed days, but nothing for today
	for i := 1; i <= 10; i++ {
		completeDay(t, logs, 1, today.AddDate(0, 0, -i))
	}

	calc := NewStreakCalculator(habits, logs)
	streak, err := calc.CurrentStreak(context.Background(), 1, today)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestStreak_StopsAtFirstGap(t *testing.T) {
	today := day(2024, time.June, 15)
	habits := newFakeHabitStore()
	habits.add(1, 1, day(2024, time.June, 1))
	logs := newFakeHabitLogStore(habits)

	completeDay(t, logs, 1, today)
	completeDay(t, logs, 1, today.AddDate(0, 0, -1))
	// gap on June 13
	completeDay(t, logs, 1, today.AddDate(0, 0, -3))
	completeDay(t, logs, 1, today.AddDate(0, 0, -4))

	calc := NewStreakCalculator(habits, logs)
	streak, err := calc.CurrentStreak(context.Background(), 1, today)
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

func TestStreak_PartialDayBreaks(t *testing.T) {
	today := day(2024, time.June, 15)
	habits := newFakeHabitStore()
	habits.add(1, 1, day(2024, time.June, 1))
	habits.add(2, 1, day(2024, time.June, 1))
	logs := newFakeHabitLogStore(habits)

	completeDay(t, logs, 1, today)
	completeDay(t, logs, 2, today)
	// yesterday only habit 1 was completed
	completeDay(t, logs, 1, today.AddDate(0, 0, -1))

	calc := NewStreakCalculator(habits, logs)
	streak, err := calc.CurrentStreak(context.Background(), 1, today)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestStreak_NonCompletedStatusDoesNotCount(t *testing.T) {
	today := day(2024, time.June, 15)
	habits := newFakeHabitStore()
	habits.add(1, 1, day(2024, time.June, 1))
	logs := newFakeHabitLogStore(habits)

	require.NoError(t, logs.Upsert(context.Background(), &models.HabitLog{
		HabitID: 1, Date: today, Status: "SKIPPED",
	}))

	calc := NewStreakCalculator(habits, logs)
	streak, err := calc.CurrentStreak(context.Background(), 1, today)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestStreak_NewHabitDoesNotBreakHistory(t *testing.T) {
	today := day(2024, time.June, 15)
	habits := newFakeHabitStore()
	habits.add(1, 1, day(2024, time.June, 1))
	// created today: carries no requirement for earlier days
	habits.add(2, 1, today)
	logs := newFakeHabitLogStore(habits)

	for i := 0; i < 4; i++ {
		completeDay(t, logs, 1, today.AddDate(0, 0, -i))
	}
	completeDay(t, logs, 2, today)

	calc := NewStreakCalculator(habits, logs)
	streak, err := calc.CurrentStreak(context.Background(), 1, today)
	require.NoError(t, err)
	assert.Equal(t, 4, streak)
}

func TestStreak_StopsBeforeEarliestHabitCreation(t *testing.T) {
	today := day(2024, time.June, 5)
	habits := newFakeHabitStore()
	habits.add(1, 1, day(2024, time.June, 3))
	logs := newFakeHabitLogStore(habits)

	for d := 3; d <= 5; d++ {
		completeDay(t, logs, 1, day(2024, time.June, d))
	}

	calc := NewStreakCalculator(habits, logs)
	streak, err := calc.CurrentStreak(context.Background(), 1, today)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)
}

func TestStreak_StoreFailure(t *testing.T) {
	habits := newFakeHabitStore()
	habits.err = errors.New("timeout")
	logs := newFakeHabitLogStore(habits)
	calc := NewStreakCalculator(habits, logs)

	_, err := calc.CurrentStreak(context.Background(), 1, day(2024, time.June, 15))
	require.Error(t, err)
	assert.True(t, IsDependency(err))
}
