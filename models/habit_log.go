package models

import "time"

// Habit log status values observed by the analytics engine. Status is a
// free-form string; only StatusCompleted has aggregation semantics.
const StatusCompleted = "COMPLETED"

// HabitLog records a habit's status on one calendar date. At most one row
// exists per (habit_id, date), enforced by the unique composite index.
type HabitLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	HabitID   uint      `gorm:"index;index:idx_habit_date,unique;not null" json:"habit_id"`
	Date      time.Time `gorm:"index:idx_habit_date,unique;type:date;not null" json:"date"`
	Status    string    `gorm:"size:50" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
