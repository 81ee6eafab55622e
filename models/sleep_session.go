package models

import "time"

// SleepSession is a recorded sleep interval. An open session has no end
// time and is excluded from duration averaging.
type SleepSession struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	StartTime time.Time  `gorm:"not null" json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// DurationHours returns the session length in hours, or 0 for open sessions.
func (s *SleepSession) DurationHours() float64 {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime).Hours()
}
