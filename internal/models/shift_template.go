package models

import "time"

type ShiftTemplate struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	ShiftType string `gorm:"size:20;default:'regular'" json:"shift_type"`
	Color     string `gorm:"size:20" json:"color"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DurationMinutes é sempre derivado dos horários, nunca armazenado.
func (t *ShiftTemplate) DurationMinutes() int {
	return clockSpanMinutes(t.StartTime, t.EndTime)
}

func clockSpanMinutes(startTime, endTime string) int {
	s, err := time.Parse("15:04", startTime)
	if err != nil {
		return 0
	}
	e, err := time.Parse("15:04", endTime)
	if err != nil {
		return 0
	}
	return int(e.Sub(s).Minutes())
}
