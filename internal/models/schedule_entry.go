package models

import "time"

// Turno concreto de um membro da equipe em uma única data do calendário.
type ScheduleEntry struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	StaffMemberID uint        `gorm:"index:idx_schedule_entries_staff_date" json:"staff_member_id"`
	StaffMember   StaffMember `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"staff_member"`

	Date      time.Time `gorm:"type:date;index:idx_schedule_entries_staff_date" json:"date"`
	StartTime string    `gorm:"size:5;not null" json:"start_time"`
	EndTime   string    `gorm:"size:5;not null" json:"end_time"`

	ShiftType string `gorm:"size:20;default:'regular'" json:"shift_type"`
	Status    string `gorm:"size:20;default:'scheduled'" json:"status"`
	Color     string `gorm:"size:20" json:"color"`

	LocationID *uint     `json:"location_id"`
	Location   *Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"location,omitempty"`

	TemplateID *uint          `json:"template_id"`
	Template   *ShiftTemplate `gorm:"foreignKey:TemplateID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *ScheduleEntry) DurationMinutes() int {
	return clockSpanMinutes(e.StartTime, e.EndTime)
}
