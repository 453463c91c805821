package models

import "time"

// Uma linha por dia da semana por membro da equipe (sempre 7 linhas).
// Horários vazios = dia indisponível; se um estiver preenchido, o outro
// também precisa estar.
type Availability struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	StaffMemberID uint `gorm:"index:idx_availability_staff_weekday,unique" json:"staff_member_id"`
	Weekday       int  `gorm:"index:idx_availability_staff_weekday,unique" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
