package models

import "time"

// No máximo uma solicitação pendente por agendamento (índice parcial
// criado em db.NewDB).
type RescheduleRequest struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	AppointmentID uint        `gorm:"index" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ProposedAt time.Time `json:"proposed_at"`
	Reason     string    `gorm:"size:255" json:"reason"`
	Status     string    `gorm:"size:20;default:'pending'" json:"status"`
	AdminNotes string    `gorm:"size:255" json:"admin_notes"`

	ResolvedAt *time.Time `json:"resolved_at"`
	CreatedAt  time.Time  `json:"created_at"`
}
