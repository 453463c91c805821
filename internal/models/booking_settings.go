package models

import "time"

// Registro único de configuração (ID 1), alterado apenas por
// administradores via settings.Store.
type BookingSettings struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BufferMinutes  int `gorm:"default:0" json:"buffer_minutes"`
	MinNoticeHours int `gorm:"default:2" json:"min_notice_hours"`
	MaxAdvanceDays int `gorm:"default:60" json:"max_advance_days"`

	RequireApproval bool `gorm:"default:false" json:"require_approval"`

	AllowCancellation       bool `gorm:"default:true" json:"allow_cancellation"`
	CancellationNoticeHours int  `gorm:"default:0" json:"cancellation_notice_hours"`

	AllowShiftOverlap bool `gorm:"default:false" json:"allow_shift_overlap"`

	Timezone string `gorm:"size:50" json:"timezone"`

	UpdatedAt time.Time `json:"updated_at"`
}
