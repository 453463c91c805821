package models

import "time"

// Exatamente um StaffMember por usuário (UserID com índice único).
type StaffMember struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	Title  string `gorm:"size:100" json:"title"`
	Color  string `gorm:"size:20" json:"color"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
