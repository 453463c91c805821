package models

import "time"

type Service struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Category    string `gorm:"size:50" json:"category"`

	DurationMin int    `json:"duration_min"`
	PriceCents  *int64 `json:"price_cents"`

	RequiresPayment bool `gorm:"default:false" json:"requires_payment"`

	// Campos de política presentes em todo serviço; apenas o subconjunto
	// relevante para a política ativa é interpretado.
	CancellationPolicy      string `gorm:"size:20;default:'full_refund'" json:"cancellation_policy"`
	CancellationWindowHours int    `gorm:"default:24" json:"cancellation_window_hours"`
	RefundPercentage        int    `gorm:"default:100" json:"refund_percentage"`
	DepositPercentage       int    `gorm:"default:0" json:"deposit_percentage"`

	ImageURL string `gorm:"size:255" json:"image_url"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
