package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Referência pública usada pelo autoatendimento e pelas notificações.
	PublicRef string `gorm:"size:36;uniqueIndex" json:"public_ref"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`
	CustomerEmail string `gorm:"size:100" json:"customer_email"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StaffMemberID *uint        `gorm:"index" json:"staff_member_id"`
	StaffMember   *StaffMember `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff_member,omitempty"`

	LocationID *uint     `json:"location_id"`
	Location   *Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"location,omitempty"`

	ScheduledAt time.Time `gorm:"index" json:"scheduled_at"`
	EndTime     time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'new'" json:"status"`

	PaymentStatus      string `gorm:"size:20;default:'not_required'" json:"payment_status"`
	PaymentAmountCents int64  `json:"payment_amount_cents"`
	PaymentRef         string `gorm:"size:100" json:"payment_ref"`

	// Decisão de reembolso registrada no cancelamento; a execução é
	// acompanhada separadamente em RefundStatus.
	RefundStatus       string `gorm:"size:20;default:'none'" json:"refund_status"`
	RefundAmountCents  int64  `json:"refund_amount_cents"`
	RefundManualReview bool   `json:"refund_manual_review"`

	Notes      string `gorm:"size:255" json:"notes"`
	StaffNotes string `gorm:"size:255" json:"staff_notes"`

	CancellationReason string `gorm:"size:255" json:"cancellation_reason"`
	LateCancellation   bool   `json:"late_cancellation"`

	CheckedInAt  *time.Time `json:"checked_in_at"`
	CheckedOutAt *time.Time `json:"checked_out_at"`
	CancelledAt  *time.Time `json:"cancelled_at"`
	CompletedAt  *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
