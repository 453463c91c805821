package dto

import (
	"time"

	"github.com/BruksfildServices01/studio-console/internal/models"
)

type AppointmentListDTO struct {
	ID            uint      `json:"id"`
	PublicRef     string    `json:"public_ref"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customer_name"`
	ServiceName   string    `json:"service_name"`
	StaffName     string    `json:"staff_name"`
	PaymentStatus string    `json:"payment_status"`
}

func ToAppointmentList(appointments []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(appointments))
	for i := range appointments {
		ap := &appointments[i]

		staffName := ""
		if ap.StaffMember != nil {
			staffName = ap.StaffMember.User.Name
		}

		out = append(out, AppointmentListDTO{
			ID:            ap.ID,
			PublicRef:     ap.PublicRef,
			ScheduledAt:   ap.ScheduledAt,
			EndTime:       ap.EndTime,
			Status:        ap.Status,
			CustomerName:  ap.CustomerName,
			ServiceName:   ap.Service.Name,
			StaffName:     staffName,
			PaymentStatus: ap.PaymentStatus,
		})
	}
	return out
}
