package dto

import (
	domain "github.com/BruksfildServices01/studio-console/internal/domain/schedule"
	"github.com/BruksfildServices01/studio-console/internal/models"
)

type ScheduleEntryDTO struct {
	ID              uint   `json:"id"`
	StaffMemberID   uint   `json:"staff_member_id"`
	StaffName       string `json:"staff_name"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
	ShiftType       string `json:"shift_type"`
	Status          string `json:"status"`
	Color           string `json:"color"`
}

type ScheduleDayDTO struct {
	Date    string             `json:"date"`
	InMonth bool               `json:"in_month"`
	Entries []ScheduleEntryDTO `json:"entries"`
}

// MonthViewDTO é o quadro mensal completo: semanas inteiras (domingo a
// sábado) com os dias vizinhos marcados fora do mês.
type MonthViewDTO struct {
	Year    int              `json:"year"`
	Month   int              `json:"month"`
	Days    []ScheduleDayDTO `json:"days"`
	Summary domain.Summary   `json:"summary"`
}

func ToScheduleEntry(e *models.ScheduleEntry) ScheduleEntryDTO {
	return ScheduleEntryDTO{
		ID:              e.ID,
		StaffMemberID:   e.StaffMemberID,
		StaffName:       e.StaffMember.User.Name,
		Date:            e.Date.Format("2006-01-02"),
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		DurationMinutes: e.DurationMinutes(),
		ShiftType:       e.ShiftType,
		Status:          e.Status,
		Color:           e.Color,
	}
}
