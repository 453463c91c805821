package schedule

import "github.com/BruksfildServices01/studio-console/internal/models"

// ===============================
// Summary
// ===============================

type Summary struct {
	TotalShifts        int     `json:"total_shifts"`
	TotalHours         float64 `json:"total_hours"`
	EmployeesScheduled int     `json:"employees_scheduled"`
	PendingSwaps       int     `json:"pending_swaps"`
}

// Summarize agrega os turnos de um período. Turnos cancelados ficam de
// fora dos totais, pedidos de troca em aberto contam à parte.
func Summarize(entries []models.ScheduleEntry) Summary {
	var s Summary
	staff := make(map[uint]struct{})

	for i := range entries {
		e := &entries[i]

		if e.Status == EntryStatusSwapRequested {
			s.PendingSwaps++
		}
		if e.Status == EntryStatusCancelled {
			continue
		}

		s.TotalShifts++
		s.TotalHours += float64(e.DurationMinutes()) / 60.0
		staff[e.StaffMemberID] = struct{}{}
	}

	s.EmployeesScheduled = len(staff)
	return s
}
