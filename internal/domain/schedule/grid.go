package schedule

import "time"

// ===============================
// Month Grid
// ===============================

// MonthGrid devolve os dias do calendário mensal em semanas completas:
// do domingo na semana do dia 1 ao sábado na semana do último dia.
// O tamanho é sempre múltiplo de 7 e cada dia do mês aparece uma vez.
func MonthGrid(year int, month time.Month, loc *time.Location) []time.Time {
	if loc == nil {
		loc = time.UTC
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	gridStart := first.AddDate(0, 0, -int(first.Weekday()))
	gridEnd := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	days := make([]time.Time, 0, 42)
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
