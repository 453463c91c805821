package schedule

import (
	"time"

	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
)

// ===============================
// Clock spans
// ===============================

func parseClock(s string) (time.Time, error) {
	return time.Parse("15:04", s)
}

// SpanMinutes calcula a duração de um turno em minutos. Turnos de
// duração zero ou negativa (fim antes do início) são inválidos, turnos
// virando a meia-noite não são suportados.
func SpanMinutes(startTime, endTime string) (int, error) {
	start, err := parseClock(startTime)
	if err != nil {
		return 0, httperr.ErrBusiness("validation_error")
	}
	end, err := parseClock(endTime)
	if err != nil {
		return 0, httperr.ErrBusiness("validation_error")
	}

	minutes := int(end.Sub(start).Minutes())
	if minutes <= 0 {
		return 0, httperr.ErrBusiness("validation_error")
	}
	return minutes, nil
}

// SpansOverlap compara dois turnos do mesmo dia como intervalos
// semiabertos. Strings "15:04" comparam na ordem lexicográfica.
func SpansOverlap(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// Conflicts verifica se o turno candidato sobrepõe algum turno já
// colocado no dia. Turnos cancelados não contam.
func Conflicts(entries []models.ScheduleEntry, startTime, endTime string) bool {
	for i := range entries {
		e := &entries[i]
		if e.Status == EntryStatusCancelled {
			continue
		}
		if SpansOverlap(startTime, endTime, e.StartTime, e.EndTime) {
			return true
		}
	}
	return false
}
