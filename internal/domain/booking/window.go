package booking

import (
	"iter"
	"time"

	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
)

// ===============================
// Time Intervals
// ===============================

// Interval é um intervalo semiaberto [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// OverlapsAny testa o candidato expandido pelo buffer dos dois lados
// contra os intervalos ocupados.
func OverlapsAny(candidate Interval, buffer time.Duration, busy []Interval) bool {
	probe := Interval{
		Start: candidate.Start.Add(-buffer),
		End:   candidate.End.Add(buffer),
	}

	for _, b := range busy {
		if probe.Overlaps(b) {
			return true
		}
	}
	return false
}

// ===============================
// Working Window
// ===============================

// DayWindow ancora os horários "15:04" da linha de disponibilidade na
// data concreta. ok=false quando o dia está fechado (horários vazios ou
// malformados).
func DayWindow(day *models.Availability, date time.Time) (Interval, bool) {
	if day == nil || day.StartTime == "" || day.EndTime == "" {
		return Interval{}, false
	}

	start, err := time.Parse("15:04", day.StartTime)
	if err != nil {
		return Interval{}, false
	}
	end, err := time.Parse("15:04", day.EndTime)
	if err != nil {
		return Interval{}, false
	}

	loc := date.Location()
	anchor := func(t time.Time) time.Time {
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	win := Interval{Start: anchor(start), End: anchor(end)}
	if !win.End.After(win.Start) {
		return Interval{}, false
	}
	return win, true
}

// CheckNotice aplica antecedência mínima e limite máximo de antecedência.
func CheckNotice(start time.Time, now time.Time, st *models.BookingSettings) error {
	minNotice := time.Duration(st.MinNoticeHours) * time.Hour
	if start.Before(now.Add(minNotice)) {
		return httperr.ErrBusiness("slot_unavailable")
	}

	if st.MaxAdvanceDays > 0 && start.After(now.AddDate(0, 0, st.MaxAdvanceDays)) {
		return httperr.ErrBusiness("slot_unavailable")
	}
	return nil
}

// CheckWindow verifica se [start, start+duration] cabe no expediente do dia.
func CheckWindow(day *models.Availability, start time.Time, duration time.Duration) error {
	win, ok := DayWindow(day, start)
	if !ok {
		return httperr.ErrBusiness("slot_unavailable")
	}

	end := start.Add(duration)
	if start.Before(win.Start) || end.After(win.End) {
		return httperr.ErrBusiness("slot_unavailable")
	}
	return nil
}

// CheckSlot aplica todas as regras a um candidato: antecedência,
// expediente e conflito com intervalos ocupados expandidos pelo buffer.
func CheckSlot(
	day *models.Availability,
	start time.Time,
	duration time.Duration,
	now time.Time,
	st *models.BookingSettings,
	busy []Interval,
) error {

	if err := CheckNotice(start, now, st); err != nil {
		return err
	}
	if err := CheckWindow(day, start, duration); err != nil {
		return err
	}

	candidate := Interval{Start: start, End: start.Add(duration)}
	buffer := time.Duration(st.BufferMinutes) * time.Minute
	if OverlapsAny(candidate, buffer, busy) {
		return httperr.ErrBusiness("slot_unavailable")
	}
	return nil
}

func IsBookable(
	day *models.Availability,
	start time.Time,
	duration time.Duration,
	now time.Time,
	st *models.BookingSettings,
	busy []Interval,
) bool {
	return CheckSlot(day, start, duration, now, st, busy) == nil
}

// ===============================
// Weekly Availability
// ===============================

// Week é a disponibilidade semanal completa de um membro da equipe.
type Week []models.Availability

func (w Week) Day(weekday time.Weekday) *models.Availability {
	for i := range w {
		if w[i].Weekday == int(weekday) {
			return &w[i]
		}
	}
	return nil
}

// TimeSlot é a forma serializada de um horário livre.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// BookableSlots enumera os inícios de slot livres em [rangeStart,
// rangeEnd), caminhando o expediente de cada dia em incrementos de
// duration e filtrando por CheckSlot. Consulta pura e reiniciável:
// percorrer duas vezes produz os mesmos elementos; reservar um horário
// é uma ação separada.
func BookableSlots(
	week Week,
	rangeStart time.Time,
	rangeEnd time.Time,
	duration time.Duration,
	now time.Time,
	st *models.BookingSettings,
	busy []Interval,
) iter.Seq[time.Time] {

	return func(yield func(time.Time) bool) {
		if duration <= 0 || !rangeEnd.After(rangeStart) {
			return
		}

		loc := rangeStart.Location()
		day := time.Date(
			rangeStart.Year(), rangeStart.Month(), rangeStart.Day(),
			0, 0, 0, 0,
			loc,
		)

		for ; day.Before(rangeEnd); day = day.AddDate(0, 0, 1) {
			av := week.Day(day.Weekday())

			win, ok := DayWindow(av, day)
			if !ok {
				continue
			}

			for cur := win.Start; !cur.Add(duration).After(win.End); cur = cur.Add(duration) {
				if cur.Before(rangeStart) || !cur.Before(rangeEnd) {
					continue
				}
				if CheckSlot(av, cur, duration, now, st, busy) != nil {
					continue
				}
				if !yield(cur) {
					return
				}
			}
		}
	}
}

// ===============================
// Seeding
// ===============================

const (
	DefaultOpenTime  = "09:00"
	DefaultCloseTime = "17:00"
)

// DefaultWeek monta a disponibilidade inicial de um novo membro da
// equipe: segunda a sexta em uma única janela, fim de semana fechado.
func DefaultWeek(staffID uint, openTime, closeTime string) []models.Availability {
	if openTime == "" {
		openTime = DefaultOpenTime
	}
	if closeTime == "" {
		closeTime = DefaultCloseTime
	}

	week := make([]models.Availability, 0, 7)
	for wd := 0; wd < 7; wd++ {
		av := models.Availability{
			StaffMemberID: staffID,
			Weekday:       wd,
		}
		if wd >= 1 && wd <= 5 {
			av.StartTime = openTime
			av.EndTime = closeTime
		}
		week = append(week, av)
	}
	return week
}
