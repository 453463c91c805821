package booking

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
)

func testSettings() *models.BookingSettings {
	return &models.BookingSettings{
		ID:             1,
		BufferMinutes:  0,
		MinNoticeHours: 0,
		MaxAdvanceDays: 0,
	}
}

func openDay(weekday int, start, end string) *models.Availability {
	return &models.Availability{
		StaffMemberID: 1,
		Weekday:       weekday,
		StartTime:     start,
		EndTime:       end,
	}
}

func TestIntervalOverlaps_HalfOpen(t *testing.T) {
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	a := Interval{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour)}
	b := Interval{Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)}

	// Fim encostado no início não conta como conflito.
	if a.Overlaps(b) || b.Overlaps(a) {
		t.Fatalf("adjacent intervals must not overlap")
	}

	c := Interval{Start: day.Add(9*time.Hour + 30*time.Minute), End: day.Add(10*time.Hour + 30*time.Minute)}
	if !a.Overlaps(c) {
		t.Fatalf("expected overlap")
	}
}

func TestOverlapsAny_BufferExpandsProbe(t *testing.T) {
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	candidate := Interval{Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)}
	busy := []Interval{
		{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour)},
	}

	if OverlapsAny(candidate, 0, busy) {
		t.Fatalf("adjacent slot must be free without buffer")
	}
	if !OverlapsAny(candidate, 15*time.Minute, busy) {
		t.Fatalf("buffer must block the adjacent slot")
	}
}

func TestDayWindow_Closed(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	cases := []*models.Availability{
		nil,
		openDay(1, "", ""),
		openDay(1, "09:00", ""),
		openDay(1, "9am", "17:00"),
		openDay(1, "17:00", "09:00"),
		openDay(1, "09:00", "09:00"),
	}

	for i, av := range cases {
		if _, ok := DayWindow(av, date); ok {
			t.Fatalf("case %d: expected closed day", i)
		}
	}
}

func TestDayWindow_AnchorsOnDate(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	win, ok := DayWindow(openDay(1, "09:00", "17:00"), date)
	if !ok {
		t.Fatalf("expected open day")
	}
	if !win.Start.Equal(date.Add(9 * time.Hour)) {
		t.Fatalf("expected start 09:00, got %s", win.Start)
	}
	if !win.End.Equal(date.Add(17 * time.Hour)) {
		t.Fatalf("expected end 17:00, got %s", win.End)
	}
}

func TestCheckNotice(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	st := testSettings()
	st.MinNoticeHours = 2
	st.MaxAdvanceDays = 30

	if err := CheckNotice(now.Add(time.Hour), now, st); !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable for short notice, got %v", err)
	}
	if err := CheckNotice(now.AddDate(0, 0, 31), now, st); !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable past advance limit, got %v", err)
	}
	if err := CheckNotice(now.Add(3*time.Hour), now, st); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// MaxAdvanceDays zero desliga o limite superior.
	st.MaxAdvanceDays = 0
	if err := CheckNotice(now.AddDate(0, 0, 365), now, st); err != nil {
		t.Fatalf("unexpected error without advance limit: %v", err)
	}
}

func TestCheckWindow(t *testing.T) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	av := openDay(1, "09:00", "17:00")

	// Termina exatamente no fechamento: cabe.
	if err := CheckWindow(av, date.Add(16*time.Hour), time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Passa do fechamento.
	if err := CheckWindow(av, date.Add(16*time.Hour+30*time.Minute), time.Hour); !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}

	// Antes da abertura.
	if err := CheckWindow(av, date.Add(8*time.Hour), time.Hour); !httperr.IsBusiness(err, "slot_unavailable") {
		t.Fatalf("expected slot_unavailable, got %v", err)
	}
}

func collectSlots(seq func(yield func(time.Time) bool)) []time.Time {
	var out []time.Time
	seq(func(ts time.Time) bool {
		out = append(out, ts)
		return true
	})
	return out
}

func TestBookableSlots_SkipsBusy(t *testing.T) {
	// 2026-03-09 é segunda-feira.
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	week := Week{*openDay(1, "09:00", "12:00")}

	now := day.Add(-24 * time.Hour)
	busy := []Interval{
		{Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)},
	}

	slots := collectSlots(BookableSlots(week, day, day.AddDate(0, 0, 1), time.Hour, now, testSettings(), busy))

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if !slots[0].Equal(day.Add(9 * time.Hour)) {
		t.Fatalf("expected 09:00, got %s", slots[0])
	}
	if !slots[1].Equal(day.Add(11 * time.Hour)) {
		t.Fatalf("expected 11:00, got %s", slots[1])
	}
}

func TestBookableSlots_Restartable(t *testing.T) {
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	week := Week{*openDay(1, "09:00", "12:00")}
	now := day.Add(-24 * time.Hour)

	seq := BookableSlots(week, day, day.AddDate(0, 0, 1), time.Hour, now, testSettings(), nil)

	first := collectSlots(seq)
	second := collectSlots(seq)

	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 slots both passes, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Fatalf("pass mismatch at %d: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestBookableSlots_ClosedDayYieldsNothing(t *testing.T) {
	// Domingo fechado (linha sem horários).
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	week := Week{models.Availability{StaffMemberID: 1, Weekday: 0}}
	now := sunday.Add(-24 * time.Hour)

	slots := collectSlots(BookableSlots(week, sunday, sunday.AddDate(0, 0, 1), time.Hour, now, testSettings(), nil))
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(slots))
	}
}

func TestBookableSlots_BufferShrinksOffer(t *testing.T) {
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	week := Week{*openDay(1, "09:00", "12:00")}
	now := day.Add(-24 * time.Hour)

	st := testSettings()
	st.BufferMinutes = 30

	busy := []Interval{
		{Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)},
	}

	// 09:00 encostaria no ocupado via buffer; 11:00 também. Nada sobra.
	slots := collectSlots(BookableSlots(week, day, day.AddDate(0, 0, 1), time.Hour, now, st, busy))
	if len(slots) != 0 {
		t.Fatalf("expected no slots with buffer, got %d", len(slots))
	}
}

func TestBookableSlots_EarlyStop(t *testing.T) {
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	week := Week{*openDay(1, "09:00", "12:00")}
	now := day.Add(-24 * time.Hour)

	var got []time.Time
	BookableSlots(week, day, day.AddDate(0, 0, 1), time.Hour, now, testSettings(), nil)(func(ts time.Time) bool {
		got = append(got, ts)
		return len(got) < 1
	})

	if len(got) != 1 {
		t.Fatalf("expected early stop after 1 slot, got %d", len(got))
	}
}

func TestDefaultWeek(t *testing.T) {
	week := DefaultWeek(7, "", "")

	if len(week) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(week))
	}

	for _, av := range week {
		if av.StaffMemberID != 7 {
			t.Fatalf("expected staff 7, got %d", av.StaffMemberID)
		}
		weekend := av.Weekday == 0 || av.Weekday == 6
		if weekend && (av.StartTime != "" || av.EndTime != "") {
			t.Fatalf("weekday %d: expected closed weekend", av.Weekday)
		}
		if !weekend && (av.StartTime != DefaultOpenTime || av.EndTime != DefaultCloseTime) {
			t.Fatalf("weekday %d: expected default window, got %s-%s", av.Weekday, av.StartTime, av.EndTime)
		}
	}
}
