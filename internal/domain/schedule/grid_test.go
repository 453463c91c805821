package schedule

import (
	"testing"
	"time"
)

func TestMonthGrid_CompleteWeeks(t *testing.T) {
	// Março de 2026 começa num domingo e termina numa terça.
	days := MonthGrid(2026, time.March, time.UTC)

	if len(days)%7 != 0 {
		t.Fatalf("expected whole weeks, got %d days", len(days))
	}
	if days[0].Weekday() != time.Sunday {
		t.Fatalf("expected grid to start on Sunday, got %s", days[0].Weekday())
	}
	if days[len(days)-1].Weekday() != time.Saturday {
		t.Fatalf("expected grid to end on Saturday, got %s", days[len(days)-1].Weekday())
	}
}

func TestMonthGrid_EveryDayOnce(t *testing.T) {
	days := MonthGrid(2026, time.February, time.UTC)

	seen := make(map[string]int)
	inMonth := 0
	for _, d := range days {
		seen[d.Format("2006-01-02")]++
		if d.Month() == time.February {
			inMonth++
		}
	}

	if inMonth != 28 {
		t.Fatalf("expected 28 days of February, got %d", inMonth)
	}
	for day, n := range seen {
		if n != 1 {
			t.Fatalf("day %s appears %d times", day, n)
		}
	}
}

func TestMonthGrid_PadsNeighborMonths(t *testing.T) {
	// Julho de 2026: dia 1 é quarta, dia 31 é sexta.
	days := MonthGrid(2026, time.July, time.UTC)

	if !days[0].Equal(time.Date(2026, 6, 28, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected grid start 2026-06-28, got %s", days[0].Format("2006-01-02"))
	}
	if !days[len(days)-1].Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected grid end 2026-08-01, got %s", days[len(days)-1].Format("2006-01-02"))
	}
}

func TestMonthGrid_Consecutive(t *testing.T) {
	days := MonthGrid(2026, time.August, time.UTC)

	for i := 1; i < len(days); i++ {
		if !days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			t.Fatalf("gap between %s and %s", days[i-1], days[i])
		}
	}
}
