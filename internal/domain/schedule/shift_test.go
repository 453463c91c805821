package schedule

import (
	"testing"

	"github.com/BruksfildServices01/studio-console/internal/httperr"
	"github.com/BruksfildServices01/studio-console/internal/models"
)

func TestSpanMinutes(t *testing.T) {
	minutes, err := SpanMinutes("08:00", "16:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minutes != 510 {
		t.Fatalf("expected 510, got %d", minutes)
	}
}

func TestSpanMinutes_Invalid(t *testing.T) {
	cases := [][2]string{
		{"8am", "16:00"},
		{"08:00", ""},
		{"16:00", "08:00"},
		{"08:00", "08:00"},
	}

	for i, c := range cases {
		if _, err := SpanMinutes(c[0], c[1]); !httperr.IsBusiness(err, "validation_error") {
			t.Fatalf("case %d: expected validation_error, got %v", i, err)
		}
	}
}

func TestSpansOverlap(t *testing.T) {
	if !SpansOverlap("08:00", "12:00", "10:00", "14:00") {
		t.Fatalf("expected overlap")
	}
	// Encostados não conflitam.
	if SpansOverlap("08:00", "12:00", "12:00", "16:00") {
		t.Fatalf("adjacent spans must not overlap")
	}
	if SpansOverlap("08:00", "10:00", "14:00", "16:00") {
		t.Fatalf("disjoint spans must not overlap")
	}
}

func TestConflicts_SkipsCancelled(t *testing.T) {
	entries := []models.ScheduleEntry{
		{StartTime: "08:00", EndTime: "12:00", Status: EntryStatusCancelled},
		{StartTime: "14:00", EndTime: "18:00", Status: EntryStatusScheduled},
	}

	if Conflicts(entries, "09:00", "11:00") {
		t.Fatalf("cancelled shift must not conflict")
	}
	if !Conflicts(entries, "13:00", "15:00") {
		t.Fatalf("expected conflict with active shift")
	}
	if Conflicts(entries, "12:00", "14:00") {
		t.Fatalf("gap between shifts must be free")
	}
}

func TestConflicts_SwapRequestedStillBlocks(t *testing.T) {
	entries := []models.ScheduleEntry{
		{StartTime: "08:00", EndTime: "12:00", Status: EntryStatusSwapRequested},
	}

	if !Conflicts(entries, "10:00", "14:00") {
		t.Fatalf("swap_requested shift must still block the slot")
	}
}

func TestEntryStatusValidations(t *testing.T) {
	if err := CanCancel(EntryStatusScheduled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CanCancel(EntryStatusCancelled); !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("expected invalid_transition, got %v", err)
	}

	if err := CanRequestSwap(EntryStatusScheduled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CanRequestSwap(EntryStatusSwapRequested); !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("expected invalid_transition for double request, got %v", err)
	}

	if err := CanResolveSwap(EntryStatusSwapRequested); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CanResolveSwap(EntryStatusScheduled); !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("expected invalid_transition without open request, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	entries := []models.ScheduleEntry{
		{StaffMemberID: 1, StartTime: "08:00", EndTime: "16:00", Status: EntryStatusScheduled},
		{StaffMemberID: 1, StartTime: "16:00", EndTime: "20:00", Status: EntryStatusScheduled},
		{StaffMemberID: 2, StartTime: "09:00", EndTime: "17:30", Status: EntryStatusSwapRequested},
		{StaffMemberID: 3, StartTime: "08:00", EndTime: "16:00", Status: EntryStatusCancelled},
	}

	s := Summarize(entries)

	if s.TotalShifts != 3 {
		t.Fatalf("expected 3 shifts, got %d", s.TotalShifts)
	}
	if s.TotalHours != 20.5 {
		t.Fatalf("expected 20.5 hours, got %v", s.TotalHours)
	}
	if s.EmployeesScheduled != 2 {
		t.Fatalf("expected 2 employees, got %d", s.EmployeesScheduled)
	}
	if s.PendingSwaps != 1 {
		t.Fatalf("expected 1 pending swap, got %d", s.PendingSwaps)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalShifts != 0 || s.TotalHours != 0 || s.EmployeesScheduled != 0 || s.PendingSwaps != 0 {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}
