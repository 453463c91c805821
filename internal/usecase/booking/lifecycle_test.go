package booking

import (
	"context"
	"testing"

	domain "github.com/BruksfildServices01/studio-console/internal/domain/booking"
	"github.com/BruksfildServices01/studio-console/internal/httperr"
)

func (f *fixture) advanceUC() *AdvanceAppointment {
	return NewAdvanceAppointment(f.repo, f.audit)
}

func (f *fixture) completeUC() *CompleteAppointment {
	return NewCompleteAppointment(f.repo, f.settings, f.audit)
}

func (f *fixture) checkInUC() *CheckInAppointment {
	return NewCheckInAppointment(f.repo, f.settings, f.audit)
}

func (f *fixture) checkOutUC() *CheckOutAppointment {
	return NewCheckOutAppointment(f.repo, f.settings, f.audit)
}

func TestAdvanceAppointment_Funnel(t *testing.T) {
	f := newFixture()
	_, _, start := futureSlot(2, 10)
	ap := f.seedBookedAppointment("ref-funnel", start)
	f.repo.appointments[ap.ID].Status = string(domain.StatusPending)

	for _, target := range []string{"new", "contacted", "confirmed"} {
		moved, err := f.advanceUC().Execute(context.Background(), ap.ID, target, nil)
		if err != nil {
			t.Fatalf("advance to %s failed: %v", target, err)
		}
		if moved.Status != target {
			t.Fatalf("expected %s, got %s", target, moved.Status)
		}
		if f.repo.stored(ap.ID).Status != target {
			t.Fatalf("step to %s not persisted", target)
		}
	}
}

func TestAdvanceAppointment_NoSkipping(t *testing.T) {
	f := newFixture()
	_, _, start := futureSlot(2, 10)
	ap := f.seedBookedAppointment("ref-skip", start)
	f.repo.appointments[ap.ID].Status = string(domain.StatusPending)

	_, err := f.advanceUC().Execute(context.Background(), ap.ID, "confirmed", nil)
	if !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("expected invalid_transition, got %v", err)
	}
	if f.repo.stored(ap.ID).Status != string(domain.StatusPending) {
		t.Fatalf("failed advance must not change status")
	}
}

func TestAdvanceAppointment_UnknownStatus(t *testing.T) {
	f := newFixture()
	_, _, start := futureSlot(2, 10)
	ap := f.seedBookedAppointment("ref-unknown", start)

	_, err := f.advanceUC().Execute(context.Background(), ap.ID, "em_espera", nil)
	if !httperr.IsBusiness(err, "validation_error") {
		t.Fatalf("expected validation_error, got %v", err)
	}
}

func TestAdvanceAppointment_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.advanceUC().Execute(context.Background(), 404, "new", nil)
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}

func TestCompleteAppointment_RequiresConfirmed(t *testing.T) {
	f := newFixture()
	_, _, start := futureSlot(2, 10)
	ap := f.seedBookedAppointment("ref-done", start)
	f.repo.appointments[ap.ID].Status = string(domain.StatusNew)

	_, err := f.completeUC().Execute(context.Background(), ap.ID, nil)
	if !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("expected invalid_transition, got %v", err)
	}

	f.repo.appointments[ap.ID].Status = string(domain.StatusConfirmed)

	done, err := f.completeUC().Execute(context.Background(), ap.ID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if done.Status != string(domain.StatusCompleted) || done.CompletedAt == nil {
		t.Fatalf("expected completed with timestamp, got %s", done.Status)
	}
	if f.repo.stored(ap.ID).Status != string(domain.StatusCompleted) {
		t.Fatalf("completion not persisted")
	}
}

func TestCheckInCheckOut_Flow(t *testing.T) {
	f := newFixture()
	_, _, start := futureSlot(2, 10)
	ap := f.seedBookedAppointment("ref-flow", start)

	checked, err := f.checkInUC().Execute(context.Background(), ap.ID, nil)
	if err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	if checked.CheckedInAt == nil {
		t.Fatalf("expected check-in timestamp")
	}
	if checked.Status != string(domain.StatusConfirmed) {
		t.Fatalf("check-in must not change status, got %s", checked.Status)
	}

	out, err := f.checkOutUC().Execute(context.Background(), ap.ID, nil)
	if err != nil {
		t.Fatalf("check-out failed: %v", err)
	}
	if out.Status != string(domain.StatusCompleted) || out.CheckedOutAt == nil {
		t.Fatalf("check-out must complete the appointment, got %s", out.Status)
	}

	stored := f.repo.stored(ap.ID)
	if stored.CheckedInAt == nil || stored.CheckedOutAt == nil {
		t.Fatalf("timestamps not persisted")
	}
}

func TestCheckIn_OnlyConfirmedAndOnce(t *testing.T) {
	f := newFixture()
	_, _, start := futureSlot(2, 10)
	ap := f.seedBookedAppointment("ref-once", start)
	f.repo.appointments[ap.ID].Status = string(domain.StatusNew)

	_, err := f.checkInUC().Execute(context.Background(), ap.ID, nil)
	if !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("expected invalid_transition, got %v", err)
	}

	f.repo.appointments[ap.ID].Status = string(domain.StatusConfirmed)
	if _, err := f.checkInUC().Execute(context.Background(), ap.ID, nil); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	_, err = f.checkInUC().Execute(context.Background(), ap.ID, nil)
	if !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("second check-in must fail, got %v", err)
	}
}

func TestCheckOut_RequiresCheckIn(t *testing.T) {
	f := newFixture()
	_, _, start := futureSlot(2, 10)
	ap := f.seedBookedAppointment("ref-noin", start)

	_, err := f.checkOutUC().Execute(context.Background(), ap.ID, nil)
	if !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("expected invalid_transition, got %v", err)
	}
}
