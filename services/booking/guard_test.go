package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"branchbook/models"
)

var customer = models.Identity{UserID: 7, Role: models.RoleUser}

func TestCreateBooking(t *testing.T) {
	day := time.Date(2026, 3, 11, 0, 0, 0, 0, testLoc)
	svc, appts := newTestService(time.Date(2026, 3, 10, 12, 0, 0, 0, testLoc))

	appt, err := svc.CreateBooking(context.Background(), customer, 1, at(day, 10, 0))
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if appt.Status != models.StatusBooked || appt.UserID != customer.UserID || appt.BranchID != 1 {
		t.Fatalf("unexpected appointment %+v", appt)
	}
	if len(appts.rows) != 1 {
		t.Fatalf("expected 1 stored appointment, got %d", len(appts.rows))
	}
}

func TestCreateBooking_Rejections(t *testing.T) {
	day := time.Date(2026, 3, 11, 0, 0, 0, 0, testLoc)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, testLoc)

	tests := []struct {
		name      string
		branchID  int64
		start     time.Time
		wantField string
		wantMsg   string
	}{
		{name: "past", branchID: 1, start: now.Add(-30 * time.Minute), wantField: FieldStartTime, wantMsg: MsgPastStart},
		{name: "past beats unknown branch", branchID: 42, start: now.Add(-time.Hour), wantField: FieldStartTime, wantMsg: MsgPastStart},
		{name: "unknown branch", branchID: 42, start: at(day, 10, 0), wantField: FieldBranchID, wantMsg: MsgNoBranch},
		{name: "unaligned", branchID: 1, start: at(day, 9, 10), wantField: FieldStartTime, wantMsg: "appointment must be aligned to a 30 minute slot"},
		{name: "after hours", branchID: 1, start: at(day, 17, 0), wantField: FieldStartTime, wantMsg: MsgOutsideHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, appts := newTestService(now)
			_, err := svc.CreateBooking(context.Background(), customer, tt.branchID, tt.start)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField || verr.Message != tt.wantMsg {
				t.Fatalf("expected %s/%q, got %s/%q", tt.wantField, tt.wantMsg, verr.Field, verr.Message)
			}
			if len(appts.rows) != 0 {
				t.Fatalf("rejected booking was stored: %+v", appts.rows)
			}
		})
	}
}

func TestCreateBooking_SlotTaken(t *testing.T) {
	day := time.Date(2026, 3, 11, 0, 0, 0, 0, testLoc)
	svc, _ := newTestService(time.Date(2026, 3, 10, 12, 0, 0, 0, testLoc))
	ctx := context.Background()

	if _, err := svc.CreateBooking(ctx, customer, 1, at(day, 10, 0)); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	other := models.Identity{UserID: 8, Role: models.RoleUser}
	_, err := svc.CreateBooking(ctx, other, 1, at(day, 10, 0).UTC())

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Message != MsgSlotTaken {
		t.Fatalf("expected slot taken, got %v", err)
	}
}

func TestCreateBooking_StaffRejected(t *testing.T) {
	day := time.Date(2026, 3, 11, 0, 0, 0, 0, testLoc)
	svc, _ := newTestService(time.Date(2026, 3, 10, 12, 0, 0, 0, testLoc))

	for _, role := range []string{models.RoleEmployee, models.RoleAdmin} {
		_, err := svc.CreateBooking(context.Background(), models.Identity{UserID: 3, Role: role}, 1, at(day, 10, 0))
		if !errors.Is(err, ErrStaffCannotBook) {
			t.Fatalf("role %s: expected ErrStaffCannotBook, got %v", role, err)
		}
	}
}

func TestCreateBooking_ConcurrentSameSlot(t *testing.T) {
	day := time.Date(2026, 3, 11, 0, 0, 0, 0, testLoc)
	svc, appts := newTestService(time.Date(2026, 3, 10, 12, 0, 0, 0, testLoc))

	const n = 25
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(uid int64) {
			defer wg.Done()
			<-start
			_, err := svc.CreateBooking(context.Background(), models.Identity{UserID: uid, Role: models.RoleUser}, 1, at(day, 11, 30))
			mu.Lock()
			defer mu.Unlock()
			var verr *ValidationError
			switch {
			case err == nil:
				successes++
			case errors.As(err, &verr) && verr.Message == MsgSlotTaken:
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(int64(i + 1))
	}
	close(start)
	wg.Wait()

	if successes != 1 || conflicts != n-1 {
		t.Fatalf("expected 1 success and %d conflicts, got %d and %d", n-1, successes, conflicts)
	}
	if len(appts.rows) != 1 {
		t.Fatalf("expected exactly one stored appointment, got %d", len(appts.rows))
	}
}

func TestCancelBooking_OneWay(t *testing.T) {
	day := time.Date(2026, 3, 11, 0, 0, 0, 0, testLoc)
	svc, _ := newTestService(time.Date(2026, 3, 10, 12, 0, 0, 0, testLoc))
	ctx := context.Background()

	appt, err := svc.CreateBooking(ctx, customer, 1, at(day, 10, 0))
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}

	intruder := models.Identity{UserID: 8, Role: models.RoleAdmin}
	if _, err := svc.CancelBooking(ctx, intruder, appt.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	canceled, err := svc.CancelBooking(ctx, customer, appt.ID)
	if err != nil {
		t.Fatalf("CancelBooking failed: %v", err)
	}
	if canceled.Status != models.StatusCanceled {
		t.Fatalf("expected canceled, got %s", canceled.Status)
	}

	if _, err := svc.CancelBooking(ctx, customer, appt.ID); !errors.Is(err, ErrAlreadyCanceled) {
		t.Fatalf("expected ErrAlreadyCanceled, got %v", err)
	}

	stored, _ := svc.Appointments.GetByID(ctx, appt.ID)
	if stored.Status != models.StatusCanceled {
		t.Fatalf("expected stored status canceled, got %s", stored.Status)
	}

	if _, err := svc.CancelBooking(ctx, customer, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCancelBooking_FreesSlotOnNextListing(t *testing.T) {
	day := time.Date(2026, 3, 11, 0, 0, 0, 0, testLoc)
	svc, _ := newTestService(time.Date(2026, 3, 10, 12, 0, 0, 0, testLoc))
	ctx := context.Background()

	appt, err := svc.CreateBooking(ctx, customer, 1, at(day, 10, 0))
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	before, _ := svc.BranchSlots(ctx, 1, "2026-03-11")
	if _, err := svc.CancelBooking(ctx, customer, appt.ID); err != nil {
		t.Fatalf("CancelBooking failed: %v", err)
	}
	after, _ := svc.BranchSlots(ctx, 1, "2026-03-11")

	if len(after.AvailableSlots) != len(before.AvailableSlots)+1 {
		t.Fatalf("expected canceled slot to reappear: before %d after %d", len(before.AvailableSlots), len(after.AvailableSlots))
	}
	if _, err := svc.CreateBooking(ctx, customer, 1, at(day, 10, 0)); err != nil {
		t.Fatalf("rebooking a canceled slot failed: %v", err)
	}
}
