package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"branchbook/models"
)

func TestAppointmentListings(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, testLoc)
	svc, appts := newTestService(at(day, 7, 0))
	ctx := context.Background()

	user := models.Identity{UserID: 1, Role: models.RoleUser}
	other := models.Identity{UserID: 2, Role: models.RoleUser}
	for _, b := range []struct {
		who  models.Identity
		hour int
	}{{user, 9}, {other, 10}, {user, 11}} {
		if _, err := svc.CreateBooking(ctx, b.who, 1, at(day, b.hour, 0)); err != nil {
			t.Fatalf("seed booking: %v", err)
		}
	}
	if _, err := svc.CancelBooking(ctx, user, 3); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	mine, err := svc.MyAppointments(ctx, user)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 own appointments, got %d", len(mine))
	}
	for _, a := range mine {
		if a.UserID != user.UserID {
			t.Errorf("leaked appointment of user %d", a.UserID)
		}
		if a.Branch == nil || a.Branch.Name != "Banka Centar" {
			t.Errorf("branch not expanded: %+v", a.Branch)
		}
	}

	staff := models.Identity{UserID: 9, Role: models.RoleEmployee, BranchID: 1}
	branch, err := svc.BranchAppointments(ctx, staff)
	if err != nil {
		t.Fatal(err)
	}
	if len(branch) != 2 {
		t.Errorf("expected 2 booked appointments at branch, got %d", len(branch))
	}
	for _, a := range branch {
		if a.Status != models.StatusBooked {
			t.Errorf("canceled appointment listed for staff: %+v", a)
		}
	}

	all, err := svc.AllAppointments(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != len(appts.rows) {
		t.Errorf("expected %d appointments, got %d", len(appts.rows), len(all))
	}

	if all[0].StartTime != "2026-03-10T09:00:00+01:00" {
		t.Errorf("start time not rendered in local zone: %s", all[0].StartTime)
	}
}

func TestBranchAppointments_EmployeeWithoutBranch(t *testing.T) {
	svc, _ := newTestService(time.Now())
	_, err := svc.BranchAppointments(context.Background(), models.Identity{UserID: 5, Role: models.RoleEmployee})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != FieldBranchID {
		t.Errorf("expected branch_id validation error, got %v", err)
	}
}
