package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	appointmentRepo "branchbook/database/repository/appointment"
	branchRepo "branchbook/database/repository/branch"
	"branchbook/models"
)

type fakeBranchRepo struct {
	branches map[int64]models.Branch
}

func (f *fakeBranchRepo) GetByID(_ context.Context, id int64) (*models.Branch, error) {
	b, ok := f.branches[id]
	if !ok {
		return nil, branchRepo.ErrNotFound
	}
	return &b, nil
}

func (f *fakeBranchRepo) List(_ context.Context, limit int) ([]models.Branch, error) {
	var out []models.Branch
	for _, b := range f.branches {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeBranchRepo) Create(_ context.Context, b *models.Branch) error {
	b.ID = int64(len(f.branches) + 1)
	f.branches[b.ID] = *b
	return nil
}

func (f *fakeBranchRepo) Count(context.Context) (int64, error) { return int64(len(f.branches)), nil }

// fakeAppointmentRepo mirrors the unique partial index: Create fails with
// ErrDuplicateSlot when a booked row holds the same (branch, start).
type fakeAppointmentRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []models.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.BranchID == a.BranchID && r.StartTime.Equal(a.StartTime) && r.Status == models.StatusBooked {
			return appointmentRepo.ErrDuplicateSlot
		}
	}
	f.nextID++
	a.ID = f.nextID
	f.rows = append(f.rows, *a)
	return nil
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.ID == id {
			cp := r
			return &cp, nil
		}
	}
	return nil, appointmentRepo.ErrNotFound
}

func (f *fakeAppointmentRepo) ExistsBooked(_ context.Context, branchID int64, start time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.BranchID == branchID && r.StartTime.Equal(start) && r.Status == models.StatusBooked {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAppointmentRepo) BookedStartTimes(_ context.Context, branchID int64, from, to time.Time) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []time.Time
	for _, r := range f.rows {
		if r.BranchID == branchID && r.Status == models.StatusBooked &&
			!r.StartTime.Before(from) && r.StartTime.Before(to) {
			out = append(out, r.StartTime)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) MarkCanceled(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.rows {
		if r.ID == id {
			if r.Status != models.StatusBooked {
				return appointmentRepo.ErrNotBooked
			}
			f.rows[i].Status = models.StatusCanceled
			return nil
		}
	}
	return appointmentRepo.ErrNotBooked
}

func (f *fakeAppointmentRepo) ListByUser(_ context.Context, userID int64) ([]models.Appointment, error) {
	return f.filter(func(a models.Appointment) bool { return a.UserID == userID }), nil
}

func (f *fakeAppointmentRepo) ListBookedByBranch(_ context.Context, branchID int64) ([]models.Appointment, error) {
	return f.filter(func(a models.Appointment) bool {
		return a.BranchID == branchID && a.Status == models.StatusBooked
	}), nil
}

func (f *fakeAppointmentRepo) ListAll(context.Context) ([]models.Appointment, error) {
	return f.filter(func(models.Appointment) bool { return true }), nil
}

func (f *fakeAppointmentRepo) filter(keep func(models.Appointment) bool) []models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Appointment{}
	for _, r := range f.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
