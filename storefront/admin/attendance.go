package admin

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"plant_nursery/model"
	"plant_nursery/storefront/api"
	"plant_nursery/storefront/toast"
)

var ErrPastAttendance = errors.New("admin: attendance of past dates cannot be changed")

type StaffAPI interface {
	Attendance(ctx context.Context, date string) ([]model.Attendance, error)
	MarkAttendance(ctx context.Context, body model.AttendanceRequest) error
	Salary(ctx context.Context, userId string) (model.Salary, error)
	UpdateSalary(ctx context.Context, userId string, amount decimal.Decimal) (model.Salary, error)
}

// Attendance is the staff screen for one selected date.
type Attendance struct {
	api    StaffAPI
	notify toast.Notifier
	now    func() time.Time

	mu   sync.RWMutex
	date string
	rows []model.Attendance
}

// NewAttendance starts on today's date; now may be nil for time.Now.
func NewAttendance(staffAPI StaffAPI, notify toast.Notifier, now func() time.Time) *Attendance {
	if now == nil {
		now = time.Now
	}
	return &Attendance{api: staffAPI, notify: notify, now: now, date: now().Format(model.DateLayout)}
}

func (a *Attendance) today() string {
	return a.now().Format(model.DateLayout)
}

func (a *Attendance) Date() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.date
}

func (a *Attendance) Rows() []model.Attendance {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]model.Attendance(nil), a.rows...)
}

// Editable reports whether the status controls are rendered for the
// selected date.
func (a *Attendance) Editable() bool {
	return a.Date() >= a.today()
}

func (a *Attendance) Select(ctx context.Context, date string) error {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return err
	}
	a.mu.Lock()
	a.date = date
	a.mu.Unlock()
	return a.Refresh(ctx)
}

func (a *Attendance) Refresh(ctx context.Context) error {
	date := a.Date()
	rows, err := a.api.Attendance(ctx, date)
	if err != nil {
		a.notify.Error(api.Message(err))
		return err
	}
	a.mu.Lock()
	if a.date == date {
		a.rows = rows
	}
	a.mu.Unlock()
	return nil
}

// Mark sets a staff member's status for the selected date. Past dates are
// refused before anything is sent.
func (a *Attendance) Mark(ctx context.Context, userID string, status model.AttendanceStatus) error {
	if !a.Editable() {
		a.notify.Error("Attendance for past dates cannot be changed")
		return ErrPastAttendance
	}
	err := a.api.MarkAttendance(ctx, model.AttendanceRequest{UserId: userID, Date: a.Date(), Status: status})
	if err != nil {
		a.notify.Error(api.Message(err))
		return err
	}
	a.notify.Success("Attendance marked")
	return a.Refresh(ctx)
}

func (a *Attendance) Salary(ctx context.Context, userID string) (model.Salary, error) {
	salary, err := a.api.Salary(ctx, userID)
	if err != nil {
		a.notify.Error(api.Message(err))
	}
	return salary, err
}

// SetSalary saves the amount and reads it back from the server.
func (a *Attendance) SetSalary(ctx context.Context, userID string, amount decimal.Decimal) (model.Salary, error) {
	if _, err := a.api.UpdateSalary(ctx, userID, amount); err != nil {
		a.notify.Error(api.Message(err))
		return model.Salary{}, err
	}
	a.notify.Success("Salary updated")
	return a.Salary(ctx, userID)
}
