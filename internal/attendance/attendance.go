package attendance

import (
	"time"

	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
)

const dayKeyLayout = "2006-01-02"

// Record is one day of attendance for one user.
type Record struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Name       string    `json:"name"`
	EmployeeID string    `json:"employeeId"`
	Date       time.Time `json:"date"`
	Day        string    `json:"day"`
}

// DayWindow is the half-open interval [Start, End) of one local calendar day.
type DayWindow struct {
	Start time.Time
	End   time.Time
}

// WindowFor derives the calendar day containing t from that single instant,
// in t's location.
func WindowFor(t time.Time) DayWindow {
	y, m, d := t.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return DayWindow{
		Start: start,
		End:   start.AddDate(0, 0, 1),
	}
}

// Key is the store key of the day, e.g. "2026-10-16".
func (w DayWindow) Key() string {
	return w.Start.Format(dayKeyLayout)
}

func (w DayWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func FromDataModel(a *attendanceDatamodel.Attendance) *Record {
	return &Record{
		ID:         a.ID,
		UserID:     a.UserID,
		Name:       a.Name,
		EmployeeID: a.EmployeeID,
		Date:       a.MarkedAt,
		Day:        a.AttendanceDay,
	}
}
