package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/attendance"
	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
	"gorm.io/gorm"
)

// AttendanceRepository implements attendance.Repository using GORM. The
// *gorm.DB must be opened with TranslateError.
type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.Repository {
	return &AttendanceRepository{db: db}
}

// Create inserts the row; the (user_id, attendance_day) unique index rejects a
// second mark for the same day.
func (r *AttendanceRepository) Create(ctx context.Context, a *attendanceDatamodel.Attendance) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return internal.ErrAttendanceMarked
		}
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

func (r *AttendanceRepository) ListByEmployeeID(ctx context.Context, employeeID string) ([]*attendanceDatamodel.Attendance, error) {
	var rows []*attendanceDatamodel.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("marked_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list attendance by employee id: %w", err)
	}
	return rows, nil
}
