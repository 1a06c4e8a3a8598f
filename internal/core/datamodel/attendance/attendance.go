package attendance

import "time"

// Attendance is one marked day. The composite unique index on
// (user_id, attendance_day) is what keeps a user to one record per day.
type Attendance struct {
	ID            int64     `gorm:"primaryKey"`
	UserID        int64     `gorm:"column:user_id;not null;uniqueIndex:idx_attendances_user_day"`
	EmployeeID    string    `gorm:"column:employee_id;not null;index"`
	Name          string    `gorm:"column:name;not null"`
	MarkedAt      time.Time `gorm:"column:marked_at;not null"`
	AttendanceDay string    `gorm:"column:attendance_day;type:varchar(10);not null;uniqueIndex:idx_attendances_user_day"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Attendance) TableName() string {
	return "attendances"
}
