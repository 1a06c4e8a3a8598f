package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeUserRegistered   = "user.registered"
	EventTypeAttendanceMarked = "attendance.marked"
)

type UserRegisteredEvent struct {
	BaseEvent
	UserID     int64  `json:"user_id"`
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role"`
}

func NewUserRegisteredEvent(userID int64, employeeID, role string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUserRegistered,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"user_id":     userID,
				"employee_id": employeeID,
				"role":        role,
			},
		},
		UserID:     userID,
		EmployeeID: employeeID,
		Role:       role,
	}
}

type AttendanceMarkedEvent struct {
	BaseEvent
	AttendanceID  int64     `json:"attendance_id"`
	UserID        int64     `json:"user_id"`
	EmployeeID    string    `json:"employee_id"`
	AttendanceDay string    `json:"attendance_day"`
	MarkedAt      time.Time `json:"marked_at"`
}

func NewAttendanceMarkedEvent(attendanceID, userID int64, employeeID, day string, markedAt time.Time) *AttendanceMarkedEvent {
	return &AttendanceMarkedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAttendanceMarked,
			Timestamp: markedAt,
			Data: map[string]interface{}{
				"attendance_id":  attendanceID,
				"user_id":        userID,
				"employee_id":    employeeID,
				"attendance_day": day,
			},
		},
		AttendanceID:  attendanceID,
		UserID:        userID,
		EmployeeID:    employeeID,
		AttendanceDay: day,
		MarkedAt:      markedAt,
	}
}

// LogHandler writes each event to the logger at info level.
func LogHandler(logger *slog.Logger) Handler {
	return func(ctx context.Context, event Event) error {
		logger.InfoContext(ctx, "domain event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt())
		return nil
	}
}
