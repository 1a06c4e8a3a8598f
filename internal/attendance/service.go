package attendance

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	attendanceDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/attendance"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	"github.com/frahmantamala/attendance-management/internal/core/events"
	"github.com/frahmantamala/attendance-management/pkg/logger"
)

// Repository is the attendance store. Create must return
// internal.ErrAttendanceMarked when (user_id, attendance_day) already exists;
// that constraint is the only thing deduplicating concurrent marks.
type Repository interface {
	Create(ctx context.Context, a *attendanceDatamodel.Attendance) error
	ListByEmployeeID(ctx context.Context, employeeID string) ([]*attendanceDatamodel.Attendance, error)
}

// UserLookup resolves the employee id a mark refers to. It returns
// internal.ErrUserNotFound for unknown ids.
type UserLookup interface {
	GetByEmployeeID(ctx context.Context, employeeID string) (*userDatamodel.User, error)
}

type Option func(*Service)

// WithClock replaces time.Now; the day window follows the clock's location.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

func WithQueryTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.queryTimeout = d
	}
}

// Service is the attendance ledger.
type Service struct {
	repo         Repository
	users        UserLookup
	publisher    events.Publisher
	clock        func() time.Time
	queryTimeout time.Duration
	logger       *slog.Logger
}

func NewService(repo Repository, users UserLookup, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		repo:      repo,
		users:     users,
		publisher: events.NopPublisher{},
		clock:     time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MarkAttendance records today's attendance for employeeID. Callers may mark
// for themselves; admins may mark for anyone.
func (s *Service) MarkAttendance(ctx context.Context, caller *internal.Principal, employeeID string) (*Record, error) {
	if employeeID == "" {
		return nil, internal.ErrMissingUserID
	}
	if caller == nil {
		return nil, internal.ErrMissingToken
	}
	if !caller.CanAccessEmployee(employeeID) {
		return nil, internal.ErrUnauthorizedAccess
	}

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	u, err := s.users.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewInternalError("failed to look up user", err)
	}

	now := s.clock()
	window := WindowFor(now)

	row := &attendanceDatamodel.Attendance{
		UserID:        u.ID,
		EmployeeID:    u.EmployeeID,
		Name:          u.Name,
		MarkedAt:      now,
		AttendanceDay: window.Key(),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if errors.Is(err, internal.ErrAttendanceMarked) {
			return nil, internal.ErrAttendanceMarked
		}
		return nil, internal.NewInternalError("failed to mark attendance", err)
	}

	lg := logger.FromOr(ctx, s.logger)
	lg.Info("attendance marked", "attendance_id", row.ID, "user_id", u.ID, "day", row.AttendanceDay)

	event := events.NewAttendanceMarkedEvent(row.ID, u.ID, u.EmployeeID, row.AttendanceDay, now)
	if err := s.publisher.Publish(ctx, event); err != nil {
		lg.Warn("attendance.marked event not delivered", "attendance_id", row.ID, "error", err)
	}

	return FromDataModel(row), nil
}

// GetHistory returns every record for employeeID, oldest first.
func (s *Service) GetHistory(ctx context.Context, employeeID string) ([]*Record, error) {
	if employeeID == "" {
		return nil, internal.ErrMissingUserID
	}

	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.repo.ListByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, internal.NewInternalError("failed to fetch attendance history", err)
	}
	if len(rows) == 0 {
		return nil, internal.ErrNoAttendanceRecords
	}

	records := make([]*Record, len(rows))
	for i, row := range rows {
		records[i] = FromDataModel(row)
	}
	return records, nil
}
