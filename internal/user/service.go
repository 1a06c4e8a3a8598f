package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/pkg/logger"
)

// Repository returns internal.ErrUserNotFound from GetByID for unknown ids.
type Repository interface {
	ListAll(ctx context.Context) ([]*User, error)
	GetByID(ctx context.Context, userID int64) (*User, error)
}

type Service struct {
	repo         Repository
	queryTimeout time.Duration
	logger       *slog.Logger
}

func NewService(repo Repository, queryTimeout time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:         repo,
		queryTimeout: queryTimeout,
		logger:       logger,
	}
}

// ListUsers returns every user to admins and only the caller's own record to
// everyone else.
func (s *Service) ListUsers(ctx context.Context, callerRole internal.Role, callerUserID int64) ([]*User, error) {
	ctx, cancel := internal.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	if callerRole == internal.RoleAdmin {
		users, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, internal.NewInternalError("failed to list users", err)
		}
		logger.FromOr(ctx, s.logger).Debug("listed users", "count", len(users))
		return users, nil
	}

	u, err := s.repo.GetByID(ctx, callerUserID)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewInternalError("failed to get user", err)
	}
	return []*User{u}, nil
}
