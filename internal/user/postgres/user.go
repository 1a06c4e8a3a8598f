package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/user"
	"github.com/jmoiron/sqlx"
)

const (
	listUsersQuery   = `SELECT id, employee_id, name, role, created_at FROM users ORDER BY id`
	getUserByIDQuery = `SELECT id, employee_id, name, role, created_at FROM users WHERE id = ?`
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) ListAll(ctx context.Context) ([]*user.User, error) {
	users := make([]*user.User, 0)
	if err := r.db.SelectContext(ctx, &users, listUsersQuery); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *Repository) GetByID(ctx context.Context, userID int64) (*user.User, error) {
	var u user.User
	if err := r.db.GetContext(ctx, &u, r.db.Rebind(getUserByIDQuery), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}
