package auth

import (
	"context"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	userDatamodel "github.com/frahmantamala/attendance-management/internal/core/datamodel/user"
	"github.com/golang-jwt/jwt/v5"
)

// Account is the identity view of a stored user.
type Account struct {
	ID           int64
	EmployeeID   string
	Name         string
	PasswordHash string
	Role         internal.Role
	CreatedAt    time.Time
}

func (a *Account) Principal() *internal.Principal {
	return &internal.Principal{
		UserID:     a.ID,
		EmployeeID: a.EmployeeID,
		Name:       a.Name,
		Role:       a.Role,
	}
}

// Session is what Register and Authenticate hand back to the caller.
type Session struct {
	Token     string
	Role      internal.Role
	ExpiresAt time.Time
}

// Claims represents JWT token claims
type Claims struct {
	UserID string        `json:"user_id"`
	Role   internal.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator issues and verifies signed session claims.
type TokenGenerator interface {
	GenerateAccessToken(userID string, role internal.Role) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// RepositoryAPI is the user store the identity service depends on. Lookups
// return internal.ErrUserNotFound for unknown users and Create returns
// internal.ErrUserExists when the employee id is taken.
type RepositoryAPI interface {
	Create(ctx context.Context, u *userDatamodel.User) error
	GetByEmployeeID(ctx context.Context, employeeID string) (*userDatamodel.User, error)
	GetByID(ctx context.Context, id int64) (*userDatamodel.User, error)
}

// PasswordHasher is the one-way credential function.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) error
}

func FromDataModel(u *userDatamodel.User) *Account {
	return &Account{
		ID:           u.ID,
		EmployeeID:   u.EmployeeID,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         internal.Role(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}
