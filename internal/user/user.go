package user

import (
	"time"

	"github.com/frahmantamala/attendance-management/internal"
)

// User is the directory view of an account; the password hash never leaves
// the store layer.
type User struct {
	ID         int64         `json:"id" db:"id"`
	EmployeeID string        `json:"employeeId" db:"employee_id"`
	Name       string        `json:"name" db:"name"`
	Role       internal.Role `json:"role" db:"role"`
	CreatedAt  time.Time     `json:"createdAt" db:"created_at"`
}
