package auth

import (
	"strings"

	"github.com/frahmantamala/attendance-management/internal/core/common/validation"
)

// SignupDTO is the body of POST /signup.
type SignupDTO struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Password   string `json:"password"`
}

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	EmployeeID string `json:"employeeId"`
	Password   string `json:"password"`
}

type SignupResponse struct {
	Token string `json:"token"`
	Msg   string `json:"msg"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Msg   string `json:"msg"`
	Role  string `json:"role"`
}

func (d SignupDTO) Normalize() SignupDTO {
	d.EmployeeID = strings.TrimSpace(d.EmployeeID)
	d.Name = strings.TrimSpace(d.Name)
	return d
}

func (d SignupDTO) Validate() error {
	v := validation.NewValidator()
	validation.ValidateEmployeeID(v, d.EmployeeID)
	validation.ValidateName(v, d.Name)
	validation.ValidatePassword(v, d.Password, true)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (d LoginDTO) Normalize() LoginDTO {
	d.EmployeeID = strings.TrimSpace(d.EmployeeID)
	return d
}

// Validate only checks presence; length rules would leak which accounts are
// impossible.
func (d LoginDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("employeeId", d.EmployeeID).Required()
	validation.ValidatePassword(v, d.Password, false)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
