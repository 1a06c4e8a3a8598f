package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AppError", func() {
	It("should match sentinels through wrapping", func() {
		err := fmt.Errorf("mark: %w", internal.ErrAttendanceMarked)
		Expect(errors.Is(err, internal.ErrAttendanceMarked)).To(BeTrue())
		Expect(errors.Is(err, internal.ErrUserExists)).To(BeFalse())
	})

	It("should keep the cause out of the response body", func() {
		appErr := internal.NewInternalError("failed to mark attendance", errors.New("pq: password authentication failed"))
		status, body := appErr.ToHTTPResponse()
		Expect(status).To(Equal(http.StatusInternalServerError))

		b, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(b)).NotTo(ContainSubstring("password authentication"))
		Expect(errors.Unwrap(appErr)).To(MatchError("pq: password authentication failed"))
	})

	DescribeTable("public status codes",
		func(err *internal.AppError, status int, msg string) {
			code, body := err.ToHTTPResponse()
			Expect(code).To(Equal(status))
			Expect(body.(internal.Response).Msg).To(Equal(msg))
		},
		Entry("duplicate signup", internal.ErrUserExists, http.StatusBadRequest, "User already exists"),
		Entry("bad credentials", internal.ErrInvalidCredentials, http.StatusBadRequest, "Invalid Credentials"),
		Entry("missing id", internal.ErrMissingUserID, http.StatusBadRequest, "User ID is required"),
		Entry("duplicate mark", internal.ErrAttendanceMarked, http.StatusBadRequest, "Attendance already marked for today"),
		Entry("unknown user", internal.ErrUserNotFound, http.StatusNotFound, "User not found"),
		Entry("empty history", internal.ErrNoAttendanceRecords, http.StatusNotFound, "No attendance records found for this employee"),
		Entry("expired token", internal.ErrTokenExpired, http.StatusUnauthorized, "Token has expired"),
		Entry("not owner", internal.ErrUnauthorizedAccess, http.StatusForbidden, "Access to this employee's attendance is not allowed"),
		Entry("server error", internal.ErrInternalServer, http.StatusInternalServerError, "Server error"),
	)
})

var _ = Describe("Principal", func() {
	It("should let users access only their own employee id", func() {
		p := &internal.Principal{EmployeeID: "e42", Role: internal.RoleUser}
		Expect(p.CanAccessEmployee("e42")).To(BeTrue())
		Expect(p.CanAccessEmployee("e43")).To(BeFalse())
	})

	It("should let admins access anyone", func() {
		p := &internal.Principal{EmployeeID: "admin1", Role: internal.RoleAdmin}
		Expect(p.CanAccessEmployee("e43")).To(BeTrue())
	})

	It("should deny a nil principal", func() {
		var p *internal.Principal
		Expect(p.CanAccessEmployee("e42")).To(BeFalse())
		Expect(p.IsAdmin()).To(BeFalse())
	})
})
