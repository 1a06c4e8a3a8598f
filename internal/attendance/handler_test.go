package attendance_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/attendance"
	"github.com/frahmantamala/attendance-management/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Attendance Handler", func() {
	var (
		router *chi.Mux
		caller *internal.Principal
		now    time.Time
	)

	BeforeEach(func() {
		users := staticUsers{
			"e42": {ID: 2, EmployeeID: "e42", Name: "Dana", Role: "user"},
			"e43": {ID: 3, EmployeeID: "e43", Name: "Kim", Role: "user"},
		}
		now = time.Date(2026, 10, 16, 9, 0, 0, 0, wib)
		svc := attendance.NewService(&memoryRepository{}, users, logger.Discard(),
			attendance.WithClock(func() time.Time { return now }))
		handler := attendance.NewHandler(svc, logger.Discard())

		caller = &internal.Principal{UserID: 2, EmployeeID: "e42", Name: "Dana", Role: internal.RoleUser}
		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithPrincipal(r.Context(), caller)))
			})
		})
		router.Post("/mark-attendance", handler.MarkAttendance)
		router.Get("/attendances/{employeeId}", handler.GetHistory)
	})

	mark := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/mark-attendance", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	history := func(employeeID string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendances/"+employeeID, nil))
		return w
	}

	msgOf := func(w *httptest.ResponseRecorder) string {
		var body struct {
			Msg string `json:"msg"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		return body.Msg
	}

	It("should mark attendance once per day", func() {
		w := mark(`{"userId":"e42"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(msgOf(w)).To(Equal("Attendance marked successfully!"))

		w = mark(`{"userId":"e42"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(msgOf(w)).To(Equal("Attendance already marked for today"))
	})

	It("should answer 400 when userId is missing", func() {
		w := mark(`{}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(msgOf(w)).To(Equal("User ID is required"))
	})

	It("should answer 403 when marking for another employee", func() {
		w := mark(`{"userId":"e43"}`)
		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	It("should answer 404 for an unknown employee when called by an admin", func() {
		caller = &internal.Principal{UserID: 1, EmployeeID: "admin1", Role: internal.RoleAdmin}
		w := mark(`{"userId":"ghost"}`)
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(msgOf(w)).To(Equal("User not found"))
	})

	It("should answer 404 for an empty history", func() {
		w := history("e42")
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(msgOf(w)).To(Equal("No attendance records found for this employee"))
	})

	It("should return the records", func() {
		Expect(mark(`{"userId":"e42"}`).Code).To(Equal(http.StatusOK))
		now = now.AddDate(0, 0, 1)
		Expect(mark(`{"userId":"e42"}`).Code).To(Equal(http.StatusOK))

		w := history("e42")
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp attendance.HistoryResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Records).To(HaveLen(2))
		Expect(resp.Records[0].Name).To(Equal("Dana"))
		Expect(resp.Records[0].Day).To(Equal("2026-10-16"))
		Expect(resp.Records[1].Day).To(Equal("2026-10-17"))
	})
})
