package user_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/user"
	"github.com/frahmantamala/attendance-management/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("User Handler", func() {
	var handler *user.Handler

	BeforeEach(func() {
		repo := &mockRepository{users: []*user.User{
			{ID: 1, EmployeeID: "admin1", Name: "Root", Role: internal.RoleAdmin},
			{ID: 2, EmployeeID: "e42", Name: "Dana", Role: internal.RoleUser},
		}}
		handler = user.NewHandler(user.NewService(repo, 0, logger.Discard()), logger.Discard())
	})

	get := func(p *internal.Principal) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		if p != nil {
			req = req.WithContext(internal.ContextWithPrincipal(req.Context(), p))
		}
		w := httptest.NewRecorder()
		handler.GetUsers(w, req)
		return w
	}

	It("should return all users to an admin", func() {
		w := get(&internal.Principal{UserID: 1, EmployeeID: "admin1", Role: internal.RoleAdmin})
		Expect(w.Code).To(Equal(http.StatusOK))

		var users []map[string]any
		Expect(json.NewDecoder(w.Body).Decode(&users)).To(Succeed())
		Expect(users).To(HaveLen(2))
		Expect(users[1]).To(HaveKeyWithValue("employeeId", "e42"))
		Expect(users[1]).NotTo(HaveKey("password"))
		Expect(users[1]).NotTo(HaveKey("passwordHash"))
	})

	It("should return a one-element list to a regular user", func() {
		w := get(&internal.Principal{UserID: 2, EmployeeID: "e42", Role: internal.RoleUser})
		Expect(w.Code).To(Equal(http.StatusOK))

		var users []user.User
		Expect(json.NewDecoder(w.Body).Decode(&users)).To(Succeed())
		Expect(users).To(HaveLen(1))
		Expect(users[0].EmployeeID).To(Equal("e42"))
	})

	It("should answer 404 when the caller no longer exists", func() {
		w := get(&internal.Principal{UserID: 7, EmployeeID: "gone", Role: internal.RoleUser})
		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Body.String()).To(ContainSubstring("User not found"))
	})

	It("should answer 401 without a principal", func() {
		Expect(get(nil).Code).To(Equal(http.StatusUnauthorized))
	})
})
