package transport_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/frahmantamala/attendance-management/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type loginBody struct {
	EmployeeID string `json:"employeeId"`
	Password   string `json:"password"`
}

var _ = Describe("BaseHandler.DecodeJSON", func() {
	var h *transport.BaseHandler

	BeforeEach(func() {
		h = transport.NewBaseHandler(logger.Discard())
	})

	It("should decode a small body", func() {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"employeeId":"e42","password":"secret-pass"}`))
		var dst loginBody

		appErr := h.DecodeJSON(httptest.NewRecorder(), req, &dst)
		Expect(appErr).To(BeNil())
		Expect(dst.EmployeeID).To(Equal("e42"))
	})

	It("should reject a body over the limit", func() {
		padding := strings.Repeat("a", transport.MaxRequestBodyBytes)
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"employeeId":"e42","password":"`+padding+`"}`))
		var dst loginBody

		appErr := h.DecodeJSON(httptest.NewRecorder(), req, &dst)
		Expect(appErr).NotTo(BeNil())
		Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
		Expect(appErr.Message).To(Equal("request body too large"))
	})

	It("should reject malformed JSON", func() {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"employeeId":`))
		var dst loginBody

		appErr := h.DecodeJSON(httptest.NewRecorder(), req, &dst)
		Expect(appErr).NotTo(BeNil())
		Expect(appErr.Message).To(Equal("invalid request body"))
	})
})
