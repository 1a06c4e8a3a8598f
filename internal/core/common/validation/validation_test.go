package validation_test

import (
	"strings"
	"testing"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/core/common/validation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestValidation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validation Suite")
}

func fields(err *internal.AppError) []string {
	details, ok := err.Details.(internal.ValidationErrors)
	Expect(ok).To(BeTrue())
	var out []string
	for _, e := range details.Errors {
		out = append(out, e.Field)
	}
	return out
}

var _ = Describe("signup rules", func() {
	It("should pass a well formed signup", func() {
		v := validation.NewValidator()
		validation.ValidateEmployeeID(v, "e42")
		validation.ValidateName(v, "Dana")
		validation.ValidatePassword(v, "secret1", true)
		Expect(v.Validate()).To(BeNil())
	})

	It("should report one error per failing field", func() {
		v := validation.NewValidator()
		validation.ValidateEmployeeID(v, "")
		validation.ValidateName(v, "")
		validation.ValidatePassword(v, "", true)

		err := v.Validate()
		Expect(err).NotTo(BeNil())
		Expect(err.StatusCode).To(Equal(400))
		Expect(fields(err)).To(Equal([]string{"employeeId", "name", "password"}))
	})

	It("should reject whitespace inside employee ids", func() {
		v := validation.NewValidator()
		validation.ValidateEmployeeID(v, "e 42")
		Expect(v.Validate()).NotTo(BeNil())
	})

	It("should bound password length to what bcrypt accepts", func() {
		v := validation.NewValidator()
		validation.ValidatePassword(v, strings.Repeat("p", validation.MaxPasswordLength+1), true)
		Expect(v.Validate()).NotTo(BeNil())

		v = validation.NewValidator()
		validation.ValidatePassword(v, "abc", false)
		Expect(v.Validate()).To(BeNil())
	})
})
