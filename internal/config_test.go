package internal_test

import (
	"strings"
	"time"

	"github.com/frahmantamala/attendance-management/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	valid := func() *internal.Config {
		cfg := &internal.Config{
			Database: internal.DatabaseConfig{Source: "postgres://localhost/attendance"},
			Security: internal.SecurityConfig{JWTSecret: strings.Repeat("s", internal.MinJWTSecretLength)},
		}
		cfg.ApplyDefaults()
		return cfg
	}

	It("should fill safe defaults for everything but secrets", func() {
		cfg := &internal.Config{}
		cfg.ApplyDefaults()

		Expect(cfg.Server.Port).To(Equal(5000))
		Expect(cfg.Security.AccessTokenDuration).To(Equal(time.Hour))
		Expect(cfg.Security.AdminEmployeeID).To(Equal("admin1"))
		Expect(cfg.Security.JWTSecret).To(BeEmpty())
		Expect(cfg.Database.Source).To(BeEmpty())
	})

	It("should accept a complete config", func() {
		Expect(valid().Validate()).To(Succeed())
	})

	It("should fail without a JWT secret", func() {
		cfg := valid()
		cfg.Security.JWTSecret = ""
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("jwt_secret is required")))
	})

	It("should fail on a short JWT secret", func() {
		cfg := valid()
		cfg.Security.JWTSecret = "short"
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("at least")))
	})

	It("should fail without a database source", func() {
		cfg := valid()
		cfg.Database.Source = ""
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("source is required")))
	})

	It("should reject an out of range bcrypt cost", func() {
		cfg := valid()
		cfg.Security.BCryptCost = 4
		Expect(cfg.Validate()).To(HaveOccurred())
	})

	Describe("LoadConfigFromEnv", func() {
		It("should leave secrets empty when the environment has none", func() {
			GinkgoT().Setenv("JWT_SECRET", "")
			GinkgoT().Setenv("DATABASE_URL", "")

			cfg := internal.LoadConfigFromEnv()
			Expect(cfg.Security.JWTSecret).To(BeEmpty())
			Expect(cfg.Database.Source).To(BeEmpty())
			Expect(cfg.Validate()).To(HaveOccurred())
		})

		It("should read the deployment variables", func() {
			GinkgoT().Setenv("PORT", "8080")
			GinkgoT().Setenv("DATABASE_URL", "postgres://db/attendance")
			GinkgoT().Setenv("JWT_SECRET", strings.Repeat("k", 40))
			GinkgoT().Setenv("ADMIN_EMPLOYEE_ID", "chief")

			cfg := internal.LoadConfigFromEnv()
			Expect(cfg.Server.Port).To(Equal(8080))
			Expect(cfg.Security.AdminEmployeeID).To(Equal("chief"))
			Expect(cfg.Validate()).To(Succeed())
		})
	})
})
