package middleware

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/frahmantamala/attendance-management/pkg/logger"
	"github.com/go-chi/chi"
)

// RequireSelfOrAdmin lets the request through when the authenticated caller
// is an admin or owns the employee id in URL parameter param. It must run
// after the auth middleware.
func RequireSelfOrAdmin(param string, lg *slog.Logger) func(http.Handler) http.Handler {
	base := transport.NewBaseHandler(lg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := internal.PrincipalFromContext(r.Context())
			if !ok {
				base.HandleError(w, internal.ErrMissingToken)
				return
			}

			if !principal.CanAccessEmployee(chi.URLParam(r, param)) {
				logger.FromOr(r.Context(), base.Logger).Warn("access denied: not owner or admin",
					"user_id", principal.UserID,
					"role", principal.Role,
					"path", r.URL.Path)
				base.HandleError(w, internal.ErrUnauthorizedAccess)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
