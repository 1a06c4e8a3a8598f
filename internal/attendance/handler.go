package attendance

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/attendance-management/internal"
	"github.com/frahmantamala/attendance-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	MarkAttendance(ctx context.Context, caller *internal.Principal, employeeID string) (*Record, error)
	GetHistory(ctx context.Context, employeeID string) ([]*Record, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI, lg *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// MarkAttendance handles POST /mark-attendance
func (h *Handler) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var dto MarkAttendanceDTO
	if appErr := h.DecodeJSON(w, r, &dto); appErr != nil {
		h.HandleError(w, appErr)
		return
	}

	principal, _ := internal.PrincipalFromContext(r.Context())

	if _, err := h.Service.MarkAttendance(r.Context(), principal, dto.EmployeeID()); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, transport.MessageResponse{Msg: "Attendance marked successfully!"})
}

// GetHistory handles GET /attendances/{employeeId}
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")

	records, err := h.Service.GetHistory(r.Context(), employeeID)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, HistoryResponse{Records: records})
}
