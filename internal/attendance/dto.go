package attendance

import "strings"

// MarkAttendanceDTO is the body of POST /mark-attendance. UserID carries the
// employee id.
type MarkAttendanceDTO struct {
	UserID string `json:"userId"`
}

func (d MarkAttendanceDTO) EmployeeID() string {
	return strings.TrimSpace(d.UserID)
}

type HistoryResponse struct {
	Records []*Record `json:"records"`
}
