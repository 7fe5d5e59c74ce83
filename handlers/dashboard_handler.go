package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/immsamyak/ClassTrack/chatbot"
)

// DashboardHandler reuses the chatbot's report-query layer so the dashboard
// and the assistant aggregate identically.
type DashboardHandler struct {
	store chatbot.Store
}

func NewDashboardHandler(store chatbot.Store) *DashboardHandler {
	return &DashboardHandler{store: store}
}

// GET /dashboard/summary
func (h *DashboardHandler) Summary(c echo.Context) error {
	counts, err := h.store.Counts()
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "DB_UNAVAILABLE"})
	}
	ratios, err := h.store.AttendanceRatios()
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "DB_UNAVAILABLE"})
	}
	classes, err := h.store.ClassStudentCounts()
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "DB_UNAVAILABLE"})
	}
	recent, err := h.store.RecentAttendance(7)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, map[string]any{"error": "DB_UNAVAILABLE"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"students":           counts.Students,
		"teachers":           counts.Teachers,
		"subjects":           counts.Subjects,
		"average_attendance": chatbot.AverageAttendance(ratios),
		"class_counts":       classes,
		"recent_attendance":  recent,
	})
}
