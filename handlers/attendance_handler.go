package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/immsamyak/ClassTrack/models"
)

type AttendanceHandler struct {
	db *gorm.DB
}

func NewAttendanceHandler(db *gorm.DB) *AttendanceHandler { return &AttendanceHandler{db: db} }

type MarkAttendanceReq struct {
	StudentID uint   `json:"student_id" validate:"required"`
	SubjectID uint   `json:"subject_id" validate:"required"`
	Date      string `json:"attendance_date" validate:"required,datetime=2006-01-02"`
	Status    string `json:"status" validate:"required"`
}

// POST /attendance/mark
// One row per (student, subject, date): an existing row gets its status
// updated, otherwise a new row is created. Concurrent markers can still
// race; there is no DB constraint backing this.
func (h *AttendanceHandler) Mark(c echo.Context) error {
	var req MarkAttendanceReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !models.ValidAttendanceStatus(req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_STATUS"})
	}

	markedBy, _ := c.Get("user_id").(uint)

	var existing models.Attendance
	err := h.db.Where("student_id = ? AND subject_id = ? AND attendance_date = ?",
		req.StudentID, req.SubjectID, req.Date).First(&existing).Error
	switch {
	case err == nil:
		existing.Status = req.Status
		existing.MarkedBy = &markedBy
		if err := h.db.Save(&existing).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SAVE_FAILED"})
		}
		return c.JSON(http.StatusOK, existing)
	case errors.Is(err, gorm.ErrRecordNotFound):
		rec := models.Attendance{
			StudentID: req.StudentID,
			SubjectID: req.SubjectID,
			Date:      req.Date,
			Status:    req.Status,
			MarkedBy:  &markedBy,
		}
		if err := h.db.Create(&rec).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SAVE_FAILED"})
		}
		return c.JSON(http.StatusCreated, rec)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}
}

type attendanceRow struct {
	AttendanceID uint   `json:"attendance_id"`
	Date         string `json:"attendance_date"`
	StudentName  string `json:"student_name"`
	RollNumber   string `json:"roll_number"`
	SubjectName  string `json:"subject_name"`
	Status       string `json:"status"`
}

// GET /attendance?class=&subject_id=&student_id=&from=&to=
func (h *AttendanceHandler) List(c echo.Context) error {
	class := strings.TrimSpace(c.QueryParam("class"))
	subjectID := strings.TrimSpace(c.QueryParam("subject_id"))
	studentID := strings.TrimSpace(c.QueryParam("student_id"))
	from := strings.TrimSpace(c.QueryParam("from"))
	to := strings.TrimSpace(c.QueryParam("to"))

	tx := h.db.
		Table("attendance AS a").
		Select("a.attendance_id AS attendance_id, a.attendance_date AS date, st.full_name AS student_name, " +
			"st.roll_number AS roll_number, sub.subject_name AS subject_name, a.status AS status").
		Joins("JOIN students st ON a.student_id = st.student_id").
		Joins("JOIN subjects sub ON a.subject_id = sub.subject_id")

	if class != "" {
		tx = tx.Where("st.class_name = ?", class)
	}
	if subjectID != "" {
		tx = tx.Where("a.subject_id = ?", subjectID)
	}
	if studentID != "" {
		tx = tx.Where("a.student_id = ?", studentID)
	}
	if from != "" {
		tx = tx.Where("a.attendance_date >= ?", from)
	}
	if to != "" {
		tx = tx.Where("a.attendance_date <= ?", to)
	}

	var rows []attendanceRow
	if err := tx.Order("a.attendance_date DESC, st.roll_number ASC").Scan(&rows).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}
	return c.JSON(http.StatusOK, rows)
}
