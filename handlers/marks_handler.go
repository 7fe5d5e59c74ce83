package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/immsamyak/ClassTrack/models"
)

type MarksHandler struct {
	db *gorm.DB
}

func NewMarksHandler(db *gorm.DB) *MarksHandler { return &MarksHandler{db: db} }

type AddMarkReq struct {
	StudentID     uint    `json:"student_id" validate:"required"`
	SubjectID     uint    `json:"subject_id" validate:"required"`
	ExamType      string  `json:"exam_type" validate:"required"`
	MarksObtained float64 `json:"marks_obtained" validate:"gte=0"`
	TotalMarks    float64 `json:"total_marks" validate:"gt=0"`
	Grade         string  `json:"grade"`
	ExamDate      string  `json:"exam_date" validate:"omitempty,datetime=2006-01-02"`
}

// POST /marks
func (h *MarksHandler) Create(c echo.Context) error {
	var req AddMarkReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.MarksObtained > req.TotalMarks {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MARKS_EXCEED_TOTAL"})
	}

	enteredBy, _ := c.Get("user_id").(uint)

	grade := strings.TrimSpace(req.Grade)
	if grade == "" {
		grade = h.gradeFor(req.MarksObtained / req.TotalMarks * 100)
	}

	rec := models.Mark{
		StudentID:     req.StudentID,
		SubjectID:     req.SubjectID,
		ExamType:      req.ExamType,
		MarksObtained: req.MarksObtained,
		TotalMarks:    req.TotalMarks,
		Grade:         grade,
		ExamDate:      req.ExamDate,
		EnteredBy:     &enteredBy,
	}
	if err := h.db.Create(&rec).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SAVE_FAILED"})
	}
	return c.JSON(http.StatusCreated, rec)
}

// gradeFor derives a letter grade from the configured thresholds; settings
// hold them as plain strings, so unparsable values fall back to defaults.
func (h *MarksHandler) gradeFor(pct float64) string {
	a := h.threshold("grade_a_percentage", 90)
	b := h.threshold("grade_b_percentage", 80)
	cThr := h.threshold("grade_c_percentage", 70)
	d := h.threshold("grade_d_percentage", 40)

	switch {
	case pct >= a:
		return "A"
	case pct >= b:
		return "B"
	case pct >= cThr:
		return "C"
	case pct >= d:
		return "D"
	default:
		return "F"
	}
}

func (h *MarksHandler) threshold(name string, def float64) float64 {
	var s models.Setting
	if err := h.db.Where("setting_name = ?", name).First(&s).Error; err != nil {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s.Value), 64)
	if err != nil {
		return def
	}
	return v
}

type markRow struct {
	MarkID        uint    `json:"mark_id"`
	StudentName   string  `json:"student_name"`
	SubjectName   string  `json:"subject_name"`
	ExamType      string  `json:"exam_type"`
	MarksObtained float64 `json:"marks_obtained"`
	TotalMarks    float64 `json:"total_marks"`
	Grade         string  `json:"grade"`
	ExamDate      string  `json:"exam_date"`
}

// GET /marks?q=&subject_id=&student_id=
func (h *MarksHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	subjectID := strings.TrimSpace(c.QueryParam("subject_id"))
	studentID := strings.TrimSpace(c.QueryParam("student_id"))

	tx := h.db.
		Table("marks AS m").
		Select("m.mark_id AS mark_id, st.full_name AS student_name, sub.subject_name AS subject_name, " +
			"m.exam_type AS exam_type, m.marks_obtained AS marks_obtained, m.total_marks AS total_marks, " +
			"COALESCE(m.grade, '') AS grade, COALESCE(m.exam_date, '') AS exam_date").
		Joins("JOIN students st ON m.student_id = st.student_id").
		Joins("JOIN subjects sub ON m.subject_id = sub.subject_id")

	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(st.full_name) LIKE ? OR LOWER(sub.subject_name) LIKE ? OR LOWER(m.exam_type) LIKE ?",
			like, like, like)
	}
	if subjectID != "" {
		tx = tx.Where("m.subject_id = ?", subjectID)
	}
	if studentID != "" {
		tx = tx.Where("m.student_id = ?", studentID)
	}

	var rows []markRow
	if err := tx.Order("m.exam_date DESC, st.full_name ASC").Scan(&rows).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}
	return c.JSON(http.StatusOK, rows)
}

// DELETE /marks/:id
func (h *MarksHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	var rec models.Mark
	if err := h.db.First(&rec, "mark_id = ?", id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	if err := h.db.Delete(&models.Mark{}, "mark_id = ?", rec.ID).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DELETE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": rec.ID})
}
