package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/immsamyak/ClassTrack/models"
)

type SubjectHandler struct {
	db *gorm.DB
}

func NewSubjectHandler(db *gorm.DB) *SubjectHandler { return &SubjectHandler{db: db} }

// GET /subjects?class=
func (h *SubjectHandler) List(c echo.Context) error {
	class := strings.TrimSpace(c.QueryParam("class"))

	tx := h.db.Model(&models.Subject{})
	if class != "" {
		tx = tx.Where("class_name = ?", class)
	}

	var rows []models.Subject
	if err := tx.Order("class_name ASC, subject_name ASC").Find(&rows).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}
	return c.JSON(http.StatusOK, rows)
}

type SubjectReq struct {
	SubjectName string `json:"subject_name" validate:"required"`
	SubjectCode string `json:"subject_code" validate:"required"`
	ClassName   string `json:"class_name" validate:"required"`
	TeacherID   *uint  `json:"teacher_id"`
	CreditHours int    `json:"credit_hours" validate:"gte=0,lte=10"`
	Description string `json:"description"`
}

// POST /subjects
func (h *SubjectHandler) Create(c echo.Context) error {
	var req SubjectReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.CreditHours == 0 {
		req.CreditHours = 3
	}

	subject := models.Subject{
		SubjectName: req.SubjectName,
		SubjectCode: strings.TrimSpace(req.SubjectCode),
		ClassName:   req.ClassName,
		TeacherID:   req.TeacherID,
		CreditHours: req.CreditHours,
		Description: req.Description,
	}
	if err := h.db.Create(&subject).Error; err != nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "CREATE_FAILED", "detail": err.Error()})
	}
	return c.JSON(http.StatusCreated, subject)
}

// PUT /subjects/:id
func (h *SubjectHandler) Update(c echo.Context) error {
	id := c.Param("id")

	var subject models.Subject
	if err := h.db.First(&subject, "subject_id = ?", id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}

	var req SubjectReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.CreditHours == 0 {
		req.CreditHours = 3
	}

	subject.SubjectName = req.SubjectName
	subject.SubjectCode = strings.TrimSpace(req.SubjectCode)
	subject.ClassName = req.ClassName
	subject.TeacherID = req.TeacherID
	subject.CreditHours = req.CreditHours
	subject.Description = req.Description

	if err := h.db.Save(&subject).Error; err != nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "UPDATE_FAILED", "detail": err.Error()})
	}
	return c.JSON(http.StatusOK, subject)
}

// DELETE /subjects/:id
// Blocked while attendance or marks rows reference the subject.
func (h *SubjectHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	var subject models.Subject
	if err := h.db.First(&subject, "subject_id = ?", id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}

	var attendanceCount, marksCount int64
	if err := h.db.Model(&models.Attendance{}).Where("subject_id = ?", subject.ID).Count(&attendanceCount).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}
	if err := h.db.Model(&models.Mark{}).Where("subject_id = ?", subject.ID).Count(&marksCount).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}

	if attendanceCount > 0 || marksCount > 0 {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{
			"error":   "HAS_DEPENDENCIES",
			"message": dependencyMessage("Subject", subject.SubjectName, attendanceCount, marksCount),
		})
	}

	if err := h.db.Delete(&models.Subject{}, "subject_id = ?", subject.ID).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DELETE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": subject.ID})
}
