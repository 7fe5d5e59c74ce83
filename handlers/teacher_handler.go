package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/immsamyak/ClassTrack/models"
)

type TeacherHandler struct {
	db *gorm.DB
}

func NewTeacherHandler(db *gorm.DB) *TeacherHandler { return &TeacherHandler{db: db} }

// GET /teachers?q=
func (h *TeacherHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))

	tx := h.db.Model(&models.Teacher{})
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(full_name) LIKE ? OR LOWER(employee_id) LIKE ? OR LOWER(department) LIKE ?",
			like, like, like)
	}

	var rows []models.Teacher
	if err := tx.Order("full_name ASC").Find(&rows).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}
	return c.JSON(http.StatusOK, rows)
}

type CreateTeacherReq struct {
	EmployeeID      string  `json:"employee_id" validate:"required"`
	FullName        string  `json:"full_name" validate:"required"`
	Gender          string  `json:"gender" validate:"required,oneof=Male Female Other"`
	Email           string  `json:"email" validate:"omitempty,email"`
	Phone           string  `json:"phone"`
	Department      string  `json:"department"`
	Qualification   string  `json:"qualification"`
	Specialization  string  `json:"specialization"`
	ExperienceYears int     `json:"experience_years" validate:"gte=0"`
	Salary          float64 `json:"salary" validate:"gte=0"`
	HireDate        string  `json:"hire_date"`

	// Optional login; without it the teacher has no account and cannot be
	// assigned subjects.
	Username string `json:"username" validate:"omitempty,min=3,max=50"`
	Password string `json:"password" validate:"omitempty,min=4"`
}

// POST /teachers
func (h *TeacherHandler) Create(c echo.Context) error {
	var req CreateTeacherReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if (req.Username == "") != (req.Password == "") {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "USERNAME_AND_PASSWORD_REQUIRED_TOGETHER"})
	}

	var created models.Teacher
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var userID *uint
		if req.Username != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user := models.User{
				Username:     strings.TrimSpace(req.Username),
				PasswordHash: string(hash),
				Role:         models.RoleTeacher,
				FullName:     req.FullName,
				Email:        req.Email,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			userID = &user.ID
		}
		created = models.Teacher{
			UserID:          userID,
			EmployeeID:      strings.TrimSpace(req.EmployeeID),
			FullName:        req.FullName,
			Gender:          req.Gender,
			Email:           req.Email,
			Phone:           req.Phone,
			Department:      req.Department,
			Qualification:   req.Qualification,
			Specialization:  req.Specialization,
			ExperienceYears: req.ExperienceYears,
			Salary:          req.Salary,
			HireDate:        req.HireDate,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "CREATE_FAILED", "detail": err.Error()})
	}
	return c.JSON(http.StatusCreated, created)
}

// DELETE /teachers/:id
// Blocked while any subject is assigned to the teacher.
func (h *TeacherHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	var teacher models.Teacher
	if err := h.db.First(&teacher, "teacher_id = ?", id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}

	if teacher.UserID != nil {
		var subjectCount int64
		if err := h.db.Model(&models.Subject{}).Where("teacher_id = ?", *teacher.UserID).Count(&subjectCount).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
		}
		if subjectCount > 0 {
			return echo.NewHTTPError(http.StatusConflict, map[string]any{
				"error": "HAS_DEPENDENCIES",
				"message": fmt.Sprintf(
					"Cannot delete %s because:\n• Teacher is assigned to %d subject(s)\n\nReassign or delete those subjects first.",
					teacher.FullName, subjectCount),
			})
		}
	}

	if err := h.db.Delete(&models.Teacher{}, "teacher_id = ?", teacher.ID).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DELETE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": teacher.ID})
}
