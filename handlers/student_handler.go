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

type StudentHandler struct {
	db *gorm.DB
}

func NewStudentHandler(db *gorm.DB) *StudentHandler { return &StudentHandler{db: db} }

// GET /students?q=&class=
func (h *StudentHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	class := strings.TrimSpace(c.QueryParam("class"))

	tx := h.db.Model(&models.Student{})
	if class != "" {
		tx = tx.Where("class_name = ?", class)
	}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(full_name) LIKE ? OR LOWER(roll_number) LIKE ? OR LOWER(class_name) LIKE ?",
			like, like, like)
	}

	var rows []models.Student
	if err := tx.Order("roll_number ASC").Find(&rows).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}
	return c.JSON(http.StatusOK, rows)
}

type CreateStudentReq struct {
	Username       string `json:"username" validate:"required,min=3,max=50"`
	Password       string `json:"password" validate:"required,min=4"`
	RollNumber     string `json:"roll_number" validate:"required"`
	FullName       string `json:"full_name" validate:"required"`
	Gender         string `json:"gender" validate:"required,oneof=Male Female Other"`
	DateOfBirth    string `json:"date_of_birth"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	GuardianName   string `json:"guardian_name"`
	GuardianPhone  string `json:"guardian_phone"`
	ClassName      string `json:"class_name" validate:"required"`
	EnrollmentDate string `json:"enrollment_date"`
}

// POST /students
// Creates the backing users row (role=student) and the student row in one
// transaction, so a student always owns exactly one login.
func (h *StudentHandler) Create(c echo.Context) error {
	var req CreateStudentReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "HASH_FAILED"})
	}

	var created models.Student
	err = h.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Username:     strings.TrimSpace(req.Username),
			PasswordHash: string(hash),
			Role:         models.RoleStudent,
			FullName:     req.FullName,
			Email:        req.Email,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		created = models.Student{
			UserID:         user.ID,
			RollNumber:     strings.TrimSpace(req.RollNumber),
			FullName:       req.FullName,
			Gender:         req.Gender,
			DateOfBirth:    req.DateOfBirth,
			Email:          req.Email,
			Phone:          req.Phone,
			Address:        req.Address,
			GuardianName:   req.GuardianName,
			GuardianPhone:  req.GuardianPhone,
			ClassName:      req.ClassName,
			EnrollmentDate: req.EnrollmentDate,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{"error": "CREATE_FAILED", "detail": err.Error()})
	}
	return c.JSON(http.StatusCreated, created)
}

// DELETE /students/:id
// Deletion is blocked while attendance or marks rows reference the student;
// the message carries the dependency counts.
func (h *StudentHandler) Delete(c echo.Context) error {
	id := c.Param("id")

	var student models.Student
	if err := h.db.First(&student, "student_id = ?", id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}

	var attendanceCount, marksCount int64
	if err := h.db.Model(&models.Attendance{}).Where("student_id = ?", student.ID).Count(&attendanceCount).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}
	if err := h.db.Model(&models.Mark{}).Where("student_id = ?", student.ID).Count(&marksCount).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}

	if attendanceCount > 0 || marksCount > 0 {
		return echo.NewHTTPError(http.StatusConflict, map[string]any{
			"error":   "HAS_DEPENDENCIES",
			"message": dependencyMessage("Student", student.FullName, attendanceCount, marksCount),
		})
	}

	if err := h.db.Delete(&models.Student{}, "student_id = ?", student.ID).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DELETE_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": student.ID})
}

// dependencyMessage mirrors the warning the management screens show before
// refusing a delete.
func dependencyMessage(kind, name string, attendanceCount, marksCount int64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Cannot delete %s because:\n", name)
	if attendanceCount > 0 {
		fmt.Fprintf(&sb, "• %s has %d attendance record(s)\n", kind, attendanceCount)
	}
	if marksCount > 0 {
		fmt.Fprintf(&sb, "• %s has %d mark(s) record(s)\n", kind, marksCount)
	}
	sb.WriteString("\nDelete attendance and marks records first, or contact administrator.")
	return sb.String()
}
