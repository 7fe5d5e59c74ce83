package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/immsamyak/ClassTrack/models"
)

type SettingsHandler struct {
	db *gorm.DB
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler { return &SettingsHandler{db: db} }

// GET /settings
func (h *SettingsHandler) List(c echo.Context) error {
	var rows []models.Setting
	if err := h.db.Order("setting_name ASC").Find(&rows).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /settings/:name
func (h *SettingsHandler) Get(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))

	var s models.Setting
	err := h.db.Where("setting_name = ?", name).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}
	return c.JSON(http.StatusOK, s)
}

type SaveSettingReq struct {
	Value string `json:"setting_value"`
}

// PUT /settings/:name — upsert; keys have no lifecycle beyond this.
func (h *SettingsHandler) Save(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "MISSING_NAME"})
	}

	var req SaveSettingReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	var s models.Setting
	err := h.db.Where("setting_name = ?", name).First(&s).Error
	switch {
	case err == nil:
		s.Value = req.Value
		if err := h.db.Save(&s).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SAVE_FAILED"})
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		s = models.Setting{Name: name, Value: req.Value}
		if err := h.db.Create(&s).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "SAVE_FAILED"})
		}
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_ERROR"})
	}
	return c.JSON(http.StatusOK, s)
}

// DELETE /settings/:name
func (h *SettingsHandler) Delete(c echo.Context) error {
	name := strings.TrimSpace(c.Param("name"))

	res := h.db.Where("setting_name = ?", name).Delete(&models.Setting{})
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DELETE_FAILED"})
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": name})
}
