package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/immsamyak/ClassTrack/models"
)

func seedUser(t *testing.T, db *gorm.DB, username, password, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := models.User{Username: username, PasswordHash: string(hash), Role: role, FullName: "Test User"}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestLoginSuccess(t *testing.T) {
	db := openTestDB(t)
	u := seedUser(t, db, "john", "secret1", models.RoleStudent)
	h := NewAuthHandler(db, "test-secret")
	e := newTestEcho()

	c, rec := jsonContext(e, http.MethodPost, "/auth/login",
		`{"username":"john","password":"secret1","role":"student"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token string `json:"token"`
		User  struct {
			UserID   uint   `json:"user_id"`
			Role     string `json:"role"`
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, u.ID, body.User.UserID)
	assert.Equal(t, "student", body.User.Role)

	// The token must parse with the same secret and carry the identity.
	tk, err := jwt.Parse(body.Token, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := tk.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(u.ID), claims["sub"])
	assert.Equal(t, "student", claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	db := openTestDB(t)
	seedUser(t, db, "john", "secret1", models.RoleStudent)
	h := NewAuthHandler(db, "test-secret")
	e := newTestEcho()

	c, _ := jsonContext(e, http.MethodPost, "/auth/login",
		`{"username":"john","password":"wrong","role":"student"}`)
	err := h.Login(c)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

// The login screen sends a role; correct credentials under the wrong role
// are still rejected.
func TestLoginWrongRole(t *testing.T) {
	db := openTestDB(t)
	seedUser(t, db, "john", "secret1", models.RoleStudent)
	h := NewAuthHandler(db, "test-secret")
	e := newTestEcho()

	c, _ := jsonContext(e, http.MethodPost, "/auth/login",
		`{"username":"john","password":"secret1","role":"admin"}`)
	err := h.Login(c)
	assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
}

func TestLoginRejectsUnknownRoleValue(t *testing.T) {
	db := openTestDB(t)
	h := NewAuthHandler(db, "test-secret")
	e := newTestEcho()

	c, _ := jsonContext(e, http.MethodPost, "/auth/login",
		`{"username":"john","password":"secret1","role":"superuser"}`)
	err := h.Login(c)
	require.Error(t, err)
}
