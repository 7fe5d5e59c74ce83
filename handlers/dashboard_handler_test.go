package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/immsamyak/ClassTrack/chatbot"
	"github.com/immsamyak/ClassTrack/models"
)

func TestDashboardSummary(t *testing.T) {
	db := openTestDB(t)
	st, subject := seedClassFixture(t, db)
	seedStudent(t, db, "R-2", "Mary Ann", "BBA")
	require.NoError(t, db.Create(&models.Teacher{EmployeeID: "EMP01", FullName: "Jane Smith", Gender: "Female"}).Error)
	require.NoError(t, db.Create(&models.Attendance{
		StudentID: st.ID, SubjectID: subject.ID, Date: "2025-03-01", Status: models.AttendancePresent,
	}).Error)
	require.NoError(t, db.Create(&models.Attendance{
		StudentID: st.ID, SubjectID: subject.ID, Date: "2025-03-02", Status: models.AttendanceAbsent,
	}).Error)

	h := NewDashboardHandler(chatbot.NewStore(db))
	e := newTestEcho()
	c, rec := jsonContext(e, http.MethodGet, "/staff/dashboard/summary", "")
	require.NoError(t, h.Summary(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Students          int                  `json:"students"`
		Teachers          int                  `json:"teachers"`
		Subjects          int                  `json:"subjects"`
		AverageAttendance float64              `json:"average_attendance"`
		ClassCounts       []chatbot.ClassCount `json:"class_counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Students)
	assert.Equal(t, 1, body.Teachers)
	assert.Equal(t, 1, body.Subjects)
	// Only students with attendance rows contribute a ratio; 1/2 = 50%.
	assert.Equal(t, 50.0, body.AverageAttendance)

	require.Len(t, body.ClassCounts, 2)
	assert.Equal(t, chatbot.ClassCount{ClassName: "BBA", Students: 1}, body.ClassCounts[0])
	assert.Equal(t, chatbot.ClassCount{ClassName: "BCSIT", Students: 1}, body.ClassCounts[1])
}
