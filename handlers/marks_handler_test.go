package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/immsamyak/ClassTrack/models"
)

func addMarkBody(studentID, subjectID uint, examType string, obtained, total float64) string {
	b, _ := json.Marshal(map[string]any{
		"student_id":     studentID,
		"subject_id":     subjectID,
		"exam_type":      examType,
		"marks_obtained": obtained,
		"total_marks":    total,
	})
	return string(b)
}

func TestAddMarkDerivesGradeFromSettings(t *testing.T) {
	db := openTestDB(t)
	st, subject := seedClassFixture(t, db)
	h := NewMarksHandler(db)
	e := newTestEcho()

	// 85% with the default thresholds (A=90, B=80) is a B.
	c, rec := jsonContext(e, http.MethodPost, "/staff/marks",
		addMarkBody(st.ID, subject.ID, "Midterm", 85, 100))
	c.Set("user_id", uint(7))
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created models.Mark
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "B", created.Grade)

	// Lowering the A threshold below 85 flips the derived grade.
	require.NoError(t, db.Create(&models.Setting{Name: "grade_a_percentage", Value: "84"}).Error)
	c, rec = jsonContext(e, http.MethodPost, "/staff/marks",
		addMarkBody(st.ID, subject.ID, "Final", 85, 100))
	c.Set("user_id", uint(7))
	require.NoError(t, h.Create(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "A", created.Grade)
}

func TestAddMarkKeepsExplicitGrade(t *testing.T) {
	db := openTestDB(t)
	st, subject := seedClassFixture(t, db)
	h := NewMarksHandler(db)
	e := newTestEcho()

	c, rec := jsonContext(e, http.MethodPost, "/staff/marks",
		`{"student_id":`+fmt.Sprint(st.ID)+`,"subject_id":`+fmt.Sprint(subject.ID)+
			`,"exam_type":"Quiz","marks_obtained":9,"total_marks":10,"grade":"A+"}`)
	c.Set("user_id", uint(7))
	require.NoError(t, h.Create(c))

	var created models.Mark
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "A+", created.Grade)
}

func TestAddMarkRejectsObtainedAboveTotal(t *testing.T) {
	db := openTestDB(t)
	st, subject := seedClassFixture(t, db)
	h := NewMarksHandler(db)
	e := newTestEcho()

	c, _ := jsonContext(e, http.MethodPost, "/staff/marks",
		addMarkBody(st.ID, subject.ID, "Quiz", 11, 10))
	c.Set("user_id", uint(7))
	err := h.Create(c)
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, err))

	// Zero total never reaches the grade math.
	c, _ = jsonContext(e, http.MethodPost, "/staff/marks",
		addMarkBody(st.ID, subject.ID, "Quiz", 0, 0))
	c.Set("user_id", uint(7))
	assert.Error(t, h.Create(c))
}

func TestMarksDelete(t *testing.T) {
	db := openTestDB(t)
	st, subject := seedClassFixture(t, db)
	rec := models.Mark{StudentID: st.ID, SubjectID: subject.ID, ExamType: "Quiz", MarksObtained: 8, TotalMarks: 10}
	require.NoError(t, db.Create(&rec).Error)

	h := NewMarksHandler(db)
	e := newTestEcho()
	c, w := jsonContext(e, http.MethodDelete, "/staff/marks/1", "")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprint(rec.ID))
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, w.Code)

	var n int64
	require.NoError(t, db.Model(&models.Mark{}).Count(&n).Error)
	assert.Zero(t, n)
}
