package chatbot

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/immsamyak/ClassTrack/models"
)

// Row shapes returned by the report queries. Percentages are never computed
// in SQL; the report layer derives and rounds them so every backend agrees.

type SubjectAttendance struct {
	SubjectName string
	Total       int
	Attended    int
}

type ClassAttendance struct {
	SubjectName string
	ClassName   string
	Students    int
	Records     int
	Present     int
}

type ExamResult struct {
	SubjectName   string
	ExamType      string
	MarksObtained float64
	TotalMarks    float64
	Grade         string
	ExamDate      string
}

type ClassExamSummary struct {
	SubjectName string
	ClassName   string
	ExamType    string
	Students    int
	AvgMarks    float64
	MaxMarks    float64
	MinMarks    float64
	TotalMarks  float64
}

type StudentProfile struct {
	RollNumber     string
	FullName       string
	ClassName      string
	Phone          string
	Email          string
	Address        string
	EnrollmentDate string
	Gender         string
	DateOfBirth    string
	GuardianName   string
	GuardianPhone  string
}

type SubjectInfo struct {
	SubjectName string
	SubjectCode string
	ClassName   string
	TeacherName string
	Students    int
}

type TeacherInfo struct {
	EmployeeID      string
	FullName        string
	Department      string
	Qualification   string
	ExperienceYears int
	Email           string
	Phone           string
	Subjects        int
}

// StudentRatio is one student's own attendance tally. The system-wide
// average is the mean of these per-student ratios, not a pooled
// present/total across all rows.
type StudentRatio struct {
	StudentID uint
	Total     int
	Present   int
}

type DailyAttendance struct {
	Date    string
	Records int
	Present int
}

type Counts struct {
	Students int
	Teachers int
	Subjects int
}

type ClassCount struct {
	ClassName string `json:"class_name"`
	Students  int    `json:"students"`
}

// Store is everything the report handlers read. The dashboard shares it so
// both surfaces aggregate identically.
type Store interface {
	StudentAttendance(userID uint) ([]SubjectAttendance, error)
	ClassAttendanceSummary() ([]ClassAttendance, error)
	StudentMarks(userID uint) ([]ExamResult, error)
	ClassMarksSummary() ([]ClassExamSummary, error)
	StudentProfile(userID uint) (*StudentProfile, error)
	StudentSubjects(userID uint) ([]SubjectInfo, error)
	TeacherSubjects(userID uint) ([]SubjectInfo, error)
	AllSubjects() ([]SubjectInfo, error)
	Teachers() ([]TeacherInfo, error)
	Counts() (Counts, error)
	ClassStudentCounts() ([]ClassCount, error)
	AttendanceRatios() ([]StudentRatio, error)
	RecentAttendance(days int) ([]DailyAttendance, error)
}

type gormStore struct {
	db *gorm.DB
}

// NewStore wraps the shared pool in the report-query layer.
func NewStore(db *gorm.DB) Store { return &gormStore{db: db} }

func (s *gormStore) StudentAttendance(userID uint) ([]SubjectAttendance, error) {
	var rows []SubjectAttendance
	err := s.db.
		Table("attendance AS a").
		Select("sub.subject_name AS subject_name, COUNT(*) AS total, SUM(CASE WHEN a.status = 'present' THEN 1 ELSE 0 END) AS attended").
		Joins("JOIN subjects sub ON a.subject_id = sub.subject_id").
		Joins("JOIN students st ON a.student_id = st.student_id").
		Where("st.user_id = ?", userID).
		Group("sub.subject_id, sub.subject_name").
		Order("sub.subject_name").
		Scan(&rows).Error
	return rows, err
}

func (s *gormStore) ClassAttendanceSummary() ([]ClassAttendance, error) {
	var rows []ClassAttendance
	err := s.db.
		Table("attendance AS a").
		Select("sub.subject_name AS subject_name, sub.class_name AS class_name, " +
			"COUNT(DISTINCT st.student_id) AS students, COUNT(*) AS records, " +
			"SUM(CASE WHEN a.status = 'present' THEN 1 ELSE 0 END) AS present").
		Joins("JOIN subjects sub ON a.subject_id = sub.subject_id").
		Joins("JOIN students st ON a.student_id = st.student_id").
		Group("sub.subject_id, sub.subject_name, sub.class_name").
		Order("sub.class_name, sub.subject_name").
		Scan(&rows).Error
	return rows, err
}

func (s *gormStore) StudentMarks(userID uint) ([]ExamResult, error) {
	var rows []ExamResult
	err := s.db.
		Table("marks AS m").
		Select("sub.subject_name AS subject_name, m.exam_type AS exam_type, m.marks_obtained AS marks_obtained, " +
			"m.total_marks AS total_marks, COALESCE(m.grade, '') AS grade, COALESCE(m.exam_date, '') AS exam_date").
		Joins("JOIN subjects sub ON m.subject_id = sub.subject_id").
		Joins("JOIN students st ON m.student_id = st.student_id").
		Where("st.user_id = ?", userID).
		Order("m.exam_date DESC, sub.subject_name").
		Scan(&rows).Error
	return rows, err
}

func (s *gormStore) ClassMarksSummary() ([]ClassExamSummary, error) {
	var rows []ClassExamSummary
	err := s.db.
		Table("marks AS m").
		Select("sub.subject_name AS subject_name, sub.class_name AS class_name, m.exam_type AS exam_type, " +
			"COUNT(*) AS students, AVG(m.marks_obtained) AS avg_marks, MAX(m.marks_obtained) AS max_marks, " +
			"MIN(m.marks_obtained) AS min_marks, m.total_marks AS total_marks").
		Joins("JOIN subjects sub ON m.subject_id = sub.subject_id").
		Group("sub.subject_id, sub.subject_name, sub.class_name, m.exam_type, m.total_marks").
		Order("sub.class_name, sub.subject_name, m.exam_type").
		Scan(&rows).Error
	return rows, err
}

func (s *gormStore) StudentProfile(userID uint) (*StudentProfile, error) {
	var p StudentProfile
	err := s.db.
		Table("students AS st").
		Select("st.roll_number AS roll_number, st.full_name AS full_name, st.class_name AS class_name, " +
			"st.phone AS phone, st.email AS email, st.address AS address, st.enrollment_date AS enrollment_date, " +
			"st.gender AS gender, st.date_of_birth AS date_of_birth, st.guardian_name AS guardian_name, " +
			"st.guardian_phone AS guardian_phone").
		Joins("JOIN users u ON st.user_id = u.user_id").
		Where("u.user_id = ?", userID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *gormStore) StudentSubjects(userID uint) ([]SubjectInfo, error) {
	var rows []SubjectInfo
	err := s.db.
		Table("subjects AS sub").
		Select("DISTINCT sub.subject_name AS subject_name, sub.subject_code AS subject_code, " +
			"sub.class_name AS class_name, COALESCE(u.full_name, '') AS teacher_name, 0 AS students").
		Joins("LEFT JOIN users u ON sub.teacher_id = u.user_id").
		Joins("JOIN students st ON sub.class_name = st.class_name").
		Where("st.user_id = ?", userID).
		Order("sub.subject_name").
		Scan(&rows).Error
	return rows, err
}

func (s *gormStore) TeacherSubjects(userID uint) ([]SubjectInfo, error) {
	var rows []SubjectInfo
	err := s.db.
		Table("subjects AS sub").
		Select("sub.subject_name AS subject_name, sub.subject_code AS subject_code, sub.class_name AS class_name, "+
			"'' AS teacher_name, COUNT(DISTINCT st.student_id) AS students").
		Joins("LEFT JOIN students st ON sub.class_name = st.class_name").
		Where("sub.teacher_id = ?", userID).
		Group("sub.subject_id, sub.subject_name, sub.subject_code, sub.class_name").
		Order("sub.class_name, sub.subject_name").
		Scan(&rows).Error
	return rows, err
}

func (s *gormStore) AllSubjects() ([]SubjectInfo, error) {
	var rows []SubjectInfo
	err := s.db.
		Table("subjects AS sub").
		Select("sub.subject_name AS subject_name, sub.subject_code AS subject_code, sub.class_name AS class_name, " +
			"COALESCE(u.full_name, '') AS teacher_name, COUNT(DISTINCT st.student_id) AS students").
		Joins("LEFT JOIN users u ON sub.teacher_id = u.user_id").
		Joins("LEFT JOIN students st ON sub.class_name = st.class_name").
		Group("sub.subject_id, sub.subject_name, sub.subject_code, sub.class_name, u.full_name").
		Order("sub.class_name, sub.subject_name").
		Scan(&rows).Error
	return rows, err
}

func (s *gormStore) Teachers() ([]TeacherInfo, error) {
	var rows []TeacherInfo
	err := s.db.
		Table("teachers AS t").
		Select("t.employee_id AS employee_id, t.full_name AS full_name, COALESCE(t.department, '') AS department, " +
			"COALESCE(t.qualification, '') AS qualification, t.experience_years AS experience_years, " +
			"COALESCE(t.email, '') AS email, COALESCE(t.phone, '') AS phone, " +
			"COUNT(DISTINCT sub.subject_id) AS subjects").
		Joins("LEFT JOIN subjects sub ON sub.teacher_id = t.user_id").
		Group("t.teacher_id, t.employee_id, t.full_name, t.department, t.qualification, t.experience_years, t.email, t.phone").
		Order("t.full_name").
		Scan(&rows).Error
	return rows, err
}

func (s *gormStore) Counts() (Counts, error) {
	var c Counts
	var n int64
	if err := s.db.Model(&models.Student{}).Count(&n).Error; err != nil {
		return c, err
	}
	c.Students = int(n)
	if err := s.db.Model(&models.Teacher{}).Count(&n).Error; err != nil {
		return c, err
	}
	c.Teachers = int(n)
	if err := s.db.Model(&models.Subject{}).Count(&n).Error; err != nil {
		return c, err
	}
	c.Subjects = int(n)
	return c, nil
}

func (s *gormStore) ClassStudentCounts() ([]ClassCount, error) {
	var rows []ClassCount
	err := s.db.
		Table("students").
		Select("class_name, COUNT(*) AS students").
		Group("class_name").
		Order("class_name").
		Scan(&rows).Error
	return rows, err
}

func (s *gormStore) AttendanceRatios() ([]StudentRatio, error) {
	var rows []StudentRatio
	err := s.db.
		Table("attendance").
		Select("student_id, COUNT(*) AS total, SUM(CASE WHEN status = 'present' THEN 1 ELSE 0 END) AS present").
		Group("student_id").
		Scan(&rows).Error
	return rows, err
}

func (s *gormStore) RecentAttendance(days int) ([]DailyAttendance, error) {
	cutoff := time.Now().AddDate(0, 0, -days).Format("2006-01-02")
	var rows []DailyAttendance
	err := s.db.
		Table("attendance").
		Select("attendance_date AS date, COUNT(*) AS records, SUM(CASE WHEN status = 'present' THEN 1 ELSE 0 END) AS present").
		Where("attendance_date >= ?", cutoff).
		Group("attendance_date").
		Order("attendance_date DESC").
		Limit(days).
		Scan(&rows).Error
	return rows, err
}
