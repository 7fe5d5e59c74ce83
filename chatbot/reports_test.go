package chatbot

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/immsamyak/ClassTrack/models"
)

// fakeStore serves canned rows; err short-circuits every query the way an
// unreachable database would.
type fakeStore struct {
	err error

	attendance      []SubjectAttendance
	classAttendance []ClassAttendance
	marks           []ExamResult
	classMarks      []ClassExamSummary
	profile         *StudentProfile
	studentSubjects []SubjectInfo
	teacherSubjects []SubjectInfo
	allSubjects     []SubjectInfo
	teachers        []TeacherInfo
	counts          Counts
	classCounts     []ClassCount
	ratios          []StudentRatio
	recent          []DailyAttendance
}

func (f *fakeStore) StudentAttendance(uint) ([]SubjectAttendance, error) {
	return f.attendance, f.err
}
func (f *fakeStore) ClassAttendanceSummary() ([]ClassAttendance, error) {
	return f.classAttendance, f.err
}
func (f *fakeStore) StudentMarks(uint) ([]ExamResult, error)      { return f.marks, f.err }
func (f *fakeStore) ClassMarksSummary() ([]ClassExamSummary, error) {
	return f.classMarks, f.err
}
func (f *fakeStore) StudentProfile(uint) (*StudentProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}
func (f *fakeStore) StudentSubjects(uint) ([]SubjectInfo, error) { return f.studentSubjects, f.err }
func (f *fakeStore) TeacherSubjects(uint) ([]SubjectInfo, error) { return f.teacherSubjects, f.err }
func (f *fakeStore) AllSubjects() ([]SubjectInfo, error)         { return f.allSubjects, f.err }
func (f *fakeStore) Teachers() ([]TeacherInfo, error)            { return f.teachers, f.err }
func (f *fakeStore) Counts() (Counts, error)                     { return f.counts, f.err }
func (f *fakeStore) ClassStudentCounts() ([]ClassCount, error)   { return f.classCounts, f.err }
func (f *fakeStore) AttendanceRatios() ([]StudentRatio, error)   { return f.ratios, f.err }
func (f *fakeStore) RecentAttendance(int) ([]DailyAttendance, error) {
	return f.recent, f.err
}

func studentBot(store Store) *Bot { return New(store, 1, models.RoleStudent, "John Doe") }
func teacherBot(store Store) *Bot { return New(store, 2, models.RoleTeacher, "Jane Smith") }
func adminBot(store Store) *Bot   { return New(store, 3, models.RoleAdmin, "Admin User") }

func TestStudentAttendanceScenario(t *testing.T) {
	// Math 8/10 present, Physics 9/10 present; overall 17/20 = 85.0% and
	// the 85% boundary is excellent, not good.
	bot := studentBot(&fakeStore{attendance: []SubjectAttendance{
		{SubjectName: "Math", Total: 10, Attended: 8},
		{SubjectName: "Physics", Total: 10, Attended: 9},
	}})

	got := bot.Process("What's my attendance?")
	assert.Contains(t, got, "Math")
	assert.Contains(t, got, "8/10 classes")
	assert.Contains(t, got, "80.0%")
	assert.Contains(t, got, "Physics")
	assert.Contains(t, got, "9/10 classes")
	assert.Contains(t, got, "90.0%")
	assert.Contains(t, got, "Overall Attendance: 85.0%")
	assert.Contains(t, got, "Excellent attendance")
	assert.NotContains(t, got, "Good attendance")
}

func TestAttendanceBanding(t *testing.T) {
	tests := []struct {
		name     string
		attended int
		total    int
		want     string
	}{
		{"excellent at 85", 17, 20, "Excellent attendance"},
		{"good at 80", 16, 20, "Good attendance"},
		{"good at 75 boundary", 15, 20, "Good attendance"},
		{"warning below 75", 14, 20, "Your attendance is low"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot := studentBot(&fakeStore{attendance: []SubjectAttendance{
				{SubjectName: "Math", Total: tt.total, Attended: tt.attended},
			}})
			assert.Contains(t, bot.Process("my attendance"), tt.want)
		})
	}
}

func TestAttendanceErrorStatesAreDistinct(t *testing.T) {
	down := studentBot(&fakeStore{err: errors.New("dial tcp: refused")})
	assert.Equal(t, msgNotConnected, down.Process("my attendance"))

	empty := studentBot(&fakeStore{})
	assert.Equal(t, msgNoAttendanceRecords, empty.Process("my attendance"))
}

func TestStudentMarksRounding(t *testing.T) {
	// Per-exam percentages round independently; the subject average comes
	// from the summed marks (34/53 = 64.15%), not from averaging the
	// already-rounded per-exam values (which would give 49.67%).
	bot := studentBot(&fakeStore{marks: []ExamResult{
		{SubjectName: "Math", ExamType: "Midterm", MarksObtained: 33, TotalMarks: 50, Grade: "C"},
		{SubjectName: "Math", ExamType: "Quiz", MarksObtained: 1, TotalMarks: 3, Grade: "F"},
	}})

	got := bot.Process("show my marks")
	assert.Contains(t, got, "Midterm: 33/50 (66.0%)")
	assert.Contains(t, got, "Quiz: 1/3 (33.33%)")
	assert.Contains(t, got, "Subject Average: 64.15%")
	assert.NotContains(t, got, "49.67")
}

func TestStudentMarksZeroTotalGuard(t *testing.T) {
	bot := studentBot(&fakeStore{marks: []ExamResult{
		{SubjectName: "Math", ExamType: "Quiz", MarksObtained: 0, TotalMarks: 0, Grade: "F"},
	}})
	got := bot.Process("show my marks")
	assert.Contains(t, got, "(0.0%)")
}

func TestMarksGroupedBySubjectInFirstSeenOrder(t *testing.T) {
	bot := studentBot(&fakeStore{marks: []ExamResult{
		{SubjectName: "Physics", ExamType: "Final", MarksObtained: 40, TotalMarks: 50},
		{SubjectName: "Math", ExamType: "Final", MarksObtained: 45, TotalMarks: 50},
		{SubjectName: "Physics", ExamType: "Quiz", MarksObtained: 8, TotalMarks: 10},
	}})

	got := bot.Process("show my marks")
	physics := strings.Index(got, "**Physics:**")
	math := strings.Index(got, "**Math:**")
	assert.GreaterOrEqual(t, physics, 0)
	assert.GreaterOrEqual(t, math, 0)
	assert.Less(t, physics, math)
}

func TestStatisticsUsesMeanOfPerStudentRatios(t *testing.T) {
	// Student A: 1/2 = 50%, student B: 9/10 = 90%. The mean of ratios is
	// 70.0%; a pooled 10/12 would be 83.33%. Uneven per-student counts
	// make the fixture distinguish the two formulas.
	bot := teacherBot(&fakeStore{
		counts: Counts{Students: 2, Teachers: 1, Subjects: 3},
		ratios: []StudentRatio{
			{StudentID: 1, Total: 2, Present: 1},
			{StudentID: 2, Total: 10, Present: 9},
		},
	})

	got := bot.Process("show me system statistics")
	assert.Contains(t, got, "Total Students: 2")
	assert.Contains(t, got, "Average Attendance Rate: 70.0%")
	assert.NotContains(t, got, "83.33")
}

func TestAverageAttendance(t *testing.T) {
	assert.Equal(t, 0.0, AverageAttendance(nil))
	// A student with zero recorded classes contributes 0, as shipped.
	got := AverageAttendance([]StudentRatio{
		{StudentID: 1, Total: 0, Present: 0},
		{StudentID: 2, Total: 10, Present: 9},
	})
	assert.Equal(t, 45.0, got)
}

func TestStatisticsDeniedToStudents(t *testing.T) {
	bot := studentBot(&fakeStore{})
	assert.Equal(t, msgStatsStaffOnly, bot.Process("show me system statistics"))
}

func TestProfileDeniedToStaff(t *testing.T) {
	assert.Equal(t, msgProfileStudentsOnly, teacherBot(&fakeStore{}).Process("my profile information"))
	assert.Equal(t, msgProfileStudentsOnly, adminBot(&fakeStore{}).Process("my profile information"))
}

func TestStudentNeverGetsClassWideAttendance(t *testing.T) {
	// Even with "class" in the query, a student only sees rows scoped to
	// their own user id.
	store := &fakeStore{
		attendance:      []SubjectAttendance{{SubjectName: "Math", Total: 4, Attended: 4}},
		classAttendance: []ClassAttendance{{SubjectName: "Math", ClassName: "BCSIT", Students: 30, Records: 120, Present: 100}},
	}
	got := studentBot(store).Process("class attendance summary")
	assert.Contains(t, got, "Your Attendance Summary")
	assert.NotContains(t, got, "Class Attendance Summary")
}

func TestStaffClassScopedQueries(t *testing.T) {
	store := &fakeStore{
		classAttendance: []ClassAttendance{{SubjectName: "Math", ClassName: "BCSIT", Students: 2, Records: 12, Present: 10}},
		classMarks:      []ClassExamSummary{{SubjectName: "Math", ClassName: "BCSIT", ExamType: "Final", Students: 2, AvgMarks: 42.5, MaxMarks: 45, MinMarks: 40, TotalMarks: 50}},
	}

	att := teacherBot(store).Process("class attendance summary")
	assert.Contains(t, att, "Class Attendance Summary")
	assert.Contains(t, att, "83.33% attendance")

	marks := teacherBot(store).Process("class marks summary")
	assert.Contains(t, marks, "Class Performance Summary")
	assert.Contains(t, marks, "Average: 42.5/50 (85.0%)")
	assert.Contains(t, marks, "Range: 40-45 marks")
}

func TestStaffMarksWithoutClassScopeAsksForSpecifics(t *testing.T) {
	got := teacherBot(&fakeStore{}).Process("show me the exam results")
	assert.Equal(t, msgMarksBeSpecific, got)
}

func TestTeachersReportRoleGating(t *testing.T) {
	store := &fakeStore{teachers: []TeacherInfo{{
		EmployeeID: "EMP01", FullName: "Jane Smith", Department: "Science",
		ExperienceYears: 5, Email: "jane@classtrack.com", Phone: "123", Subjects: 2,
	}}}

	assert.Equal(t, msgTeachersStaffOnly, studentBot(store).Process("list of teachers"))

	teacherView := teacherBot(store).Process("list of teachers")
	assert.Contains(t, teacherView, "Jane Smith")
	assert.NotContains(t, teacherView, "jane@classtrack.com")

	adminView := adminBot(store).Process("list of teachers")
	assert.Contains(t, adminView, "jane@classtrack.com")
}

func TestSubjectsReportPerRole(t *testing.T) {
	store := &fakeStore{
		studentSubjects: []SubjectInfo{{SubjectName: "Math", SubjectCode: "MATH101", TeacherName: "Jane Smith"}},
		teacherSubjects: []SubjectInfo{{SubjectName: "Math", SubjectCode: "MATH101", ClassName: "BCSIT", Students: 30}},
		allSubjects:     []SubjectInfo{{SubjectName: "Math", SubjectCode: "MATH101", ClassName: "BCSIT", TeacherName: "Jane Smith", Students: 30}},
	}

	student := studentBot(store).Process("what subjects do i have")
	assert.Contains(t, student, "Your Subjects")
	assert.Contains(t, student, "Teacher: Jane Smith")

	teacher := teacherBot(store).Process("what subjects do i have")
	assert.Contains(t, teacher, "Subjects You Teach")

	admin := adminBot(store).Process("what subjects do i have")
	assert.Contains(t, admin, "All Subjects")
	assert.Contains(t, admin, "Students: 30")
}

func TestProfileReport(t *testing.T) {
	store := &fakeStore{profile: &StudentProfile{
		RollNumber: "R-7", FullName: "John Doe", ClassName: "BCSIT",
		EnrollmentDate: "2024-01-15", GuardianName: "Jack Doe",
	}}
	got := studentBot(store).Process("my profile information")
	assert.Contains(t, got, "Roll Number: R-7")
	assert.Contains(t, got, "Gender: Not specified")
	assert.Contains(t, got, "Phone: Not provided")
	assert.Contains(t, got, "Guardian Name: Jack Doe")
	assert.Contains(t, got, "Enrollment Date: 2024-01-15")

	missing := studentBot(&fakeStore{}).Process("my profile information")
	assert.Equal(t, msgNoProfile, missing)
}

func TestHelpIsRoleSpecific(t *testing.T) {
	student := studentBot(&fakeStore{}).Process("help")
	assert.Contains(t, student, "What's my attendance?")
	assert.NotContains(t, student, "Class attendance summary")

	teacher := teacherBot(&fakeStore{}).Process("help")
	assert.Contains(t, teacher, "Class attendance summary")
	assert.Contains(t, teacher, "What subjects do I teach?")
	assert.NotContains(t, teacher, "What's my attendance?")
}

func TestUnknownQuerySuggestionsAreRoleSpecific(t *testing.T) {
	student := studentBot(&fakeStore{}).Process("qwerty asdf")
	assert.Contains(t, student, "not sure what you're asking")
	assert.Contains(t, student, "What's my attendance?")

	teacher := teacherBot(&fakeStore{}).Process("qwerty asdf")
	assert.Contains(t, teacher, "How is my class doing?")
	assert.NotContains(t, teacher, "Show my profile information")
}

func TestProcessRecordsHistory(t *testing.T) {
	bot := studentBot(&fakeStore{})
	bot.Process("my attendance")
	bot.Process("zzz unknown zzz")

	entries := bot.History().Entries()
	assert.Len(t, entries, 2)
	assert.Equal(t, IntentAttendance, entries[0].Intent)
	assert.Equal(t, "my attendance", entries[0].Query)
	assert.NotEmpty(t, entries[0].Response)
	assert.Equal(t, IntentUnknown, entries[1].Intent)
}

// Each failure mode surfaces as its own error kind below the boundary, and
// Process collapses them to the fixed strings.
func TestReportErrorKinds(t *testing.T) {
	down := studentBot(&fakeStore{err: errors.New("dial tcp: refused")})
	_, err := down.attendanceReport("my attendance")
	assert.ErrorIs(t, err, ErrNotConnected)

	empty := studentBot(&fakeStore{})
	_, err = empty.attendanceReport("my attendance")
	assert.ErrorIs(t, err, ErrNoResults)

	_, err = teacherBot(&fakeStore{}).profileReport()
	assert.ErrorIs(t, err, ErrDenied)

	_, err = teacherBot(&fakeStore{}).marksReport("exam results")
	assert.ErrorIs(t, err, ErrInvalid)

	assert.Equal(t, msgNotConnected, userMessage(errors.New("unwrapped")))
}

func TestFmtPct(t *testing.T) {
	assert.Equal(t, "85.0", fmtPct(85))
	assert.Equal(t, "66.67", fmtPct(66.67))
	assert.Equal(t, "80.5", fmtPct(80.5))
	assert.Equal(t, "0.0", fmtPct(0))
}
