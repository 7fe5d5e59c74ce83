package chatbot

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/immsamyak/ClassTrack/models"
)

// Attendance banding thresholds. 85.00 exactly is excellent.
const (
	ExcellentAttendanceThreshold = 85.0
	GoodAttendanceThreshold      = 75.0
)

// Fixed user-facing strings. Connectivity failure and empty results are
// distinct states and must stay distinguishable in tests.
const (
	msgNotConnected        = "I'm sorry, I couldn't connect to the database right now."
	msgNoAttendanceRecords = "I couldn't find any attendance records for you yet."
	msgNoClassAttendance   = "No attendance data found for any classes."
	msgNoMarksRecords      = "I couldn't find any marks records for you yet."
	msgNoClassMarks        = "No marks data found for any classes."
	msgNoProfile           = "I couldn't find your profile information."
	msgNoStudentSubjects   = "I couldn't find any subjects for your class."
	msgNoSubjects          = "No subjects found."
	msgNoTeachers          = "No teacher information found."

	msgProfileStudentsOnly = "Student profile information is only available to students."
	msgTeachersStaffOnly   = "Teacher information is only available to teachers and administrators."
	msgStatsStaffOnly      = "Statistics are only available to teachers and administrators."
	msgAttendanceNoAccess  = "I'm sorry, I don't have access to attendance information for your role."
	msgMarksNoAccess       = "I don't have access to marks information for your role."
	msgMarksBeSpecific     = "Please specify if you want to see class performance or ask about a specific student."
)

// round2 rounds to 2 decimals, the way every percentage in the system is
// reported.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// percentage is round(part/whole*100, 2); 0 when whole is 0 so a zero total
// reads as 0%, never a division error.
func percentage(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return round2(part / whole * 100)
}

// fmtPct renders a percentage with at least one decimal place and no
// trailing zeros beyond that: 85 -> "85.0", 66.666 would arrive as 66.67.
func fmtPct(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}

func valueOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// wantsClassScope reports whether a staff query is about the whole class
// rather than the caller personally.
func wantsClassScope(query string) bool {
	return strings.Contains(query, "class") || strings.Contains(query, "all students")
}

func (b *Bot) attendanceReport(query string) (string, error) {
	switch b.role {
	case models.RoleStudent:
		return b.studentAttendance()
	case models.RoleTeacher, models.RoleAdmin:
		if wantsClassScope(query) {
			return b.classAttendanceSummary()
		}
		return b.studentAttendance()
	default:
		return "", denied(msgAttendanceNoAccess)
	}
}

func (b *Bot) studentAttendance() (string, error) {
	rows, err := b.store.StudentAttendance(b.userID)
	if err != nil {
		return "", notConnected(err)
	}
	if len(rows) == 0 {
		return "", noResults(msgNoAttendanceRecords)
	}

	var sb strings.Builder
	sb.WriteString("📊 **Your Attendance Summary:**\n\n")

	totalAttended, totalClasses := 0, 0
	for _, r := range rows {
		pct := percentage(float64(r.Attended), float64(r.Total))
		fmt.Fprintf(&sb, "**%s:**\n", r.SubjectName)
		fmt.Fprintf(&sb, "  • Attended: %d/%d classes\n", r.Attended, r.Total)
		fmt.Fprintf(&sb, "  • Attendance Rate: %s%%\n\n", fmtPct(pct))
		totalAttended += r.Attended
		totalClasses += r.Total
	}

	if totalClasses > 0 {
		overall := percentage(float64(totalAttended), float64(totalClasses))
		fmt.Fprintf(&sb, "**Overall Attendance: %s%%**\n", fmtPct(overall))
		switch {
		case overall >= ExcellentAttendanceThreshold:
			sb.WriteString("🎉 Excellent attendance! Keep it up!")
		case overall >= GoodAttendanceThreshold:
			sb.WriteString("👍 Good attendance, but try to attend more classes.")
		default:
			sb.WriteString("⚠️ Your attendance is low. Please attend more classes.")
		}
	}
	return sb.String(), nil
}

func (b *Bot) classAttendanceSummary() (string, error) {
	rows, err := b.store.ClassAttendanceSummary()
	if err != nil {
		return "", notConnected(err)
	}
	if len(rows) == 0 {
		return "", noResults(msgNoClassAttendance)
	}

	var sb strings.Builder
	sb.WriteString("📈 **Class Attendance Summary:**\n\n")

	currentClass := ""
	for _, r := range rows {
		if r.ClassName != currentClass {
			if currentClass != "" {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "**%s:**\n", r.ClassName)
			currentClass = r.ClassName
		}
		rate := percentage(float64(r.Present), float64(r.Records))
		fmt.Fprintf(&sb, "  • %s: %s%% attendance\n", r.SubjectName, fmtPct(rate))
		fmt.Fprintf(&sb, "    (%d/%d classes attended)\n", r.Present, r.Records)
	}
	return sb.String(), nil
}

func (b *Bot) marksReport(query string) (string, error) {
	switch b.role {
	case models.RoleStudent:
		return b.studentMarks()
	case models.RoleTeacher, models.RoleAdmin:
		if wantsClassScope(query) {
			return b.classMarksSummary()
		}
		return "", invalid(msgMarksBeSpecific)
	default:
		return "", denied(msgMarksNoAccess)
	}
}

func (b *Bot) studentMarks() (string, error) {
	rows, err := b.store.StudentMarks(b.userID)
	if err != nil {
		return "", notConnected(err)
	}
	if len(rows) == 0 {
		return "", noResults(msgNoMarksRecords)
	}

	// Group by subject, preserving first-seen order.
	order := make([]string, 0)
	bySubject := make(map[string][]ExamResult)
	for _, r := range rows {
		if _, ok := bySubject[r.SubjectName]; !ok {
			order = append(order, r.SubjectName)
		}
		bySubject[r.SubjectName] = append(bySubject[r.SubjectName], r)
	}

	var sb strings.Builder
	sb.WriteString("📝 **Your Academic Performance:**\n\n")

	for _, subject := range order {
		exams := bySubject[subject]
		fmt.Fprintf(&sb, "**%s:**\n", subject)

		var sumObtained, sumTotal float64
		for _, e := range exams {
			// Per-exam percentage rounds independently, not from the
			// running sums.
			pct := percentage(e.MarksObtained, e.TotalMarks)
			fmt.Fprintf(&sb, "  • %s: %s/%s (%s%%) - Grade: %s\n",
				e.ExamType, fmtMarks(e.MarksObtained), fmtMarks(e.TotalMarks), fmtPct(pct), valueOr(e.Grade, "N/A"))
			sumObtained += e.MarksObtained
			sumTotal += e.TotalMarks
		}
		avg := percentage(sumObtained, sumTotal)
		fmt.Fprintf(&sb, "  **Subject Average: %s%%**\n\n", fmtPct(avg))
	}
	return sb.String(), nil
}

// fmtMarks drops a trailing ".0" so whole-number marks print as integers.
func fmtMarks(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (b *Bot) classMarksSummary() (string, error) {
	rows, err := b.store.ClassMarksSummary()
	if err != nil {
		return "", notConnected(err)
	}
	if len(rows) == 0 {
		return "", noResults(msgNoClassMarks)
	}

	var sb strings.Builder
	sb.WriteString("📊 **Class Performance Summary:**\n\n")

	currentClass := ""
	for _, r := range rows {
		if r.ClassName != currentClass {
			if currentClass != "" {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "**%s:**\n", r.ClassName)
			currentClass = r.ClassName
		}
		avgPct := percentage(r.AvgMarks, r.TotalMarks)
		fmt.Fprintf(&sb, "  • %s - %s:\n", r.SubjectName, r.ExamType)
		fmt.Fprintf(&sb, "    Average: %.1f/%s (%s%%)\n", r.AvgMarks, fmtMarks(r.TotalMarks), fmtPct(avgPct))
		fmt.Fprintf(&sb, "    Range: %s-%s marks\n", fmtMarks(r.MinMarks), fmtMarks(r.MaxMarks))
		fmt.Fprintf(&sb, "    Students: %d\n", r.Students)
	}
	return sb.String(), nil
}

func (b *Bot) profileReport() (string, error) {
	if b.role != models.RoleStudent {
		return "", denied(msgProfileStudentsOnly)
	}
	p, err := b.store.StudentProfile(b.userID)
	if err != nil {
		return "", notConnected(err)
	}
	if p == nil {
		return "", noResults(msgNoProfile)
	}

	var sb strings.Builder
	sb.WriteString("👤 **Your Profile Information:**\n\n")
	sb.WriteString("**Personal Details:**\n")
	fmt.Fprintf(&sb, "  • Name: %s\n", p.FullName)
	fmt.Fprintf(&sb, "  • Roll Number: %s\n", p.RollNumber)
	fmt.Fprintf(&sb, "  • Class: %s\n", p.ClassName)
	fmt.Fprintf(&sb, "  • Gender: %s\n", valueOr(p.Gender, "Not specified"))
	fmt.Fprintf(&sb, "  • Date of Birth: %s\n\n", valueOr(p.DateOfBirth, "Not specified"))

	sb.WriteString("**Contact Information:**\n")
	fmt.Fprintf(&sb, "  • Phone: %s\n", valueOr(p.Phone, "Not provided"))
	fmt.Fprintf(&sb, "  • Email: %s\n", valueOr(p.Email, "Not provided"))
	fmt.Fprintf(&sb, "  • Address: %s\n\n", valueOr(p.Address, "Not provided"))

	if p.GuardianName != "" || p.GuardianPhone != "" {
		sb.WriteString("**Guardian Information:**\n")
		fmt.Fprintf(&sb, "  • Guardian Name: %s\n", valueOr(p.GuardianName, "Not provided"))
		fmt.Fprintf(&sb, "  • Guardian Phone: %s\n\n", valueOr(p.GuardianPhone, "Not provided"))
	}

	sb.WriteString("**Academic Information:**\n")
	fmt.Fprintf(&sb, "  • Enrollment Date: %s\n", p.EnrollmentDate)
	return sb.String(), nil
}

func (b *Bot) subjectsReport() (string, error) {
	switch b.role {
	case models.RoleStudent:
		rows, err := b.store.StudentSubjects(b.userID)
		if err != nil {
			return "", notConnected(err)
		}
		if len(rows) == 0 {
			return "", noResults(msgNoStudentSubjects)
		}
		var sb strings.Builder
		sb.WriteString("📚 **Your Subjects:**\n\n")
		for _, r := range rows {
			fmt.Fprintf(&sb, "• **%s** (%s)\n", r.SubjectName, r.SubjectCode)
			if r.TeacherName != "" {
				fmt.Fprintf(&sb, "  Teacher: %s\n", r.TeacherName)
			}
			sb.WriteString("\n")
		}
		return sb.String(), nil

	case models.RoleTeacher:
		rows, err := b.store.TeacherSubjects(b.userID)
		if err != nil {
			return "", notConnected(err)
		}
		if len(rows) == 0 {
			return "", noResults(msgNoSubjects)
		}
		return formatSubjectList("📚 **Subjects You Teach:**\n\n", rows, false), nil

	default: // admin
		rows, err := b.store.AllSubjects()
		if err != nil {
			return "", notConnected(err)
		}
		if len(rows) == 0 {
			return "", noResults(msgNoSubjects)
		}
		return formatSubjectList("📚 **All Subjects:**\n\n", rows, true), nil
	}
}

func formatSubjectList(header string, rows []SubjectInfo, withTeacher bool) string {
	var sb strings.Builder
	sb.WriteString(header)
	currentClass := ""
	for _, r := range rows {
		if r.ClassName != currentClass {
			if currentClass != "" {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "**%s:**\n", r.ClassName)
			currentClass = r.ClassName
		}
		fmt.Fprintf(&sb, "  • %s (%s)\n", r.SubjectName, r.SubjectCode)
		if withTeacher && r.TeacherName != "" {
			fmt.Fprintf(&sb, "    Teacher: %s\n", r.TeacherName)
		}
		fmt.Fprintf(&sb, "    Students: %d\n", r.Students)
	}
	return sb.String()
}

func (b *Bot) teachersReport() (string, error) {
	if b.role != models.RoleTeacher && b.role != models.RoleAdmin {
		return "", denied(msgTeachersStaffOnly)
	}
	rows, err := b.store.Teachers()
	if err != nil {
		return "", notConnected(err)
	}
	if len(rows) == 0 {
		return "", noResults(msgNoTeachers)
	}

	var sb strings.Builder
	sb.WriteString("👨‍🏫 **Teaching Staff:**\n\n")
	for _, t := range rows {
		fmt.Fprintf(&sb, "**%s** (%s)\n", t.FullName, t.EmployeeID)
		fmt.Fprintf(&sb, "  • Department: %s\n", valueOr(t.Department, "Not specified"))
		fmt.Fprintf(&sb, "  • Qualification: %s\n", valueOr(t.Qualification, "Not specified"))
		fmt.Fprintf(&sb, "  • Experience: %d years\n", t.ExperienceYears)
		fmt.Fprintf(&sb, "  • Subjects Teaching: %d\n", t.Subjects)
		if b.role == models.RoleAdmin {
			fmt.Fprintf(&sb, "  • Email: %s\n", valueOr(t.Email, "Not provided"))
			fmt.Fprintf(&sb, "  • Phone: %s\n", valueOr(t.Phone, "Not provided"))
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func (b *Bot) statisticsReport() (string, error) {
	if b.role != models.RoleTeacher && b.role != models.RoleAdmin {
		return "", denied(msgStatsStaffOnly)
	}
	counts, err := b.store.Counts()
	if err != nil {
		return "", notConnected(err)
	}
	ratios, err := b.store.AttendanceRatios()
	if err != nil {
		return "", notConnected(err)
	}
	recent, err := b.store.RecentAttendance(7)
	if err != nil {
		return "", notConnected(err)
	}

	var sb strings.Builder
	sb.WriteString("📊 **System Statistics:**\n\n")
	sb.WriteString("**Overview:**\n")
	fmt.Fprintf(&sb, "  • Total Students: %d\n", counts.Students)
	fmt.Fprintf(&sb, "  • Total Teachers: %d\n", counts.Teachers)
	fmt.Fprintf(&sb, "  • Total Subjects: %d\n", counts.Subjects)
	fmt.Fprintf(&sb, "  • Average Attendance Rate: %s%%\n\n", fmtPct(AverageAttendance(ratios)))

	if len(recent) > 0 {
		sb.WriteString("**Recent Attendance (Last 7 Days):**\n")
		for _, d := range recent {
			pct := percentage(float64(d.Present), float64(d.Records))
			fmt.Fprintf(&sb, "  • %s: %d/%d (%s%%)\n", d.Date, d.Present, d.Records, fmtPct(pct))
		}
	}
	return sb.String(), nil
}

// AverageAttendance is the mean of each student's own attendance
// percentage. It is NOT the pooled present/total across all rows; with
// uneven per-student record counts the two formulas disagree, and this one
// matches the shipped behavior.
func AverageAttendance(ratios []StudentRatio) float64 {
	if len(ratios) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratios {
		if r.Total > 0 {
			sum += float64(r.Present) * 100 / float64(r.Total)
		}
	}
	return round2(sum / float64(len(ratios)))
}

func (b *Bot) helpReport() string {
	var sb strings.Builder
	sb.WriteString("🤖 **ClassTrack AI Assistant Help**\n\n")
	sb.WriteString("I can help you with the following types of queries:\n\n")

	if b.role == models.RoleStudent {
		sb.WriteString("**📊 Attendance Queries:**\n")
		sb.WriteString("  • 'What's my attendance?'\n")
		sb.WriteString("  • 'How many classes did I miss?'\n")
		sb.WriteString("  • 'My attendance percentage'\n\n")
		sb.WriteString("**📝 Marks & Grades:**\n")
		sb.WriteString("  • 'What are my marks?'\n")
		sb.WriteString("  • 'How did I do in exams?'\n")
		sb.WriteString("  • 'My performance in [subject]'\n\n")
		sb.WriteString("**👤 Profile Information:**\n")
		sb.WriteString("  • 'My profile information'\n")
		sb.WriteString("  • 'My contact details'\n\n")
		sb.WriteString("**📚 Subjects:**\n")
		sb.WriteString("  • 'What subjects do I have?'\n")
		sb.WriteString("  • 'My classes and teachers'\n\n")
	} else {
		sb.WriteString("**📊 Class Statistics:**\n")
		sb.WriteString("  • 'Class attendance summary'\n")
		sb.WriteString("  • 'How is my class doing?'\n")
		sb.WriteString("  • 'Class performance report'\n\n")
		sb.WriteString("**📝 Academic Reports:**\n")
		sb.WriteString("  • 'Class marks summary'\n")
		sb.WriteString("  • 'Student performance statistics'\n\n")
		sb.WriteString("**👨‍🏫 Staff Information:**\n")
		sb.WriteString("  • 'List of teachers'\n")
		sb.WriteString("  • 'Teaching staff details'\n\n")
		sb.WriteString("**📚 Subject Management:**\n")
		sb.WriteString("  • 'What subjects do I teach?' (Teachers)\n")
		sb.WriteString("  • 'All subjects and teachers' (Admins)\n\n")
	}

	sb.WriteString("**💡 Tips:**\n")
	sb.WriteString("  • Ask questions in natural language\n")
	sb.WriteString("  • Be specific about what information you need\n")
	sb.WriteString("  • I understand various ways of asking the same question\n\n")
	sb.WriteString("Just type your question naturally, and I'll do my best to help!")
	return sb.String()
}

func (b *Bot) unknownReport() string {
	var suggestions []string
	if b.role == models.RoleStudent {
		suggestions = []string{
			"Try asking about your attendance: 'What's my attendance?'",
			"Ask about your marks: 'How did I do in my exams?'",
			"Get your profile info: 'Show my profile information'",
			"See your subjects: 'What subjects do I have?'",
		}
	} else {
		suggestions = []string{
			"Ask about class performance: 'How is my class doing?'",
			"Get attendance statistics: 'Class attendance summary'",
			"View teaching staff: 'List of teachers'",
			"See system statistics: 'Show me system statistics'",
		}
	}

	var sb strings.Builder
	sb.WriteString("🤔 I'm not sure what you're asking about. Here are some things you can try:\n\n")
	for _, s := range suggestions {
		fmt.Fprintf(&sb, "  • %s\n", s)
	}
	sb.WriteString("\nType 'help' to see all available commands, or try rephrasing your question.")
	return sb.String()
}
