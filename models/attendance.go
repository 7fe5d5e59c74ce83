package models

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
)

// At most one row per (student, subject, date) is intended; Mark upserts
// instead of enforcing a DB constraint so existing data stays loadable.
type Attendance struct {
	ID        uint   `json:"attendance_id" gorm:"primaryKey;column:attendance_id"`
	StudentID uint   `json:"student_id" gorm:"index;not null"`
	SubjectID uint   `json:"subject_id" gorm:"index;not null"`
	Date      string `json:"attendance_date" gorm:"column:attendance_date;size:10;not null"` // YYYY-MM-DD
	Status    string `json:"status" gorm:"size:10;not null"`                                 // present | absent | late
	MarkedBy  *uint  `json:"marked_by,omitempty"`
}

func (Attendance) TableName() string { return "attendance" }

// ValidAttendanceStatus reports whether s is one of the closed status set.
func ValidAttendanceStatus(s string) bool {
	return s == AttendancePresent || s == AttendanceAbsent || s == AttendanceLate
}
