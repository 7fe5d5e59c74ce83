package models

// Student always has exactly one backing users row with role=student.
type Student struct {
	ID               uint   `json:"student_id" gorm:"primaryKey;column:student_id"`
	UserID           uint   `json:"user_id" gorm:"index"`
	RollNumber       string `json:"roll_number" gorm:"size:20;uniqueIndex;not null"`
	FullName         string `json:"full_name" gorm:"size:100;not null"`
	Gender           string `json:"gender" gorm:"size:10;not null"`
	DateOfBirth      string `json:"date_of_birth,omitempty" gorm:"size:10"` // YYYY-MM-DD
	Email            string `json:"email" gorm:"size:100"`
	Phone            string `json:"phone" gorm:"size:15"`
	Address          string `json:"address" gorm:"type:text"`
	GuardianName     string `json:"guardian_name" gorm:"size:100"`
	GuardianPhone    string `json:"guardian_phone" gorm:"size:15"`
	ClassName        string `json:"class_name" gorm:"size:50;not null;index"`
	EnrollmentDate   string `json:"enrollment_date" gorm:"size:10"`
	BloodGroup       string `json:"blood_group" gorm:"size:5"`
	EmergencyContact string `json:"emergency_contact" gorm:"size:15"`
}
