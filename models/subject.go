package models

// TeacherID references the teacher's users row; nil means unassigned.
type Subject struct {
	ID          uint   `json:"subject_id" gorm:"primaryKey;column:subject_id"`
	SubjectName string `json:"subject_name" gorm:"size:100;not null"`
	SubjectCode string `json:"subject_code" gorm:"size:20;uniqueIndex;not null"`
	ClassName   string `json:"class_name" gorm:"size:50;not null;index"`
	TeacherID   *uint  `json:"teacher_id,omitempty"`
	CreditHours int    `json:"credit_hours" gorm:"default:3"`
	Description string `json:"description" gorm:"type:text"`
}
