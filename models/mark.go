package models

type Mark struct {
	ID            uint    `json:"mark_id" gorm:"primaryKey;column:mark_id"`
	StudentID     uint    `json:"student_id" gorm:"index;not null"`
	SubjectID     uint    `json:"subject_id" gorm:"index;not null"`
	ExamType      string  `json:"exam_type" gorm:"size:50;not null"`
	MarksObtained float64 `json:"marks_obtained" gorm:"not null"`
	TotalMarks    float64 `json:"total_marks" gorm:"not null"`
	Grade         string  `json:"grade" gorm:"size:2"`
	ExamDate      string  `json:"exam_date" gorm:"size:10"`
	EnteredBy     *uint   `json:"entered_by,omitempty"`
}

func (Mark) TableName() string { return "marks" }
