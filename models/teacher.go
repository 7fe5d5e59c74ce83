package models

type Teacher struct {
	ID              uint    `json:"teacher_id" gorm:"primaryKey;column:teacher_id"`
	UserID          *uint   `json:"user_id,omitempty" gorm:"index"`
	EmployeeID      string  `json:"employee_id" gorm:"size:20;uniqueIndex;not null"`
	FullName        string  `json:"full_name" gorm:"size:100;not null"`
	Gender          string  `json:"gender" gorm:"size:10;not null"`
	DateOfBirth     string  `json:"date_of_birth,omitempty" gorm:"size:10"`
	Email           string  `json:"email" gorm:"size:100"`
	Phone           string  `json:"phone" gorm:"size:15"`
	Department      string  `json:"department" gorm:"size:50"`
	Qualification   string  `json:"qualification" gorm:"size:200"`
	Specialization  string  `json:"specialization" gorm:"size:200"`
	ExperienceYears int     `json:"experience_years"`
	Salary          float64 `json:"salary"`
	Address         string  `json:"address" gorm:"type:text"`
	HireDate        string  `json:"hire_date" gorm:"size:10"`
}
