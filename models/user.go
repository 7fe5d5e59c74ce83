package models

import "time"

// Roles are a closed set; a user's role never changes after creation.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

type User struct {
	ID           uint      `json:"user_id" gorm:"primaryKey;column:user_id"`
	Username     string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;size:100;not null"`
	Role         string    `json:"role" gorm:"size:20;not null"` // admin | teacher | student
	FullName     string    `json:"full_name" gorm:"size:100;not null"`
	Email        string    `json:"email" gorm:"size:100"`
	CreatedAt    time.Time `json:"created_date" gorm:"column:created_date"`
}
