package models

import "time"

// Setting is a plain key/value pair; no lifecycle beyond upsert/delete.
type Setting struct {
	ID          uint      `json:"setting_id" gorm:"primaryKey;column:setting_id"`
	Name        string    `json:"setting_name" gorm:"column:setting_name;size:100;uniqueIndex;not null"`
	Value       string    `json:"setting_value" gorm:"column:setting_value;type:text"`
	Description string    `json:"setting_description,omitempty" gorm:"column:setting_description;size:255"`
	UpdatedAt   time.Time `json:"updated_date" gorm:"column:updated_date"`
}
