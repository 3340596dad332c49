package models

import "time"

// Semester defines the semester document based on the 'semesters' table
type Semester struct {
	ID           string    `json:"id" db:"id"`
	SemesterName string    `json:"semesterName" db:"semester_name" example:"2024-2025 HK1"`
	StartDate    string    `json:"startDate" db:"start_date" example:"05-09-2024"` // DD-MM-YYYY
	EndDate      string    `json:"endDate" db:"end_date" example:"15-01-2025"`     // DD-MM-YYYY
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
