package models

import "time"

// Teacher defines the teacher document based on the 'teachers' table
type Teacher struct {
	ID          string     `json:"id" db:"id"`
	TeacherID   string     `json:"teacherID" db:"teacher_id" example:"GV001"` // Business key, unique
	Name        string     `json:"name" db:"name" example:"Tran Thi Mai"`
	Gender      string     `json:"gender" db:"gender"`
	Phone       string     `json:"phone" db:"phone"`
	DateOfBirth string     `json:"dateOfBirth" db:"date_of_birth"` // DD-MM-YYYY, optional
	Avatar      MediaAsset `json:"avatar" db:"-"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
