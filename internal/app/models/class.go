package models

import "time"

// Class defines the class document based on the 'classes' table.
// Students holds student document IDs in roster order.
type Class struct {
	ID         string    `json:"id" db:"id"`
	ClassName  string    `json:"className" db:"class_name" example:"Mam 1"`
	TeacherID  string    `json:"teacherID" db:"teacher_id"` // Empty when no teacher is assigned
	SemesterID string    `json:"semesterID" db:"semester_id"`
	Students   []string  `json:"students" db:"students"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// HasStudent reports whether studentID is on the roster
func (c *Class) HasStudent(studentID string) bool {
	for _, id := range c.Students {
		if id == studentID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate the roster safely
func (c *Class) Clone() *Class {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Students = append([]string(nil), c.Students...)
	return &cp
}
