package models

import "time"

// DocumentKind names one of the uploadable student documents
type DocumentKind string

const (
	DocumentPhoto                 DocumentKind = "photo"
	DocumentBirthCertificate      DocumentKind = "birthCertificate"
	DocumentHouseholdRegistration DocumentKind = "householdRegistration"
)

// Student defines the student document based on the 'students' table
type Student struct {
	ID                    string     `json:"id" db:"id"`
	StudentID             string     `json:"studentID" db:"student_id" example:"HS2024001"` // Business key, unique
	Name                  string     `json:"name" db:"name" example:"Nguyen Van An"`
	DateOfBirth           string     `json:"dateOfBirth" db:"date_of_birth" example:"15-03-2020"` // DD-MM-YYYY
	Gender                string     `json:"gender" db:"gender" example:"male"`
	FatherName            string     `json:"fatherName" db:"father_name"`
	FatherOccupation      string     `json:"fatherOccupation" db:"father_occupation"`
	MotherName            string     `json:"motherName" db:"mother_name"`
	MotherOccupation      string     `json:"motherOccupation" db:"mother_occupation"`
	GuardianName          string     `json:"guardianName" db:"guardian_name"`
	GuardianOccupation    string     `json:"guardianOccupation" db:"guardian_occupation"`
	Grade                 string     `json:"grade" db:"grade"`
	School                string     `json:"school" db:"school"`
	ClassName             string     `json:"className" db:"class_name"`
	EducationSystem       string     `json:"educationSystem" db:"education_system"`
	Photo                 MediaAsset `json:"photo" db:"-"`
	BirthCertificate      MediaAsset `json:"birthCertificate" db:"-"`
	HouseholdRegistration MediaAsset `json:"householdRegistration" db:"-"`
	CreatedAt             time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt             time.Time  `json:"updatedAt" db:"updated_at"`
}

// Document returns a pointer to the asset slot for kind, or nil for an unknown kind
func (s *Student) Document(kind DocumentKind) *MediaAsset {
	switch kind {
	case DocumentPhoto:
		return &s.Photo
	case DocumentBirthCertificate:
		return &s.BirthCertificate
	case DocumentHouseholdRegistration:
		return &s.HouseholdRegistration
	}
	return nil
}

// Documents lists the attached assets
func (s *Student) Documents() []MediaAsset {
	var assets []MediaAsset
	for _, a := range []MediaAsset{s.Photo, s.BirthCertificate, s.HouseholdRegistration} {
		if !a.IsZero() {
			assets = append(assets, a)
		}
	}
	return assets
}
