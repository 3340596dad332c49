package models

import (
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/helpers"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/validation"
)

func checkDate(errs validation.FieldErrors, field, value string) {
	if value == "" {
		return
	}
	if _, err := helpers.ParseDate(value); err != nil {
		errs.Add(field, field+" must use the DD-MM-YYYY format")
	}
}

// Validate checks the required student fields
func (s *Student) Validate() error {
	errs := validation.FieldErrors{}
	errs.Required("studentID", s.StudentID)
	errs.Required("name", s.Name)
	errs.Required("dateOfBirth", s.DateOfBirth)
	errs.MaxLength("name", s.Name, validation.NameMaxLength)
	checkDate(errs, "dateOfBirth", s.DateOfBirth)
	return errs.Err("studentID", "name", "dateOfBirth")
}

// Validate checks the required teacher fields
func (t *Teacher) Validate() error {
	errs := validation.FieldErrors{}
	errs.Required("teacherID", t.TeacherID)
	errs.Required("name", t.Name)
	errs.MaxLength("name", t.Name, validation.NameMaxLength)
	checkDate(errs, "dateOfBirth", t.DateOfBirth)
	return errs.Err("teacherID", "name")
}

// Validate checks the required class fields
func (c *Class) Validate() error {
	errs := validation.FieldErrors{}
	errs.Required("className", c.ClassName)
	errs.Required("semesterID", c.SemesterID)
	return errs.Err("className", "semesterID")
}

// Validate checks the semester fields and that the end date is not before the start date
func (s *Semester) Validate() error {
	errs := validation.FieldErrors{}
	errs.Required("semesterName", s.SemesterName)
	errs.Required("startDate", s.StartDate)
	errs.Required("endDate", s.EndDate)
	checkDate(errs, "startDate", s.StartDate)
	checkDate(errs, "endDate", s.EndDate)

	if errs.Empty() {
		start, _ := helpers.ParseDate(s.StartDate)
		end, _ := helpers.ParseDate(s.EndDate)
		if end.Before(start) {
			errs.Add("endDate", "endDate must not be before startDate")
		}
	}
	return errs.Err("semesterName", "startDate", "endDate")
}

// Validate checks the required news fields
func (n *News) Validate() error {
	errs := validation.FieldErrors{}
	errs.Required("title", n.Title)
	errs.Required("content", n.Content)
	return errs.Err("title", "content")
}

// Validate checks the required account fields. Password holds the hash at this point.
func (a *Account) Validate() error {
	errs := validation.FieldErrors{}
	errs.Required("username", a.Username)
	errs.Required("password", a.Password)
	if a.Username != "" && !validation.CompiledPatterns.Username.MatchString(a.Username) {
		errs.Add("username", "username may contain letters, digits, dot, dash and underscore (3-50 characters)")
	}
	if a.PhoneNumber != "" && !validation.CompiledPatterns.Phone.MatchString(a.PhoneNumber) {
		errs.Add("phoneNumber", "phoneNumber is not a valid phone number")
	}
	switch a.Role {
	case RoleAdmin, RoleStaff:
	default:
		errs.Add("role", "role must be admin or staff")
	}
	return errs.Err("username", "password", "role")
}
