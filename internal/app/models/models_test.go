package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
)

func TestClassCloneIsDeep(t *testing.T) {
	c := &Class{ID: "c1", Students: []string{"s1", "s2"}}
	cp := c.Clone()
	cp.Students[0] = "changed"

	assert.Equal(t, "s1", c.Students[0])
	assert.True(t, c.HasStudent("s2"))
	assert.False(t, c.HasStudent("s3"))
	assert.Nil(t, (*Class)(nil).Clone())
}

func TestStudentDocuments(t *testing.T) {
	s := &Student{}
	assert.Empty(t, s.Documents())

	*s.Document(DocumentBirthCertificate) = MediaAsset{URL: "u", PublicID: "p"}
	assert.Equal(t, []MediaAsset{{URL: "u", PublicID: "p"}}, s.Documents())
	assert.Nil(t, s.Document("passport"))
}

func TestVerificationCodeExpiry(t *testing.T) {
	now := time.Now()
	code := VerificationCode{ExpiresAt: now.Add(VerificationCodeTTL)}
	assert.False(t, code.Expired(now))
	assert.True(t, code.Expired(now.Add(VerificationCodeTTL)))
}

func TestStudentValidate(t *testing.T) {
	s := &Student{StudentID: "HS1", Name: "An", DateOfBirth: "15-03-2020"}
	assert.NoError(t, s.Validate())

	s.DateOfBirth = "2020-03-15"
	err := s.Validate()
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	assert.Contains(t, apperrors.Details(err), "dateOfBirth")

	err = (&Student{}).Validate()
	assert.Equal(t, "studentID is required; name is required; dateOfBirth is required", err.Error())
}

func TestSemesterValidate(t *testing.T) {
	assert.NoError(t, (&Semester{SemesterName: "HK1", StartDate: "05-09-2024", EndDate: "05-09-2024"}).Validate())

	err := (&Semester{SemesterName: "HK1", StartDate: "05-09-2024", EndDate: "01-09-2024"}).Validate()
	assert.EqualError(t, err, "endDate must not be before startDate")
}

func TestClassAndAccountValidate(t *testing.T) {
	assert.EqualError(t, (&Class{ClassName: "Mam 1"}).Validate(), "semesterID is required")

	acc := &Account{Username: "admin", Password: "hash", Role: RoleAdmin, PhoneNumber: "+84901234567"}
	assert.NoError(t, acc.Validate())
	acc.Role = "root"
	assert.EqualError(t, acc.Validate(), "role must be admin or staff")
}
