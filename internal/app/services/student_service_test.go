package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/metrics"
)

func newStudentService(f *fixture, storage *fakeStorage) StudentService {
	m := metrics.New()
	return NewStudentService(f.repos,
		NewRosterService(f.repos, m, testLogger),
		NewMediaService(storage, "kindergarten", m, testLogger),
		testLogger)
}

func strPtr(s string) *string { return &s }

func TestStudentCreateRejectsDuplicateStudentID(t *testing.T) {
	f := newFixture(t)
	svc := newStudentService(f, newFakeStorage())

	created, err := svc.Create(f.ctx, &dto.CreateStudentRequest{StudentID: "HS1", Name: "An", DateOfBirth: "01-02-2020"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = svc.Create(f.ctx, &dto.CreateStudentRequest{StudentID: "HS1", Name: "Binh", DateOfBirth: "01-02-2020"})
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

	_, err = svc.Create(f.ctx, &dto.CreateStudentRequest{StudentID: "HS2", Name: "Binh", DateOfBirth: "2020-02-01"})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestStudentUpdateKeepsUnsetFields(t *testing.T) {
	f := newFixture(t)
	a := f.student("S1", "An")
	f.student("S2", "Binh")
	svc := newStudentService(f, newFakeStorage())

	updated, err := svc.Update(f.ctx, a.ID, &dto.UpdateStudentRequest{Grade: strPtr("Mam"), Name: strPtr("An Nguyen")})
	require.NoError(t, err)
	assert.Equal(t, "An Nguyen", updated.Name)
	assert.Equal(t, "Mam", updated.Grade)
	assert.Equal(t, "S1", updated.StudentID)
	assert.Equal(t, "15-03-2020", updated.DateOfBirth)

	_, err = svc.Update(f.ctx, a.ID, &dto.UpdateStudentRequest{StudentID: strPtr("S2")})
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

	_, err = svc.Update(f.ctx, "ghost", &dto.UpdateStudentRequest{})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestStudentDeleteDetachesAndRemovesDocuments(t *testing.T) {
	f := newFixture(t)
	storage := newFakeStorage()
	svc := newStudentService(f, storage)
	a, b := f.student("S1", "An"), f.student("S2", "Binh")
	class := f.class("Mam 1", a, b)

	withPhoto, err := svc.UploadDocument(f.ctx, a.ID, models.DocumentPhoto, "an.jpg", strings.NewReader("jpg"))
	require.NoError(t, err)
	publicID := withPhoto.Photo.PublicID
	require.NotEmpty(t, publicID)
	assert.True(t, strings.HasPrefix(publicID, "kindergarten/students/"))

	require.NoError(t, svc.Delete(f.ctx, a.ID))

	assert.Equal(t, ids(b), f.roster(class.ID))
	_, err = svc.Get(f.ctx, a.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.Contains(t, storage.deleted, publicID)
}

func TestStudentDeleteSucceedsWhenMediaDeleteFails(t *testing.T) {
	f := newFixture(t)
	storage := newFakeStorage()
	svc := newStudentService(f, storage)
	a := f.student("S1", "An")

	_, err := svc.UploadDocument(f.ctx, a.ID, models.DocumentBirthCertificate, "bc.pdf", strings.NewReader("pdf"))
	require.NoError(t, err)

	storage.failDel = true
	require.NoError(t, svc.Delete(f.ctx, a.ID))
	_, err = svc.Get(f.ctx, a.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestStudentUploadDocumentReplacesPrevious(t *testing.T) {
	f := newFixture(t)
	storage := newFakeStorage()
	svc := newStudentService(f, storage)
	a := f.student("S1", "An")

	first, err := svc.UploadDocument(f.ctx, a.ID, models.DocumentHouseholdRegistration, "hk1.png", strings.NewReader("1"))
	require.NoError(t, err)
	oldID := first.HouseholdRegistration.PublicID

	second, err := svc.UploadDocument(f.ctx, a.ID, models.DocumentHouseholdRegistration, "hk2.png", strings.NewReader("2"))
	require.NoError(t, err)
	assert.NotEqual(t, oldID, second.HouseholdRegistration.PublicID)
	assert.Equal(t, []string{oldID}, storage.deleted)

	_, err = svc.UploadDocument(f.ctx, a.ID, models.DocumentKind("passport"), "p.png", strings.NewReader("x"))
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	_, err = svc.UploadDocument(f.ctx, a.ID, models.DocumentPhoto, "virus.exe", strings.NewReader("x"))
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	storage.failWrite = true
	_, err = svc.UploadDocument(f.ctx, a.ID, models.DocumentPhoto, "p.png", strings.NewReader("x"))
	assert.True(t, apperrors.Is(err, apperrors.ErrUpstream))
}

func TestStudentSearch(t *testing.T) {
	f := newFixture(t)
	f.student("S1", "Nguyen An")
	f.student("S2", "Tran Binh")
	svc := newStudentService(f, newFakeStorage())

	found, err := svc.Search(f.ctx, "nguyen")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Nguyen An", found[0].Name)

	all, err := svc.Search(f.ctx, " ")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
