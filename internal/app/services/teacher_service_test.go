package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/metrics"
)

func newTeacherService(f *fixture, storage *fakeStorage) TeacherService {
	return NewTeacherService(f.repos, NewMediaService(storage, "", metrics.New(), testLogger), testLogger)
}

func TestTeacherCRUD(t *testing.T) {
	f := newFixture(t)
	storage := newFakeStorage()
	svc := newTeacherService(f, storage)

	_, err := svc.Create(f.ctx, &dto.CreateTeacherRequest{TeacherID: "GV001", Name: "Duplicate"})
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

	created, err := svc.Create(f.ctx, &dto.CreateTeacherRequest{TeacherID: "GV002", Name: "Le Van Nam", Phone: "0901234567"})
	require.NoError(t, err)

	updated, err := svc.Update(f.ctx, created.ID, &dto.UpdateTeacherRequest{Phone: strPtr("0907654321")})
	require.NoError(t, err)
	assert.Equal(t, "Le Van Nam", updated.Name)
	assert.Equal(t, "0907654321", updated.Phone)

	withAvatar, err := svc.UploadAvatar(f.ctx, created.ID, "nam.jpg", strings.NewReader("jpg"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(withAvatar.Avatar.PublicID, "teachers/"))

	found, err := svc.Search(f.ctx, "nam")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, svc.Delete(f.ctx, created.ID))
	assert.Contains(t, storage.deleted, withAvatar.Avatar.PublicID)
	_, err = svc.Get(f.ctx, created.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestTeacherDeleteLeavesClassReference(t *testing.T) {
	f := newFixture(t)
	class := f.class("Mam 1")
	svc := newTeacherService(f, newFakeStorage())

	require.NoError(t, svc.Delete(f.ctx, f.teacher.ID))

	stored, err := f.repos.Classes.FindByID(f.ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, f.teacher.ID, stored.TeacherID)
}
