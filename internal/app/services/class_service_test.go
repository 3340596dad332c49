package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/metrics"
)

func newClassService(f *fixture) ClassService {
	return NewClassService(f.repos, NewRosterService(f.repos, metrics.New(), testLogger), testLogger)
}

func TestClassCreateChecksReferencesAndRosters(t *testing.T) {
	f := newFixture(t)
	a, b := f.student("S1", "An"), f.student("S2", "Binh")
	f.class("Mam 1", a)
	svc := newClassService(f)

	_, err := svc.Create(f.ctx, &dto.ClassRequest{ClassName: "Mam 2", SemesterID: "ghost"})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	_, err = svc.Create(f.ctx, &dto.ClassRequest{ClassName: "Mam 2", SemesterID: f.semester.ID, TeacherID: "ghost"})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	_, err = svc.Create(f.ctx, &dto.ClassRequest{ClassName: "Mam 2", SemesterID: f.semester.ID, Students: ids(a, b)})
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	assert.EqualError(t, err, "students already assigned to another class: An (Mam 1)")

	_, err = svc.Create(f.ctx, &dto.ClassRequest{ClassName: "Mam 2", SemesterID: f.semester.ID, Students: []string{b.ID, b.ID}})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	created, err := svc.Create(f.ctx, &dto.ClassRequest{ClassName: "Mam 2", SemesterID: f.semester.ID, TeacherID: f.teacher.ID, Students: ids(b)})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, ids(b), created.Students)

	all, err := svc.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestClassReplaceIsFullDocument(t *testing.T) {
	f := newFixture(t)
	a, b, c := f.student("S1", "An"), f.student("S2", "Binh"), f.student("S3", "Chi")
	class := f.class("Mam 1", a, b)
	other := f.class("Mam 2", c)
	svc := newClassService(f)

	replaced, err := svc.Replace(f.ctx, class.ID, &dto.ClassRequest{ClassName: "Mam 1A", SemesterID: f.semester.ID, Students: ids(b)})
	require.NoError(t, err)
	assert.Equal(t, "Mam 1A", replaced.ClassName)
	assert.Empty(t, replaced.TeacherID)
	assert.Equal(t, ids(b), f.roster(class.ID))
	assert.Equal(t, class.CreatedAt, replaced.CreatedAt)

	_, err = svc.Replace(f.ctx, class.ID, &dto.ClassRequest{ClassName: "Mam 1A", SemesterID: f.semester.ID, Students: ids(b, c)})
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	assert.Equal(t, ids(b), f.roster(class.ID))
	assert.Equal(t, ids(c), f.roster(other.ID))

	_, err = svc.Replace(f.ctx, "ghost", &dto.ClassRequest{ClassName: "X", SemesterID: f.semester.ID})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestClassListByTeacherAndDelete(t *testing.T) {
	f := newFixture(t)
	class := f.class("Mam 1")
	svc := newClassService(f)

	classes, err := svc.ListByTeacher(f.ctx, f.teacher.ID)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, class.ID, classes[0].ID)

	_, err = svc.ListByTeacher(f.ctx, "ghost")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	bySemester, err := svc.ListBySemester(f.ctx, f.semester.ID)
	require.NoError(t, err)
	assert.Len(t, bySemester, 1)

	require.NoError(t, svc.Delete(f.ctx, class.ID))
	_, err = svc.Get(f.ctx, class.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.True(t, apperrors.Is(svc.Delete(f.ctx, class.ID), apperrors.ErrNotFound))
}
