package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models/dto"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
)

func TestSemesterDates(t *testing.T) {
	f := newFixture(t)
	svc := NewSemesterService(f.repos, testLogger)

	_, err := svc.Create(f.ctx, &dto.SemesterRequest{SemesterName: "HK2", StartDate: "2025-01-20", EndDate: "31-05-2025"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Create(f.ctx, &dto.SemesterRequest{SemesterName: "HK2", StartDate: "31-05-2025", EndDate: "20-01-2025"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	created, err := svc.Create(f.ctx, &dto.SemesterRequest{SemesterName: "HK2", StartDate: "20-01-2025", EndDate: "31-05-2025"})
	require.NoError(t, err)

	updated, err := svc.Update(f.ctx, created.ID, &dto.SemesterRequest{SemesterName: "2024-2025 HK2", StartDate: "20-01-2025", EndDate: "31-05-2025"})
	require.NoError(t, err)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "2024-2025 HK2", updated.SemesterName)

	_, err = svc.Update(f.ctx, "missing", &dto.SemesterRequest{SemesterName: "x", StartDate: "20-01-2025", EndDate: "31-05-2025"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSemesterDeleteLeavesClasses(t *testing.T) {
	f := newFixture(t)
	svc := NewSemesterService(f.repos, testLogger)
	class := f.class("Mam 1")

	require.NoError(t, svc.Delete(f.ctx, f.semester.ID))

	stored, err := f.repos.Classes.FindByID(f.ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, f.semester.ID, stored.SemesterID)
}

func TestNewsAuthor(t *testing.T) {
	f := newFixture(t)
	svc := NewNewsService(f.repos, testLogger)

	article, err := svc.Create(f.ctx, &dto.NewsRequest{Title: "Khai giang", Content: "Le khai giang ngay 5/9"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", article.Author)
	assert.NotNil(t, article.Subtitles)

	updated, err := svc.Update(f.ctx, article.ID, &dto.NewsRequest{Title: "Khai giang 2024", Content: "Le khai giang ngay 5/9"})
	require.NoError(t, err)
	assert.Equal(t, "admin", updated.Author)
	assert.Equal(t, "Khai giang 2024", updated.Title)

	_, err = svc.Create(f.ctx, &dto.NewsRequest{Title: "", Content: "x"}, "admin")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	require.NoError(t, svc.Delete(f.ctx, article.ID))
	_, err = svc.Get(f.ctx, article.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
