package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/metrics"
)

func newRoster(f *fixture) RosterService {
	return NewRosterService(f.repos, metrics.New(), testLogger)
}

func TestAddStudentsAppendsInInputOrder(t *testing.T) {
	f := newFixture(t)
	a, b, c := f.student("S1", "An"), f.student("S2", "Binh"), f.student("S3", "Chi")
	class := f.class("Mam 1", a)

	updated, err := newRoster(f).AddStudents(f.ctx, class.ID, []string{c.ID, b.ID, c.ID})
	require.NoError(t, err)

	assert.Equal(t, ids(a, c, b), updated.Students)
	assert.Equal(t, ids(a, c, b), f.roster(class.ID))
}

func TestAddStudentsRejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	a, b := f.student("S1", "An"), f.student("S2", "Binh")
	c1 := f.class("Mam 1", a)
	c2 := f.class("Mam 2", b)
	roster := newRoster(f)

	_, err := roster.AddStudents(f.ctx, c1.ID, []string{a.ID})
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	assert.EqualError(t, err, "students already in this class: An")

	_, err = roster.AddStudents(f.ctx, c1.ID, []string{b.ID})
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	assert.EqualError(t, err, "students already assigned to another class: Binh (Mam 2)")

	assert.Equal(t, ids(a), f.roster(c1.ID))
	assert.Equal(t, ids(b), f.roster(c2.ID))
}

func TestAddStudentsPreconditions(t *testing.T) {
	f := newFixture(t)
	a := f.student("S1", "An")
	class := f.class("Mam 1")
	roster := newRoster(f)

	_, err := roster.AddStudents(f.ctx, "missing", []string{a.ID})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))

	_, err = roster.AddStudents(f.ctx, class.ID, []string{a.ID, "ghost"})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.EqualError(t, err, "students not found: ghost")

	_, err = roster.AddStudents(f.ctx, class.ID, []string{" ", ""})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	assert.Empty(t, f.roster(class.ID))
}

func TestRemoveStudentsIsIdempotent(t *testing.T) {
	f := newFixture(t)
	a, b, c := f.student("S1", "An"), f.student("S2", "Binh"), f.student("S3", "Chi")
	class := f.class("Mam 1", a, b, c)
	roster := newRoster(f)

	first, err := roster.RemoveStudents(f.ctx, class.ID, []string{b.ID, "not-there"})
	require.NoError(t, err)
	assert.Equal(t, ids(a, c), first.Students)

	second, err := roster.RemoveStudents(f.ctx, class.ID, []string{b.ID, "not-there"})
	require.NoError(t, err)
	assert.Equal(t, first.Students, second.Students)
	assert.Equal(t, ids(a, c), f.roster(class.ID))

	_, err = roster.RemoveStudents(f.ctx, "missing", []string{a.ID})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestTransferStudentsMovesAtomically(t *testing.T) {
	f := newFixture(t)
	a, b, c := f.student("S1", "An"), f.student("S2", "Binh"), f.student("S3", "Chi")
	src := f.class("Mam 1", a, b)
	dst := f.class("Mam 2", c)

	source, target, err := newRoster(f).TransferStudents(f.ctx, src.ID, dst.ID, []string{a.ID})
	require.NoError(t, err)

	assert.Equal(t, ids(b), source.Students)
	assert.Equal(t, ids(c, a), target.Students)
	assert.Equal(t, ids(b), f.roster(src.ID))
	assert.Equal(t, ids(c, a), f.roster(dst.ID))
}

func TestTransferStudentsValidatesBeforeWriting(t *testing.T) {
	f := newFixture(t)
	a, b, c := f.student("S1", "An"), f.student("S2", "Binh"), f.student("S3", "Chi")
	src := f.class("Mam 1", a, b)
	dst := f.class("Mam 2", c)
	roster := newRoster(f)

	_, _, err := roster.TransferStudents(f.ctx, src.ID, dst.ID, []string{a.ID, c.ID})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
	assert.EqualError(t, err, "students not in source class: Chi")

	_, _, err = roster.TransferStudents(f.ctx, dst.ID, src.ID, []string{c.ID})
	require.NoError(t, err)
	_, _, err = roster.TransferStudents(f.ctx, src.ID, dst.ID, []string{a.ID})
	require.NoError(t, err)
	_, _, err = roster.TransferStudents(f.ctx, src.ID, dst.ID, []string{b.ID})
	require.NoError(t, err)

	assert.Equal(t, ids(c), f.roster(src.ID))
	assert.Equal(t, ids(a, b), f.roster(dst.ID))

	_, _, err = roster.TransferStudents(f.ctx, src.ID, src.ID, []string{c.ID})
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))

	_, _, err = roster.TransferStudents(f.ctx, src.ID, "missing", []string{c.ID})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, ids(c), f.roster(src.ID))
}

func TestTransferStudentsRejectsStudentAlreadyInTarget(t *testing.T) {
	f := newFixture(t)
	a := f.student("S1", "An")
	src := f.class("Mam 1", a)
	dst := f.class("Mam 2")

	// bypass the roster service to build an inconsistent pair of rosters
	dst.Students = ids(a)
	require.NoError(t, f.repos.Classes.Update(f.ctx, dst))

	_, _, err := newRoster(f).TransferStudents(f.ctx, src.ID, dst.ID, ids(a))
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	assert.EqualError(t, err, "students already in target class: An")
	assert.Equal(t, ids(a), f.roster(src.ID))
}

func TestTransferStudentsRollsBackWhenTargetWriteFails(t *testing.T) {
	f := newFixture(t)
	a, b := f.student("S1", "An"), f.student("S2", "Binh")
	src := f.class("Mam 1", a, b)
	dst := f.class("Mam 2")

	f.repos.Classes = &failingClassRepository{ClassRepository: f.repos.Classes, failID: dst.ID}
	_, _, err := newRoster(f).TransferStudents(f.ctx, src.ID, dst.ID, ids(a))
	assert.ErrorIs(t, err, errWriteFailed)

	assert.Equal(t, ids(a, b), f.roster(src.ID))
	assert.Empty(t, f.roster(dst.ID))
}

func TestUpdateClassTeacherPreservesRosterAndSemester(t *testing.T) {
	f := newFixture(t)
	a := f.student("S1", "An")
	class := f.class("Mam 1", a)
	other := &testTeacher{TeacherID: "GV002", Name: "Le Van Nam"}
	teacher := other.create(t, f)
	roster := newRoster(f)

	updated, err := roster.UpdateClassTeacher(f.ctx, class.ID, &teacher)
	require.NoError(t, err)
	assert.Equal(t, teacher, updated.TeacherID)
	assert.Equal(t, ids(a), updated.Students)
	assert.Equal(t, f.semester.ID, updated.SemesterID)
	assert.Equal(t, "Mam 1", updated.ClassName)
	assert.False(t, updated.UpdatedAt.Before(class.UpdatedAt))

	cleared, err := roster.UpdateClassTeacher(f.ctx, class.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, cleared.TeacherID)
	assert.Equal(t, ids(a), cleared.Students)

	ghost := "ghost"
	_, err = roster.UpdateClassTeacher(f.ctx, class.ID, &ghost)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestChangeSemesterPreservesRosterAndTeacher(t *testing.T) {
	f := newFixture(t)
	a := f.student("S1", "An")
	class := f.class("Mam 1", a)
	next := f.nextSemester()
	roster := newRoster(f)

	updated, err := roster.ChangeSemester(f.ctx, class.ID, next)
	require.NoError(t, err)
	assert.Equal(t, next, updated.SemesterID)
	assert.Equal(t, ids(a), updated.Students)
	assert.Equal(t, f.teacher.ID, updated.TeacherID)

	_, err = roster.ChangeSemester(f.ctx, class.ID, "ghost")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	_, err = roster.ChangeSemester(f.ctx, class.ID, "")
	assert.True(t, apperrors.Is(err, apperrors.ErrValidation))
}

func TestGetRosterAndFindClassOfStudent(t *testing.T) {
	f := newFixture(t)
	a, b, loner := f.student("S1", "An"), f.student("S2", "Binh"), f.student("S3", "Chi")
	class := f.class("Mam 1", b, a)
	roster := newRoster(f)

	c, students, err := roster.GetRoster(f.ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, class.ID, c.ID)
	require.Len(t, students, 2)
	assert.Equal(t, "Binh", students[0].Name)

	holder, err := roster.FindClassOfStudent(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, class.ID, holder.ID)

	_, err = roster.FindClassOfStudent(f.ctx, loner.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestDetachStudentRemovesFromEveryRoster(t *testing.T) {
	f := newFixture(t)
	a, b := f.student("S1", "An"), f.student("S2", "Binh")
	c1 := f.class("Mam 1", a, b)

	require.NoError(t, newRoster(f).DetachStudent(f.ctx, a.ID))
	assert.Equal(t, ids(b), f.roster(c1.ID))
}

func TestConcurrentAddsKeepAtMostOneClass(t *testing.T) {
	f := newFixture(t)
	a := f.student("S1", "An")
	classes := []string{f.class("Mam 1").ID, f.class("Mam 2").ID, f.class("Mam 3").ID, f.class("Mam 4").ID}
	roster := newRoster(f)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for _, id := range classes {
		wg.Add(1)
		go func(classID string) {
			defer wg.Done()
			if _, err := roster.AddStudents(context.Background(), classID, ids(a)); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	holders, err := f.repos.Classes.FindContainingStudents(f.ctx, ids(a))
	require.NoError(t, err)
	assert.Len(t, holders, 1)
}
