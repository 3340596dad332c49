package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories/memory"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/auth"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/media"
	"golang.org/x/crypto/bcrypt"
)

var testLogger = zerolog.Nop()

type fixture struct {
	t        *testing.T
	ctx      context.Context
	repos    *repositories.Repositories
	semester *models.Semester
	teacher  *models.Teacher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{t: t, ctx: context.Background(), repos: memory.NewRepositories()}

	f.semester = &models.Semester{SemesterName: "2024-2025 HK1", StartDate: "05-09-2024", EndDate: "15-01-2025"}
	require.NoError(t, f.repos.Semesters.Create(f.ctx, f.semester))
	f.teacher = &models.Teacher{TeacherID: "GV001", Name: "Tran Thi Mai"}
	require.NoError(t, f.repos.Teachers.Create(f.ctx, f.teacher))
	return f
}

func (f *fixture) student(studentID, name string) *models.Student {
	f.t.Helper()
	s := &models.Student{StudentID: studentID, Name: name, DateOfBirth: "15-03-2020"}
	require.NoError(f.t, f.repos.Students.Create(f.ctx, s))
	return s
}

func (f *fixture) class(name string, students ...*models.Student) *models.Class {
	f.t.Helper()
	ids := []string{}
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	c := &models.Class{ClassName: name, SemesterID: f.semester.ID, TeacherID: f.teacher.ID, Students: ids}
	require.NoError(f.t, f.repos.Classes.Create(f.ctx, c))
	return c
}

func (f *fixture) roster(classID string) []string {
	f.t.Helper()
	c, err := f.repos.Classes.FindByID(f.ctx, classID)
	require.NoError(f.t, err)
	return c.Students
}

func ids(students ...*models.Student) []string {
	out := make([]string, 0, len(students))
	for _, s := range students {
		out = append(out, s.ID)
	}
	return out
}

var errWriteFailed = errors.New("simulated write failure")

// failingClassRepository fails Update for one class ID
type failingClassRepository struct {
	repositories.ClassRepository
	failID string
}

func (r *failingClassRepository) Update(ctx context.Context, class *models.Class) error {
	if class.ID == r.failID {
		return errWriteFailed
	}
	return r.ClassRepository.Update(ctx, class)
}

type testTeacher models.Teacher

func (tt *testTeacher) create(t *testing.T, f *fixture) string {
	t.Helper()
	teacher := models.Teacher(*tt)
	require.NoError(t, f.repos.Teachers.Create(f.ctx, &teacher))
	return teacher.ID
}

func (f *fixture) nextSemester() string {
	f.t.Helper()
	s := &models.Semester{SemesterName: "2024-2025 HK2", StartDate: "01-02-2025", EndDate: "31-05-2025"}
	require.NoError(f.t, f.repos.Semesters.Create(f.ctx, s))
	return s.ID
}

func init() {
	auth.BcryptCost = bcrypt.MinCost
}

// fakeStorage keeps uploads in a map and can be told to fail
type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string]string
	deleted   []string
	failWrite bool
	failDel   bool
	seq       int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]string{}}
}

func (f *fakeStorage) Upload(ctx context.Context, filename string, r io.Reader, folder string) (media.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return media.Asset{}, errors.New("media host down")
	}
	data, _ := io.ReadAll(r)
	f.seq++
	id := fmt.Sprintf("%s/%d-%s", folder, f.seq, filename)
	f.objects[id] = string(data)
	return media.Asset{URL: "https://media.example.com/" + id, PublicID: id}, nil
}

func (f *fakeStorage) Delete(ctx context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDel {
		return errors.New("media host down")
	}
	delete(f.objects, publicID)
	f.deleted = append(f.deleted, publicID)
	return nil
}

// fakeSender records sent messages
type fakeSender struct {
	messages []string
	to       []string
	err      error
}

func (f *fakeSender) Send(ctx context.Context, to, body string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.messages = append(f.messages, body)
	return nil
}
