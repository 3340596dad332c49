// Package memory keeps every document in process memory. It backs the
// storage.driver=memory mode and the service tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/models"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/app/repositories"
	"github.com/thanmuaIrischan/kindergarten-admin-sub001/internal/pkg/apperrors"
)

type tables struct {
	students  map[string]models.Student
	teachers  map[string]models.Teacher
	classes   map[string]models.Class
	semesters map[string]models.Semester
	news      map[string]models.News
	accounts  map[string]models.Account
	codes     map[string]models.VerificationCode
}

// DB is an in-memory document store
type DB struct {
	mutex sync.RWMutex
	data  tables

	// txMutex serializes transactions
	txMutex sync.Mutex
}

type txKey struct{}

// Open creates an empty store
func Open() *DB {
	return &DB{data: emptyTables()}
}

func emptyTables() tables {
	return tables{
		students:  map[string]models.Student{},
		teachers:  map[string]models.Teacher{},
		classes:   map[string]models.Class{},
		semesters: map[string]models.Semester{},
		news:      map[string]models.News{},
		accounts:  map[string]models.Account{},
		codes:     map[string]models.VerificationCode{},
	}
}

// txState is the undo log of one transaction, replayed in reverse on rollback
type txState struct {
	undo []func()
}

// WithinTransaction runs fn while holding the transaction lock. Writes outside a
// transaction wait for it to finish. When fn fails or panics only the writes fn made
// are undone.
func (db *DB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*txState); ok {
		return fn(ctx)
	}

	db.txMutex.Lock()
	defer db.txMutex.Unlock()

	tx := &txState{}
	rollback := func() {
		db.mutex.Lock()
		defer db.mutex.Unlock()
		for i := len(tx.undo) - 1; i >= 0; i-- {
			tx.undo[i]()
		}
	}

	defer func() {
		if r := recover(); r != nil {
			rollback()
			panic(r)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		rollback()
	}
	return err
}

// lockWrite takes the write lock and returns its release. Outside a transaction it
// first waits for any running transaction.
func (db *DB) lockWrite(ctx context.Context) func() {
	if _, ok := ctx.Value(txKey{}).(*txState); ok {
		db.mutex.Lock()
		return db.mutex.Unlock
	}
	db.txMutex.Lock()
	db.mutex.Lock()
	return func() {
		db.mutex.Unlock()
		db.txMutex.Unlock()
	}
}

// remember records how to restore m[key] if the surrounding transaction rolls back
func remember[T any](ctx context.Context, m map[string]T, key string) {
	tx, ok := ctx.Value(txKey{}).(*txState)
	if !ok {
		return
	}
	old, existed := m[key]
	tx.undo = append(tx.undo, func() {
		if existed {
			m[key] = old
		} else {
			delete(m, key)
		}
	})
}

// put and remove must be called with the write lock held
func put[T any](ctx context.Context, m map[string]T, key string, value T) {
	remember(ctx, m, key)
	m[key] = value
}

func remove[T any](ctx context.Context, m map[string]T, key string) {
	remember(ctx, m, key)
	delete(m, key)
}

// NewRepositories wires every repository to a fresh store
func NewRepositories() *repositories.Repositories {
	return Open().Repositories()
}

// Repositories wires every repository to db
func (db *DB) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Students:          NewStudentRepository(db),
		Teachers:          NewTeacherRepository(db),
		Classes:           NewClassRepository(db),
		Semesters:         NewSemesterRepository(db),
		News:              NewNewsRepository(db),
		Accounts:          NewAccountRepository(db),
		VerificationCodes: NewVerificationCodeRepository(db),
		Tx:                db,
	}
}

func notFound(entity string) error {
	return apperrors.NewNotFoundError(entity + " not found")
}

func contains(value, term string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(strings.TrimSpace(term)))
}

// collect copies the values matching keep, ordered by less
func collect[T any](m map[string]T, keep func(*T) bool, less func(a, b *T) bool) []*T {
	out := []*T{}
	for _, v := range m {
		v := v
		if keep == nil || keep(&v) {
			out = append(out, &v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
