package gopaginate

import (
	"bytes"
	"context"
	"sync"
	"sync/atomic"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Page and count queries run concurrently, so expectations are matched in
// any order.
func newGORMMySQLMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}
	mock.MatchExpectationsInOrder(false)

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "mysql", db.Debug(), mock, nil
}

func newGORMPostgresMock() (string, *gorm.DB, sqlmock.Sqlmock, error) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		return "", nil, nil, err
	}
	mock.MatchExpectationsInOrder(false)

	dialector := postgres.New(postgres.Config{
		Conn: mockDB,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return "", nil, nil, err
	}

	return "postgres", db.Debug(), mock, nil
}

var _sqlMockFnList = []func() (string, *gorm.DB, sqlmock.Sqlmock, error){
	newGORMMySQLMock,
	newGORMPostgresMock,
}

// placeholder matches a bind variable of either dialect.
const placeholder = `(?:\$\d+|\?)`

type tUser struct {
	ID   uint
	Name string
	City string
}

func (tUser) TableName() string {
	return "users"
}

// fakeRepository records every call it receives.
type fakeRepository[T any] struct {
	items    []T
	total    int64
	findErr  error
	countErr error

	findCalls  atomic.Int32
	countCalls atomic.Int32

	mu        sync.Mutex
	lastFind  FindOptions
	lastWhere any
}

func (r *fakeRepository[T]) Find(_ context.Context, opts FindOptions) ([]T, error) {
	r.findCalls.Add(1)

	r.mu.Lock()
	r.lastFind = opts
	r.mu.Unlock()

	if r.findErr != nil {
		return nil, r.findErr
	}

	end := min(opts.Skip+opts.Take, len(r.items))
	if opts.Skip >= end {
		return []T{}, nil
	}

	return r.items[opts.Skip:end], nil
}

func (r *fakeRepository[T]) Count(_ context.Context, where any) (int64, error) {
	r.countCalls.Add(1)

	r.mu.Lock()
	r.lastWhere = where
	r.mu.Unlock()

	if r.countErr != nil {
		return 0, r.countErr
	}

	return r.total, nil
}

func newBufferedLogger() (*bytes.Buffer, zerolog.Logger) {
	buf := new(bytes.Buffer)
	return buf, zerolog.New(buf)
}
