package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindful/internal/logger"
)

func newMockDB(t *testing.T, driver string) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return sqlx.NewDb(db, driver), mock
}

func countingOpener(db *sqlx.DB, calls *int32) OpenFunc {
	return func(ctx context.Context) (*sqlx.DB, error) {
		atomic.AddInt32(calls, 1)
		return db, nil
	}
}

func TestConn_OpensLazilyOnce(t *testing.T) {
	db, _ := newMockDB(t, "pgx")
	defer db.Close()

	var calls int32
	p := NewWithOpener(countingOpener(db, &calls), logger.Discard())

	assert.Equal(t, int32(0), atomic.LoadInt32(&calls), "nothing should open before first use")

	first, err := p.Conn(context.Background())
	require.NoError(t, err)
	second, err := p.Conn(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestConn_ConcurrentCallersShareOneHandle(t *testing.T) {
	db, _ := newMockDB(t, "pgx")
	defer db.Close()

	var calls int32
	p := NewWithOpener(countingOpener(db, &calls), logger.Discard())

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.Conn(context.Background())
			assert.NoError(t, err)
			assert.Same(t, db, got)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestConn_ReopensAfterClose(t *testing.T) {
	first, firstMock := newMockDB(t, "pgx")
	second, _ := newMockDB(t, "pgx")
	defer second.Close()

	firstMock.ExpectClose()

	handles := []*sqlx.DB{first, second}
	var calls int32
	p := NewWithOpener(func(ctx context.Context) (*sqlx.DB, error) {
		n := atomic.AddInt32(&calls, 1)
		return handles[n-1], nil
	}, logger.Discard())

	got, err := p.Conn(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, got)

	require.NoError(t, p.Close())

	got, err = p.Conn(context.Background())
	require.NoError(t, err)
	assert.Same(t, second, got)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.NoError(t, firstMock.ExpectationsWereMet())
}

func TestConn_OpenFailurePropagates(t *testing.T) {
	cause := errors.New("connection refused")
	p := NewWithOpener(func(ctx context.Context) (*sqlx.DB, error) {
		return nil, cause
	}, logger.Discard())

	db, err := p.Conn(context.Background())
	assert.Nil(t, db)
	assert.ErrorIs(t, err, cause)
}

func TestClose_WithoutHandle(t *testing.T) {
	p := NewWithOpener(func(ctx context.Context) (*sqlx.DB, error) {
		t.Fatal("Close must not open a handle")
		return nil, nil
	}, logger.Discard())

	assert.NoError(t, p.Close())
}

func TestClose_SwallowsReleaseError(t *testing.T) {
	db, mock := newMockDB(t, "pgx")
	mock.ExpectClose().WillReturnError(errors.New("already gone"))

	p := NewWithOpener(func(ctx context.Context) (*sqlx.DB, error) { return db, nil }, logger.Discard())
	_, err := p.Conn(context.Background())
	require.NoError(t, err)

	assert.NoError(t, p.Close())
}

func TestHealth_Up(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "pgx")
	defer db.Close()

	mock.ExpectPing()

	p := NewWithOpener(func(ctx context.Context) (*sqlx.DB, error) { return db, nil }, logger.Discard())
	stats := p.Health(context.Background())

	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, "It's healthy", stats["message"])
	assert.Contains(t, stats, "open_connections")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealth_PingFails(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "pgx")
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("timeout"))

	p := NewWithOpener(func(ctx context.Context) (*sqlx.DB, error) { return db, nil }, logger.Discard())
	stats := p.Health(context.Background())

	assert.Equal(t, "down", stats["status"])
	assert.Contains(t, stats["error"], "timeout")
}

func TestHealth_OpenFails(t *testing.T) {
	p := NewWithOpener(func(ctx context.Context) (*sqlx.DB, error) {
		return nil, errors.New("no route to host")
	}, logger.Discard())

	stats := p.Health(context.Background())

	assert.Equal(t, "down", stats["status"])
	assert.Contains(t, stats["error"], "no route to host")
}
