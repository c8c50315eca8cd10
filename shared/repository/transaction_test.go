package repository_test

import (
	"context"
	"errors"
	"resort/infras/database"
	"resort/infras/otel/mocks"
	"resort/shared/repository"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConnection(t *testing.T) (*database.Connection, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	sqlxDB := sqlx.NewDb(db, "postgres")

	return &database.Connection{Driver: "postgres", Read: sqlxDB, Write: sqlxDB}, mock
}

func TestTransactor_WithTransaction(t *testing.T) {
	errFn := errors.New("boom")

	tests := []struct {
		name    string
		fnErr   error
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "commits on success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectCommit()
			},
		},
		{
			name:  "rolls back on error",
			fnErr: errFn,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			wantErr: errFn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newConnection(t)
			tt.setup(mock)

			transactor := repository.NewTransactor(conn, mocks.NewOtel())

			called := false
			err := transactor.WithTransaction(context.Background(), func(_ context.Context, sqltx *sqlx.Tx) error {
				called = true

				assert.NotNil(t, sqltx)

				return tt.fnErr
			})

			assert.True(t, called)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTransactor_WithTransaction_Panic(t *testing.T) {
	conn, mock := newConnection(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	transactor := repository.NewTransactor(conn, mocks.NewOtel())

	assert.Panics(t, func() {
		_ = transactor.WithTransaction(context.Background(), func(_ context.Context, _ *sqlx.Tx) error {
			panic("unexpected")
		})
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
