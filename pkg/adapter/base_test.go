package adapter

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/leapquery/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseSQLAdapter_Close(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		expectErr bool
	}{
		{
			name:      "close with nil DB",
			setupDB:   false,
			expectErr: false,
		},
		{
			name:      "close with open DB",
			setupDB:   true,
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectClose()
				base.DB = db
			}

			err := base.Close()
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBaseSQLAdapter_Exec(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		setupMock func(mock sqlmock.Sqlmock)
		sql       string
		expectErr bool
		errMsg    string
	}{
		{
			name:      "exec without connection",
			setupDB:   false,
			sql:       "SELECT 1",
			expectErr: true,
			errMsg:    "database connection not established",
		},
		{
			name:    "exec success",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("CREATE TABLE users").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			sql:       "CREATE TABLE users (id INT)",
			expectErr: false,
		},
		{
			name:    "exec with error",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INVALID SQL").WillReturnError(assert.AnError)
			},
			sql:       "INVALID SQL",
			expectErr: true,
			errMsg:    "failed to execute SQL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				defer func() { _ = db.Close() }()

				if tt.setupMock != nil {
					tt.setupMock(mock)
				}
				base.DB = db
			}

			_, err := base.Exec(ctx, tt.sql)
			if tt.expectErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBaseSQLAdapter_Query(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		setupMock func(mock sqlmock.Sqlmock)
		sql       string
		expectErr bool
		errMsg    string
	}{
		{
			name:      "query without connection",
			setupDB:   false,
			sql:       "SELECT 1",
			expectErr: true,
			errMsg:    "database connection not established",
		},
		{
			name:    "query success",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "name"}).
					AddRow(1, "alice").
					AddRow(2, "bob")
				mock.ExpectQuery("SELECT").WillReturnRows(rows)
			},
			sql:       "SELECT id, name FROM users",
			expectErr: false,
		},
		{
			name:    "query with error",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INVALID").WillReturnError(assert.AnError)
			},
			sql:       "INVALID SQL",
			expectErr: true,
			errMsg:    "failed to execute query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				defer func() { _ = db.Close() }()

				if tt.setupMock != nil {
					tt.setupMock(mock)
				}
				base.DB = db
			}

			rows, err := base.Query(ctx, tt.sql)
			if tt.expectErr {
				require.Error(t, err)
				assert.Nil(t, rows)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				require.NoError(t, err)
				assert.NotNil(t, rows)
				defer func() { _ = rows.Close() }()
			}
		})
	}
}

func TestBaseSQLAdapter_IsConnected(t *testing.T) {
	tests := []struct {
		name     string
		setupDB  bool
		expected bool
	}{
		{
			name:     "not connected",
			setupDB:  false,
			expected: false,
		},
		{
			name:     "connected",
			setupDB:  true,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, _, err := sqlmock.New()
				require.NoError(t, err)
				defer func() { _ = db.Close() }()
				base.DB = db
			}

			assert.Equal(t, tt.expected, base.IsConnected())
		})
	}
}

func TestBaseSQLAdapter_ExecWithArgs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("UPDATE users SET name = \\? WHERE id = \\?").
		WithArgs("carol", 7).
		WillReturnResult(sqlmock.NewResult(0, 3))

	base := &BaseSQLAdapter{DB: db}
	n, err := base.Exec(context.Background(), "UPDATE users SET name = ? WHERE id = ?", "carol", 7)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBaseSQLAdapter_Transaction(t *testing.T) {
	tests := []struct {
		name      string
		commit    bool
		setupMock func(mock sqlmock.Sqlmock)
	}{
		{
			name:   "commit",
			commit: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM sessions").WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectCommit()
			},
		},
		{
			name:   "rollback",
			commit: false,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM sessions").WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectRollback()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()
			tt.setupMock(mock)

			logger, rec := testutil.NewRecorder()
			base := &BaseSQLAdapter{DB: db, Logger: logger}
			tx, err := base.Begin(ctx)
			require.NoError(t, err)

			n, err := tx.Exec(ctx, "DELETE FROM sessions")
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)

			end := "transaction rolled back"
			if tt.commit {
				require.NoError(t, tx.Commit())
				end = "transaction committed"
			} else {
				require.NoError(t, tx.Rollback())
			}
			assert.NoError(t, mock.ExpectationsWereMet())

			entries := rec.Entries()
			assert.Equal(t, []string{"transaction started", "executing statement", end}, rec.Messages())
			txID := entries[0].Attrs["tx_id"]
			assert.Len(t, txID, 36, "tx_id should be a uuid")
			for _, e := range entries {
				assert.Equal(t, txID, e.Attrs["tx_id"])
			}
			assert.Equal(t, "DELETE FROM sessions", entries[1].Attrs["sql"])
		})
	}
}

func TestBaseSQLAdapter_BeginWithoutConnection(t *testing.T) {
	base := &BaseSQLAdapter{}

	tx, err := base.Begin(context.Background())

	assert.Nil(t, tx)
	assert.ErrorIs(t, err, ErrNotConnected)
}
