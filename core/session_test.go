package core

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/store-ratings/desktop/internal/types"
)

func newMockSessionDB(t *testing.T) (*SessionDB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &SessionDB{conn: conn}, mock
}

func TestLoginReplacesStoredSession(t *testing.T) {
	db, mock := newMockSessionDB(t)

	mock.ExpectExec("INSERT OR REPLACE INTO session").
		WithArgs("jwt-abc", types.RoleAdmin, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, db.Login("jwt-abc", types.RoleAdmin))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrentReturnsStoredSession(t *testing.T) {
	db, mock := newMockSessionDB(t)

	mock.ExpectQuery("SELECT token, role FROM session").
		WillReturnRows(sqlmock.NewRows([]string{"token", "role"}).
			AddRow("jwt-abc", types.RoleStoreOwner))

	session, ok, err := db.Current()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "jwt-abc", session.Token)
	assert.Equal(t, types.RoleStoreOwner, session.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCurrentWithoutSession(t *testing.T) {
	db, mock := newMockSessionDB(t)

	mock.ExpectQuery("SELECT token, role FROM session").
		WillReturnRows(sqlmock.NewRows([]string{"token", "role"}))

	session, ok, err := db.Current()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, session)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutDeletesSession(t *testing.T) {
	db, mock := newMockSessionDB(t)

	mock.ExpectExec("DELETE FROM session").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, db.Logout())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogoutWhenEmptyIsNotAnError(t *testing.T) {
	db, mock := newMockSessionDB(t)

	mock.ExpectExec("DELETE FROM session").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, db.Logout())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestSessionSurvivesReopen goes through a real on-disk database: a session
// written by one connection must be visible after reopening, which is what
// keeps a login across application restarts.
func TestSessionSurvivesReopen(t *testing.T) {
	dataDir := t.TempDir()

	db, err := NewSessionDB(dataDir)
	require.NoError(t, err)
	require.NoError(t, db.Connect())
	require.NoError(t, db.Login("jwt-abc", types.RoleUser))
	require.NoError(t, db.Close())

	reopened, err := NewSessionDB(dataDir)
	require.NoError(t, err)
	require.NoError(t, reopened.Connect())
	defer reopened.Close()

	session, ok, err := reopened.Current()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "jwt-abc", session.Token)
	assert.Equal(t, types.RoleUser, session.Role)

	// Logout clears it for good.
	require.NoError(t, reopened.Logout())
	_, ok, err = reopened.Current()
	require.NoError(t, err)
	assert.False(t, ok)
}
