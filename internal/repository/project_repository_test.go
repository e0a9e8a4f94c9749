package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newMockDB wires a GORM connection over a sqlmock driver so store failures
// can be injected.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// TestCount_PropagatesStoreError verifies a failed count surfaces as an error
// instead of a zero result
func TestCount_PropagatesStoreError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	storeErr := errors.New("connection reset")
	mock.ExpectQuery("SELECT count").WillReturnError(storeErr)

	_, err := repo.Count()
	assert.ErrorIs(t, err, storeErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestCountByStatus_PropagatesStoreError verifies the grouped count fails loud
func TestCountByStatus_PropagatesStoreError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	storeErr := errors.New("table locked")
	mock.ExpectQuery("SELECT status").WillReturnError(storeErr)

	_, err := repo.CountByStatus()
	assert.ErrorIs(t, err, storeErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestListByStatuses_PropagatesStoreError verifies a failed read is
// distinguishable from an empty result
func TestListByStatuses_PropagatesStoreError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProjectRepository(db)

	storeErr := errors.New("disk I/O error")
	mock.ExpectQuery("SELECT").WillReturnError(storeErr)

	projects, err := repo.ListByStatuses(nil)
	assert.Nil(t, projects)
	assert.ErrorIs(t, err, storeErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
