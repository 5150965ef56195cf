package gorm

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB returns a GORM handle backed by sqlmock.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 conn,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	require.NoError(t, err)

	return gormDB, mock
}

var signoffColumns = []string{
	"id", "revision_id",
	"general_status", "general_signoff_id", "general_time",
	"acis_status", "acis_signoff_id", "acis_time",
	"acis_si_status", "acis_si_signoff_id", "acis_si_time",
	"hrc_si_status", "hrc_si_signoff_id", "hrc_si_time",
	"usint_status", "usint_signoff_id", "usint_time",
}

var revisionColumns = []string{
	"id", "obsid", "revision_number", "kind", "sequence_number",
	"time", "user_id", "notes",
}
