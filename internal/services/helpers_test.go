package services

import (
	"path/filepath"
	"testing"

	"github.com/localnerve/socialdb/internal/config"
	"github.com/localnerve/socialdb/internal/database"
	"github.com/localnerve/socialdb/internal/types"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// requireKind asserts err is a CustomError with the given status
func requireKind(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	ce, ok := types.AsCustomError(err)
	require.Truef(t, ok, "expected a CustomError, got %v", err)
	require.Equalf(t, code, ce.Code, "unexpected error %v", err)
}

// newFileDB connects to a migrated SQLite file through the production
// connection path, so several pooled connections write concurrently.
func newFileDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(&config.Config{
		DBType:            "sqlite-pure",
		DBDatabase:        filepath.Join(t.TempDir(), "social.db"),
		DBConnectionLimit: 5,
		DBLogLevel:        "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func flexID(id uint) *types.FlexID {
	f := types.FlexID(id)
	return &f
}
