package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/magicalhair/citas/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cfg = config.Database{
	Host:   "db",
	Port:   5433,
	User:   "citas",
	Pass:   "p@ss'word",
	Name:   "salon",
	Schema: "public",
}

func TestConnString(t *testing.T) {
	assert.Equal(t,
		`host=db port=5433 user=citas password='p@ss\'word' dbname=salon sslmode=disable options='-c search_path=public'`,
		connString(cfg))
}

func TestMigrationURL(t *testing.T) {
	assert.Equal(t,
		"postgres://citas:p%40ss%27word@db:5433/salon?sslmode=disable&search_path=public",
		migrationURL(cfg))
}

func TestFindMigrationsPath(t *testing.T) {
	path, err := findMigrationsPath()

	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(path, "000001_create_kv_store.up.sql"))
	assert.NoError(t, err)
}
