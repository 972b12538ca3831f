package database

import (
	"context"
	"database/sql/driver"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// TestNew verifies the bootstrap path end to end: New must open a usable
// database with whichever driver the shim selects, including drivers that
// don't implement driver.DriverContext (the connector fallback path).
func TestNew(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	db, err := New(cfg)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE bootstrap_test (id INTEGER PRIMARY KEY, value TEXT)`)
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO bootstrap_test (value) VALUES (?)", "hello")
	require.NoError(t, err)

	var value string
	err = db.QueryRow("SELECT value FROM bootstrap_test WHERE id = 1").Scan(&value)
	require.NoError(t, err)
	assert.Equal(t, "hello", value)

	var fk int
	err = db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk)
}

// TestDriverConnector verifies the fallback connector used when the driver
// has no OpenConnector.
func TestDriverConnector(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	dc := newDriverConnector(sqliteshim.Driver(), tmpDir+"/fallback.db")

	conn, err := dc.Connect(context.Background())
	require.NoError(t, err)
	defer conn.Close()

	assert.Implements(t, (*driver.Driver)(nil), dc.Driver())
}
