package repository

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const sqliteMemory = ":memory:"

var TEST_DEBUG = os.Getenv("TEST_DEBUG") == "1"

// testConn returns a new in-memory database connection for testing.
func testConn(t *testing.T) *sqlx.DB {
	t.Helper()
	if TEST_DEBUG {
		return testConnDSN(t, t.Name()+".sqlite")
	}
	return testConnDSN(t, sqliteMemory)
}

func testConnDSN(t *testing.T, dsn string) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open(Driver, dsn)
	if err != nil {
		t.Fatalf("sql.Open() err = %v; want nil", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("db.Ping() err = %v; want nil", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := Migrate(context.Background(), db.DB); err != nil {
		t.Fatalf("Migrate() err = %v; want nil", err)
	}
	return db
}

// checkCount checks the count of rows in the table.
func checkCount(t *testing.T, conn sqlx.ExtContext, table string, want int) {
	t.Helper()
	var count int
	if err := conn.QueryRowxContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		t.Fatalf("count err = %v; want nil", err)
	}
	if count != want {
		t.Errorf("count = %d; want %d", count, want)
	}
}

// setUpdated forces the conversation update time to a known value, so that
// the ordering tests do not depend on the clock resolution.
func setUpdated(t *testing.T, conn sqlx.ExtContext, id, dttm string) {
	t.Helper()
	if _, err := conn.ExecContext(context.Background(), "UPDATE CONVERSATION SET UPDATED_AT = ? WHERE ID = ?", dttm, id); err != nil {
		t.Fatalf("setUpdated err = %v; want nil", err)
	}
}

// ptr returns a pointer to the value.
func ptr[T any](v T) *T {
	return &v
}
