package database

import (
	"database/sql"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLiteDriverName is the go-sqlite3 driver with a Unicode LOWER. The
// built-in one only folds ASCII, so "École" would not match "éco".
const SQLiteDriverName = "sqlite3_inventory"

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}

// SQLite opens dsn through SQLiteDriverName.
func SQLite(dsn string) gorm.Dialector {
	return sqlite.New(sqlite.Config{
		DriverName: SQLiteDriverName,
		DSN:        dsn,
	})
}
