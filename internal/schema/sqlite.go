package schema

import (
	"context"
	"fmt"
)

type SQLiteDialect struct{}

func (SQLiteDialect) Name() string { return "sqlite" }

func (SQLiteDialect) TableExists(ctx context.Context, db DB, table string) (bool, error) {
	names, err := db.QueryStrings(
		ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?;`,
		table,
	)
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

func (SQLiteDialect) ColumnNames(ctx context.Context, db DB, table string) ([]string, error) {
	return db.QueryStrings(
		ctx,
		`SELECT name FROM pragma_table_info(?);`,
		table,
	)
}

func (SQLiteDialect) IndexExists(ctx context.Context, db DB, table, index string) (bool, error) {
	names, err := db.QueryStrings(
		ctx,
		`SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = ? AND name = ?;`,
		table, index,
	)
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

func (SQLiteDialect) CreateTableSQL(t Table) string {
	return createTableDDL(t, sqliteTypeName)
}

func (SQLiteDialect) AddColumnSQL(table string, c Column) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", table, columnDDL(c, sqliteTypeName))
}

func (SQLiteDialect) CreateIndexSQL(idx Index) string {
	return createIndexDDL(idx, false)
}

func (SQLiteDialect) DropTableSQL(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;", table)
}

func (SQLiteDialect) BindVar(int) string {
	return "?"
}

func sqliteTypeName(t ColumnType) string {
	switch t {
	case ColSerialPK:
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	case ColInt:
		return "INTEGER"
	case ColFloat:
		return "REAL"
	case ColText:
		return "TEXT"
	case ColBool:
		return "BOOLEAN"
	case ColTimestamp:
		return "TIMESTAMP"
	default:
		return string(t)
	}
}
