package schema

import (
	"context"
	"fmt"
)

type PostgresDialect struct{}

func (PostgresDialect) Name() string { return "postgres" }

func (PostgresDialect) TableExists(ctx context.Context, db DB, table string) (bool, error) {
	names, err := db.QueryStrings(
		ctx,
		`SELECT table_name FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1;`,
		table,
	)
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

func (PostgresDialect) ColumnNames(ctx context.Context, db DB, table string) ([]string, error) {
	return db.QueryStrings(
		ctx,
		`SELECT column_name FROM information_schema.columns
			WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position;`,
		table,
	)
}

func (PostgresDialect) IndexExists(ctx context.Context, db DB, table, index string) (bool, error) {
	names, err := db.QueryStrings(
		ctx,
		`SELECT indexname FROM pg_indexes
			WHERE schemaname = 'public' AND tablename = $1 AND indexname = $2;`,
		table, index,
	)
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

func (PostgresDialect) CreateTableSQL(t Table) string {
	return createTableDDL(t, postgresTypeName)
}

func (PostgresDialect) AddColumnSQL(table string, c Column) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s;", table, columnDDL(c, postgresTypeName))
}

// CreateIndexSQL builds indexes concurrently so a running service is not
// blocked while reconcile catches up on a live database.
func (PostgresDialect) CreateIndexSQL(idx Index) string {
	return createIndexDDL(idx, true)
}

func (PostgresDialect) DropTableSQL(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE;", table)
}

func (PostgresDialect) BindVar(i int) string {
	return fmt.Sprintf("$%d", i)
}

func postgresTypeName(t ColumnType) string {
	switch t {
	case ColSerialPK:
		return "SERIAL PRIMARY KEY"
	case ColInt:
		return "INTEGER"
	case ColFloat:
		return "DOUBLE PRECISION"
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
