package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the minimal database surface the reconciler needs. Two adapters
// exist: one over a pgx pool (the service's runtime pool) and one over
// database/sql (used by dbtool for sqlite files).
type DB interface {
	Exec(ctx context.Context, query string, args ...any) error
	// QueryStrings runs a single-column query and returns the values.
	QueryStrings(ctx context.Context, query string, args ...any) ([]string, error)
}

type pgxDB struct {
	pool *pgxpool.Pool
}

func NewPostgresDB(pool *pgxpool.Pool) DB {
	return &pgxDB{pool: pool}
}

func (d *pgxDB) Exec(ctx context.Context, query string, args ...any) error {
	_, err := d.pool.Exec(ctx, query, args...)
	return err
}

func (d *pgxDB) QueryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

type sqlDB struct {
	db *sql.DB
}

func NewSQLiteDB(db *sql.DB) DB {
	return &sqlDB{db: db}
}

func (d *sqlDB) Exec(ctx context.Context, query string, args ...any) error {
	_, err := d.db.ExecContext(ctx, query, args...)
	return err
}

func (d *sqlDB) QueryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// Dialect renders the model to engine-specific DDL and knows how to
// introspect what the database currently has.
type Dialect interface {
	Name() string
	TableExists(ctx context.Context, db DB, table string) (bool, error)
	ColumnNames(ctx context.Context, db DB, table string) ([]string, error)
	IndexExists(ctx context.Context, db DB, table, index string) (bool, error)
	CreateTableSQL(t Table) string
	AddColumnSQL(table string, c Column) string
	CreateIndexSQL(idx Index) string
	DropTableSQL(table string) string
	// BindVar returns the placeholder for the i-th (1-based) statement argument.
	BindVar(i int) string
}

func columnDDL(c Column, typeName func(ColumnType) string) string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteString(" ")
	b.WriteString(typeName(c.Type))
	if c.Type == ColSerialPK {
		return b.String()
	}
	if c.Default != "" {
		fmt.Fprintf(&b, " DEFAULT %s", c.Default)
	}
	if c.NotNull {
		b.WriteString(" NOT NULL")
	}
	if c.Unique {
		b.WriteString(" UNIQUE")
	}
	if c.References != "" {
		fmt.Fprintf(&b, " REFERENCES %s", c.References)
		if c.OnDeleteCascade {
			b.WriteString(" ON DELETE CASCADE")
		}
	}
	return b.String()
}

func createTableDDL(t Table, typeName func(ColumnType) string) string {
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		cols = append(cols, "\t"+columnDDL(c, typeName))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n%s\n);", t.Name, strings.Join(cols, ",\n"))
}

func createIndexDDL(idx Index, concurrently bool) string {
	var b strings.Builder
	b.WriteString("CREATE ")
	if idx.Unique {
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX ")
	if concurrently {
		b.WriteString("CONCURRENTLY ")
	}
	fmt.Fprintf(&b, "IF NOT EXISTS %s ON %s (%s)", idx.Name, idx.Table, strings.Join(idx.Columns, ", "))
	if idx.Where != "" {
		fmt.Fprintf(&b, " WHERE %s", idx.Where)
	}
	b.WriteString(";")
	return b.String()
}
