package schema

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// MigrationError describes the first schema change that failed. The report
// returned alongside it covers everything applied up to that point.
type MigrationError struct {
	Step   string
	Table  string
	Object string
	Err    error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("%s %s on %s: %s", e.Step, e.Object, e.Table, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

type TableReport struct {
	Table        string   `json:"table"`
	Created      bool     `json:"created"`
	AddedColumns []string `json:"addedColumns,omitempty"`
	AddedIndexes []string `json:"addedIndexes,omitempty"`
}

func (tr TableReport) changed() bool {
	return tr.Created || len(tr.AddedColumns) > 0 || len(tr.AddedIndexes) > 0
}

type Report struct {
	Tables []TableReport `json:"tables"`
}

func (r *Report) Changed() bool {
	for _, tr := range r.Tables {
		if tr.changed() {
			return true
		}
	}
	return false
}

func (r *Report) String() string {
	var b strings.Builder
	for _, tr := range r.Tables {
		if !tr.changed() {
			continue
		}
		if tr.Created {
			fmt.Fprintf(&b, "created table %s\n", tr.Table)
		}
		for _, col := range tr.AddedColumns {
			fmt.Fprintf(&b, "added column %s.%s\n", tr.Table, col)
		}
		for _, idx := range tr.AddedIndexes {
			fmt.Fprintf(&b, "added index %s on %s\n", idx, tr.Table)
		}
	}
	if b.Len() == 0 {
		return "schema up to date, nothing to do"
	}
	return strings.TrimRight(b.String(), "\n")
}

type Reconciler struct {
	db      DB
	dialect Dialect
}

func NewReconciler(db DB, dialect Dialect) *Reconciler {
	return &Reconciler{
		db:      db,
		dialect: dialect,
	}
}

// Reconcile brings the database up to the expected model: missing tables are
// created, missing columns and indexes are added. Existing objects are never
// altered or dropped, so running it repeatedly is safe. It stops at the first
// failure and returns the partial report together with a *MigrationError.
func (r *Reconciler) Reconcile(ctx context.Context) (*Report, error) {
	report := &Report{}

	for _, table := range Tables() {
		tr := TableReport{Table: table.Name}

		exists, err := r.dialect.TableExists(ctx, r.db, table.Name)
		if err != nil {
			report.Tables = append(report.Tables, tr)
			return report, &MigrationError{Step: "inspect", Table: table.Name, Object: "table", Err: err}
		}

		if !exists {
			if err := r.db.Exec(ctx, r.dialect.CreateTableSQL(table)); err != nil {
				report.Tables = append(report.Tables, tr)
				return report, &MigrationError{Step: "create", Table: table.Name, Object: "table", Err: err}
			}
			tr.Created = true
		} else {
			have, err := r.dialect.ColumnNames(ctx, r.db, table.Name)
			if err != nil {
				report.Tables = append(report.Tables, tr)
				return report, &MigrationError{Step: "inspect", Table: table.Name, Object: "columns", Err: err}
			}
			haveSet := make(map[string]struct{}, len(have))
			for _, name := range have {
				haveSet[name] = struct{}{}
			}
			for _, col := range table.Columns {
				if _, ok := haveSet[col.Name]; ok {
					continue
				}
				if err := r.db.Exec(ctx, r.dialect.AddColumnSQL(table.Name, col)); err != nil {
					report.Tables = append(report.Tables, tr)
					return report, &MigrationError{Step: "add", Table: table.Name, Object: "column " + col.Name, Err: err}
				}
				tr.AddedColumns = append(tr.AddedColumns, col.Name)
			}
		}

		for _, idx := range Indexes() {
			if idx.Table != table.Name {
				continue
			}
			exists, err := r.dialect.IndexExists(ctx, r.db, idx.Table, idx.Name)
			if err != nil {
				report.Tables = append(report.Tables, tr)
				return report, &MigrationError{Step: "inspect", Table: idx.Table, Object: "index " + idx.Name, Err: err}
			}
			if exists {
				continue
			}
			if err := r.db.Exec(ctx, r.dialect.CreateIndexSQL(idx)); err != nil {
				report.Tables = append(report.Tables, tr)
				return report, &MigrationError{Step: "create", Table: idx.Table, Object: "index " + idx.Name, Err: err}
			}
			tr.AddedIndexes = append(tr.AddedIndexes, idx.Name)
		}

		report.Tables = append(report.Tables, tr)
	}

	return report, nil
}

// Reset drops every model table and rebuilds the schema from scratch,
// then provisions the operator account. Drop errors are aggregated so one
// stubborn table does not mask the rest.
func (r *Reconciler) Reset(ctx context.Context, adminUsername, adminPasswordHash string) (*Report, error) {
	tables := Tables()
	var dropErr error
	for i := len(tables) - 1; i >= 0; i-- {
		log.Warnf("dropping table %s ...", tables[i].Name)
		if err := r.db.Exec(ctx, r.dialect.DropTableSQL(tables[i].Name)); err != nil {
			dropErr = multierr.Append(dropErr, fmt.Errorf("drop %s: %w", tables[i].Name, err))
		}
	}
	if dropErr != nil {
		return nil, dropErr
	}

	report, err := r.Reconcile(ctx)
	if err != nil {
		return report, err
	}

	if err := r.ProvisionAdmin(ctx, adminUsername, adminPasswordHash); err != nil {
		return report, err
	}
	return report, nil
}

// ProvisionAdmin inserts the operator account if it does not exist yet.
func (r *Reconciler) ProvisionAdmin(ctx context.Context, username, passwordHash string) error {
	query := fmt.Sprintf(
		`INSERT INTO users (username, password_hash) VALUES (%s, %s)
			ON CONFLICT (username) DO NOTHING;`,
		r.dialect.BindVar(1), r.dialect.BindVar(2),
	)
	if err := r.db.Exec(ctx, query, username, passwordHash); err != nil {
		return fmt.Errorf("provision admin: %w", err)
	}
	return nil
}
