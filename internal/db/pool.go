package db

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NewPoolParams struct {
	DBHost         string
	DBPort         string
	DBName         string
	DBUser         string
	TracingEnabled bool

	MaxConns          int
	MinConns          int
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	StatementTimeout  time.Duration
}

// NewPool creates a pgx connection pool with a bounded size, periodic
// connection recycling and a server-side statement timeout. The health
// check period makes the pool ping idle connections before reuse.
func NewPool(ctx context.Context, params NewPoolParams) (*pgxpool.Pool, error) {
	user := params.DBUser
	if user == "" {
		user = "postgres"
	}
	connString := fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		user, params.DBHost, params.DBPort, params.DBName,
	)
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	if params.MaxConns > 0 {
		poolConfig.MaxConns = int32(params.MaxConns)
	}
	if params.MinConns > 0 {
		poolConfig.MinConns = int32(params.MinConns)
	}
	if params.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = params.MaxConnLifetime
	}
	if params.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = params.MaxConnIdleTime
	}
	if params.HealthCheckPeriod > 0 {
		poolConfig.HealthCheckPeriod = params.HealthCheckPeriod
	}
	if params.StatementTimeout > 0 {
		poolConfig.ConnConfig.RuntimeParams["statement_timeout"] =
			strconv.FormatInt(params.StatementTimeout.Milliseconds(), 10)
	}

	if params.TracingEnabled {
		poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	return pool, nil
}
