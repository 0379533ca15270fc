package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dkovacev/liftlog/internal/db"
	"github.com/dkovacev/liftlog/internal/logging"
	"github.com/dkovacev/liftlog/internal/schema"
	"github.com/dkovacev/liftlog/pkg"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// dbtool manages the database schema outside of the service process:
//
//	dbtool -action init         create/patch the schema and provision the admin account
//	dbtool -action reconcile    create/patch the schema
//	dbtool -action reset -yes   drop everything, recreate, provision the admin account
//	dbtool -action create-admin provision the admin account only
func main() {
	action := flag.String("action", "", "one of: init | reconcile | reset | create-admin")
	engine := flag.String("engine", "postgres", "database engine [postgres | sqlite]")
	sqlitePath := flag.String("sqlite-path", "liftlog.db", "sqlite database file (engine=sqlite)")
	host := flag.String("host", "localhost", "postgres host")
	port := flag.String("port", "5432", "postgres port")
	dbName := flag.String("dbname", "liftlog", "postgres database name")
	dbUser := flag.String("user", "postgres", "postgres user")
	yes := flag.Bool("yes", false, "confirm destructive actions")
	logLevel := flag.String("loglevel", "info", "log level")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: true,
		LogLevel:    *logLevel,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var (
		database schema.DB
		dialect  schema.Dialect
	)
	switch *engine {
	case "postgres":
		pool, err := db.NewPool(ctx, db.NewPoolParams{
			DBHost: *host,
			DBPort: *port,
			DBName: *dbName,
			DBUser: *dbUser,
		})
		if err != nil {
			log.Fatalf("new db pool: %s", err)
		}
		defer pool.Close()
		database = schema.NewPostgresDB(pool)
		dialect = schema.PostgresDialect{}
	case "sqlite":
		sqliteDB, err := sql.Open("sqlite", *sqlitePath)
		if err != nil {
			log.Fatalf("open sqlite db: %s", err)
		}
		defer func() {
			if err := sqliteDB.Close(); err != nil {
				log.Errorf("close sqlite db: %s", err)
			}
		}()
		database = schema.NewSQLiteDB(sqliteDB)
		dialect = schema.SQLiteDialect{}
	default:
		log.Fatalf("unknown engine: %s", *engine)
	}

	reconciler := schema.NewReconciler(database, dialect)

	switch *action {
	case "init":
		report, err := reconciler.Reconcile(ctx)
		printReport(report)
		if err != nil {
			log.Fatalf("reconcile: %s", err)
		}
		provisionAdmin(ctx, reconciler)
	case "reconcile":
		report, err := reconciler.Reconcile(ctx)
		printReport(report)
		if err != nil {
			log.Fatalf("reconcile: %s", err)
		}
	case "reset":
		if !*yes {
			log.Fatalln("reset drops all data, re-run with -yes to confirm")
		}
		username, passwordHash := adminCredentials()
		report, err := reconciler.Reset(ctx, username, passwordHash)
		printReport(report)
		if err != nil {
			log.Fatalf("reset: %s", err)
		}
	case "create-admin":
		provisionAdmin(ctx, reconciler)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func printReport(report *schema.Report) {
	if report == nil {
		return
	}
	fmt.Println(report.String())
}

func provisionAdmin(ctx context.Context, reconciler *schema.Reconciler) {
	username, passwordHash := adminCredentials()
	if err := reconciler.ProvisionAdmin(ctx, username, passwordHash); err != nil {
		if pkg.IsUndefinedTableError(err) {
			log.Fatalln("users table does not exist yet, run -action init first")
		}
		log.Fatalf("provision admin: %s", err)
	}
	log.Infof("admin account %s in place", username)
}

func adminCredentials() (username, passwordHash string) {
	username = os.Getenv("LIFTLOG_ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("LIFTLOG_ADMIN_PASSWORD")
	if password == "" {
		log.Warnln("LIFTLOG_ADMIN_PASSWORD not set, using the default password - change it")
		password = "admin123"
	}

	passwordHash, err := pkg.HashPassword(password)
	if err != nil {
		log.Fatalf("hash admin password: %s", err)
	}
	return username, passwordHash
}
