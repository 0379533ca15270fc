package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkovacev/liftlog/internal/telemetry/tracing"
	"github.com/dkovacev/liftlog/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username taken")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, username, passwordHash string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("username", username))

	var user User
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO users (username, password_hash, created_at)
			VALUES ($1, $2, $3)
		RETURNING id, username, password_hash, created_at;`,
		username, passwordHash, time.Now(),
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))

	return &user, nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getByUsername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("username", username))

	var user User
	err = r.db.QueryRow(
		ctx,
		`SELECT id, username, password_hash, created_at FROM users WHERE username = $1;`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *Repo) UpdatePassword(ctx context.Context, username, passwordHash string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updatePassword")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("username", username))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE users SET password_hash = $1 WHERE username = $2;`,
		passwordHash, username,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
