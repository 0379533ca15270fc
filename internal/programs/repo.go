package programs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkovacev/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrProgramNotFound = errors.New("program not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, program Program) (_ *Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", program.UserID))

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO workout_programs (user_id, name, description, program_type, created_at)
			VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at;`,
		program.UserID, program.Name, program.Description, program.ProgramType, time.Now(),
	).Scan(&program.ID, &program.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert program: %w", err)
	}

	span.SetAttributes(attribute.Int("program.id", program.ID))
	return &program, nil
}

func (r *Repo) List(ctx context.Context, userID int) (_ []Program, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, name, description, program_type, created_at
			FROM workout_programs
			WHERE user_id = $1
		ORDER BY created_at DESC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	programs := make([]Program, 0)
	for rows.Next() {
		var p Program
		var description, programType *string
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &description, &programType, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if description != nil {
			p.Description = *description
		}
		if programType != nil {
			p.ProgramType = *programType
		}
		programs = append(programs, p)
	}

	return programs, nil
}

// Delete removes the program only when it belongs to the given user.
func (r *Repo) Delete(ctx context.Context, userID, programID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.programs.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Int("program.id", programID))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout_programs WHERE id = $1 AND user_id = $2;`,
		programID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProgramNotFound
	}
	return nil
}
