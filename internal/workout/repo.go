package workout

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

type AddSetParams struct {
	UserID     int
	ExerciseID int
	SetType    string
	Reps       int
	Weight     float64
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// StartSession creates a new active session for the user. The partial unique
// index on (user_id) WHERE end_time IS NULL guarantees at most one active
// session, a conflict maps to ErrSessionInProgress.
func (r *Repo) StartSession(ctx context.Context, userID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.startSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	var session Session
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO workout_sessions (user_id, start_time)
			VALUES ($1, $2)
		RETURNING id, user_id, start_time;`,
		userID, time.Now(),
	).Scan(&session.ID, &session.UserID, &session.StartTime)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrSessionInProgress
		}
		return nil, fmt.Errorf("insert session: %w", err)
	}

	span.SetAttributes(attribute.Int("session.id", session.ID))
	return &session, nil
}

func (r *Repo) ActiveSession(ctx context.Context, userID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.activeSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	var session Session
	err = r.db.QueryRow(
		ctx,
		`SELECT id, user_id, start_time, end_time
			FROM workout_sessions
			WHERE user_id = $1 AND end_time IS NULL;`,
		userID,
	).Scan(&session.ID, &session.UserID, &session.StartTime, &session.EndTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoActiveSession
		}
		return nil, err
	}

	return &session, nil
}

func (r *Repo) FinishSession(ctx context.Context, userID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.finishSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	var session Session
	err = r.db.QueryRow(
		ctx,
		`UPDATE workout_sessions SET end_time = $1
			WHERE user_id = $2 AND end_time IS NULL
		RETURNING id, user_id, start_time, end_time;`,
		time.Now(), userID,
	).Scan(&session.ID, &session.UserID, &session.StartTime, &session.EndTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoActiveSession
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("session.id", session.ID))
	return &session, nil
}

// AddSet writes the set log row and keeps the personal record for
// (user, exercise) consistent with it, all in one transaction. The active
// session row is locked for the duration, which also serializes set_number
// assignment for concurrent calls.
func (r *Repo) AddSet(ctx context.Context, params AddSetParams) (_ *SetLog, newPersonalRecord bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.addSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", params.UserID))
	span.SetAttributes(attribute.Int("exercise.id", params.ExerciseID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var sessionID int
	err = tx.QueryRow(
		ctx,
		`SELECT id FROM workout_sessions
			WHERE user_id = $1 AND end_time IS NULL
		FOR UPDATE;`,
		params.UserID,
	).Scan(&sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, ErrNoActiveSession
		}
		return nil, false, fmt.Errorf("lock active session: %w", err)
	}

	span.SetAttributes(attribute.Int("session.id", sessionID))

	var setCount int
	err = tx.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM workout_logs
			WHERE session_id = $1 AND exercise_id = $2;`,
		sessionID, params.ExerciseID,
	).Scan(&setCount)
	if err != nil {
		return nil, false, fmt.Errorf("count sets: %w", err)
	}

	setLog := SetLog{
		SessionID:  sessionID,
		ExerciseID: params.ExerciseID,
		SetNumber:  setCount + 1,
		SetType:    params.SetType,
		Reps:       params.Reps,
		Weight:     params.Weight,
	}
	err = tx.QueryRow(
		ctx,
		`INSERT INTO workout_logs (session_id, exercise_id, set_number, set_type, reps, weight, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at;`,
		setLog.SessionID, setLog.ExerciseID, setLog.SetNumber,
		setLog.SetType, setLog.Reps, setLog.Weight, time.Now(),
	).Scan(&setLog.ID, &setLog.CreatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("insert set log: %w", err)
	}

	span.SetAttributes(attribute.Int("set.number", setLog.SetNumber))

	// warmup sets and bodyweight-only sets never count towards records
	if params.SetType != SetType.Working || params.Weight <= 0 {
		return &setLog, false, nil
	}

	newPersonalRecord, err = r.upsertPersonalRecord(ctx, tx, params, setLog.CreatedAt)
	if err != nil {
		return nil, false, err
	}

	span.SetAttributes(attribute.Bool("personal.record", newPersonalRecord))
	return &setLog, newPersonalRecord, nil
}

func (r *Repo) upsertPersonalRecord(
	ctx context.Context,
	tx pgx.Tx,
	params AddSetParams,
	achievedAt time.Time,
) (bool, error) {
	var current PersonalRecord
	err := tx.QueryRow(
		ctx,
		`SELECT id, weight, reps FROM personal_records
			WHERE user_id = $1 AND exercise_id = $2
		FOR UPDATE;`,
		params.UserID, params.ExerciseID,
	).Scan(&current.ID, &current.Weight, &current.Reps)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// first qualifying set for this exercise
		_, err = tx.Exec(
			ctx,
			`INSERT INTO personal_records (user_id, exercise_id, weight, reps, achieved_at)
				VALUES ($1, $2, $3, $4, $5);`,
			params.UserID, params.ExerciseID, params.Weight, params.Reps, achievedAt,
		)
		if err != nil {
			return false, fmt.Errorf("insert personal record: %w", err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("lock personal record: %w", err)
	}

	if !current.BeatenBy(params.Weight, params.Reps) {
		return false, nil
	}

	_, err = tx.Exec(
		ctx,
		`UPDATE personal_records SET weight = $1, reps = $2, achieved_at = $3 WHERE id = $4;`,
		params.Weight, params.Reps, achievedAt, current.ID,
	)
	if err != nil {
		return false, fmt.Errorf("update personal record: %w", err)
	}
	return true, nil
}

func (r *Repo) SessionSets(ctx context.Context, sessionID int) (_ []SetLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.sessionSets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("session.id", sessionID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, session_id, exercise_id, set_number, set_type, reps, weight, created_at
			FROM workout_logs
			WHERE session_id = $1
		ORDER BY created_at;`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	sets := make([]SetLog, 0)
	for rows.Next() {
		var s SetLog
		if err := rows.Scan(
			&s.ID, &s.SessionID, &s.ExerciseID, &s.SetNumber,
			&s.SetType, &s.Reps, &s.Weight, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sets = append(sets, s)
	}

	return sets, nil
}

func (r *Repo) PersonalRecords(ctx context.Context, userID int) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workout.personalRecords")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT pr.id, pr.user_id, pr.exercise_id, e.name, pr.weight, pr.reps, pr.achieved_at
			FROM personal_records pr
			JOIN exercises e ON pr.exercise_id = e.id
			WHERE pr.user_id = $1
		ORDER BY e.name;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	records := make([]PersonalRecord, 0)
	for rows.Next() {
		var pr PersonalRecord
		if err := rows.Scan(
			&pr.ID, &pr.UserID, &pr.ExerciseID, &pr.ExerciseName,
			&pr.Weight, &pr.Reps, &pr.AchievedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		records = append(records, pr)
	}

	return records, nil
}
