package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dkovacev/liftlog/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var ErrExerciseNotFound = errors.New("exercise not found")

const (
	oneHour             = 60 * 60
	exerciseCacheExpire = oneHour * 1
)

type Repo struct {
	db *pgxpool.Pool
	// normalized name -> exercise JSON, saves a round trip on the hot
	// AddSet path where the same few exercises come up over and over
	cache *freecache.Cache
}

func NewRepo(db *pgxpool.Pool) *Repo {
	megabyte := 1024 * 1024
	cacheSize := 10 * megabyte

	return &Repo{
		db:    db,
		cache: freecache.NewCache(cacheSize),
	}
}

// GetOrCreate returns the exercise with the given name, creating it first
// if it does not exist yet. The name is normalized before lookup, so the
// match is case and whitespace insensitive.
func (r *Repo) GetOrCreate(ctx context.Context, name string) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.getOrCreate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	normalized := NormalizeName(name)
	if normalized == "" {
		return nil, errors.New("exercise name empty")
	}
	span.SetAttributes(attribute.String("exercise.name", normalized))

	cacheKey := []byte(normalized)
	if cached, err := r.cache.Get(cacheKey); err == nil {
		var exercise Exercise
		if err := json.Unmarshal(cached, &exercise); err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return &exercise, nil
		}
		log.Tracef("exercises cache, corrupt entry for %q, will refetch", normalized)
	}

	var exercise Exercise
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercises (name, description, exercise_type, is_bodyweight, created_at)
			VALUES ($1, '', $2, FALSE, $3)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name, description, exercise_type, is_bodyweight, created_at;`,
		normalized, ExerciseType.Other, time.Now(),
	).Scan(
		&exercise.ID, &exercise.Name, &exercise.Description,
		&exercise.ExerciseType, &exercise.IsBodyweight, &exercise.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		// already exists, the conflict swallowed the insert
		err = r.db.QueryRow(
			ctx,
			`SELECT id, name, description, exercise_type, is_bodyweight, created_at
				FROM exercises WHERE name = $1;`,
			normalized,
		).Scan(
			&exercise.ID, &exercise.Name, &exercise.Description,
			&exercise.ExerciseType, &exercise.IsBodyweight, &exercise.CreatedAt,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("get or create exercise %q: %w", normalized, err)
	}

	if exerciseJson, err := json.Marshal(exercise); err == nil {
		if err := r.cache.Set(cacheKey, exerciseJson, exerciseCacheExpire); err != nil {
			log.Tracef("exercises cache, set %q: %s", normalized, err)
		}
	}

	span.SetAttributes(attribute.Int("exercise.id", exercise.ID))
	return &exercise, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var exercise Exercise
	err = r.db.QueryRow(
		ctx,
		`SELECT id, name, description, exercise_type, is_bodyweight, created_at
			FROM exercises WHERE id = $1;`,
		id,
	).Scan(
		&exercise.ID, &exercise.Name, &exercise.Description,
		&exercise.ExerciseType, &exercise.IsBodyweight, &exercise.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	return &exercise, nil
}

func (r *Repo) List(ctx context.Context) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, description, exercise_type, is_bodyweight, created_at
			FROM exercises ORDER BY name;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	exercises := make([]Exercise, 0)
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Description,
			&e.ExerciseType, &e.IsBodyweight, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		exercises = append(exercises, e)
	}

	return exercises, nil
}

func (r *Repo) Update(ctx context.Context, exercise *Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", exercise.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE exercises SET description = $1, exercise_type = $2, is_bodyweight = $3 WHERE id = $4;`,
		exercise.Description, exercise.ExerciseType, exercise.IsBodyweight, exercise.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}

	// stale entry, next GetOrCreate refetches
	r.cache.Del([]byte(NormalizeName(exercise.Name)))

	return nil
}
