package workout

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dkovacev/liftlog/internal/exercises"
	"github.com/dkovacev/liftlog/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=recorder_mocks_test.go -package=workout_test

type workoutRepo interface {
	StartSession(ctx context.Context, userID int) (*Session, error)
	ActiveSession(ctx context.Context, userID int) (*Session, error)
	FinishSession(ctx context.Context, userID int) (*Session, error)
	AddSet(ctx context.Context, params AddSetParams) (*SetLog, bool, error)
	SessionSets(ctx context.Context, sessionID int) ([]SetLog, error)
	PersonalRecords(ctx context.Context, userID int) ([]PersonalRecord, error)
}

type exerciseRegistry interface {
	GetOrCreate(ctx context.Context, name string) (*exercises.Exercise, error)
}

type AddSetRequest struct {
	ExerciseName string  `json:"exerciseName"`
	SetType      string  `json:"setType"`
	Reps         int     `json:"reps"`
	Weight       float64 `json:"weight"`
}

type AddSetResult struct {
	Set               *SetLog             `json:"set"`
	Exercise          *exercises.Exercise `json:"exercise"`
	NewPersonalRecord bool                `json:"newPersonalRecord"`
}

type FinishSessionResult struct {
	Session  *Session      `json:"session"`
	Duration time.Duration `json:"-"`
}

type SessionDetails struct {
	Session *Session `json:"session"`
	Sets    []SetLog `json:"sets"`
}

// Recorder drives the session lifecycle: one active session per user,
// incremental set entries with per-exercise numbering, and personal record
// upkeep on every logged set.
type Recorder struct {
	repo     workoutRepo
	registry exerciseRegistry
}

func NewRecorder(repo workoutRepo, registry exerciseRegistry) *Recorder {
	return &Recorder{
		repo:     repo,
		registry: registry,
	}
}

func (rec *Recorder) StartSession(ctx context.Context, userID int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recorder.startSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	return rec.repo.StartSession(ctx, userID)
}

func (rec *Recorder) ActiveSession(ctx context.Context, userID int) (_ *SessionDetails, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recorder.activeSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	session, err := rec.repo.ActiveSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	sets, err := rec.repo.SessionSets(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	return &SessionDetails{
		Session: session,
		Sets:    sets,
	}, nil
}

func (rec *Recorder) AddSet(ctx context.Context, userID int, req AddSetRequest) (_ *AddSetResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recorder.addSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	if strings.TrimSpace(req.ExerciseName) == "" {
		return nil, newValidationError("exerciseName", "must not be empty")
	}
	if req.Reps <= 0 {
		return nil, newValidationError("reps", "must be greater than 0")
	}
	if req.Weight < 0 {
		return nil, newValidationError("weight", "must not be negative")
	}

	setType := strings.ToLower(req.SetType)
	if setType == "" {
		setType = SetType.Working
	}
	if !slices.Contains(SetTypes, setType) {
		return nil, newValidationError("setType", "must be warmup or working")
	}

	exercise, err := rec.registry.GetOrCreate(ctx, req.ExerciseName)
	if err != nil {
		return nil, err
	}

	set, newPersonalRecord, err := rec.repo.AddSet(ctx, AddSetParams{
		UserID:     userID,
		ExerciseID: exercise.ID,
		SetType:    setType,
		Reps:       req.Reps,
		Weight:     req.Weight,
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("set.number", set.SetNumber))
	span.SetAttributes(attribute.Bool("personal.record", newPersonalRecord))

	return &AddSetResult{
		Set:               set,
		Exercise:          exercise,
		NewPersonalRecord: newPersonalRecord,
	}, nil
}

func (rec *Recorder) FinishSession(ctx context.Context, userID int) (_ *FinishSessionResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recorder.finishSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	session, err := rec.repo.FinishSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	duration := session.EndTime.Sub(session.StartTime)
	span.SetAttributes(attribute.String("session.duration", duration.String()))

	return &FinishSessionResult{
		Session:  session,
		Duration: duration,
	}, nil
}

func (rec *Recorder) PersonalRecords(ctx context.Context, userID int) (_ []PersonalRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "recorder.personalRecords")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	return rec.repo.PersonalRecords(ctx, userID)
}
