package workout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dkovacev/liftlog/internal/telemetry/metrics"
	"github.com/dkovacev/liftlog/internal/telemetry/tracing"
	"github.com/dkovacev/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	recorder *Recorder
	// the sole operator account, all rows are scoped to it
	userID         int
	metricsManager *metrics.Manager
}

func NewHandler(recorder *Recorder, userID int, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		recorder:       recorder,
		userID:         userID,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	workoutRouter := mainRouter.PathPrefix("/workout").Subrouter()
	workoutRouter.HandleFunc("/session/start", handler.HandleStartSession).Methods("POST", "OPTIONS").Name("workout-session-start")
	workoutRouter.HandleFunc("/session/finish", handler.HandleFinishSession).Methods("POST", "OPTIONS").Name("workout-session-finish")
	workoutRouter.HandleFunc("/session", handler.HandleActiveSession).Methods("GET", "OPTIONS").Name("workout-session")
	workoutRouter.HandleFunc("/sets", handler.HandleAddSet).Methods("POST", "OPTIONS").Name("workout-sets")
	workoutRouter.HandleFunc("/prs", handler.HandlePersonalRecords).Methods("GET", "OPTIONS").Name("workout-prs")
}

func (handler *Handler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.startSession")
	defer span.End()

	session, err := handler.recorder.StartSession(ctx, handler.userID)
	if err != nil {
		if errors.Is(err, ErrSessionInProgress) {
			http.Error(w, "workout session already in progress", http.StatusConflict)
			return
		}
		log.Errorf("start session: %s", err)
		http.Error(w, "start session failed", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterSessionsStarted.Inc()
	log.Debugf("workout session %d started", session.ID)

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("marshal session: %s", err)
		http.Error(w, "start session failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, http.StatusCreated)
}

func (handler *Handler) HandleActiveSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.activeSession")
	defer span.End()

	details, err := handler.recorder.ActiveSession(ctx, handler.userID)
	if err != nil {
		if errors.Is(err, ErrNoActiveSession) {
			http.Error(w, "no active workout session", http.StatusNotFound)
			return
		}
		log.Errorf("get active session: %s", err)
		http.Error(w, "get active session failed", http.StatusInternalServerError)
		return
	}

	detailsJson, err := json.Marshal(details)
	if err != nil {
		log.Errorf("marshal session details: %s", err)
		http.Error(w, "get active session failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, detailsJson, http.StatusOK)
}

func (handler *Handler) HandleAddSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.addSet")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("add set, unmarshal json params: %s", err)
		http.Error(w, "add set failed", http.StatusBadRequest)
		return
	}

	result, err := handler.recorder.AddSet(ctx, handler.userID, req)
	if err != nil {
		var validationErr *ValidationError
		switch {
		case errors.As(err, &validationErr):
			http.Error(w, validationErr.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrNoActiveSession):
			http.Error(w, "no active workout session", http.StatusNotFound)
		default:
			log.Errorf("add set: %s", err)
			http.Error(w, "add set failed", http.StatusInternalServerError)
		}
		return
	}

	handler.metricsManager.CounterSetsLogged.Inc()
	if result.NewPersonalRecord {
		handler.metricsManager.CounterPersonalRecords.Inc()
		log.Debugf(
			"new personal record: %s, %gkg x %d",
			result.Exercise.Name, result.Set.Weight, result.Set.Reps,
		)
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("marshal add set result: %s", err)
		http.Error(w, "add set failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusCreated)
}

func (handler *Handler) HandleFinishSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.finishSession")
	defer span.End()

	result, err := handler.recorder.FinishSession(ctx, handler.userID)
	if err != nil {
		if errors.Is(err, ErrNoActiveSession) {
			http.Error(w, "no active workout session", http.StatusNotFound)
			return
		}
		log.Errorf("finish session: %s", err)
		http.Error(w, "finish session failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout session %d finished, duration: %s", result.Session.ID, result.Duration)

	type finishSessionResponse struct {
		Session         *Session `json:"session"`
		DurationMinutes int      `json:"durationMinutes"`
	}
	respJson, err := json.Marshal(finishSessionResponse{
		Session:         result.Session,
		DurationMinutes: int(result.Duration.Minutes()),
	})
	if err != nil {
		log.Errorf("marshal finish session result: %s", err)
		http.Error(w, "finish session failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandlePersonalRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workout.personalRecords")
	defer span.End()

	records, err := handler.recorder.PersonalRecords(ctx, handler.userID)
	if err != nil {
		log.Errorf("get personal records: %s", err)
		http.Error(w, "get personal records failed", http.StatusInternalServerError)
		return
	}

	recordsJson, err := json.Marshal(records)
	if err != nil {
		log.Errorf("marshal personal records: %s", err)
		http.Error(w, "get personal records failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, recordsJson, http.StatusOK)
}
