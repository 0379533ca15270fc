package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/dkovacev/liftlog/internal/telemetry/tracing"
	"github.com/dkovacev/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	Get(ctx context.Context, id int) (*Exercise, error)
	List(ctx context.Context) ([]Exercise, error)
	Update(ctx context.Context, exercise *Exercise) error
}

type Handler struct {
	repo exercisesRepo
}

func NewHandler(repo exercisesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	exercisesRouter := mainRouter.PathPrefix("/exercises").Subrouter()
	exercisesRouter.HandleFunc("", handler.HandleList).Methods("GET", "OPTIONS").Name("exercises-list")
	exercisesRouter.HandleFunc("/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("exercises-get")
	exercisesRouter.HandleFunc("/{id}", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("exercises-update")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	exercises, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list exercises: %s", err)
		http.Error(w, "list exercises failed", http.StatusInternalServerError)
		return
	}

	exercisesJson, err := json.Marshal(exercises)
	if err != nil {
		log.Errorf("marshal exercises: %s", err)
		http.Error(w, "list exercises failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exercisesJson, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.get")
	defer span.End()

	vars := mux.Vars(r)
	idParam := vars["id"]
	if idParam == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idParam)
	if err != nil {
		http.Error(w, "error, exercise ID invalid", http.StatusBadRequest)
		return
	}

	exercise, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("get exercise: %s", err)
		http.Error(w, "get exercise failed", http.StatusInternalServerError)
		return
	}

	exerciseJson, err := json.Marshal(exercise)
	if err != nil {
		log.Errorf("marshal exercise: %s", err)
		http.Error(w, "get exercise failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exerciseJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	idParam := vars["id"]
	if idParam == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idParam)
	if err != nil {
		http.Error(w, "error, exercise ID invalid", http.StatusBadRequest)
		return
	}

	var exercise Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Errorf("update exercise, unmarshal json params: %s", err)
		http.Error(w, "update exercise failed", http.StatusBadRequest)
		return
	}
	exercise.ID = id

	exercise.ExerciseType = strings.ToLower(exercise.ExerciseType)
	if !slices.Contains(ExerciseTypes, exercise.ExerciseType) {
		http.Error(w, "error, invalid exercise type", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &exercise); err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("update exercise: %s", err)
		http.Error(w, "update exercise failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("exercise updated: %+v", exercise)
	w.WriteHeader(http.StatusNoContent)
}
