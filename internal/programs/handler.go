package programs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/dkovacev/liftlog/internal/telemetry/tracing"
	"github.com/dkovacev/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=programs_test

type programsRepo interface {
	Add(ctx context.Context, program Program) (*Program, error)
	List(ctx context.Context, userID int) ([]Program, error)
	Delete(ctx context.Context, userID, programID int) error
}

type Handler struct {
	repo   programsRepo
	userID int
}

func NewHandler(repo programsRepo, userID int) *Handler {
	return &Handler{
		repo:   repo,
		userID: userID,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	programsRouter := mainRouter.PathPrefix("/programs").Subrouter()
	programsRouter.HandleFunc("", handler.HandleAdd).Methods("POST", "OPTIONS").Name("programs-add")
	programsRouter.HandleFunc("", handler.HandleList).Methods("GET", "OPTIONS").Name("programs-list")
	programsRouter.HandleFunc("/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("programs-delete")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var program Program
	if err := json.NewDecoder(r.Body).Decode(&program); err != nil {
		log.Errorf("add program, unmarshal json params: %s", err)
		http.Error(w, "add program failed", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(program.Name) == "" {
		http.Error(w, "error, program name empty", http.StatusBadRequest)
		return
	}
	program.UserID = handler.userID

	added, err := handler.repo.Add(ctx, program)
	if err != nil {
		log.Errorf("add program: %s", err)
		http.Error(w, "add program failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("new program added: %s", added.Name)

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("marshal program: %s", err)
		http.Error(w, "add program failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.list")
	defer span.End()

	programs, err := handler.repo.List(ctx, handler.userID)
	if err != nil {
		log.Errorf("list programs: %s", err)
		http.Error(w, "list programs failed", http.StatusInternalServerError)
		return
	}

	programsJson, err := json.Marshal(programs)
	if err != nil {
		log.Errorf("marshal programs: %s", err)
		http.Error(w, "list programs failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, programsJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.delete")
	defer span.End()

	vars := mux.Vars(r)
	idParam := vars["id"]
	if idParam == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	programID, err := strconv.Atoi(idParam)
	if err != nil {
		http.Error(w, "error, program ID invalid", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, handler.userID, programID); err != nil {
		if errors.Is(err, ErrProgramNotFound) {
			http.Error(w, "delete program failed - not found", http.StatusNotFound)
			return
		}
		log.Errorf("delete program: %s", err)
		http.Error(w, "delete program failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("program %d deleted", programID)
	w.WriteHeader(http.StatusNoContent)
}
