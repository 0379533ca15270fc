package bodycomp

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dkovacev/liftlog/internal/telemetry/tracing"
	"github.com/dkovacev/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=bodycomp_test

type bodycompRepo interface {
	AddWeightLog(ctx context.Context, weightLog WeightLog) (*WeightLog, error)
	ListWeightLogs(ctx context.Context, params RangeParams) ([]WeightLog, error)
	AddBloodworkLog(ctx context.Context, bloodworkLog BloodworkLog) (*BloodworkLog, error)
	ListBloodworkLogs(ctx context.Context, params RangeParams) ([]BloodworkLog, error)
}

type Handler struct {
	repo   bodycompRepo
	userID int
}

func NewHandler(repo bodycompRepo, userID int) *Handler {
	return &Handler{
		repo:   repo,
		userID: userID,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	weightRouter := mainRouter.PathPrefix("/weight").Subrouter()
	weightRouter.HandleFunc("", handler.HandleAddWeight).Methods("POST", "OPTIONS").Name("weight-add")
	weightRouter.HandleFunc("", handler.HandleListWeight).Methods("GET", "OPTIONS").Name("weight-list")
	weightRouter.HandleFunc("/chart", handler.HandleWeightChart).Methods("GET", "OPTIONS").Name("weight-chart")

	bloodworkRouter := mainRouter.PathPrefix("/bloodwork").Subrouter()
	bloodworkRouter.HandleFunc("", handler.HandleAddBloodwork).Methods("POST", "OPTIONS").Name("bloodwork-add")
	bloodworkRouter.HandleFunc("", handler.HandleListBloodwork).Methods("GET", "OPTIONS").Name("bloodwork-list")
	bloodworkRouter.HandleFunc("/chart", handler.HandleBloodworkChart).Methods("GET", "OPTIONS").Name("bloodwork-chart")
}

// rangeParamsFromQuery reads optional from/to date filters (YYYY-MM-DD).
func (handler *Handler) rangeParamsFromQuery(r *http.Request) (RangeParams, error) {
	params := RangeParams{UserID: handler.userID}
	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		from, err := time.Parse("2006-01-02", fromParam)
		if err != nil {
			return params, err
		}
		params.From = &from
	}
	if toParam := r.URL.Query().Get("to"); toParam != "" {
		to, err := time.Parse("2006-01-02", toParam)
		if err != nil {
			return params, err
		}
		params.To = &to
	}
	return params, nil
}

func (handler *Handler) HandleAddWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodycomp.addWeight")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var weightLog WeightLog
	if err := json.NewDecoder(r.Body).Decode(&weightLog); err != nil {
		log.Errorf("add weight log, unmarshal json params: %s", err)
		http.Error(w, "add weight log failed", http.StatusBadRequest)
		return
	}

	if weightLog.Weight <= 0 {
		http.Error(w, "error, weight must be greater than 0", http.StatusBadRequest)
		return
	}
	weightLog.UserID = handler.userID

	added, err := handler.repo.AddWeightLog(ctx, weightLog)
	if err != nil {
		log.Errorf("add weight log: %s", err)
		http.Error(w, "add weight log failed", http.StatusInternalServerError)
		return
	}

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("marshal weight log: %s", err)
		http.Error(w, "add weight log failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleListWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodycomp.listWeight")
	defer span.End()

	params, err := handler.rangeParamsFromQuery(r)
	if err != nil {
		http.Error(w, "error, invalid date range", http.StatusBadRequest)
		return
	}

	weightLogs, err := handler.repo.ListWeightLogs(ctx, params)
	if err != nil {
		log.Errorf("list weight logs: %s", err)
		http.Error(w, "list weight logs failed", http.StatusInternalServerError)
		return
	}

	weightLogsJson, err := json.Marshal(weightLogs)
	if err != nil {
		log.Errorf("marshal weight logs: %s", err)
		http.Error(w, "list weight logs failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, weightLogsJson, http.StatusOK)
}

func (handler *Handler) HandleWeightChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodycomp.weightChart")
	defer span.End()

	params, err := handler.rangeParamsFromQuery(r)
	if err != nil {
		http.Error(w, "error, invalid date range", http.StatusBadRequest)
		return
	}

	weightLogs, err := handler.repo.ListWeightLogs(ctx, params)
	if err != nil {
		log.Errorf("weight chart data: %s", err)
		http.Error(w, "weight chart data failed", http.StatusInternalServerError)
		return
	}

	chartData := WeightChartData{
		Dates:       make([]string, 0, len(weightLogs)),
		Weights:     make([]float64, 0, len(weightLogs)),
		BodyFat:     make([]*float64, 0, len(weightLogs)),
		VisceralFat: make([]*float64, 0, len(weightLogs)),
	}
	for _, wl := range weightLogs {
		chartData.Dates = append(chartData.Dates, wl.LoggedAt.Format("2006-01-02"))
		chartData.Weights = append(chartData.Weights, wl.Weight)
		chartData.BodyFat = append(chartData.BodyFat, wl.BodyFatPercentage)
		chartData.VisceralFat = append(chartData.VisceralFat, wl.VisceralFat)
	}

	chartDataJson, err := json.Marshal(chartData)
	if err != nil {
		log.Errorf("marshal weight chart data: %s", err)
		http.Error(w, "weight chart data failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, chartDataJson, http.StatusOK)
}

func (handler *Handler) HandleAddBloodwork(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodycomp.addBloodwork")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var bloodworkLog BloodworkLog
	if err := json.NewDecoder(r.Body).Decode(&bloodworkLog); err != nil {
		log.Errorf("add bloodwork log, unmarshal json params: %s", err)
		http.Error(w, "add bloodwork log failed", http.StatusBadRequest)
		return
	}
	bloodworkLog.UserID = handler.userID

	added, err := handler.repo.AddBloodworkLog(ctx, bloodworkLog)
	if err != nil {
		log.Errorf("add bloodwork log: %s", err)
		http.Error(w, "add bloodwork log failed", http.StatusInternalServerError)
		return
	}

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("marshal bloodwork log: %s", err)
		http.Error(w, "add bloodwork log failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleListBloodwork(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodycomp.listBloodwork")
	defer span.End()

	params, err := handler.rangeParamsFromQuery(r)
	if err != nil {
		http.Error(w, "error, invalid date range", http.StatusBadRequest)
		return
	}

	bloodworkLogs, err := handler.repo.ListBloodworkLogs(ctx, params)
	if err != nil {
		log.Errorf("list bloodwork logs: %s", err)
		http.Error(w, "list bloodwork logs failed", http.StatusInternalServerError)
		return
	}

	bloodworkLogsJson, err := json.Marshal(bloodworkLogs)
	if err != nil {
		log.Errorf("marshal bloodwork logs: %s", err)
		http.Error(w, "list bloodwork logs failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, bloodworkLogsJson, http.StatusOK)
}

type BloodworkSeries struct {
	Name           string     `json:"name"`
	Unit           string     `json:"unit"`
	PercentOfRange []*float64 `json:"percent_of_range"`
	Statuses       []string   `json:"statuses"`
}

type BloodworkChartData struct {
	Dates   []string                   `json:"dates"`
	Markers map[string]BloodworkSeries `json:"markers"`
}

func (handler *Handler) HandleBloodworkChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodycomp.bloodworkChart")
	defer span.End()

	params, err := handler.rangeParamsFromQuery(r)
	if err != nil {
		http.Error(w, "error, invalid date range", http.StatusBadRequest)
		return
	}

	bloodworkLogs, err := handler.repo.ListBloodworkLogs(ctx, params)
	if err != nil {
		log.Errorf("bloodwork chart data: %s", err)
		http.Error(w, "bloodwork chart data failed", http.StatusInternalServerError)
		return
	}

	chartData := BloodworkChartData{
		Dates:   make([]string, 0, len(bloodworkLogs)),
		Markers: make(map[string]BloodworkSeries),
	}
	for _, bl := range bloodworkLogs {
		chartData.Dates = append(chartData.Dates, bl.TestDate.Format("2006-01-02"))
	}
	for field, refRange := range ReferenceRanges {
		series := BloodworkSeries{
			Name:           refRange.Name,
			Unit:           refRange.Unit,
			PercentOfRange: make([]*float64, 0, len(bloodworkLogs)),
			Statuses:       make([]string, 0, len(bloodworkLogs)),
		}
		for i := range bloodworkLogs {
			series.PercentOfRange = append(series.PercentOfRange, bloodworkLogs[i].PercentOfRange(field))
			series.Statuses = append(series.Statuses, bloodworkLogs[i].Status(field))
		}
		chartData.Markers[field] = series
	}

	chartDataJson, err := json.Marshal(chartData)
	if err != nil {
		log.Errorf("marshal bloodwork chart data: %s", err)
		http.Error(w, "bloodwork chart data failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, chartDataJson, http.StatusOK)
}
