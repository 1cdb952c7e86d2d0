package training

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dvranic/runquest/internal/telemetry/metrics"
	"github.com/dvranic/runquest/internal/telemetry/tracing"
	"github.com/dvranic/runquest/pkg"

	"github.com/coocood/freecache"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=training_test

const (
	// DefaultStatsWeeks is used when the weeks query param is missing or
	// not a positive integer. The coercion is silent, mirroring the UI
	// which always asks for a sane window.
	DefaultStatsWeeks = 4

	rollupCacheTTLSeconds = 5 * 60
)

type trainingRepo interface {
	Add(ctx context.Context, record Record) (*Record, error)
	List(ctx context.Context, params ListParams) (_ []Record, total int, err error)
	ListAll(ctx context.Context, params RecordParams) (_ []Record, err error)
	Delete(ctx context.Context, id int) error
}

type statsAnalyzer interface {
	Stats(ctx context.Context, userID string) (TrainingStats, error)
	WeeklyRollup(ctx context.Context, userID string, weekCount int) ([]WeeklyBucket, error)
}

type addRecordRequest struct {
	UserID          string   `json:"userId"`
	Date            string   `json:"date"`
	Kind            Kind     `json:"kind"`
	DistanceKm      *float64 `json:"distanceKm"`
	DurationSeconds *int     `json:"durationSeconds"`
	Pace            *string  `json:"pace"`
	WeightKg        *float64 `json:"weightKg"`
	WorkoutDetail   *string  `json:"workoutDetail"`
}

type StatsResponse struct {
	Stats      TrainingStats  `json:"stats"`
	WeeklyData []WeeklyBucket `json:"weeklyData"`
	Records    []Record       `json:"records,omitempty"`
}

type ListResponse struct {
	Records []Record `json:"records"`
	Total   int      `json:"total"`
}

type DeleteRecordResponse struct {
	DeletedID int `json:"deletedId"`
}

type Handler struct {
	repo     trainingRepo
	analyzer statsAnalyzer
	cache    *freecache.Cache
	metrics  *metrics.Manager
}

func NewHandler(
	repo trainingRepo,
	analyzer statsAnalyzer,
	cache *freecache.Cache,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:     repo,
		analyzer: analyzer,
		cache:    cache,
		metrics:  metricsManager,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req addRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add training record, unmarshal json params: %s", err)
		http.Error(w, "add training record failed", http.StatusBadRequest)
		return
	}

	if !req.Kind.IsValid() {
		http.Error(w, fmt.Sprintf("error, invalid kind: %q", req.Kind), http.StatusBadRequest)
		return
	}
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		http.Error(w, "error, invalid date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		req.UserID = DefaultUserID
	}

	record := Record{
		UserID:          req.UserID,
		Date:            date,
		Kind:            req.Kind,
		DistanceKm:      req.DistanceKm,
		DurationSeconds: req.DurationSeconds,
		Pace:            req.Pace,
		WeightKg:        req.WeightKg,
		WorkoutDetail:   req.WorkoutDetail,
		CreatedAt:       time.Now(),
	}

	addedRecord, err := handler.repo.Add(ctx, record)
	if err != nil {
		log.Errorf("failed to add training record [%s, %s]: %s", record.Kind, req.Date, err)
		http.Error(w, "error, failed to add training record", http.StatusInternalServerError)
		return
	}

	// the weekly chart series is stale now
	handler.cache.Clear()
	handler.metrics.CounterTrainingRecords.Inc()

	recordJson, err := json.Marshal(addedRecord)
	if err != nil {
		log.Errorf("failed to marshal added training record: %s", err)
		http.Error(w, "error, failed to add training record", http.StatusInternalServerError)
		return
	}

	log.Debugf("new training record added: %s", recordJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, recordJson, http.StatusCreated)
}

// HandleStats returns the aggregate stats plus the weekly chart series.
// When both startDate and endDate are given, the matching raw records are
// included too (the UI detail view).
func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.stats")
	defer span.End()

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = DefaultUserID
	}
	weeks := weeksParam(r.URL.Query().Get("weeks"))

	stats, err := handler.analyzer.Stats(ctx, userID)
	if err != nil {
		log.Errorf("failed to get training stats: %s", err)
		http.Error(w, "error, failed to get training stats", http.StatusInternalServerError)
		return
	}

	weeklyData, err := handler.weeklyRollupCached(ctx, userID, weeks)
	if err != nil {
		log.Errorf("failed to get weekly rollup: %s", err)
		http.Error(w, "error, failed to get training stats", http.StatusInternalServerError)
		return
	}

	resp := StatsResponse{
		Stats:      stats,
		WeeklyData: weeklyData,
	}

	startDateParam := r.URL.Query().Get("startDate")
	endDateParam := r.URL.Query().Get("endDate")
	if startDateParam != "" && endDateParam != "" {
		startDate, err := time.Parse(time.DateOnly, startDateParam)
		if err != nil {
			http.Error(w, "error, invalid startDate, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		endDate, err := time.Parse(time.DateOnly, endDateParam)
		if err != nil {
			http.Error(w, "error, invalid endDate, want YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		records, err := handler.repo.ListAll(ctx, RecordParams{
			UserID: userID,
			From:   &startDate,
			To:     &endDate,
		})
		if err != nil {
			log.Errorf("failed to list training records [%s - %s]: %s", startDateParam, endDateParam, err)
			http.Error(w, "error, failed to get training stats", http.StatusInternalServerError)
			return
		}
		resp.Records = records
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal training stats: %s", err)
		http.Error(w, "error, failed to get training stats", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.list")
	defer span.End()

	vars := mux.Vars(r)

	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		http.Error(w, "error, invalid page", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		http.Error(w, "error, invalid size", http.StatusBadRequest)
		return
	}
	if page < 1 {
		http.Error(w, "error, page must be greater than 0", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "error, size must be greater than 0", http.StatusBadRequest)
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = DefaultUserID
	}

	records, total, err := handler.repo.List(ctx, ListParams{
		RecordParams: RecordParams{UserID: userID},
		Page:         page,
		Size:         size,
	})
	if err != nil {
		log.Errorf("failed to list training records: %s", err)
		http.Error(w, "error, failed to list training records", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListResponse{
		Records: records,
		Total:   total,
	})
	if err != nil {
		log.Errorf("failed to marshal training records: %s", err)
		http.Error(w, "error, failed to list training records", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.training.delete")
	defer span.End()

	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			http.Error(w, "training record not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete training record %d: %s", id, err)
		http.Error(w, "error, failed to delete training record", http.StatusInternalServerError)
		return
	}

	handler.cache.Clear()

	respJson, err := json.Marshal(DeleteRecordResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "error, failed to delete training record", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) weeklyRollupCached(ctx context.Context, userID string, weeks int) ([]WeeklyBucket, error) {
	cacheKey := []byte(fmt.Sprintf("rollup::%s::%d", userID, weeks))
	if cached, err := handler.cache.Get(cacheKey); err == nil {
		var buckets []WeeklyBucket
		if err := json.Unmarshal(cached, &buckets); err == nil {
			return buckets, nil
		}
		log.Warnf("failed to unmarshal cached weekly rollup, recomputing")
	}

	buckets, err := handler.analyzer.WeeklyRollup(ctx, userID, weeks)
	if err != nil {
		return nil, err
	}

	if bucketsJson, err := json.Marshal(buckets); err == nil {
		if err := handler.cache.Set(cacheKey, bucketsJson, rollupCacheTTLSeconds); err != nil {
			log.Warnf("failed to cache weekly rollup: %s", err)
		}
	}

	return buckets, nil
}

func weeksParam(raw string) int {
	if raw == "" {
		return DefaultStatsWeeks
	}
	weeks, err := strconv.Atoi(raw)
	if err != nil || weeks < 1 {
		return DefaultStatsWeeks
	}
	return weeks
}
