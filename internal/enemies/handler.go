package enemies

import (
	"encoding/json"
	"net/http"

	"github.com/dvranic/runquest/internal/telemetry/metrics"
	"github.com/dvranic/runquest/internal/telemetry/tracing"
	"github.com/dvranic/runquest/internal/training"
	"github.com/dvranic/runquest/pkg"

	log "github.com/sirupsen/logrus"
)

type defeatRequest struct {
	UserID             string `json:"userId"`
	EnemyLevel         int    `json:"enemyLevel"`
	ExperienceRequired int    `json:"experienceRequired"`
}

type Handler struct {
	service *Service
	metrics *metrics.Manager
}

func NewHandler(service *Service, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metricsManager,
	}
}

func (handler *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.enemies.status")
	defer span.End()

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = training.DefaultUserID
	}

	status, err := handler.service.Status(ctx, userID)
	if err != nil {
		log.Errorf("failed to get enemy status: %s", err)
		http.Error(w, "error, failed to get enemy status", http.StatusInternalServerError)
		return
	}

	statusJson, err := json.Marshal(status)
	if err != nil {
		log.Errorf("failed to marshal enemy status: %s", err)
		http.Error(w, "error, failed to get enemy status", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statusJson, http.StatusOK)
}

func (handler *Handler) HandleDefeat(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.enemies.defeat")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req defeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("record enemy defeat, unmarshal json params: %s", err)
		http.Error(w, "record enemy defeat failed", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		req.UserID = training.DefaultUserID
	}

	defeat, err := handler.service.RecordDefeat(ctx, req.UserID, req.EnemyLevel, req.ExperienceRequired)
	if err != nil {
		if pkg.IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("failed to record enemy defeat: %s", err)
		http.Error(w, "error, failed to record enemy defeat", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterEnemyDefeats.Inc()

	defeatJson, err := json.Marshal(defeat)
	if err != nil {
		log.Errorf("failed to marshal enemy defeat: %s", err)
		http.Error(w, "error, failed to record enemy defeat", http.StatusInternalServerError)
		return
	}

	log.Debugf("new enemy defeat recorded: %s", defeatJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, defeatJson, http.StatusCreated)
}
