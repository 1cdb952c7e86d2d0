package boss

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dvranic/runquest/internal/telemetry/metrics"
	"github.com/dvranic/runquest/internal/telemetry/tracing"
	"github.com/dvranic/runquest/internal/training"
	"github.com/dvranic/runquest/pkg"

	log "github.com/sirupsen/logrus"
)

type createGoalRequest struct {
	UserID      string   `json:"userId"`
	GoalName    string   `json:"goalName"`
	GoalType    GoalType `json:"goalType"`
	TargetValue float64  `json:"targetValue"`
	TargetDate  string   `json:"targetDate"`
}

type completeGoalRequest struct {
	GoalID int `json:"goalId"`
}

type CompleteGoalResponse struct {
	CompletedID int `json:"completedId"`
}

type StatusResponse struct {
	Goals []GoalStatus `json:"goals"`
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
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.boss.status")
	defer span.End()

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = training.DefaultUserID
	}

	statuses, err := handler.service.Status(ctx, userID)
	if err != nil {
		log.Errorf("failed to get boss status: %s", err)
		http.Error(w, "error, failed to get boss status", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(StatusResponse{Goals: statuses})
	if err != nil {
		log.Errorf("failed to marshal boss status: %s", err)
		http.Error(w, "error, failed to get boss status", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.boss.create")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req createGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("create boss goal, unmarshal json params: %s", err)
		http.Error(w, "create boss goal failed", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		req.UserID = training.DefaultUserID
	}

	goal, err := handler.service.CreateGoal(ctx, CreateGoalParams{
		UserID:      req.UserID,
		Name:        req.GoalName,
		Type:        req.GoalType,
		TargetValue: req.TargetValue,
		TargetDate:  req.TargetDate,
	})
	if err != nil {
		if pkg.IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("failed to create boss goal [%s]: %s", req.GoalName, err)
		http.Error(w, "error, failed to create boss goal", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterGoalsCreated.Inc()

	goalJson, err := json.Marshal(goal)
	if err != nil {
		log.Errorf("failed to marshal boss goal: %s", err)
		http.Error(w, "error, failed to create boss goal", http.StatusInternalServerError)
		return
	}

	log.Debugf("new boss goal created: %s", goalJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, goalJson, http.StatusCreated)
}

func (handler *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.boss.complete")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req completeGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("complete boss goal, unmarshal json params: %s", err)
		http.Error(w, "complete boss goal failed", http.StatusBadRequest)
		return
	}

	if err := handler.service.CompleteGoal(ctx, req.GoalID); err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			http.Error(w, "boss goal not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to complete boss goal %d: %s", req.GoalID, err)
		http.Error(w, "error, failed to complete boss goal", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterGoalsCompleted.Inc()

	respJson, err := json.Marshal(CompleteGoalResponse{CompletedID: req.GoalID})
	if err != nil {
		log.Errorf("failed to marshal complete response: %s", err)
		http.Error(w, "error, failed to complete boss goal", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
