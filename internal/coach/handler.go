package coach

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

type chatRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type updateSettingsRequest struct {
	UserID              string     `json:"userId"`
	CoachCharacter      *Character `json:"coachCharacter"`
	NotificationEnabled *bool      `json:"notificationEnabled"`
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

func (handler *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.chat")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("coach chat, unmarshal json params: %s", err)
		http.Error(w, "coach chat failed", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		req.UserID = training.DefaultUserID
	}

	result, err := handler.service.Chat(ctx, req.UserID, req.Message)
	if err != nil {
		switch {
		case pkg.IsValidationError(err):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrOracleUnavailable):
			log.Errorf("coach chat, oracle unavailable: %s", err)
			http.Error(w, "error, coach unavailable", http.StatusBadGateway)
		default:
			log.Errorf("coach chat failed: %s", err)
			http.Error(w, "error, coach chat failed", http.StatusInternalServerError)
		}
		return
	}

	handler.metrics.CounterCoachMessages.Inc()

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal coach chat result: %s", err)
		http.Error(w, "error, coach chat failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}

func (handler *Handler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.getSettings")
	defer span.End()

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = training.DefaultUserID
	}

	settings, err := handler.service.GetSettings(ctx, userID)
	if err != nil {
		log.Errorf("failed to get user settings: %s", err)
		http.Error(w, "error, failed to get settings", http.StatusInternalServerError)
		return
	}

	settingsJson, err := json.Marshal(settings)
	if err != nil {
		log.Errorf("failed to marshal user settings: %s", err)
		http.Error(w, "error, failed to get settings", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, settingsJson, http.StatusOK)
}

func (handler *Handler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.updateSettings")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update user settings, unmarshal json params: %s", err)
		http.Error(w, "update settings failed", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		req.UserID = training.DefaultUserID
	}

	settings, err := handler.service.UpdateSettings(ctx, req.UserID, UpdateSettingsParams{
		CoachCharacter:      req.CoachCharacter,
		NotificationEnabled: req.NotificationEnabled,
	})
	if err != nil {
		if pkg.IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("failed to update user settings: %s", err)
		http.Error(w, "error, failed to update settings", http.StatusInternalServerError)
		return
	}

	settingsJson, err := json.Marshal(settings)
	if err != nil {
		log.Errorf("failed to marshal user settings: %s", err)
		http.Error(w, "error, failed to update settings", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, settingsJson, http.StatusOK)
}
