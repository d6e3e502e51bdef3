package interfaces

import (
	"encoding/json"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
	financeErrors "github.com/IT-BAER/finx-sub002/internal/finance/errors"
)

type TargetServiceInterface interface {
	GetUserTargets(ownerID string) ([]domain.Target, error)
	CreateTarget(target *domain.Target) error
	UpdateTarget(ownerID string, target domain.Target) error
	DeleteTarget(ownerID string, targetID int64) error
}

type TargetHandler struct {
	service      TargetServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewTargetHandler(
	service TargetServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *TargetHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &TargetHandler{service: service, respondJSON: respondJSON, respondError: respondError}
}

func (h *TargetHandler) GetTargets(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	targets, err := h.service.GetUserTargets(userID)
	if err != nil {
		slog.Error("failed to list targets", "user_id", userID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve targets")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"status": "success", "data": targets})
}

func (h *TargetHandler) CreateTarget(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var target domain.Target
	if err := json.NewDecoder(r.Body).Decode(&target); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	target.OwnerID = userID

	if err := h.service.CreateTarget(&target); err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to create target", "user_id", userID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create target")
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{"status": "success", "data": target})
}

func (h *TargetHandler) UpdateTarget(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	targetID, err := strconv.ParseInt(r.PathValue("targetID"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid target ID")
		return
	}

	var target domain.Target
	if err := json.NewDecoder(r.Body).Decode(&target); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	target.ID = targetID

	if err := h.service.UpdateTarget(userID, target); err != nil {
		switch {
		case errors.Is(err, financeErrors.ErrTargetNotFound):
			h.respondError(w, http.StatusNotFound, "Target not found")
		case financeErrors.IsValidationError(err):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("failed to update target", "user_id", userID, "error", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to update target")
		}
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"status": "success", "message": "Target successfully updated."})
}

func (h *TargetHandler) DeleteTarget(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	targetID, err := strconv.ParseInt(r.PathValue("targetID"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid target ID")
		return
	}

	if err := h.service.DeleteTarget(userID, targetID); err != nil {
		if errors.Is(err, financeErrors.ErrTargetNotFound) {
			h.respondError(w, http.StatusNotFound, "Target not found")
			return
		}
		slog.Error("failed to delete target", "user_id", userID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to delete target")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"status": "success", "message": "Target successfully deleted."})
}
