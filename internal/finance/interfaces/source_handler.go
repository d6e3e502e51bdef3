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

type SourceServiceInterface interface {
	GetUserSources(ownerID string) ([]domain.Source, error)
	CreateSource(source *domain.Source) error
	UpdateSource(ownerID string, source domain.Source) error
	DeleteSource(ownerID string, sourceID int64) error
}

type SourceHandler struct {
	service      SourceServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewSourceHandler(
	service SourceServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *SourceHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &SourceHandler{service: service, respondJSON: respondJSON, respondError: respondError}
}

func (h *SourceHandler) GetSources(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sources, err := h.service.GetUserSources(userID)
	if err != nil {
		slog.Error("failed to list sources", "user_id", userID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve sources")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"status": "success", "data": sources})
}

func (h *SourceHandler) CreateSource(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var source domain.Source
	if err := json.NewDecoder(r.Body).Decode(&source); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	source.OwnerID = userID

	if err := h.service.CreateSource(&source); err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to create source", "user_id", userID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to create source")
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{"status": "success", "data": source})
}

func (h *SourceHandler) UpdateSource(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sourceID, err := strconv.ParseInt(r.PathValue("sourceID"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid source ID")
		return
	}

	var source domain.Source
	if err := json.NewDecoder(r.Body).Decode(&source); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	source.ID = sourceID

	if err := h.service.UpdateSource(userID, source); err != nil {
		switch {
		case errors.Is(err, financeErrors.ErrSourceNotFound):
			h.respondError(w, http.StatusNotFound, "Source not found")
		case financeErrors.IsValidationError(err):
			h.respondError(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("failed to update source", "user_id", userID, "error", err)
			h.respondError(w, http.StatusInternalServerError, "Failed to update source")
		}
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"status": "success", "message": "Source successfully updated."})
}

func (h *SourceHandler) DeleteSource(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sourceID, err := strconv.ParseInt(r.PathValue("sourceID"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid source ID")
		return
	}

	if err := h.service.DeleteSource(userID, sourceID); err != nil {
		if errors.Is(err, financeErrors.ErrSourceNotFound) {
			h.respondError(w, http.StatusNotFound, "Source not found")
			return
		}
		slog.Error("failed to delete source", "user_id", userID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to delete source")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"status": "success", "message": "Source successfully deleted."})
}
