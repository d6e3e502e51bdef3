package interfaces

import (
	"encoding/json"
	"errors"
	"log"
	"log/slog"
	"net/http"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
	financeErrors "github.com/IT-BAER/finx-sub002/internal/finance/errors"
)

type SharingServiceInterface interface {
	GetGrantsByOwner(ownerID string) ([]domain.SharingGrant, error)
	GetGrantsByRecipient(recipientID string) ([]domain.SharingGrant, error)
	SaveGrant(ownerID, recipientID, permissionLevel string, scope json.RawMessage) (*domain.SharingGrant, error)
	DeleteGrant(ownerID, recipientID string) error
}

type SharingHandler struct {
	service      SharingServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewSharingHandler(
	service SharingServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *SharingHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil || respondError == nil {
		log.Fatal("Respond functions must not be nil")
		return nil
	}
	return &SharingHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// GetGrants returns both directions of sharing for the authenticated user:
// grants they issued and grants issued to them.
func (h *SharingHandler) GetGrants(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	outgoing, err := h.service.GetGrantsByOwner(userID)
	if err != nil {
		slog.Error("failed to list outgoing grants", "user_id", userID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve sharing grants")
		return
	}
	incoming, err := h.service.GetGrantsByRecipient(userID)
	if err != nil {
		slog.Error("failed to list incoming grants", "user_id", userID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve sharing grants")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"outgoing": outgoing,
			"incoming": incoming,
		},
	})
}

func (h *SharingHandler) SaveGrant(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		RecipientID     string          `json:"recipient_id"`
		PermissionLevel string          `json:"permission_level"`
		Scope           json.RawMessage `json:"scope"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	grant, err := h.service.SaveGrant(userID, req.RecipientID, req.PermissionLevel, req.Scope)
	if err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to save grant", "owner_id", userID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to save sharing grant")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Sharing grant saved.",
		"data":    grant,
	})
}

func (h *SharingHandler) DeleteGrant(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	recipientID := r.PathValue("recipientID")
	if recipientID == "" {
		h.respondError(w, http.StatusBadRequest, "Recipient ID is required")
		return
	}

	if err := h.service.DeleteGrant(userID, recipientID); err != nil {
		if errors.Is(err, financeErrors.ErrGrantNotFound) {
			h.respondError(w, http.StatusNotFound, "Sharing grant not found")
			return
		}
		slog.Error("failed to delete grant", "owner_id", userID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to delete sharing grant")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Sharing grant deleted.",
	})
}
