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

type RecurringServiceInterface interface {
	GetRules(requesterID string) ([]domain.RecurringRule, error)
	CreateRule(rule *domain.RecurringRule) error
	UpdateRule(requesterID string, rule domain.RecurringRule) error
	DeleteRule(requesterID string, ruleID int64) error
}

type RecurringHandler struct {
	service      RecurringServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewRecurringHandler(
	service RecurringServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *RecurringHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil || respondError == nil {
		log.Fatal("Respond functions must not be nil")
		return nil
	}
	return &RecurringHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *RecurringHandler) GetRules(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	rules, err := h.service.GetRules(userID)
	if err != nil {
		slog.Error("failed to list recurring rules", "user_id", userID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve recurring rules")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   rules,
	})
}

func (h *RecurringHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var rule domain.RecurringRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rule.OwnerID = userID
	if err := h.service.CreateRule(&rule); err != nil {
		h.respondServiceError(w, err, "Failed to create recurring rule")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Recurring rule successfully created.",
		"data":    rule,
	})
}

func (h *RecurringHandler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ruleID, err := strconv.ParseInt(r.PathValue("ruleID"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid rule ID")
		return
	}

	var rule domain.RecurringRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	rule.ID = ruleID

	if err := h.service.UpdateRule(userID, rule); err != nil {
		h.respondServiceError(w, err, "Failed to update recurring rule")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Recurring rule successfully updated.",
	})
}

func (h *RecurringHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ruleID, err := strconv.ParseInt(r.PathValue("ruleID"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid rule ID")
		return
	}

	if err := h.service.DeleteRule(userID, ruleID); err != nil {
		h.respondServiceError(w, err, "Failed to delete recurring rule")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Recurring rule successfully deleted.",
	})
}

func (h *RecurringHandler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, financeErrors.ErrRuleNotFound):
		h.respondError(w, http.StatusNotFound, "Recurring rule not found")
	case errors.Is(err, financeErrors.ErrForbidden):
		h.respondError(w, http.StatusForbidden, "You are not allowed to modify this recurring rule")
	case financeErrors.IsValidationError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("recurring rule operation failed", "error", err)
		h.respondError(w, http.StatusInternalServerError, fallback)
	}
}
