package interfaces

import (
	"encoding/json"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
	financeErrors "github.com/IT-BAER/finx-sub002/internal/finance/errors"
)

type RecordServiceInterface interface {
	GetRecords(requesterID, ownerID string, filter domain.RecordFilter) ([]domain.SharedRecord, error)
	CreateRecord(record *domain.FinancialRecord) error
	UpdateRecord(requesterID string, record domain.FinancialRecord) error
	DeleteRecord(requesterID string, recordID int64) error
}

type RecordHandler struct {
	service      RecordServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewRecordHandler(
	service RecordServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *RecordHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil || respondError == nil {
		log.Fatal("Respond functions must not be nil")
		return nil
	}
	return &RecordHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// GetRecords lists visible records. The optional ?owner= query switches to a
// single shared owner's view when the requester is allowed to see it.
func (h *RecordHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	kind := r.URL.Query().Get("kind")
	if !domain.IsValidRecordKind(kind) {
		h.respondError(w, http.StatusBadRequest, "Invalid record kind")
		return
	}

	filter := domain.RecordFilter{Kind: kind}
	if startDateStr := r.URL.Query().Get("start_date"); startDateStr != "" {
		startDate, err := time.Parse("2006-01-02", startDateStr)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid start_date format, expected YYYY-MM-DD")
			return
		}
		filter.StartDate = startDate
	}
	if endDateStr := r.URL.Query().Get("end_date"); endDateStr != "" {
		endDate, err := time.Parse("2006-01-02", endDateStr)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid end_date format, expected YYYY-MM-DD")
			return
		}
		filter.EndDate = endDate
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			h.respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		filter.Limit = limit
	}

	records, err := h.service.GetRecords(userID, r.URL.Query().Get("owner"), filter)
	if err != nil {
		slog.Error("failed to list records", "user_id", userID, "error", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve records")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   records,
	})
}

func (h *RecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var record domain.FinancialRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record.OwnerID = userID
	if err := h.service.CreateRecord(&record); err != nil {
		h.respondServiceError(w, err, "Failed to create record")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Record successfully created.",
		"data":    record,
	})
}

func (h *RecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	recordID, err := strconv.ParseInt(r.PathValue("recordID"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	var record domain.FinancialRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	record.ID = recordID

	if err := h.service.UpdateRecord(userID, record); err != nil {
		h.respondServiceError(w, err, "Failed to update record")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Record successfully updated.",
	})
}

func (h *RecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	recordID, err := strconv.ParseInt(r.PathValue("recordID"), 10, 64)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	if err := h.service.DeleteRecord(userID, recordID); err != nil {
		h.respondServiceError(w, err, "Failed to delete record")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Record successfully deleted.",
	})
}

func (h *RecordHandler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, financeErrors.ErrRecordNotFound):
		h.respondError(w, http.StatusNotFound, "Record not found")
	case errors.Is(err, financeErrors.ErrForbidden):
		h.respondError(w, http.StatusForbidden, "You are not allowed to modify this record")
	case financeErrors.IsValidationError(err):
		h.respondError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("record operation failed", "error", err)
		h.respondError(w, http.StatusInternalServerError, fallback)
	}
}
