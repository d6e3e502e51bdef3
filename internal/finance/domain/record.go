package domain

import (
	"time"

	"github.com/IT-BAER/finx-sub002/internal/finance/errors"
)

type RecordRepository interface {
	Save(record *FinancialRecord) error
	FindByID(recordID int64) (*FinancialRecord, error)
	FindByOwners(ownerIDs []string, filter RecordFilter) ([]FinancialRecord, error)
	Update(record FinancialRecord) error
	Delete(recordID int64) error
}

// RecordFilter narrows a multi-owner record query. Zero values mean "no
// restriction". Results are always ordered date descending, then id
// descending.
type RecordFilter struct {
	Kind      string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
	Offset    int
}

type FinancialRecord struct {
	ID      int64   `json:"id"`
	OwnerID string  `json:"owner_id"` // user UUID
	Kind    string  `json:"kind"`     // "income" or "expense"
	Amount  float64 `json:"amount"`
	Date    time.Time `json:"date"`
	Description string `json:"description"`
	SourceID    *int64 `json:"source_id"`
	TargetID    *int64 `json:"target_id"`
	// TargetName is denormalized display text. For income records it carries
	// the counterpart identity; the stored linkage column stays TargetID.
	TargetName string    `json:"target_name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (r *FinancialRecord) Validate() error {
	if r.Kind != "income" && r.Kind != "expense" {
		return errors.NewValidationError("Kind must be 'income' or 'expense'")
	}
	if len(r.Description) > 200 {
		return errors.NewValidationError("Description must be of length less than 200")
	}
	if len(r.TargetName) > 100 {
		return errors.NewValidationError("Target name must be of length less than 100")
	}
	return nil
}

func IsValidRecordKind(kind string) bool {
	return kind == "" || kind == "income" || kind == "expense"
}

// SharedRecord is a FinancialRecord that survived visibility filtering,
// annotated with whether the requester may modify it.
type SharedRecord struct {
	FinancialRecord
	Editable bool `json:"editable"`
}
