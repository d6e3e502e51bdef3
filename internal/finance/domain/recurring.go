package domain

import (
	"time"

	"github.com/IT-BAER/finx-sub002/internal/finance/errors"
)

type RecurringRepository interface {
	Save(rule *RecurringRule) error
	FindByID(ruleID int64) (*RecurringRule, error)
	FindByOwners(ownerIDs []string) ([]RecurringRule, error)
	FindDue(now time.Time) ([]RecurringRule, error)
	Update(rule RecurringRule) error
	Delete(ruleID int64) error
}

// RecurringRule generates a FinancialRecord every interval. Rules persist
// source and target names rather than ids, so write gating for non-owners
// matches names against a grant's scoped source names.
type RecurringRule struct {
	ID          int64     `json:"id"`
	OwnerID     string    `json:"owner_id"` // user UUID
	Kind        string    `json:"kind"`     // "income" or "expense"
	Amount      float64   `json:"amount"`
	SourceName  string    `json:"source_name"`
	TargetName  string    `json:"target_name"`
	Description string    `json:"description"`
	Interval    string    `json:"interval"` // "day", "week", "month", "year"
	NextDate    time.Time `json:"next_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r *RecurringRule) Validate() error {
	if r.Kind != "income" && r.Kind != "expense" {
		return errors.NewValidationError("Kind must be 'income' or 'expense'")
	}
	switch r.Interval {
	case "day", "week", "month", "year":
	default:
		return errors.NewValidationError("Interval must be one of 'day', 'week', 'month', 'year'")
	}
	if r.NextDate.IsZero() {
		return errors.NewValidationError("Next date is required")
	}
	return nil
}

// Advance moves NextDate forward by one interval.
func (r *RecurringRule) Advance() {
	switch r.Interval {
	case "day":
		r.NextDate = r.NextDate.AddDate(0, 0, 1)
	case "week":
		r.NextDate = r.NextDate.AddDate(0, 0, 7)
	case "month":
		r.NextDate = r.NextDate.AddDate(0, 1, 0)
	case "year":
		r.NextDate = r.NextDate.AddDate(1, 0, 0)
	}
}
