package infrastructure

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
)

type RecurringRepository struct {
	db *sql.DB
}

func NewRecurringRepository(db *sql.DB) *RecurringRepository {
	return &RecurringRepository{db: db}
}

const recurringColumns = `id, owner_id, kind, amount, source_name, target_name, description, interval_unit, next_date, created_at, updated_at`

func (r *RecurringRepository) Save(rule *domain.RecurringRule) error {
	return r.db.QueryRow(
		`INSERT INTO recurring_rules (owner_id, kind, amount, source_name, target_name, description, interval_unit, next_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		rule.OwnerID, rule.Kind, rule.Amount, rule.SourceName, rule.TargetName,
		rule.Description, rule.Interval, rule.NextDate,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
}

func (r *RecurringRepository) FindByID(ruleID int64) (*domain.RecurringRule, error) {
	var rule domain.RecurringRule
	err := r.db.QueryRow(`SELECT `+recurringColumns+` FROM recurring_rules WHERE id = $1`, ruleID).
		Scan(&rule.ID, &rule.OwnerID, &rule.Kind, &rule.Amount, &rule.SourceName, &rule.TargetName,
			&rule.Description, &rule.Interval, &rule.NextDate, &rule.CreatedAt, &rule.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *RecurringRepository) FindByOwners(ownerIDs []string) ([]domain.RecurringRule, error) {
	if len(ownerIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(ownerIDs))
	args := make([]interface{}, len(ownerIDs))
	for i, ownerID := range ownerIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = ownerID
	}
	return r.findRules(`SELECT `+recurringColumns+` FROM recurring_rules
		WHERE owner_id IN (`+strings.Join(placeholders, ", ")+`) ORDER BY next_date`, args...)
}

func (r *RecurringRepository) FindDue(now time.Time) ([]domain.RecurringRule, error) {
	return r.findRules(`SELECT `+recurringColumns+` FROM recurring_rules WHERE next_date <= $1 ORDER BY next_date`, now)
}

func (r *RecurringRepository) findRules(query string, args ...interface{}) ([]domain.RecurringRule, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []domain.RecurringRule
	for rows.Next() {
		var rule domain.RecurringRule
		if err := rows.Scan(&rule.ID, &rule.OwnerID, &rule.Kind, &rule.Amount, &rule.SourceName,
			&rule.TargetName, &rule.Description, &rule.Interval, &rule.NextDate,
			&rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *RecurringRepository) Update(rule domain.RecurringRule) error {
	_, err := r.db.Exec(
		`UPDATE recurring_rules
		 SET kind = $1, amount = $2, source_name = $3, target_name = $4, description = $5, interval_unit = $6, next_date = $7, updated_at = now()
		 WHERE id = $8`,
		rule.Kind, rule.Amount, rule.SourceName, rule.TargetName, rule.Description, rule.Interval, rule.NextDate, rule.ID,
	)
	return err
}

func (r *RecurringRepository) Delete(ruleID int64) error {
	_, err := r.db.Exec(`DELETE FROM recurring_rules WHERE id = $1`, ruleID)
	return err
}
