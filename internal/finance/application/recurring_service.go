package application

import (
	"log/slog"
	"time"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
	financeErrors "github.com/IT-BAER/finx-sub002/internal/finance/errors"
)

type RecordCreator interface {
	CreateRecord(record *domain.FinancialRecord) error
}

// RecurringService manages recurring rules and materializes due ones into
// records. Rules persist source/target names, so non-owner write gating
// matches those names against the grant's scoped source names.
type RecurringService struct {
	repo    domain.RecurringRepository
	records RecordCreator
	loader  PermissionLoaderInterface
}

func NewRecurringService(repo domain.RecurringRepository, records RecordCreator, loader PermissionLoaderInterface) *RecurringService {
	return &RecurringService{repo: repo, records: records, loader: loader}
}

func (s *RecurringService) GetRules(requesterID string) ([]domain.RecurringRule, error) {
	rules, err := s.repo.FindByOwners([]string{requesterID})
	if err != nil {
		return nil, err
	}
	if rules == nil {
		return []domain.RecurringRule{}, nil
	}
	return rules, nil
}

func (s *RecurringService) CreateRule(rule *domain.RecurringRule) error {
	if err := rule.Validate(); err != nil {
		return err
	}
	return s.repo.Save(rule)
}

func (s *RecurringService) UpdateRule(requesterID string, rule domain.RecurringRule) error {
	existing, err := s.gateWrite(requesterID, rule.ID)
	if err != nil {
		return err
	}
	rule.OwnerID = existing.OwnerID
	if err := rule.Validate(); err != nil {
		return err
	}
	return s.repo.Update(rule)
}

func (s *RecurringService) DeleteRule(requesterID string, ruleID int64) error {
	if _, err := s.gateWrite(requesterID, ruleID); err != nil {
		return err
	}
	return s.repo.Delete(ruleID)
}

// gateWrite loads the rule and decides whether the requester may modify it,
// using name-based matching since rules carry no source/target ids.
func (s *RecurringService) gateWrite(requesterID string, ruleID int64) (*domain.RecurringRule, error) {
	rule, err := s.repo.FindByID(ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, financeErrors.ErrRuleNotFound
	}

	meta, err := s.loader.Load(rule.OwnerID, requesterID)
	if err != nil {
		return nil, err
	}
	visibility := domain.EvaluateNameVisibility(rule.SourceName, rule.TargetName, rule.OwnerID, requesterID, meta)
	if !visibility.Visible {
		return nil, financeErrors.ErrRuleNotFound
	}
	if !visibility.Editable {
		return nil, financeErrors.ErrForbidden
	}
	return rule, nil
}

// MaterializeDue creates a record for every rule due at now and advances the
// rule's next date. A failing rule is logged and skipped so one bad rule
// does not starve the rest.
func (s *RecurringService) MaterializeDue(now time.Time) error {
	due, err := s.repo.FindDue(now)
	if err != nil {
		return err
	}

	for _, rule := range due {
		record := domain.FinancialRecord{
			OwnerID:     rule.OwnerID,
			Kind:        rule.Kind,
			Amount:      rule.Amount,
			Date:        rule.NextDate,
			Description: rule.Description,
			TargetName:  rule.TargetName,
		}
		if err := s.records.CreateRecord(&record); err != nil {
			slog.Error("failed to materialize recurring rule", "rule_id", rule.ID, "error", err)
			continue
		}
		rule.Advance()
		if err := s.repo.Update(rule); err != nil {
			slog.Error("failed to advance recurring rule", "rule_id", rule.ID, "error", err)
		}
	}
	return nil
}
