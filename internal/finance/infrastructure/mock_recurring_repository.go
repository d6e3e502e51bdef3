package infrastructure

import (
	"time"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
)

type MockRecurringRepository struct {
	Rules   []domain.RecurringRule
	Updated []domain.RecurringRule
	Deleted []int64
	Err     error
}

func (m *MockRecurringRepository) Save(rule *domain.RecurringRule) error {
	if m.Err != nil {
		return m.Err
	}
	rule.ID = int64(len(m.Rules) + 1)
	m.Rules = append(m.Rules, *rule)
	return nil
}

func (m *MockRecurringRepository) FindByID(ruleID int64) (*domain.RecurringRule, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, rule := range m.Rules {
		if rule.ID == ruleID {
			found := rule
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockRecurringRepository) FindByOwners(ownerIDs []string) ([]domain.RecurringRule, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	owners := make(map[string]struct{}, len(ownerIDs))
	for _, ownerID := range ownerIDs {
		owners[ownerID] = struct{}{}
	}
	var rules []domain.RecurringRule
	for _, rule := range m.Rules {
		if _, ok := owners[rule.OwnerID]; ok {
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

func (m *MockRecurringRepository) FindDue(now time.Time) ([]domain.RecurringRule, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var due []domain.RecurringRule
	for _, rule := range m.Rules {
		if !rule.NextDate.After(now) {
			due = append(due, rule)
		}
	}
	return due, nil
}

func (m *MockRecurringRepository) Update(rule domain.RecurringRule) error {
	if m.Err != nil {
		return m.Err
	}
	m.Updated = append(m.Updated, rule)
	for i, existing := range m.Rules {
		if existing.ID == rule.ID {
			m.Rules[i] = rule
			return nil
		}
	}
	return nil
}

func (m *MockRecurringRepository) Delete(ruleID int64) error {
	if m.Err != nil {
		return m.Err
	}
	m.Deleted = append(m.Deleted, ruleID)
	for i, rule := range m.Rules {
		if rule.ID == ruleID {
			m.Rules = append(m.Rules[:i], m.Rules[i+1:]...)
			return nil
		}
	}
	return nil
}
