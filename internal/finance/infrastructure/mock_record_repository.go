package infrastructure

import (
	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
)

type MockRecordRepository struct {
	Records []domain.FinancialRecord
	Updated []domain.FinancialRecord
	Deleted []int64
	Err     error
}

func (m *MockRecordRepository) Save(record *domain.FinancialRecord) error {
	if m.Err != nil {
		return m.Err
	}
	record.ID = int64(len(m.Records) + 1)
	m.Records = append(m.Records, *record)
	return nil
}

func (m *MockRecordRepository) FindByID(recordID int64) (*domain.FinancialRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, record := range m.Records {
		if record.ID == recordID {
			found := record
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockRecordRepository) FindByOwners(ownerIDs []string, filter domain.RecordFilter) ([]domain.FinancialRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	owners := make(map[string]struct{}, len(ownerIDs))
	for _, ownerID := range ownerIDs {
		owners[ownerID] = struct{}{}
	}
	var records []domain.FinancialRecord
	for _, record := range m.Records {
		if _, ok := owners[record.OwnerID]; !ok {
			continue
		}
		if filter.Kind != "" && record.Kind != filter.Kind {
			continue
		}
		if !filter.StartDate.IsZero() && record.Date.Before(filter.StartDate) {
			continue
		}
		if !filter.EndDate.IsZero() && record.Date.After(filter.EndDate) {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func (m *MockRecordRepository) Update(record domain.FinancialRecord) error {
	if m.Err != nil {
		return m.Err
	}
	m.Updated = append(m.Updated, record)
	for i, existing := range m.Records {
		if existing.ID == record.ID {
			m.Records[i] = record
			return nil
		}
	}
	return nil
}

func (m *MockRecordRepository) Delete(recordID int64) error {
	if m.Err != nil {
		return m.Err
	}
	m.Deleted = append(m.Deleted, recordID)
	for i, record := range m.Records {
		if record.ID == recordID {
			m.Records = append(m.Records[:i], m.Records[i+1:]...)
			return nil
		}
	}
	return nil
}
