package interfaces

import (
	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
)

type MockRecordService struct {
	Records   []domain.SharedRecord
	Created   []domain.FinancialRecord
	Updated   []domain.FinancialRecord
	Deleted   []int64
	Err       error
	LastOwner string
}

func NewMockRecordService(records []domain.SharedRecord, err error) *MockRecordService {
	return &MockRecordService{Records: records, Err: err}
}

func (m *MockRecordService) GetRecords(requesterID, ownerID string, filter domain.RecordFilter) ([]domain.SharedRecord, error) {
	m.LastOwner = ownerID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Records, nil
}

func (m *MockRecordService) CreateRecord(record *domain.FinancialRecord) error {
	if m.Err != nil {
		return m.Err
	}
	record.ID = int64(len(m.Created) + 1)
	m.Created = append(m.Created, *record)
	return nil
}

func (m *MockRecordService) UpdateRecord(requesterID string, record domain.FinancialRecord) error {
	if m.Err != nil {
		return m.Err
	}
	m.Updated = append(m.Updated, record)
	return nil
}

func (m *MockRecordService) DeleteRecord(requesterID string, recordID int64) error {
	if m.Err != nil {
		return m.Err
	}
	m.Deleted = append(m.Deleted, recordID)
	return nil
}
