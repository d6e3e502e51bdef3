package infrastructure

import (
	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
)

// MockSharingRepository is an in-memory grant store for tests. FindGrantCalls
// counts storage hits so tests can assert batch-efficiency guarantees.
type MockSharingRepository struct {
	Grants         []domain.SharingGrant
	FindGrantCalls int
	Err            error
}

func (m *MockSharingRepository) Save(grant domain.SharingGrant) error {
	if m.Err != nil {
		return m.Err
	}
	for i, existing := range m.Grants {
		if existing.OwnerID == grant.OwnerID && existing.RecipientID == grant.RecipientID {
			m.Grants[i] = grant
			return nil
		}
	}
	m.Grants = append(m.Grants, grant)
	return nil
}

func (m *MockSharingRepository) FindGrant(ownerID, recipientID string) (*domain.SharingGrant, error) {
	m.FindGrantCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	for _, grant := range m.Grants {
		if grant.OwnerID == ownerID && grant.RecipientID == recipientID {
			found := grant
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockSharingRepository) FindGrantsByOwner(ownerID string) ([]domain.SharingGrant, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var grants []domain.SharingGrant
	for _, grant := range m.Grants {
		if grant.OwnerID == ownerID {
			grants = append(grants, grant)
		}
	}
	return grants, nil
}

func (m *MockSharingRepository) FindGrantsByRecipient(recipientID string) ([]domain.SharingGrant, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var grants []domain.SharingGrant
	for _, grant := range m.Grants {
		if grant.RecipientID == recipientID {
			grants = append(grants, grant)
		}
	}
	return grants, nil
}

func (m *MockSharingRepository) Delete(ownerID, recipientID string) error {
	if m.Err != nil {
		return m.Err
	}
	for i, grant := range m.Grants {
		if grant.OwnerID == ownerID && grant.RecipientID == recipientID {
			m.Grants = append(m.Grants[:i], m.Grants[i+1:]...)
			return nil
		}
	}
	return nil
}
