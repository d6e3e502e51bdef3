package interfaces

import (
	"encoding/json"
	"time"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
)

type MockSharingService struct {
	Outgoing []domain.SharingGrant
	Incoming []domain.SharingGrant
	Saved    []domain.SharingGrant
	Deleted  [][2]string
	Err      error
}

func NewMockSharingService(outgoing, incoming []domain.SharingGrant, err error) *MockSharingService {
	return &MockSharingService{Outgoing: outgoing, Incoming: incoming, Err: err}
}

func (m *MockSharingService) GetGrantsByOwner(ownerID string) ([]domain.SharingGrant, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Outgoing, nil
}

func (m *MockSharingService) GetGrantsByRecipient(recipientID string) ([]domain.SharingGrant, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Incoming, nil
}

func (m *MockSharingService) SaveGrant(ownerID, recipientID, permissionLevel string, scope json.RawMessage) (*domain.SharingGrant, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	grant := domain.SharingGrant{
		ID:              "mock-grant",
		OwnerID:         ownerID,
		RecipientID:     recipientID,
		PermissionLevel: permissionLevel,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if len(scope) > 0 {
		raw := string(scope)
		grant.Scope = &raw
	}
	m.Saved = append(m.Saved, grant)
	return &grant, nil
}

func (m *MockSharingService) DeleteGrant(ownerID, recipientID string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Deleted = append(m.Deleted, [2]string{ownerID, recipientID})
	return nil
}
