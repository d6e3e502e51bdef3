package infrastructure

import (
	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
)

type MockTargetRepository struct {
	Targets []domain.Target
	Err     error
}

func (m *MockTargetRepository) Save(target *domain.Target) error {
	if m.Err != nil {
		return m.Err
	}
	target.ID = int64(len(m.Targets) + 1)
	m.Targets = append(m.Targets, *target)
	return nil
}

func (m *MockTargetRepository) FindByOwner(ownerID string) ([]domain.Target, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var targets []domain.Target
	for _, target := range m.Targets {
		if target.OwnerID == ownerID {
			targets = append(targets, target)
		}
	}
	return targets, nil
}

func (m *MockTargetRepository) FindByID(targetID int64) (*domain.Target, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, target := range m.Targets {
		if target.ID == targetID {
			found := target
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockTargetRepository) ExistsForOwner(targetID int64, ownerID string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	for _, target := range m.Targets {
		if target.ID == targetID && target.OwnerID == ownerID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTargetRepository) NameExistsForOwner(ownerID, normalizedName string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	for _, target := range m.Targets {
		if target.OwnerID == ownerID && domain.NormalizeName(target.Name) == normalizedName {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTargetRepository) Update(target domain.Target) error {
	if m.Err != nil {
		return m.Err
	}
	for i, existing := range m.Targets {
		if existing.ID == target.ID && existing.OwnerID == target.OwnerID {
			m.Targets[i] = target
			return nil
		}
	}
	return nil
}

func (m *MockTargetRepository) Delete(targetID int64, ownerID string) error {
	if m.Err != nil {
		return m.Err
	}
	for i, target := range m.Targets {
		if target.ID == targetID && target.OwnerID == ownerID {
			m.Targets = append(m.Targets[:i], m.Targets[i+1:]...)
			return nil
		}
	}
	return nil
}
