package infrastructure

import (
	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
)

type MockSourceRepository struct {
	Sources          []domain.Source
	NamesForIDsCalls int
	Err              error
}

func (m *MockSourceRepository) Save(source *domain.Source) error {
	if m.Err != nil {
		return m.Err
	}
	source.ID = int64(len(m.Sources) + 1)
	m.Sources = append(m.Sources, *source)
	return nil
}

func (m *MockSourceRepository) FindByOwner(ownerID string) ([]domain.Source, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var sources []domain.Source
	for _, source := range m.Sources {
		if source.OwnerID == ownerID {
			sources = append(sources, source)
		}
	}
	return sources, nil
}

func (m *MockSourceRepository) FindByID(sourceID int64) (*domain.Source, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, source := range m.Sources {
		if source.ID == sourceID {
			found := source
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockSourceRepository) NamesForIDs(ownerID string, sourceIDs []int64) ([]string, error) {
	m.NamesForIDsCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	wanted := make(map[int64]struct{}, len(sourceIDs))
	for _, id := range sourceIDs {
		wanted[id] = struct{}{}
	}
	var names []string
	for _, source := range m.Sources {
		if source.OwnerID != ownerID {
			continue
		}
		if _, ok := wanted[source.ID]; ok {
			names = append(names, source.Name)
		}
	}
	return names, nil
}

func (m *MockSourceRepository) ExistsForOwner(sourceID int64, ownerID string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	for _, source := range m.Sources {
		if source.ID == sourceID && source.OwnerID == ownerID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockSourceRepository) NameExistsForOwner(ownerID, normalizedName string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	for _, source := range m.Sources {
		if source.OwnerID == ownerID && domain.NormalizeName(source.Name) == normalizedName {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockSourceRepository) Update(source domain.Source) error {
	if m.Err != nil {
		return m.Err
	}
	for i, existing := range m.Sources {
		if existing.ID == source.ID && existing.OwnerID == source.OwnerID {
			m.Sources[i] = source
			return nil
		}
	}
	return nil
}

func (m *MockSourceRepository) Delete(sourceID int64, ownerID string) error {
	if m.Err != nil {
		return m.Err
	}
	for i, source := range m.Sources {
		if source.ID == sourceID && source.OwnerID == ownerID {
			m.Sources = append(m.Sources[:i], m.Sources[i+1:]...)
			return nil
		}
	}
	return nil
}
