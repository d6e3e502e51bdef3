package application

import (
	"strings"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
	financeErrors "github.com/IT-BAER/finx-sub002/internal/finance/errors"
)

type SourceService struct {
	repo domain.SourceRepository
}

func NewSourceService(repo domain.SourceRepository) *SourceService {
	return &SourceService{repo: repo}
}

func (s *SourceService) GetUserSources(ownerID string) ([]domain.Source, error) {
	sources, err := s.repo.FindByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if sources == nil {
		return []domain.Source{}, nil
	}
	return sources, nil
}

func (s *SourceService) CreateSource(source *domain.Source) error {
	source.Name = strings.TrimSpace(source.Name)
	if source.Name == "" {
		return financeErrors.NewValidationError("Name is required")
	}
	taken, err := s.repo.NameExistsForOwner(source.OwnerID, domain.NormalizeName(source.Name))
	if err != nil {
		return err
	}
	if taken {
		return financeErrors.ErrDuplicateName
	}
	return s.repo.Save(source)
}

func (s *SourceService) UpdateSource(ownerID string, source domain.Source) error {
	existing, err := s.repo.FindByID(source.ID)
	if err != nil {
		return err
	}
	if existing == nil || existing.OwnerID != ownerID {
		return financeErrors.ErrSourceNotFound
	}
	source.OwnerID = ownerID
	source.Name = strings.TrimSpace(source.Name)
	if source.Name == "" {
		return financeErrors.NewValidationError("Name is required")
	}
	if domain.NormalizeName(source.Name) != domain.NormalizeName(existing.Name) {
		taken, err := s.repo.NameExistsForOwner(ownerID, domain.NormalizeName(source.Name))
		if err != nil {
			return err
		}
		if taken {
			return financeErrors.ErrDuplicateName
		}
	}
	return s.repo.Update(source)
}

func (s *SourceService) DeleteSource(ownerID string, sourceID int64) error {
	existing, err := s.repo.FindByID(sourceID)
	if err != nil {
		return err
	}
	if existing == nil || existing.OwnerID != ownerID {
		return financeErrors.ErrSourceNotFound
	}
	return s.repo.Delete(sourceID, ownerID)
}

func (s *SourceService) DoesSourceExistForOwner(sourceID int64, ownerID string) (bool, error) {
	return s.repo.ExistsForOwner(sourceID, ownerID)
}

func (s *SourceService) NamesForIDs(ownerID string, sourceIDs []int64) ([]string, error) {
	return s.repo.NamesForIDs(ownerID, sourceIDs)
}
