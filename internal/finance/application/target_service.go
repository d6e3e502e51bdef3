package application

import (
	"strings"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
	financeErrors "github.com/IT-BAER/finx-sub002/internal/finance/errors"
)

type TargetService struct {
	repo domain.TargetRepository
}

func NewTargetService(repo domain.TargetRepository) *TargetService {
	return &TargetService{repo: repo}
}

func (s *TargetService) GetUserTargets(ownerID string) ([]domain.Target, error) {
	targets, err := s.repo.FindByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if targets == nil {
		return []domain.Target{}, nil
	}
	return targets, nil
}

func (s *TargetService) CreateTarget(target *domain.Target) error {
	target.Name = strings.TrimSpace(target.Name)
	if target.Name == "" {
		return financeErrors.NewValidationError("Name is required")
	}
	taken, err := s.repo.NameExistsForOwner(target.OwnerID, domain.NormalizeName(target.Name))
	if err != nil {
		return err
	}
	if taken {
		return financeErrors.ErrDuplicateName
	}
	return s.repo.Save(target)
}

func (s *TargetService) UpdateTarget(ownerID string, target domain.Target) error {
	existing, err := s.repo.FindByID(target.ID)
	if err != nil {
		return err
	}
	if existing == nil || existing.OwnerID != ownerID {
		return financeErrors.ErrTargetNotFound
	}
	target.OwnerID = ownerID
	target.Name = strings.TrimSpace(target.Name)
	if target.Name == "" {
		return financeErrors.NewValidationError("Name is required")
	}
	if domain.NormalizeName(target.Name) != domain.NormalizeName(existing.Name) {
		taken, err := s.repo.NameExistsForOwner(ownerID, domain.NormalizeName(target.Name))
		if err != nil {
			return err
		}
		if taken {
			return financeErrors.ErrDuplicateName
		}
	}
	return s.repo.Update(target)
}

func (s *TargetService) DeleteTarget(ownerID string, targetID int64) error {
	existing, err := s.repo.FindByID(targetID)
	if err != nil {
		return err
	}
	if existing == nil || existing.OwnerID != ownerID {
		return financeErrors.ErrTargetNotFound
	}
	return s.repo.Delete(targetID, ownerID)
}

func (s *TargetService) DoesTargetExistForOwner(targetID int64, ownerID string) (bool, error) {
	return s.repo.ExistsForOwner(targetID, ownerID)
}

func (s *TargetService) GetTarget(targetID int64) (*domain.Target, error) {
	return s.repo.FindByID(targetID)
}
