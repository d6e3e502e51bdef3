package application

import (
	"sort"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
	financeErrors "github.com/IT-BAER/finx-sub002/internal/finance/errors"
)

type SourceServiceInterface interface {
	DoesSourceExistForOwner(sourceID int64, ownerID string) (bool, error)
}

type TargetServiceInterface interface {
	DoesTargetExistForOwner(targetID int64, ownerID string) (bool, error)
	GetTarget(targetID int64) (*domain.Target, error)
}

type RecordService struct {
	repo     domain.RecordRepository
	resolver *AccessScopeResolver
	loader   PermissionLoaderInterface
	pipeline *VisibilityPipeline
	sources  SourceServiceInterface
	targets  TargetServiceInterface
}

func NewRecordService(
	repo domain.RecordRepository,
	resolver *AccessScopeResolver,
	loader PermissionLoaderInterface,
	pipeline *VisibilityPipeline,
	sources SourceServiceInterface,
	targets TargetServiceInterface,
) *RecordService {
	return &RecordService{
		repo:     repo,
		resolver: resolver,
		loader:   loader,
		pipeline: pipeline,
		sources:  sources,
		targets:  targets,
	}
}

// GetRecords returns the records the requester may see, newest first.
// ownerID narrows the view to one owner; when it is empty or not in the
// requester's visible set, the aggregate view over every visible owner is
// returned instead.
func (s *RecordService) GetRecords(requesterID, ownerID string, filter domain.RecordFilter) ([]domain.SharedRecord, error) {
	ownerIDs, err := s.resolver.VisibleOwnerIDs(requesterID)
	if err != nil {
		return nil, err
	}
	if resolved, ok, err := s.resolver.ResolveOwner(requesterID, ownerID); err != nil {
		return nil, err
	} else if ok {
		ownerIDs = []string{resolved}
	}

	records, err := s.repo.FindByOwners(ownerIDs, filter)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].ID > records[j].ID
	})

	shared, err := s.pipeline.Filter(records, requesterID)
	if err != nil {
		return nil, err
	}
	if shared == nil {
		return []domain.SharedRecord{}, nil
	}
	return shared, nil
}

func (s *RecordService) CreateRecord(record *domain.FinancialRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if err := s.validateLinkage(record); err != nil {
		return err
	}
	return s.repo.Save(record)
}

// UpdateRecord applies the sharing write gate before persisting: the
// requester must see the record, hold a writable grant, and the proposed new
// linkage must still fall inside the grant's scope.
func (s *RecordService) UpdateRecord(requesterID string, record domain.FinancialRecord) error {
	existing, err := s.repo.FindByID(record.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return financeErrors.ErrRecordNotFound
	}

	meta, err := s.loader.Load(existing.OwnerID, requesterID)
	if err != nil {
		return err
	}
	visibility := domain.EvaluateVisibility(*existing, requesterID, meta)
	if !visibility.Visible {
		return financeErrors.ErrRecordNotFound
	}
	if !visibility.Editable {
		return financeErrors.ErrForbidden
	}

	// Records never change hands on update.
	record.OwnerID = existing.OwnerID
	if err := record.Validate(); err != nil {
		return err
	}
	if proposed := domain.EvaluateVisibility(record, requesterID, meta); !proposed.Visible {
		return financeErrors.ErrForbidden
	}
	if err := s.validateLinkage(&record); err != nil {
		return err
	}
	return s.repo.Update(record)
}

func (s *RecordService) DeleteRecord(requesterID string, recordID int64) error {
	existing, err := s.repo.FindByID(recordID)
	if err != nil {
		return err
	}
	if existing == nil {
		return financeErrors.ErrRecordNotFound
	}

	meta, err := s.loader.Load(existing.OwnerID, requesterID)
	if err != nil {
		return err
	}
	visibility := domain.EvaluateVisibility(*existing, requesterID, meta)
	if !visibility.Visible {
		return financeErrors.ErrRecordNotFound
	}
	if !visibility.Editable {
		return financeErrors.ErrForbidden
	}
	return s.repo.Delete(recordID)
}

// validateLinkage checks that source and target references belong to the
// record's owner and fills the denormalized target name when it is missing.
func (s *RecordService) validateLinkage(record *domain.FinancialRecord) error {
	if record.SourceID != nil {
		exists, err := s.sources.DoesSourceExistForOwner(*record.SourceID, record.OwnerID)
		if err != nil {
			return err
		}
		if !exists {
			return financeErrors.ErrInvalidSource
		}
	}
	if record.TargetID != nil {
		exists, err := s.targets.DoesTargetExistForOwner(*record.TargetID, record.OwnerID)
		if err != nil {
			return err
		}
		if !exists {
			return financeErrors.ErrInvalidTarget
		}
		if record.TargetName == "" {
			target, err := s.targets.GetTarget(*record.TargetID)
			if err != nil {
				return err
			}
			if target != nil {
				record.TargetName = target.Name
			}
		}
	}
	return nil
}
