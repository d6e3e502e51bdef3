package application

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
	financeErrors "github.com/IT-BAER/finx-sub002/internal/finance/errors"
)

type SourceOwnershipChecker interface {
	DoesSourceExistForOwner(sourceID int64, ownerID string) (bool, error)
}

// SharingService is the owner-only CRUD surface for grants. Only the scope
// validation here is strict; readers of a persisted scope fail open instead
// (see PermissionLoader).
type SharingService struct {
	repo    domain.SharingRepository
	sources SourceOwnershipChecker
}

func NewSharingService(repo domain.SharingRepository, sources SourceOwnershipChecker) *SharingService {
	return &SharingService{repo: repo, sources: sources}
}

func (s *SharingService) GetGrantsByOwner(ownerID string) ([]domain.SharingGrant, error) {
	grants, err := s.repo.FindGrantsByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if grants == nil {
		return []domain.SharingGrant{}, nil
	}
	return grants, nil
}

func (s *SharingService) GetGrantsByRecipient(recipientID string) ([]domain.SharingGrant, error) {
	grants, err := s.repo.FindGrantsByRecipient(recipientID)
	if err != nil {
		return nil, err
	}
	if grants == nil {
		return []domain.SharingGrant{}, nil
	}
	return grants, nil
}

// SaveGrant creates or replaces the single grant for (ownerID, recipientID).
// A malformed scope, or one referencing sources the owner does not own, is
// rejected before persistence.
func (s *SharingService) SaveGrant(ownerID, recipientID, permissionLevel string, scope json.RawMessage) (*domain.SharingGrant, error) {
	if recipientID == "" || recipientID == ownerID {
		return nil, financeErrors.NewValidationError("Recipient must be another user")
	}
	permissionLevel = strings.TrimSpace(permissionLevel)
	if permissionLevel == "" {
		return nil, financeErrors.NewValidationError("Permission level is required")
	}

	grant := domain.SharingGrant{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		RecipientID:     recipientID,
		PermissionLevel: permissionLevel,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	if len(scope) > 0 && string(scope) != "null" {
		raw := string(scope)
		tokens, err := domain.ParseScopeTokens(raw)
		if err != nil {
			return nil, financeErrors.NewValidationError(fmt.Sprintf("Invalid scope: %v", err))
		}
		if len(tokens) == 0 {
			return nil, financeErrors.NewValidationError("Scope must not be empty; omit it to share everything")
		}
		for _, token := range tokens {
			if !token.Numeric {
				return nil, financeErrors.NewValidationError(fmt.Sprintf("Scope token %q is not a source identifier", token.Text))
			}
			owned, err := s.sources.DoesSourceExistForOwner(token.ID, ownerID)
			if err != nil {
				return nil, err
			}
			if !owned {
				return nil, financeErrors.NewValidationError(fmt.Sprintf("Scope references source %d which you do not own", token.ID))
			}
		}
		grant.Scope = &raw
	}

	if err := s.repo.Save(grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

func (s *SharingService) DeleteGrant(ownerID, recipientID string) error {
	grant, err := s.repo.FindGrant(ownerID, recipientID)
	if err != nil {
		return err
	}
	if grant == nil {
		return financeErrors.ErrGrantNotFound
	}
	return s.repo.Delete(ownerID, recipientID)
}
