package application

import (
	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
)

// AccessScopeResolver answers which owners' data a requester may see at all:
// the requester plus every owner holding a grant toward them. Per-record
// visibility is decided later; this set only bounds storage queries.
type AccessScopeResolver struct {
	grants domain.SharingRepository
}

func NewAccessScopeResolver(grants domain.SharingRepository) *AccessScopeResolver {
	return &AccessScopeResolver{grants: grants}
}

// VisibleOwnerIDs returns the deduplicated owner set for a requester. The
// result always contains the requester.
func (r *AccessScopeResolver) VisibleOwnerIDs(requesterID string) ([]string, error) {
	grants, err := r.grants.FindGrantsByRecipient(requesterID)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{requesterID: {}}
	ownerIDs := []string{requesterID}
	for _, grant := range grants {
		if _, ok := seen[grant.OwnerID]; ok {
			continue
		}
		seen[grant.OwnerID] = struct{}{}
		ownerIDs = append(ownerIDs, grant.OwnerID)
	}
	return ownerIDs, nil
}

// ResolveOwner validates a caller-supplied "view as owner X" request.
// ok is false when X is not in the requester's visible set, meaning the
// caller gets the aggregate view instead of a single-owner one.
func (r *AccessScopeResolver) ResolveOwner(requesterID, ownerID string) (string, bool, error) {
	if ownerID == "" {
		return "", false, nil
	}
	if ownerID == requesterID {
		return ownerID, true, nil
	}
	ownerIDs, err := r.VisibleOwnerIDs(requesterID)
	if err != nil {
		return "", false, err
	}
	for _, id := range ownerIDs {
		if id == ownerID {
			return ownerID, true, nil
		}
	}
	return "", false, nil
}
