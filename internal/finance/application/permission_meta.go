package application

import (
	"log/slog"
	"strconv"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
	"github.com/IT-BAER/finx-sub002/internal/metrics"
)

// SourceNameResolver is the one lookup the loader needs from the source
// collaborator: the names of an owner's sources for a set of ids.
type SourceNameResolver interface {
	NamesForIDs(ownerID string, sourceIDs []int64) ([]string, error)
}

// PermissionLoader builds a fresh PermissionMeta for an (owner, requester)
// pair on every call. Nothing is cached between calls, so an edited or
// revoked grant takes effect on the next check.
type PermissionLoader struct {
	grants  domain.SharingRepository
	sources SourceNameResolver
}

func NewPermissionLoader(grants domain.SharingRepository, sources SourceNameResolver) *PermissionLoader {
	return &PermissionLoader{grants: grants, sources: sources}
}

func (l *PermissionLoader) Load(ownerID, requesterID string) (domain.PermissionMeta, error) {
	if ownerID == requesterID {
		return domain.OwnerMeta(), nil
	}

	metrics.PermissionMetaLoads.Inc()
	grant, err := l.grants.FindGrant(ownerID, requesterID)
	if err != nil {
		return domain.PermissionMeta{}, err
	}
	if grant == nil {
		return domain.PermissionMeta{}, nil
	}

	meta := domain.PermissionMeta{
		Exists:   true,
		Writable: domain.IsWritableLevel(grant.PermissionLevel),
	}
	if grant.Scope == nil {
		return meta, nil
	}

	tokens, err := domain.ParseScopeTokens(*grant.Scope)
	if err != nil {
		// Unparseable scope falls back to an unrestricted grant rather than
		// denying access; only Exists and Writable are ever fail-closed.
		slog.Warn("treating unparseable grant scope as unrestricted",
			"grant_id", grant.ID, "error", err)
		return meta, nil
	}

	meta.ScopeIDs = make(map[int64]struct{})
	meta.ScopeTexts = make(map[string]struct{})
	meta.ScopeNames = make(map[string]struct{})

	var numericIDs []int64
	for _, token := range tokens {
		meta.ScopeTexts[token.Text] = struct{}{}
		if token.Numeric {
			if _, ok := meta.ScopeIDs[token.ID]; !ok {
				meta.ScopeIDs[token.ID] = struct{}{}
				numericIDs = append(numericIDs, token.ID)
			}
			meta.ScopeTexts[strconv.FormatInt(token.ID, 10)] = struct{}{}
		}
	}

	if len(numericIDs) > 0 {
		names, err := l.sources.NamesForIDs(ownerID, numericIDs)
		if err != nil {
			return domain.PermissionMeta{}, err
		}
		for _, name := range names {
			meta.ScopeNames[domain.NormalizeName(name)] = struct{}{}
		}
	}
	return meta, nil
}
