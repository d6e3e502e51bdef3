package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
	"github.com/IT-BAER/finx-sub002/internal/finance/infrastructure"
)

func strPtr(s string) *string {
	return &s
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestPermissionLoader_SelfShortcutSkipsStorage(t *testing.T) {
	grants := &infrastructure.MockSharingRepository{}
	sources := &infrastructure.MockSourceRepository{}
	loader := NewPermissionLoader(grants, sources)

	meta, err := loader.Load("user-1", "user-1")
	assert.NoError(t, err)
	assert.True(t, meta.Exists)
	assert.True(t, meta.Writable)
	assert.True(t, meta.Unrestricted())
	assert.Equal(t, 0, grants.FindGrantCalls)
	assert.Equal(t, 0, sources.NamesForIDsCalls)
}

func TestPermissionLoader_NoGrant(t *testing.T) {
	loader := NewPermissionLoader(&infrastructure.MockSharingRepository{}, &infrastructure.MockSourceRepository{})

	meta, err := loader.Load("owner-1", "recipient-1")
	assert.NoError(t, err)
	assert.False(t, meta.Exists)
	assert.False(t, meta.Writable)
}

func TestPermissionLoader_ReadGrantIsViewOnly(t *testing.T) {
	grants := &infrastructure.MockSharingRepository{
		Grants: []domain.SharingGrant{
			{OwnerID: "owner-1", RecipientID: "recipient-1", PermissionLevel: "read"},
		},
	}
	loader := NewPermissionLoader(grants, &infrastructure.MockSourceRepository{})

	meta, err := loader.Load("owner-1", "recipient-1")
	assert.NoError(t, err)
	assert.True(t, meta.Exists)
	assert.False(t, meta.Writable)
	assert.True(t, meta.Unrestricted())
}

func TestPermissionLoader_ScopeSetsBuiltTogether(t *testing.T) {
	grants := &infrastructure.MockSharingRepository{
		Grants: []domain.SharingGrant{
			{OwnerID: "owner-1", RecipientID: "recipient-1", PermissionLevel: "write", Scope: strPtr(`[7, "9"]`)},
		},
	}
	sources := &infrastructure.MockSourceRepository{
		Sources: []domain.Source{
			{ID: 7, OwnerID: "owner-1", Name: "Salary"},
			{ID: 9, OwnerID: "owner-1", Name: "Freelance"},
		},
	}
	loader := NewPermissionLoader(grants, sources)

	meta, err := loader.Load("owner-1", "recipient-1")
	assert.NoError(t, err)
	assert.True(t, meta.Exists)
	assert.True(t, meta.Writable)
	assert.False(t, meta.Unrestricted())

	assert.Contains(t, meta.ScopeIDs, int64(7))
	assert.Contains(t, meta.ScopeIDs, int64(9), "numeric strings count as ids")
	assert.Contains(t, meta.ScopeTexts, "7")
	assert.Contains(t, meta.ScopeTexts, "9")
	assert.Contains(t, meta.ScopeNames, "salary")
	assert.Contains(t, meta.ScopeNames, "freelance")

	assert.Equal(t, 1, sources.NamesForIDsCalls, "one name lookup per load")
}

func TestPermissionLoader_UnparseableScopeFailsOpen(t *testing.T) {
	grants := &infrastructure.MockSharingRepository{
		Grants: []domain.SharingGrant{
			{OwnerID: "owner-1", RecipientID: "recipient-1", PermissionLevel: "read", Scope: strPtr(`not json at all`)},
		},
	}
	sources := &infrastructure.MockSourceRepository{}
	loader := NewPermissionLoader(grants, sources)

	meta, err := loader.Load("owner-1", "recipient-1")
	assert.NoError(t, err)
	assert.True(t, meta.Exists, "existence is never fail-open; it came from the grant row")
	assert.False(t, meta.Writable, "writability is never fail-open either")
	assert.True(t, meta.Unrestricted(), "a corrupted scope degrades to an unrestricted view")
	assert.Equal(t, 0, sources.NamesForIDsCalls)
}

func TestPermissionLoader_TextOnlyScopeSkipsNameLookup(t *testing.T) {
	grants := &infrastructure.MockSharingRepository{
		Grants: []domain.SharingGrant{
			{OwnerID: "owner-1", RecipientID: "recipient-1", PermissionLevel: "write", Scope: strPtr(`["legacy token"]`)},
		},
	}
	sources := &infrastructure.MockSourceRepository{}
	loader := NewPermissionLoader(grants, sources)

	meta, err := loader.Load("owner-1", "recipient-1")
	assert.NoError(t, err)
	assert.False(t, meta.Unrestricted())
	assert.Empty(t, meta.ScopeIDs)
	assert.Contains(t, meta.ScopeTexts, "legacy token")
	assert.Equal(t, 0, sources.NamesForIDsCalls, "no numeric ids, no lookup")
}
