package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
	"github.com/IT-BAER/finx-sub002/internal/finance/infrastructure"
)

func TestVisibleOwnerIDs_AlwaysContainsRequester(t *testing.T) {
	resolver := NewAccessScopeResolver(&infrastructure.MockSharingRepository{})

	ownerIDs, err := resolver.VisibleOwnerIDs("user-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, ownerIDs)
}

func TestVisibleOwnerIDs_IncludesGrantingOwnersDeduplicated(t *testing.T) {
	resolver := NewAccessScopeResolver(&infrastructure.MockSharingRepository{
		Grants: []domain.SharingGrant{
			{OwnerID: "owner-1", RecipientID: "user-1", PermissionLevel: "read"},
			{OwnerID: "owner-2", RecipientID: "user-1", PermissionLevel: "write"},
			{OwnerID: "owner-1", RecipientID: "someone-else", PermissionLevel: "read"},
		},
	})

	ownerIDs, err := resolver.VisibleOwnerIDs("user-1")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"user-1", "owner-1", "owner-2"}, ownerIDs)
}

func TestResolveOwner(t *testing.T) {
	resolver := NewAccessScopeResolver(&infrastructure.MockSharingRepository{
		Grants: []domain.SharingGrant{
			{OwnerID: "owner-1", RecipientID: "user-1", PermissionLevel: "read"},
		},
	})

	ownerID, ok, err := resolver.ResolveOwner("user-1", "owner-1")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "owner-1", ownerID)

	_, ok, err = resolver.ResolveOwner("user-1", "owner-2")
	assert.NoError(t, err)
	assert.False(t, ok, "an owner outside the visible set falls back to the aggregate view")

	ownerID, ok, err = resolver.ResolveOwner("user-1", "user-1")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "user-1", ownerID)

	_, ok, err = resolver.ResolveOwner("user-1", "")
	assert.NoError(t, err)
	assert.False(t, ok)
}
