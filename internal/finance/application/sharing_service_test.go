package application

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
	financeErrors "github.com/IT-BAER/finx-sub002/internal/finance/errors"
	"github.com/IT-BAER/finx-sub002/internal/finance/infrastructure"
)

func newSharingServiceFixture(sources ...domain.Source) (*SharingService, *infrastructure.MockSharingRepository) {
	grants := &infrastructure.MockSharingRepository{}
	sourceRepo := &infrastructure.MockSourceRepository{Sources: sources}
	return NewSharingService(grants, NewSourceService(sourceRepo)), grants
}

func TestSaveGrant_UnscopedGrant(t *testing.T) {
	service, grants := newSharingServiceFixture()

	grant, err := service.SaveGrant("owner-1", "recipient-2", "read", nil)
	assert.NoError(t, err)
	assert.Nil(t, grant.Scope)
	assert.Len(t, grants.Grants, 1)
}

func TestSaveGrant_UpsertsSinglePair(t *testing.T) {
	service, grants := newSharingServiceFixture(domain.Source{ID: 7, OwnerID: "owner-1", Name: "Salary"})

	_, err := service.SaveGrant("owner-1", "recipient-2", "read", nil)
	assert.NoError(t, err)
	updated, err := service.SaveGrant("owner-1", "recipient-2", "write", json.RawMessage(`[7]`))
	assert.NoError(t, err)

	assert.Len(t, grants.Grants, 1, "one grant per (owner, recipient) pair")
	assert.Equal(t, "write", grants.Grants[0].PermissionLevel)
	if assert.NotNil(t, updated.Scope) {
		assert.JSONEq(t, `[7]`, *updated.Scope)
	}
}

func TestSaveGrant_RejectsSelfSharing(t *testing.T) {
	service, _ := newSharingServiceFixture()

	_, err := service.SaveGrant("owner-1", "owner-1", "read", nil)
	assert.True(t, financeErrors.IsValidationError(err))
}

func TestSaveGrant_RejectsEmptyScope(t *testing.T) {
	service, _ := newSharingServiceFixture()

	_, err := service.SaveGrant("owner-1", "recipient-2", "read", json.RawMessage(`[]`))
	assert.True(t, financeErrors.IsValidationError(err))
}

func TestSaveGrant_RejectsMalformedScope(t *testing.T) {
	service, grants := newSharingServiceFixture()

	_, err := service.SaveGrant("owner-1", "recipient-2", "read", json.RawMessage(`{"bad": true}`))
	assert.True(t, financeErrors.IsValidationError(err), "writes are strict; only reads fail open")
	assert.Empty(t, grants.Grants)
}

func TestSaveGrant_RejectsForeignSources(t *testing.T) {
	service, _ := newSharingServiceFixture(domain.Source{ID: 7, OwnerID: "someone-else", Name: "Salary"})

	_, err := service.SaveGrant("owner-1", "recipient-2", "write", json.RawMessage(`[7]`))
	assert.True(t, financeErrors.IsValidationError(err))
}

func TestSaveGrant_AcceptsNumericStringTokens(t *testing.T) {
	service, grants := newSharingServiceFixture(domain.Source{ID: 7, OwnerID: "owner-1", Name: "Salary"})

	_, err := service.SaveGrant("owner-1", "recipient-2", "write", json.RawMessage(`["7"]`))
	assert.NoError(t, err)
	assert.Len(t, grants.Grants, 1)
}

func TestDeleteGrant(t *testing.T) {
	service, grants := newSharingServiceFixture()
	_, err := service.SaveGrant("owner-1", "recipient-2", "read", nil)
	assert.NoError(t, err)

	assert.NoError(t, service.DeleteGrant("owner-1", "recipient-2"))
	assert.Empty(t, grants.Grants)

	assert.ErrorIs(t, service.DeleteGrant("owner-1", "recipient-2"), financeErrors.ErrGrantNotFound)
}
