package application

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
	"github.com/IT-BAER/finx-sub002/internal/finance/infrastructure"
)

func TestVisibilityPipeline_OneMetaLoadPerOwner(t *testing.T) {
	grants := &infrastructure.MockSharingRepository{
		Grants: []domain.SharingGrant{
			{OwnerID: "owner-1", RecipientID: "viewer", PermissionLevel: "read", Scope: strPtr(`[7]`)},
		},
	}
	sources := &infrastructure.MockSourceRepository{
		Sources: []domain.Source{{ID: 7, OwnerID: "owner-1", Name: "Salary"}},
	}
	pipeline := NewVisibilityPipeline(NewPermissionLoader(grants, sources))

	records := make([]domain.FinancialRecord, 50)
	for i := range records {
		records[i] = domain.FinancialRecord{
			ID: int64(i + 1), OwnerID: "owner-1", Kind: "expense", SourceID: int64Ptr(7),
		}
	}

	shared, err := pipeline.Filter(records, "viewer")
	assert.NoError(t, err)
	assert.Len(t, shared, 50)
	assert.Equal(t, 1, grants.FindGrantCalls, "50 records of one owner cost a single grant lookup")
	assert.Equal(t, 1, sources.NamesForIDsCalls, "and at most one name resolution")
}

func TestVisibilityPipeline_MixedOwnersFilteredStably(t *testing.T) {
	grants := &infrastructure.MockSharingRepository{
		Grants: []domain.SharingGrant{
			{OwnerID: "owner-1", RecipientID: "viewer", PermissionLevel: "read"},
		},
	}
	pipeline := NewVisibilityPipeline(NewPermissionLoader(grants, &infrastructure.MockSourceRepository{}))

	records := []domain.FinancialRecord{
		{ID: 3, OwnerID: "owner-1", Kind: "expense"},
		{ID: 9, OwnerID: "stranger", Kind: "expense"},
		{ID: 2, OwnerID: "viewer", Kind: "income"},
		{ID: 1, OwnerID: "owner-1", Kind: "income"},
	}

	shared, err := pipeline.Filter(records, "viewer")
	assert.NoError(t, err)

	var ids []int64
	for _, record := range shared {
		ids = append(ids, record.ID)
	}
	assert.Equal(t, []int64{3, 2, 1}, ids, "filter keeps input order and drops ungranted owners")

	// Ownership and the read-only grant drive editability.
	assert.False(t, shared[0].Editable)
	assert.True(t, shared[1].Editable, "requester's own record")
	assert.False(t, shared[2].Editable)
}

func TestVisibilityPipeline_ReadGrantNoScopeShowsAllReadOnly(t *testing.T) {
	grants := &infrastructure.MockSharingRepository{
		Grants: []domain.SharingGrant{
			{OwnerID: "owner-1", RecipientID: "viewer", PermissionLevel: "read"},
		},
	}
	pipeline := NewVisibilityPipeline(NewPermissionLoader(grants, &infrastructure.MockSourceRepository{}))

	var records []domain.FinancialRecord
	for i := 0; i < 10; i++ {
		records = append(records, domain.FinancialRecord{
			ID:      int64(i + 1),
			OwnerID: "owner-1",
			Kind:    "expense",
			Date:    time.Date(2025, time.March, i+1, 0, 0, 0, 0, time.UTC),
		})
	}

	shared, err := pipeline.Filter(records, "viewer")
	assert.NoError(t, err)
	assert.Len(t, shared, 10)
	for i, record := range shared {
		assert.False(t, record.Editable, fmt.Sprintf("record %d must be read-only", i))
		assert.Equal(t, "owner-1", record.OwnerID)
	}
}

func TestVisibilityPipeline_StorageFailureAbortsBatch(t *testing.T) {
	grants := &infrastructure.MockSharingRepository{Err: assert.AnError}
	pipeline := NewVisibilityPipeline(NewPermissionLoader(grants, &infrastructure.MockSourceRepository{}))

	_, err := pipeline.Filter([]domain.FinancialRecord{
		{ID: 1, OwnerID: "owner-1", Kind: "expense"},
	}, "viewer")
	assert.Error(t, err, "storage failures are fail-closed, never partial")
}
