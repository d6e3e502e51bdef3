package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
	financeErrors "github.com/IT-BAER/finx-sub002/internal/finance/errors"
	"github.com/IT-BAER/finx-sub002/internal/finance/infrastructure"
)

func newRecordServiceFixture(grants *infrastructure.MockSharingRepository, sources *infrastructure.MockSourceRepository, records *infrastructure.MockRecordRepository) *RecordService {
	targets := &infrastructure.MockTargetRepository{}
	sourceService := NewSourceService(sources)
	targetService := NewTargetService(targets)
	resolver := NewAccessScopeResolver(grants)
	loader := NewPermissionLoader(grants, sourceService)
	pipeline := NewVisibilityPipeline(loader)
	return NewRecordService(records, resolver, loader, pipeline, sourceService, targetService)
}

func TestGetRecords_ReadGrantReturnsAllReadOnly(t *testing.T) {
	grants := &infrastructure.MockSharingRepository{
		Grants: []domain.SharingGrant{
			{OwnerID: "owner-1", RecipientID: "recipient-2", PermissionLevel: "read"},
		},
	}
	records := &infrastructure.MockRecordRepository{
		Records: []domain.FinancialRecord{
			{ID: 1, OwnerID: "owner-1", Kind: "expense", Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 2, OwnerID: "owner-1", Kind: "income", Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
			{ID: 3, OwnerID: "owner-1", Kind: "expense", Date: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	service := newRecordServiceFixture(grants, &infrastructure.MockSourceRepository{}, records)

	shared, err := service.GetRecords("recipient-2", "owner-1", domain.RecordFilter{})
	assert.NoError(t, err)
	assert.Len(t, shared, 3)

	var ids []int64
	for _, record := range shared {
		assert.False(t, record.Editable)
		ids = append(ids, record.ID)
	}
	assert.Equal(t, []int64{3, 2, 1}, ids, "newest first, id descending on date ties")
}

func TestGetRecords_ScopedWriteGrant(t *testing.T) {
	grants := &infrastructure.MockSharingRepository{
		Grants: []domain.SharingGrant{
			{OwnerID: "owner-1", RecipientID: "recipient-2", PermissionLevel: "write", Scope: strPtr(`[7]`)},
		},
	}
	sources := &infrastructure.MockSourceRepository{
		Sources: []domain.Source{{ID: 7, OwnerID: "owner-1", Name: "Salary"}},
	}
	records := &infrastructure.MockRecordRepository{
		Records: []domain.FinancialRecord{
			{ID: 1, OwnerID: "owner-1", Kind: "expense", SourceID: int64Ptr(7)},
			{ID: 2, OwnerID: "owner-1", Kind: "expense", SourceID: int64Ptr(9)},
		},
	}
	service := newRecordServiceFixture(grants, sources, records)

	shared, err := service.GetRecords("recipient-2", "owner-1", domain.RecordFilter{})
	assert.NoError(t, err)
	assert.Len(t, shared, 1, "the out-of-scope record is absent, not just read-only")
	assert.Equal(t, int64(1), shared[0].ID)
	assert.True(t, shared[0].Editable)
}

func TestGetRecords_UnknownOwnerFallsBackToAggregate(t *testing.T) {
	records := &infrastructure.MockRecordRepository{
		Records: []domain.FinancialRecord{
			{ID: 1, OwnerID: "user-1", Kind: "expense"},
			{ID: 2, OwnerID: "somebody", Kind: "expense"},
		},
	}
	service := newRecordServiceFixture(&infrastructure.MockSharingRepository{}, &infrastructure.MockSourceRepository{}, records)

	shared, err := service.GetRecords("user-1", "somebody", domain.RecordFilter{})
	assert.NoError(t, err)
	assert.Len(t, shared, 1)
	assert.Equal(t, int64(1), shared[0].ID)
}

func TestUpdateRecord_OwnerShortcut(t *testing.T) {
	records := &infrastructure.MockRecordRepository{
		Records: []domain.FinancialRecord{{ID: 1, OwnerID: "owner-1", Kind: "expense", Amount: 10}},
	}
	service := newRecordServiceFixture(&infrastructure.MockSharingRepository{}, &infrastructure.MockSourceRepository{}, records)

	err := service.UpdateRecord("owner-1", domain.FinancialRecord{ID: 1, Kind: "expense", Amount: 25})
	assert.NoError(t, err)
	assert.Len(t, records.Updated, 1)
	assert.Equal(t, "owner-1", records.Updated[0].OwnerID)
}

func TestUpdateRecord_InvisibleLooksLikeMissing(t *testing.T) {
	records := &infrastructure.MockRecordRepository{
		Records: []domain.FinancialRecord{{ID: 1, OwnerID: "owner-1", Kind: "expense"}},
	}
	service := newRecordServiceFixture(&infrastructure.MockSharingRepository{}, &infrastructure.MockSourceRepository{}, records)

	err := service.UpdateRecord("stranger", domain.FinancialRecord{ID: 1, Kind: "expense"})
	assert.ErrorIs(t, err, financeErrors.ErrRecordNotFound,
		"no grant means not-found, never forbidden, so existence is not leaked")
}

func TestUpdateRecord_ReadOnlyGrantForbidden(t *testing.T) {
	grants := &infrastructure.MockSharingRepository{
		Grants: []domain.SharingGrant{
			{OwnerID: "owner-1", RecipientID: "recipient-2", PermissionLevel: "read"},
		},
	}
	records := &infrastructure.MockRecordRepository{
		Records: []domain.FinancialRecord{{ID: 1, OwnerID: "owner-1", Kind: "expense"}},
	}
	service := newRecordServiceFixture(grants, &infrastructure.MockSourceRepository{}, records)

	err := service.UpdateRecord("recipient-2", domain.FinancialRecord{ID: 1, Kind: "expense"})
	assert.ErrorIs(t, err, financeErrors.ErrForbidden)
	assert.Empty(t, records.Updated)
}

func TestUpdateRecord_RetargetOutsideScopeForbidden(t *testing.T) {
	grants := &infrastructure.MockSharingRepository{
		Grants: []domain.SharingGrant{
			{OwnerID: "owner-1", RecipientID: "recipient-2", PermissionLevel: "write", Scope: strPtr(`[7]`)},
		},
	}
	sources := &infrastructure.MockSourceRepository{
		Sources: []domain.Source{
			{ID: 7, OwnerID: "owner-1", Name: "Salary"},
			{ID: 9, OwnerID: "owner-1", Name: "Cash"},
		},
	}
	records := &infrastructure.MockRecordRepository{
		Records: []domain.FinancialRecord{{ID: 1, OwnerID: "owner-1", Kind: "expense", SourceID: int64Ptr(7)}},
	}
	service := newRecordServiceFixture(grants, sources, records)

	// Moving the record's linkage out of the grant's scope is rejected
	// before the write is applied.
	err := service.UpdateRecord("recipient-2", domain.FinancialRecord{ID: 1, Kind: "expense", SourceID: int64Ptr(9)})
	assert.ErrorIs(t, err, financeErrors.ErrForbidden)
	assert.Empty(t, records.Updated)

	// Staying inside scope is fine.
	err = service.UpdateRecord("recipient-2", domain.FinancialRecord{ID: 1, Kind: "expense", SourceID: int64Ptr(7), Amount: 12})
	assert.NoError(t, err)
	assert.Len(t, records.Updated, 1)
}

func TestDeleteRecord_Gating(t *testing.T) {
	grants := &infrastructure.MockSharingRepository{
		Grants: []domain.SharingGrant{
			{OwnerID: "owner-1", RecipientID: "reader", PermissionLevel: "read"},
			{OwnerID: "owner-1", RecipientID: "writer", PermissionLevel: "write"},
		},
	}
	records := &infrastructure.MockRecordRepository{
		Records: []domain.FinancialRecord{{ID: 1, OwnerID: "owner-1", Kind: "expense"}},
	}
	service := newRecordServiceFixture(grants, &infrastructure.MockSourceRepository{}, records)

	assert.ErrorIs(t, service.DeleteRecord("stranger", 1), financeErrors.ErrRecordNotFound)
	assert.ErrorIs(t, service.DeleteRecord("reader", 1), financeErrors.ErrForbidden)
	assert.NoError(t, service.DeleteRecord("writer", 1))
	assert.Equal(t, []int64{1}, records.Deleted)
}

func TestCreateRecord_ValidatesLinkageOwnership(t *testing.T) {
	sources := &infrastructure.MockSourceRepository{
		Sources: []domain.Source{{ID: 7, OwnerID: "owner-1", Name: "Salary"}},
	}
	records := &infrastructure.MockRecordRepository{}
	service := newRecordServiceFixture(&infrastructure.MockSharingRepository{}, sources, records)

	err := service.CreateRecord(&domain.FinancialRecord{OwnerID: "owner-1", Kind: "expense", SourceID: int64Ptr(7)})
	assert.NoError(t, err)

	err = service.CreateRecord(&domain.FinancialRecord{OwnerID: "owner-2", Kind: "expense", SourceID: int64Ptr(7)})
	assert.Equal(t, financeErrors.ErrInvalidSource, err, "a source owned by someone else is rejected")
}
