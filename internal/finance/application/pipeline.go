package application

import (
	"github.com/IT-BAER/finx-sub002/internal/finance/domain"
	"github.com/IT-BAER/finx-sub002/internal/metrics"
)

// PermissionLoaderInterface is what the pipeline needs from the meta loader.
type PermissionLoaderInterface interface {
	Load(ownerID, requesterID string) (domain.PermissionMeta, error)
}

// VisibilityPipeline filters a mixed-owner record slice down to what the
// requester may see. Permission meta is loaded at most once per distinct
// owner per batch, so the I/O cost is bounded by the number of owners, not
// the number of records.
type VisibilityPipeline struct {
	loader PermissionLoaderInterface
}

func NewVisibilityPipeline(loader PermissionLoaderInterface) *VisibilityPipeline {
	return &VisibilityPipeline{loader: loader}
}

// Filter is a stable filter: kept records stay in input order. Callers
// wanting chronological output must sort before or after filtering.
func (p *VisibilityPipeline) Filter(records []domain.FinancialRecord, requesterID string) ([]domain.SharedRecord, error) {
	metaByOwner := make(map[string]domain.PermissionMeta)

	shared := make([]domain.SharedRecord, 0, len(records))
	for _, record := range records {
		meta, ok := metaByOwner[record.OwnerID]
		if !ok {
			var err error
			meta, err = p.loader.Load(record.OwnerID, requesterID)
			if err != nil {
				return nil, err
			}
			metaByOwner[record.OwnerID] = meta
		}

		visibility := domain.EvaluateVisibility(record, requesterID, meta)
		if !visibility.Visible {
			metrics.VisibilityDecisions.WithLabelValues("hidden").Inc()
			continue
		}
		metrics.VisibilityDecisions.WithLabelValues("visible").Inc()
		shared = append(shared, domain.SharedRecord{
			FinancialRecord: record,
			Editable:        visibility.Editable,
		})
	}
	return shared, nil
}
