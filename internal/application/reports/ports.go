package reports

import (
	"context"

	"github.com/ramzib/dukan-pos/internal/application/dto"
)

// SummaryCache cache court-terme du résumé dashboard (Redis ou no-op).
// Un échec de cache ne doit jamais faire échouer le rapport: les
// implémentations renvoient (nil, false, err) et l'appelant recalcule.
type SummaryCache interface {
	GetSummary(ctx context.Context, userID string) (*dto.DashboardSummaryDTO, bool, error)
	SetSummary(ctx context.Context, userID string, summary *dto.DashboardSummaryDTO) error
	Invalidate(ctx context.Context, userID string) error
}
