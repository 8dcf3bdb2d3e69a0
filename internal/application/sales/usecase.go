package sales

import (
	"context"
	"time"

	"github.com/ramzib/dukan-pos/internal/application/dto"
	"github.com/ramzib/dukan-pos/internal/domain/repository"
)

// SaleUseCase lectures sur l'historique des ventes.
type SaleUseCase struct {
	saleRepo repository.SaleRepository
}

// NewSaleUseCase construit le cas d'usage.
func NewSaleUseCase(saleRepo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{saleRepo: saleRepo}
}

// GetByID renvoie une vente avec ses lignes, nil si absente ou d'un autre propriétaire.
func (uc *SaleUseCase) GetByID(ctx context.Context, userID, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.UserID != userID {
		return nil, nil
	}
	return toSaleResponse(sale), nil
}

// ListByRange renvoie les ventes du propriétaire sur [start, end].
func (uc *SaleUseCase) ListByRange(ctx context.Context, userID string, start, end time.Time) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.ListByUserAndRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for i := range list {
		items = append(items, *toSaleResponse(&list[i]))
	}
	return &dto.SaleListResponse{Items: items, Total: len(items)}, nil
}
