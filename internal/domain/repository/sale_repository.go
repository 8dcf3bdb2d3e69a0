package repository

import (
	"context"
	"time"

	"github.com/ramzib/dukan-pos/internal/domain/entity"
)

// SaleRepository port de persistance des ventes (en-tête + lignes).
type SaleRepository interface {
	// Create insère la vente et ses lignes. S'utilise dans une transaction
	// (voir le TxRunner) pour rester cohérent avec le stock et la créance.
	Create(sale *entity.Sale) error

	GetByID(ctx context.Context, id string) (*entity.Sale, error)

	// ListByUserAndRange renvoie les ventes du propriétaire dont CreatedAt est
	// dans [start, end], lignes incluses, triées par date croissante.
	ListByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]entity.Sale, error)
}
