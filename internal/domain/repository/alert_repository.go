package repository

import (
	"context"

	"github.com/ramzib/dukan-pos/internal/domain/entity"
)

// AlertRepository port de persistance des alertes (données dérivées).
//
// La régénération est un remplacement intégral: DeleteByUser puis BulkInsert.
// La suppression précède toujours l'insertion; il n'y a pas de garantie
// transactionnelle entre les deux à ce niveau — si l'insertion échoue après la
// purge, l'utilisateur reste sans alertes jusqu'au prochain passage réussi.
type AlertRepository interface {
	DeleteByUser(ctx context.Context, userID string) error
	BulkInsert(ctx context.Context, alerts []entity.Alert) error
	ListByUser(ctx context.Context, userID string, onlyUnread bool) ([]entity.Alert, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID, id string) error
}
