package alerts

import (
	"context"

	"github.com/ramzib/dukan-pos/internal/application/dto"
	"github.com/ramzib/dukan-pos/internal/domain/repository"
)

// AlertUseCase actions utilisateur sur les alertes stockées. Ces mutations
// vivent entre deux régénérations; le prochain passage du moteur les écrase.
type AlertUseCase struct {
	alertRepo repository.AlertRepository
}

// NewAlertUseCase construit le cas d'usage.
func NewAlertUseCase(alertRepo repository.AlertRepository) *AlertUseCase {
	return &AlertUseCase{alertRepo: alertRepo}
}

// List renvoie les alertes courantes de l'utilisateur, les plus récentes d'abord.
func (uc *AlertUseCase) List(ctx context.Context, userID string, onlyUnread bool) (*dto.AlertListResponse, error) {
	list, err := uc.alertRepo.ListByUser(ctx, userID, onlyUnread)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for i := range list {
		items = append(items, toAlertResponse(&list[i]))
	}
	return &dto.AlertListResponse{Items: items, Total: len(items)}, nil
}

// MarkRead marque une alerte de l'utilisateur comme lue.
func (uc *AlertUseCase) MarkRead(ctx context.Context, userID, id string) error {
	return uc.alertRepo.MarkRead(ctx, userID, id)
}

// MarkAllRead marque toutes les alertes de l'utilisateur comme lues.
func (uc *AlertUseCase) MarkAllRead(ctx context.Context, userID string) error {
	return uc.alertRepo.MarkAllRead(ctx, userID)
}

// Delete supprime une alerte de l'utilisateur.
func (uc *AlertUseCase) Delete(ctx context.Context, userID, id string) error {
	return uc.alertRepo.Delete(ctx, userID, id)
}
