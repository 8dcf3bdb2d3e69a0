// Package alerts contient les cas d'usage autour des alertes: régénération
// complète via le moteur de domaine et actions utilisateur (lu, suppression).
package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/ramzib/dukan-pos/internal/application/dto"
	"github.com/ramzib/dukan-pos/internal/domain/alerting"
	"github.com/ramzib/dukan-pos/internal/domain/entity"
	"github.com/ramzib/dukan-pos/internal/domain/repository"
)

// Notifier consommateur aval des alertes fraîchement insérées (notification
// système, push...). Purement descendant: aucun retour vers le moteur.
type Notifier interface {
	NotifyNewAlerts(ctx context.Context, userID string, alerts []entity.Alert)
}

// RefreshUseCase régénère les alertes d'un utilisateur.
//
// Séquence: instantanés produits + clients (deux lectures indépendantes en
// parallèle) → moteur → purge des alertes existantes → insertion du nouveau
// lot. Si un instantané échoue, le moteur n'est pas invoqué et le magasin
// reste intact. La purge précède l'insertion sans transaction: une insertion
// qui échoue après la purge laisse zéro alerte jusqu'au prochain passage
// réussi — dégradation connue, remontée en erreur, jamais avalée.
type RefreshUseCase struct {
	alertRepo    repository.AlertRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	notifier     Notifier
}

// NewRefreshUseCase construit le cas d'usage. notifier peut être nil.
func NewRefreshUseCase(
	alertRepo repository.AlertRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	notifier Notifier,
) *RefreshUseCase {
	return &RefreshUseCase{
		alertRepo:    alertRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		notifier:     notifier,
	}
}

// Refresh exécute une régénération complète pour l'utilisateur.
func (uc *RefreshUseCase) Refresh(ctx context.Context, userID string) (*dto.AlertRefreshResponse, error) {
	// ── Instantanés: deux lectures indépendantes en parallèle ────────────────
	type productsResult struct {
		rows []entity.Product
		err  error
	}
	type customersResult struct {
		rows []entity.Customer
		err  error
	}

	productsCh := make(chan productsResult, 1)
	customersCh := make(chan customersResult, 1)

	go func() {
		rows, err := uc.productRepo.Snapshot(ctx, userID)
		productsCh <- productsResult{rows, err}
	}()
	go func() {
		rows, err := uc.customerRepo.Snapshot(ctx, userID)
		customersCh <- customersResult{rows, err}
	}()

	products := <-productsCh
	customers := <-customersCh

	// Instantané indisponible: on ne touche pas aux alertes existantes.
	if products.err != nil {
		return nil, fmt.Errorf("alerts: instantané produits: %w", products.err)
	}
	if customers.err != nil {
		return nil, fmt.Errorf("alerts: instantané clients: %w", customers.err)
	}

	// ── Moteur ───────────────────────────────────────────────────────────────
	generated := alerting.Generate(products.rows, customers.rows, time.Now())
	for i := range generated {
		generated[i].UserID = userID
	}

	// ── Remplacement intégral: purge puis insertion ──────────────────────────
	if err := uc.alertRepo.DeleteByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("alerts: purge: %w", err)
	}
	if len(generated) > 0 {
		if err := uc.alertRepo.BulkInsert(ctx, generated); err != nil {
			return nil, fmt.Errorf("alerts: insertion: %w", err)
		}
	}

	if uc.notifier != nil && len(generated) > 0 {
		uc.notifier.NotifyNewAlerts(ctx, userID, generated)
	}

	return buildRefreshResponse(generated), nil
}

func buildRefreshResponse(alerts []entity.Alert) *dto.AlertRefreshResponse {
	resp := &dto.AlertRefreshResponse{
		Generated: len(alerts),
		Items:     make([]dto.AlertResponse, 0, len(alerts)),
	}
	for i := range alerts {
		if alerts[i].Severity == entity.SeverityCritical {
			resp.Critical++
		} else {
			resp.Warning++
		}
		resp.Items = append(resp.Items, toAlertResponse(&alerts[i]))
	}
	return resp
}

func toAlertResponse(a *entity.Alert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:         a.ID,
		Type:       a.Type,
		Severity:   a.Severity,
		Title:      a.Title,
		Message:    a.Message,
		Read:       a.Read,
		ProductID:  a.ProductID,
		CustomerID: a.CustomerID,
		CreatedAt:  a.CreatedAt,
	}
}
