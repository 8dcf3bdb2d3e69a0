package alerts_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramzib/dukan-pos/internal/application/alerts"
	"github.com/ramzib/dukan-pos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en mémoire
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	snapshot    []entity.Product
	snapshotErr error
}

func (f *fakeProductRepo) Create(*entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) GetByUserAndBarcode(string, string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListByUser(string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(*entity.Product) error  { return nil }
func (f *fakeProductRepo) Delete(string) error           { return nil }
func (f *fakeProductRepo) AdjustStock(string, int) error { return nil }
func (f *fakeProductRepo) Snapshot(context.Context, string) ([]entity.Product, error) {
	return f.snapshot, f.snapshotErr
}
func (f *fakeProductRepo) PurchasePrices(context.Context, string) (map[string]decimal.Decimal, error) {
	return nil, nil
}

type fakeCustomerRepo struct {
	snapshot    []entity.Customer
	snapshotErr error
}

func (f *fakeCustomerRepo) Create(*entity.Customer) error { return nil }
func (f *fakeCustomerRepo) GetByID(string) (*entity.Customer, error) {
	return nil, nil
}
func (f *fakeCustomerRepo) ListByUser(string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}
func (f *fakeCustomerRepo) Update(*entity.Customer) error              { return nil }
func (f *fakeCustomerRepo) Delete(string) error                        { return nil }
func (f *fakeCustomerRepo) AdjustDebt(string, decimal.Decimal) error   { return nil }
func (f *fakeCustomerRepo) Snapshot(context.Context, string) ([]entity.Customer, error) {
	return f.snapshot, f.snapshotErr
}

// fakeAlertRepo journalise l'ordre des opérations pour vérifier purge-avant-insertion.
type fakeAlertRepo struct {
	stored    []entity.Alert
	ops       []string
	deleteErr error
	insertErr error
}

func (f *fakeAlertRepo) DeleteByUser(_ context.Context, userID string) error {
	f.ops = append(f.ops, "delete")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.stored = nil
	return nil
}

func (f *fakeAlertRepo) BulkInsert(_ context.Context, list []entity.Alert) error {
	f.ops = append(f.ops, "insert")
	if f.insertErr != nil {
		return f.insertErr
	}
	f.stored = append(f.stored, list...)
	return nil
}

func (f *fakeAlertRepo) ListByUser(context.Context, string, bool) ([]entity.Alert, error) {
	return f.stored, nil
}
func (f *fakeAlertRepo) MarkRead(context.Context, string, string) error { return nil }
func (f *fakeAlertRepo) MarkAllRead(context.Context, string) error      { return nil }
func (f *fakeAlertRepo) Delete(context.Context, string, string) error   { return nil }

type fakeNotifier struct {
	notified []entity.Alert
	calls    int
}

func (f *fakeNotifier) NotifyNewAlerts(_ context.Context, _ string, list []entity.Alert) {
	f.calls++
	f.notified = append(f.notified, list...)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func lowStockProduct() entity.Product {
	return entity.Product{
		ID:                  "p1",
		UserID:              "user-1",
		Name:                "Lait",
		StockQuantity:       2,
		StockAlertThreshold: 10,
	}
}

func indebtedCustomer() entity.Customer {
	return entity.Customer{
		ID:        "c1",
		UserID:    "user-1",
		Name:      "Ahmed",
		TotalDebt: decimal.NewFromInt(25000),
	}
}

func TestRefresh_RemplaceLesAlertesEtCompte(t *testing.T) {
	alertRepo := &fakeAlertRepo{
		stored: []entity.Alert{{ID: "stale", UserID: "user-1"}},
	}
	notifier := &fakeNotifier{}
	uc := alerts.NewRefreshUseCase(
		alertRepo,
		&fakeProductRepo{snapshot: []entity.Product{lowStockProduct()}},
		&fakeCustomerRepo{snapshot: []entity.Customer{indebtedCustomer()}},
		notifier,
	)

	resp, err := uc.Refresh(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Generated)
	assert.Equal(t, 1, resp.Critical, "créance > 20 000 → critique")
	assert.Equal(t, 1, resp.Warning, "stock faible → warning")
	require.Len(t, resp.Items, 2)

	// L'alerte périmée a disparu, remplacée par le nouveau lot.
	require.Len(t, alertRepo.stored, 2)
	for _, a := range alertRepo.stored {
		assert.NotEqual(t, "stale", a.ID)
		assert.Equal(t, "user-1", a.UserID)
	}

	assert.Equal(t, []string{"delete", "insert"}, alertRepo.ops, "purge avant insertion")
	assert.Equal(t, 1, notifier.calls)
	assert.Len(t, notifier.notified, 2)
}

func TestRefresh_InstantaneSain_AucuneAlerte(t *testing.T) {
	alertRepo := &fakeAlertRepo{
		stored: []entity.Alert{{ID: "stale", UserID: "user-1"}},
	}
	notifier := &fakeNotifier{}
	uc := alerts.NewRefreshUseCase(
		alertRepo,
		&fakeProductRepo{snapshot: []entity.Product{{
			ID: "p1", UserID: "user-1", Name: "Savon",
			StockQuantity: 50, StockAlertThreshold: 10,
		}}},
		&fakeCustomerRepo{},
		notifier,
	)

	resp, err := uc.Refresh(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Generated)
	assert.Empty(t, resp.Items)
	assert.Empty(t, alertRepo.stored, "la purge s'applique même sans nouvelle alerte")
	// Sans alerte, pas d'insertion ni de notification.
	assert.Equal(t, []string{"delete"}, alertRepo.ops)
	assert.Equal(t, 0, notifier.calls)
}

func TestRefresh_InstantaneProduitsEnEchec_MagasinIntact(t *testing.T) {
	alertRepo := &fakeAlertRepo{
		stored: []entity.Alert{{ID: "existing", UserID: "user-1"}},
	}
	uc := alerts.NewRefreshUseCase(
		alertRepo,
		&fakeProductRepo{snapshotErr: errors.New("connexion perdue")},
		&fakeCustomerRepo{snapshot: []entity.Customer{indebtedCustomer()}},
		nil,
	)

	_, err := uc.Refresh(context.Background(), "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instantané produits")

	// Les alertes existantes n'ont pas été touchées.
	assert.Empty(t, alertRepo.ops)
	require.Len(t, alertRepo.stored, 1)
	assert.Equal(t, "existing", alertRepo.stored[0].ID)
}

func TestRefresh_InstantaneClientsEnEchec_MagasinIntact(t *testing.T) {
	alertRepo := &fakeAlertRepo{}
	uc := alerts.NewRefreshUseCase(
		alertRepo,
		&fakeProductRepo{},
		&fakeCustomerRepo{snapshotErr: errors.New("connexion perdue")},
		nil,
	)

	_, err := uc.Refresh(context.Background(), "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instantané clients")
	assert.Empty(t, alertRepo.ops)
}

func TestRefresh_EchecInsertion_ErreurRemontee(t *testing.T) {
	// Insertion en échec après la purge: l'erreur remonte, jamais avalée.
	alertRepo := &fakeAlertRepo{insertErr: errors.New("insertion refusée")}
	uc := alerts.NewRefreshUseCase(
		alertRepo,
		&fakeProductRepo{snapshot: []entity.Product{lowStockProduct()}},
		&fakeCustomerRepo{},
		nil,
	)

	_, err := uc.Refresh(context.Background(), "user-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insertion")
	assert.Equal(t, []string{"delete", "insert"}, alertRepo.ops)
}

func TestRefresh_SansNotifier_PasDePanique(t *testing.T) {
	uc := alerts.NewRefreshUseCase(
		&fakeAlertRepo{},
		&fakeProductRepo{snapshot: []entity.Product{lowStockProduct()}},
		&fakeCustomerRepo{},
		nil,
	)

	resp, err := uc.Refresh(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Generated)
}
