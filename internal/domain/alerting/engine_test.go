package alerting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramzib/dukan-pos/internal/domain/alerting"
	"github.com/ramzib/dukan-pos/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func product(name string, qty, threshold int) entity.Product {
	return entity.Product{
		ID:                  "prod-" + name,
		UserID:              "user-1",
		Name:                name,
		StockQuantity:       qty,
		StockAlertThreshold: threshold,
	}
}

func perishable(name string, qty, threshold int, expiry time.Time) entity.Product {
	p := product(name, qty, threshold)
	p.ExpiryDate = &expiry
	return p
}

func customer(name string, debt int64) entity.Customer {
	return entity.Customer{
		ID:        "cust-" + name,
		UserID:    "user-1",
		Name:      name,
		TotalDebt: decimal.NewFromInt(debt),
	}
}

// inDays renvoie un horodatage à N*24h pile de testNow.
func inDays(n int) time.Time {
	return testNow.Add(time.Duration(n) * 24 * time.Hour)
}

func single(t *testing.T, alerts []entity.Alert) entity.Alert {
	t.Helper()
	require.Len(t, alerts, 1)
	return alerts[0]
}

// ──────────────────────────────────────────────────────────────────────────────
// Règle stock
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_StockAuDessusDuSeuil_RienAEmettre(t *testing.T) {
	alerts := alerting.Generate([]entity.Product{product("Lait", 11, 10)}, nil, testNow)
	assert.Empty(t, alerts)
}

func TestGenerate_StockEgalAuSeuil_Warning(t *testing.T) {
	a := single(t, alerting.Generate([]entity.Product{product("Lait", 10, 10)}, nil, testNow))
	assert.Equal(t, entity.AlertTypeStock, a.Type)
	assert.Equal(t, entity.SeverityWarning, a.Severity)
	assert.Equal(t, "Stock faible", a.Title)
	assert.Equal(t, "Lait - 10 unités restantes", a.Message)
	require.NotNil(t, a.ProductID)
	assert.Equal(t, "prod-Lait", *a.ProductID)
}

func TestGenerate_RuptureDeStock_Critique(t *testing.T) {
	a := single(t, alerting.Generate([]entity.Product{product("Sucre", 0, 10)}, nil, testNow))
	assert.Equal(t, entity.SeverityCritical, a.Severity)
	assert.Equal(t, "Rupture de stock", a.Title)
	assert.Equal(t, "Sucre - 0 unités restantes", a.Message)
}

func TestGenerate_SeuilZeroEtStockZero_RuptureCritique(t *testing.T) {
	// Seuil explicite à zéro: seule la rupture totale déclenche.
	a := single(t, alerting.Generate([]entity.Product{product("Pain", 0, 0)}, nil, testNow))
	assert.Equal(t, entity.SeverityCritical, a.Severity)

	alerts := alerting.Generate([]entity.Product{product("Pain", 1, 0)}, nil, testNow)
	assert.Empty(t, alerts)
}

func TestGenerate_QuantiteNegative_TraiteeCommeRupture(t *testing.T) {
	a := single(t, alerting.Generate([]entity.Product{product("Huile", -3, 10)}, nil, testNow))
	assert.Equal(t, entity.SeverityCritical, a.Severity)
	assert.Equal(t, "Huile - 0 unités restantes", a.Message)
}

func TestGenerate_SeuilNegatif_RetombeSurLeDefaut(t *testing.T) {
	// Seuil aberrant: le défaut (10) s'applique, donc qty 5 déclenche un warning.
	a := single(t, alerting.Generate([]entity.Product{product("Thé", 5, -1)}, nil, testNow))
	assert.Equal(t, entity.SeverityWarning, a.Severity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Règle péremption
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_SansDatePeremption_RienAEmettre(t *testing.T) {
	alerts := alerting.Generate([]entity.Product{product("Savon", 50, 10)}, nil, testNow)
	assert.Empty(t, alerts)
}

func TestGenerate_Perime_Critique(t *testing.T) {
	a := single(t, alerting.Generate(
		[]entity.Product{perishable("Yaourt", 50, 10, inDays(-2))}, nil, testNow))
	assert.Equal(t, entity.AlertTypeExpiry, a.Type)
	assert.Equal(t, entity.SeverityCritical, a.Severity)
	assert.Equal(t, "Produit périmé", a.Title)
	assert.Equal(t, "Yaourt - Expiré depuis 2 jour(s)", a.Message)
}

func TestGenerate_PerimeAujourdHui_Critique(t *testing.T) {
	// Échéance exactement maintenant: days = 0 → périmé.
	a := single(t, alerting.Generate(
		[]entity.Product{perishable("Crème", 50, 10, testNow)}, nil, testNow))
	assert.Equal(t, "Produit périmé", a.Title)
	assert.Equal(t, "Crème - Expiré depuis 0 jour(s)", a.Message)
}

func TestGenerate_PeremptionImminente_Critique(t *testing.T) {
	a := single(t, alerting.Generate(
		[]entity.Product{perishable("Fromage", 50, 10, inDays(2))}, nil, testNow))
	assert.Equal(t, entity.SeverityCritical, a.Severity)
	assert.Equal(t, "Péremption imminente", a.Title)
	assert.Equal(t, "Fromage - Expire dans 2 jour(s)", a.Message)
}

func TestGenerate_PeremptionProche_Warning(t *testing.T) {
	for _, days := range []int{3, 7} {
		a := single(t, alerting.Generate(
			[]entity.Product{perishable("Beurre", 50, 10, inDays(days))}, nil, testNow))
		assert.Equal(t, entity.SeverityWarning, a.Severity, "à %d jours", days)
		assert.Equal(t, "Péremption proche", a.Title)
	}
}

func TestGenerate_PeremptionAuDelaDeLHorizon_RienAEmettre(t *testing.T) {
	alerts := alerting.Generate(
		[]entity.Product{perishable("Conserve", 50, 10, inDays(8))}, nil, testNow)
	assert.Empty(t, alerts)
}

func TestGenerate_EcheanceDans36h_CompteDeuxJours(t *testing.T) {
	// Arrondi au supérieur sur la différence brute: 36h → 2 jours → imminent.
	a := single(t, alerting.Generate(
		[]entity.Product{perishable("Lben", 50, 10, testNow.Add(36 * time.Hour))}, nil, testNow))
	assert.Equal(t, "Péremption imminente", a.Title)
	assert.Equal(t, "Lben - Expire dans 2 jour(s)", a.Message)
}

func TestGenerate_RuptureEtPeremption_DeuxAlertes(t *testing.T) {
	// Les deux contrôles sont indépendants: un même produit peut émettre les deux.
	alerts := alerting.Generate(
		[]entity.Product{perishable("Jus", 0, 10, inDays(1))}, nil, testNow)
	require.Len(t, alerts, 2)
	assert.Equal(t, entity.AlertTypeStock, alerts[0].Type)
	assert.Equal(t, entity.AlertTypeExpiry, alerts[1].Type)
}

// ──────────────────────────────────────────────────────────────────────────────
// Règle créance
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_CreanceAuSeuil_RienAEmettre(t *testing.T) {
	// 10 000 exactement: strictement supérieur requis.
	alerts := alerting.Generate(nil, []entity.Customer{customer("Ahmed", 10000)}, testNow)
	assert.Empty(t, alerts)
}

func TestGenerate_CreanceJusteAuDessusDuSeuil_Warning(t *testing.T) {
	c := customer("Ahmed", 0)
	c.TotalDebt = decimal.RequireFromString("10000.01")
	a := single(t, alerting.Generate(nil, []entity.Customer{c}, testNow))
	assert.Equal(t, entity.AlertTypeCredit, a.Type)
	assert.Equal(t, entity.SeverityWarning, a.Severity)
	assert.Equal(t, "Créance élevée", a.Title)
	require.NotNil(t, a.CustomerID)
	assert.Equal(t, "cust-Ahmed", *a.CustomerID)
}

func TestGenerate_CreanceAuSeuilCritique_ResteWarning(t *testing.T) {
	// 20 000 exactement: encore warning, le critique exige strictement plus.
	a := single(t, alerting.Generate(nil, []entity.Customer{customer("Samir", 20000)}, testNow))
	assert.Equal(t, entity.SeverityWarning, a.Severity)
}

func TestGenerate_CreanceCritique_MessageFormate(t *testing.T) {
	a := single(t, alerting.Generate(nil, []entity.Customer{customer("Fatima", 25000)}, testNow))
	assert.Equal(t, entity.SeverityCritical, a.Severity)
	assert.Equal(t, "Fatima - 25,000 DA", a.Message)
}

func TestGenerate_CreanceAvecCentimes_MessageFormate(t *testing.T) {
	c := customer("Karim", 0)
	c.TotalDebt = decimal.RequireFromString("12500.50")
	a := single(t, alerting.Generate(nil, []entity.Customer{c}, testNow))
	assert.Equal(t, "Karim - 12,500.50 DA", a.Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propriétés du moteur
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_InstantaneVide_AucuneAlerte(t *testing.T) {
	assert.Empty(t, alerting.Generate(nil, nil, testNow))
}

// Deux passages sur le même instantané produisent des listes structurellement
// identiques, seuls IDs et horodatages peuvent différer.
func TestGenerate_Deterministe(t *testing.T) {
	products := []entity.Product{
		perishable("Yaourt", 0, 10, inDays(1)),
		product("Lait", 5, 10),
		product("Savon", 50, 10),
	}
	customers := []entity.Customer{
		customer("Ahmed", 15000),
		customer("Samir", 3000),
	}

	first := alerting.Generate(products, customers, testNow)
	second := alerting.Generate(products, customers, testNow)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Type, second[i].Type)
		assert.Equal(t, first[i].Severity, second[i].Severity)
		assert.Equal(t, first[i].Title, second[i].Title)
		assert.Equal(t, first[i].Message, second[i].Message)
		assert.NotEqual(t, first[i].ID, second[i].ID, "chaque alerte reçoit un ID frais")
	}
}

func TestGenerate_OrdreProduitsPuisClients(t *testing.T) {
	alerts := alerting.Generate(
		[]entity.Product{product("Lait", 2, 10)},
		[]entity.Customer{customer("Ahmed", 30000)},
		testNow,
	)
	require.Len(t, alerts, 2)
	assert.Equal(t, entity.AlertTypeStock, alerts[0].Type)
	assert.Equal(t, entity.AlertTypeCredit, alerts[1].Type)
}
