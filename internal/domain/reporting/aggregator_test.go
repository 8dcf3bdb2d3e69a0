package reporting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramzib/dukan-pos/internal/domain/entity"
	"github.com/ramzib/dukan-pos/internal/domain/reporting"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sale(createdAt time.Time, total string, items ...entity.SaleItem) entity.Sale {
	return entity.Sale{
		ID:          "sale-" + createdAt.Format("20060102-150405"),
		UserID:      "user-1",
		TotalAmount: d(total),
		CreatedAt:   createdAt,
		Items:       items,
	}
}

func item(productID, name string, qty int, unitPrice string) entity.SaleItem {
	it := entity.SaleItem{
		ProductName: name,
		Quantity:    qty,
		UnitPrice:   d(unitPrice),
		Subtotal:    d(unitPrice).Mul(decimal.NewFromInt(int64(qty))),
	}
	if productID != "" {
		it.ProductID = &productID
	}
	return it
}

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 10, 30, 0, 0, time.UTC)
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeStats
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeStats_InstantaneVide_ToutAZero(t *testing.T) {
	stats := reporting.ComputeStats(nil, nil)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.Equal(t, 0, stats.TotalSales)
	assert.True(t, stats.AverageBasket.IsZero())
	assert.True(t, stats.AverageMargin.IsZero())
}

func TestComputeStats_RevenusEtPanierMoyen(t *testing.T) {
	sales := []entity.Sale{
		sale(day(2026, 8, 10), "600", item("p1", "Lait", 6, "100")),
		sale(day(2026, 8, 11), "400", item("p2", "Sucre", 4, "100")),
	}
	prices := map[string]decimal.Decimal{"p1": d("70"), "p2": d("70")}

	stats := reporting.ComputeStats(sales, prices)
	assert.True(t, stats.TotalRevenue.Equal(d("1000")), "revenue = %s", stats.TotalRevenue)
	assert.Equal(t, 2, stats.TotalSales)
	assert.True(t, stats.AverageBasket.Equal(d("500")), "basket = %s", stats.AverageBasket)
	// Coût = (6+4) × 70 = 700 → marge = (1000-700)/1000 × 100 = 30%.
	assert.True(t, stats.AverageMargin.Equal(d("30")), "margin = %s", stats.AverageMargin)
}

func TestComputeStats_LigneSansProduitLie_CoutNul(t *testing.T) {
	// Vente libre (produit hors catalogue): compte dans le revenue, coût nul.
	sales := []entity.Sale{
		sale(day(2026, 8, 10), "500", item("", "Divers", 5, "100")),
	}
	stats := reporting.ComputeStats(sales, map[string]decimal.Decimal{})
	assert.True(t, stats.TotalRevenue.Equal(d("500")))
	assert.True(t, stats.AverageMargin.Equal(d("100")), "coût nul → marge 100%%")
}

func TestComputeStats_PrixAchatInconnu_CoutNul(t *testing.T) {
	sales := []entity.Sale{
		sale(day(2026, 8, 10), "500", item("p-supprime", "Ancien", 5, "100")),
	}
	stats := reporting.ComputeStats(sales, map[string]decimal.Decimal{})
	assert.True(t, stats.AverageMargin.Equal(d("100")))
}

func TestComputeStats_MargeNegative_BorneeAZero(t *testing.T) {
	// Vendu à perte: coût 200 pour 100 de revenue → marge brute -100%, bornée à 0.
	sales := []entity.Sale{
		sale(day(2026, 8, 10), "100", item("p1", "Promo", 1, "100")),
	}
	stats := reporting.ComputeStats(sales, map[string]decimal.Decimal{"p1": d("200")})
	assert.True(t, stats.AverageMargin.IsZero())
}

func TestComputeStats_RevenueZero_MargeZero(t *testing.T) {
	// Total nul (vente offerte): pas de division par zéro.
	sales := []entity.Sale{
		sale(day(2026, 8, 10), "0", item("p1", "Cadeau", 1, "0")),
	}
	stats := reporting.ComputeStats(sales, map[string]decimal.Decimal{"p1": d("50")})
	assert.Equal(t, 1, stats.TotalSales)
	assert.True(t, stats.AverageMargin.IsZero())
	assert.True(t, stats.AverageBasket.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeDailySeries
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeDailySeries_Semaine_ToujoursSeptPoints(t *testing.T) {
	// Semaine du lundi 24 au dimanche 30 août 2026; ventes mardi et vendredi.
	start, end := reporting.PeriodRange(reporting.PeriodWeek, day(2026, 8, 26))
	sales := []entity.Sale{
		sale(day(2026, 8, 25), "300"),
		sale(day(2026, 8, 25), "200"),
		sale(day(2026, 8, 28), "150"),
	}

	series := reporting.ComputeDailySeries(sales, reporting.PeriodWeek, start, end)
	require.Len(t, series, 7)

	// Lundi en tête, jours zéro-remplis.
	assert.Equal(t, time.Monday, series[0].Date.Weekday())
	assert.True(t, series[0].Revenue.IsZero())
	assert.Equal(t, 0, series[0].Count)

	// Mardi: deux ventes cumulées.
	assert.True(t, series[1].Revenue.Equal(d("500")))
	assert.Equal(t, 2, series[1].Count)

	// Vendredi.
	assert.True(t, series[4].Revenue.Equal(d("150")))
	assert.Equal(t, 1, series[4].Count)

	// Dimanche ferme la série.
	assert.Equal(t, time.Sunday, series[6].Date.Weekday())
}

func TestComputeDailySeries_SemaineSansVente_SeptZeros(t *testing.T) {
	start, end := reporting.PeriodRange(reporting.PeriodWeek, day(2026, 8, 26))
	series := reporting.ComputeDailySeries(nil, reporting.PeriodWeek, start, end)
	require.Len(t, series, 7)
	for _, pt := range series {
		assert.True(t, pt.Revenue.IsZero())
		assert.Equal(t, 0, pt.Count)
	}
}

func TestComputeDailySeries_Mois_SeulsJoursAvecVentes(t *testing.T) {
	start, end := reporting.PeriodRange(reporting.PeriodMonth, day(2026, 8, 15))
	sales := []entity.Sale{
		sale(day(2026, 8, 20), "100"),
		sale(day(2026, 8, 3), "50"),
		sale(day(2026, 8, 20), "200"),
	}

	series := reporting.ComputeDailySeries(sales, reporting.PeriodMonth, start, end)
	require.Len(t, series, 2, "seuls les jours avec au moins une vente apparaissent")
	assert.Equal(t, 3, series[0].Date.Day(), "tri par date croissante")
	assert.Equal(t, 20, series[1].Date.Day())
	assert.True(t, series[1].Revenue.Equal(d("300")))
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeTopProducts
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeTopProducts_ClassementParQuantite(t *testing.T) {
	items := []entity.SaleItem{
		item("p1", "Lait", 3, "100"),
		item("p2", "Sucre", 10, "90"),
		item("p1", "Lait", 4, "100"),
	}

	top := reporting.ComputeTopProducts(items, 5)
	require.Len(t, top, 2)
	assert.Equal(t, "Sucre", top[0].ProductName)
	assert.Equal(t, 10, top[0].Quantity)
	assert.Equal(t, "Lait", top[1].ProductName)
	assert.Equal(t, 7, top[1].Quantity)
	assert.True(t, top[1].Revenue.Equal(d("700")))
}

func TestComputeTopProducts_EgaliteDepartageeParPremiereApparition(t *testing.T) {
	items := []entity.SaleItem{
		item("p1", "Café", 5, "300"),
		item("p2", "Thé", 5, "200"),
	}
	top := reporting.ComputeTopProducts(items, 5)
	require.Len(t, top, 2)
	assert.Equal(t, "Café", top[0].ProductName, "tri stable: première apparition d'abord")
	assert.Equal(t, "Thé", top[1].ProductName)
}

func TestComputeTopProducts_TronqueALaLimite(t *testing.T) {
	items := []entity.SaleItem{
		item("p1", "A", 5, "10"),
		item("p2", "B", 4, "10"),
		item("p3", "C", 3, "10"),
	}
	top := reporting.ComputeTopProducts(items, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "A", top[0].ProductName)
	assert.Equal(t, "B", top[1].ProductName)
}

func TestComputeTopProducts_LimiteInvalide_RetombeSurCinq(t *testing.T) {
	items := make([]entity.SaleItem, 0, 8)
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	for i, n := range names {
		items = append(items, item("p", n, len(names)-i, "10"))
	}
	top := reporting.ComputeTopProducts(items, 0)
	assert.Len(t, top, 5)
}

func TestComputeTopProducts_RegroupementParNomFige(t *testing.T) {
	// Même nom figé, produits liés différents: une seule ligne au classement.
	items := []entity.SaleItem{
		item("p1", "Lait", 2, "100"),
		item("", "Lait", 3, "100"),
	}
	top := reporting.ComputeTopProducts(items, 5)
	require.Len(t, top, 1)
	assert.Equal(t, 5, top[0].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// PeriodRange
// ──────────────────────────────────────────────────────────────────────────────

func TestPeriodRange_Semaine_LundiAuDimanche(t *testing.T) {
	// Mercredi 26 août 2026 → semaine du lundi 24 au dimanche 30.
	start, end := reporting.PeriodRange(reporting.PeriodWeek, day(2026, 8, 26))
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, 24, start.Day())
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, time.Sunday, end.Weekday())
	assert.Equal(t, 30, end.Day())
}

func TestPeriodRange_Semaine_RefUnDimanche(t *testing.T) {
	// Dimanche appartient à la semaine commencée le lundi précédent.
	start, _ := reporting.PeriodRange(reporting.PeriodWeek, day(2026, 8, 30))
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, 24, start.Day())
}

func TestPeriodRange_Mois(t *testing.T) {
	start, end := reporting.PeriodRange(reporting.PeriodMonth, day(2026, 2, 15))
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, time.February, start.Month())
	assert.Equal(t, 28, end.Day(), "février 2026 compte 28 jours")
	assert.Equal(t, 23, end.Hour())
}

func TestPeriodRange_Annee(t *testing.T) {
	start, end := reporting.PeriodRange(reporting.PeriodYear, day(2026, 8, 26))
	assert.Equal(t, time.January, start.Month())
	assert.Equal(t, 1, start.Day())
	assert.Equal(t, time.December, end.Month())
	assert.Equal(t, 31, end.Day())
}
