// Package reporting contient l'agrégation des rapports de ventes (fonctions pures).
//
// Toutes les fonctions opèrent sur un instantané déjà filtré par période: le
// filtrage par dates est la responsabilité de l'appelant. Un instantané vide
// donne des statistiques à zéro et des listes vides, jamais une erreur.
package reporting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ramzib/dukan-pos/internal/domain/entity"
)

// Period période d'un rapport.
type Period string

// Périodes supportées.
const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// DefaultTopProducts taille du classement produits par défaut.
const DefaultTopProducts = 5

var hundred = decimal.NewFromInt(100)

// Stats indicateurs de synthèse d'une période.
type Stats struct {
	TotalRevenue  decimal.Decimal // somme des totaux de ventes
	TotalSales    int             // nombre de ventes
	AverageBasket decimal.Decimal // TotalRevenue / TotalSales, 0 sans vente
	AverageMargin decimal.Decimal // (revenue - coût) / revenue × 100, borné à [0, 100]
}

// DailyPoint point de la série journalière (chiffre d'affaires et nombre de ventes).
type DailyPoint struct {
	Date    time.Time // minuit local du jour
	Revenue decimal.Decimal
	Count   int
}

// TopProduct ligne du classement des produits les plus vendus.
// Le regroupement se fait sur le nom figé à la vente, pas sur le produit vivant.
type TopProduct struct {
	ProductName string
	Quantity    int             // clé de classement (décroissant)
	Revenue     decimal.Decimal // somme des sous-totaux
}

// ComputeStats calcule les KPIs sur l'instantané de ventes.
// purchasePrices associe chaque ID produit à son prix d'achat unitaire pour le
// coût des lignes (coût = quantité × prix d'achat). Une ligne sans produit lié
// ou sans prix d'achat connu compte pour un coût nul.
func ComputeStats(sales []entity.Sale, purchasePrices map[string]decimal.Decimal) Stats {
	stats := Stats{
		TotalRevenue:  decimal.Zero,
		AverageBasket: decimal.Zero,
		AverageMargin: decimal.Zero,
	}

	var totalCost decimal.Decimal
	for i := range sales {
		s := &sales[i]
		stats.TotalRevenue = stats.TotalRevenue.Add(s.TotalAmount)
		stats.TotalSales++
		for j := range s.Items {
			it := &s.Items[j]
			if it.ProductID == nil {
				continue
			}
			price, ok := purchasePrices[*it.ProductID]
			if !ok {
				continue
			}
			totalCost = totalCost.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}

	if stats.TotalSales == 0 {
		return stats
	}
	stats.AverageBasket = stats.TotalRevenue.Div(decimal.NewFromInt(int64(stats.TotalSales)))

	// Garde anti division par zéro: marge nulle sans chiffre d'affaires.
	if stats.TotalRevenue.IsPositive() {
		margin := stats.TotalRevenue.Sub(totalCost).Div(stats.TotalRevenue).Mul(hundred)
		stats.AverageMargin = clampPercent(margin)
	}
	return stats
}

// ComputeDailySeries regroupe les ventes par jour calendaire local.
//
// Pour la période week, la série contient toujours exactement 7 points, un par
// jour de la semaine sélectionnée dans l'ordre calendaire à partir de
// rangeStart (lundi), avec des zéros pour les jours sans vente. Pour month et
// year, seuls les jours ayant au moins une vente apparaissent, triés par date
// croissante.
func ComputeDailySeries(sales []entity.Sale, period Period, rangeStart, rangeEnd time.Time) []DailyPoint {
	byDay := make(map[string]*DailyPoint)
	for i := range sales {
		s := &sales[i]
		day := midnight(s.CreatedAt)
		key := day.Format("2006-01-02")
		pt, ok := byDay[key]
		if !ok {
			pt = &DailyPoint{Date: day, Revenue: decimal.Zero}
			byDay[key] = pt
		}
		pt.Revenue = pt.Revenue.Add(s.TotalAmount)
		pt.Count++
	}

	if period == PeriodWeek {
		// Les trous ne sont pas omis: 7 points zéro-remplis, lundi en tête.
		series := make([]DailyPoint, 0, 7)
		day := midnight(rangeStart)
		for i := 0; i < 7; i++ {
			if pt, ok := byDay[day.Format("2006-01-02")]; ok {
				series = append(series, *pt)
			} else {
				series = append(series, DailyPoint{Date: day, Revenue: decimal.Zero})
			}
			day = day.AddDate(0, 0, 1)
		}
		return series
	}

	series := make([]DailyPoint, 0, len(byDay))
	for _, pt := range byDay {
		series = append(series, *pt)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series
}

// ComputeTopProducts classe les lignes de vente par nom de produit: quantité
// cumulée décroissante, égalités départagées par ordre de première apparition
// dans l'instantané (tri stable). Le résultat est tronqué à limit (5 si <= 0).
func ComputeTopProducts(items []entity.SaleItem, limit int) []TopProduct {
	if limit <= 0 {
		limit = DefaultTopProducts
	}

	index := make(map[string]int) // nom → position dans ranked
	ranked := make([]TopProduct, 0)
	for i := range items {
		it := &items[i]
		pos, ok := index[it.ProductName]
		if !ok {
			pos = len(ranked)
			index[it.ProductName] = pos
			ranked = append(ranked, TopProduct{ProductName: it.ProductName, Revenue: decimal.Zero})
		}
		ranked[pos].Quantity += it.Quantity
		ranked[pos].Revenue = ranked[pos].Revenue.Add(it.Subtotal)
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Quantity > ranked[j].Quantity })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// PeriodRange résout une période et une date de référence en bornes [start, end]
// locales incluses: week → lundi 00:00 au dimanche 23:59:59 de la semaine de ref;
// month → du 1er au dernier jour du mois; year → année civile complète.
func PeriodRange(period Period, ref time.Time) (start, end time.Time) {
	loc := ref.Location()
	switch period {
	case PeriodWeek:
		// time.Weekday place dimanche à 0; on ramène lundi en tête de semaine.
		offset := (int(ref.Weekday()) + 6) % 7
		start = midnight(ref).AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	case PeriodYear:
		start = time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	default: // month
		start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	}
	return start, end
}

func clampPercent(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(hundred) {
		return hundred
	}
	return d
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
