// Package reports contient les cas d'usage de reporting: rapport de période
// (KPIs, série journalière, top produits) et résumé dashboard.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ramzib/dukan-pos/internal/application/dto"
	"github.com/ramzib/dukan-pos/internal/domain"
	"github.com/ramzib/dukan-pos/internal/domain/entity"
	"github.com/ramzib/dukan-pos/internal/domain/reporting"
	"github.com/ramzib/dukan-pos/internal/domain/repository"
	"github.com/ramzib/dukan-pos/pkg/logger"
)

const maxTopProducts = 50

// ReportUseCase résout la période, charge l'instantané de ventes et délègue
// toute l'agrégation aux fonctions pures du package reporting.
type ReportUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	cache       SummaryCache
	log         *logger.Logger
}

// NewReportUseCase construit le cas d'usage. cache peut être le no-op.
func NewReportUseCase(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	cache SummaryCache,
	log *logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{saleRepo: saleRepo, productRepo: productRepo, cache: cache, log: log}
}

// GetReport construit le rapport complet d'une période (week | month | year).
func (uc *ReportUseCase) GetReport(ctx context.Context, userID string, req dto.ReportRequest) (*dto.ReportDTO, error) {
	period, ref, err := parseRequest(req)
	if err != nil {
		return nil, err
	}
	topN := req.TopN
	if topN <= 0 {
		topN = reporting.DefaultTopProducts
	}
	if topN > maxTopProducts {
		topN = maxTopProducts
	}

	start, end := reporting.PeriodRange(period, ref)

	sales, prices, err := uc.loadSnapshot(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	stats := reporting.ComputeStats(sales, prices)
	series := reporting.ComputeDailySeries(sales, period, start, end)
	top := reporting.ComputeTopProducts(flattenItems(sales), topN)

	return &dto.ReportDTO{
		Period: dto.PeriodDTO{
			Kind:      string(period),
			StartDate: start.Format("2006-01-02"),
			EndDate:   end.Format("2006-01-02"),
		},
		Stats:       toStatsDTO(stats),
		DailySeries: toSeriesDTO(series),
		TopProducts: toTopDTO(top),
	}, nil
}

// GetDashboardSummary renvoie les KPIs du jour et du mois en cours, top
// produits du mois inclus. Le résultat passe par le cache court-terme; un
// cache indisponible est logué puis ignoré.
func (uc *ReportUseCase) GetDashboardSummary(ctx context.Context, userID string) (*dto.DashboardSummaryDTO, error) {
	if cached, ok, err := uc.cache.GetSummary(ctx, userID); err != nil {
		uc.log.Warn().Err(err).Msg("cache dashboard indisponible en lecture")
	} else if ok {
		return cached, nil
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart, monthEnd := reporting.PeriodRange(reporting.PeriodMonth, now)

	// ── Trois lectures indépendantes en parallèle ────────────────────────────
	type salesResult struct {
		rows []entity.Sale
		err  error
	}
	type pricesResult struct {
		prices map[string]decimal.Decimal
		err    error
	}

	todayCh := make(chan salesResult, 1)
	monthCh := make(chan salesResult, 1)
	pricesCh := make(chan pricesResult, 1)

	go func() {
		rows, err := uc.saleRepo.ListByUserAndRange(ctx, userID, todayStart, todayEnd)
		todayCh <- salesResult{rows, err}
	}()
	go func() {
		rows, err := uc.saleRepo.ListByUserAndRange(ctx, userID, monthStart, monthEnd)
		monthCh <- salesResult{rows, err}
	}()
	go func() {
		prices, err := uc.productRepo.PurchasePrices(ctx, userID)
		pricesCh <- pricesResult{prices, err}
	}()

	today := <-todayCh
	month := <-monthCh
	prices := <-pricesCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventes du jour: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ventes du mois: %w", month.err)
	}
	if prices.err != nil {
		return nil, fmt.Errorf("dashboard: prix d'achat: %w", prices.err)
	}

	todayStats := reporting.ComputeStats(today.rows, prices.prices)
	monthStats := reporting.ComputeStats(month.rows, prices.prices)
	top := reporting.ComputeTopProducts(flattenItems(month.rows), reporting.DefaultTopProducts)

	summary := &dto.DashboardSummaryDTO{
		TodayRevenue: todayStats.TotalRevenue.Round(2),
		TodaySales:   todayStats.TotalSales,
		MonthRevenue: monthStats.TotalRevenue.Round(2),
		MonthSales:   monthStats.TotalSales,
		MonthMargin:  monthStats.AverageMargin.Round(2),
		TopProducts:  toTopDTO(top),
		DateLabel:    monthLabel(now),
	}

	if err := uc.cache.SetSummary(ctx, userID, summary); err != nil {
		uc.log.Warn().Err(err).Msg("cache dashboard indisponible en écriture")
	}
	return summary, nil
}

// InvalidateSummary purge le résumé dashboard en cache après une écriture qui
// change les chiffres (vente enregistrée). Meilleur effort: un cache
// indisponible est logué puis ignoré.
func (uc *ReportUseCase) InvalidateSummary(ctx context.Context, userID string) {
	if err := uc.cache.Invalidate(ctx, userID); err != nil {
		uc.log.Warn().Err(err).Msg("cache dashboard indisponible en invalidation")
	}
}

// loadSnapshot charge ventes et prix d'achat en parallèle (deux lectures indépendantes).
func (uc *ReportUseCase) loadSnapshot(ctx context.Context, userID string, start, end time.Time) ([]entity.Sale, map[string]decimal.Decimal, error) {
	type salesResult struct {
		rows []entity.Sale
		err  error
	}
	type pricesResult struct {
		prices map[string]decimal.Decimal
		err    error
	}

	salesCh := make(chan salesResult, 1)
	pricesCh := make(chan pricesResult, 1)

	go func() {
		rows, err := uc.saleRepo.ListByUserAndRange(ctx, userID, start, end)
		salesCh <- salesResult{rows, err}
	}()
	go func() {
		prices, err := uc.productRepo.PurchasePrices(ctx, userID)
		pricesCh <- pricesResult{prices, err}
	}()

	sales := <-salesCh
	prices := <-pricesCh

	if sales.err != nil {
		return nil, nil, fmt.Errorf("reports: ventes: %w", sales.err)
	}
	if prices.err != nil {
		return nil, nil, fmt.Errorf("reports: prix d'achat: %w", prices.err)
	}
	return sales.rows, prices.prices, nil
}

// parseRequest valide période et date de référence. Défauts: month, aujourd'hui.
func parseRequest(req dto.ReportRequest) (reporting.Period, time.Time, error) {
	period := reporting.Period(req.Period)
	switch period {
	case "":
		period = reporting.PeriodMonth
	case reporting.PeriodWeek, reporting.PeriodMonth, reporting.PeriodYear:
	default:
		return "", time.Time{}, domain.ErrInvalidInput
	}

	ref := time.Now()
	if req.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", req.Date, ref.Location())
		if err != nil {
			return "", time.Time{}, fmt.Errorf("date invalide: %w", domain.ErrInvalidInput)
		}
		ref = parsed
	}
	return period, ref, nil
}

func flattenItems(sales []entity.Sale) []entity.SaleItem {
	var items []entity.SaleItem
	for i := range sales {
		items = append(items, sales[i].Items...)
	}
	return items
}

func toStatsDTO(s reporting.Stats) dto.ReportStatsDTO {
	return dto.ReportStatsDTO{
		TotalRevenue:  s.TotalRevenue.Round(2),
		TotalSales:    s.TotalSales,
		AverageBasket: s.AverageBasket.Round(2),
		AverageMargin: s.AverageMargin.Round(2),
	}
}

func toSeriesDTO(series []reporting.DailyPoint) []dto.DailyPointDTO {
	out := make([]dto.DailyPointDTO, 0, len(series))
	for _, pt := range series {
		out = append(out, dto.DailyPointDTO{
			Date:    pt.Date.Format("2006-01-02"),
			Revenue: pt.Revenue.Round(2),
			Count:   pt.Count,
		})
	}
	return out
}

func toTopDTO(top []reporting.TopProduct) []dto.TopProductDTO {
	out := make([]dto.TopProductDTO, 0, len(top))
	for _, tp := range top {
		out = append(out, dto.TopProductDTO{
			ProductName: tp.ProductName,
			Quantity:    tp.Quantity,
			Revenue:     tp.Revenue.Round(2),
		})
	}
	return out
}

// monthLabel renvoie une étiquette lisible du mois, ex: "Août 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Janvier", "Février", "Mars", "Avril", "Mai", "Juin",
		"Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
