package dto

import "github.com/shopspring/decimal"

// ReportRequest paramètres de GET /api/reports.
type ReportRequest struct {
	Period string `query:"period"` // week | month | year; month par défaut
	Date   string `query:"date"`   // YYYY-MM-DD, date de référence; aujourd'hui par défaut
	TopN   int    `query:"top_n"`  // taille du classement produits (défaut 5, max 50)
}

// ReportStatsDTO KPIs de la période.
type ReportStatsDTO struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalSales    int             `json:"total_sales"`
	AverageBasket decimal.Decimal `json:"average_basket"` // TotalRevenue / TotalSales
	AverageMargin decimal.Decimal `json:"average_margin"` // %, borné à [0, 100]
}

// DailyPointDTO point de la série journalière.
type DailyPointDTO struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Revenue decimal.Decimal `json:"revenue"`
	Count   int             `json:"count"`
}

// TopProductDTO ligne du classement des produits les plus vendus.
type TopProductDTO struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// ReportDTO réponse complète de GET /api/reports.
type ReportDTO struct {
	Period      PeriodDTO       `json:"period"`
	Stats       ReportStatsDTO  `json:"stats"`
	DailySeries []DailyPointDTO `json:"daily_series"`
	TopProducts []TopProductDTO `json:"top_products"`
}

// PeriodDTO bornes de la période du rapport.
type PeriodDTO struct {
	Kind      string `json:"kind"` // week | month | year
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// DashboardSummaryDTO réponse de GET /api/dashboard/summary.
// KPIs du jour et du mois en cours, plus le top produits du mois.
type DashboardSummaryDTO struct {
	TodayRevenue decimal.Decimal `json:"today_revenue"`
	TodaySales   int             `json:"today_sales"`
	MonthRevenue decimal.Decimal `json:"month_revenue"`
	MonthSales   int             `json:"month_sales"`
	MonthMargin  decimal.Decimal `json:"month_margin"` // %, borné à [0, 100]
	TopProducts  []TopProductDTO `json:"top_products"`
	DateLabel    string          `json:"date_label"` // ex: "Août 2026"
}
