package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ramzib/dukan-pos/internal/application/dto"
	"github.com/ramzib/dukan-pos/internal/application/reports"
	"github.com/ramzib/dukan-pos/internal/domain"
)

// ReportHandler gère les requêtes HTTP de reporting (protégé, owner seulement).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construit le handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// GetReport godoc
// @Summary      Rapport de période
// @Description  KPIs (chiffre d'affaires, nombre de ventes, panier moyen, marge
// @Description  moyenne), série journalière et top produits pour la période demandée.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "week | month | year"  default(month)
// @Param        date    query  string  false  "Date de référence (YYYY-MM-DD), défaut: aujourd'hui"
// @Param        top_n   query  int     false  "Taille du top produits"  default(5)
// @Success      200     {object}  dto.ReportDTO
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	req := dto.ReportRequest{
		Period: c.Query("period"),
		Date:   c.Query("date"),
		TopN:   c.QueryInt("top_n", 0),
	}
	out, err := h.uc.GetReport(c.UserContext(), GetUserID(c), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period ∈ {week, month, year}, date au format YYYY-MM-DD"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetDashboardSummary godoc
// @Summary      Résumé du dashboard
// @Description  Chiffres du jour et du mois en cours, top produits du mois.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *ReportHandler) GetDashboardSummary(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboardSummary(c.UserContext(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
