package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ramzib/dukan-pos/internal/application/dto"
	"github.com/ramzib/dukan-pos/internal/application/reports"
	"github.com/ramzib/dukan-pos/internal/application/sales"
	"github.com/ramzib/dukan-pos/internal/domain"
)

// SaleHandler gère les requêtes HTTP des ventes (protégé).
type SaleHandler struct {
	createUC *sales.CreateSaleUseCase
	uc       *sales.SaleUseCase
	reportUC *reports.ReportUseCase
}

// NewSaleHandler construit le handler.
func NewSaleHandler(createUC *sales.CreateSaleUseCase, uc *sales.SaleUseCase, reportUC *reports.ReportUseCase) *SaleHandler {
	return &SaleHandler{createUC: createUC, uc: uc, reportUC: reportUC}
}

// Create godoc
// @Summary      Enregistrer une vente
// @Description  Insère la vente et ses lignes, décrémente le stock des produits liés
// @Description  et incrémente la créance du client pour un paiement à crédit, le tout
// @Description  dans une transaction.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Lignes de la vente"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.createUC.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "au moins une ligne, quantités positives, payment_method cash ou credit"})
		case errors.Is(err, domain.ErrCustomerRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "CUSTOMER_REQUIRED", Message: "une vente à crédit exige un client"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produit ou client introuvable"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuffisant pour un des produits"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	// Les chiffres du dashboard viennent de changer.
	h.reportUC.InvalidateSummary(c.UserContext(), GetUserID(c))
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtenir une vente par ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la vente"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id requis"})
	}
	out, err := h.uc.GetByID(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "vente introuvable"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Lister les ventes sur une plage de dates
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Début (YYYY-MM-DD), défaut: aujourd'hui"
// @Param        to    query  string  false  "Fin (YYYY-MM-DD), défaut: aujourd'hui"
// @Success      200   {object}  dto.SaleListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	if s := c.Query("from"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from au format YYYY-MM-DD"})
		}
		start = t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to au format YYYY-MM-DD"})
		}
		end = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	if end.Before(start) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to antérieur à from"})
	}
	out, err := h.uc.ListByRange(c.UserContext(), GetUserID(c), start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
