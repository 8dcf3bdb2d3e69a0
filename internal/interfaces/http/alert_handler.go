package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ramzib/dukan-pos/internal/application/alerts"
	"github.com/ramzib/dukan-pos/internal/application/dto"
	"github.com/ramzib/dukan-pos/internal/domain"
)

// AlertHandler gère les requêtes HTTP des alertes (protégé).
type AlertHandler struct {
	uc        *alerts.AlertUseCase
	refreshUC *alerts.RefreshUseCase
}

// NewAlertHandler construit le handler.
func NewAlertHandler(uc *alerts.AlertUseCase, refreshUC *alerts.RefreshUseCase) *AlertHandler {
	return &AlertHandler{uc: uc, refreshUC: refreshUC}
}

// List godoc
// @Summary      Lister les alertes courantes
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        unread  query  bool  false  "Ne renvoyer que les non lues"
// @Success      200     {object}  dto.AlertListResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	onlyUnread := strings.EqualFold(c.Query("unread"), "true")
	out, err := h.uc.List(c.UserContext(), GetUserID(c), onlyUnread)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Régénérer les alertes
// @Description  Relit l'état courant du stock et des créances, recalcule toutes les
// @Description  alertes et remplace intégralement celles stockées.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertRefreshResponse
// @Router       /api/alerts/refresh [post]
func (h *AlertHandler) Refresh(c *fiber.Ctx) error {
	out, err := h.refreshUC.Refresh(c.UserContext(), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marquer une alerte comme lue
// @Tags         alerts
// @Security     Bearer
// @Param        id   path  string  true  "ID de l'alerte"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/read [patch]
func (h *AlertHandler) MarkRead(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id requis"})
	}
	if err := h.uc.MarkRead(c.UserContext(), GetUserID(c), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "alerte introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllRead godoc
// @Summary      Marquer toutes les alertes comme lues
// @Tags         alerts
// @Security     Bearer
// @Success      204
// @Router       /api/alerts/read-all [post]
func (h *AlertHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.uc.MarkAllRead(c.UserContext(), GetUserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Supprimer une alerte
// @Tags         alerts
// @Security     Bearer
// @Param        id   path  string  true  "ID de l'alerte"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id} [delete]
func (h *AlertHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id requis"})
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "alerte introuvable"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
