package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/finzeta/identity-api/internal/application/dto"
	"github.com/finzeta/identity-api/internal/application/usecase"
	"github.com/finzeta/identity-api/internal/domain"
)

// SubscriptionHandler maneja las peticiones HTTP del ciclo de suscripción.
type SubscriptionHandler struct {
	uc *usecase.SubscriptionUseCase
}

// NewSubscriptionHandler construye el handler inyectando el caso de uso.
func NewSubscriptionHandler(uc *usecase.SubscriptionUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc}
}

// Start godoc
// @Summary      Iniciar suscripción
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartSubscriptionRequest  true  "company_id, end_date, price, is_trial"
// @Success      201   {object}  dto.SubscriptionHistoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/subscriptions/start [post]
func (h *SubscriptionHandler) Start(c *fiber.Ctx) error {
	var in dto.StartSubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CompanyID == "" || in.EndDate.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "company_id y end_date son requeridos"})
	}
	out, err := h.uc.Start(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "COMPANY_NOT_FOUND", Message: "la empresa no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Extend godoc
// @Summary      Extender suscripción
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ExtendSubscriptionRequest  true  "company_id, new_end_date"
// @Success      201   {object}  dto.SubscriptionHistoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/subscriptions/extend [post]
func (h *SubscriptionHandler) Extend(c *fiber.Ctx) error {
	var in dto.ExtendSubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CompanyID == "" || in.NewEndDate.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "company_id y new_end_date son requeridos"})
	}
	out, err := h.uc.Extend(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "COMPANY_NOT_FOUND", Message: "la empresa no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Histórico de suscripciones de una empresa
// @Tags         subscriptions
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {array}   dto.SubscriptionHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/subscriptions [get]
func (h *SubscriptionHandler) History(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.History(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "COMPANY_NOT_FOUND", Message: "la empresa no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
