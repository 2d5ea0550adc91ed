package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/finzeta/identity-api/internal/application/dto"
	"github.com/finzeta/identity-api/internal/application/usecase"
	"github.com/finzeta/identity-api/internal/domain"
)

// PermissionHandler maneja las peticiones HTTP para el recurso Permission.
type PermissionHandler struct {
	uc *usecase.PermissionUseCase
}

// NewPermissionHandler construye el handler inyectando el caso de uso.
func NewPermissionHandler(uc *usecase.PermissionUseCase) *PermissionHandler {
	return &PermissionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear permiso
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePermissionRequest  true  "module_name, action, category, description"
// @Success      201   {object}  dto.PermissionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/permissions [post]
func (h *PermissionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ModuleName == "" || in.Action == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "module_name y action son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener permiso por ID
// @Tags         permissions
// @Produce      json
// @Param        id   path  string  true  "ID del permiso"
// @Success      200  {object}  dto.PermissionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/permissions/{id} [get]
func (h *PermissionHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "permiso no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar permisos
// @Tags         permissions
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.PermissionListResponse
// @Router       /api/permissions [get]
func (h *PermissionHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar permiso
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del permiso"
// @Param        body  body  dto.UpdatePermissionRequest  true  "module_name, action, category, description"
// @Success      200   {object}  dto.PermissionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/permissions/{id} [put]
func (h *PermissionHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdatePermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ModuleName == "" || in.Action == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "module_name y action son requeridos"})
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "permiso no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar permiso
// @Tags         permissions
// @Produce      json
// @Param        id   path  string  true  "ID del permiso"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/permissions/{id} [delete]
func (h *PermissionHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "permiso no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "permiso eliminado"})
}

// AssignToRole godoc
// @Summary      Asignar permiso a rol
// @Tags         permissions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignPermissionRequest  true  "role_id, permission_id"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/permissions/assign [post]
func (h *PermissionHandler) AssignToRole(c *fiber.Ctx) error {
	var in dto.AssignPermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RoleID == "" || in.PermissionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "role_id y permission_id son requeridos"})
	}
	if err := h.uc.AssignToRole(c.Context(), in); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "rol o permiso no encontrado"})
		case errors.Is(err, domain.ErrPermissionAlreadyAssigned):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PERMISSION_ALREADY_ASSIGNED", Message: "el permiso ya está asignado al rol"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MessageResponse{Message: "permiso asignado"})
}

// ListByRole godoc
// @Summary      Listar permisos de un rol
// @Tags         permissions
// @Produce      json
// @Param        id   path  string  true  "ID del rol"
// @Success      200  {array}   dto.PermissionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/roles/{id}/permissions [get]
func (h *PermissionHandler) ListByRole(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ListByRole(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "rol no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
