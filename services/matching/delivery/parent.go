package delivery

import (
	"schoolmatch/domain"

	"github.com/gofiber/fiber/v2"
)

type parentHandler struct {
	puc domain.ParentUseCase
}

func NewParentDelivery(router fiber.Router, uc domain.ParentUseCase) {
	handler := &parentHandler{
		puc: uc,
	}

	route := router.Group("/pais")
	route.Post("/", handler.CreateParent)
	route.Get("/", handler.GetAllParents)
	route.Get("/:id", handler.GetParentByID)
	route.Put("/:id", handler.UpdateParent)
	route.Delete("/:id", handler.DeleteParent)
}

// CreateParent godoc
// @Summary      Register a parent or guardian
// @Tags         Pais
// @Accept       json
// @Produce      json
// @Param        pai body domain.ParentCreateRequest true "parent payload"
// @Success      201 {object} domain.ParentResponse
// @Failure      400 {object} map[string]any
// @Router       /api/pais [post]
func (ph *parentHandler) CreateParent(c *fiber.Ctx) error {
	var req domain.ParentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "CreateParent", "Invalid request body", err)
	}

	parent, err := ph.puc.CreateParent(c.Context(), &req)
	if err != nil {
		return respondError(c, "CreateParent", err)
	}

	return respondOK(c, fiber.StatusCreated, "CreateParent", "Parent created successfully", domain.NewParentResponse(parent))
}

// GetAllParents godoc
// @Summary      List parents
// @Tags         Pais
// @Produce      json
// @Success      200 {array} domain.ParentResponse
// @Router       /api/pais [get]
func (ph *parentHandler) GetAllParents(c *fiber.Ctx) error {
	parents, err := ph.puc.GetAllParents(c.Context())
	if err != nil {
		return respondError(c, "GetAllParents", err)
	}

	return respondOK(c, fiber.StatusOK, "GetAllParents", "Parents retrieved successfully", domain.NewParentResponses(parents))
}

// GetParentByID godoc
// @Summary      Get parent
// @Tags         Pais
// @Param        id path int true "parent id"
// @Success      200 {object} domain.ParentResponse
// @Failure      404 {object} map[string]any
// @Router       /api/pais/{id} [get]
func (ph *parentHandler) GetParentByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "GetParentByID", "Converter failure on id", err)
	}

	parent, err := ph.puc.GetParentByID(c.Context(), id)
	if err != nil {
		return respondError(c, "GetParentByID", err)
	}

	return respondOK(c, fiber.StatusOK, "GetParentByID", "Parent retrieved successfully", domain.NewParentResponse(parent))
}

// UpdateParent godoc
// @Summary      Partially update parent
// @Tags         Pais
// @Accept       json
// @Param        id path int true "parent id"
// @Param        pai body domain.ParentUpdateRequest true "fields to change"
// @Success      200 {object} domain.ParentResponse
// @Failure      400 {object} map[string]any
// @Failure      404 {object} map[string]any
// @Router       /api/pais/{id} [put]
func (ph *parentHandler) UpdateParent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "UpdateParent", "Converter failure on id", err)
	}

	var req domain.ParentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadRequest(c, "UpdateParent", "Invalid request body", err)
	}

	parent, err := ph.puc.UpdateParent(c.Context(), id, &req)
	if err != nil {
		return respondError(c, "UpdateParent", err)
	}

	return respondOK(c, fiber.StatusOK, "UpdateParent", "Parent updated successfully", domain.NewParentResponse(parent))
}

// DeleteParent godoc
// @Summary      Delete parent
// @Tags         Pais
// @Param        id path int true "parent id"
// @Success      204
// @Failure      404 {object} map[string]any
// @Router       /api/pais/{id} [delete]
func (ph *parentHandler) DeleteParent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return respondBadRequest(c, "DeleteParent", "Converter failure on id", err)
	}

	if err := ph.puc.DeleteParent(c.Context(), id); err != nil {
		return respondError(c, "DeleteParent", err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
