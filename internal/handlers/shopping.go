package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/socialdb/internal/services"
	"github.com/localnerve/socialdb/internal/utils"
	"gorm.io/gorm"
)

// ShoppingHandler handles the shopping list of an event
type ShoppingHandler struct {
	DB *gorm.DB
}

// CreateItem handles POST /events/:id/shopping-items
// @Summary Add a shopping item
// @Tags Shopping
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param body body services.ShoppingItemInput true "Item"
// @Success 201 {object} services.ShoppingItemView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /events/{id}/shopping-items [post]
func (h *ShoppingHandler) CreateItem(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var in services.ShoppingItemInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}

	item, err := services.CreateShoppingItem(h.DB, actor(c), id, in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.CreatedResponse(c, item)
}

// ListItems handles GET /events/:id/shopping-items
// @Summary List shopping items, newest first
// @Tags Shopping
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {array} services.ShoppingItemView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /events/{id}/shopping-items [get]
func (h *ShoppingHandler) ListItems(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	items, err := services.ListShoppingItems(h.DB, actor(c), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, items, fiber.StatusOK)
}

// UpdateItem handles PATCH /events/:id/shopping-items/:itemId
// @Summary Update a shopping item
// @Tags Shopping
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param itemId path int true "Item ID"
// @Param body body services.ShoppingItemUpdate true "Fields to change"
// @Success 200 {object} services.ShoppingItemView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /events/{id}/shopping-items/{itemId} [patch]
func (h *ShoppingHandler) UpdateItem(c *fiber.Ctx) error {
	ids, err := paramIDs(c, "id", "itemId")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var in services.ShoppingItemUpdate
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}

	item, err := services.UpdateShoppingItem(h.DB, actor(c), ids[0], ids[1], in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, item, fiber.StatusOK)
}

// DeleteItem handles DELETE /events/:id/shopping-items/:itemId
// @Summary Delete a shopping item
// @Tags Shopping
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param itemId path int true "Item ID"
// @Success 204
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /events/{id}/shopping-items/{itemId} [delete]
func (h *ShoppingHandler) DeleteItem(c *fiber.Ctx) error {
	ids, err := paramIDs(c, "id", "itemId")
	if err != nil {
		return utils.HandleError(c, err)
	}

	if err := services.DeleteShoppingItem(h.DB, actor(c), ids[0], ids[1]); err != nil {
		return utils.HandleError(c, err)
	}
	return utils.NoContentResponse(c)
}
