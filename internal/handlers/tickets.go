package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/socialdb/internal/services"
	"github.com/localnerve/socialdb/internal/utils"
	"gorm.io/gorm"
)

// TicketHandler handles ticket type and purchase routes of public events
type TicketHandler struct {
	DB *gorm.DB
}

// CreateType handles POST /events/:id/tickets/types
// @Summary Add a ticket type
// @Tags Tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param body body services.TicketTypeInput true "Ticket type"
// @Success 201 {object} models.TicketType
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /events/{id}/tickets/types [post]
func (h *TicketHandler) CreateType(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var in services.TicketTypeInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}

	ticketType, err := services.CreateTicketType(h.DB, actor(c), id, in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.CreatedResponse(c, ticketType)
}

// ListTypes handles GET /events/:id/tickets/types
// @Summary List ticket types
// @Tags Tickets
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {array} models.TicketType
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /events/{id}/tickets/types [get]
func (h *TicketHandler) ListTypes(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	ticketTypes, err := services.ListTicketTypes(h.DB, id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, ticketTypes, fiber.StatusOK)
}

// Purchase handles POST /events/:id/tickets/purchase
// @Summary Buy a ticket; no account needed
// @Tags Tickets
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param body body services.PurchaseInput true "Buyer"
// @Success 201 {object} models.TicketPurchase
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /events/{id}/tickets/purchase [post]
func (h *TicketHandler) Purchase(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}
	var in services.PurchaseInput
	if err := parseBody(c, &in); err != nil {
		return utils.HandleError(c, err)
	}

	purchase, err := services.PurchaseTicket(h.DB, id, in)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.CreatedResponse(c, purchase)
}

// ListPurchases handles GET /events/:id/tickets/purchases
// @Summary List ticket purchases
// @Tags Tickets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {array} models.TicketPurchase
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /events/{id}/tickets/purchases [get]
func (h *TicketHandler) ListPurchases(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.HandleError(c, err)
	}

	purchases, err := services.ListPurchases(h.DB, actor(c), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, purchases, fiber.StatusOK)
}
