package handler

import (
	catalogapp "github.com/dentalcalc/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ConsumableHandler handles the consumable library endpoints
type ConsumableHandler struct {
	BaseHandler
	consumableService *catalogapp.ConsumableService
}

// NewConsumableHandler creates a new ConsumableHandler
func NewConsumableHandler(consumableService *catalogapp.ConsumableService) *ConsumableHandler {
	return &ConsumableHandler{
		consumableService: consumableService,
	}
}

// Create godoc
// @ID           createConsumable
// @Summary      Create a consumable
// @Description  Adds a consumable to the clinic library with its pack-to-unit cost breakdown
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreateConsumableRequest true "Consumable creation request"
// @Success      201 {object} APIResponse[catalog.ConsumableResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/consumables [post]
func (h *ConsumableHandler) Create(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.CreateConsumableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.consumableService.Create(c.Request.Context(), clinicID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get godoc
// @ID           getConsumable
// @Summary      Get a consumable
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Consumable ID"
// @Success      200 {object} APIResponse[catalog.ConsumableResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/consumables/{id} [get]
func (h *ConsumableHandler) Get(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid consumable ID")
		return
	}

	resp, err := h.consumableService.Get(c.Request.Context(), clinicID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @ID           listConsumables
// @Summary      List consumables
// @Tags         catalog
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Name search"
// @Success      200 {object} APIResponse[[]catalog.ConsumableResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/consumables [get]
func (h *ConsumableHandler) List(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, "Invalid list parameters")
		return
	}

	result, err := h.consumableService.List(c.Request.Context(), clinicID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @ID           updateConsumable
// @Summary      Update a consumable
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Consumable ID"
// @Param        request body catalog.UpdateConsumableRequest true "Consumable update request"
// @Success      200 {object} APIResponse[catalog.ConsumableResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/consumables/{id} [put]
func (h *ConsumableHandler) Update(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid consumable ID")
		return
	}

	var req catalogapp.UpdateConsumableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.consumableService.Update(c.Request.Context(), clinicID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteConsumable
// @Summary      Delete a consumable
// @Description  Removes a library item; services referencing it keep pricing via their frozen custom price if set
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Consumable ID"
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/consumables/{id} [delete]
func (h *ConsumableHandler) Delete(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid consumable ID")
		return
	}

	if err := h.consumableService.Delete(c.Request.Context(), clinicID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
