package handler

import (
	costingapp "github.com/dentalcalc/backend/internal/application/costing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EquipmentHandler handles equipment depreciation endpoints
type EquipmentHandler struct {
	BaseHandler
	equipmentService *costingapp.EquipmentService
}

// NewEquipmentHandler creates a new EquipmentHandler
func NewEquipmentHandler(equipmentService *costingapp.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{
		equipmentService: equipmentService,
	}
}

// Create godoc
// @ID           createEquipment
// @Summary      Create an equipment item
// @Description  Registers a purchased machine with its straight-line depreciation parameters
// @Tags         costing
// @Accept       json
// @Produce      json
// @Param        request body costing.CreateEquipmentRequest true "Equipment creation request"
// @Success      201 {object} APIResponse[costing.EquipmentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /costing/equipment [post]
func (h *EquipmentHandler) Create(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req costingapp.CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.equipmentService.Create(c.Request.Context(), clinicID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get godoc
// @ID           getEquipment
// @Summary      Get an equipment item
// @Tags         costing
// @Produce      json
// @Param        id path string true "Equipment ID"
// @Success      200 {object} APIResponse[costing.EquipmentResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /costing/equipment/{id} [get]
func (h *EquipmentHandler) Get(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid equipment ID")
		return
	}

	resp, err := h.equipmentService.Get(c.Request.Context(), clinicID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @ID           listEquipment
// @Summary      List equipment items
// @Tags         costing
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]costing.EquipmentResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /costing/equipment [get]
func (h *EquipmentHandler) List(c *gin.Context) {
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

	result, err := h.equipmentService.List(c.Request.Context(), clinicID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @ID           updateEquipment
// @Summary      Update an equipment item
// @Tags         costing
// @Accept       json
// @Produce      json
// @Param        id path string true "Equipment ID"
// @Param        request body costing.UpdateEquipmentRequest true "Equipment update request"
// @Success      200 {object} APIResponse[costing.EquipmentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /costing/equipment/{id} [put]
func (h *EquipmentHandler) Update(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid equipment ID")
		return
	}

	var req costingapp.UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.equipmentService.Update(c.Request.Context(), clinicID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteEquipment
// @Summary      Delete an equipment item
// @Tags         costing
// @Produce      json
// @Param        id path string true "Equipment ID"
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /costing/equipment/{id} [delete]
func (h *EquipmentHandler) Delete(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid equipment ID")
		return
	}

	if err := h.equipmentService.Delete(c.Request.Context(), clinicID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
