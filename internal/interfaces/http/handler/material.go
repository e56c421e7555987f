package handler

import (
	catalogapp "github.com/dentalcalc/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaterialHandler handles the lab material library endpoints
type MaterialHandler struct {
	BaseHandler
	materialService *catalogapp.MaterialService
}

// NewMaterialHandler creates a new MaterialHandler
func NewMaterialHandler(materialService *catalogapp.MaterialService) *MaterialHandler {
	return &MaterialHandler{
		materialService: materialService,
	}
}

// Create godoc
// @ID           createLabMaterial
// @Summary      Create a lab material
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreateLabMaterialRequest true "Lab material creation request"
// @Success      201 {object} APIResponse[catalog.LabMaterialResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/materials [post]
func (h *MaterialHandler) Create(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.CreateLabMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.materialService.Create(c.Request.Context(), clinicID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get godoc
// @ID           getLabMaterial
// @Summary      Get a lab material
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Lab material ID"
// @Success      200 {object} APIResponse[catalog.LabMaterialResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/materials/{id} [get]
func (h *MaterialHandler) Get(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lab material ID")
		return
	}

	resp, err := h.materialService.Get(c.Request.Context(), clinicID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @ID           listLabMaterials
// @Summary      List lab materials
// @Tags         catalog
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Name search"
// @Success      200 {object} APIResponse[[]catalog.LabMaterialResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/materials [get]
func (h *MaterialHandler) List(c *gin.Context) {
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

	result, err := h.materialService.List(c.Request.Context(), clinicID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @ID           updateLabMaterial
// @Summary      Update a lab material
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Lab material ID"
// @Param        request body catalog.UpdateLabMaterialRequest true "Lab material update request"
// @Success      200 {object} APIResponse[catalog.LabMaterialResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/materials/{id} [put]
func (h *MaterialHandler) Update(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lab material ID")
		return
	}

	var req catalogapp.UpdateLabMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.materialService.Update(c.Request.Context(), clinicID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteLabMaterial
// @Summary      Delete a lab material
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Lab material ID"
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/materials/{id} [delete]
func (h *MaterialHandler) Delete(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid lab material ID")
		return
	}

	if err := h.materialService.Delete(c.Request.Context(), clinicID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
