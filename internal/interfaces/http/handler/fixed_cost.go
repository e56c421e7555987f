package handler

import (
	costingapp "github.com/dentalcalc/backend/internal/application/costing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FixedCostHandler handles fixed monthly cost endpoints
type FixedCostHandler struct {
	BaseHandler
	fixedCostService *costingapp.FixedCostService
}

// NewFixedCostHandler creates a new FixedCostHandler
func NewFixedCostHandler(fixedCostService *costingapp.FixedCostService) *FixedCostHandler {
	return &FixedCostHandler{
		fixedCostService: fixedCostService,
	}
}

// SetIncludedRequest toggles whether a cost row counts toward the hourly rate
// @Description Request body for including or excluding a cost row
type SetIncludedRequest struct {
	Included bool `json:"included"`
}

// Create godoc
// @ID           createFixedCost
// @Summary      Create a fixed cost
// @Description  Adds a recurring facility cost such as rent or utilities
// @Tags         costing
// @Accept       json
// @Produce      json
// @Param        request body costing.CreateFixedCostRequest true "Fixed cost creation request"
// @Success      201 {object} APIResponse[costing.FixedCostResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /costing/fixed-costs [post]
func (h *FixedCostHandler) Create(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req costingapp.CreateFixedCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.fixedCostService.Create(c.Request.Context(), clinicID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get godoc
// @ID           getFixedCost
// @Summary      Get a fixed cost
// @Tags         costing
// @Produce      json
// @Param        id path string true "Fixed cost ID"
// @Success      200 {object} APIResponse[costing.FixedCostResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /costing/fixed-costs/{id} [get]
func (h *FixedCostHandler) Get(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid fixed cost ID")
		return
	}

	resp, err := h.fixedCostService.Get(c.Request.Context(), clinicID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @ID           listFixedCosts
// @Summary      List fixed costs
// @Tags         costing
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]costing.FixedCostResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /costing/fixed-costs [get]
func (h *FixedCostHandler) List(c *gin.Context) {
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

	result, err := h.fixedCostService.List(c.Request.Context(), clinicID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @ID           updateFixedCost
// @Summary      Update a fixed cost
// @Tags         costing
// @Accept       json
// @Produce      json
// @Param        id path string true "Fixed cost ID"
// @Param        request body costing.UpdateFixedCostRequest true "Fixed cost update request"
// @Success      200 {object} APIResponse[costing.FixedCostResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /costing/fixed-costs/{id} [put]
func (h *FixedCostHandler) Update(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid fixed cost ID")
		return
	}

	var req costingapp.UpdateFixedCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.fixedCostService.Update(c.Request.Context(), clinicID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetIncluded godoc
// @ID           setFixedCostIncluded
// @Summary      Include or exclude a fixed cost
// @Description  Toggles whether the cost row feeds the overhead pool without deleting it
// @Tags         costing
// @Accept       json
// @Produce      json
// @Param        id path string true "Fixed cost ID"
// @Param        request body SetIncludedRequest true "Inclusion toggle"
// @Success      200 {object} APIResponse[costing.FixedCostResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /costing/fixed-costs/{id}/included [put]
func (h *FixedCostHandler) SetIncluded(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid fixed cost ID")
		return
	}

	var req SetIncludedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.fixedCostService.SetIncluded(c.Request.Context(), clinicID, id, req.Included)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteFixedCost
// @Summary      Delete a fixed cost
// @Tags         costing
// @Produce      json
// @Param        id path string true "Fixed cost ID"
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /costing/fixed-costs/{id} [delete]
func (h *FixedCostHandler) Delete(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid fixed cost ID")
		return
	}

	if err := h.fixedCostService.Delete(c.Request.Context(), clinicID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
