package handler

import (
	costingapp "github.com/dentalcalc/backend/internal/application/costing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SalaryHandler handles staff salary endpoints
type SalaryHandler struct {
	BaseHandler
	salaryService *costingapp.SalaryService
}

// NewSalaryHandler creates a new SalaryHandler
func NewSalaryHandler(salaryService *costingapp.SalaryService) *SalaryHandler {
	return &SalaryHandler{
		salaryService: salaryService,
	}
}

// Create godoc
// @ID           createSalary
// @Summary      Create a staff salary
// @Tags         costing
// @Accept       json
// @Produce      json
// @Param        request body costing.CreateSalaryRequest true "Salary creation request"
// @Success      201 {object} APIResponse[costing.SalaryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /costing/salaries [post]
func (h *SalaryHandler) Create(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req costingapp.CreateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.salaryService.Create(c.Request.Context(), clinicID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get godoc
// @ID           getSalary
// @Summary      Get a staff salary
// @Tags         costing
// @Produce      json
// @Param        id path string true "Salary ID"
// @Success      200 {object} APIResponse[costing.SalaryResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /costing/salaries/{id} [get]
func (h *SalaryHandler) Get(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid salary ID")
		return
	}

	resp, err := h.salaryService.Get(c.Request.Context(), clinicID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @ID           listSalaries
// @Summary      List staff salaries
// @Tags         costing
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]costing.SalaryResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /costing/salaries [get]
func (h *SalaryHandler) List(c *gin.Context) {
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

	result, err := h.salaryService.List(c.Request.Context(), clinicID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
// @ID           updateSalary
// @Summary      Update a staff salary
// @Tags         costing
// @Accept       json
// @Produce      json
// @Param        id path string true "Salary ID"
// @Param        request body costing.UpdateSalaryRequest true "Salary update request"
// @Success      200 {object} APIResponse[costing.SalaryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /costing/salaries/{id} [put]
func (h *SalaryHandler) Update(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid salary ID")
		return
	}

	var req costingapp.UpdateSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.salaryService.Update(c.Request.Context(), clinicID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteSalary
// @Summary      Delete a staff salary
// @Tags         costing
// @Produce      json
// @Param        id path string true "Salary ID"
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /costing/salaries/{id} [delete]
func (h *SalaryHandler) Delete(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid salary ID")
		return
	}

	if err := h.salaryService.Delete(c.Request.Context(), clinicID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
