package handler

import (
	catalogapp "github.com/dentalcalc/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ServiceHandler handles dental service endpoints, including the doctor fee,
// profit override and line-item sub-resources.
type ServiceHandler struct {
	BaseHandler
	serviceService *catalogapp.ServiceService
}

// NewServiceHandler creates a new ServiceHandler
func NewServiceHandler(serviceService *catalogapp.ServiceService) *ServiceHandler {
	return &ServiceHandler{
		serviceService: serviceService,
	}
}

// Create godoc
// @ID           createService
// @Summary      Create a service
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreateServiceRequest true "Service creation request"
// @Success      201 {object} APIResponse[catalog.ServiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/services [post]
func (h *ServiceHandler) Create(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.serviceService.Create(c.Request.Context(), clinicID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get godoc
// @ID           getService
// @Summary      Get a service
// @Description  Returns the service with its consumable, material and equipment lines
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Service ID"
// @Success      200 {object} APIResponse[catalog.ServiceResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/services/{id} [get]
func (h *ServiceHandler) Get(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	resp, err := h.serviceService.Get(c.Request.Context(), clinicID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @ID           listServices
// @Summary      List services
// @Description  Returns every service for the clinic, ordered by category then name
// @Tags         catalog
// @Produce      json
// @Success      200 {object} APIResponse[[]catalog.ServiceResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/services [get]
func (h *ServiceHandler) List(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.serviceService.List(c.Request.Context(), clinicID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update godoc
// @ID           updateService
// @Summary      Update a service
// @Description  Replaces the service's name, category and chair time
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Service ID"
// @Param        request body catalog.UpdateServiceRequest true "Service update request"
// @Success      200 {object} APIResponse[catalog.ServiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/services/{id} [put]
func (h *ServiceHandler) Update(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	var req catalogapp.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.serviceService.Update(c.Request.Context(), clinicID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetDoctorFee godoc
// @ID           setServiceDoctorFee
// @Summary      Set the doctor fee
// @Description  Configures how the doctor is paid for this service (hourly, fixed or percentage)
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Service ID"
// @Param        request body catalog.SetDoctorFeeRequest true "Doctor fee request"
// @Success      200 {object} APIResponse[catalog.ServiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/services/{id}/doctor-fee [put]
func (h *ServiceHandler) SetDoctorFee(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	var req catalogapp.SetDoctorFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.serviceService.SetDoctorFee(c.Request.Context(), clinicID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetProfitOverride godoc
// @ID           setServiceProfitOverride
// @Summary      Set the profit override
// @Description  Switches the service between the clinic default profit margin and a custom one
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Service ID"
// @Param        request body catalog.SetProfitOverrideRequest true "Profit override request"
// @Success      200 {object} APIResponse[catalog.ServiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/services/{id}/profit [put]
func (h *ServiceHandler) SetProfitOverride(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	var req catalogapp.SetProfitOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.serviceService.SetProfitOverride(c.Request.Context(), clinicID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// SetCurrentPrice godoc
// @ID           setServiceCurrentPrice
// @Summary      Set the current price
// @Description  Records the price the clinic charges today, used for gap analysis against the suggested price
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Service ID"
// @Param        request body catalog.SetCurrentPriceRequest true "Current price request"
// @Success      200 {object} APIResponse[catalog.ServiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/services/{id}/current-price [put]
func (h *ServiceHandler) SetCurrentPrice(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	var req catalogapp.SetCurrentPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.serviceService.SetCurrentPrice(c.Request.Context(), clinicID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ReplaceLines godoc
// @ID           replaceServiceLines
// @Summary      Replace the service's line items
// @Description  Replaces the consumable, material and equipment line collections wholesale
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Service ID"
// @Param        request body catalog.ReplaceLinesRequest true "Line replacement request"
// @Success      200 {object} APIResponse[catalog.ServiceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/services/{id}/lines [put]
func (h *ServiceHandler) ReplaceLines(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	var req catalogapp.ReplaceLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.serviceService.ReplaceLines(c.Request.Context(), clinicID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteService
// @Summary      Delete a service
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Service ID"
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /catalog/services/{id} [delete]
func (h *ServiceHandler) Delete(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	if err := h.serviceService.Delete(c.Request.Context(), clinicID, id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
