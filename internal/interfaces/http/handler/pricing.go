package handler

import (
	pricingapp "github.com/dentalcalc/backend/internal/application/pricing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PricingHandler handles price computation and dashboard endpoints
type PricingHandler struct {
	BaseHandler
	pricingService *pricingapp.PricingService
}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler(pricingService *pricingapp.PricingService) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
	}
}

// PriceService godoc
// @ID           priceService
// @Summary      Price a single service
// @Description  Computes the full cost-plus breakdown for one service at current clinic settings
// @Tags         pricing
// @Produce      json
// @Param        id path string true "Service ID"
// @Success      200 {object} APIResponse[pricing.BreakdownResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /pricing/services/{id}/price [get]
func (h *PricingHandler) PriceService(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid service ID")
		return
	}

	resp, err := h.pricingService.PriceService(c.Request.Context(), clinicID, serviceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// PriceList godoc
// @ID           getPriceList
// @Summary      Price every service
// @Description  Computes breakdowns for all services in one pass over the clinic's cost pool
// @Tags         pricing
// @Produce      json
// @Success      200 {object} APIResponse[[]pricing.BreakdownResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /pricing/price-list [get]
func (h *PricingHandler) PriceList(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.pricingService.PriceList(c.Request.Context(), clinicID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DashboardStats godoc
// @ID           getDashboardStats
// @Summary      Get dashboard statistics
// @Description  Returns the clinic's headline numbers: hourly rate, cost pool totals and price gaps
// @Tags         pricing
// @Produce      json
// @Success      200 {object} APIResponse[pricing.DashboardStatsResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dashboard/stats [get]
func (h *PricingHandler) DashboardStats(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.pricingService.DashboardStats(c.Request.Context(), clinicID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
