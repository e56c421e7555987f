package handler

import (
	clinicapp "github.com/dentalcalc/backend/internal/application/clinic"
	identityapp "github.com/dentalcalc/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// maxLogoBytes caps logo uploads at 2 MiB
const maxLogoBytes = 2 << 20

// ClinicHandler handles clinic profile, pricing settings and capacity endpoints
type ClinicHandler struct {
	BaseHandler
	clinicService   *identityapp.ClinicService
	settingsService *clinicapp.SettingsService
}

// NewClinicHandler creates a new ClinicHandler
func NewClinicHandler(clinicService *identityapp.ClinicService, settingsService *clinicapp.SettingsService) *ClinicHandler {
	return &ClinicHandler{
		clinicService:   clinicService,
		settingsService: settingsService,
	}
}

// GetProfile godoc
// @ID           getClinicProfile
// @Summary      Get the clinic profile
// @Tags         clinic
// @Produce      json
// @Success      200 {object} APIResponse[identity.ClinicResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clinic/profile [get]
func (h *ClinicHandler) GetProfile(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.clinicService.GetProfile(c.Request.Context(), clinicID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateProfile godoc
// @ID           updateClinicProfile
// @Summary      Update the clinic profile
// @Tags         clinic
// @Accept       json
// @Produce      json
// @Param        request body identity.UpdateClinicProfileRequest true "Profile update request"
// @Success      200 {object} APIResponse[identity.ClinicResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clinic/profile [put]
func (h *ClinicHandler) UpdateProfile(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.UpdateClinicProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.clinicService.UpdateProfile(c.Request.Context(), clinicID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UploadLogo godoc
// @ID           uploadClinicLogo
// @Summary      Upload the clinic logo
// @Description  Accepts a PNG, JPEG or WebP image up to 2 MiB and stores it in object storage
// @Tags         clinic
// @Accept       multipart/form-data
// @Produce      json
// @Param        logo formData file true "Logo image"
// @Success      200 {object} APIResponse[identity.ClinicResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clinic/logo [put]
func (h *ClinicHandler) UploadLogo(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		h.BadRequest(c, "Missing logo file")
		return
	}
	if fileHeader.Size > maxLogoBytes {
		h.BadRequest(c, "Logo file exceeds 2 MiB")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unreadable logo file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	resp, err := h.clinicService.UploadLogo(c.Request.Context(), clinicID, contentType, file, fileHeader.Size)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetSettings godoc
// @ID           getPricingSettings
// @Summary      Get pricing settings
// @Description  Returns the clinic's pricing settings, creating defaults on first read
// @Tags         clinic
// @Produce      json
// @Success      200 {object} APIResponse[clinic.SettingsResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clinic/settings [get]
func (h *ClinicHandler) GetSettings(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.settingsService.GetSettings(c.Request.Context(), clinicID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateSettings godoc
// @ID           updatePricingSettings
// @Summary      Update pricing settings
// @Tags         clinic
// @Accept       json
// @Produce      json
// @Param        request body clinic.UpdateSettingsRequest true "Settings update request"
// @Success      200 {object} APIResponse[clinic.SettingsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clinic/settings [put]
func (h *ClinicHandler) UpdateSettings(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req clinicapp.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.settingsService.UpdateSettings(c.Request.Context(), clinicID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetCapacity godoc
// @ID           getClinicCapacity
// @Summary      Get chair capacity
// @Description  Returns the clinic's capacity settings including derived effective hours
// @Tags         clinic
// @Produce      json
// @Success      200 {object} APIResponse[clinic.CapacityResponse]
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clinic/capacity [get]
func (h *ClinicHandler) GetCapacity(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.settingsService.GetCapacity(c.Request.Context(), clinicID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateCapacity godoc
// @ID           updateClinicCapacity
// @Summary      Update chair capacity
// @Tags         clinic
// @Accept       json
// @Produce      json
// @Param        request body clinic.UpdateCapacityRequest true "Capacity update request"
// @Success      200 {object} APIResponse[clinic.CapacityResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /clinic/capacity [put]
func (h *ClinicHandler) UpdateCapacity(c *gin.Context) {
	clinicID, err := getClinicID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req clinicapp.UpdateCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.settingsService.UpdateCapacity(c.Request.Context(), clinicID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
