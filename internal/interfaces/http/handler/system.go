package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/dentalcalc/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

const apiName = "DentalCalc Backend API"

// Version and Commit are stamped at build time via -ldflags.
var (
	Version = "1.0.0"
	Commit  = "unknown"
)

// SystemHandler serves liveness and build-info endpoints. These sit
// behind auth like the rest of the API but carry no clinic data.
type SystemHandler struct {
	BaseHandler
	startTime time.Time
}

func NewSystemHandler() *SystemHandler {
	return &SystemHandler{startTime: time.Now()}
}

// SystemInfoResponse describes the running build.
// @name HandlerSystemInfoResponse
type SystemInfoResponse struct {
	Name       string `json:"name" example:"DentalCalc Backend API"`
	Version    string `json:"version" example:"1.0.0"`
	Commit     string `json:"commit" example:"3f9c2d1"`
	GoVersion  string `json:"go_version" example:"go1.25.5"`
	Goroutines int    `json:"goroutines" example:"12"`
	Uptime     string `json:"uptime" example:"1h30m45s"`
}

// GetSystemInfo godoc
// @ID           getSystemSystemInfo
// @Summary      Get system information
// @Description  Returns build metadata and uptime for the running instance
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[SystemInfoResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(SystemInfoResponse{
		Name:       apiName,
		Version:    Version,
		Commit:     Commit,
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
	}))
}

// PingResponse is the body of a successful ping.
// @name HandlerPingResponse
type PingResponse struct {
	Message   string `json:"message" example:"pong"`
	Timestamp string `json:"timestamp" example:"2026-01-23T12:00:00Z"`
}

// Ping godoc
// @ID           pingSystem
// @Summary      Ping the API
// @Description  Responds with pong; used by uptime checks
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[PingResponse]
// @Router       /system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	}))
}
