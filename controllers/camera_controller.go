package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ashish4bollam/Anveshak/middleware"
	"github.com/ashish4bollam/Anveshak/models"
	"github.com/ashish4bollam/Anveshak/services"
)

// CameraController handles the camera CRUD and lookup endpoints.
type CameraController struct {
	cameraService *services.CameraService
}

func NewCameraController(cameraService *services.CameraService) *CameraController {
	return &CameraController{cameraService: cameraService}
}

// CreateCamera handles POST /cameras.
func (cc *CameraController) CreateCamera(ctx *gin.Context) {
	var req models.CreateCameraRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	camera, svcErr := cc.cameraService.RegisterCamera(ctx.Request.Context(), &req, middleware.CurrentUser(ctx))
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"camera": camera})
}

// ListCameras handles GET /cameras. Filters mirror the my-cameras screen;
// with no query parameters the caller's own cameras are returned.
func (cc *CameraController) ListCameras(ctx *gin.Context) {
	filters := models.CameraFilters{
		Username:         ctx.Query("username"),
		City:             ctx.Query("city"),
		Organization:     ctx.Query("organization"),
		WorkingCondition: ctx.Query("workingCondition"),
		DeviceType:       ctx.Query("deviceType"),
		DateChecked:      ctx.Query("dateChecked"),
	}
	if filters.Username == "" {
		filters.Username = middleware.CurrentUser(ctx).Username
	}

	cameras, svcErr := cc.cameraService.ListCameras(ctx.Request.Context(), filters)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"cameras": cameras})
}

// UpdateCamera handles PUT /cameras/:id.
func (cc *CameraController) UpdateCamera(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid camera ID"})
		return
	}

	var req models.UpdateCameraRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if svcErr := cc.cameraService.UpdateCamera(ctx.Request.Context(), id, &req, middleware.CurrentUser(ctx)); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Camera updated"})
}

// DeleteCamera handles DELETE /cameras/:id.
func (cc *CameraController) DeleteCamera(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid camera ID"})
		return
	}

	if svcErr := cc.cameraService.DeleteCamera(ctx.Request.Context(), id, middleware.CurrentUser(ctx)); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Camera deleted"})
}

// NearbyCameras handles GET /cameras/nearby?lat=&lon=&radius=.
func (cc *CameraController) NearbyCameras(ctx *gin.Context) {
	lat, err1 := strconv.ParseFloat(ctx.Query("lat"), 64)
	lon, err2 := strconv.ParseFloat(ctx.Query("lon"), 64)
	if err1 != nil || err2 != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon are required decimal degrees"})
		return
	}
	radius := 5.0
	if radiusStr := ctx.Query("radius"); radiusStr != "" {
		r, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil || r <= 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "radius must be a positive number of kilometers"})
			return
		}
		radius = r
	}

	cameras, svcErr := cc.cameraService.NearbyCameras(ctx.Request.Context(), lat, lon, radius)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"cameras": cameras})
}

// DashboardStats handles GET /dashboard/stats.
func (cc *CameraController) DashboardStats(ctx *gin.Context) {
	stats, svcErr := cc.cameraService.DashboardStats(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
