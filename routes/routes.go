package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ashish4bollam/Anveshak/controllers"
	"github.com/ashish4bollam/Anveshak/middleware"
)

// Register sets up all routes. Everything except auth requires a valid token.
func Register(
	r *gin.Engine,
	jwtSecret string,
	ac *controllers.AuthController,
	cc *controllers.CameraController,
	bc *controllers.BulkImportController,
) {
	auth := r.Group("/auth")
	auth.POST("/signup", ac.Signup)
	auth.POST("/login", ac.Login)

	authorized := r.Group("")
	authorized.Use(middleware.AuthMiddleware(jwtSecret))

	authorized.GET("/users/me", ac.GetProfile)
	authorized.PUT("/users/me", ac.UpdateProfile)

	cameras := authorized.Group("/cameras")
	cameras.POST("", cc.CreateCamera)
	cameras.GET("", cc.ListCameras)
	cameras.GET("/nearby", cc.NearbyCameras)
	cameras.PUT("/:id", cc.UpdateCamera)
	cameras.DELETE("/:id", cc.DeleteCamera)
	cameras.POST("/import", bc.ImportCameras)
	cameras.GET("/import/template", bc.ImportTemplate)

	authorized.GET("/dashboard/stats", cc.DashboardStats)
}
