package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/medidir/doctor-directory-api/internal/handler"
	"github.com/medidir/doctor-directory-api/internal/middleware"
)

func SetupRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	r.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// Identity (public)
		v1.POST("/register", authHandler.Register)
		v1.POST("/login", authHandler.Login)

		// Identity (authenticated)
		v1.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
		v1.POST("/logout", authMiddleware.RequireAuth(), authHandler.Logout)

		// Doctor directory reads are public
		v1.GET("/doctors", doctorHandler.List)
		v1.GET("/doctors/:id", doctorHandler.Show)

		// Doctor directory writes require a bearer token
		doctors := v1.Group("/doctors")
		doctors.Use(authMiddleware.RequireAuth())
		{
			doctors.POST("", doctorHandler.Create)
			doctors.PUT("/:id", doctorHandler.Update)
			doctors.PATCH("/:id", doctorHandler.Update)
			doctors.DELETE("/:id", doctorHandler.Destroy)
		}
	}

	return r
}
