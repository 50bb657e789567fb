package router

import (
	"github.com/Sreemathipalanisamy/gst-service-register/config"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/controller"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController         *controller.AuthController
	registrationController *controller.RegistrationController
	invoiceController      *controller.InvoiceController
	authMiddleware         *middleware.AuthMiddleware
	config                 *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	registrationController *controller.RegistrationController,
	invoiceController *controller.InvoiceController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:         authController,
		registrationController: registrationController,
		invoiceController:      invoiceController,
		authMiddleware:         authMiddleware,
		config:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "GST registration API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/registrations", r.registrationController.Register)
		v1.POST("/email/verify", r.registrationController.VerifyEmail)

		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		invoices := v1.Group("/invoices", r.authMiddleware.Authenticate())
		{
			invoices.GET("", r.invoiceController.GetInvoices)
			invoices.GET("/export", r.invoiceController.ExportInvoices)
			invoices.GET("/:invoice_no", r.invoiceController.GetInvoice)
			invoices.POST("", r.invoiceController.CreateInvoice)
			invoices.PUT("/:invoice_no", r.invoiceController.UpdateInvoice)
			invoices.POST("/:invoice_no/items", r.invoiceController.AddLineItem)
			invoices.DELETE("/:invoice_no/items/:index", r.invoiceController.RemoveLineItem)
			invoices.POST("/:invoice_no/save", r.invoiceController.SaveInvoice)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
