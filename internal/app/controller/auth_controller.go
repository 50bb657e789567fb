package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/service"
	apperrors "github.com/Sreemathipalanisamy/gst-service-register/internal/errors"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type LoginRequest struct {
	GSTIN string `json:"gstin" binding:"required,len=15"`
	Email string `json:"email" binding:"required,email"`
}

// Login handles vendor login
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "GSTIN and email are required")
		return
	}

	registration, tokens, err := ctrl.authService.Login(req.GSTIN, req.Email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("Login failed: invalid credentials", map[string]interface{}{
				"gstin": req.GSTIN,
			})
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "GSTIN or email is incorrect")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"gstin": req.GSTIN,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "login")
		return
	}

	log.Info("Login successful", map[string]interface{}{
		"gstin": registration.GSTIN,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"registration": registrationResponse(registration),
		"tokens":       tokens,
	})
}

// Logout revokes the presented access token
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	gstin, _ := middleware.GetGSTIN(c)

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		if err := ctrl.authService.Logout(c.Request.Context(), parts[1]); err != nil {
			// Logout always succeeds from the vendor's perspective
			log.Error("Failed to revoke token during logout", err, map[string]interface{}{
				"gstin": gstin,
			})
		}
	}

	log.Info("Vendor logged out", map[string]interface{}{
		"gstin": gstin,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetMe returns the authenticated vendor's registration
// GET /api/v1/auth/me
func (ctrl *AuthController) GetMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	gstin, exists := middleware.GetGSTIN(c)
	if !exists {
		log.Warn("Unauthorized access to GetMe endpoint", nil)
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	registration, err := ctrl.authService.GetRegistration(gstin)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			log.Warn("Registration not found", map[string]interface{}{
				"gstin": gstin,
			})
			apperrors.NotFound(c, apperrors.RegistrationNotFound, "Registration not found")
			return
		}
		log.Error("Failed to get registration", err, map[string]interface{}{
			"gstin": gstin,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get registration")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"registration": registrationResponse(registration),
	})
}
