package controller

import (
	"errors"
	"net/http"

	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/model"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/service"
	apperrors "github.com/Sreemathipalanisamy/gst-service-register/internal/errors"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/middleware"
	"github.com/gin-gonic/gin"
)

type RegistrationController struct {
	registrationService service.RegistrationService
}

func NewRegistrationController(registrationService service.RegistrationService) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
	}
}

type RegisterRequest struct {
	GSTIN      string  `json:"gstin" binding:"required,len=15"`
	VendorType string  `json:"vendor_type" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Turnover   float64 `json:"turnover" binding:"required,gt=0"`
	State      string  `json:"state" binding:"required"`
	ITC        string  `json:"itc" binding:"required"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func registrationResponse(registration *model.Registration) gin.H {
	return gin.H{
		"id":             registration.ID,
		"gstin":          registration.GSTIN,
		"vendor_type":    registration.VendorType,
		"email":          registration.Email,
		"turnover":       registration.Turnover,
		"state":          registration.State,
		"itc":            registration.ITC,
		"email_verified": registration.EmailVerified,
		"verified_at":    registration.VerifiedAt,
		"created_at":     registration.CreatedAt,
	}
}

// Register handles vendor registration
// POST /api/v1/registrations
func (ctrl *RegistrationController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Registration fields are missing or malformed")
		return
	}

	registration, err := ctrl.registrationService.Register(c.Request.Context(), service.RegistrationInput{
		GSTIN:      req.GSTIN,
		VendorType: model.VendorType(req.VendorType),
		Email:      req.Email,
		Turnover:   req.Turnover,
		State:      req.State,
		ITC:        model.ITCElection(req.ITC),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidGSTIN):
			log.Warn("Registration failed: invalid GSTIN", map[string]interface{}{
				"gstin": req.GSTIN,
			})
			apperrors.BadRequest(c, apperrors.RegistrationInvalidGSTIN, "GSTIN format is invalid")
			return
		case errors.Is(err, service.ErrGSTINAlreadyExists):
			log.Warn("Registration failed: GSTIN already registered", map[string]interface{}{
				"gstin": req.GSTIN,
			})
			apperrors.Conflict(c, apperrors.RegistrationGSTINExists, "This GSTIN is already registered")
			return
		case errors.Is(err, service.ErrInvalidState):
			apperrors.BadRequest(c, apperrors.InvoiceInvalidState, "Unknown state")
			return
		case errors.Is(err, service.ErrInvalidVendorType):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown vendor type")
			return
		case errors.Is(err, service.ErrInvalidITC):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "ITC election must be Opted In or Opted Out")
			return
		case errors.Is(err, service.ErrEmailRejected):
			log.Warn("Registration failed: email rejected", map[string]interface{}{
				"gstin": req.GSTIN,
				"email": req.Email,
			})
			apperrors.BadRequest(c, apperrors.RegistrationEmailUnverified, "Email address failed verification")
			return
		default:
			log.Error("Registration failed", err, map[string]interface{}{
				"gstin": req.GSTIN,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "register vendor")
			return
		}
	}

	log.Info("Vendor registered successfully", map[string]interface{}{
		"gstin": registration.GSTIN,
		"state": registration.State,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Vendor registered successfully",
		"registration": registrationResponse(registration),
	})
}

// VerifyEmail checks an email address against the verification service
// POST /api/v1/email/verify
func (ctrl *RegistrationController) VerifyEmail(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid email verification request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A valid email address is required")
		return
	}

	result, err := ctrl.registrationService.VerifyEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Error("Email verification call failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.InternalExternalAPI, "Email verification service is unavailable")
		return
	}

	log.Info("Email verification completed", map[string]interface{}{
		"email": req.Email,
		"valid": result.Valid,
	})

	c.JSON(http.StatusOK, gin.H{
		"valid":   result.Valid,
		"message": result.Message,
	})
}
