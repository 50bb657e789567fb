package service

import (
	"context"
	"errors"
	"time"

	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/model"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/repository"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/emailcheck"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/logger"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrGSTINAlreadyExists   = errors.New("gstin already registered")
	ErrInvalidGSTIN         = errors.New("gstin format is invalid")
	ErrInvalidState         = errors.New("unknown state")
	ErrInvalidVendorType    = errors.New("unknown vendor type")
	ErrInvalidITC           = errors.New("unknown itc election")
	ErrEmailRejected        = errors.New("email address failed verification")
)

// RegistrationInput carries the fields for a new registration.
type RegistrationInput struct {
	GSTIN      string
	VendorType model.VendorType
	Email      string
	Turnover   float64
	State      string
	ITC        model.ITCElection
}

type RegistrationService interface {
	Register(ctx context.Context, input RegistrationInput) (*model.Registration, error)
	GetByGSTIN(gstin string) (*model.Registration, error)
	VerifyEmail(ctx context.Context, email string) (*emailcheck.VerificationResult, error)
}

type registrationService struct {
	registrationRepo repository.RegistrationRepository
	emailClient      *emailcheck.Client
}

func NewRegistrationService(
	registrationRepo repository.RegistrationRepository,
	emailClient *emailcheck.Client,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		emailClient:      emailClient,
	}
}

func (s *registrationService) Register(ctx context.Context, input RegistrationInput) (*model.Registration, error) {
	logger.Info("Attempting vendor registration", map[string]interface{}{
		"gstin": input.GSTIN,
		"state": input.State,
	})

	if !util.IsValidGSTIN(input.GSTIN) {
		logger.Warn("Registration failed: invalid GSTIN format", map[string]interface{}{
			"gstin": input.GSTIN,
		})
		return nil, ErrInvalidGSTIN
	}
	if !model.IsValidState(input.State) {
		return nil, ErrInvalidState
	}
	if !model.IsValidVendorType(input.VendorType) {
		return nil, ErrInvalidVendorType
	}
	if !model.IsValidITCElection(input.ITC) {
		return nil, ErrInvalidITC
	}

	exists, err := s.registrationRepo.ExistsByGSTIN(input.GSTIN)
	if err != nil {
		logger.Error("Failed to check existing registration", err, map[string]interface{}{
			"gstin": input.GSTIN,
		})
		return nil, err
	}
	if exists {
		logger.Warn("Registration failed: GSTIN already registered", map[string]interface{}{
			"gstin": input.GSTIN,
		})
		return nil, ErrGSTINAlreadyExists
	}

	// Email verification is a single opaque gate with no retry policy.
	result, err := s.emailClient.VerifyEmail(ctx, input.Email)
	if err != nil {
		logger.Error("Email verification call failed", err, map[string]interface{}{
			"gstin": input.GSTIN,
		})
		return nil, err
	}
	if !result.Valid {
		logger.Warn("Registration failed: email rejected by verification service", map[string]interface{}{
			"gstin":   input.GSTIN,
			"message": result.Message,
		})
		return nil, ErrEmailRejected
	}

	now := time.Now()
	registration := &model.Registration{
		GSTIN:         input.GSTIN,
		VendorType:    input.VendorType,
		Email:         input.Email,
		Turnover:      input.Turnover,
		State:         input.State,
		ITC:           input.ITC,
		EmailVerified: true,
		VerifiedAt:    &now,
	}

	if err := s.registrationRepo.Create(registration); err != nil {
		logger.Error("Failed to create registration", err, map[string]interface{}{
			"gstin": input.GSTIN,
		})
		return nil, err
	}

	logger.Info("Vendor registered successfully", map[string]interface{}{
		"registration_id": registration.ID,
		"gstin":           registration.GSTIN,
		"vendor_type":     registration.VendorType,
	})

	return registration, nil
}

func (s *registrationService) GetByGSTIN(gstin string) (*model.Registration, error) {
	registration, err := s.registrationRepo.FindByGSTIN(gstin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return registration, nil
}

func (s *registrationService) VerifyEmail(ctx context.Context, email string) (*emailcheck.VerificationResult, error) {
	return s.emailClient.VerifyEmail(ctx, email)
}
