package service

import (
	"context"
	"errors"
	"time"

	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/model"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/repository"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/logger"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/redis"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/util"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid gstin or email")

type AuthService interface {
	Login(gstin, email string) (*model.Registration, *util.TokenPair, error)
	Logout(ctx context.Context, token string) error
	GetRegistration(gstin string) (*model.Registration, error)
}

type authService struct {
	registrationRepo repository.RegistrationRepository
	jwtSecret        string
	accessExpiry     time.Duration
	refreshExpiry    time.Duration
}

func NewAuthService(
	registrationRepo repository.RegistrationRepository,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		registrationRepo: registrationRepo,
		jwtSecret:        jwtSecret,
		accessExpiry:     accessExpiry,
		refreshExpiry:    refreshExpiry,
	}
}

// Login authenticates a (GSTIN, email) pair against the registration store
// and issues a token pair carrying the GSTIN as the session pointer.
func (s *authService) Login(gstin, email string) (*model.Registration, *util.TokenPair, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"gstin": gstin,
	})

	registration, err := s.registrationRepo.FindByGSTIN(gstin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: GSTIN not registered", map[string]interface{}{
				"gstin": gstin,
			})
			return nil, nil, ErrInvalidCredentials
		}
		logger.Error("Failed to look up registration", err, map[string]interface{}{
			"gstin": gstin,
		})
		return nil, nil, err
	}

	if registration.Email != email {
		logger.Warn("Login failed: email mismatch", map[string]interface{}{
			"gstin": gstin,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(
		registration.GSTIN,
		registration.Email,
		s.jwtSecret,
		s.accessExpiry,
		s.refreshExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"gstin": gstin,
		})
		return nil, nil, err
	}

	logger.Info("Vendor logged in successfully", map[string]interface{}{
		"gstin": registration.GSTIN,
	})

	return registration, tokens, nil
}

// Logout revokes the presented token for its remaining lifetime. Without a
// Redis connection (local development) revocation is skipped.
func (s *authService) Logout(ctx context.Context, token string) error {
	if redis.GetClient() == nil {
		logger.Warn("Logout without Redis: token not denylisted")
		return nil
	}
	return redis.DenylistToken(ctx, token, s.refreshExpiry)
}

func (s *authService) GetRegistration(gstin string) (*model.Registration, error) {
	registration, err := s.registrationRepo.FindByGSTIN(gstin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return registration, nil
}
