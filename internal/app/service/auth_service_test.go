package service

import (
	"context"
	"testing"
	"time"

	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/model"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/repository"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/db"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) (AuthService, *model.Registration) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	registrationRepo := repository.NewRegistrationRepository(testDB)
	authService := NewAuthService(registrationRepo, "test-secret", time.Hour, 24*time.Hour)

	registration := &model.Registration{
		GSTIN:         "22AAAAA0000A1Z5",
		VendorType:    model.VendorRetailer,
		Email:         "vendor@example.com",
		Turnover:      5000000,
		State:         "Tamil Nadu",
		ITC:           model.ITCOptedIn,
		EmailVerified: true,
	}
	testDB.Create(registration)

	return authService, registration
}

func TestAuthService_Login_Success(t *testing.T) {
	authService, registration := setupAuthServiceTest(t)

	got, tokens, err := authService.Login(registration.GSTIN, registration.Email)
	require.NoError(t, err)
	assert.Equal(t, registration.GSTIN, got.GSTIN)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := util.ValidateToken(tokens.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, registration.GSTIN, claims.GSTIN)
	assert.Equal(t, registration.Email, claims.Email)
}

func TestAuthService_Login_UnknownGSTIN(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	got, tokens, err := authService.Login("33BBBBB1111B2Z6", "vendor@example.com")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, got)
	assert.Nil(t, tokens)
}

func TestAuthService_Login_EmailMismatch(t *testing.T) {
	authService, registration := setupAuthServiceTest(t)

	got, tokens, err := authService.Login(registration.GSTIN, "wrong@example.com")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, got)
	assert.Nil(t, tokens)
}

func TestAuthService_GetRegistration(t *testing.T) {
	authService, registration := setupAuthServiceTest(t)

	got, err := authService.GetRegistration(registration.GSTIN)
	require.NoError(t, err)
	assert.Equal(t, registration.Email, got.Email)

	got, err = authService.GetRegistration("33BBBBB1111B2Z6")
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
	assert.Nil(t, got)
}

func TestAuthService_Logout_WithoutRedis(t *testing.T) {
	authService, registration := setupAuthServiceTest(t)

	_, tokens, err := authService.Login(registration.GSTIN, registration.Email)
	require.NoError(t, err)

	// Without a denylist backend logout degrades to a no-op
	err = authService.Logout(context.Background(), tokens.AccessToken)
	assert.NoError(t, err)
}
