package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/model"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/repository"
	"github.com/Sreemathipalanisamy/gst-service-register/internal/db"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/emailcheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRegistrationServiceTest(t *testing.T, emailClient *emailcheck.Client) (RegistrationService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	if emailClient == nil {
		// Dev mode: verification auto-approves without a network call
		emailClient, err = emailcheck.NewClient(emailcheck.Config{}, time.Second)
		require.NoError(t, err)
	}

	registrationRepo := repository.NewRegistrationRepository(testDB)
	return NewRegistrationService(registrationRepo, emailClient), testDB
}

func validInput() RegistrationInput {
	return RegistrationInput{
		GSTIN:      "22AAAAA0000A1Z5",
		VendorType: model.VendorRetailer,
		Email:      "vendor@example.com",
		Turnover:   5000000,
		State:      "Tamil Nadu",
		ITC:        model.ITCOptedIn,
	}
}

func TestRegistrationService_Register_Success(t *testing.T) {
	registrationService, _ := setupRegistrationServiceTest(t, nil)

	registration, err := registrationService.Register(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotZero(t, registration.ID)
	assert.Equal(t, "22AAAAA0000A1Z5", registration.GSTIN)
	assert.Equal(t, model.VendorRetailer, registration.VendorType)
	assert.True(t, registration.EmailVerified)
	assert.NotNil(t, registration.VerifiedAt)
}

func TestRegistrationService_Register_InvalidGSTIN(t *testing.T) {
	registrationService, _ := setupRegistrationServiceTest(t, nil)

	input := validInput()
	input.GSTIN = "not-a-gstin"
	registration, err := registrationService.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidGSTIN)
	assert.Nil(t, registration)
}

func TestRegistrationService_Register_DuplicateGSTIN(t *testing.T) {
	registrationService, _ := setupRegistrationServiceTest(t, nil)

	_, err := registrationService.Register(context.Background(), validInput())
	require.NoError(t, err)

	input := validInput()
	input.Email = "other@example.com"
	registration, err := registrationService.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrGSTINAlreadyExists)
	assert.Nil(t, registration)
}

func TestRegistrationService_Register_InvalidState(t *testing.T) {
	registrationService, _ := setupRegistrationServiceTest(t, nil)

	input := validInput()
	input.State = "Atlantis"
	registration, err := registrationService.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Nil(t, registration)
}

func TestRegistrationService_Register_InvalidVendorType(t *testing.T) {
	registrationService, _ := setupRegistrationServiceTest(t, nil)

	input := validInput()
	input.VendorType = "Smuggler"
	registration, err := registrationService.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidVendorType)
	assert.Nil(t, registration)
}

func TestRegistrationService_Register_InvalidITC(t *testing.T) {
	registrationService, _ := setupRegistrationServiceTest(t, nil)

	input := validInput()
	input.ITC = "Maybe"
	registration, err := registrationService.Register(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidITC)
	assert.Nil(t, registration)
}

func TestRegistrationService_Register_EmailRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"valid": false, "message": "mailbox does not exist"}`))
	}))
	defer server.Close()

	emailClient, err := emailcheck.NewClient(emailcheck.Config{
		BaseURL:      server.URL,
		APIKey:       "test-key",
		ClientSecret: "test-secret",
	}, time.Second)
	require.NoError(t, err)

	registrationService, testDB := setupRegistrationServiceTest(t, emailClient)

	registration, err := registrationService.Register(context.Background(), validInput())
	assert.ErrorIs(t, err, ErrEmailRejected)
	assert.Nil(t, registration)

	// Nothing was persisted
	var count int64
	testDB.Model(&model.Registration{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRegistrationService_GetByGSTIN(t *testing.T) {
	registrationService, _ := setupRegistrationServiceTest(t, nil)

	_, err := registrationService.Register(context.Background(), validInput())
	require.NoError(t, err)

	registration, err := registrationService.GetByGSTIN("22AAAAA0000A1Z5")
	require.NoError(t, err)
	assert.Equal(t, "vendor@example.com", registration.Email)

	registration, err = registrationService.GetByGSTIN("33BBBBB1111B2Z6")
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
	assert.Nil(t, registration)
}

func TestRegistrationService_VerifyEmail_DevMode(t *testing.T) {
	registrationService, _ := setupRegistrationServiceTest(t, nil)

	result, err := registrationService.VerifyEmail(context.Background(), "anyone@example.com")
	require.NoError(t, err)
	assert.True(t, result.Valid)
}
