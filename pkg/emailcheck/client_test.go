package emailcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sreemathipalanisamy/gst-service-register/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DevMode_AutoApproves(t *testing.T) {
	client, err := NewClient(Config{}, time.Second)
	require.NoError(t, err)
	assert.True(t, client.DevMode())

	result, err := client.VerifyEmail(context.Background(), "vendor@example.com")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.Valid)
}

func TestNewClient_InvalidConfig(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "http://localhost:5000"}, time.Second)
	assert.ErrorContains(t, err, "invalid config")
}

func TestClient_VerifyEmail(t *testing.T) {
	const secret = "default_password"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/service/verify_email", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))

		var body sealedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		plaintext, err := util.OpenPayload(body.EncryptedData, secret)
		require.NoError(t, err)

		var payload verifyEmailRequest
		require.NoError(t, json.Unmarshal(plaintext, &payload))
		assert.Equal(t, "vendor@example.com", payload.Email)

		json.NewEncoder(w).Encode(verifyEmailAPIResponse{Valid: true, Message: "deliverable"})
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURL:      server.URL,
		APIKey:       "test-key",
		ClientSecret: secret,
	}, time.Second)
	require.NoError(t, err)

	result, err := client.VerifyEmail(context.Background(), "vendor@example.com")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.Valid)
	assert.Equal(t, "deliverable", result.Message)
}

func TestClient_VerifyEmail_InvalidAddress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(verifyEmailAPIResponse{Valid: false, Message: "mailbox does not exist"})
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURL:      server.URL,
		APIKey:       "test-key",
		ClientSecret: "pw",
	}, time.Second)
	require.NoError(t, err)

	result, err := client.VerifyEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.False(t, result.Valid)
}

func TestClient_VerifyEmail_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client, err := NewClient(Config{
		BaseURL:      server.URL,
		APIKey:       "bad-key",
		ClientSecret: "pw",
	}, time.Second)
	require.NoError(t, err)

	result, err := client.VerifyEmail(context.Background(), "vendor@example.com")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, result)
}
