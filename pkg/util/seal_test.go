package util

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealAndOpenPayload(t *testing.T) {
	payload := map[string]string{"email": "vendor@example.com"}

	sealed, err := SealPayload(payload, "default_password")
	require.NoError(t, err)
	require.NotEmpty(t, sealed)

	opened, err := OpenPayload(sealed, "default_password")
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(opened, &decoded))
	assert.Equal(t, payload, decoded)
}

func TestSealPayload_EnvelopeShape(t *testing.T) {
	sealed, err := SealPayload(map[string]string{"email": "a@b.c"}, "pw")
	require.NoError(t, err)

	envelopeJSON, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(envelopeJSON, &envelope))

	assert.Equal(t, "AES-256-GCM", envelope["algorithm"])
	assert.Equal(t, float64(100000), envelope["iterations"])
	for _, field := range []string{"ciphertext", "nonce", "tag", "salt"} {
		assert.NotEmpty(t, envelope[field], field)
	}
}

func TestSealPayload_DistinctEnvelopes(t *testing.T) {
	// Fresh salt and nonce every call, so identical payloads never repeat.
	first, err := SealPayload(map[string]string{"email": "a@b.c"}, "pw")
	require.NoError(t, err)
	second, err := SealPayload(map[string]string{"email": "a@b.c"}, "pw")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestOpenPayload_WrongPassword(t *testing.T) {
	sealed, err := SealPayload(map[string]string{"email": "a@b.c"}, "pw")
	require.NoError(t, err)

	opened, err := OpenPayload(sealed, "other")
	assert.ErrorIs(t, err, ErrSealedPayloadInvalid)
	assert.Nil(t, opened)
}

func TestOpenPayload_Garbage(t *testing.T) {
	opened, err := OpenPayload("!!!not-base64!!!", "pw")
	assert.ErrorIs(t, err, ErrSealedPayloadInvalid)
	assert.Nil(t, opened)
}
