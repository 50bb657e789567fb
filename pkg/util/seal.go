package util

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// The verification API expects request bodies framed as a sealed envelope:
// AES-256-GCM over the JSON payload, key derived from the shared client
// secret with PBKDF2. This is transport framing expected by the upstream
// service, not an application security boundary.

const (
	sealSaltSize   = 16
	sealNonceSize  = 12
	sealKeySize    = 32
	sealTagSize    = 16
	sealIterations = 100000
	sealAlgorithm  = "AES-256-GCM"
)

var ErrSealedPayloadInvalid = errors.New("sealed payload is invalid")

// sealedEnvelope is the wire layout the upstream service decodes. The GCM tag
// travels in its own field, split off the ciphertext.
type sealedEnvelope struct {
	Ciphertext string `json:"ciphertext"`
	Nonce      string `json:"nonce"`
	Tag        string `json:"tag"`
	Salt       string `json:"salt"`
	Algorithm  string `json:"algorithm"`
	Iterations int    `json:"iterations"`
}

// SealPayload encrypts data (marshalled to JSON) under the password and
// returns the base64 envelope string the upstream API accepts.
func SealPayload(data interface{}, password string) (string, error) {
	plaintext, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	salt := make([]byte, sealSaltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	nonce := make([]byte, sealNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	gcm, err := newSealCipher(password, salt)
	if err != nil {
		return "", err
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	ciphertext := sealed[:len(sealed)-sealTagSize]
	tag := sealed[len(sealed)-sealTagSize:]

	envelope := sealedEnvelope{
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Tag:        base64.StdEncoding.EncodeToString(tag),
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Algorithm:  sealAlgorithm,
		Iterations: sealIterations,
	}

	envelopeJSON, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("failed to marshal envelope: %w", err)
	}

	return base64.StdEncoding.EncodeToString(envelopeJSON), nil
}

// OpenPayload reverses SealPayload, returning the original JSON bytes.
func OpenPayload(payload, password string) ([]byte, error) {
	envelopeJSON, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrSealedPayloadInvalid
	}

	var envelope sealedEnvelope
	if err := json.Unmarshal(envelopeJSON, &envelope); err != nil {
		return nil, ErrSealedPayloadInvalid
	}

	ciphertext, err := base64.StdEncoding.DecodeString(envelope.Ciphertext)
	if err != nil {
		return nil, ErrSealedPayloadInvalid
	}
	nonce, err := base64.StdEncoding.DecodeString(envelope.Nonce)
	if err != nil || len(nonce) != sealNonceSize {
		return nil, ErrSealedPayloadInvalid
	}
	tag, err := base64.StdEncoding.DecodeString(envelope.Tag)
	if err != nil || len(tag) != sealTagSize {
		return nil, ErrSealedPayloadInvalid
	}
	salt, err := base64.StdEncoding.DecodeString(envelope.Salt)
	if err != nil {
		return nil, ErrSealedPayloadInvalid
	}

	gcm, err := newSealCipher(password, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return nil, ErrSealedPayloadInvalid
	}

	return plaintext, nil
}

func newSealCipher(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, sealIterations, sealKeySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return gcm, nil
}
