package emailcheck

// verifyEmailRequest is the plaintext payload sealed into the request body.
type verifyEmailRequest struct {
	Email string `json:"email"`
}

// sealedRequest is the actual request body: the sealed envelope string.
type sealedRequest struct {
	EncryptedData string `json:"encrypted_data"`
}

// verifyEmailAPIResponse is the upstream response body.
type verifyEmailAPIResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// VerificationResult is the outcome reported to callers. Success tells
// whether the check ran at all; Valid whether the address checked out.
type VerificationResult struct {
	Success bool   `json:"success"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}
