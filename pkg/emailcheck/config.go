package emailcheck

// Config represents the configuration for the email verification client
type Config struct {
	// BaseURL is the verification service base URL. Empty means dev mode:
	// every address is treated as valid without any network call.
	BaseURL string

	// APIKey authenticates this client against the verification service
	APIKey string

	// ClientSecret is the shared secret used to seal request payloads
	ClientSecret string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		// Dev mode needs no credentials.
		return nil
	}
	if c.APIKey == "" {
		return ErrInvalidConfig
	}
	if c.ClientSecret == "" {
		return ErrInvalidConfig
	}
	return nil
}
