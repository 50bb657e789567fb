package errors

// Error code constants returned in API responses.
// Format: CATEGORY_SPECIFIC_DETAIL. The frontend maps these codes to
// user-facing messages, so they are part of the API contract.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // GSTIN/email mismatch
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expired
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token denylisted

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Registration (REGISTRATION_) ====================
	RegistrationNotFound        = "REGISTRATION_NOT_FOUND"
	RegistrationGSTINExists     = "REGISTRATION_GSTIN_EXISTS"
	RegistrationInvalidGSTIN    = "REGISTRATION_INVALID_GSTIN"
	RegistrationEmailUnverified = "REGISTRATION_EMAIL_UNVERIFIED"

	// ==================== Invoice (INVOICE_) ====================
	InvoiceNotFound      = "INVOICE_NOT_FOUND"
	InvoiceDuplicateID   = "INVOICE_DUPLICATE_ID"   // invoice number taken for this GSTIN
	InvoiceLocked        = "INVOICE_LOCKED"         // mutation attempted after save
	InvoiceAlreadySaved  = "INVOICE_ALREADY_SAVED"  // redundant save
	InvoiceNoLineItems   = "INVOICE_NO_LINE_ITEMS"  // save requires at least one item
	InvoiceInvalidItem   = "INVOICE_INVALID_ITEM"   // bad line item index or payload
	InvoiceInvalidState  = "INVOICE_INVALID_STATE"  // billing state not in the region list
	InvoiceInvalidStatus = "INVOICE_INVALID_STATUS" // unknown status/payment status value

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API" // email-check upstream failure
)
