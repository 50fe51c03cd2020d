package i18nx

// Error message keys, resolved against locales/*.toml.
const (
	// Client errors
	KeyInvalid            = "invalid"
	KeyValidationFailed   = "validation_failed"
	KeyMalformedJSON      = "malformed_json"
	KeyUnauthorized       = "unauthorized"
	KeyInvalidCredentials = "invalid_credentials"
	KeyNotFound           = "not_found"
	KeyNotFoundWithType   = "not_found_with_type"
	KeyConflict           = "conflict"
	KeyDuplicateEntry     = "duplicate_entry"

	// Server errors
	KeyInternalError     = "internal_error"
	KeyUpstreamError     = "upstream_error"
	KeyUpstreamTimeout   = "upstream_timeout"
	KeyCompensationFail  = "compensation_failed"
	KeyReconcileRequired = "reconcile_required"

	// Verification specific
	KeyInvalidKey              = "invalid_key"
	KeyInvalidVerificationCode = "invalid_verification_code"

	// File validation
	ValidationInvalidFileType  = "validation_invalid_file_type"
	ValidationFileSizeTooLarge = "validation_file_size_too_large"
	ValidationFileSizeTooSmall = "validation_file_size_too_small"
)

// Template argument names shared between rules and locale files.
const (
	ArgList      = "List"
	ArgThreshold = "Threshold"
	ArgUnit      = "Unit"
)

// English fallbacks for validation rules created outside the bundle.
const (
	MsgValidationInvalidFileTypeOther  = "file type is not allowed"
	MsgValidationFileSizeTooLargeOther = "file exceeds the maximum allowed size"
	MsgValidationFileSizeTooSmallOther = "file is below the minimum allowed size"
)
