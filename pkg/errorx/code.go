package errorx

type Code string

func (c Code) String() string {
	return string(c)
}

const (
	// Client errors (4xx)
	CodeInvalid            Code = "INVALID"
	CodeValidationFailed   Code = "VALIDATION_FAILED"
	CodeMalformedJSON      Code = "MALFORMED_JSON"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeConflict           Code = "CONFLICT"
	CodeDuplicateEntry     Code = "DUPLICATE_ENTRY"

	// Server errors (5xx)
	CodeInternal           Code = "INTERNAL_ERROR"
	CodeUpstreamError      Code = "UPSTREAM_SERVICE_ERROR"
	CodeUpstreamTimeout    Code = "UPSTREAM_TIMEOUT"
	CodeCompensationFailed Code = "COMPENSATION_FAILED"

	// CodeReconcileRequired marks a state where the local store committed but a
	// required remote step failed afterwards. The two systems are durably
	// diverged and an operator has to reconcile them by hand. It must stay
	// distinguishable from an ordinary retryable 5xx.
	CodeReconcileRequired Code = "MANUAL_RECONCILIATION_REQUIRED"
)
