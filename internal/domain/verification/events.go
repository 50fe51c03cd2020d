package verification

import "gitlab.com/onboardly/accounts-backend/internal/domain/event"

const StreamName = "verifications"

// CodeRequested is published when a verification code was issued. The mail
// handler consumes it and delivers the code to the address.
type CodeRequested struct {
	event.Header
	Email string
	Code  string
}

func (e *CodeRequested) GetStreamName() string { return StreamName }
