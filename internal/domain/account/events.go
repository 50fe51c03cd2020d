package account

import "gitlab.com/onboardly/accounts-backend/internal/domain/event"

const StreamName = "accounts"

type Created struct {
	event.Header
	AccountID ID
	UserID    string
}

func (e *Created) GetStreamName() string { return StreamName }

type Updated struct {
	event.Header
	AccountID ID
	UserID    string
}

func (e *Updated) GetStreamName() string { return StreamName }

type Deleted struct {
	event.Header
	AccountID ID
	UserID    string
}

func (e *Deleted) GetStreamName() string { return StreamName }
