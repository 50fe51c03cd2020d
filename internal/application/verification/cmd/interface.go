package cmd

import (
	"context"
	"time"

	"gitlab.com/onboardly/accounts-backend/internal/adapters/services/identity"
	"gitlab.com/onboardly/accounts-backend/internal/domain/event"
)

type Cache interface {
	Set(key, value string, ttl time.Duration)
	Consume(key, value string) (matched, found bool)
}

type Publisher interface {
	Publish(ctx context.Context, evts ...event.Event) error
}

type Verifier interface {
	MarkVerified(ctx context.Context, email, code string) (identity.VerifyReply, error)
}
