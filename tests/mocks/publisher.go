package mocks

import (
	"context"
	"sync"
	"testing"

	"gitlab.com/onboardly/accounts-backend/internal/domain/event"
)

type Publisher struct {
	mu     sync.Mutex
	events []event.Event

	PublishErr error
}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) Publish(ctx context.Context, evts ...event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.PublishErr != nil {
		return p.PublishErr
	}

	p.events = append(p.events, evts...)
	return nil
}

func (p *Publisher) Events() []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]event.Event{}, p.events...)
}

func (p *Publisher) AssertPublishedCount(t *testing.T, count int) {
	t.Helper()

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.events) != count {
		t.Errorf("expected %d published events, got %d", count, len(p.events))
	}
}
