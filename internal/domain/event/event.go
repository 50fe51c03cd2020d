package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/propagation"
)

type Event interface {
	GetEventHeader() Header
	GetStreamName() string
}

type Header struct {
	ID        uuid.UUID
	Timestamp time.Time
	Metadata  map[string]string
}

func (e *Header) GetEventHeader() Header {
	return *e
}

func NewEventHeader() Header {
	return Header{
		ID:        uuid.New(),
		Timestamp: time.Now(),
	}
}

// Propagate stores the current trace context in the event metadata so the
// consumer side can link its span back to the producer's.
func (e *Header) Propagate(ctx context.Context) {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}

	carrier := propagation.MapCarrier(e.Metadata)
	propagation.TraceContext{}.Inject(ctx, carrier)
	propagation.Baggage{}.Inject(ctx, carrier)
}

// Extract rebuilds a context carrying the producer's trace context.
func (e *Header) Extract() context.Context {
	carrier := propagation.MapCarrier(e.Metadata)

	ctx := context.Background()
	ctx = propagation.TraceContext{}.Extract(ctx, carrier)
	ctx = propagation.Baggage{}.Extract(ctx, carrier)

	return ctx
}

// Recorder collects events an aggregate raised until the repository publishes
// them inside the same transaction as the aggregate's rows.
type Recorder struct {
	events []Event
}

func (e *Recorder) AddEvent(event Event) {
	if e == nil {
		return
	}
	e.events = append(e.events, event)
}

func (e *Recorder) GetUncommittedEvents() []Event {
	if e == nil {
		return nil
	}
	return e.events
}

func (e *Recorder) MarkEventsAsCommitted() {
	if e == nil {
		return
	}
	e.events = []Event{}
}
