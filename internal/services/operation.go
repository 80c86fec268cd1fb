package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/auth"
	"github.com/dantebozzuti27/baseline-video/internal/events"
	"github.com/dantebozzuti27/baseline-video/internal/logging"
	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/store"
	"github.com/dantebozzuti27/baseline-video/internal/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Deps are the collaborators shared by every workflow service.
type Deps struct {
	Store  store.Store
	Events events.Sink
	Logger *slog.Logger
	Tracer trace.Tracer
	Now    func() time.Time
}

type base struct {
	gate   *Gate
	store  store.Store
	events events.Sink
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

func newBase(deps Deps) base {
	b := base{
		gate:   NewGate(deps.Store),
		store:  deps.Store,
		events: deps.Events,
		logger: deps.Logger,
		tracer: deps.Tracer,
		now:    deps.Now,
	}
	if b.events == nil {
		b.events = events.Discard()
	}
	if b.logger == nil {
		b.logger = logging.Discard()
	}
	if b.tracer == nil {
		b.tracer = telemetry.Tracer()
	}
	if b.now == nil {
		b.now = time.Now
	}
	return b
}

// caller resolves an active caller, optionally restricted to one role.
func (b *base) caller(ctx context.Context, roles ...models.Role) (*Caller, error) {
	c, err := b.gate.CurrentCaller(ctx)
	if err != nil {
		return nil, err
	}
	for _, role := range roles {
		if err := RequireRole(c, role); err != nil {
			return nil, err
		}
	}
	if err := RequireActive(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Authorize runs the caller checks an operation starts with, and nothing
// else. Transport layers use it to rank a malformed request behind an
// authentication or role failure.
func (b *base) Authorize(ctx context.Context, roles ...models.Role) error {
	_, err := b.caller(ctx, roles...)
	return err
}

// emit records an event without letting a sink failure reach the caller.
func (b *base) emit(ctx context.Context, e events.Event) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = b.now()
	}
	ctx = context.WithoutCancel(ctx)
	if err := b.events.Record(ctx, e); err != nil {
		b.logger.WarnContext(ctx, "failed to record event",
			"event_type", e.EventType,
			"subject_id", e.SubjectID,
			"error", err,
		)
	}
}

// run executes one workflow operation inside a span and converts its error
// into an outcome. Unexpected failures are logged here and nowhere else.
func run[T any](b *base, ctx context.Context, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, span := b.tracer.Start(ctx, op)
	defer span.End()

	result, err := fn(ctx)
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return result, nil
	}

	var zero T
	outcome := b.outcome(ctx, op, err)
	span.SetAttributes(attribute.String("outcome", string(outcome.Kind)))
	if outcome.Kind == KindServer {
		span.RecordError(err)
		span.SetStatus(codes.Error, op)
	}
	return zero, outcome
}

func (b *base) outcome(ctx context.Context, op string, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if e, ok := fromStore(err); ok {
		return e
	}

	userID, _ := auth.UserID(ctx)
	level := slog.LevelError
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		level = slog.LevelWarn
	}
	b.logger.Log(ctx, level, "operation failed",
		"op", op,
		"user_id", userID,
		"request_id", logging.RequestID(ctx),
		"error", err,
	)
	return ErrServer
}

func ptr[T any](v T) *T {
	return &v
}

func teamEvent(c *Caller, eventType, subjectType string, subjectID uuid.UUID, metadata map[string]any) events.Event {
	return events.Event{
		TeamID:      ptr(c.TeamID),
		ActorUserID: ptr(c.UserID),
		EventType:   eventType,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		Metadata:    metadata,
	}
}
