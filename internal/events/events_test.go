package events

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/database"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSink struct{ err error }

func (f failingSink) Record(context.Context, Event) error { return f.err }

type recordingSink struct{ got []Event }

func (r *recordingSink) Record(_ context.Context, e Event) error {
	r.got = append(r.got, e)
	return nil
}

func TestPostgresSink_Record(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	teamID := uuid.New()
	actorID := uuid.New()
	subjectID := uuid.New()
	at := time.Now()

	mock.ExpectExec(`INSERT INTO audit_events`).
		WithArgs(&teamID, &actorID, LessonCancelled, "lesson", subjectID, []byte(`{"by":"coach"}`), at).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	sink := NewPostgresSink(&database.DB{Pool: mock})
	err = sink.Record(context.Background(), Event{
		TeamID:      &teamID,
		ActorUserID: &actorID,
		EventType:   LessonCancelled,
		SubjectType: "lesson",
		SubjectID:   subjectID,
		Metadata:    map[string]any{"by": "coach"},
		OccurredAt:  at,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSink_RecordError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`INSERT INTO audit_events`).WillReturnError(assert.AnError)

	sink := NewPostgresSink(&database.DB{Pool: mock})
	err = sink.Record(context.Background(), Event{EventType: TeamJoined, SubjectType: "profile", SubjectID: uuid.New()})

	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMulti_RecordsEverywhere(t *testing.T) {
	a := &recordingSink{}
	boom := errors.New("boom")
	sink := Multi(a, failingSink{err: boom}, Discard())

	err := sink.Record(context.Background(), Event{EventType: FocusCreated})

	assert.ErrorIs(t, err, boom)
	require.Len(t, a.got, 1)
	assert.Equal(t, FocusCreated, a.got[0].EventType)
}

func TestLogSink_Record(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(slog.New(slog.NewJSONHandler(&buf, nil)))

	err := sink.Record(context.Background(), Event{EventType: AccessCodeRotated, SubjectType: "team", SubjectID: uuid.New()})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), AccessCodeRotated)
}
