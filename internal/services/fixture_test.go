package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dantebozzuti27/baseline-video/internal/auth"
	"github.com/dantebozzuti27/baseline-video/internal/events"
	"github.com/dantebozzuti27/baseline-video/internal/models"
	"github.com/dantebozzuti27/baseline-video/internal/store/memstore"
	"github.com/google/uuid"
)

type recordingSink struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recordingSink) Record(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *recordingSink) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType)
	}
	return out
}

func (r *recordingSink) count(eventType string) int {
	n := 0
	for _, t := range r.types() {
		if t == eventType {
			n++
		}
	}
	return n
}

// teamFixture is one team with a coach and an active, claimed player.
type teamFixture struct {
	store    *memstore.Store
	sink     *recordingSink
	deps     Deps
	team     *models.Team
	coachID  uuid.UUID
	playerID uuid.UUID

	mu  sync.Mutex
	now time.Time
}

func newTeamFixture(t *testing.T) *teamFixture {
	t.Helper()

	f := &teamFixture{
		store: memstore.New(),
		sink:  &recordingSink{},
		now:   time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC),
	}
	f.store.SetClock(f.clock)
	f.deps = Deps{Store: f.store, Events: f.sink, Now: f.clock}

	f.coachID = uuid.New()
	f.team, _ = f.store.AddTeam("River Hawks", f.coachID, "Coach Kim")
	f.playerID = uuid.New()
	f.store.AddPlayer(f.team.ID, f.playerID, "Sam Rivera")
	return f
}

func (f *teamFixture) clock() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *teamFixture) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func (f *teamFixture) addPlayer(name string) uuid.UUID {
	id := uuid.New()
	f.store.AddPlayer(f.team.ID, id, name)
	return id
}

func as(userID uuid.UUID) context.Context {
	return auth.WithUserID(context.Background(), userID)
}
