package service

import (
	"context"
	"errors"
	"sync"

	"github.com/freeeve/war-simulator/internal/model"
	"github.com/freeeve/war-simulator/pkg/combat"
)

type mockArmyRepo struct {
	armies   map[string]*model.Army     // owner ID -> army
	strength map[string]combat.Snapshot // army ID -> raw branch sums
	findErr  error
	sumErr   error
}

func newMockArmyRepo() *mockArmyRepo {
	return &mockArmyRepo{
		armies:   make(map[string]*model.Army),
		strength: make(map[string]combat.Snapshot),
	}
}

// addArmy registers an army for ownerID with the given raw branch sums.
func (m *mockArmyRepo) addArmy(ownerID string, adv combat.Advantage, raw combat.Snapshot) {
	id := "army-" + ownerID
	m.armies[ownerID] = &model.Army{ID: id, UserID: ownerID, Name: "Army " + ownerID, Advantage: adv}
	m.strength[id] = raw
}

func (m *mockArmyRepo) FindByOwnerID(_ context.Context, userID string) (*model.Army, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	a, ok := m.armies[userID]
	if !ok {
		return nil, nil
	}
	return a, nil
}

func (m *mockArmyRepo) SumBranchStrength(_ context.Context, armyID string, branch combat.Branch) (float64, error) {
	if m.sumErr != nil {
		return 0, m.sumErr
	}
	return m.strength[armyID].Get(branch), nil
}

type failingSessionStore struct {
	MemorySessionStore
	saveErr error
}

func (f *failingSessionStore) CompareAndSwap(ctx context.Context, prev, next combat.Session) (bool, error) {
	if f.saveErr != nil {
		return false, f.saveErr
	}
	return f.MemorySessionStore.CompareAndSwap(ctx, prev, next)
}

// barrierSessionStore stands in for a store shared by several instances. Each
// Load waits until every party has read, so all of them act on the same session.
type barrierSessionStore struct {
	*MemorySessionStore
	arrived sync.WaitGroup
}

func newBarrierSessionStore(parties int) *barrierSessionStore {
	b := &barrierSessionStore{MemorySessionStore: NewMemorySessionStore()}
	b.arrived.Add(parties)
	return b
}

func (b *barrierSessionStore) Load(ctx context.Context) (combat.Session, error) {
	sess, err := b.MemorySessionStore.Load(ctx)
	b.arrived.Done()
	b.arrived.Wait()
	return sess, err
}

type recordedEvent struct {
	users     []string
	eventType string
	data      any
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recordingBroadcaster) BroadcastBattleEvent(userIDs []string, eventType string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{users: userIDs, eventType: eventType, data: data})
}

func (r *recordingBroadcaster) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		out = append(out, e.eventType)
	}
	return out
}

var errDBDown = errors.New("db down")
