//go:build integration

package redis

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/freeeve/war-simulator/internal/testutil"
	"github.com/freeeve/war-simulator/pkg/combat"
)

var testRDB *goredis.Client

func setup(t *testing.T) *Client {
	t.Helper()
	if testRDB == nil {
		testRDB = testutil.SetupRedis(t)
	}
	testutil.CleanupRedis(t, testRDB)
	return NewClientFromPool(testRDB)
}

func TestBattleSessionMissingIsIdle(t *testing.T) {
	c := setup(t)

	sess, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !sess.Idle() || sess.OpponentID != "" {
		t.Errorf("expected idle session, got %+v", sess)
	}
}

func TestBattleSessionRoundTrip(t *testing.T) {
	c := setup(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	want := combat.Session{
		Phase:       combat.AirWon,
		OpponentID:  "user-b",
		InitiatorID: "user-a",
		BattleID:    "battle-1",
		StartedAt:   started,
	}
	if ok, err := c.CompareAndSwap(ctx, combat.Session{}, want); err != nil || !ok {
		t.Fatalf("swap: ok=%v err=%v", ok, err)
	}

	raw, err := testRDB.Get(ctx, sessionKey).Result()
	if err != nil {
		t.Fatalf("raw get: %v", err)
	}
	if raw == "" {
		t.Fatal("expected session to be stored")
	}

	got, err := c.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Phase != want.Phase || got.OpponentID != want.OpponentID || got.InitiatorID != want.InitiatorID || got.BattleID != want.BattleID {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
	if !got.StartedAt.Equal(started) {
		t.Errorf("expected started_at %v, got %v", started, got.StartedAt)
	}
}

func TestBattleSessionSwapToIdleClearsKey(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	open := combat.Session{Phase: combat.InProgress, OpponentID: "user-b", BattleID: "battle-2"}
	if ok, err := c.CompareAndSwap(ctx, combat.Session{}, open); err != nil || !ok {
		t.Fatalf("swap: ok=%v err=%v", ok, err)
	}
	if ok, err := c.CompareAndSwap(ctx, open, combat.Session{}); err != nil || !ok {
		t.Fatalf("swap idle: ok=%v err=%v", ok, err)
	}

	n, err := testRDB.Exists(ctx, sessionKey).Result()
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if n != 0 {
		t.Error("expected session key to be removed")
	}
}

func TestBattleSessionCorruptPayload(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	if err := testRDB.Set(ctx, sessionKey, "not-json", 0).Err(); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := c.Load(ctx); err == nil {
		t.Error("expected decode error")
	}
}

func TestBattleSessionSwapRejectsStalePrev(t *testing.T) {
	c := setup(t)
	ctx := context.Background()

	first := combat.Session{Phase: combat.InProgress, OpponentID: "p1", InitiatorID: "p0", BattleID: "battle-a"}
	second := combat.Session{Phase: combat.InProgress, OpponentID: "p3", InitiatorID: "p2", BattleID: "battle-b"}

	if ok, err := c.CompareAndSwap(ctx, combat.Session{}, first); err != nil || !ok {
		t.Fatalf("first swap: ok=%v err=%v", ok, err)
	}
	ok, err := c.CompareAndSwap(ctx, combat.Session{}, second)
	if err != nil {
		t.Fatalf("second swap: %v", err)
	}
	if ok {
		t.Fatal("expected swap from a stale idle session to be refused")
	}

	got, err := c.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.BattleID != "battle-a" {
		t.Errorf("expected the first battle to survive, got %+v", got)
	}
}

func TestBattleSessionConcurrentStartsAcrossClients(t *testing.T) {
	c := setup(t)
	ctx := context.Background()
	const clients = 8

	var wg sync.WaitGroup
	var mu sync.Mutex
	won := []string{}
	for i := range clients {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Separate Client values share the pool, as separate server processes share Redis.
			client := NewClientFromPool(testRDB)
			prev, err := client.Load(ctx)
			if err != nil || !prev.Idle() {
				return
			}
			id := fmt.Sprintf("battle-%d", i)
			next := combat.Session{Phase: combat.InProgress, OpponentID: "enemy", InitiatorID: id, BattleID: id}
			ok, err := client.CompareAndSwap(ctx, prev, next)
			if err != nil {
				t.Errorf("swap: %v", err)
				return
			}
			if ok {
				mu.Lock()
				won = append(won, id)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(won) != 1 {
		t.Fatalf("expected exactly one battle to start, got %v", won)
	}
	got, err := c.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.BattleID != won[0] {
		t.Errorf("stored battle %s does not match the winner %s", got.BattleID, won[0])
	}
}
