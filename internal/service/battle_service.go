package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/freeeve/war-simulator/internal/logger"
	"github.com/freeeve/war-simulator/internal/repository"
	"github.com/freeeve/war-simulator/pkg/combat"
)

const (
	msgBattleOpen  = "please finish your last battle before starting a new one"
	msgBattleMoved = "the battle was updated by another request, please try again"
)

// BattleStats holds both sides' adjusted strength.
type BattleStats struct {
	You   combat.Snapshot `json:"you"`
	Enemy combat.Snapshot `json:"enemy"`
}

// StartResult is returned when a battle opens.
type StartResult struct {
	Message  string      `json:"msg"`
	Next     string      `json:"next"`
	BattleID string      `json:"battle_id"`
	Stats    BattleStats `json:"stats"`
}

// AirBattleResult is returned after the air phase. Only the air winner's
// surface-plane strength is reported since the loser's planes are grounded.
type AirBattleResult struct {
	Message string `json:"msg"`
	Next    string `json:"next"`
	combat.AirResult
	YourSurfacePlanes  *float64 `json:"your_surface_planes,omitempty"`
	EnemySurfacePlanes *float64 `json:"enemy_surface_planes,omitempty"`
}

// SurfaceBattleResult is returned when the battle ends.
type SurfaceBattleResult struct {
	Message string `json:"msg"`
	combat.SurfaceResult
}

// BattleService drives the battle state machine over the shared session.
//
// There is one session for the whole deployment, so only one battle can be in
// flight at a time regardless of who is fighting. Each operation holds mu from
// the session load to the session save, and the save is a compare-and-swap so
// instances sharing one store cannot overwrite each other's transitions.
type BattleService struct {
	mu          sync.Mutex
	aggregator  *StrengthAggregator
	sessions    repository.SessionStore
	broadcaster Broadcaster
	coin        combat.CoinSource
	now         func() time.Time
}

// NewBattleService creates a BattleService with a time-seeded coin.
func NewBattleService(armyRepo repository.ArmyRepository, sessions repository.SessionStore, broadcaster Broadcaster) *BattleService {
	if broadcaster == nil {
		broadcaster = NoopBroadcaster{}
	}
	return &BattleService{
		aggregator:  NewStrengthAggregator(armyRepo),
		sessions:    sessions,
		broadcaster: broadcaster,
		coin:        combat.NewRandomCoin(0),
		now:         time.Now,
	}
}

// SetCoin replaces the surface tie-break source.
func (s *BattleService) SetCoin(coin combat.CoinSource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coin = coin
}

// Session returns the current battle session.
func (s *BattleService) Session(ctx context.Context) (combat.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return combat.Session{}, internalError("load battle session", err)
	}
	return sess, nil
}

// Start opens a battle between the caller and enemyID.
func (s *BattleService) Start(ctx context.Context, callerID, enemyID string) (*StartResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	next, err := sess.Phase.Start()
	if err != nil {
		return nil, newError(ErrConflict, msgBattleOpen)
	}
	if callerID == enemyID {
		return nil, newError(ErrInvalidArgument, "you cannot fight yourself")
	}

	you, enemy, err := s.aggregator.Aggregate(ctx, callerID, enemyID)
	if err != nil {
		return nil, err
	}
	if !you.CanFight() {
		return nil, newError(ErrPreconditionFailed, "you can't start a battle, you need at least 1 tank, 1 plane and 1 squad with weapons")
	}
	if !enemy.CanFight() {
		return nil, newError(ErrPreconditionFailed, "you can't start a battle, your enemy needs at least 1 tank, 1 plane and 1 squad with weapons")
	}

	started := combat.Session{
		Phase:       next,
		OpponentID:  enemyID,
		InitiatorID: callerID,
		BattleID:    uuid.NewString(),
		StartedAt:   s.now().UTC(),
	}
	if err := s.swap(ctx, sess, started, msgBattleOpen); err != nil {
		return nil, err
	}

	logger.ForRequest(ctx).Info().
		Str("battleId", started.BattleID).
		Str("callerId", callerID).
		Str("enemyId", enemyID).
		Msg("Battle started")

	stats := BattleStats{You: you, Enemy: enemy}
	s.broadcaster.BroadcastBattleEvent([]string{callerID, enemyID}, EventBattleStarted, map[string]any{
		"battle_id":    started.BattleID,
		"initiator_id": callerID,
		"opponent_id":  enemyID,
	})

	return &StartResult{
		Message:  "the battle has started! These are the stats of you and your enemy, advantages included.",
		Next:     fmt.Sprintf("use /battle/%s/airBattle to continue with the air stage", enemyID),
		BattleID: started.BattleID,
		Stats:    stats,
	}, nil
}

// ResolveAir fights the air phase of the battle opened against enemyID.
func (s *BattleService) ResolveAir(ctx context.Context, callerID, enemyID string) (*AirBattleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if sess.Phase != combat.InProgress {
		return nil, newError(ErrConflict, "please start a battle first")
	}
	if err := checkCombatants(sess, callerID, enemyID); err != nil {
		return nil, err
	}

	you, enemy, err := s.aggregator.Aggregate(ctx, callerID, enemyID)
	if err != nil {
		return nil, err
	}

	air := combat.ResolveAir(you, enemy)
	next, err := sess.Phase.AfterAir(air.Outcome)
	if err != nil {
		return nil, internalError("advance battle phase", err)
	}
	updated := sess
	updated.Phase = next
	if err := s.swap(ctx, sess, updated, msgBattleMoved); err != nil {
		return nil, err
	}

	logger.ForRequest(ctx).Info().
		Str("battleId", sess.BattleID).
		Str("callerId", callerID).
		Str("enemyId", enemyID).
		Str("outcome", string(air.Outcome)).
		Float64("yourAir", air.YourAir).
		Float64("enemyAir", air.EnemyAir).
		Msg("Air battle resolved")

	result := &AirBattleResult{
		Next:      fmt.Sprintf("use /battle/%s/surfaceBattle to continue with the surface stage", enemyID),
		AirResult: air,
	}
	switch air.Outcome {
	case combat.Win:
		result.Message = "You won the air battle!"
		result.YourSurfacePlanes = &you.PlanesSurface
	case combat.Loss:
		result.Message = "Your enemy won the air battle!"
		result.EnemySurfacePlanes = &enemy.PlanesSurface
	default:
		result.Message = "The air battle ended in a draw!"
	}

	s.broadcaster.BroadcastBattleEvent([]string{callerID, enemyID}, EventAirResolved, map[string]any{
		"battle_id": sess.BattleID,
		"phase":     next,
	})
	return result, nil
}

// ResolveSurface fights the final phase and closes the battle whatever the outcome.
func (s *BattleService) ResolveSurface(ctx context.Context, callerID, enemyID string) (*SurfaceBattleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if !sess.Phase.AirResolved() {
		return nil, newError(ErrConflict, "please fight the air battle first")
	}
	if err := checkCombatants(sess, callerID, enemyID); err != nil {
		return nil, err
	}

	you, enemy, err := s.aggregator.Aggregate(ctx, callerID, enemyID)
	if err != nil {
		return nil, err
	}

	surface := combat.ResolveSurface(sess.Phase, you, enemy, s.coin.Float64())
	if _, err := sess.Phase.AfterSurface(); err != nil {
		return nil, internalError("advance battle phase", err)
	}
	if err := s.swap(ctx, sess, combat.Session{}, msgBattleMoved); err != nil {
		return nil, err
	}

	logger.ForRequest(ctx).Info().
		Str("battleId", sess.BattleID).
		Str("callerId", callerID).
		Str("enemyId", enemyID).
		Str("outcome", string(surface.Outcome)).
		Float64("yourTotal", surface.YourTotal).
		Float64("enemyTotal", surface.EnemyTotal).
		Float64("coin", surface.Coin).
		Msg("Battle finished")

	s.broadcaster.BroadcastBattleEvent([]string{callerID, enemyID}, EventBattleFinished, map[string]any{
		"battle_id": sess.BattleID,
		"winner":    winnerID(surface.Outcome, callerID, enemyID),
	})

	return &SurfaceBattleResult{
		Message:       surfaceMessage(surface),
		SurfaceResult: surface,
	}, nil
}

// checkCombatants applies the identity guards shared by the air and surface phases.
func checkCombatants(sess combat.Session, callerID, enemyID string) error {
	if sess.OpponentID != enemyID {
		return newError(ErrInvalidArgument, fmt.Sprintf("wrong enemy id, you've started a battle with user %s", sess.OpponentID))
	}
	if callerID == enemyID {
		return newError(ErrInvalidArgument, "you cannot fight yourself")
	}
	return nil
}

func (s *BattleService) load(ctx context.Context) (combat.Session, error) {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return combat.Session{}, internalError("load battle session", err)
	}
	return sess, nil
}

// swap commits next only if no other instance changed the session since it
// was loaded. Losing the race is reported as a Conflict with staleMsg.
func (s *BattleService) swap(ctx context.Context, prev, next combat.Session, staleMsg string) error {
	ok, err := s.sessions.CompareAndSwap(ctx, prev, next)
	if err != nil {
		return internalError("save battle session", err)
	}
	if !ok {
		logger.ForRequest(ctx).Warn().
			Str("battleId", prev.BattleID).
			Str("phase", prev.Phase.String()).
			Msg("Battle session changed concurrently")
		return newError(ErrConflict, staleMsg)
	}
	return nil
}

func winnerID(o combat.Outcome, callerID, enemyID string) string {
	switch o {
	case combat.Win:
		return callerID
	case combat.Loss:
		return enemyID
	}
	return ""
}

func surfaceMessage(r combat.SurfaceResult) string {
	tail := fmt.Sprintf("with your strength %g versus enemy strength %g. Coin was %g", r.YourTotal, r.EnemyTotal, r.Coin)
	switch r.Outcome {
	case combat.Win:
		return "Congratulations! You won " + tail
	case combat.Loss:
		return "Sadly, you lost " + tail
	}
	return "Somehow it was a draw " + tail
}
