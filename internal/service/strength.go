package service

import (
	"context"
	"fmt"

	"github.com/freeeve/war-simulator/internal/model"
	"github.com/freeeve/war-simulator/internal/repository"
	"github.com/freeeve/war-simulator/pkg/combat"
)

// StrengthAggregator computes advantage-adjusted strength snapshots for two armies.
// Nothing is cached; every call reads current unit totals.
type StrengthAggregator struct {
	armyRepo repository.ArmyRepository
}

// NewStrengthAggregator creates a StrengthAggregator.
func NewStrengthAggregator(armyRepo repository.ArmyRepository) *StrengthAggregator {
	return &StrengthAggregator{armyRepo: armyRepo}
}

// Aggregate returns the caller's and the enemy's snapshots with both advantages applied.
func (a *StrengthAggregator) Aggregate(ctx context.Context, selfOwnerID, enemyOwnerID string) (combat.Snapshot, combat.Snapshot, error) {
	selfArmy, err := a.findArmy(ctx, selfOwnerID, "you do not have an army yet")
	if err != nil {
		return combat.Snapshot{}, combat.Snapshot{}, err
	}
	enemyArmy, err := a.findArmy(ctx, enemyOwnerID, "your enemy does not have an army yet")
	if err != nil {
		return combat.Snapshot{}, combat.Snapshot{}, err
	}

	self, err := a.rawSnapshot(ctx, selfArmy)
	if err != nil {
		return combat.Snapshot{}, combat.Snapshot{}, err
	}
	enemy, err := a.rawSnapshot(ctx, enemyArmy)
	if err != nil {
		return combat.Snapshot{}, combat.Snapshot{}, err
	}

	self, enemy = combat.ApplyAdvantages(self, enemy)
	return self, enemy, nil
}

func (a *StrengthAggregator) findArmy(ctx context.Context, ownerID, missingMsg string) (*model.Army, error) {
	army, err := a.armyRepo.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, internalError("load army", err)
	}
	if army == nil {
		return nil, newError(ErrNotFound, missingMsg)
	}
	return army, nil
}

// rawSnapshot sums every branch for one army before advantages are applied.
func (a *StrengthAggregator) rawSnapshot(ctx context.Context, army *model.Army) (combat.Snapshot, error) {
	snap := combat.Snapshot{Advantage: army.Advantage}
	for _, branch := range combat.AllBranches() {
		v, err := a.armyRepo.SumBranchStrength(ctx, army.ID, branch)
		if err != nil {
			return combat.Snapshot{}, internalError(fmt.Sprintf("sum %s strength", branch), err)
		}
		snap.Set(branch, v)
	}
	return snap, nil
}
