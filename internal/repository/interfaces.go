package repository

import (
	"context"

	"github.com/freeeve/war-simulator/internal/model"
	"github.com/freeeve/war-simulator/pkg/combat"
)

// UserRepository defines user directory lookups.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// ArmyRepository defines the army directory reads the battle engine needs.
type ArmyRepository interface {
	// FindByOwnerID returns nil, nil when the user owns no army.
	FindByOwnerID(ctx context.Context, userID string) (*model.Army, error)
	// SumBranchStrength returns 0 when the army has no units in the branch.
	SumBranchStrength(ctx context.Context, armyID string, branch combat.Branch) (float64, error)
}

// SessionStore holds the single battle session shared by the whole deployment.
// Several server processes may share one store, so writes are conditional.
type SessionStore interface {
	Load(ctx context.Context) (combat.Session, error)
	// CompareAndSwap stores next only if the stored session still matches prev.
	// It returns false, nil when another writer changed the session first.
	CompareAndSwap(ctx context.Context, prev, next combat.Session) (bool, error)
}
