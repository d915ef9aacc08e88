package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/freeeve/war-simulator/internal/model"
	"github.com/freeeve/war-simulator/pkg/combat"
)

// branchQueries sums one branch of an army. Empty branches yield 0.
var branchQueries = map[combat.Branch]string{
	combat.BranchTanks:         `SELECT COALESCE(SUM(strength), 0) FROM tanks WHERE army_id = $1`,
	combat.BranchPlanesAir:     `SELECT COALESCE(SUM(air_strength), 0) FROM planes WHERE army_id = $1`,
	combat.BranchPlanesSurface: `SELECT COALESCE(SUM(surface_strength), 0) FROM planes WHERE army_id = $1`,
	combat.BranchSquads: `SELECT COALESCE(SUM(weapons.strength), 0)
		FROM squads
		JOIN squads_weapons ON squads.id = squads_weapons.squad_id
		JOIN weapons ON squads_weapons.weapon_id = weapons.id
		WHERE squads.army_id = $1`,
}

// ArmyRepo reads armies and their unit strength.
type ArmyRepo struct {
	db *sql.DB
}

// NewArmyRepo creates an ArmyRepo.
func NewArmyRepo(db *sql.DB) *ArmyRepo {
	return &ArmyRepo{db: db}
}

// FindByOwnerID returns the army assigned to userID, or nil if there is none.
// Ids that are not UUIDs cannot own an army and are not sent to the database.
func (r *ArmyRepo) FindByOwnerID(ctx context.Context, userID string) (*model.Army, error) {
	if !isUUID(userID) {
		return nil, nil
	}
	var a model.Army
	var owner sql.NullString
	var advantage string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, user_id, advantage, fuel_amount, bullets_amount, created_at, updated_at
		 FROM armies WHERE user_id = $1`,
		userID,
	).Scan(&a.ID, &a.Name, &owner, &advantage, &a.FuelAmount, &a.BulletsAmount, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find army by owner: %w", err)
	}
	a.UserID = owner.String
	if adv, ok := combat.ParseAdvantage(advantage); ok {
		a.Advantage = adv
	} else {
		a.Advantage = combat.Advantage(advantage)
	}
	return &a, nil
}

// SumBranchStrength totals the strength of one branch of an army.
func (r *ArmyRepo) SumBranchStrength(ctx context.Context, armyID string, branch combat.Branch) (float64, error) {
	query, ok := branchQueries[branch]
	if !ok {
		return 0, fmt.Errorf("sum branch strength: unknown branch %q", branch)
	}
	var total float64
	if err := r.db.QueryRowContext(ctx, query, armyID).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum %s strength: %w", branch, err)
	}
	return total, nil
}

// isUUID reports whether id can be compared against a UUID column. Postgres
// rejects anything else with invalid_text_representation.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
