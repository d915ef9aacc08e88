package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/freeeve/war-simulator/internal/model"
)

// UserRepo handles user database operations.
type UserRepo struct {
	db   *sql.DB
	army *ArmyRepo
}

// NewUserRepo creates a UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db, army: NewArmyRepo(db)}
}

// FindByID looks up a user by their UUID and attaches their army, if any.
// Non-UUID ids match no user.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var u model.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, type, created_at, updated_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Type, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	army, err := r.army.FindByOwnerID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Army = army
	return &u, nil
}
