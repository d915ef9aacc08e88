package combat

// Outcome is a phase result from the caller's point of view.
type Outcome string

const (
	Win  Outcome = "win"
	Loss Outcome = "loss"
	Draw Outcome = "draw"
)

// Surface tie-break thresholds and bonus.
const (
	callerBonusFrom = 0.7
	enemyBonusUpTo  = 0.4
	tieBreakBonus   = 1.05
)

// AirResult is the outcome of comparing air strength.
type AirResult struct {
	Outcome  Outcome `json:"result"`
	YourAir  float64 `json:"your_air"`
	EnemyAir float64 `json:"enemy_air"`
}

// SurfaceResult is the outcome of the final surface clash.
type SurfaceResult struct {
	Outcome    Outcome `json:"result"`
	YourTotal  float64 `json:"your_total"`
	EnemyTotal float64 `json:"enemy_total"`
	Coin       float64 `json:"coin"`
}

func compare(you, enemy float64) Outcome {
	switch {
	case you > enemy:
		return Win
	case you < enemy:
		return Loss
	}
	return Draw
}

// ResolveAir compares air strength. There is no randomness in this phase.
func ResolveAir(you, enemy Snapshot) AirResult {
	return AirResult{
		Outcome:  compare(you.PlanesAir, enemy.PlanesAir),
		YourAir:  you.PlanesAir,
		EnemyAir: enemy.PlanesAir,
	}
}

// GroundLosers zeroes the surface-plane strength of whichever side lost the air phase,
// or of both sides after a draw.
func GroundLosers(prior Phase, you, enemy Snapshot) (Snapshot, Snapshot) {
	switch prior {
	case AirWon:
		enemy.PlanesSurface = 0
	case AirLost:
		you.PlanesSurface = 0
	case AirDraw:
		you.PlanesSurface = 0
		enemy.PlanesSurface = 0
	}
	return you, enemy
}

// ResolveSurface fights the surface phase given the air phase result and a coin in [0,1).
// A coin of at least 0.7 favours the caller, at most 0.4 favours the enemy,
// anything in between gives no bonus.
func ResolveSurface(prior Phase, you, enemy Snapshot, coin float64) SurfaceResult {
	you, enemy = GroundLosers(prior, you, enemy)
	yourTotal := you.SurfaceTotal()
	enemyTotal := enemy.SurfaceTotal()

	if coin >= callerBonusFrom {
		yourTotal *= tieBreakBonus
	} else if coin <= enemyBonusUpTo {
		enemyTotal *= tieBreakBonus
	}

	return SurfaceResult{
		Outcome:    compare(yourTotal, enemyTotal),
		YourTotal:  yourTotal,
		EnemyTotal: enemyTotal,
		Coin:       coin,
	}
}
