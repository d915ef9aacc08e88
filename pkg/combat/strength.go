package combat

import "strings"

// Branch is one of the four combat categories an army's strength is split into.
type Branch string

const (
	BranchTanks         Branch = "tanks"
	BranchPlanesAir     Branch = "planes_air"
	BranchPlanesSurface Branch = "planes_surface"
	BranchSquads        Branch = "squads"
)

// AllBranches returns the branches in aggregation order.
func AllBranches() []Branch {
	return []Branch{BranchTanks, BranchPlanesAir, BranchPlanesSurface, BranchSquads}
}

// Advantage is the strategic trait an army picks. Values match the database column.
type Advantage string

const (
	AdvantageAir       Advantage = "air"
	AdvantageHeavyTech Advantage = "heavy_tech"
	AdvantageMinefield Advantage = "minefield"
	AdvantagePatriotic Advantage = "patriotic"
)

// Valid reports whether a is one of the four known advantages.
func (a Advantage) Valid() bool {
	switch a {
	case AdvantageAir, AdvantageHeavyTech, AdvantageMinefield, AdvantagePatriotic:
		return true
	}
	return false
}

// ParseAdvantage accepts any casing ("AIR", "Heavy_Tech") and returns ok=false for unknown tags.
func ParseAdvantage(s string) (Advantage, bool) {
	a := Advantage(strings.ToLower(strings.TrimSpace(s)))
	return a, a.Valid()
}

// Snapshot is the per-aggregation strength of one army. It is never persisted.
type Snapshot struct {
	Tanks         float64   `json:"tanks"`
	PlanesAir     float64   `json:"planes_air"`
	PlanesSurface float64   `json:"planes_surface"`
	Squads        float64   `json:"squads"`
	Advantage     Advantage `json:"advantage"`
}

// Set assigns the strength of a single branch.
func (s *Snapshot) Set(b Branch, v float64) {
	switch b {
	case BranchTanks:
		s.Tanks = v
	case BranchPlanesAir:
		s.PlanesAir = v
	case BranchPlanesSurface:
		s.PlanesSurface = v
	case BranchSquads:
		s.Squads = v
	}
}

// Get returns the strength of a single branch.
func (s Snapshot) Get(b Branch) float64 {
	switch b {
	case BranchTanks:
		return s.Tanks
	case BranchPlanesAir:
		return s.PlanesAir
	case BranchPlanesSurface:
		return s.PlanesSurface
	case BranchSquads:
		return s.Squads
	}
	return 0
}

// CanFight reports whether the army has every branch needed to open a battle:
// tanks, air-capable planes and squads carrying weapons.
func (s Snapshot) CanFight() bool {
	return s.Tanks != 0 && s.PlanesAir != 0 && s.Squads != 0
}

// SurfaceTotal is the strength an army brings to the surface phase.
func (s Snapshot) SurfaceTotal() float64 {
	return s.PlanesSurface + s.Tanks + s.Squads
}
