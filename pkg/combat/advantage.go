package combat

// Advantage multipliers.
const (
	airBonus        = 1.5
	heavyTechBonus  = 1.5
	patrioticBonus  = 1.5
	mineTankFactor  = 0.7
	mineSquadFactor = 0.9
)

// ApplyAdvantage applies adv, owned by self, to both sides and returns the adjusted copies.
// Unknown advantages leave both snapshots unchanged.
func ApplyAdvantage(self, enemy Snapshot, adv Advantage) (Snapshot, Snapshot) {
	switch adv {
	case AdvantageAir:
		self.PlanesAir *= airBonus
		self.PlanesSurface *= airBonus
	case AdvantageHeavyTech:
		self.Tanks *= heavyTechBonus
	case AdvantageMinefield:
		enemy.Tanks *= mineTankFactor
		enemy.Squads *= mineSquadFactor
	case AdvantagePatriotic:
		self.Squads *= patrioticBonus
	}
	return self, enemy
}

// ApplyAdvantages applies each side's own advantage against the other.
// The multipliers commute, so the order of the two applications is irrelevant.
func ApplyAdvantages(self, enemy Snapshot) (Snapshot, Snapshot) {
	self, enemy = ApplyAdvantage(self, enemy, self.Advantage)
	enemy, self = ApplyAdvantage(enemy, self, enemy.Advantage)
	return self, enemy
}
