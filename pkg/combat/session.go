package combat

import "time"

// Session is the record of the one battle in flight across the whole deployment.
// It is deliberately not keyed by combatants: while any battle is open, every
// other pair of players is refused a start. The zero value is the idle session.
type Session struct {
	Phase       Phase     `json:"phase"`
	OpponentID  string    `json:"opponent_id,omitempty"`
	InitiatorID string    `json:"initiator_id,omitempty"`
	BattleID    string    `json:"battle_id,omitempty"`
	StartedAt   time.Time `json:"started_at,omitzero"`
}

// Idle reports whether no battle is in flight.
func (s Session) Idle() bool {
	return s.Phase == NotStarted
}

// Matches reports whether two sessions describe the same battle at the same
// phase. StartedAt is ignored since stores may not round-trip it exactly.
func (s Session) Matches(o Session) bool {
	return s.Phase == o.Phase &&
		s.OpponentID == o.OpponentID &&
		s.InitiatorID == o.InitiatorID &&
		s.BattleID == o.BattleID
}
