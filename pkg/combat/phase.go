package combat

import (
	"errors"
	"fmt"
)

// ErrIllegalTransition is returned when a phase transition is requested from the wrong phase.
var ErrIllegalTransition = errors.New("illegal battle phase transition")

// Phase is the stage the single in-flight battle is in.
type Phase int

const (
	NotStarted Phase = iota
	InProgress
	AirWon
	AirLost
	AirDraw
)

var phaseNames = [...]string{
	NotStarted: "not_started",
	InProgress: "in_progress",
	AirWon:     "air_won",
	AirLost:    "air_lost",
	AirDraw:    "air_draw",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	if p < 0 || int(p) >= len(phaseNames) {
		return nil, fmt.Errorf("unknown phase %d", int(p))
	}
	return []byte(phaseNames[p]), nil
}

// UnmarshalText decodes a phase name produced by MarshalText.
func (p *Phase) UnmarshalText(b []byte) error {
	for i, name := range phaseNames {
		if name == string(b) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}

// AirResolved reports whether the air phase has been fought and the surface phase is next.
func (p Phase) AirResolved() bool {
	return p == AirWon || p == AirLost || p == AirDraw
}

// Start opens a battle. Only legal from NotStarted.
func (p Phase) Start() (Phase, error) {
	if p != NotStarted {
		return p, fmt.Errorf("%w: start from %s", ErrIllegalTransition, p)
	}
	return InProgress, nil
}

// AfterAir records the caller's air outcome. Only legal from InProgress.
func (p Phase) AfterAir(o Outcome) (Phase, error) {
	if p != InProgress {
		return p, fmt.Errorf("%w: air battle from %s", ErrIllegalTransition, p)
	}
	switch o {
	case Win:
		return AirWon, nil
	case Loss:
		return AirLost, nil
	case Draw:
		return AirDraw, nil
	}
	return p, fmt.Errorf("%w: unknown air outcome %q", ErrIllegalTransition, o)
}

// AfterSurface closes the battle. Only legal once the air phase is resolved.
func (p Phase) AfterSurface() (Phase, error) {
	if !p.AirResolved() {
		return p, fmt.Errorf("%w: surface battle from %s", ErrIllegalTransition, p)
	}
	return NotStarted, nil
}
