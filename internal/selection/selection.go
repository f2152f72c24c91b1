// Package selection holds the session-wide player choices that outlive any
// single screen: the difficulty and the simulation speed multiplier.
//
// A State is created once per session and handed to every screen through
// session.Context. It emits no events; callers refresh their own views after
// changing it.
package selection

import (
	"errors"
	"fmt"
	"strings"
)

// Difficulty is one of a closed set of difficulty levels.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

// Difficulties lists every difficulty in display order.
var Difficulties = []Difficulty{Easy, Normal, Hard}

// String returns the display name of the difficulty.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Normal:
		return "Normal"
	case Hard:
		return "Hard"
	default:
		return "Unknown"
	}
}

// Key returns the lowercase identifier used in config files and flags.
func (d Difficulty) Key() string {
	return strings.ToLower(d.String())
}

// ErrUnknownDifficulty is returned when a difficulty name cannot be parsed.
var ErrUnknownDifficulty = errors.New("selection: unknown difficulty")

// ParseDifficulty converts "easy", "normal" or "hard" (any case) to a Difficulty.
// An empty string yields Normal.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Normal, nil
	case "easy":
		return Easy, nil
	case "normal":
		return Normal, nil
	case "hard":
		return Hard, nil
	}
	return Normal, fmt.Errorf("%w %q", ErrUnknownDifficulty, s)
}

// Speed multipliers offered by the speed buttons.
const (
	SpeedSlow   = 0.2
	SpeedNormal = 1.0
	SpeedFast   = 2.0
)

// Speeds lists the allowed speed multipliers in button order.
var Speeds = []float64{SpeedSlow, SpeedNormal, SpeedFast}

// ErrUnknownSpeed is returned by SetSpeed for values outside Speeds.
var ErrUnknownSpeed = errors.New("selection: unsupported speed multiplier")

// State is the current difficulty and speed. The zero value is not usable;
// construct with New.
type State struct {
	difficulty Difficulty
	speed      float64
}

// New returns a State with Normal difficulty and 1x speed.
func New() *State {
	return &State{
		difficulty: Normal,
		speed:      SpeedNormal,
	}
}

// Difficulty returns the selected difficulty.
func (s *State) Difficulty() Difficulty {
	return s.difficulty
}

// SetDifficulty overwrites the selected difficulty.
func (s *State) SetDifficulty(d Difficulty) {
	s.difficulty = d
}

// Speed returns the selected speed multiplier.
func (s *State) Speed() float64 {
	return s.speed
}

// SetSpeed selects one of Speeds. Other values are rejected and leave the
// state untouched.
func (s *State) SetSpeed(v float64) error {
	if !IsSpeed(v) {
		return fmt.Errorf("%w: %v", ErrUnknownSpeed, v)
	}
	s.speed = v
	return nil
}

// IsSpeed reports whether v is one of the allowed multipliers.
func IsSpeed(v float64) bool {
	for _, sp := range Speeds {
		if sp == v {
			return true
		}
	}
	return false
}
