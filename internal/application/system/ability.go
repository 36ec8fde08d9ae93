package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/younwookim/mover/internal/infrastructure/config"
)

// Ability is an unlockable movement ability
type Ability int

const (
	AbilityDash Ability = iota
	AbilityWallJump
	AbilityDoubleJump
	AbilityHook
	abilityCount
)

// ErrUnknownAbility is returned by ParseAbility
var ErrUnknownAbility = errors.New("unknown ability")

var abilityNames = [abilityCount]string{"dash", "wall_jump", "double_jump", "hook"}

func (a Ability) String() string {
	if a < 0 || a >= abilityCount {
		return "unknown"
	}
	return abilityNames[a]
}

// ParseAbility resolves an ability from its config name
func ParseAbility(name string) (Ability, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range abilityNames {
		if n == name {
			return Ability(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAbility, name)
}

// ParseAbilities resolves a comma separated list such as "dash,hook".
// An empty list yields no abilities.
func ParseAbilities(list string) ([]Ability, error) {
	var out []Ability
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		a, err := ParseAbility(name)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// AbilityGate tracks which abilities the player has unlocked this session.
// Unlocks only ever go one way during play; Reset is an admin operation.
type AbilityGate struct {
	unlocked [abilityCount]bool
}

// NewAbilityGate creates a gate with the given abilities already unlocked
func NewAbilityGate(initial ...Ability) *AbilityGate {
	g := &AbilityGate{}
	for _, a := range initial {
		g.Unlock(a)
	}
	return g
}

// Unlock sets the flag for a. It reports whether the flag changed.
func (g *AbilityGate) Unlock(a Ability) bool {
	if a < 0 || a >= abilityCount || g.unlocked[a] {
		return false
	}
	g.unlocked[a] = true
	return true
}

// Unlocked reports whether a has been unlocked
func (g *AbilityGate) Unlocked(a Ability) bool {
	if a < 0 || a >= abilityCount {
		return false
	}
	return g.unlocked[a]
}

// Reset clears every flag
func (g *AbilityGate) Reset() {
	g.unlocked = [abilityCount]bool{}
}

// Shape returns a copy of base with the unlocked upgrades applied.
// base itself is never modified.
func (g *AbilityGate) Shape(base *config.MovementConfig) *config.MovementConfig {
	cfg := base.Clone()
	if g.Unlocked(AbilityWallJump) {
		up := base.Upgrades.WallJump
		cfg.Wall.InputLock = up.InputLock
		cfg.Wall.JumpHorizontal = up.Horizontal
		cfg.Wall.JumpVertical = up.Vertical
	}
	return cfg
}
