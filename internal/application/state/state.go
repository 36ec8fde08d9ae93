// Package state holds the playground session states.
package state

// SessionState is what the playground is doing with the simulation
type SessionState int

const (
	// StatePlaying ticks the simulation from live input
	StatePlaying SessionState = iota
	// StatePaused freezes the simulation until resumed
	StatePaused
	// StateWon is entered when the player reaches the win zone
	StateWon
)

// String returns the string representation of the session state
func (s SessionState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateWon:
		return "Won"
	default:
		return "Unknown"
	}
}

// Ticking reports whether the simulation advances in this state
func (s SessionState) Ticking() bool {
	return s == StatePlaying
}
