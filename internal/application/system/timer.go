package system

// Timer identifies one countdown in a TimerBank
type Timer int

const (
	TimerCoyote Timer = iota
	TimerJumpBuffer
	TimerDash
	TimerDashCooldown
	TimerWallDetach
	TimerWallJumpLock
	TimerGrappleCooldown
	TimerRay
	TimerParryWindow
	TimerParryCooldown
	TimerBounceLock
	timerCount
)

var timerNames = [timerCount]string{
	"coyote",
	"jumpBuffer",
	"dash",
	"dashCooldown",
	"wallDetach",
	"wallJumpLock",
	"grappleCooldown",
	"ray",
	"parryWindow",
	"parryCooldown",
	"bounceLock",
}

func (t Timer) String() string {
	if t < 0 || t >= timerCount {
		return "unknown"
	}
	return timerNames[t]
}

// TimerBank holds independent countdowns in seconds.
// Nothing re-arms itself; unknown timers are ignored.
type TimerBank struct {
	remaining [timerCount]float64
}

// Tick decrements every armed timer by dt, flooring at 0
func (b *TimerBank) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	for i, r := range b.remaining {
		if r <= 0 {
			continue
		}
		r -= dt
		if r < 0 {
			r = 0
		}
		b.remaining[i] = r
	}
}

// Arm sets timer t to d seconds, replacing any remaining time
func (b *TimerBank) Arm(t Timer, d float64) {
	if t < 0 || t >= timerCount {
		return
	}
	if d < 0 {
		d = 0
	}
	b.remaining[t] = d
}

// Clear zeroes timer t
func (b *TimerBank) Clear(t Timer) {
	b.Arm(t, 0)
}

// Armed reports whether timer t still has time left
func (b TimerBank) Armed(t Timer) bool {
	return b.Remaining(t) > 0
}

// Remaining returns the seconds left on timer t
func (b TimerBank) Remaining(t Timer) float64 {
	if t < 0 || t >= timerCount {
		return 0
	}
	return b.remaining[t]
}

// Reset clears every timer
func (b *TimerBank) Reset() {
	b.remaining = [timerCount]float64{}
}
