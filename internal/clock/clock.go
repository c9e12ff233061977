package clock

// ZeroPolicy decides what a Clock does on the tick that brings it to zero.
type ZeroPolicy int

const (
	// Stop halts the clock and leaves it sitting at zero.
	Stop ZeroPolicy = iota
	// StopAndAutoReset halts the clock and restores the initial value in the same step.
	StopAndAutoReset
)

func (p ZeroPolicy) String() string {
	switch p {
	case Stop:
		return "stop"
	case StopAndAutoReset:
		return "stop_and_autoreset"
	default:
		return "unknown"
	}
}

// Clock is a countdown in whole seconds. It knows nothing about real time;
// whoever owns it calls Tick once per elapsed second while it is running.
type Clock struct {
	remaining int
	initial   int
	running   bool
	policy    ZeroPolicy
}

func New(initial int, policy ZeroPolicy) *Clock {
	if initial < 0 {
		initial = 0
	}
	return &Clock{
		remaining: initial,
		initial:   initial,
		policy:    policy,
	}
}

// Start is refused while the clock is at zero; reset it first.
func (c *Clock) Start() {
	if c.running || c.remaining == 0 {
		return
	}
	c.running = true
}

func (c *Clock) Pause() {
	c.running = false
}

func (c *Clock) Toggle() {
	if c.running {
		c.Pause()
		return
	}
	c.Start()
}

// Reset pauses the clock and returns it to its initial value.
func (c *Clock) Reset() {
	c.ResetTo(c.initial)
}

// ResetTo pauses the clock at target seconds. Negative targets land on zero.
func (c *Clock) ResetTo(target int) {
	if target < 0 {
		target = 0
	}
	c.running = false
	c.remaining = target
}

// Tick counts down one second and reports whether this tick expired the
// clock. Ticking a paused or exhausted clock does nothing.
func (c *Clock) Tick() bool {
	if !c.running || c.remaining <= 0 {
		return false
	}

	c.remaining--
	if c.remaining > 0 {
		return false
	}

	c.running = false
	if c.policy == StopAndAutoReset {
		c.remaining = c.initial
	}
	return true
}

func (c *Clock) Remaining() int     { return c.remaining }
func (c *Clock) Initial() int       { return c.initial }
func (c *Clock) Running() bool      { return c.running }
func (c *Clock) Policy() ZeroPolicy { return c.policy }
