package dynamo

// horizonTolerance is the fraction of dt below the horizon at which the
// clock already counts as exhausted. It absorbs rounding in stepIndex*dt so
// a horizon that is an exact multiple of dt yields exactly runTime/dt steps.
const horizonTolerance = 1e-9

// Clock tracks elapsed simulated time in fixed steps of dt. Elapsed time is
// derived from the step count rather than accumulated, so it never drifts.
type Clock struct {
	dt      float64
	runTime float64
	steps   int
}

func NewClock(dt, runTime float64) *Clock {
	return &Clock{dt: dt, runTime: runTime}
}

func (c *Clock) Dt() float64      { return c.dt }
func (c *Clock) RunTime() float64 { return c.runTime }
func (c *Clock) Steps() int       { return c.steps }

// Time returns the elapsed simulated time.
func (c *Clock) Time() float64 {
	return float64(c.steps) * c.dt
}

// CanAdvance reports whether another step may be taken.
func (c *Clock) CanAdvance() bool {
	return c.Time() < c.runTime-horizonTolerance*c.dt
}

// Tick advances elapsed time by one step. Only meaningful after CanAdvance
// returned true.
func (c *Clock) Tick() {
	c.steps++
}

// TotalSteps returns the number of ticks a fresh clock allows before it is
// exhausted.
func (c *Clock) TotalSteps() int {
	if c.dt <= 0 {
		return 0
	}
	n := int(c.runTime/c.dt - horizonTolerance)
	if n < 0 {
		return 0
	}
	for float64(n)*c.dt < c.runTime-horizonTolerance*c.dt {
		n++
	}
	return n
}
