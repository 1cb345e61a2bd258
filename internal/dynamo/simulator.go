package dynamo

// Simulator advances one population through fixed time steps. It owns its
// state and clock for the lifetime of a run.
type Simulator struct {
	dyn        System
	integrator Integrator
	initial    State
	state      State
	clock      *Clock
	trace      bool
	tracer     Observer
}

// New builds a simulator starting at x0 at time zero. Inputs are trusted;
// validate them with Config.Validate and ValidateState beforehand.
func New(dyn System, integrator Integrator, x0 State, cfg Config) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		initial:    x0,
		state:      x0,
		clock:      NewClock(cfg.Dt, cfg.RunTime),
		trace:      cfg.Trace,
	}
}

// SetTracer installs the sink that receives post-step states while tracing
// is enabled.
func (s *Simulator) SetTracer(o Observer) { s.tracer = o }

// SetTrace toggles trace emission. It can be flipped mid-run.
func (s *Simulator) SetTrace(on bool) { s.trace = on }

func (s *Simulator) Trace() bool    { return s.trace }
func (s *Simulator) State() State   { return s.state }
func (s *Simulator) Initial() State { return s.initial }
func (s *Simulator) Time() float64  { return s.clock.Time() }
func (s *Simulator) Steps() int     { return s.clock.Steps() }
func (s *Simulator) Clock() Clock   { return *s.clock }
func (s *Simulator) Finished() bool { return !s.clock.CanAdvance() }
func (s *Simulator) System() System { return s.dyn }

// Advance takes one step. It returns false without touching state or time
// once the clock has reached the horizon; that is normal termination.
func (s *Simulator) Advance() bool {
	if !s.clock.CanAdvance() {
		return false
	}

	s.state = s.integrator.Step(s.dyn, s.state, s.clock.Dt())
	s.clock.Tick()

	if s.trace && s.tracer != nil {
		s.tracer.OnStep(s.state, s.clock.Time())
	}
	return true
}

// Reset rewinds the simulator to its initial state at time zero.
func (s *Simulator) Reset() {
	s.state = s.initial
	s.clock = NewClock(s.clock.Dt(), s.clock.RunTime())
}
