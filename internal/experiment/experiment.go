package experiment

import (
	"fmt"

	"github.com/san-kum/predsim/internal/config"
	"github.com/san-kum/predsim/internal/dynamo"
	"github.com/san-kum/predsim/internal/integrators"
	"github.com/san-kum/predsim/internal/metrics"
	"github.com/san-kum/predsim/internal/physics"
)

// Experiment is a validated run configuration. Each Run builds a fresh
// simulator, so one Experiment can be run any number of times.
type Experiment struct {
	cfg     config.Config
	coeffs  physics.Coefficients
	tracer  dynamo.Observer
	metrics []dynamo.Metric
}

func New(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &Experiment{
		cfg:    *cfg,
		coeffs: cfg.Coefficients.Model(),
	}, nil
}

func (e *Experiment) Config() config.Config              { return e.cfg }
func (e *Experiment) Coefficients() physics.Coefficients { return e.coeffs }

// SetTracer sets the sink used when the configuration enables tracing.
func (e *Experiment) SetTracer(o dynamo.Observer) { e.tracer = o }

func (e *Experiment) AddMetric(m dynamo.Metric) { e.metrics = append(e.metrics, m) }

// Simulator returns a new simulator positioned at the initial state.
func (e *Experiment) Simulator() *dynamo.Simulator {
	s := dynamo.New(e.coeffs, integrators.NewMidpoint(), e.cfg.InitState.State(), e.cfg.SimConfig())
	s.SetTracer(e.tracer)
	return s
}

func (e *Experiment) Run() *dynamo.TimeSeries {
	return dynamo.Collect(e.Simulator(), e.cfg.GetLabels(), e.metrics...)
}

// WithDefaultMetrics attaches the standard metric set.
func (e *Experiment) WithDefaultMetrics() *Experiment {
	for _, m := range metrics.Defaults(e.coeffs) {
		e.AddMetric(m)
	}
	return e
}
