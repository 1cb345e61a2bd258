// Package trace provides sinks for per-step simulator output.
package trace

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/san-kum/predsim/internal/dynamo"
)

// Printer writes one line per step in general number format.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) OnStep(x dynamo.State, t float64) {
	fmt.Fprintf(p.w, "time=%g, prey=%g, predators=%g\n", t, x.Prey, x.Predators)
}

// Logger emits each step as a debug entry.
type Logger struct {
	log *zap.Logger
}

func NewLogger(log *zap.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) OnStep(x dynamo.State, t float64) {
	l.log.Debug("step",
		zap.Float64("time", t),
		zap.Float64("prey", x.Prey),
		zap.Float64("predators", x.Predators),
	)
}

// Every forwards only every nth step to the wrapped observer.
func Every(n int, o dynamo.Observer) dynamo.Observer {
	if n <= 1 {
		return o
	}
	count := 0
	return dynamo.ObserverFunc(func(x dynamo.State, t float64) {
		count++
		if count%n == 0 {
			o.OnStep(x, t)
		}
	})
}
