package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/predsim/internal/config"
	"github.com/san-kum/predsim/internal/dynamo"
	"github.com/san-kum/predsim/internal/experiment"
	"github.com/san-kum/predsim/internal/storage"
	"github.com/san-kum/predsim/internal/trace"
	"github.com/san-kum/predsim/internal/viz"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	if cfg.Trace {
		var sink dynamo.Observer = trace.NewPrinter(os.Stdout)
		if traceLog {
			sink = trace.NewLogger(logger)
		}
		exp.SetTracer(trace.Every(traceEvery, sink))
	}

	start := time.Now()
	ts := exp.WithDefaultMetrics().Run()
	elapsed := time.Since(start)

	logger.Info("run finished",
		zap.String("name", name),
		zap.Int("samples", ts.Len()),
		zap.Duration("elapsed", elapsed),
	)

	fmt.Println(titleStyle.Render(fmt.Sprintf("%s: %s vs %s", name, cfg.Labels.Predator, cfg.Labels.Prey)))
	fmt.Printf("completed in %v\n", elapsed)

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(name, cfg, ts)
		if err != nil {
			return err
		}
		logger.Debug("run stored", zap.String("dir", st.Dir(runID)))
		fmt.Printf("run id: %s\n", runID)
	}

	printResult(ts)
	return nil
}

func printResult(ts *dynamo.TimeSeries) {
	final := ts.Final()
	fmt.Printf("samples: %d\n", ts.Len())
	fmt.Printf("final (t=%g): %s=%g %s=%g\n",
		final.Time, ts.Predators.Label, final.Predators, ts.Prey.Label, final.Prey)
	printMetrics(ts.Metrics)
}

func printMetrics(m map[string]float64) {
	if len(m) == 0 {
		return
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		if math.IsNaN(m[name]) {
			fmt.Printf("  %s: %s\n", name, dimStyle.Render("none"))
			continue
		}
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func watchSimulation(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(exp.Simulator(), cfg.GetLabels(), stepsPerFrame)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPREDATOR\tPREY\tA\tB\tG\tD\tX0\tY0\tDT\tTIME")

	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		c := p.Coefficients
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%g\t%g\t%g\t%g\t%g\t%g\n",
			name, p.Labels.Predator, p.Labels.Prey,
			c.PreyGrowth, c.Predation, c.PredatorGrowth, c.PredatorMortality,
			p.InitState.Predators, p.InitState.Prey, p.Dt, p.RunTime)
	}

	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func benchStep(cmd *cobra.Command, args []string) error {
	runTimes := []float64{10, 50}
	dts := []float64{0.001, 0.01, 0.1}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tDT\tSTEPS\tELAPSED\tSTEPS/SEC")

	for _, rt := range runTimes {
		for _, d := range dts {
			cfg := config.DefaultConfig()
			cfg.RunTime = rt
			cfg.Dt = d

			exp, err := experiment.New(cfg)
			if err != nil {
				return err
			}
			sim := exp.Simulator()

			start := time.Now()
			for sim.Advance() {
			}
			elapsed := time.Since(start)

			steps := sim.Steps()
			fmt.Fprintf(w, "%g\t%g\t%d\t%v\t%.0f\n",
				rt, d, steps, elapsed, float64(steps)/elapsed.Seconds())
		}
	}

	return w.Flush()
}
