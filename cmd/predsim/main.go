package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/predsim/internal/config"
	"github.com/san-kum/predsim/internal/physics"
)

var logger = zap.NewNop()

var (
	dataDir string
	verbose bool

	// run configuration
	preset         string
	configFile     string
	predators      float64
	prey           float64
	preyGrowth     float64
	predation      float64
	predatorGrowth float64
	mortality      float64
	dt             float64
	runTime        float64
	predatorLabel  string
	preyLabel      string
	traceOn        bool
	traceLog       bool
	traceEvery     int
	noSave         bool

	// output
	outFile  string
	svgKind  string
	svgColor string
	plotW    int
	plotH    int
	svgW     int
	svgH     int

	// batch runs
	sweepParam   string
	sweepMin     float64
	sweepMax     float64
	sweepSteps   int
	workerCount  int
	trials       int
	perturbation float64
	seed         int64
	threshold    float64
	ampParam     string
	ampMin       float64
	ampMax       float64
	ampSteps     int
	transient    float64
	record       float64
	population   string
	saveRuns     bool

	// fitting
	fitParams []string
	fitPoints int
	fitSpread float64

	// live view
	stepsPerFrame int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "predsim",
		Short:        "predator-prey population simulator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".predsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the trajectory",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addConfigFlags(runCmd.Flags())
	runCmd.Flags().BoolVar(&traceOn, "trace", false, "print every step")
	runCmd.Flags().BoolVar(&traceLog, "trace-log", false, "send trace lines to the debug log instead of stdout")
	runCmd.Flags().IntVar(&traceEvery, "trace-every", 1, "trace only every nth step")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "step a simulation live in the terminal",
		Args:  cobra.NoArgs,
		RunE:  watchSimulation,
	}
	addConfigFlags(watchCmd.Flags())
	watchCmd.Flags().IntVar(&stepsPerFrame, "speed", 50, "steps per frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot both populations over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	addPlotFlags(plotCmd.Flags())

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase plot of predators against prey",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	addPlotFlags(phaseCmd.Flags())

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "cycle and frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a phase or time series plot as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().StringVar(&svgKind, "kind", "phase", "phase or series")
	exportSVGCmd.Flags().StringVar(&svgColor, "color", "#00ff00", "stroke colour for phase plots")
	exportSVGCmd.Flags().IntVar(&svgW, "width", 800, "width in pixels")
	exportSVGCmd.Flags().IntVar(&svgH, "height", 600, "height in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in configurations",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [file]",
		Short: "write a configuration file to edit",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initConfigCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run one simulation per value of a parameter",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addConfigFlags(sweepCmd.Flags())
	sweepCmd.Flags().StringVar(&sweepParam, "param", "prey_growth_rate", "coefficient name, predators or prey")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")
	sweepCmd.Flags().IntVar(&workerCount, "workers", 0, "parallel runs (0 = all cores)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&saveRuns, "save", true, "store steps that set save_as")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "run perturbed copies of a configuration",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addConfigFlags(monteCarloCmd.Flags())
	monteCarloCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturbation", 0.1, "relative spread of initial densities")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	monteCarloCmd.Flags().Float64Var(&threshold, "threshold", 1e-6, "density counted as collapsed")
	monteCarloCmd.Flags().IntVar(&workerCount, "workers", 0, "parallel runs (0 = all cores)")

	amplitudeCmd := &cobra.Command{
		Use:   "amplitude",
		Short: "peak densities as one coefficient is swept",
		Args:  cobra.NoArgs,
		RunE:  runAmplitude,
	}
	addConfigFlags(amplitudeCmd.Flags())
	amplitudeCmd.Flags().StringVar(&ampParam, "param", "prey_growth_rate", "coefficient name")
	amplitudeCmd.Flags().Float64Var(&ampMin, "min", 0.2, "first value")
	amplitudeCmd.Flags().Float64Var(&ampMax, "max", 1.0, "last value")
	amplitudeCmd.Flags().IntVar(&ampSteps, "steps", 40, "number of values")
	amplitudeCmd.Flags().Float64Var(&transient, "transient", 20, "time discarded before recording")
	amplitudeCmd.Flags().Float64Var(&record, "record", 60, "time recorded")
	amplitudeCmd.Flags().StringVar(&population, "population", "prey", "prey or predators")
	addPlotFlags(amplitudeCmd.Flags())

	fitCmd := &cobra.Command{
		Use:   "fit [run_id]",
		Short: "grid search coefficients that reproduce a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  fitRun,
	}
	fitCmd.Flags().StringSliceVar(&fitParams, "params", physics.ParamNames(), "coefficients to search")
	fitCmd.Flags().IntVar(&fitPoints, "points", 5, "grid points per coefficient")
	fitCmd.Flags().Float64Var(&fitSpread, "spread", 0.5, "relative search range around the stored value")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure step throughput",
		Args:  cobra.NoArgs,
		RunE:  benchStep,
	}

	rootCmd.AddCommand(runCmd, watchCmd, listCmd, plotCmd, phaseCmd, analyzeCmd, exportCSVCmd,
		exportJSONCmd, exportSVGCmd, presetsCmd, initConfigCmd, sweepCmd, scenarioCmd,
		monteCarloCmd, amplitudeCmd, fitCmd, benchCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

func addConfigFlags(fs *pflag.FlagSet) {
	fs.StringVar(&preset, "preset", "", "start from a preset (see presets)")
	fs.StringVar(&configFile, "config", "", "config file path (yaml)")
	fs.Float64Var(&predators, "predators", config.DefaultPredators, "initial predator density")
	fs.Float64Var(&prey, "prey", config.DefaultPrey, "initial prey density")
	fs.Float64Var(&preyGrowth, "prey-growth", config.DefaultPreyGrowth, "prey growth rate")
	fs.Float64Var(&predation, "predation", config.DefaultPredation, "predation rate")
	fs.Float64Var(&predatorGrowth, "predator-growth", config.DefaultPredatorGrowth, "predator growth rate")
	fs.Float64Var(&mortality, "mortality", config.DefaultPredatorMortality, "predator mortality rate")
	fs.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	fs.Float64Var(&runTime, "time", config.DefaultRunTime, "simulated time")
	fs.StringVar(&predatorLabel, "predator-label", config.DefaultPredatorLabel, "predator display name")
	fs.StringVar(&preyLabel, "prey-label", config.DefaultPreyLabel, "prey display name")
}

func addPlotFlags(fs *pflag.FlagSet) {
	fs.IntVar(&plotW, "width", 70, "plot width")
	fs.IntVar(&plotH, "height", 20, "plot height")
}

// resolveConfig layers preset, config file and explicitly set flags, in
// that order. The returned name identifies the run in storage.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	name := "lv"
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		name = preset
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	set := func(flag string, dst *float64, v float64) {
		if flags.Changed(flag) {
			*dst = v
		}
	}
	set("predators", &cfg.InitState.Predators, predators)
	set("prey", &cfg.InitState.Prey, prey)
	set("prey-growth", &cfg.Coefficients.PreyGrowth, preyGrowth)
	set("predation", &cfg.Coefficients.Predation, predation)
	set("predator-growth", &cfg.Coefficients.PredatorGrowth, predatorGrowth)
	set("mortality", &cfg.Coefficients.PredatorMortality, mortality)
	set("dt", &cfg.Dt, dt)
	set("time", &cfg.RunTime, runTime)
	if flags.Changed("predator-label") {
		cfg.Labels.Predator = predatorLabel
	}
	if flags.Changed("prey-label") {
		cfg.Labels.Prey = preyLabel
	}
	if flags.Lookup("trace") != nil && flags.Changed("trace") {
		cfg.Trace = traceOn
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	logger.Debug("resolved configuration",
		zap.String("name", name),
		zap.Any("coefficients", cfg.Coefficients),
		zap.Float64("dt", cfg.Dt),
		zap.Float64("run_time", cfg.RunTime),
	)
	return cfg, name, nil
}

// output returns stdout or the file named by -o.
func output() (*os.File, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
