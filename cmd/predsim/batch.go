package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/predsim/internal/analysis"
	"github.com/san-kum/predsim/internal/automation"
	"github.com/san-kum/predsim/internal/optim"
	"github.com/san-kum/predsim/internal/physics"
	"github.com/san-kum/predsim/internal/storage"
	"github.com/san-kum/predsim/internal/trace"
)

func formatMetric(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.4f", v)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Base:     cfg,
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
		Workers:  workerCount,
	}

	results, err := automation.RunSweep(cmd.Context(), sweep, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL %s\tFINAL %s\tPEAK %s\tPEAK %s\tEXTINCTION\n",
		sweepParam, cfg.Labels.Predator, cfg.Labels.Prey, cfg.Labels.Predator, cfg.Labels.Prey)
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%s\n",
			r.ParamValue, r.Final.Predators, r.Final.Prey,
			r.Metrics["peak_predators"], r.Metrics["peak_prey"],
			formatMetric(r.Metrics["extinction_time"]))
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("scenario: %s", sc.Name)))
	if sc.Description != "" {
		fmt.Println(dimStyle.Render(sc.Description))
	}

	results, err := automation.RunScenario(cmd.Context(), sc, trace.NewPrinter(os.Stdout), logger)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if saveRuns {
		if err := st.Init(); err != nil {
			return err
		}
	}

	for _, r := range results {
		fmt.Printf("\n[%s]\n", r.Name)
		printResult(r.Series)

		if !saveRuns || r.SaveAs == "" {
			continue
		}
		runID, err := st.Save(r.SaveAs, r.Config, r.Series)
		if err != nil {
			return err
		}
		logger.Info("scenario step stored", zap.String("step", r.Name), zap.String("run_id", runID))
		fmt.Printf("run id: %s\n", runID)
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	mc := &automation.MonteCarloConfig{
		Base:         cfg,
		Perturbation: perturbation,
		NumTrials:    trials,
		Seed:         seed,
		Threshold:    threshold,
		Workers:      workerCount,
	}

	results, err := automation.RunMonteCarlo(cmd.Context(), mc, logger)
	if err != nil {
		return err
	}

	survived, collapsed := automation.MonteCarloStats(results)
	var sumPred, sumPrey float64
	for _, r := range results {
		sumPred += r.FinalState.Predators
		sumPrey += r.FinalState.Prey
	}

	n := float64(max(len(results), 1))
	fmt.Printf("trials: %d\n", len(results))
	fmt.Printf("survived: %d\n", survived)
	fmt.Printf("collapsed: %d (%.1f%%)\n", collapsed, 100*float64(collapsed)/n)
	fmt.Printf("mean final %s: %.4f\n", cfg.Labels.Predator, sumPred/n)
	fmt.Printf("mean final %s: %.4f\n", cfg.Labels.Prey, sumPrey/n)
	return nil
}

func runAmplitude(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var usePrey bool
	switch population {
	case "prey":
		usePrey = true
	case "predators":
	default:
		return fmt.Errorf("unknown population %q (prey, predators)", population)
	}

	points, err := analysis.AmplitudeDiagram(cfg.Coefficients.Model(), ampParam, ampMin, ampMax, ampSteps,
		cfg.InitState.State(), usePrey, cfg.Dt, transient, record)
	if err != nil {
		return err
	}

	label := cfg.Labels.Predator
	if usePrey {
		label = cfg.Labels.Prey
	}
	fmt.Println(titleStyle.Render(fmt.Sprintf("peak %s vs %s (%g .. %g)", label, ampParam, ampMin, ampMax)))
	out := analysis.AmplitudeToASCII(points, plotW, plotH)
	if out == "" {
		fmt.Println("no peaks recorded")
		return nil
	}
	fmt.Print(out)
	return nil
}

func fitRun(cmd *cobra.Command, args []string) error {
	meta, target, err := loadRun(args[0])
	if err != nil {
		return err
	}

	base := meta.Config()
	stored := base.Coefficients.Model().GetParams()

	ranges := make([][]float64, len(fitParams))
	for i, name := range fitParams {
		v, ok := stored[name]
		if !ok {
			return fmt.Errorf("cannot fit %q (known: %v)", name, physics.ParamNames())
		}
		ranges[i] = optim.Linspace(v*(1-fitSpread), v*(1+fitSpread), fitPoints)
	}

	g, err := optim.NewGridSearch(fitParams, ranges)
	if err != nil {
		return err
	}

	logger.Info("fitting run", zap.String("run_id", meta.ID), zap.Strings("params", fitParams), zap.Int("points", fitPoints))
	res, err := g.Search(cmd.Context(), base, optim.FitObjective(target))
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("fit: %s (%d runs)", meta.ID, res.Evaluated)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAM\tSTORED\tFIT")
	for _, name := range fitParams {
		fmt.Fprintf(w, "%s\t%g\t%g\n", name, stored[name], res.Params[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("mse: %g\n", res.Score)
	return nil
}
