package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/predsim/internal/analysis"
	"github.com/san-kum/predsim/internal/dynamo"
	"github.com/san-kum/predsim/internal/export"
	"github.com/san-kum/predsim/internal/storage"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED\tTIME\tDT\tSAMPLES\tPOPULATIONS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%d\t%s/%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.RunTime,
			run.Dt,
			run.Samples,
			run.Labels.Predator,
			run.Labels.Prey,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *dynamo.TimeSeries, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	ts, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}

	if ts.Len() == 0 {
		return nil, nil, fmt.Errorf("no data in run %s", runID)
	}
	return meta, ts, nil
}

// downsample keeps at most n evenly spaced values.
func downsample(values []float64, n int) []float64 {
	if n < 2 || len(values) <= n {
		return values
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = values[i*(len(values)-1)/(n-1)]
	}
	return out
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, ts, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("run: %s", meta.ID)))
	fmt.Printf("t = %g .. %g\n\n", ts.Times[0], ts.Final().Time)

	graph := asciigraph.PlotMany(
		[][]float64{downsample(ts.Prey.Values, plotW), downsample(ts.Predators.Values, plotW)},
		asciigraph.Height(plotH),
		asciigraph.Width(plotW),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
		asciigraph.Caption(fmt.Sprintf("%s (green) / %s (red)", ts.Prey.Label, ts.Predators.Label)),
	)
	fmt.Println(graph)
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, ts, err := loadRun(args[0])
	if err != nil {
		return err
	}

	portrait := analysis.PhasePortrait(ts)
	fmt.Println(titleStyle.Render(fmt.Sprintf("phase portrait: %s", meta.ID)))
	fmt.Printf("x: %s, y: %s\n\n", portrait.XLabel, portrait.YLabel)
	fmt.Print(analysis.PhasePortraitToASCII(portrait, plotW, plotH))

	minX, maxX, minY, maxY := portrait.Bounds()
	fmt.Printf("\n%s: %.4f .. %.4f\n", portrait.XLabel, minX, maxX)
	fmt.Printf("%s: %.4f .. %.4f\n", portrait.YLabel, minY, maxY)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, ts, err := loadRun(args[0])
	if err != nil {
		return err
	}

	sum := analysis.Summarize(ts)
	fmt.Println(titleStyle.Render(fmt.Sprintf("analysis: %s", meta.ID)))
	fmt.Printf("samples: %d over %g time units\n\n", sum.Samples, sum.Duration)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tMIN\tMAX\tMEAN\tFINAL\tPEAKS\tPERIOD\tSPECTRAL PERIOD")
	for _, s := range []analysis.SeriesSummary{sum.Prey, sum.Predators} {
		values := ts.Prey.Values
		if s.Label == ts.Predators.Label {
			values = ts.Predators.Values
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%d\t%.4f\t%.4f\n",
			s.Label, s.Min, s.Max, s.Mean, s.Final, s.Cycles, s.Period,
			analysis.DominantPeriod(values, meta.Dt))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if sum.PhaseLag > 0 {
		fmt.Printf("\n%s peaks trail %s peaks by %.4f\n", sum.Predators.Label, sum.Prey.Label, sum.PhaseLag)
	}
	printMetrics(meta.Metrics)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, ts, err := loadRun(args[0])
	if err != nil {
		return err
	}

	out, closeOut, err := output()
	if err != nil {
		return err
	}
	if err := storage.WriteCSV(out, ts); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, ts, err := loadRun(args[0])
	if err != nil {
		return err
	}

	out, closeOut, err := output()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(out, meta, ts); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, ts, err := loadRun(args[0])
	if err != nil {
		return err
	}

	var svg string
	switch svgKind {
	case "phase":
		svg = export.PhaseSVG(ts, svgW, svgH, svgColor)
	case "series":
		svg = export.SeriesSVG(ts, svgW, svgH)
	default:
		return fmt.Errorf("unknown svg kind %q (phase, series)", svgKind)
	}
	if svg == "" {
		return fmt.Errorf("run %s has too few samples to draw", args[0])
	}

	out, closeOut, err := output()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, svg); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}
