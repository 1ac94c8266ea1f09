package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orrery/internal/analysis"
	"github.com/san-kum/orrery/internal/automation"
	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/tui"
	"github.com/spf13/cobra"
)

func listBodies(cmd *cobra.Command, args []string) error {
	eng, _, err := newEngine(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REF\tNAME\tRADIUS\tA\tE\tPERI\tAPO\tSPEED\tPATTERN\tRING")
	for _, b := range eng.Registry.All() {
		ring := "-"
		if b.Ring != nil {
			ring = fmt.Sprintf("%.1f-%.1f", b.Ring.Inner, b.Ring.Outer)
		}
		if b.IsSun() {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t-\t-\t-\t-\t-\t%s\t%s\n", b.Ref, b.Name, b.Radius, b.Pattern, ring)
			continue
		}
		el := b.Elements
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.1f\t%.3f\t%.3f\t%.3f\t%.3f\t%s\t%s\n",
			b.Ref, b.Name, b.Radius, el.A, el.E, el.Periapsis(), el.Apoapsis(), el.SpeedBase, b.Pattern, ring)
	}
	return w.Flush()
}

func sampleOrbit(cmd *cobra.Command, args []string) error {
	eng, _, err := newEngine(cmd)
	if err != nil {
		return err
	}
	name := "Bumi"
	if len(args) > 0 {
		name = args[0]
	}
	b, err := eng.Registry.ByName(name)
	if err != nil {
		return err
	}
	if b.IsSun() {
		return fmt.Errorf("%s does not orbit", b.Name)
	}
	if samples < 2 {
		return fmt.Errorf("need at least 2 samples, got %d", samples)
	}

	el := b.Elements
	fmt.Printf("body: %s\n", b.Name)
	fmt.Printf("a=%.3f e=%.3f periapsis=%.3f apoapsis=%.3f\n\n", el.A, el.E, el.Periapsis(), el.Apoapsis())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "THETA\tR\tSTEP")
	radii := make([]float64, 0, samples)
	for i := 0; i < samples; i++ {
		theta := 2 * math.Pi * float64(i) / float64(samples)
		r, ok := el.Radius(theta)
		if !ok {
			fmt.Fprintf(w, "%.3f\t-\t-\n", theta)
			continue
		}
		radii = append(radii, r)
		fmt.Fprintf(w, "%.3f\t%.4f\t%.6f\n", theta, r, el.PhaseStep(theta))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(radii) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(radii,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("r(theta)"),
		))
	}

	if orbitTicks <= 0 {
		return nil
	}
	rec := analysis.NewRecorder()
	eng.AddObserver(rec)
	start := b.Revolutions
	if _, err := eng.Run(cmd.Context(), orbitTicks, nil); err != nil {
		return err
	}
	fmt.Println()
	if period, ok := rec.Period(b); ok {
		fmt.Printf("spectral period: %.0f ticks over %d samples\n", period, orbitTicks)
	} else {
		fmt.Println("spectral period: not enough signal")
	}
	if revs := b.Revolutions - start; revs > 0 {
		fmt.Printf("completed revolutions: %d\n", revs)
	}
	return nil
}

func runTour(cmd *cobra.Command, args []string) error {
	scenario, err := resolveScenario(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if scenario.Preset != "" && preset == "" {
		if err := applyPreset(cfg, scenario.Preset); err != nil {
			return err
		}
	}
	eng, err := sim.New(cfg, logger.WithPrefix("engine"))
	if err != nil {
		return err
	}

	if live {
		r := tui.NewLiveRenderer(os.Stdout, frameRate, outerExtent(eng))
		r.Start()
		defer r.Stop()
		eng.AddObserver(r)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := automation.RunScenario(ctx, scenario, eng, logger)
	if err != nil && !errors.Is(err, automation.ErrExpectationFailed) {
		return err
	}
	printReport(report)
	return err
}

func resolveScenario(args []string) (*automation.Scenario, error) {
	if len(args) == 0 {
		return automation.DefaultScenario(), nil
	}
	if build, ok := automation.Scenarios[args[0]]; ok {
		return build(), nil
	}
	if _, err := os.Stat(args[0]); err != nil {
		return nil, fmt.Errorf("unknown scenario %q (built-in: %v)", args[0], sortedKeys(automation.Scenarios))
	}
	return automation.LoadScenario(args[0])
}

// outerExtent is the largest apoapsis in the registry, with some margin.
func outerExtent(eng *sim.Engine) float64 {
	extent := 1.0
	for _, b := range eng.Registry.Planets() {
		extent = math.Max(extent, b.Elements.Apoapsis())
	}
	return extent * 1.1
}

func printReport(report *automation.Report) {
	if report == nil {
		return
	}
	fmt.Printf("tour: %s\n\n", report.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tACTION\tTICK\tSTATE\tFOCUS\tRESULT\tSTATUS")
	for _, s := range report.Steps {
		focus := s.Focused
		if focus == "" {
			focus = "-"
		}
		status := "ok"
		if !s.Passed() {
			status = "FAIL: " + s.Failure
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n", s.Index, s.Action, s.Tick, s.State, focus, s.Result, status)
	}
	w.Flush()

	if report.Passed() {
		fmt.Printf("\n%d steps passed\n", len(report.Steps))
	} else {
		fmt.Printf("\n%d of %d steps failed\n", len(report.Failures()), len(report.Steps))
	}
}

func exportSVG(cmd *cobra.Command, args []string) error {
	path := "orrery.svg"
	if len(args) > 0 {
		path = args[0]
	}
	eng, _, err := newEngine(cmd)
	if err != nil {
		return err
	}
	if advance > 0 {
		if _, err := eng.Run(cmd.Context(), advance, nil); err != nil {
			return err
		}
	}
	svg := export.SystemToSVG(eng, svgSize)
	if svg == "" {
		return fmt.Errorf("invalid svg size %d", svgSize)
	}
	if err := export.WriteFile(path, svg); err != nil {
		return err
	}
	logger.Info("svg written", "path", path, "tick", eng.Ticks())
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns <= 0 {
		return fmt.Errorf("need at least one run, got %d", numRuns)
	}

	ens := sim.NewEnsemble(cfg, numRuns, cfg.Seed, metrics.Defaults, nil)
	results, err := ens.Run(cmd.Context(), numTicks)
	if err != nil {
		return err
	}
	stats := export.NewStats(cfg.Seed, results)

	if statsOut != "" {
		if err := export.WriteStatsFile(statsOut, stats); err != nil {
			return err
		}
		logger.Info("stats written", "path", statsOut, "runs", len(stats.Runs))
	}

	names := stats.MetricNames()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SEED\tTICKS\tSKIPPED")
	for _, n := range names {
		fmt.Fprintf(w, "\t%s", n)
	}
	fmt.Fprintln(w)
	for _, run := range stats.Runs {
		fmt.Fprintf(w, "%d\t%d\t%d", run.Seed, run.Ticks, run.Skipped)
		for _, n := range names {
			fmt.Fprintf(w, "\t%.1f", run.Metrics[n])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprint(w, "mean\t\t")
	for _, n := range names {
		fmt.Fprintf(w, "\t%.1f", stats.Mean[n])
	}
	fmt.Fprintln(w)
	return w.Flush()
}
