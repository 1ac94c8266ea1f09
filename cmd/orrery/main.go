package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/gui"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/tui"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	seed       int64
	logLevel   string

	frameRate  int
	live       bool
	samples    int
	svgSize    int
	advance    int
	numRuns    int
	numTicks   int
	orbitTicks int
	statsOut   string

	logger *log.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "orrery",
		Short:         "interactive solar system",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
		RunE: runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "apply a preset ("+strings.Join(config.ListPresets(), ", ")+")")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed for orbital phases and tilts (0 keeps the config seed)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the 3D window",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "explore the system in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	tuiCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "list bodies and their orbital elements",
		Args:  cobra.NoArgs,
		RunE:  listBodies,
	}

	orbitCmd := &cobra.Command{
		Use:   "orbit [body]",
		Short: "sample the orbit radius of a body",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sampleOrbit,
	}
	orbitCmd.Flags().IntVar(&samples, "samples", 12, "number of samples around the orbit")
	orbitCmd.Flags().IntVar(&orbitTicks, "ticks", 20000, "ticks to simulate for the period estimate (0 skips it)")

	tourCmd := &cobra.Command{
		Use:   "tour [scenario|file]",
		Short: "run a scripted camera tour",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTour,
	}
	tourCmd.Flags().BoolVar(&live, "live", false, "draw a live top-down map while touring")
	tourCmd.Flags().IntVar(&frameRate, "fps", 30, "live frame rate")

	exportCmd := &cobra.Command{
		Use:   "export-svg [path]",
		Short: "export a top-down SVG of the system",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportCmd.Flags().IntVar(&svgSize, "size", 800, "image size in pixels")
	exportCmd.Flags().IntVar(&advance, "ticks", 0, "ticks to advance before exporting")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "run headless engines across seeds and report metrics",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
	statsCmd.Flags().IntVar(&numRuns, "runs", 4, "number of runs")
	statsCmd.Flags().IntVar(&numTicks, "ticks", 3600, "ticks per run")
	statsCmd.Flags().StringVar(&statsOut, "out", "", "also write results to a .json or .csv file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(guiCmd, tuiCmd, bodiesCmd, orbitCmd, tourCmd, exportCmd, statsCmd, presetsCmd, initCmd)
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error(err)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func setupLogger() error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "orrery",
	})
	return nil
}

// loadConfig resolves the configuration: the file or defaults, then the
// preset, then the seed flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if preset != "" {
		if err := applyPreset(cfg, preset); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	return cfg, nil
}

func applyPreset(cfg *config.Config, name string) error {
	apply, ok := config.Presets[name]
	if !ok {
		return fmt.Errorf("%w: %s (available: %v)", config.ErrUnknownPreset, name, config.ListPresets())
	}
	apply(cfg)
	return nil
}

func newEngine(cmd *cobra.Command) (*sim.Engine, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	eng, err := sim.New(cfg, logger.WithPrefix("engine"))
	if err != nil {
		return nil, nil, err
	}
	return eng, cfg, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	eng, cfg, err := newEngine(cmd)
	if err != nil {
		return err
	}
	return gui.Run(eng, cfg, logger)
}

func runTUI(cmd *cobra.Command, args []string) error {
	eng, _, err := newEngine(cmd)
	if err != nil {
		return err
	}
	return tui.Run(eng, frameRate)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "orrery.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	logger.Info("config written", "path", path, "bodies", len(cfg.Bodies))
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
