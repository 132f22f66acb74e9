package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/eos/internal/automation"
	"github.com/san-kum/eos/internal/config"
	"github.com/san-kum/eos/internal/eos"
	"github.com/san-kum/eos/internal/field"
	"github.com/san-kum/eos/internal/fluids"
	"github.com/san-kum/eos/internal/store"
	"github.com/san-kum/eos/internal/sweep"
	"github.com/san-kum/eos/internal/viz"
)

var (
	configFile string
	dataDir    string
	fluidName  string
	preset     string
	fluidArgs  []string
	logLevel   string
	verbose    bool
	theme      string

	failOn string

	computeProps []string
	sweepProps   []string
	satProps     []string
	exploreProps []string

	// sweep
	domainName string
	vary       string
	from       float64
	to         float64
	points     int
	fixed      float64
	logSpacing bool
	plot       bool
	save       bool
	jsonOut    bool
	workers    int

	byTemperature bool

	// explore
	startP float64
	startT float64

	// study
	studyParam  string
	studyDomain string
	studyProp   string
	studyX      float64
	studyY      float64

	cfg *config.Config
	log = logrus.New()
)

var defaultSatProps = []string{"T_sat", "p_sat", "h_l_sat", "h_v_sat", "rho_l_sat", "rho_v_sat", "d_T_sat_d_p"}

func main() {
	rootCmd := &cobra.Command{
		Use:               "eos",
		Short:             "thermodynamic property engine",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataDir, "data", "", "data directory")
	pf.StringVar(&fluidName, "fluid", "", "fluid model (see 'eos fluids')")
	pf.StringVar(&preset, "preset", "", "use preset fluid configuration")
	pf.StringArrayVar(&fluidArgs, "arg", nil, "fluid parameter key=value, repeatable")
	pf.StringVar(&logLevel, "log-level", "", "log level")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&failOn, "fail-on", "", "lowest severity reported as failure (good, ok, bad, error)")
	pf.StringVar(&theme, "theme", "default", "color theme")

	computeCmd := &cobra.Command{
		Use:   "compute [domain] [x] [y]",
		Short: "compute properties at one state",
		Long:  "compute properties at one state. Domains: ph, pT, ps take two inputs; sat_p, sat_T, lim_p take one.",
		Args:  cobra.RangeArgs(2, 3),
		RunE:  computeState,
	}
	computeCmd.Flags().StringSliceVarP(&computeProps, "props", "p", viz.DefaultProperties, "properties to compute")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "compute properties along a line of states",
		RunE:  runSweep,
	}
	sf := sweepCmd.Flags()
	sf.StringVar(&domainName, "domain", "pT", "input domain")
	sf.StringVar(&vary, "vary", "T", "varied input")
	sf.Float64Var(&from, "from", 250, "first grid value")
	sf.Float64Var(&to, "to", 600, "last grid value")
	sf.IntVar(&points, "points", 0, "grid points (default from config)")
	sf.Float64Var(&fixed, "fixed", 1e5, "value of the input held fixed")
	sf.BoolVar(&logSpacing, "log", false, "logarithmic grid")
	sf.StringSliceVarP(&sweepProps, "props", "p", []string{"h", "rho", "s", "cp"}, "properties to compute")
	sf.BoolVar(&plot, "plot", false, "plot every property")
	sf.BoolVar(&save, "save", false, "save the run to the data directory")
	sf.BoolVar(&jsonOut, "json", false, "write the result as JSON to stdout")
	sf.IntVar(&workers, "workers", 0, "parallel workers (default from config)")

	satCmd := &cobra.Command{
		Use:   "sat [value...]",
		Short: "saturation properties by pressure, or by temperature with -T",
		Args:  cobra.MinimumNArgs(1),
		RunE:  saturation,
	}
	satCmd.Flags().BoolVarP(&byTemperature, "temperature", "T", false, "values are saturation temperatures")
	satCmd.Flags().StringSliceVarP(&satProps, "props", "p", defaultSatProps, "properties to compute")

	boundsCmd := &cobra.Command{
		Use:   "bounds",
		Short: "show the validity range of the fluid",
		Args:  cobra.NoArgs,
		RunE:  showBounds,
	}

	fluidsCmd := &cobra.Command{
		Use:   "fluids",
		Short: "list fluid models",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range fluids.Names() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			models := config.Models()
			if len(args) == 1 {
				models = args
			}
			for _, m := range models {
				presets := config.ListPresets(m)
				if len(presets) == 0 {
					fmt.Printf("no presets for model: %s\n", m)
					continue
				}
				fmt.Printf("presets for %s:\n", m)
				for _, p := range presets {
					fmt.Printf("  %s\n", p)
				}
			}
			return nil
		},
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved sweeps",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot a saved sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive state explorer",
		Args:  cobra.NoArgs,
		RunE:  explore,
	}
	exploreCmd.Flags().Float64Var(&startP, "pressure", 1e5, "initial pressure, Pa")
	exploreCmd.Flags().Float64Var(&startT, "temperature", 300, "initial temperature, K")
	exploreCmd.Flags().StringSliceVarP(&exploreProps, "props", "p", viz.DefaultProperties, "properties to show")

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run the sweeps of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	studyCmd := &cobra.Command{
		Use:   "study [min] [max] [steps]",
		Short: "vary a fluid parameter and compute one property at a fixed state",
		Args:  cobra.ExactArgs(3),
		RunE:  runStudy,
	}
	studyCmd.Flags().StringVar(&studyParam, "param", "cp", "fluid parameter to vary")
	studyCmd.Flags().StringVar(&studyDomain, "domain", "pT", "input domain")
	studyCmd.Flags().StringVar(&studyProp, "prop", "h", "property to compute")
	studyCmd.Flags().Float64Var(&studyX, "x", 1e5, "first input")
	studyCmd.Flags().Float64Var(&studyY, "y", 300, "second input")

	rootCmd.AddCommand(computeCmd, sweepCmd, satCmd, boundsCmd, fluidsCmd, presetsCmd, runsCmd, showCmd, exploreCmd, initCmd, batchCmd, studyCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the config file and applies the global flags over it.
func setup(cmd *cobra.Command, args []string) error {
	cfg = config.DefaultConfig()
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	if preset != "" {
		var fc *config.FluidConfig
		if fluidName != "" {
			fc = config.GetPreset(fluidName, preset)
		} else {
			fc = config.FindPreset(preset)
		}
		if fc == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(fluidName))
		}
		cfg.Fluid = *fc
	} else if fluidName != "" {
		cfg.Fluid = config.FluidConfig{Model: fluidName}
	}
	cfg.Fluid.Args = append(cfg.Fluid.Args, fluidArgs...)

	if dataDir != "" {
		cfg.Output.DataDir = dataDir
	}
	if failOn != "" {
		cfg.Output.FailOn = failOn
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.LogLevel()
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	return nil
}

func openEngine() (*eos.Engine, error) {
	model, err := fluids.Open(cfg.Fluid.Model, cfg.Fluid.Args)
	if err != nil {
		return nil, err
	}
	return eos.New(model,
		eos.WithNumerics(cfg.EngineNumerics()),
		eos.WithLogger(log.WithField("fluid", cfg.Fluid.Model)),
	), nil
}

// checkSeverity fails when worst reaches the configured threshold.
func checkSeverity(worst eos.Severity) error {
	threshold, _ := cfg.FailOn()
	if worst >= threshold {
		return fmt.Errorf("worst severity %s reaches fail-on level %s", worst, threshold)
	}
	return nil
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", a, err)
		}
		out[i] = v
	}
	return out, nil
}

func computeState(cmd *cobra.Command, args []string) error {
	dom, err := eos.ParseDomain(args[0])
	if err != nil {
		return err
	}
	if want := len(dom.Inputs()) + 1; len(args) != want {
		return fmt.Errorf("domain %s takes %d inputs, got %d", dom, want-1, len(args)-1)
	}
	vals, err := parseFloats(args[1:])
	if err != nil {
		return err
	}
	x, y := vals[0], 0.0
	if len(vals) > 1 {
		y = vals[1]
	}

	eng, err := openEngine()
	if err != nil {
		return err
	}
	rows := viz.Evaluate(eng, dom, x, y, computeProps)
	for _, r := range rows {
		if prop, perr := eos.ParseProperty(r.Name); perr == nil {
			if err := eng.Err(dom, prop, r.Code); err != nil {
				log.WithError(err).Debug("property failed")
			}
		}
	}

	info := eng.Info()
	fmt.Printf("%s (%s) at %s = %s\n\n", info.Fluid, info.Equation, dom, strings.Join(args[1:], ", "))
	fmt.Print(viz.Table(viz.GetTheme(theme), rows, -1))
	return checkSeverity(viz.Worst(rows))
}

func runSweep(cmd *cobra.Command, args []string) error {
	dom, err := eos.ParseDomain(domainName)
	if err != nil {
		return err
	}
	spec := sweep.Spec{
		Domain:     dom,
		From:       from,
		To:         to,
		Points:     cfg.Sweep.Points,
		Log:        logSpacing,
		Fixed:      fixed,
		Properties: sweepProps,
	}
	if cmd.Flags().Changed("points") {
		spec.Points = points
	}
	if !dom.OneInput() {
		if spec.Vary, err = eos.ParseProperty(vary); err != nil {
			return err
		}
	}

	eng, err := openEngine()
	if err != nil {
		return err
	}
	d := field.NewDispatcher(eng)
	d.Workers, d.MinChunk = cfg.Sweep.Workers, cfg.Sweep.MinChunk
	if workers > 0 {
		d.Workers = workers
	}
	d.Log = log

	res, err := sweep.Run(d, spec)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"domain": dom.String(),
		"points": spec.Points,
		"worst":  res.Worst.String(),
	}).Info("sweep done")

	if jsonOut {
		if err := store.WriteJSON(os.Stdout, res); err != nil {
			return err
		}
	} else {
		if err := printSummaries(res.Summaries(), spec.Points); err != nil {
			return err
		}
	}

	if plot {
		for _, name := range spec.Properties {
			graph, err := viz.PlotSweep(res, name, 80, 10)
			if err != nil {
				log.WithError(err).Warn("skipping plot")
				continue
			}
			fmt.Println(graph)
			fmt.Println()
		}
	}

	if save {
		st := store.New(cfg.Output.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(store.Run{Model: cfg.Fluid.Model, Args: cfg.Fluid.Args, Engine: eng}, res)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "run id: %s\n", runID)
	}
	return checkSeverity(res.Worst)
}

func printSummaries(sums []sweep.Summary, n int) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROPERTY\tMIN\tMAX\tUSABLE")
	for _, s := range sums {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\n", s.Name, viz.FormatValue(s.Min), viz.FormatValue(s.Max), s.Usable, n)
	}
	return w.Flush()
}

func saturation(cmd *cobra.Command, args []string) error {
	vals, err := parseFloats(args)
	if err != nil {
		return err
	}
	dom := eos.SatP
	if byTemperature {
		dom = eos.SatT
	}
	eng, err := openEngine()
	if err != nil {
		return err
	}

	t := viz.GetTheme(theme)
	worst := eos.Good
	for _, v := range vals {
		rows := viz.Evaluate(eng, dom, v, 0, satProps)
		fmt.Printf("%s = %s\n", dom.Inputs()[0], viz.FormatValue(v))
		fmt.Println(viz.Table(t, rows, -1))
		worst = eos.WorstSeverity(worst, viz.Worst(rows))
	}
	return checkSeverity(worst)
}

func showBounds(cmd *cobra.Command, args []string) error {
	eng, err := openEngine()
	if err != nil {
		return err
	}
	info := eng.Info()
	fmt.Printf("fluid: %s\nequation: %s\ntable: %s\n\n", info.Fluid, info.Equation, info.Table)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BOUND\tVALUE")
	for _, b := range eos.Bounds() {
		v, c := eng.Bound(b)
		if c.Failed() {
			fmt.Fprintf(w, "%s\t-\n", b)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", b, viz.FormatValue(v))
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(cfg.Output.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFLUID\tTIME\tDOMAIN\tVARY\tPOINTS\tWORST")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			run.ID,
			run.Fluid.Fluid,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Domain,
			run.Vary,
			run.Points,
			run.Worst,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(cfg.Output.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	cols, errs, err := st.LoadPoints(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("fluid: %s (%s)\n", meta.Fluid.Fluid, meta.Fluid.Equation)
	fmt.Printf("domain: %s\n", meta.Domain)
	fmt.Printf("points: %d, worst: %s\n\n", meta.Points, meta.Worst)

	for _, name := range meta.Properties {
		col, ok := cols.Lookup(name)
		if !ok {
			continue
		}
		var data []float64
		for i := 0; i < col.Len(); i++ {
			if !errs.At(i).Failed() {
				data = append(data, col.At(i))
			}
		}
		if len(data) == 0 {
			fmt.Printf("%s: no usable points\n\n", name)
			continue
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		))
		fmt.Println()
	}
	return nil
}

func explore(cmd *cobra.Command, args []string) error {
	eng, err := openEngine()
	if err != nil {
		return err
	}
	h, c := eng.Enthalpy(eos.PT, startP, startT)
	if err := eng.Err(eos.PT, eos.H, c); err != nil {
		return err
	}
	m := viz.NewExplorer(eng, viz.GetTheme(theme), startP, h, exploreProps)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func automationOptions() automation.Options {
	return automation.Options{
		Numerics: cfg.EngineNumerics(),
		Workers:  cfg.Sweep.Workers,
		MinChunk: cfg.Sweep.MinChunk,
		Log:      log,
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	results, err := automation.RunScenario(context.Background(), sc, automationOptions())
	if err != nil {
		return err
	}

	st := store.New(cfg.Output.DataDir)
	worst := eos.Good
	for _, r := range results {
		name := r.Step.Name
		if name == "" {
			name = r.Step.Model
		}
		fmt.Printf("%s (%s, %s)\n", name, r.Engine.Info().Fluid, r.Result.Spec.Domain)
		if err := printSummaries(r.Result.Summaries(), r.Result.Spec.Points); err != nil {
			return err
		}
		fmt.Println()
		worst = eos.WorstSeverity(worst, r.Result.Worst)

		if !r.Step.Save {
			continue
		}
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(store.Run{Model: r.Step.Model, Args: r.Step.Args, Engine: r.Engine}, r.Result)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "run id: %s\n", runID)
	}
	return checkSeverity(worst)
}

func runStudy(cmd *cobra.Command, args []string) error {
	vals, err := parseFloats(args[:2])
	if err != nil {
		return err
	}
	steps, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid steps %q: %w", args[2], err)
	}
	dom, err := eos.ParseDomain(studyDomain)
	if err != nil {
		return err
	}
	prop, err := eos.ParseProperty(studyProp)
	if err != nil {
		return err
	}

	pts, err := automation.RunParameterSweep(context.Background(), &automation.ParameterSweep{
		Model:     cfg.Fluid.Model,
		Args:      cfg.Fluid.Args,
		ParamName: studyParam,
		ParamMin:  vals[0],
		ParamMax:  vals[1],
		NumSteps:  steps,
		Domain:    dom,
		X:         studyX,
		Y:         studyY,
		Property:  prop,
	}, automationOptions())
	if err != nil {
		return err
	}

	t := viz.GetTheme(theme)
	worst := eos.Good
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\tCODE\n", strings.ToUpper(studyParam), strings.ToUpper(studyProp))
	for _, pt := range pts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", viz.FormatValue(pt.ParamValue), viz.FormatValue(pt.Value), viz.SeverityBadge(t, pt.Code.Severity))
		worst = eos.WorstSeverity(worst, pt.Code.Severity)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return checkSeverity(worst)
}
