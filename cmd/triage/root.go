package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/llm-d/llm-d-triage-allocator/internal/actuator"
	"github.com/llm-d/llm-d-triage-allocator/internal/config"
	"github.com/llm-d/llm-d-triage-allocator/internal/logging"
	"github.com/llm-d/llm-d-triage-allocator/internal/optimizer"
	"github.com/llm-d/llm-d-triage-allocator/internal/report"
	"github.com/llm-d/llm-d-triage-allocator/pkg/core"
)

const envPrefix = "TRIAGE"

// flag names double as viper keys
const (
	flagSeed         = "seed"
	flagUnits        = "units"
	flagHours        = "hours"
	flagIterations   = "iterations"
	flagSearchBudget = "search-budget"
	flagLogLevel     = "log-level"
	flagDevLog       = "dev-log"
	flagPrintMetrics = "print-metrics"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "triage",
		Short:         "Ventilator triage allocation engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "run [scenario.yaml ...]",
		Short: "Rank patients and allocate ventilators for each scenario file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(cmd.Context(), v, cmd.OutOrStdout(), args)
		},
	}

	addRunFlags(cmd.Flags())
	cobra.CheckErr(bindEnv(v, cmd.Flags()))

	return cmd
}

func addRunFlags(flags *pflag.FlagSet) {
	flags.Uint64(flagSeed, 0, "seed for the annealing search (overrides the scenario seed)")
	flags.Int(flagUnits, 0, "ventilators available (overrides the scenario)")
	flags.Int(flagHours, 0, "ventilator-hour budget (overrides the scenario)")
	flags.Int(flagIterations, 0, "annealing iterations (overrides the scenario)")
	flags.Duration(flagSearchBudget, 0, "wall-clock budget for the annealing search (overrides the scenario)")
	flags.String(flagLogLevel, "info", "log level: trace, debug, info, warn or error")
	flags.Bool(flagDevLog, false, "use human-readable development logging")
	flags.Bool(flagPrintMetrics, false, "print the Prometheus metrics after the reports")
}

// bindEnv binds every flag into v, with TRIAGE_<FLAG_NAME> environment fallbacks.
func bindEnv(v *viper.Viper, flags *pflag.FlagSet) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

func runScenarios(ctx context.Context, v *viper.Viper, out io.Writer, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := logging.Setup(v.GetString(flagLogLevel), v.GetBool(flagDevLog))
	if err != nil {
		return err
	}
	ctx = ctrl.LoggerInto(ctx, logger)

	scenarios := make([]optimizer.Scenario, 0, len(paths))
	for _, path := range paths {
		patients, cfg, err := config.LoadScenario(path)
		if err != nil {
			return err
		}
		cfg, err = applyOverrides(v, cfg)
		if err != nil {
			return fmt.Errorf("scenario %s: %w", path, err)
		}
		scenarios = append(scenarios, optimizer.Scenario{
			Name:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Patients:  patients,
			Resources: cfg,
		})
		logger.V(logging.DEBUG).Info("Loaded scenario",
			"path", path,
			"patients", len(patients),
			"units", cfg.UnitCount,
			"hours", cfg.MaxTotalHours)
	}

	reg := prometheus.NewRegistry()
	emitter, err := actuator.NewMetricsEmitter(reg)
	if err != nil {
		return err
	}
	opt := optimizer.NewOptimizer(optimizer.WithEmitter(emitter))

	results, err := opt.OptimizeAll(ctx, scenarios)
	if err != nil {
		return err
	}

	for i, res := range results {
		fmt.Fprintf(out, "Scenario: %s (run %s)\n", scenarios[i].Name, res.RunID)
		fmt.Fprint(out, report.Format(res))
	}

	if v.GetBool(flagPrintMetrics) {
		return writeMetrics(out, reg)
	}
	return nil
}

// applyOverrides replaces scenario values with flags or TRIAGE_* environment
// variables that were explicitly set.
func applyOverrides(v *viper.Viper, cfg core.ResourceConfig) (core.ResourceConfig, error) {
	if v.IsSet(flagUnits) {
		cfg.UnitCount = v.GetInt(flagUnits)
	}
	if v.IsSet(flagHours) {
		cfg.MaxTotalHours = v.GetInt(flagHours)
	}
	if v.IsSet(flagIterations) {
		cfg.IterationCount = v.GetInt(flagIterations)
	}
	if v.IsSet(flagSearchBudget) {
		cfg.SearchTimeBudget = v.GetDuration(flagSearchBudget)
	}
	if v.IsSet(flagSeed) {
		seed := v.GetUint64(flagSeed)
		cfg.Seed = &seed
	}
	if err := cfg.Validate(); err != nil {
		return core.ResourceConfig{}, err
	}
	return cfg, nil
}

func writeMetrics(out io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	fmt.Fprintf(out, "\n# metrics gathered %s\n", time.Now().UTC().Format(time.RFC3339))
	enc := expfmt.NewEncoder(out, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
