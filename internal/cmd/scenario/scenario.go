// Package scenario loads a Lua scenario, reports its shape and optionally
// auto-plays it.
package scenario

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/OtherAytay/IFR/internal/core/dice"
	"github.com/OtherAytay/IFR/internal/ifr/luascript"
	"github.com/OtherAytay/IFR/internal/ifr/play"
	ifrscenario "github.com/OtherAytay/IFR/internal/ifr/scenario"
	"github.com/OtherAytay/IFR/internal/ifr/simulate"
	platformcmd "github.com/OtherAytay/IFR/internal/platform/cmd"
	apperrors "github.com/OtherAytay/IFR/internal/platform/errors"
	"github.com/OtherAytay/IFR/internal/platform/i18n/catalog"
	"github.com/OtherAytay/IFR/internal/random"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/text/message"
)

// Decision policies accepted by -decide.
const (
	DecidePass = "pass"
	DecideFail = "fail"
	DecideCoin = "coin"
)

// Config holds scenario command configuration.
type Config struct {
	Scenario   string `env:"IFR_SCENARIO_FILE"`
	Simulate   bool   `env:"IFR_SCENARIO_SIMULATE"`
	Seed       int64  `env:"IFR_SCENARIO_SEED"`
	MaxSteps   int    `env:"IFR_SCENARIO_MAX_STEPS"    envDefault:"1000"`
	MaxRerolls int    `env:"IFR_SCENARIO_MAX_REROLLS"  envDefault:"20"`
	Decide     string `env:"IFR_SCENARIO_DECIDE"       envDefault:"pass"`
	Locale     string `env:"IFR_LOCALE"                envDefault:"en-US"`
	Verbose    bool   `env:"IFR_SCENARIO_VERBOSE"`
	Watch      bool   `env:"IFR_SCENARIO_WATCH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to scenario lua file")
	fs.BoolVar(&cfg.Simulate, "simulate", cfg.Simulate, "auto-play the scenario and print the trace")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "dice seed for the simulation (0 draws a random seed)")
	fs.IntVar(&cfg.MaxSteps, "max-steps", cfg.MaxSteps, "simulation step limit")
	fs.IntVar(&cfg.MaxRerolls, "max-rerolls", cfg.MaxRerolls, "consecutive rerolls allowed per event")
	fs.StringVar(&cfg.Decide, "decide", cfg.Decide, "task decisions: pass, fail or coin")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "output locale")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload the scenario whenever the file changes")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the scenario command.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if cfg.Scenario == "" {
		return errors.New("scenario path is required")
	}
	switch cfg.Decide {
	case "", DecidePass, DecideFail, DecideCoin:
	default:
		return fmt.Errorf("unknown decide policy %q", cfg.Decide)
	}

	logger := log.New(errOut, "", 0)
	if !cfg.Watch {
		return runOnce(ctx, cfg, out, logger)
	}
	return watch(ctx, cfg, out, logger)
}

func runOnce(ctx context.Context, cfg Config, out io.Writer, logger *log.Logger) error {
	printer := catalog.Default().Printer(cfg.Locale)

	scn, err := luascript.LoadFile(cfg.Scenario)
	if err != nil {
		logger.Print(apperrors.Localize(err, cfg.Locale))
		return err
	}

	events := 0
	for _, st := range scn.Stages() {
		events += len(st.Events())
	}
	printer.Fprintf(out, "cli.scenario.summary", scn.Title(), len(scn.Variables()), len(scn.Stages()), events)
	fmt.Fprintln(out)
	printer.Fprintf(out, "cli.scenario.valid")
	fmt.Fprintln(out)

	if !cfg.Simulate {
		return nil
	}
	return simulateScenario(ctx, cfg, scn, printer, out, logger)
}

func simulateScenario(ctx context.Context, cfg Config, scn *ifrscenario.Scenario, printer *message.Printer, out io.Writer, logger *log.Logger) error {
	seed, err := random.ResolveSeed(cfg.Seed)
	if err != nil {
		return err
	}
	src := dice.NewSource(seed)
	session, err := play.NewSession(scn, play.WithSource(src))
	if err != nil {
		return err
	}

	opts := simulate.DefaultOptions()
	if cfg.MaxSteps > 0 {
		opts.MaxSteps = cfg.MaxSteps
	}
	if cfg.MaxRerolls > 0 {
		opts.MaxRerolls = cfg.MaxRerolls
	}
	switch cfg.Decide {
	case DecideFail:
		opts.Decide = simulate.AlwaysFail
	case DecideCoin:
		opts.Decide = simulate.Coin(dice.NewSource(seed + 1))
	}
	opts.Verbose = cfg.Verbose
	opts.Logger = logger

	printer.Fprintf(out, "cli.simulate.seed", seed)
	fmt.Fprintln(out)

	result, err := simulate.Run(ctx, session, opts)
	if err != nil {
		return err
	}

	stage := ""
	for _, step := range result.Steps {
		if step.Stage != stage {
			stage = step.Stage
			printer.Fprintf(out, "cli.simulate.progress", stage)
			fmt.Fprintln(out)
		}
		verdict := printer.Sprintf("core.fail")
		if step.Pass {
			verdict = printer.Sprintf("core.pass")
		}
		printer.Fprintf(out, "cli.simulate.step", step.Number, step.Stage, step.Event, step.Roll, step.Task, verdict, step.Resolution.String())
		fmt.Fprintln(out)
	}

	last := session.CurrentStage().Title()
	switch {
	case result.Finished:
		printer.Fprintf(out, "cli.simulate.finished", len(result.Steps), last)
	case result.Stuck:
		printer.Fprintf(out, "cli.simulate.stuck", len(result.Steps), last)
	default:
		printer.Fprintf(out, "cli.simulate.limit", opts.MaxSteps, last)
	}
	fmt.Fprintln(out)

	for _, v := range session.Variables() {
		printer.Fprintf(out, "cli.simulate.variable", v.Variable().Name(), v.Value().String())
		fmt.Fprintln(out)
	}
	return nil
}

// watch runs the command on start and again after every write to the
// scenario file, until ctx ends. Load failures are reported and watching
// continues.
func watch(ctx context.Context, cfg Config, out io.Writer, logger *log.Logger) error {
	printer := catalog.Default().Printer(cfg.Locale)
	path, err := filepath.Abs(cfg.Scenario)
	if err != nil {
		return fmt.Errorf("resolve scenario path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	printer.Fprintf(out, "cli.scenario.watching", cfg.Scenario)
	fmt.Fprintln(out)
	if err := runOnce(ctx, cfg, out, logger); err != nil && cfg.Verbose {
		logger.Printf("run: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			printer.Fprintf(out, "cli.scenario.reloaded", cfg.Scenario)
			fmt.Fprintln(out)
			if err := runOnce(ctx, cfg, out, logger); err != nil && cfg.Verbose {
				logger.Printf("run: %v", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Printf("watch: %v", err)
		}
	}
}
