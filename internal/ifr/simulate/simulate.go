// Package simulate auto-plays a session and records the trace.
//
// Each step rolls the first available, incomplete event of the current
// stage and completes it with a Decider. Completed stages progress until the
// session finishes, gets stuck or exhausts its step budget.
package simulate

import (
	"context"
	"log"
	"os"

	"github.com/OtherAytay/IFR/internal/core/check"
	"github.com/OtherAytay/IFR/internal/core/dice"
	"github.com/OtherAytay/IFR/internal/ifr/play"
	"github.com/OtherAytay/IFR/internal/ifr/scenario"
)

// Decider chooses whether the rolled task passes.
type Decider func(event *play.EventState, task *play.TaskState) bool

// AlwaysPass passes every task.
func AlwaysPass(*play.EventState, *play.TaskState) bool { return true }

// AlwaysFail fails every task.
func AlwaysFail(*play.EventState, *play.TaskState) bool { return false }

// Difficulty passes a task when a die of the given sides, drawn from src,
// meets difficulty.
func Difficulty(src dice.Source, sides, difficulty int) Decider {
	return func(*play.EventState, *play.TaskState) bool {
		face, err := dice.RollDie(src, sides)
		return err == nil && check.MeetsDifficulty(face, difficulty)
	}
}

// Coin passes a task on a coin flip drawn from src.
func Coin(src dice.Source) Decider {
	return Difficulty(src, 2, 2)
}

// Options controls a simulation run.
type Options struct {
	// MaxSteps bounds rolls plus stage moves. Zero uses DefaultOptions.
	MaxSteps int
	// MaxRerolls bounds consecutive rerolls of one event.
	MaxRerolls int
	Decide     Decider
	Verbose    bool
	Logger     *log.Logger
}

// DefaultOptions returns the default simulation options.
func DefaultOptions() Options {
	return Options{
		MaxSteps:   1000,
		MaxRerolls: 20,
		Decide:     AlwaysPass,
	}
}

// Step is one roll and its resolution.
type Step struct {
	Number      int
	Stage       string
	Event       string
	Roll        int
	Task        string
	Description string
	Pass        bool
	Resolution  play.Resolution
}

// Result is the trace of a run.
type Result struct {
	Steps []Step
	// Path lists the stage titles entered, in order.
	Path     []string
	Final    map[string]scenario.Value
	Finished bool
	// Stuck is set when the current stage can neither be played nor left
	// through a progression, or an event kept rerolling.
	Stuck bool
}

type runner struct {
	session    *play.Session
	maxSteps   int
	maxRerolls int
	decide     Decider
	logger     *log.Logger
	verbose    bool

	moves  int
	result Result
}

// Run plays session until it finishes, gets stuck, exceeds MaxSteps or ctx
// is done. The partial result is returned with ctx's error.
func Run(ctx context.Context, session *play.Session, opts Options) (Result, error) {
	defaults := DefaultOptions()
	r := &runner{
		session:    session,
		maxSteps:   opts.MaxSteps,
		maxRerolls: opts.MaxRerolls,
		decide:     opts.Decide,
		logger:     opts.Logger,
		verbose:    opts.Verbose,
	}
	if r.maxSteps <= 0 {
		r.maxSteps = defaults.MaxSteps
	}
	if r.maxRerolls <= 0 {
		r.maxRerolls = defaults.MaxRerolls
	}
	if r.decide == nil {
		r.decide = defaults.Decide
	}
	if r.logger == nil {
		r.logger = log.New(os.Stderr, "", 0)
	}

	err := r.run(ctx)
	r.result.Finished = session.Finished() && !r.result.Stuck
	for _, st := range session.Path() {
		r.result.Path = append(r.result.Path, st.Title())
	}
	r.result.Final = session.Snapshot()
	return r.result, err
}

func (r *runner) run(ctx context.Context) error {
	r.logf("simulation start: %s", r.session.Scenario().Title())
	for r.moves < r.maxSteps {
		if err := ctx.Err(); err != nil {
			return err
		}
		stage := r.session.CurrentStage()
		if stage.IsComplete() {
			from := stage.Title()
			if !r.session.Progress() {
				if !stage.Stage().IsTerminal() {
					r.result.Stuck = true
					r.logf("stuck in %s: no progression holds", from)
					return nil
				}
				r.logf("simulation done: %s", from)
				return nil
			}
			r.moves++
			r.logf("progress: %s -> %s", from, r.session.CurrentStage().Title())
			continue
		}

		event := nextEvent(stage)
		if event == nil {
			r.result.Stuck = true
			r.logf("stuck in %s", stage.Title())
			return nil
		}
		done, err := r.playEvent(ctx, stage, event)
		if err != nil {
			return err
		}
		if !done {
			r.result.Stuck = true
			r.logf("reroll limit reached for %s", event.Title())
			return nil
		}
	}
	r.logf("step limit reached: %d", r.maxSteps)
	return nil
}

// playEvent rolls event until a resolution other than reroll. It reports
// false when the reroll budget runs out.
func (r *runner) playEvent(ctx context.Context, stage *play.StageState, event *play.EventState) (bool, error) {
	rerolls := 0
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if r.moves >= r.maxSteps {
			return true, nil
		}
		roll, err := event.Roll()
		if err != nil {
			return false, err
		}
		task := event.ActiveTask()
		pass := r.decide(event, task)
		description := task.Description()
		res, err := event.Complete(pass)
		if err != nil {
			return false, err
		}
		r.moves++
		step := Step{
			Number:      len(r.result.Steps) + 1,
			Stage:       stage.Title(),
			Event:       event.Title(),
			Roll:        roll,
			Task:        task.Task().Title(),
			Description: description,
			Pass:        pass,
			Resolution:  res,
		}
		r.result.Steps = append(r.result.Steps, step)
		r.logf("step %d: [%s] %s rolled %d -> %s (%s)", step.Number, step.Stage, step.Event, roll, step.Task, res)

		if res != play.ResolutionReroll {
			return true, nil
		}
		rerolls++
		if rerolls > r.maxRerolls {
			return false, nil
		}
	}
}

func nextEvent(stage *play.StageState) *play.EventState {
	for _, e := range stage.EventStates() {
		if !e.IsComplete() && e.IsAvailable() {
			return e
		}
	}
	return nil
}

func (r *runner) logf(format string, args ...any) {
	if !r.verbose || r.logger == nil {
		return
	}
	r.logger.Printf(format, args...)
}
