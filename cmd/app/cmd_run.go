package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/akyairhashvil/spiritualpath/internal/config"
	"github.com/akyairhashvil/spiritualpath/internal/database"
	"github.com/akyairhashvil/spiritualpath/internal/timer"
	"github.com/akyairhashvil/spiritualpath/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type runOptions struct {
	seconds  int
	note     string
	guidedID string
}

var (
	runMinutes  int
	runDuration time.Duration
	runNote     string
	runGuided   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one meditation without the interface",
	Long: `Counts down in the terminal, rings the bell and records the session.

Examples:
  spiritualpath run --duration 10m --note "quiet morning #calm"
  spiritualpath run --guided body-scan`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, env *appEnv) error {
			opts := runOptions{note: runNote, guidedID: runGuided}
			switch {
			case runGuided != "":
				if _, ok := config.FindGuided(runGuided); !ok {
					return fmt.Errorf("unknown guided meditation %q", runGuided)
				}
				opts.seconds = config.GuidedDuration(runGuided)
			case runDuration > 0:
				opts.seconds = int(runDuration / time.Second)
			case runMinutes > 0:
				opts.seconds = runMinutes * 60
			default:
				opts.seconds = env.cfg.Timer.DefaultSeconds
			}
			return runHeadless(cmd, env, opts)
		})
	},
}

func init() {
	runCmd.Flags().DurationVarP(&runDuration, "duration", "d", 0, "session length, e.g. 10m")
	runCmd.Flags().IntVarP(&runMinutes, "minutes", "m", 0, "session length in minutes")
	runCmd.Flags().StringVarP(&runNote, "note", "n", "", "note saved with the session")
	runCmd.Flags().StringVarP(&runGuided, "guided", "g", "", "guided meditation ID (see `guided`)")
}

// runHeadless counts down until completion or an interrupt signal.
func runHeadless(cmd *cobra.Command, env *appEnv, opts runOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, err := startHeadless(env, opts, timer.SystemClock, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return r.Wait(ctx)
}

// headlessRun drives one countdown and records it when it completes.
type headlessRun struct {
	ctrl   *timer.Controller
	out    io.Writer
	note   string
	logger *zap.Logger
	done   chan timer.Completion
}

func startHeadless(env *appEnv, opts runOptions, clock timer.Clock, out io.Writer) (*headlessRun, error) {
	r := &headlessRun{
		out:    out,
		note:   strings.TrimSpace(opts.note),
		logger: env.logger.Named("run"),
		done:   make(chan timer.Completion, 1),
	}
	rec := &database.SessionSink{Repo: env.db, UserID: env.cfg.UserID, GuidedID: opts.guidedID, Now: clock.Now}
	alert := timer.AlerterFunc(func() error {
		if err := env.bell.Alert(); err != nil {
			fmt.Fprint(out, "\a")
			return err
		}
		return nil
	})

	ctrl, err := timer.New(opts.seconds, timer.Options{
		Bounds:     timer.Bounds{Min: env.cfg.Timer.MinSeconds, Max: env.cfg.Timer.MaxSeconds},
		Clock:      clock,
		Recorder:   rec,
		Alerter:    alert,
		Logger:     r.logger,
		OnChange:   r.report,
		OnComplete: func(c timer.Completion) { r.done <- c },
	})
	if err != nil {
		return nil, err
	}
	r.ctrl = ctrl

	title := "Meditation"
	if g, ok := config.FindGuided(opts.guidedID); ok {
		title = g.Title
	}
	fmt.Fprintf(out, "%s: %s. Press ctrl+c to stop.\n", title, tui.FormatClock(opts.seconds))
	if err := ctrl.Start(); err != nil {
		ctrl.Close()
		return nil, err
	}
	return r, nil
}

// report prints whole minutes and the final countdown.
func (r *headlessRun) report(s timer.Snapshot) {
	if !s.Running || s.Remaining == s.Duration {
		return
	}
	if s.Remaining%60 == 0 || s.Remaining <= 5 {
		fmt.Fprintf(r.out, "%s remaining\n", tui.FormatClock(s.Remaining))
	}
}

// Wait blocks until the session completes or ctx is cancelled. An
// interrupted session is not recorded.
func (r *headlessRun) Wait(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error {
		defer cancel()
		select {
		case c := <-r.done:
			if err := r.ctrl.SaveSession(ctx, r.note); err != nil {
				return err
			}
			fmt.Fprintf(r.out, "Session complete: %s recorded.\n", tui.FormatClock(c.ElapsedSeconds))
			return nil
		case <-gctx.Done():
			r.ctrl.Pause()
			s := r.ctrl.Snapshot()
			fmt.Fprintf(r.out, "Stopped after %s; session not recorded.\n", tui.FormatClock(s.Elapsed()))
			return nil
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		r.ctrl.Close()
		return nil
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
