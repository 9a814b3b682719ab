// reportdash is a terminal client for a load-test service's last-reports view.
//
// Usage:
//
//	reportdash                         # interactive view, refreshed every 30s
//	reportdash watch | tee reports.log # plain list re-printed on every refresh
//	reportdash list --sort -last_rps   # one-shot table for scripts and CI logs
//	reportdash rerun <job-id>          # run a job's test again now
//	reportdash stop <job-id> <report-id>
//
// Output modes for list (auto-detected):
//
//	terminal  styled table (default when TTY)
//	llm       plain text without ANSI codes (default when piped)
//	markdown  pipe table for job summaries
//	json      structured JSON for automation
//
// Exit codes: 0 ok, 1 job action failed, 2 usage, config or fetch error.
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

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dkoosis/reportdash/internal/config"
	"github.com/dkoosis/reportdash/internal/logger"
	"github.com/dkoosis/reportdash/internal/version"
	"github.com/dkoosis/reportdash/pkg/mapper"
	"github.com/dkoosis/reportdash/pkg/render"
	"github.com/dkoosis/reportdash/pkg/report"
	"github.com/dkoosis/reportdash/pkg/reportlist"
	"github.com/dkoosis/reportdash/pkg/store"
	"github.com/dkoosis/reportdash/pkg/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := runContext(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	return runContext(context.Background(), args, stdin, stdout, stderr)
}

// exitError carries a specific exit code out of a cobra RunE.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func fail(code int, err error) error { return &exitError{code: code, err: err} }

// app holds what every subcommand shares once flags and config are resolved.
type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer
	getenv         func(string) string

	flags config.CliFlags
	cfg   *config.AppConfig
	log   zerolog.Logger
	close func() error
}

func runContext(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, getenv: os.Getenv, close: func() error { return nil }}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	_ = a.close()
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "reportdash: %v\n", err)
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 2
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "reportdash",
		Short:         "Watch, sort, search, re-run and stop load-test reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.watch(cmd.Context())
		},
	}
	root.SetVersionTemplate(version.String() + "\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.ConfigPath, "config", "", "config file (default .reportdash.yaml, then ~/.config/reportdash/config.yaml)")
	pf.StringVar(&a.flags.APIURL, "api-url", "", "load-test service base URL")
	pf.StringVar(&a.flags.Token, "token", "", "bearer token for the service")
	pf.DurationVar(&a.flags.RefreshInterval, "refresh", config.DefaultRefreshInterval, "refresh interval for the interactive view")
	pf.StringVar(&a.flags.Theme, "theme", "", "theme: default, orca, mono")
	pf.BoolVar(&a.flags.NoColor, "no-color", false, "disable colors")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error, disabled")
	pf.StringVar(&a.flags.LogFile, "log-file", "", "write logs to this file")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		a.flags.RefreshSet = cmd.Flags().Changed("refresh")
		a.flags.NoColorSet = cmd.Flags().Changed("no-color")
		cfg, err := config.Resolve(a.flags, a.getenv)
		if err != nil {
			return fail(2, err)
		}
		a.cfg = cfg

		interactive := (cmd == root || cmd.Name() == "watch") && isTTYWriter(a.stdout)
		log, closeLog, err := logger.Open(logger.Options{
			Level:       cfg.LogLevel,
			File:        cfg.LogFile,
			Interactive: interactive,
			NoColor:     cfg.NoColor,
		}, a.stderr)
		if err != nil {
			return fail(2, err)
		}
		a.log, a.close = log, closeLog
		a.log.Debug().Str("api_url", cfg.APIURL).Str("config", cfg.Source).Msg("config resolved")
		return nil
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "watch",
			Short: "Interactive reports view (default)",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, _ []string) error { return a.watch(cmd.Context()) },
		},
		a.listCommand(),
		&cobra.Command{
			Use:   "rerun <job-id>",
			Short: "Create a job from an existing one and run it immediately",
			Args:  cobra.ExactArgs(1),
			RunE:  func(cmd *cobra.Command, args []string) error { return a.rerun(cmd.Context(), args[0]) },
		},
		&cobra.Command{
			Use:   "stop <job-id> <report-id>",
			Short: "Stop a running report",
			Args:  cobra.ExactArgs(2),
			RunE:  func(cmd *cobra.Command, args []string) error { return a.stop(cmd.Context(), args[0], args[1]) },
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Args:  cobra.NoArgs,
			PersistentPreRunE: func(*cobra.Command, []string) error {
				return nil
			},
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(a.stdout, version.String())
			},
		},
	)
	return root
}

func (a *app) listCommand() *cobra.Command {
	var (
		sorts  []string
		search string
		format string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the report list once",
		Long: `Print the report list once.

--sort takes a field name, ascending; prefix it with "-" for descending. When it is
repeated the last one wins. Ties keep service order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.list(cmd.Context(), sorts, search, format)
		},
	}
	cmd.Flags().StringSliceVar(&sorts, "sort", nil, "sort field, e.g. last_rps or -start_time")
	cmd.Flags().StringVar(&search, "search", "", "filter by test name or status (case-insensitive)")
	cmd.Flags().StringVar(&format, "format", render.FormatAuto, "output format: auto, terminal, llm, markdown, json")
	return cmd
}

func (a *app) newStore() (*store.Store, error) {
	client, err := store.NewClient(store.Options{
		BaseURL:      a.cfg.APIURL,
		Token:        a.cfg.Token,
		Timeout:      a.cfg.RequestTimeout,
		RetryMax:     a.cfg.RetryMax,
		ReportsLimit: a.cfg.ReportsLimit,
		Logger:       a.log,
	})
	if err != nil {
		return nil, fail(2, err)
	}
	return store.New(client, a.log), nil
}

func (a *app) watch(ctx context.Context) error {
	st, err := a.newStore()
	if err != nil {
		return err
	}
	if !isTTYWriter(a.stdout) {
		return tui.RunNonTTY(ctx, tui.PlainOptions{
			Backend:  st,
			Interval: a.cfg.RefreshInterval,
			Renderer: render.NewLLM(),
			Logger:   a.log,
		}, a.stdout)
	}
	_, err = tui.Run(ctx, tui.RunOptions{
		Options: tui.Options{
			Backend:         st,
			Theme:           a.cfg.EffectiveTheme(),
			FeedbackTimeout: a.cfg.FeedbackTimeout,
			Logger:          a.log,
		},
		RefreshInterval: a.cfg.RefreshInterval,
		Input:           a.stdin,
		Output:          a.stdout,
		AltScreen:       true,
	})
	if err != nil {
		return fail(2, err)
	}
	return nil
}

func (a *app) list(ctx context.Context, sorts []string, search, format string) error {
	st, err := a.newStore()
	if err != nil {
		return err
	}

	state, cmds := reportlist.Activate(reportlist.New())
	for _, out := range reportlist.DispatchAll(ctx, st, cmds) {
		if out.Command.Kind != reportlist.CmdFetchReports {
			continue
		}
		if out.Err != nil {
			return fail(2, out.Err)
		}
		state = reportlist.Refreshed(state, out.Reports)
	}

	state = reportlist.Search(state, search)
	for _, s := range sorts {
		field, desc := strings.CutPrefix(s, "-")
		if !reportlist.IsSortable(field) {
			return fail(2, fmt.Errorf("cannot sort by %q", field))
		}
		state = sortBy(state, field, desc)
	}

	width, _ := termSize(a.stdout)
	theme := render.ThemeByName(a.cfg.EffectiveTheme())
	r, err := render.ForFormat(format, isTTYWriter(a.stdout), theme, width)
	if err != nil {
		return fail(2, err)
	}
	patterns := mapper.FromReports(mapper.View{
		Reports: state.Displayed(),
		Total:   len(state.Reports()),
		Sort:    state.SortIndicator(),
		Search:  state.SearchTerm(),
	})
	fmt.Fprint(a.stdout, r.Render(patterns))
	return nil
}

// sortBy requests field until the controller sorts it in the wanted direction.
func sortBy(s reportlist.State, field string, desc bool) reportlist.State {
	want := reportlist.Ascending
	if desc {
		want = reportlist.Descending
	}
	s = reportlist.Sort(s, field)
	if s.SortKey().Dir != want {
		s = reportlist.Sort(s, field)
	}
	return s
}

func (a *app) rerun(ctx context.Context, jobID string) error {
	st, err := a.newStore()
	if err != nil {
		return err
	}
	job, err := st.Job(ctx, jobID)
	if err != nil {
		return fail(2, err)
	}
	state, cmds := reportlist.RunTest(reportlist.New(), job)
	reportlist.DispatchAll(ctx, st, cmds)
	return a.reportAction(state, st)
}

func (a *app) stop(ctx context.Context, jobID, reportID string) error {
	st, err := a.newStore()
	if err != nil {
		return err
	}
	state, cmds := reportlist.Stop(reportlist.New(), report.Report{JobID: jobID, ReportID: reportID})
	reportlist.DispatchAll(ctx, st, cmds)
	return a.reportAction(state, st)
}

// reportAction prints the feedback bar's message, or fails with the alert's.
func (a *app) reportAction(state reportlist.State, st *store.Store) error {
	fb := st.Feedback()
	if msg, ok := reportlist.ComposeAlert(fb); ok {
		return fail(1, errors.New(msg))
	}
	if msg, ok := reportlist.FeedbackMessage(state, fb); ok {
		fmt.Fprintln(a.stdout, msg)
	}
	return nil
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termSize returns the terminal dimensions for w, defaulting to 80x24.
func termSize(w io.Writer) (width, height int) {
	width, height = 80, 24
	if f, ok := w.(*os.File); ok {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			if tw > 0 {
				width = tw
			}
			if th > 0 {
				height = th
			}
		}
	}
	return width, height
}
