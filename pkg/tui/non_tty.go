package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"k8s.io/utils/clock"

	"github.com/dkoosis/reportdash/pkg/mapper"
	"github.com/dkoosis/reportdash/pkg/render"
	"github.com/dkoosis/reportdash/pkg/reportlist"
)

// PlainOptions configures RunNonTTY.
type PlainOptions struct {
	Backend  Backend
	Interval time.Duration
	Renderer render.Renderer
	Search   string
	Logger   zerolog.Logger
	Clock    clock.WithTicker
}

// RunNonTTY is the watch mode for pipes and CI logs: every refresh reloads the
// list and prints it, preceded by a timestamp line and any failure message. It
// blocks until ctx is cancelled.
func RunNonTTY(ctx context.Context, opts PlainOptions, out io.Writer) error {
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Renderer == nil {
		opts.Renderer = render.NewLLM()
	}

	state := reportlist.Search(reportlist.New(), opts.Search)
	activated := false
	refresh := func() {
		var cmds []reportlist.Command
		if activated {
			state, cmds = reportlist.Tick(state)
		} else {
			state, cmds = reportlist.Activate(state)
			activated = true
		}
		for _, o := range reportlist.DispatchAll(ctx, opts.Backend, cmds) {
			if o.Err != nil {
				opts.Logger.Warn().Stringer("command", o.Command.Kind).Err(o.Err).Msg("refresh failed")
				continue
			}
			if o.Command.Kind == reportlist.CmdFetchReports {
				state = reportlist.Refreshed(state, o.Reports)
			}
		}

		fmt.Fprintf(out, "--- %s\n", opts.Clock.Now().UTC().Format(time.RFC3339))
		if msg, ok := reportlist.ComposeAlert(opts.Backend.Feedback()); ok {
			fmt.Fprintln(out, msg)
		}
		fmt.Fprint(out, opts.Renderer.Render(mapper.FromReports(mapper.View{
			Reports: state.Displayed(),
			Total:   len(state.Reports()),
			Sort:    state.SortIndicator(),
			Search:  state.SearchTerm(),
		})))
	}

	r := reportlist.NewRefresher(opts.Interval, refresh, reportlist.WithClock(opts.Clock))
	r.Start(ctx)
	<-ctx.Done()
	r.Stop()
	return nil
}
