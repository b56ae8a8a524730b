package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jimezsa/jobsearch/internal/debounce"
	"github.com/jimezsa/jobsearch/internal/detail"
	"github.com/jimezsa/jobsearch/internal/export"
	"github.com/jimezsa/jobsearch/internal/loop"
	"github.com/jimezsa/jobsearch/internal/models"
	"github.com/jimezsa/jobsearch/internal/search"
)

type InteractiveCmd struct {
	Debounce time.Duration `help:"Quiet period before a typed query is searched (default from config)."`
	Proxies  string        `help:"Comma-separated proxy URLs." env:"JOBSEARCH_PROXIES"`
}

// Each input line replaces the whole search field. Lines starting with ':'
// are commands.
func (c *InteractiveCmd) Run(ctx *Context) error {
	source, err := ctx.newSource(c.Proxies)
	if err != nil {
		return err
	}
	return c.run(ctx, source, source)
}

func (c *InteractiveCmd) run(ctx *Context, searcher search.Source, details detail.Source) error {
	fetcher, err := detail.NewFetcher(details, ctx.Logger)
	if err != nil {
		return err
	}

	events := loop.New()
	defer events.Close()

	view := &resultsView{ctx: ctx}
	controller, err := search.NewController(searcher,
		search.WithLogger(ctx.Logger),
		search.WithLoop(events),
		search.WithListener(view),
	)
	if err != nil {
		return err
	}
	defer controller.Close()
	view.controller = controller

	window := c.Debounce
	if window <= 0 {
		window = ctx.Config.Debounce()
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	typed := make(chan string)
	committed := debounce.Debounce(runCtx, typed, window)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for query := range committed {
			controller.OnQueryCommitted(query)
		}
	}()

	ctx.UI.Statusf("type to search; :more, :clear, :show <id|#n>, :quit")

	quit := false
	scanner := bufio.NewScanner(ctx.In)
	for !quit && scanner.Scan() {
		line := scanner.Text()
		name, arg, isCommand := parseCommand(line)
		if !isCommand {
			typed <- line
			continue
		}
		switch name {
		case "quit", "q":
			quit = true
		case "more":
			if !controller.RequestMore() {
				ctx.UI.Statusf("nothing more to load")
			}
		case "clear":
			controller.Clear()
		case "show":
			id, err := resolveShowTarget(arg, controller.Snapshot().Jobs)
			if err != nil {
				ctx.UI.Warnf("%v", err)
				continue
			}
			fetcher.Load(runCtx, events, id, view.showDetail, view.detailFailed)
		default:
			ctx.UI.Warnf("unknown command :%s", name)
		}
	}

	// On EOF the last typed text still gets searched and rendered. :quit
	// drops it.
	if quit {
		cancel()
	}
	close(typed)
	<-drained
	if !quit {
		controller.Wait()
	}
	return scanner.Err()
}

// resultsView renders controller and detail signals. Its methods run on the
// serial loop only.
type resultsView struct {
	ctx        *Context
	controller *search.Controller
}

func (v *resultsView) ResultsChanged(jobs []models.Job) {
	if len(jobs) == 0 {
		// A new query first publishes an empty list; only report emptiness
		// once the API has answered.
		if snap := v.controller.Snapshot(); snap.Loaded && len(snap.Jobs) == 0 {
			v.ctx.UI.Statusf("no results")
		}
		return
	}
	if err := export.WriteJobs(v.ctx.Out, jobs, export.FormatTable, export.WriteOptions{
		ColorEnabled: v.ctx.UI.ColorEnabled,
	}); err != nil {
		v.ctx.UI.Errorf("render results: %v", err)
	}
}

func (v *resultsView) FetchFailed(query string, page int, err error) {
	v.ctx.UI.Errorf("search %q page %d failed: %v", query, page, err)
}

func (v *resultsView) showDetail(job models.DetailedJob) {
	if err := export.WriteDetail(v.ctx.Out, job, export.FormatText, export.WriteOptions{
		ColorEnabled: v.ctx.UI.ColorEnabled,
	}); err != nil {
		v.ctx.UI.Errorf("render vacancy: %v", err)
	}
}

func (v *resultsView) detailFailed(id string, err error) {
	v.ctx.UI.Errorf("vacancy %s failed: %v", id, err)
}

// parseCommand splits ":name arg" lines. Anything else is search text.
func parseCommand(line string) (name string, arg string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ":") {
		return "", "", false
	}
	fields := strings.Fields(strings.TrimPrefix(trimmed, ":"))
	if len(fields) == 0 {
		return "", "", false
	}
	name = strings.ToLower(fields[0])
	if len(fields) > 1 {
		arg = strings.Join(fields[1:], " ")
	}
	return name, arg, true
}

// resolveShowTarget accepts a vacancy id or "#n", the 1-based row shown in
// the results table.
func resolveShowTarget(arg string, jobs []models.Job) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("usage: :show <id|#n>")
	}
	if !strings.HasPrefix(arg, "#") {
		return arg, nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil || n < 1 || n > len(jobs) {
		return "", fmt.Errorf("no result %s (have %d)", arg, len(jobs))
	}
	return jobs[n-1].ID, nil
}
