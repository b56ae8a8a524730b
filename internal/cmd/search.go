package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jimezsa/jobsearch/internal/export"
	"github.com/jimezsa/jobsearch/internal/search"
	"github.com/muesli/termenv"
)

type SearchCmd struct {
	Query   string `arg:"" help:"Search text."`
	Pages   int    `help:"Number of pages to load."`
	Format  string `help:"Output format: table, csv, tsv, json, md." enum:",table,csv,tsv,json,md" default:""`
	Links   string `help:"Table link display: short or full." enum:"short,full" default:"short"`
	Output  string `name:"output" short:"o" help:"Write output to a file."`
	Proxies string `help:"Comma-separated proxy URLs." env:"JOBSEARCH_PROXIES"`
}

func (s *SearchCmd) Run(ctx *Context) error {
	query := strings.TrimSpace(s.Query)
	if utf8.RuneCountInString(query) < search.MinQueryLength {
		return fmt.Errorf("query must be at least %d characters", search.MinQueryLength)
	}
	pages := defaultInt(s.Pages, ctx.Config.DefaultPages)

	source, err := ctx.newSource(s.Proxies)
	if err != nil {
		return err
	}
	controller, err := search.NewController(source, search.WithLogger(ctx.Logger))
	if err != nil {
		return err
	}
	defer controller.Close()

	stopIndicator := startSearchIndicator(ctx)
	state := collectPages(controller, query, pages)
	if stopIndicator != nil {
		stopIndicator()
	}

	if state.Err != nil {
		if len(state.Jobs) == 0 {
			return state.Err
		}
		ctx.UI.Warnf("stopped after page %d: %v", state.Page, state.Err)
	}

	format, err := resolveFormat(ctx, s.Format, s.Output)
	if err != nil {
		return err
	}

	writer := ctx.Out
	if s.Output != "" {
		file, err := os.Create(s.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		writer = file
	}

	colorEnabled := ctx.UI != nil && ctx.UI.ColorEnabled
	if err := export.WriteJobs(writer, state.Jobs, format, export.WriteOptions{
		ColorEnabled: colorEnabled,
		Hyperlinks:   colorEnabled && isTTY(writer),
		LinkStyle:    parseLinkStyle(s.Links),
	}); err != nil {
		return err
	}

	printSearchSummary(ctx, state)
	return nil
}

// collectPages commits query and keeps requesting pages until want pages are
// loaded, the results run out or a fetch fails.
func collectPages(c *search.Controller, query string, want int) search.PageState {
	c.OnQueryCommitted(query)
	c.Wait()
	state := c.Snapshot()

	for state.Err == nil && state.Page < want && c.RequestMore() {
		c.Wait()
		state = c.Snapshot()
	}
	return state
}

func printSearchSummary(ctx *Context, state search.PageState) {
	if ctx == nil || ctx.Err == nil {
		return
	}
	_, _ = fmt.Fprintf(ctx.Err, "%s\n", formatSearchSummary(state))
}

func formatSearchSummary(state search.PageState) string {
	return fmt.Sprintf("summary: jobs=%d found=%d pages=%d/%d", len(state.Jobs), state.Found, state.Page, state.Pages)
}

func resolveFormat(ctx *Context, format string, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if format != "" {
		return parseFormat(format)
	}
	if outputPath == "" && isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func parseFormat(value string) (export.Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return export.FormatCSV, nil
	case "json":
		return export.FormatJSON, nil
	case "md", "markdown":
		return export.FormatMarkdown, nil
	case "tsv":
		return export.FormatTSV, nil
	case "text", "txt":
		return export.FormatText, nil
	case "table", "":
		return export.FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

func parseLinkStyle(value string) export.LinkStyle {
	if strings.EqualFold(value, string(export.LinkStyleFull)) {
		return export.LinkStyleFull
	}
	return export.LinkStyleShort
}

func defaultInt(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}

func startSearchIndicator(ctx *Context) func() {
	if ctx == nil || ctx.Err == nil || ctx.UI == nil {
		return nil
	}
	if !isTTY(ctx.Err) {
		return nil
	}

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		start := time.Now()
		frames := []string{"|", "/", "-", "\\"}
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		index := 0

		for {
			select {
			case <-done:
				fmt.Fprint(ctx.Err, "\r\033[2K")
				return
			case <-ticker.C:
				seconds := int(time.Since(start).Seconds())
				frame := frames[index%len(frames)]
				fmt.Fprintf(ctx.Err, "\r\033[2KSearching... %ds %s", seconds, frame)
				index++
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
	}
}
