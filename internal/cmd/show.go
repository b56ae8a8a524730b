package cmd

import (
	"context"

	"github.com/jimezsa/jobsearch/internal/detail"
	"github.com/jimezsa/jobsearch/internal/export"
)

type ShowCmd struct {
	ID      string `arg:"" help:"Vacancy id."`
	Format  string `help:"Output format: text, json, md." enum:",text,json,md" default:""`
	Proxies string `help:"Comma-separated proxy URLs." env:"JOBSEARCH_PROXIES"`
}

func (s *ShowCmd) Run(ctx *Context) error {
	source, err := ctx.newSource(s.Proxies)
	if err != nil {
		return err
	}
	fetcher, err := detail.NewFetcher(source, ctx.Logger)
	if err != nil {
		return err
	}

	job, err := fetcher.Fetch(context.Background(), s.ID)
	if err != nil {
		return err
	}

	format, err := resolveDetailFormat(ctx, s.Format)
	if err != nil {
		return err
	}
	return export.WriteDetail(ctx.Out, job, format, export.WriteOptions{
		ColorEnabled: ctx.UI != nil && ctx.UI.ColorEnabled,
	})
}

func resolveDetailFormat(ctx *Context, format string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if format == "" {
		return export.FormatText, nil
	}
	return parseFormat(format)
}
