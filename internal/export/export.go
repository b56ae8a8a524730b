package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/jobsearch/internal/models"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
	FormatText     Format = "text"
)

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

const linkColor = "#87CEEB"

func WriteJobs(w io.Writer, jobs []models.Job, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, jobs)
	case FormatCSV:
		return writeCSV(w, jobs, ',')
	case FormatTSV:
		return writeCSV(w, jobs, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, jobs)
	default:
		return writeTable(w, jobs, opts)
	}
}

// WriteDetail renders one vacancy as text (default), json or md.
func WriteDetail(w io.Writer, job models.DetailedJob, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, job)
	case FormatMarkdown:
		return writeDetailMarkdown(w, job)
	default:
		return writeDetailText(w, job, opts)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(w io.Writer, jobs []models.Job, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	for _, job := range jobs {
		if err := writer.Write(csvRow(job)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, jobs []models.Job, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader(), "\t"))
	output := termenv.NewOutput(w)
	for i, job := range jobs {
		fmt.Fprintln(tw, strings.Join(tableRow(i+1, job, output, opts), "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, jobs []models.Job) error {
	if len(jobs) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for _, job := range jobs {
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", safe(job.Title), safe(job.Company)),
			fmt.Sprintf("  ID: %s", safe(job.ID)),
		}
		if job.Salary != "" {
			lines = append(lines, fmt.Sprintf("  Salary: %s", safe(job.Salary)))
		}
		if job.LogoURL != "" {
			lines = append(lines, fmt.Sprintf("  Logo: ![logo](<%s>)", safe(job.LogoURL)))
		}
		if job.Requirement != "" {
			lines = append(lines, fmt.Sprintf("  Requirement: %s", safe(job.Requirement)))
		}
		if job.Responsibility != "" {
			lines = append(lines, fmt.Sprintf("  Responsibility: %s", safe(job.Responsibility)))
		}
		if err := writeLines(w, lines); err != nil {
			return err
		}
	}
	return nil
}

func writeDetailText(w io.Writer, job models.DetailedJob, opts WriteOptions) error {
	title := safe(job.Name)
	if opts.ColorEnabled {
		output := termenv.NewOutput(w)
		title = output.String(title).Bold().String()
	}
	lines := []string{title}
	if job.Salary != "" {
		lines = append(lines, "Salary: "+safe(job.Salary))
	}
	if job.Address != nil {
		lines = append(lines, "Address: "+job.Address.String())
	}
	if desc := safe(job.Description); desc != "" {
		lines = append(lines, "", desc)
	}
	return writeLines(w, lines)
}

func writeDetailMarkdown(w io.Writer, job models.DetailedJob) error {
	lines := []string{fmt.Sprintf("# %s", safe(job.Name)), ""}
	if job.Salary != "" {
		lines = append(lines, fmt.Sprintf("**Salary:** %s", safe(job.Salary)))
	}
	if job.Address != nil {
		lines = append(lines, fmt.Sprintf("**Address:** %s", job.Address.String()))
	}
	if desc := safe(job.Description); desc != "" {
		lines = append(lines, "", desc)
	}
	return writeLines(w, lines)
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func csvHeader() []string {
	return []string{
		"id",
		"title",
		"company",
		"salary",
		"logo_url",
		"requirement",
		"responsibility",
	}
}

func csvRow(job models.Job) []string {
	return []string{
		job.ID,
		job.Title,
		job.Company,
		job.Salary,
		job.LogoURL,
		job.Requirement,
		job.Responsibility,
	}
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func tableHeader() []string {
	return []string{
		"#",
		"id",
		"title",
		"company",
		"salary",
		"logo",
	}
}

func tableRow(n int, job models.Job, output *termenv.Output, opts WriteOptions) []string {
	logo := safe(job.LogoURL)
	displayLogo := "-"
	if logo != "" {
		displayLogo = logo
		if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
			displayLogo = shortURLLabel(logo)
		}
		if opts.ColorEnabled {
			displayLogo = output.String(displayLogo).Foreground(output.Color(linkColor)).String()
		}
		if opts.Hyperlinks {
			displayLogo = hyperlink(logo, displayLogo)
		}
	}
	salary := safe(job.Salary)
	if salary == "" {
		salary = "-"
	}
	return []string{
		fmt.Sprintf("%d", n),
		safe(job.ID),
		safe(job.Title),
		safe(job.Company),
		salary,
		displayLogo,
	}
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	if label == "" {
		label = raw
	}
	if runes := []rune(label); len(runes) > maxLen {
		label = string(runes[:maxLen-3]) + "..."
	}
	return label
}
