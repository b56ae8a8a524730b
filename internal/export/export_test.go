package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jimezsa/jobsearch/internal/models"
)

func sampleJobs() []models.Job {
	return []models.Job{
		{ID: "1", Title: "Go Developer", Company: "Acme", Salary: "100 – 200 USD", LogoURL: "https://img.hh.ru/logo.png", Requirement: "Go"},
		{ID: "2", Title: "SRE", Company: "Beta"},
	}
}

func TestWriteJobsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, sampleJobs(), FormatCSV, WriteOptions{}); err != nil {
		t.Fatalf("WriteJobs() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0] != "id,title,company,salary,logo_url,requirement,responsibility" {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[2] != "2,SRE,Beta,,,," {
		t.Fatalf("row = %q", lines[2])
	}
}

func TestWriteJobsTSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, sampleJobs()[:1], FormatTSV, WriteOptions{}); err != nil {
		t.Fatalf("WriteJobs() error = %v", err)
	}
	if !strings.Contains(buf.String(), "1\tGo Developer\tAcme") {
		t.Fatalf("unexpected tsv: %q", buf.String())
	}
}

func TestWriteJobsJSONOmitsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, sampleJobs(), FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WriteJobs() error = %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("len = %d, want 2", len(decoded))
	}
	if _, ok := decoded[1]["salary"]; ok {
		t.Fatalf("expected salary to be omitted: %v", decoded[1])
	}
}

func TestWriteJobsTableNumbersRows(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, sampleJobs(), FormatTable, WriteOptions{}); err != nil {
		t.Fatalf("WriteJobs() error = %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "1 ") || !strings.HasPrefix(lines[2], "2 ") {
		t.Fatalf("expected numbered rows, got:\n%s", out)
	}
	if strings.Contains(out, "\x1b") {
		t.Fatalf("expected no escape codes without color, got %q", out)
	}
}

func TestWriteJobsMarkdownEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJobs(&buf, nil, FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("WriteJobs() error = %v", err)
	}
	if got := buf.String(); got != "No results.\n" {
		t.Fatalf("WriteJobs(md) = %q, want %q", got, "No results.\n")
	}
}

func TestWriteDetailText(t *testing.T) {
	job := models.DetailedJob{
		ID:          "42",
		Name:        "Backend Engineer",
		Salary:      "от 1000 RUR",
		Description: "Hello World",
		Address:     &models.Address{City: "Moscow", Street: "Tverskaya", Building: "5"},
	}
	var buf bytes.Buffer
	if err := WriteDetail(&buf, job, FormatText, WriteOptions{}); err != nil {
		t.Fatalf("WriteDetail() error = %v", err)
	}
	want := "Backend Engineer\nSalary: от 1000 RUR\nAddress: Moscow, Tverskaya, 5\n\nHello World\n"
	if got := buf.String(); got != want {
		t.Fatalf("WriteDetail(text) = %q, want %q", got, want)
	}
}

func TestWriteDetailMarkdownWithoutOptionalFields(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDetail(&buf, models.DetailedJob{Name: "SRE"}, FormatMarkdown, WriteOptions{}); err != nil {
		t.Fatalf("WriteDetail() error = %v", err)
	}
	if got := buf.String(); got != "# SRE\n\n" {
		t.Fatalf("WriteDetail(md) = %q", got)
	}
}

func TestWriteDetailJSONHidesHTML(t *testing.T) {
	var buf bytes.Buffer
	job := models.DetailedJob{ID: "1", Name: "SRE", DescriptionHTML: "<p>x</p>"}
	if err := WriteDetail(&buf, job, FormatJSON, WriteOptions{}); err != nil {
		t.Fatalf("WriteDetail() error = %v", err)
	}
	if strings.Contains(buf.String(), "<p>") {
		t.Fatalf("expected raw html to be excluded: %s", buf.String())
	}
}

func TestShortURLLabel(t *testing.T) {
	if got := shortURLLabel("https://www.img.hh.ru/a/b.png"); got != "img.hh.ru/a/b.png" {
		t.Fatalf("shortURLLabel() = %q", got)
	}
	long := "https://img.hh.ru/" + strings.Repeat("x", 80)
	if got := shortURLLabel(long); len([]rune(got)) != 60 || !strings.HasSuffix(got, "...") {
		t.Fatalf("shortURLLabel(long) = %q", got)
	}
}
