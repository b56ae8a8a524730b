package detail

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jimezsa/jobsearch/internal/hh"
	"github.com/jimezsa/jobsearch/internal/loop"
	"github.com/jimezsa/jobsearch/internal/models"
	"github.com/rs/zerolog"
)

type fakeSource struct {
	detail hh.VacancyDetail
	err    error
	calls  int
}

func (f *fakeSource) GetJob(ctx context.Context, id string) (hh.VacancyDetail, error) {
	f.calls++
	if f.err != nil {
		return hh.VacancyDetail{}, f.err
	}
	d := f.detail
	d.ID = id
	return d, nil
}

func newTestFetcher(t *testing.T, source Source) *Fetcher {
	t.Helper()
	f, err := NewFetcher(source, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewFetcher() error = %v", err)
	}
	return f
}

func TestFetchMapsDetail(t *testing.T) {
	from := 1000
	source := &fakeSource{detail: hh.VacancyDetail{
		Name:        "Go Developer",
		Salary:      &hh.Salary{From: &from},
		Description: "<p>Hello</p> <b>World</b>",
		Address:     &hh.Address{City: "Moscow", Street: "", Building: "5"},
	}}
	f := newTestFetcher(t, source)

	got, err := f.Fetch(context.Background(), "42")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got.ID != "42" || got.Name != "Go Developer" {
		t.Fatalf("unexpected detail: %+v", got)
	}
	if got.Salary != "от 1000" {
		t.Fatalf("Salary = %q, want %q", got.Salary, "от 1000")
	}
	if got.Description != "Hello World" {
		t.Fatalf("Description = %q, want %q", got.Description, "Hello World")
	}
	if got.Address != nil {
		t.Fatalf("Address = %+v, want nil for incomplete address", got.Address)
	}
}

func TestFetchReturnsError(t *testing.T) {
	source := &fakeSource{err: fmt.Errorf("hh: get vacancy 42: %w", hh.ErrNetwork)}
	f := newTestFetcher(t, source)

	_, err := f.Fetch(context.Background(), "42")
	if !errors.Is(err, hh.ErrNetwork) {
		t.Fatalf("Fetch() error = %v, want ErrNetwork", err)
	}
	if source.calls != 1 {
		t.Fatalf("calls = %d, want 1 (no retry)", source.calls)
	}
}

func TestLoadDeliversOnLoop(t *testing.T) {
	l := loop.New()
	defer l.Close()

	f := newTestFetcher(t, &fakeSource{detail: hh.VacancyDetail{Name: "SRE"}})

	loaded := make(chan models.DetailedJob, 1)
	f.Load(context.Background(), l, "7", func(d models.DetailedJob) {
		loaded <- d
	}, func(id string, err error) {
		t.Errorf("onFailed(%q, %v) called", id, err)
	})

	got := <-loaded
	if got.ID != "7" || got.Name != "SRE" {
		t.Fatalf("unexpected detail: %+v", got)
	}
}

func TestLoadDeliversFailure(t *testing.T) {
	l := loop.New()
	defer l.Close()

	f := newTestFetcher(t, &fakeSource{err: hh.ErrDecode})

	failed := make(chan error, 1)
	f.Load(context.Background(), l, "7", func(d models.DetailedJob) {
		t.Errorf("onLoaded(%+v) called", d)
	}, func(id string, err error) {
		failed <- err
	})

	if err := <-failed; !errors.Is(err, hh.ErrDecode) {
		t.Fatalf("failure = %v, want ErrDecode", err)
	}
}
