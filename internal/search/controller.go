// Package search owns the query and pagination state of one search session.
package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jimezsa/jobsearch/internal/hh"
	"github.com/jimezsa/jobsearch/internal/loop"
	"github.com/jimezsa/jobsearch/internal/mapper"
	"github.com/jimezsa/jobsearch/internal/models"
	"github.com/rs/zerolog"
)

const (
	PageSize       = 20
	MinQueryLength = 3
)

// Source is the part of the hh client the controller depends on.
type Source interface {
	SearchJobs(ctx context.Context, params models.SearchParams) (hh.SearchPage, error)
}

// Listener receives consumer-facing signals. Calls arrive on the serial loop.
type Listener interface {
	ResultsChanged(jobs []models.Job)
	FetchFailed(query string, page int, err error)
}

// ListenerFuncs adapts plain funcs to Listener. Nil funcs are skipped.
type ListenerFuncs struct {
	OnResults func(jobs []models.Job)
	OnFailure func(query string, page int, err error)
}

func (l ListenerFuncs) ResultsChanged(jobs []models.Job) {
	if l.OnResults != nil {
		l.OnResults(jobs)
	}
}

func (l ListenerFuncs) FetchFailed(query string, page int, err error) {
	if l.OnFailure != nil {
		l.OnFailure(query, page, err)
	}
}

// PageState is a point-in-time copy of the session.
type PageState struct {
	Query    string
	Page     int
	Jobs     []models.Job
	InFlight bool
	Active   bool
	Found    int
	Pages    int
	Err      error
	// Loaded is set once a page of the current query has landed.
	Loaded bool
}

// Exhausted reports whether the API said there is no page after Page. The
// API reports pages=0 for an empty result set. Before the first page lands
// nothing is known.
func (s PageState) Exhausted() bool {
	if !s.Loaded {
		return false
	}
	return s.Pages == 0 || s.Page >= s.Pages-1
}

// Option configures a Controller.
type Option func(*Controller)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithLoop delivers signals on l instead of a loop owned by the controller.
func WithLoop(l *loop.Loop) Option {
	return func(c *Controller) {
		c.loop = l
	}
}

func WithListener(listener Listener) Option {
	return func(c *Controller) {
		c.listener = listener
	}
}

// Controller mutates PageState only while holding mu. At most one fetch of
// the current generation runs at a time; completions of older generations
// are dropped.
type Controller struct {
	source   Source
	logger   zerolog.Logger
	listener Listener
	loop     *loop.Loop
	ownsLoop bool

	mu     sync.Mutex
	state  PageState
	gen    uint64
	cancel context.CancelFunc
	closed bool

	baseCtx    context.Context
	baseCancel context.CancelFunc
	wg         sync.WaitGroup
}

type ticket struct {
	gen      uint64
	id       string
	query    string
	page     int
	prevPage int
	reset    bool
}

func NewController(source Source, opts ...Option) (*Controller, error) {
	if source == nil {
		return nil, fmt.Errorf("search: source is required")
	}

	c := &Controller{
		source:   source,
		logger:   zerolog.Nop(),
		listener: ListenerFuncs{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.listener == nil {
		c.listener = ListenerFuncs{}
	}
	if c.loop == nil {
		c.loop = loop.New()
		c.ownsLoop = true
	}
	c.logger = c.logger.With().Str("component", "search").Logger()
	c.baseCtx, c.baseCancel = context.WithCancel(context.Background())
	return c, nil
}

// OnQueryCommitted applies a debounced query. Queries shorter than
// MinQueryLength characters clear the session. A new query starts page 1;
// re-committing the current query does nothing.
func (c *Controller) OnQueryCommitted(raw string) {
	query := strings.TrimSpace(raw)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	if utf8.RuneCountInString(query) < MinQueryLength {
		c.logger.Debug().Str("query", query).Msg("query inactive")
		c.resetLocked()
		return
	}
	if c.state.Active && c.state.Query == query {
		return
	}

	c.cancelLocked()
	c.state = PageState{Query: query, Page: 1, Active: true}
	c.publishLocked()
	c.startLocked(0, true)
}

// RequestMore loads the next page, or retries page 1 if it never landed. It
// reports false, changing nothing, when a fetch is in flight, no query is
// active or the last page is loaded.
func (c *Controller) RequestMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || !c.state.Active || c.state.InFlight || c.state.Exhausted() {
		return false
	}

	if !c.state.Loaded {
		c.startLocked(c.state.Page, true)
		return true
	}
	prev := c.state.Page
	c.state.Page++
	c.startLocked(prev, false)
	return true
}

// Clear drops all results and forgets the committed query.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.resetLocked()
}

func (c *Controller) Snapshot() PageState {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.state
	snap.Jobs = cloneJobs(c.state.Jobs)
	return snap
}

// Wait blocks until no fetch is running and every signal raised so far has
// been delivered. It must not be called from a Listener.
func (c *Controller) Wait() {
	c.wg.Wait()
	c.loop.Flush()
}

// Close abandons any in-flight fetch and stops signal delivery.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.gen++
	c.cancelLocked()
	c.state.InFlight = false
	c.mu.Unlock()

	c.baseCancel()
	c.wg.Wait()
	if c.ownsLoop {
		c.loop.Close()
	}
}

func (c *Controller) resetLocked() {
	c.cancelLocked()
	c.gen++
	c.state = PageState{}
	c.publishLocked()
}

func (c *Controller) cancelLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) startLocked(prevPage int, reset bool) {
	c.gen++
	ctx, cancel := context.WithCancel(c.baseCtx)
	c.cancel = cancel

	t := ticket{
		gen:      c.gen,
		id:       uuid.NewString(),
		query:    c.state.Query,
		page:     c.state.Page,
		prevPage: prevPage,
		reset:    reset,
	}
	c.state.InFlight = true
	c.state.Err = nil

	c.wg.Add(1)
	go c.fetch(ctx, t)
}

func (c *Controller) fetch(ctx context.Context, t ticket) {
	defer c.wg.Done()

	log := c.logger.With().
		Str("request_id", t.id).
		Str("query", t.query).
		Int("page", t.page).
		Logger()
	log.Debug().Msg("fetch started")

	var (
		page hh.SearchPage
		jobs []models.Job
		err  error
	)
	defer func() {
		c.complete(t, page, jobs, err, log)
	}()

	page, err = c.source.SearchJobs(ctx, models.SearchParams{
		Query:   t.query,
		Page:    t.page,
		PerPage: PageSize,
	})
	if err == nil {
		jobs = mapper.MapListItems(page.Items)
	}
}

func (c *Controller) complete(t ticket, page hh.SearchPage, jobs []models.Job, err error, log zerolog.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.gen != c.gen {
		log.Debug().Err(err).Msg("discarding stale response")
		return
	}
	c.cancelLocked()
	c.state.InFlight = false

	if err != nil {
		// A failed first page keeps Page at 1 so RequestMore retries it.
		if !t.reset {
			c.state.Page = t.prevPage
		}
		c.state.Err = err
		log.Error().Err(err).Msg("fetch failed")

		listener := c.listener
		query, pageNo := t.query, t.page
		c.loop.Post(func() {
			listener.FetchFailed(query, pageNo, err)
		})
		return
	}

	if t.reset {
		c.state.Jobs = jobs
	} else {
		c.state.Jobs = append(c.state.Jobs, jobs...)
	}
	c.state.Found = page.Found
	c.state.Pages = page.Pages
	c.state.Loaded = true
	log.Debug().Int("items", len(jobs)).Int("total", len(c.state.Jobs)).Msg("fetch completed")
	c.publishLocked()
}

// publishLocked queues ResultsChanged while mu is held so signals keep the
// order of the mutations that caused them.
func (c *Controller) publishLocked() {
	jobs := cloneJobs(c.state.Jobs)
	listener := c.listener
	c.loop.Post(func() {
		listener.ResultsChanged(jobs)
	})
}

func cloneJobs(jobs []models.Job) []models.Job {
	out := make([]models.Job, len(jobs))
	copy(out, jobs)
	return out
}
