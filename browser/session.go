package browser

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/abiiranathan/recordroom/database"
	"github.com/abiiranathan/recordroom/ui"
)

// LoadFailed is shown above placeholder rows when a fetch fails.
const LoadFailed = "Failed to load data. Please try again."

// DefaultDebounce is the pause in typing after which a search runs.
const DefaultDebounce = 300 * time.Millisecond

// Fetcher loads pages of records. *Client is the network implementation.
type Fetcher interface {
	Taluk(ctx context.Context, s ui.FilterState) (database.TalukPage, error)
	Village(ctx context.Context, s ui.FilterState) (database.VillagePage, error)
}

// View is a snapshot of one data section.
type View struct {
	ui.Page

	// Loading is true while a fetch for the latest state is in flight.
	Loading bool

	// Err is the cause of the last failed fetch. Page then holds placeholders.
	Err error
}

type panel struct {
	state    ui.FilterState
	seq      uint64
	view     View
	debounce *Debouncer

	// Last payload applied. It is redrawn against newer states while their
	// fetch runs, so dropdowns never show selections the state has cleared.
	taluk   *database.TalukPage
	village *database.VillagePage
	errMsg  string
}

func (p *panel) page(state ui.FilterState) ui.Page {
	switch {
	case p.village != nil:
		return ui.VillagePage(state, *p.village, p.errMsg)
	case p.taluk != nil:
		return ui.TalukPage(state, *p.taluk, p.errMsg)
	}
	return ui.Page{Table: ui.LoadingTable(state)}
}

// result is the outcome of one fetch. Exactly one of taluk and village is set.
type result struct {
	taluk   *database.TalukPage
	village *database.VillagePage
	err     error
}

// Session holds the filter state of each data section and keeps its table
// in sync with the server. Only the response to the latest request of a
// section is ever applied. Methods are safe for concurrent use.
type Session struct {
	ctx     context.Context
	fetch   Fetcher
	delay   time.Duration
	timeout time.Duration
	notify  func()
	logger  *slog.Logger

	mu       sync.Mutex
	sections ui.Sections
	panels   map[ui.Target]*panel

	wg sync.WaitGroup
}

type Option func(*Session)

// WithDebounce sets the search debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) { s.delay = d }
}

// WithTimeout bounds each fetch.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// WithNotify registers fn to be called after every state change. fn is
// called without the session lock held.
func WithNotify(fn func()) Option {
	return func(s *Session) { s.notify = fn }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession returns a session showing the home section. Fetches stop when
// ctx is cancelled.
func NewSession(ctx context.Context, fetch Fetcher, opts ...Option) *Session {
	s := &Session{
		ctx:     ctx,
		fetch:   fetch,
		delay:   DefaultDebounce,
		timeout: 30 * time.Second,
		notify:  func() {},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.panels = make(map[ui.Target]*panel, 2)
	for _, t := range []ui.Target{ui.TargetTaluk, ui.TargetVillage} {
		state := ui.NewFilterState(t)
		s.panels[t] = &panel{
			state:    state,
			view:     View{Page: ui.Page{Table: ui.LoadingTable(state)}, Loading: true},
			debounce: NewDebouncer(s.delay),
		}
	}
	return s
}

// Current is the visible section.
func (s *Session) Current() ui.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sections.Current()
}

// Show switches to sec. A data section is fetched the first time it is shown.
func (s *Session) Show(sec ui.Section) {
	s.mu.Lock()
	next, needLoad := s.sections.Show(sec)
	if needLoad {
		next = next.MarkLoaded(sec)
	}
	s.sections = next
	s.mu.Unlock()

	if t, ok := sec.Target(); ok && needLoad {
		s.load(t)
		return
	}
	s.notify()
}

// Dispatch applies e to the filter state of t and refreshes the table.
// Searches are debounced; any other event runs at once and supersedes a
// pending search, which is still part of the state it queries.
func (s *Session) Dispatch(t ui.Target, e ui.Event) {
	s.mu.Lock()
	p := s.panels[t]
	p.state = ui.Apply(p.state, e)
	p.view.Page = p.page(p.state)
	s.mu.Unlock()

	if _, ok := e.(ui.SearchChanged); ok {
		p.debounce.Trigger(func() { s.load(t) })
		s.notify()
		return
	}
	p.debounce.Cancel()
	s.load(t)
}

// Retry repeats the fetch for the current state of t.
func (s *Session) Retry(t ui.Target) {
	s.panels[t].debounce.Cancel()
	s.load(t)
}

// State returns the filter state of t.
func (s *Session) State(t ui.Target) ui.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panels[t].state
}

// Snapshot returns the latest view of t.
func (s *Session) Snapshot(t ui.Target) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panels[t].view
}

// Wait blocks until all started fetches have completed.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close drops pending searches and waits for fetches in flight.
func (s *Session) Close() {
	for _, p := range s.panels {
		p.debounce.Cancel()
	}
	s.wg.Wait()
}

func (s *Session) load(t ui.Target) {
	s.mu.Lock()
	p := s.panels[t]
	p.seq++
	seq, state := p.seq, p.state
	p.view = View{Page: p.page(state), Loading: true, Err: p.view.Err}
	s.wg.Add(1)
	s.mu.Unlock()
	s.notify()

	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
		defer cancel()

		res := s.fetchPage(ctx, state)

		s.mu.Lock()
		if seq != p.seq {
			s.mu.Unlock()
			return
		}
		p.taluk, p.village, p.errMsg = res.taluk, res.village, ""
		if res.err != nil {
			p.errMsg = LoadFailed
		}
		p.view = View{Page: p.page(state), Err: res.err}
		s.mu.Unlock()
		s.notify()
	}()
}

func (s *Session) fetchPage(ctx context.Context, state ui.FilterState) result {
	if state.Target == ui.TargetVillage {
		data, err := s.fetch.Village(ctx, state)
		if err != nil {
			s.logger.Error("village data fetch failed", "error", err)
			data = ui.PlaceholderVillage()
		}
		return result{village: &data, err: err}
	}

	data, err := s.fetch.Taluk(ctx, state)
	if err != nil {
		s.logger.Error("taluk data fetch failed", "error", err)
		data = ui.PlaceholderTaluk()
	}
	return result{taluk: &data, err: err}
}
