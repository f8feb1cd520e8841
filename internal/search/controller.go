package search

import (
	"context"
	"strings"
	"sync"

	"github.com/sprintingbug/agricheck/internal/config"
	"github.com/sprintingbug/agricheck/internal/geocode"
	"github.com/sprintingbug/agricheck/internal/model"
	"github.com/sprintingbug/agricheck/internal/weather"
	"go.uber.org/zap"
)

// PrimaryStatus is the phase of the dependent weather fetch
type PrimaryStatus int

const (
	PrimaryLoading PrimaryStatus = iota
	PrimaryReady
	PrimaryFailed
)

// PrimaryResult is the user-visible outcome of the latest weather fetch
type PrimaryResult struct {
	Status PrimaryStatus
	Report *model.WeatherReport
	Err    string
}

// State is the full observable state of one search session. Controller hands
// out copies only; nothing outside the controller ever mutates it.
type State struct {
	QueryText          string
	Suggestions        []model.PlaceRecord
	SuggestionsVisible bool
	PrimaryKey         string
	Primary            PrimaryResult
}

// Controller orchestrates incremental place search for one session: text
// changes are debounced into suggestion fetches, stale responses are dropped
// by epoch, and a selection drives the dependent weather fetch. All state
// mutation happens under one mutex; fetch completions arrive on goroutines.
type Controller struct {
	mu    sync.Mutex
	state State

	debouncer *Debouncer
	seq       *Sequencer
	suggester geocode.Suggester
	fetcher   weather.Fetcher
	logger    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	// onChange, when set, receives a state snapshot after every mutation.
	onChange func(State)
}

// NewController creates a controller for one search session. The fallback
// city from cfg becomes the initial primary key; call Start to fetch it.
func NewController(suggester geocode.Suggester, fetcher weather.Fetcher, cfg config.SearchConfig, logger *zap.Logger) *Controller {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Controller{
		seq:       NewSequencer(),
		suggester: suggester,
		fetcher:   fetcher,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
	c.state.PrimaryKey = cfg.FallbackCity
	c.state.Primary = PrimaryResult{Status: PrimaryLoading}
	c.debouncer = NewDebouncer(cfg.DebounceInterval, c.onDebounceFired, c.clearSuggestions)
	return c
}

// SetOnChange registers an observer for state snapshots. Must be called
// before the first operation.
func (c *Controller) SetOnChange(fn func(State)) {
	c.onChange = fn
}

// Start kicks off the initial primary fetch for the fallback city.
func (c *Controller) Start() {
	c.mu.Lock()
	key := c.state.PrimaryKey
	c.mu.Unlock()
	c.OnPrimaryKeyChanged(key)
}

// Snapshot returns a copy of the current session state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() State {
	out := c.state
	out.Suggestions = append([]model.PlaceRecord(nil), c.state.Suggestions...)
	return out
}

func (c *Controller) notifyLocked() {
	if c.onChange != nil {
		c.onChange(c.snapshotLocked())
	}
}

// OnTextChanged records the latest typed text and forwards it to the
// debouncer. Empty text clears and hides the suggestion list synchronously
// through the debouncer's clear signal; no fetch is issued.
func (c *Controller) OnTextChanged(text string) {
	c.mu.Lock()
	c.state.QueryText = text
	c.notifyLocked()
	c.mu.Unlock()

	c.debouncer.Notify(strings.TrimSpace(text))
}

// clearSuggestions hides and empties the list. The current epoch is retired
// first so a suggestion fetch still in flight cannot repopulate it.
func (c *Controller) clearSuggestions() {
	c.seq.Retire()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Suggestions = nil
	c.state.SuggestionsVisible = false
	c.notifyLocked()
}

// onDebounceFired runs when input has been quiet for the debounce interval.
// It mints an epoch token, fetches suggestions, and applies the result only
// if the token is still current when the fetch completes. Fetch failures are
// swallowed into an empty list: suggestions degrade silently.
func (c *Controller) onDebounceFired(text string) {
	token := c.seq.BeginRequest()

	go func() {
		records, err := c.suggester.FetchSuggestions(c.ctx, text)
		if err != nil {
			c.logger.Debug("suggestion fetch failed",
				zap.String("query", text),
				zap.Error(err),
			)
			records = nil
		}

		c.mu.Lock()
		defer c.mu.Unlock()

		if !c.seq.IsCurrent(token) {
			// A newer request superseded this one; drop the result.
			return
		}

		c.state.Suggestions = records
		c.state.SuggestionsVisible = len(records) > 0
		c.notifyLocked()
	}()
}

// OnSuggestionSelected resolves a suggestion: the query text becomes its
// display label, the list is dismissed, and the weather fetch is re-keyed.
func (c *Controller) OnSuggestionSelected(record model.PlaceRecord) {
	c.debouncer.Cancel()
	c.seq.Retire()

	c.mu.Lock()
	c.state.QueryText = record.DisplayLabel()
	c.state.Suggestions = nil
	c.state.SuggestionsVisible = false
	c.notifyLocked()
	c.mu.Unlock()

	c.OnPrimaryKeyChanged(record.QueryKey())
}

// OnSearchSubmitted treats the raw trimmed text as a resolved place key,
// bypassing suggestion resolution entirely. Empty input is ignored.
func (c *Controller) OnSearchSubmitted(text string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}

	c.debouncer.Cancel()
	c.seq.Retire()

	c.mu.Lock()
	c.state.Suggestions = nil
	c.state.SuggestionsVisible = false
	c.notifyLocked()
	c.mu.Unlock()

	c.OnPrimaryKeyChanged(trimmed)
}

// OnPrimaryKeyChanged starts a weather fetch for key. Overlapping fetches are
// not sequenced: the one completing last wins, matching the shipped behavior
// of the client this engine was extracted from.
func (c *Controller) OnPrimaryKeyChanged(key string) {
	c.mu.Lock()
	c.state.PrimaryKey = key
	c.state.Primary = PrimaryResult{Status: PrimaryLoading}
	c.notifyLocked()
	c.mu.Unlock()

	go func() {
		report, err := c.fetcher.FetchCurrent(c.ctx, key)

		c.mu.Lock()
		defer c.mu.Unlock()

		if err != nil {
			c.logger.Warn("primary fetch failed",
				zap.String("key", key),
				zap.Error(err),
			)
			c.state.Primary = PrimaryResult{Status: PrimaryFailed, Err: err.Error()}
		} else {
			c.state.Primary = PrimaryResult{Status: PrimaryReady, Report: report}
		}
		c.notifyLocked()
	}()
}

// OnRefresh re-issues the weather fetch for the current key, used as the
// manual retry after a failure.
func (c *Controller) OnRefresh() {
	c.mu.Lock()
	key := c.state.PrimaryKey
	c.mu.Unlock()

	c.OnPrimaryKeyChanged(key)
}

// Close ends the session: the debounce timer can no longer fire, the current
// epoch is retired so in-flight suggestion results are inert, and the session
// context is cancelled.
func (c *Controller) Close() {
	c.debouncer.Stop()
	c.seq.Retire()
	c.cancel()
}
