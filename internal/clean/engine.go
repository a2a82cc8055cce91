package clean

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/lakshaymaurya-felt/wclean/internal/config"
	"github.com/lakshaymaurya-felt/wclean/internal/logger"
	"github.com/lakshaymaurya-felt/wclean/internal/metrics"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// DefaultProgressEvery is the number of successful deletions between
// progress status updates.
const DefaultProgressEvery = 20

// ─── Run State ───────────────────────────────────────────────────────────────

// RunState is the lifecycle state of the engine.
type RunState int32

const (
	StateIdle RunState = iota
	StateRunning
	StateCompleted
	StateFailed
)

func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("RunState(%d)", int32(s))
	}
}

// Terminal reports whether a run has finished in this state.
func (s RunState) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

// CategoryStatus is the outcome of one category within a run.
type CategoryStatus int

const (
	CategoryCleaned CategoryStatus = iota
	CategoryPartial
	CategoryNothingToClean
	CategoryFailed
)

func (s CategoryStatus) String() string {
	switch s {
	case CategoryCleaned:
		return "cleaned"
	case CategoryPartial:
		return "partial"
	case CategoryNothingToClean:
		return "nothing to clean"
	case CategoryFailed:
		return "failed"
	default:
		return fmt.Sprintf("CategoryStatus(%d)", int(s))
	}
}

// CategoryResult summarizes one category.
type CategoryResult struct {
	Name    string
	Total   int64
	Deleted int64
	// Freed is the byte count released, known only for the Recycle Bin.
	Freed  int64
	Status CategoryStatus
	Err    error
}

// RunSummary is the outcome of a run.
type RunSummary struct {
	RunID        string
	State        RunState
	TotalItems   int64
	DeletedItems int64
	Categories   []CategoryResult
	Duration     time.Duration
}

// Failed returns the names of categories that failed outright.
func (s RunSummary) Failed() []string {
	var names []string
	for _, c := range s.Categories {
		if c.Status == CategoryFailed {
			names = append(names, c.Name)
		}
	}
	return names
}

// FreedBytes sums the known freed bytes of all categories.
func (s RunSummary) FreedBytes() int64 {
	var n int64
	for _, c := range s.Categories {
		n += c.Freed
	}
	return n
}

// RunResult is delivered on the channel returned by Engine.Start.
type RunResult struct {
	Summary RunSummary
	Err     error
}

// ─── Engine ──────────────────────────────────────────────────────────────────

// Resolver turns a category identifier into the paths to clean.
type Resolver interface {
	Resolve(name string) (config.Resolution, error)
}

// Trash is the Recycle Bin as seen by the engine.
type Trash interface {
	Stat() (RecycleBinInfo, error)
	Empty() bool
}

// Engine runs cleanups one at a time. Counters may be read from any
// goroutine while a run is in progress.
type Engine struct {
	catalog       Resolver
	fs            afero.Fs
	deleter       Deleter
	trash         Trash
	metrics       *metrics.Recorder
	progressEvery int64
	log           zerolog.Logger

	state   atomic.Int32
	total   atomic.Int64
	deleted atomic.Int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithFs sets the filesystem walked and deleted from.
func WithFs(fsys afero.Fs) Option { return func(e *Engine) { e.fs = fsys } }

// WithDeleter replaces the default ForceDeleter.
func WithDeleter(d Deleter) Option { return func(e *Engine) { e.deleter = d } }

// WithTrash replaces the default Recycle Bin controller.
func WithTrash(t Trash) Option { return func(e *Engine) { e.trash = t } }

// WithMetrics records run metrics into rec.
func WithMetrics(rec *metrics.Recorder) Option { return func(e *Engine) { e.metrics = rec } }

// WithProgressEvery sets how many deletions pass between status updates.
func WithProgressEvery(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.progressEvery = int64(n)
		}
	}
}

// NewEngine creates an idle engine resolving categories through catalog.
func NewEngine(catalog Resolver, opts ...Option) *Engine {
	e := &Engine{
		catalog:       catalog,
		progressEvery: DefaultProgressEvery,
		log:           logger.WithComponent("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.fs == nil {
		e.fs = afero.NewOsFs()
	}
	if e.deleter == nil {
		e.deleter = NewForceDeleter(e.fs, NewElevator(), DefaultElevateWait, e.metrics)
	}
	if e.trash == nil {
		e.trash = NewTrashController(nil)
	}
	return e
}

// State returns the current run state.
func (e *Engine) State() RunState { return RunState(e.state.Load()) }

// Counters returns the items discovered and deleted by the current or most
// recent run.
func (e *Engine) Counters() (total, deleted int64) {
	return e.total.Load(), e.deleted.Load()
}

// Run cleans the selected categories in order and blocks until done.
func (e *Engine) Run(ctx context.Context, sel config.Selection, sink ProgressSink) (RunSummary, error) {
	if err := e.begin(); err != nil {
		return RunSummary{}, err
	}
	return e.execute(ctx, sel, sink)
}

// Start begins a run in a new goroutine. The returned channel receives
// exactly one result and is then closed.
func (e *Engine) Start(ctx context.Context, sel config.Selection, sink ProgressSink) (<-chan RunResult, error) {
	if err := e.begin(); err != nil {
		return nil, err
	}
	ch := make(chan RunResult, 1)
	go func() {
		defer close(ch)
		summary, err := e.execute(ctx, sel, sink)
		ch <- RunResult{Summary: summary, Err: err}
	}()
	return ch, nil
}

// begin moves the engine to Running, rejecting a concurrent run.
func (e *Engine) begin() error {
	for {
		cur := e.state.Load()
		if RunState(cur) == StateRunning {
			return ErrAlreadyRunning
		}
		if e.state.CompareAndSwap(cur, int32(StateRunning)) {
			break
		}
	}
	e.total.Store(0)
	e.deleted.Store(0)
	return nil
}

func (e *Engine) execute(ctx context.Context, sel config.Selection, sink ProgressSink) (summary RunSummary, err error) {
	if sink == nil {
		sink = NopSink{}
	}
	start := time.Now()
	summary.RunID = uuid.NewString()
	log := e.log.With().Str("run_id", summary.RunID).Logger()
	log.Info().Strs("categories", sel).Msg("cleanup started")

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrUnexpectedRunFailure, r)
		}
		summary.TotalItems, summary.DeletedItems = e.Counters()
		summary.Duration = time.Since(start)

		if err != nil {
			summary.State = StateFailed
			log.Error().Err(err).Int64("total", summary.TotalItems).Int64("deleted", summary.DeletedItems).Msg("cleanup failed")
			notify(sink, fmt.Sprintf("Cleanup failed: %v", err))
		} else {
			summary.State = StateCompleted
			log.Info().Int64("total", summary.TotalItems).Int64("deleted", summary.DeletedItems).
				Dur("duration", summary.Duration).Msg("cleanup complete")
			notify(sink, fmt.Sprintf("Cleanup complete: processed %d items, deleted %d",
				summary.TotalItems, summary.DeletedItems))
		}
		e.metrics.RunFinished(summary.State.String(), summary.Duration)
		e.state.Store(int32(summary.State))
	}()

	for i, name := range sel {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("%w: %w", ErrUnexpectedRunFailure, err)
		}
		sink.OnStatus("Preparing: " + name)

		res, err := e.cleanCategory(ctx, log, name, sink)
		summary.Categories = append(summary.Categories, res)
		if err != nil {
			return summary, fmt.Errorf("%w: %s: %w", ErrUnexpectedRunFailure, name, err)
		}
		sink.OnPercent(float64(i+1) / float64(len(sel)) * 100)
	}
	return summary, nil
}

// notify delivers the final status. A sink that panics here cannot change
// the run's outcome.
func notify(sink ProgressSink, text string) {
	defer func() { _ = recover() }()
	sink.OnStatus(text)
}

// cleanCategory cleans every root of one category. Only cancellation and
// resolve failures are returned as errors; everything else is recorded in
// the result.
func (e *Engine) cleanCategory(ctx context.Context, log zerolog.Logger, name string, sink ProgressSink) (CategoryResult, error) {
	res := CategoryResult{Name: name}
	r, err := e.catalog.Resolve(name)
	if err != nil {
		res.Status, res.Err = CategoryFailed, err
		e.metrics.CategoryFailed(name)
		return res, err
	}

	if r.Trash {
		return e.cleanTrash(log, name, sink), nil
	}

	for _, root := range r.Paths {
		total, deleted, err := e.cleanPath(ctx, log, name, root, sink)
		res.Total += total
		res.Deleted += deleted
		if err != nil && !errors.Is(err, ErrPathMissing) && !errors.Is(err, ErrNothingToClean) {
			res.Status, res.Err = CategoryFailed, err
			return res, err
		}
	}

	switch {
	case res.Total == 0:
		res.Status = CategoryNothingToClean
	case res.Deleted < res.Total:
		res.Status = CategoryPartial
	default:
		res.Status = CategoryCleaned
	}
	return res, nil
}

func (e *Engine) cleanPath(ctx context.Context, log zerolog.Logger, name, root string, sink ProgressSink) (total, deleted int64, err error) {
	if !exists(e.fs, root) {
		sink.OnStatus("Path not found: " + filepath.Base(root))
		log.Debug().Str("category", name).Str("root", root).Msg("root missing")
		return 0, 0, ErrPathMissing
	}

	total, err = countFiles(ctx, e.fs, root, log)
	if err != nil {
		return 0, 0, err
	}
	if total == 0 {
		sink.OnStatus(name + ": nothing to clean")
		return 0, 0, ErrNothingToClean
	}
	e.total.Add(total)
	e.metrics.AddItems(name, total)
	sink.OnStatus(fmt.Sprintf("Cleaning %s: %d files", name, total))

	err = walkFiles(e.fs, root, log, func(path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !e.deleter.Delete(path) {
			return nil
		}
		// Files created after the count are added to the total so the
		// deleted count never passes it.
		if deleted == total {
			total++
			e.total.Add(1)
			e.metrics.AddItems(name, 1)
		}
		deleted++
		e.deleted.Add(1)
		if deleted%e.progressEvery == 0 {
			sink.OnStatus(fmt.Sprintf("Cleaning %s: deleted %d/%d", name, deleted, total))
		}
		return nil
	})
	e.metrics.AddDeleted(name, deleted)
	if err != nil {
		return total, deleted, err
	}

	log.Info().Str("category", name).Str("root", root).Int64("total", total).Int64("deleted", deleted).Msg("root cleaned")
	sink.OnStatus(fmt.Sprintf("%s done: deleted %d/%d files", name, deleted, total))
	return total, deleted, nil
}

func (e *Engine) cleanTrash(log zerolog.Logger, name string, sink ProgressSink) CategoryResult {
	res := CategoryResult{Name: name}
	sink.OnStatus("Checking Recycle Bin")

	info, err := e.trash.Stat()
	if err != nil {
		log.Warn().Err(err).Msg("recycle bin query failed")
		sink.OnStatus("Recycle Bin query failed")
		res.Status, res.Err = CategoryFailed, err
		e.metrics.CategoryFailed(name)
		return res
	}
	count := info.Items
	if count == 0 {
		sink.OnStatus("Recycle Bin is already empty")
		res.Status = CategoryNothingToClean
		return res
	}

	res.Total = count
	e.total.Add(count)
	e.metrics.AddItems(name, count)
	sink.OnStatus(fmt.Sprintf("Emptying Recycle Bin: %d items", count))

	if !e.trash.Empty() {
		sink.OnStatus("Failed to empty Recycle Bin")
		res.Status, res.Err = CategoryFailed, ErrTrashServiceFailed
		e.metrics.CategoryFailed(name)
		return res
	}

	res.Deleted, res.Freed, res.Status = count, info.Size, CategoryCleaned
	e.deleted.Add(count)
	e.metrics.AddDeleted(name, count)
	sink.OnStatus(fmt.Sprintf("Recycle Bin emptied: %d items", count))
	return res
}
