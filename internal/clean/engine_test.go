package clean

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/lakshaymaurya-felt/wclean/internal/config"
	"github.com/lakshaymaurya-felt/wclean/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	tempRoot    = "/tmp/wclean"
	missingRoot = "/does/not/exist"
)

// recordingSink keeps every status and percent it receives.
type recordingSink struct {
	mu       sync.Mutex
	statuses []string
	percents []float64
}

func (s *recordingSink) OnStatus(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses = append(s.statuses, text)
}

func (s *recordingSink) OnPercent(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.percents = append(s.percents, v)
}

func (s *recordingSink) last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.statuses) == 0 {
		return ""
	}
	return s.statuses[len(s.statuses)-1]
}

type mockTrash struct {
	mock.Mock
}

func (m *mockTrash) Stat() (RecycleBinInfo, error) {
	args := m.Called()
	return args.Get(0).(RecycleBinInfo), args.Error(1)
}

func (m *mockTrash) Empty() bool {
	return m.Called().Bool(0)
}

func testCatalog(roots ...string) *config.Catalog {
	return config.NewCatalog(
		config.Category{Name: config.CategorySystemTemp, Alias: "temp", Paths: roots},
		config.Category{Name: config.CategoryRecycleBin, Alias: "recyclebin", Trash: true, RiskLevel: config.RiskHigh},
		config.Category{Name: config.CategoryCustom, Alias: "custom", Custom: true, RiskLevel: config.RiskHigh},
	)
}

func seedFiles(t *testing.T, fsys afero.Fs, root string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		dir := root
		if i%2 == 1 {
			dir = filepath.Join(root, "sub")
		}
		writeFile(t, fsys, filepath.Join(dir, fmt.Sprintf("f%03d.tmp", i)))
	}
}

func newTestEngine(fsys afero.Fs, cat *config.Catalog, opts ...Option) *Engine {
	base := []Option{
		WithFs(fsys),
		WithDeleter(NewForceDeleter(fsys, nil, 0, nil)),
		WithTrash(&mockTrash{}),
	}
	return NewEngine(cat, append(base, opts...)...)
}

func TestRunDeletesEveryFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seedFiles(t, fsys, tempRoot, 3)
	sink := &recordingSink{}

	e := newTestEngine(fsys, testCatalog(tempRoot))
	summary, err := e.Run(context.Background(), config.Selection{config.CategorySystemTemp}, sink)
	require.NoError(t, err)

	assert.Equal(t, StateCompleted, summary.State)
	assert.Equal(t, StateCompleted, e.State())
	assert.Equal(t, int64(3), summary.TotalItems)
	assert.Equal(t, int64(3), summary.DeletedItems)
	assert.NotEmpty(t, summary.RunID)
	require.Len(t, summary.Categories, 1)
	assert.Equal(t, CategoryCleaned, summary.Categories[0].Status)

	assert.Contains(t, sink.last(), "3")
	assert.Equal(t, []float64{100}, sink.percents)

	for i := 0; i < 3; i++ {
		var name string
		if i%2 == 1 {
			name = filepath.Join(tempRoot, "sub", fmt.Sprintf("f%03d.tmp", i))
		} else {
			name = filepath.Join(tempRoot, fmt.Sprintf("f%03d.tmp", i))
		}
		ok, _ := afero.Exists(fsys, name)
		assert.False(t, ok, name)
	}

	total, deleted := e.Counters()
	assert.Equal(t, int64(3), total)
	assert.Equal(t, int64(3), deleted)
}

func TestRunMissingRoot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	sink := &recordingSink{}

	e := newTestEngine(fsys, testCatalog(missingRoot))
	summary, err := e.Run(context.Background(), config.Selection{config.CategorySystemTemp}, sink)
	require.NoError(t, err)

	assert.Equal(t, StateCompleted, summary.State)
	assert.Zero(t, summary.TotalItems)
	assert.Equal(t, CategoryNothingToClean, summary.Categories[0].Status)
	assert.Contains(t, sink.statuses, "Path not found: exist")
}

func TestRunEmptyRoot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(filepath.Join(tempRoot, "empty", "nested"), 0o755))
	sink := &recordingSink{}

	e := newTestEngine(fsys, testCatalog(tempRoot))
	summary, err := e.Run(context.Background(), config.Selection{config.CategorySystemTemp}, sink)
	require.NoError(t, err)

	assert.Zero(t, summary.TotalItems)
	assert.Zero(t, summary.DeletedItems)
	assert.Contains(t, sink.statuses, config.CategorySystemTemp+": nothing to clean")
}

func TestRunCustomPathsSnapshot(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seedFiles(t, fsys, "/data/one", 2)
	seedFiles(t, fsys, "/data/two", 4)

	cat := testCatalog()
	cat.AddCustomPath("/data/one")
	cat.AddCustomPath("/data/two/")

	e := newTestEngine(fsys, cat)
	summary, err := e.Run(context.Background(), config.Selection{config.CategoryCustom}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(6), summary.TotalItems)
	assert.Equal(t, int64(6), summary.DeletedItems)
}

func TestRunPartialDeletion(t *testing.T) {
	base := afero.NewMemMapFs()
	seedFiles(t, base, tempRoot, 3)
	fsys := afero.NewReadOnlyFs(base)

	e := newTestEngine(fsys, testCatalog(tempRoot))
	summary, err := e.Run(context.Background(), config.Selection{config.CategorySystemTemp}, nil)
	require.NoError(t, err)

	assert.Equal(t, StateCompleted, summary.State)
	assert.Equal(t, int64(3), summary.TotalItems)
	assert.Zero(t, summary.DeletedItems)
	assert.Equal(t, CategoryPartial, summary.Categories[0].Status)
}

func TestRunProgressEvery(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seedFiles(t, fsys, tempRoot, 45)
	sink := &recordingSink{}

	e := newTestEngine(fsys, testCatalog(tempRoot), WithProgressEvery(20))
	_, err := e.Run(context.Background(), config.Selection{config.CategorySystemTemp}, sink)
	require.NoError(t, err)

	name := config.CategorySystemTemp
	assert.Contains(t, sink.statuses, fmt.Sprintf("Cleaning %s: deleted 20/45", name))
	assert.Contains(t, sink.statuses, fmt.Sprintf("Cleaning %s: deleted 40/45", name))
	assert.NotContains(t, sink.statuses, fmt.Sprintf("Cleaning %s: deleted 45/45", name))
	assert.Contains(t, sink.statuses, fmt.Sprintf("%s done: deleted 45/45 files", name))
}

func TestRunPercentMonotonic(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seedFiles(t, fsys, tempRoot, 2)
	trash := &mockTrash{}
	trash.On("Stat").Return(RecycleBinInfo{}, nil)
	sink := &recordingSink{}

	e := newTestEngine(fsys, testCatalog(tempRoot), WithTrash(trash))
	sel := config.Selection{config.CategorySystemTemp, config.CategoryRecycleBin, config.CategoryCustom}
	_, err := e.Run(context.Background(), sel, sink)
	require.NoError(t, err)

	require.Len(t, sink.percents, 3)
	assert.InDelta(t, 100.0/3, sink.percents[0], 0.001)
	assert.InDelta(t, 200.0/3, sink.percents[1], 0.001)
	assert.Equal(t, 100.0, sink.percents[2])
	for i := 1; i < len(sink.percents); i++ {
		assert.Greater(t, sink.percents[i], sink.percents[i-1])
	}
}

func TestRunRecycleBin(t *testing.T) {
	trash := &mockTrash{}
	trash.On("Stat").Return(RecycleBinInfo{Items: 5, Size: 4096}, nil).Once()
	trash.On("Empty").Return(true)
	rec := metrics.New()

	e := newTestEngine(afero.NewMemMapFs(), testCatalog(), WithTrash(trash), WithMetrics(rec))
	summary, err := e.Run(context.Background(), config.Selection{config.CategoryRecycleBin}, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(5), summary.TotalItems)
	assert.Equal(t, int64(5), summary.DeletedItems)
	assert.Equal(t, int64(4096), summary.FreedBytes())
	assert.Empty(t, summary.Failed())
	assert.Equal(t, 5.0, testutil.ToFloat64(rec.ItemsDeletedTotal.WithLabelValues(config.CategoryRecycleBin)))
	trash.AssertExpectations(t)
	trash.AssertNumberOfCalls(t, "Stat", 1)
}

func TestRunRecycleBinEmptyFails(t *testing.T) {
	trash := &mockTrash{}
	trash.On("Stat").Return(RecycleBinInfo{Items: 5}, nil)
	trash.On("Empty").Return(false)
	sink := &recordingSink{}

	e := newTestEngine(afero.NewMemMapFs(), testCatalog(), WithTrash(trash))
	summary, err := e.Run(context.Background(), config.Selection{config.CategoryRecycleBin}, sink)
	require.NoError(t, err)

	assert.Equal(t, StateCompleted, summary.State)
	assert.Equal(t, int64(5), summary.TotalItems)
	assert.Zero(t, summary.DeletedItems)
	assert.Equal(t, []string{config.CategoryRecycleBin}, summary.Failed())
	assert.Contains(t, sink.statuses, "Failed to empty Recycle Bin")
}

func TestRunRecycleBinAlreadyEmpty(t *testing.T) {
	trash := &mockTrash{}
	trash.On("Stat").Return(RecycleBinInfo{}, nil)

	e := newTestEngine(afero.NewMemMapFs(), testCatalog(), WithTrash(trash))
	summary, err := e.Run(context.Background(), config.Selection{config.CategoryRecycleBin}, nil)
	require.NoError(t, err)

	assert.Equal(t, CategoryNothingToClean, summary.Categories[0].Status)
	trash.AssertNotCalled(t, "Empty")
}

func TestRunRecycleBinQueryFails(t *testing.T) {
	trash := &mockTrash{}
	trash.On("Stat").Return(RecycleBinInfo{}, ErrTrashServiceFailed)

	e := newTestEngine(afero.NewMemMapFs(), testCatalog(), WithTrash(trash))
	summary, err := e.Run(context.Background(), config.Selection{config.CategoryRecycleBin}, nil)
	require.NoError(t, err)

	assert.Equal(t, StateCompleted, summary.State)
	assert.Equal(t, []string{config.CategoryRecycleBin}, summary.Failed())
	trash.AssertNotCalled(t, "Empty")
}

// blockingDeleter parks on its first call until released.
type blockingDeleter struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newBlockingDeleter() *blockingDeleter {
	return &blockingDeleter{started: make(chan struct{}), release: make(chan struct{})}
}

func (b *blockingDeleter) Delete(string) bool {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return true
}

func TestStartRejectsConcurrentRun(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seedFiles(t, fsys, tempRoot, 2)
	del := newBlockingDeleter()
	sel := config.Selection{config.CategorySystemTemp}

	e := newTestEngine(fsys, testCatalog(tempRoot), WithDeleter(del))
	results, err := e.Start(context.Background(), sel, nil)
	require.NoError(t, err)

	select {
	case <-del.started:
	case <-time.After(5 * time.Second):
		t.Fatal("run never started deleting")
	}
	assert.Equal(t, StateRunning, e.State())

	rejected, err := e.Run(context.Background(), sel, nil)
	assert.True(t, errors.Is(err, ErrAlreadyRunning))
	assert.Equal(t, RunSummary{}, rejected)
	assert.Equal(t, StateRunning, e.State())
	_, err = e.Start(context.Background(), sel, nil)
	assert.True(t, errors.Is(err, ErrAlreadyRunning))

	total, _ := e.Counters()
	assert.Equal(t, int64(2), total)

	close(del.release)
	res := <-results
	require.NoError(t, res.Err)
	assert.Equal(t, StateCompleted, res.Summary.State)
	assert.Equal(t, int64(2), res.Summary.DeletedItems)

	_, open := <-results
	assert.False(t, open)

	// A finished engine accepts a new run.
	again, err := e.Start(context.Background(), config.Selection{}, nil)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, (<-again).Summary.State)
}

type panickingDeleter struct{}

func (panickingDeleter) Delete(string) bool { panic("boom") }

func TestRunPanicFailsRun(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seedFiles(t, fsys, tempRoot, 3)
	sink := &recordingSink{}

	e := newTestEngine(fsys, testCatalog(tempRoot), WithDeleter(panickingDeleter{}))
	summary, err := e.Run(context.Background(), config.Selection{config.CategorySystemTemp}, sink)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedRunFailure))
	assert.Equal(t, StateFailed, summary.State)
	assert.Equal(t, StateFailed, e.State())
	assert.Equal(t, int64(3), summary.TotalItems)
	assert.Zero(t, summary.DeletedItems)
	assert.Contains(t, sink.last(), "Cleanup failed")
}

func TestRunUnknownCategoryFails(t *testing.T) {
	e := newTestEngine(afero.NewMemMapFs(), testCatalog())
	summary, err := e.Run(context.Background(), config.Selection{"nope"}, nil)

	assert.True(t, errors.Is(err, ErrUnexpectedRunFailure))
	assert.True(t, errors.Is(err, config.ErrUnknownCategory))
	assert.Equal(t, StateFailed, summary.State)
}

func TestRunCancelled(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seedFiles(t, fsys, tempRoot, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := newTestEngine(fsys, testCatalog(tempRoot))
	summary, err := e.Run(ctx, config.Selection{config.CategorySystemTemp}, nil)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, StateFailed, summary.State)
	assert.Zero(t, summary.DeletedItems)
}

func TestRunRecordsMetrics(t *testing.T) {
	fsys := afero.NewMemMapFs()
	seedFiles(t, fsys, tempRoot, 4)
	rec := metrics.New()

	e := newTestEngine(fsys, testCatalog(tempRoot), WithMetrics(rec))
	_, err := e.Run(context.Background(), config.Selection{config.CategorySystemTemp}, nil)
	require.NoError(t, err)

	assert.Equal(t, 4.0, testutil.ToFloat64(rec.ItemsTotal.WithLabelValues(config.CategorySystemTemp)))
	assert.Equal(t, 4.0, testutil.ToFloat64(rec.ItemsDeletedTotal.WithLabelValues(config.CategorySystemTemp)))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.LastRunState.WithLabelValues("completed")))
}

func TestRunStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.True(t, StateCompleted.Terminal())
	assert.False(t, StateRunning.Terminal())
}
