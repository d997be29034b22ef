package internal

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnoswap-labs/parsec/internal/types"
)

type reportSink struct {
	mu      sync.Mutex
	reports map[string][]tt.Report
}

func (s *reportSink) handle(filename string, reports []tt.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[filename] = reports
}

func (s *reportSink) get(filename string) []tt.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reports[filename]
}

func TestWatchChecksChangedFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	grammarPath := filepath.Join(dir, "grammar.yaml")
	require.NoError(t, os.WriteFile(grammarPath, []byte("start: n\nrules:\n  n: {atleastone: {class: digit}}\n"), 0o644))

	inputs := filepath.Join(dir, "inputs")
	require.NoError(t, os.Mkdir(inputs, 0o755))
	input := filepath.Join(inputs, "a.txt")
	require.NoError(t, os.WriteFile(input, []byte("12\n"), 0o644))

	engine, err := LoadEngine(grammarPath, nil)
	require.NoError(t, err)
	engine.SetLineMode(true)

	sink := &reportSink{reports: make(map[string][]tt.Report)}
	accept := func(path string) bool { return filepath.Ext(path) == ".txt" }
	require.NoError(t, engine.StartWatching([]string{inputs}, accept, sink.handle))
	defer engine.StopWatching()

	assert.Error(t, engine.StartWatching([]string{inputs}, accept, sink.handle), "already watching")

	require.NoError(t, os.WriteFile(input, []byte("12\nx\n"), 0o644))
	require.Eventually(t, func() bool {
		return len(sink.get(input)) == 2
	}, 5*time.Second, 20*time.Millisecond)

	reports := sink.get(input)
	assert.True(t, reports[0].OK)
	assert.False(t, reports[1].OK)

	ignored := filepath.Join(inputs, "b.log")
	require.NoError(t, os.WriteFile(ignored, []byte("x\n"), 0o644))

	require.NoError(t, os.WriteFile(grammarPath, []byte("start: n\nrules:\n  n: {atleastone: {class: alpha}}\n"), 0o644))
	require.Eventually(t, func() bool {
		return engine.RunInput("", "x").OK
	}, 5*time.Second, 20*time.Millisecond)

	assert.Empty(t, sink.get(ignored))
}

func TestWatchSkipsHiddenDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, sub := range []string{".git/objects", "data/.cache", "data/2024"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
	}

	engine := newMoneyEngine(t)
	sink := &reportSink{reports: make(map[string][]tt.Report)}
	require.NoError(t, engine.StartWatching([]string{dir}, nil, sink.handle))
	defer engine.StopWatching()

	engine.watchMu.Lock()
	dirs := engine.watch.dirs
	engine.watchMu.Unlock()

	assert.Equal(t, map[string]bool{
		dir:                             true,
		filepath.Join(dir, "data"):      true,
		filepath.Join(dir, "data/2024"): true,
	}, dirs)

	hidden := filepath.Join(dir, "data", ".draft.txt")
	visible := filepath.Join(dir, "data", "prices.txt")
	require.NoError(t, os.WriteFile(hidden, []byte("€1\n"), 0o644))
	require.NoError(t, os.WriteFile(visible, []byte("€1\n"), 0o644))
	require.Eventually(t, func() bool {
		return len(sink.get(visible)) == 1
	}, 5*time.Second, 20*time.Millisecond)
	assert.Empty(t, sink.get(hidden))
}

func TestStopWatchingWhenIdle(t *testing.T) {
	t.Parallel()

	assert.NoError(t, newMoneyEngine(t).StopWatching())
}
