package logging

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatistics() *Statistics {
	return &Statistics{
		UniqueVisitors: make(map[string]time.Time),
		StartedAt:      time.Now(),
	}
}

func TestTrackAnalysis(t *testing.T) {
	s := newStatistics()

	s.TrackAnalysis(100, false)
	s.TrackAnalysis(300, true)

	assert.Equal(t, 2, s.AnalysisRequests)
	assert.Equal(t, 1, s.ErrorCount)
	assert.InDelta(t, 200, s.AverageLoadTime, 0.001)
	assert.InDelta(t, 50, s.GetErrorRate(), 0.001)
}

func TestErrorRateWithoutRequests(t *testing.T) {
	s := newStatistics()

	assert.Zero(t, s.GetErrorRate())
}

func TestUniqueVisitorsWindow(t *testing.T) {
	s := newStatistics()

	s.TrackVisitor("10.0.0.1")
	s.TrackVisitor("10.0.0.2")
	s.TrackVisitor("10.0.0.1") // repeat visit, same IP

	// An old visit outside the 24h window is not counted.
	s.UniqueVisitors["10.0.0.3"] = time.Now().Add(-25 * time.Hour)

	assert.Equal(t, 2, s.GetUniqueVisitorsCount())
}

func TestStatisticsPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statistics.json")

	s := newStatistics()
	s.filePath = path
	s.TrackVisitor("10.0.0.1")
	s.TrackAnalysis(100, false)
	s.TrackAnalysis(200, true)

	require.NoError(t, s.Save())
	assert.False(t, s.LastPersisted.IsZero())

	// A fresh instance pointed at the same file picks the counters back up.
	restored := newStatistics()
	restored.filePath = path
	require.NoError(t, restored.Load())

	assert.Equal(t, 2, restored.AnalysisRequests)
	assert.Equal(t, 1, restored.ErrorCount)
	assert.InDelta(t, 150, restored.AverageLoadTime, 0.001)
	assert.Equal(t, 1, restored.GetUniqueVisitorsCount())
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	s := newStatistics()
	s.filePath = filepath.Join(t.TempDir(), "does-not-exist.json")

	assert.NoError(t, s.Load())
}

func TestGetStatisticsView(t *testing.T) {
	t.Setenv(ENV_DEV_MODE, "false")

	s := newStatistics()
	s.TrackVisitor("10.0.0.1")
	s.TrackAnalysis(120, false)

	view := s.GetStatistics()

	assert.Equal(t, 1, view["uniqueVisitors24h"])
	assert.Equal(t, 1, view["totalRequests"])
	assert.NotContains(t, view, "startedAt")

	t.Setenv(ENV_DEV_MODE, "true")
	view = s.GetStatistics()
	assert.Contains(t, view, "startedAt")
}
