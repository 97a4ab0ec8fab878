package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/flapper/internal/storage"
)

type fakeHistory struct {
	top    []storage.ScoreEntry
	recent []storage.ScoreEntry
	err    error
	calls  []string
}

func (f *fakeHistory) TopScores(limit int) ([]storage.ScoreEntry, error) {
	f.calls = append(f.calls, "top")
	return f.top, f.err
}

func (f *fakeHistory) RecentScores(limit int) ([]storage.ScoreEntry, error) {
	f.calls = append(f.calls, "recent")
	return f.recent, f.err
}

func sampleHistory() *fakeHistory {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return &fakeHistory{
		top: []storage.ScoreEntry{
			{ID: 2, RunID: "b1c2d3e4-aaaa", Score: 21, CreatedAt: at},
			{ID: 1, RunID: "a1b2c3d4-bbbb", Score: 8, CreatedAt: at.Add(-time.Hour)},
		},
		recent: []storage.ScoreEntry{
			{ID: 3, RunID: "c1d2e3f4-cccc", Score: 2, CreatedAt: at.Add(time.Hour)},
		},
	}
}

func TestScoreboardLoadsBestFirst(t *testing.T) {
	src := sampleHistory()
	m := NewScoreboardModel(src, 100, 30)

	rows := m.table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "#1", rows[0][0])
	assert.Equal(t, "21", rows[0][1])
	assert.Equal(t, "b1c2d3e4", rows[0][3])
	assert.Equal(t, []string{"top"}, src.calls)
}

func TestScoreboardSwitchesTabs(t *testing.T) {
	src := sampleHistory()
	var m tea.Model = NewScoreboardModel(src, 100, 30)

	m, _ = m.Update(keyTab)
	rows := m.(ScoreboardModel).table.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0][1])

	m, _ = m.Update(keyTab)
	assert.Len(t, m.(ScoreboardModel).table.Rows(), 2)
	assert.Equal(t, []string{"top", "recent", "top"}, src.calls)
}

func TestScoreboardEmptyAndErrors(t *testing.T) {
	m := NewScoreboardModel(&fakeHistory{}, 100, 30)
	assert.Contains(t, m.View(), "No runs recorded yet")

	m = NewScoreboardModel(&fakeHistory{err: errors.New("database is locked")}, 100, 30)
	assert.Contains(t, m.View(), "database is locked")

	m = NewScoreboardModel(nil, 100, 30)
	assert.Contains(t, m.View(), "No runs recorded yet")
}

func TestScoreboardBackAndQuit(t *testing.T) {
	var m tea.Model = NewScoreboardModel(sampleHistory(), 100, 30)
	m, cmd := m.Update(keyEsc)
	require.NotNil(t, cmd)
	assert.True(t, m.(ScoreboardModel).IsGoingBack())
	assert.Empty(t, m.View())

	m = NewScoreboardModel(sampleHistory(), 100, 30)
	m, _ = m.Update(keyRune('q'))
	assert.True(t, m.(ScoreboardModel).IsQuitting())
	assert.False(t, m.(ScoreboardModel).IsGoingBack())
}

func TestShortRunID(t *testing.T) {
	assert.Equal(t, "abc", shortRunID("abc-def"))
	assert.Equal(t, "plain", shortRunID("plain"))
	assert.Equal(t, "", shortRunID(""))
}
