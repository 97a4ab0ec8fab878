package game

import "sync"

// Cue identifies a sound event.
type Cue int

const (
	CuePoint         Cue = iota // An obstacle was passed
	CueDeath                    // The run ended
	CueAmbientStart             // Countdown began, start the ambient loop
	CueAmbientPause             // Game paused
	CueAmbientResume            // Game resumed
	CueAmbientStop              // Run ended or restarted
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CuePoint:
		return "point"
	case CueDeath:
		return "death"
	case CueAmbientStart:
		return "ambient-start"
	case CueAmbientPause:
		return "ambient-pause"
	case CueAmbientResume:
		return "ambient-resume"
	case CueAmbientStop:
		return "ambient-stop"
	default:
		return "unknown"
	}
}

// Presenter draws the state. It must not mutate it or keep references to
// Obstacles past the call.
type Presenter interface {
	Render(s *State)
}

// CuePlayer plays sound cues. Implementations honor their own enabled flag
// and swallow playback failures.
type CuePlayer interface {
	Play(c Cue)
}

// HighScoreStore persists the single best score.
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// ScoreRecorder keeps a history of finished runs.
type ScoreRecorder interface {
	RecordScore(runID string, score int) error
}

type nopPresenter struct{}

func (nopPresenter) Render(*State) {}

type nopCues struct{}

func (nopCues) Play(Cue) {}

// MemoryHighScores is an in-process HighScoreStore.
type MemoryHighScores struct {
	mu    sync.Mutex
	score int
	saves int
}

// NewMemoryHighScores creates a store holding an initial score.
func NewMemoryHighScores(initial int) *MemoryHighScores {
	return &MemoryHighScores{score: initial}
}

// LoadHighScore implements HighScoreStore.
func (m *MemoryHighScores) LoadHighScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

// SaveHighScore implements HighScoreStore.
func (m *MemoryHighScores) SaveHighScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.score = score
	m.saves++
	return nil
}

// Saves returns how many times SaveHighScore was called.
func (m *MemoryHighScores) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
