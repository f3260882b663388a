package metrics

import (
	"time"

	"github.com/ZibingZhang/Minesweeper/game"
)

// SolveMetric aggregates what the solver accomplished over one game:
// fixpoint passes, deductions applied, and how the game ended.
type SolveMetric struct {
	Passes   int
	Flagged  int
	Revealed int
	Duration time.Duration
	Outcome  game.Outcome
}

type Collector interface {
	Start()
	AddPass()
	AddFlagged(count int)
	AddRevealed(count int)
	Complete(outcome game.Outcome) SolveMetric
}

type collector struct {
	startTime time.Time
	passes    int
	flagged   int
	revealed  int
}

func NewCollector() Collector {
	return &collector{}
}

// Start begins timing. Later calls within the same game are no-ops, so
// the solver may be re-entered (e.g. after a last-bomb search) without
// resetting the clock.
func (m *collector) Start() {
	if m.startTime.IsZero() {
		m.startTime = time.Now()
	}
}

func (m *collector) AddPass() {
	m.passes++
}

func (m *collector) AddFlagged(count int) {
	m.flagged += count
}

func (m *collector) AddRevealed(count int) {
	m.revealed += count
}

func (m *collector) Complete(outcome game.Outcome) SolveMetric {
	return SolveMetric{
		Passes:   m.passes,
		Flagged:  m.flagged,
		Revealed: m.revealed,
		Duration: time.Since(m.startTime),
		Outcome:  outcome,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                                    {}
func (m *dummyCollector) AddPass()                                  {}
func (m *dummyCollector) AddFlagged(count int)                      {}
func (m *dummyCollector) AddRevealed(count int)                     {}
func (m *dummyCollector) Complete(outcome game.Outcome) SolveMetric { return SolveMetric{} }
