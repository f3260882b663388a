// Package experiments plays unattended solver games and records win rates
// and deduction metrics for each difficulty preset.
package experiments

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"

	"github.com/ZibingZhang/Minesweeper/experiments/metrics"
	"github.com/ZibingZhang/Minesweeper/game"
	"github.com/ZibingZhang/Minesweeper/solver"
)

// Preset is a board difficulty configuration.
type Preset struct {
	Name  string `yaml:"name"`
	Rows  int    `yaml:"rows"`
	Cols  int    `yaml:"cols"`
	Bombs int    `yaml:"bombs"`
}

// Config drives an autoplay run. Zero values fall back to the defaults.
type Config struct {
	Games   int      `yaml:"games"`
	Seed    uint64   `yaml:"seed"`
	Presets []Preset `yaml:"presets"`
}

// DefaultPresets are the classic difficulties.
var DefaultPresets = []Preset{
	{Name: "beginner", Rows: 9, Cols: 9, Bombs: 10},
	{Name: "intermediate", Rows: 16, Cols: 16, Bombs: 40},
	{Name: "expert", Rows: 16, Cols: 30, Bombs: 99},
}

// LoadConfig reads an autoplay configuration from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Run plays cfg.Games games per preset with the deductive solver,
// guessing a uniformly random covered cell whenever deduction stalls, and
// writes per-game records to a timestamped CSV directory.
func Run(cfg Config) error {
	if cfg.Games <= 0 {
		cfg.Games = 30
	}
	if len(cfg.Presets) == 0 {
		cfg.Presets = DefaultPresets
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))

	writer, err := metrics.NewWriter("autoplay")
	if err != nil {
		return err
	}

	var records []metrics.GameRecord
	for _, preset := range cfg.Presets {
		wins := 0
		for i := 0; i < cfg.Games; i++ {
			record, err := playGame(preset, rng)
			if err != nil {
				return err
			}
			if record.Outcome == game.Won {
				wins++
			}
			records = append(records, record)
		}
		log.Info().
			Str("preset", preset.Name).
			Int("games", cfg.Games).
			Int("wins", wins).
			Float64("win_rate", float64(wins)/float64(cfg.Games)).
			Msg("preset complete")
	}

	if err := writer.WriteGameRecords(records); err != nil {
		return err
	}
	log.Info().Str("dir", writer.BaseDir()).Msg("wrote game records")
	return nil
}

func playGame(preset Preset, rng *rand.Rand) (metrics.GameRecord, error) {
	board, err := game.NewBoard(preset.Rows, preset.Cols, preset.Bombs, game.WithRand(rng))
	if err != nil {
		return metrics.GameRecord{}, err
	}
	collector := metrics.NewCollector()
	s := solver.New(board, solver.WithMetrics(collector))

	// Open at the center; the safe zone guarantees a cascade there.
	if _, err := board.Reveal(preset.Rows/2, preset.Cols/2); err != nil {
		return metrics.GameRecord{}, err
	}

	guesses := 0
	for !board.GameOver() {
		s.Solve()
		if board.GameOver() {
			break
		}
		if board.FlagsRemaining() == 1 {
			if _, err := s.FindLastBomb(); err != nil {
				log.Warn().Err(err).Str("preset", preset.Name).Msg("solver contradiction")
			}
			if board.GameOver() {
				break
			}
		}

		// Deduction stalled. Guess a uniformly random covered cell; this
		// is harness policy, not a solver inference.
		covered := coveredCells(board)
		if len(covered) == 0 {
			break
		}
		pick := covered[rng.Intn(len(covered))]
		if _, err := board.Reveal(pick.Row, pick.Col); err != nil {
			return metrics.GameRecord{}, err
		}
		guesses++
	}

	metric := collector.Complete(board.Outcome())
	return metrics.GameRecord{
		ID:          uuid.NewString(),
		Preset:      preset.Name,
		Rows:        preset.Rows,
		Cols:        preset.Cols,
		Bombs:       preset.Bombs,
		Guesses:     guesses,
		SolveMetric: metric,
	}, nil
}

func coveredCells(board *game.Board) []game.Coord {
	var covered []game.Coord
	for r := 0; r < board.Rows(); r++ {
		for c := 0; c < board.Cols(); c++ {
			if board.State(r, c) == game.Covered {
				covered = append(covered, game.Coord{Row: r, Col: c})
			}
		}
	}
	return covered
}
