// Package store persists the game as a JSON snapshot and handles the
// export/import file format. Snapshots are keyed by player display name so
// files interchange with the original web scorekeeper; stable player IDs
// are reassigned on load and rebound by name, which is safe because names
// are unique in any state we write.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/barbu/internal/contract"
	"github.com/lox/barbu/internal/game"
)

// ErrMalformed is returned when a game file fails structural validation.
var ErrMalformed = errors.New("malformed game file")

// Snapshot is the on-disk schema, shared by the saved game and the
// export/import file. ExportedAt is only set on exported files.
type Snapshot struct {
	Players            []string      `json:"players"`
	EnabledContracts   []string      `json:"enabledContracts"`
	Rounds             []RoundRecord `json:"rounds"`
	CurrentDealerIndex int           `json:"currentDealerIndex"`
	Commentary         bool          `json:"commentary,omitempty"`
	ExportedAt         string        `json:"exportedAt,omitempty"`
}

// RoundRecord is one recorded round in snapshot form.
type RoundRecord struct {
	Dealer   string         `json:"dealer"`
	Contract string         `json:"contract"`
	Scores   map[string]int `json:"scores"`
}

// Store reads and writes snapshots at a fixed path. Writes happen
// synchronously around each mutating operation and are atomic on disk.
type Store struct {
	path   string
	clock  quartz.Clock
	logger *log.Logger
}

// New creates a store using the real clock.
func New(path string, logger *log.Logger) *Store {
	return NewWithClock(path, quartz.NewReal(), logger)
}

// NewWithClock creates a store with an injectable clock for tests.
func NewWithClock(path string, clock quartz.Clock, logger *log.Logger) *Store {
	return &Store{path: path, clock: clock, logger: logger.WithPrefix("store")}
}

// Path returns the snapshot location.
func (s *Store) Path() string {
	return s.path
}

// Save writes the session snapshot to the store path.
func (s *Store) Save(sess *game.Session, commentary bool) error {
	snap := FromSession(sess, commentary)
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := writeAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	s.logger.Debug("Saved snapshot", "path", s.path, "rounds", len(sess.Rounds()))
	return nil
}

// Load restores the saved session, if any. Loading is defensive: a missing
// file, unreadable JSON, or a snapshot failing validation all discard the
// snapshot and return a nil session so the caller starts fresh.
func (s *Store) Load(logger *log.Logger) (*game.Session, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("Discarding unreadable snapshot", "path", s.path, "error", err)
		return nil, false, nil
	}
	sess, err := ToSession(&snap, logger)
	if err != nil {
		s.logger.Warn("Discarding invalid snapshot", "path", s.path, "error", err)
		return nil, false, nil
	}
	return sess, snap.Commentary, nil
}

// Export writes the session to path as a game file with an export
// timestamp.
func (s *Store) Export(sess *game.Session, commentary bool, path string) error {
	snap := FromSession(sess, commentary)
	snap.ExportedAt = s.clock.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode game file: %w", err)
	}
	if err := writeAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write game file: %w", err)
	}
	s.logger.Info("Exported game", "path", path)
	return nil
}

// Import reads a game file and builds a session from it. Unlike Load it is
// strict: any malformed input is an error and nothing is persisted, so a
// failed import leaves current state untouched. Callers swap in the
// returned session and save it themselves.
func (s *Store) Import(path string, logger *log.Logger) (*game.Session, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read game file: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	sess, err := ToSession(&snap, logger)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return sess, snap.Commentary, nil
}

// FromSession converts a live session into snapshot form.
func FromSession(sess *game.Session, commentary bool) *Snapshot {
	players := sess.Players()
	names := make([]string, len(players))
	nameByID := make(map[game.PlayerID]string, len(players))
	for i, p := range players {
		names[i] = p.Name
		nameByID[p.ID] = p.Name
	}

	enabled := sess.EnabledContracts()
	contracts := make([]string, len(enabled))
	for i, c := range enabled {
		contracts[i] = c.String()
	}

	rounds := sess.Rounds()
	records := make([]RoundRecord, len(rounds))
	for i, r := range rounds {
		scores := make(map[string]int, len(r.Scores))
		for id, pts := range r.Scores {
			scores[nameByID[id]] = pts
		}
		records[i] = RoundRecord{
			Dealer:   nameByID[r.Dealer],
			Contract: r.Contract.String(),
			Scores:   scores,
		}
	}

	return &Snapshot{
		Players:            names,
		EnabledContracts:   contracts,
		Rounds:             records,
		CurrentDealerIndex: sess.DealerIndex(),
		Commentary:         commentary,
	}
}

// ToSession validates a snapshot and builds a session from it. Fresh IDs
// are minted for the players and round records are rebound by name.
func ToSession(snap *Snapshot, logger *log.Logger) (*game.Session, error) {
	if len(snap.Players) == 0 || len(snap.EnabledContracts) == 0 {
		return nil, fmt.Errorf("missing players or contracts")
	}

	players := make([]game.Player, len(snap.Players))
	idByName := make(map[string]game.PlayerID, len(snap.Players))
	for i, name := range snap.Players {
		if name == "" {
			return nil, fmt.Errorf("empty player name at index %d", i)
		}
		players[i] = game.Player{ID: game.NewPlayerID(), Name: name}
		idByName[name] = players[i].ID
	}

	enabled := make([]contract.Contract, len(snap.EnabledContracts))
	for i, name := range snap.EnabledContracts {
		c := contract.Contract(name)
		if !c.Valid() {
			return nil, fmt.Errorf("unknown contract %q", name)
		}
		enabled[i] = c
	}

	rounds := make([]game.Round, len(snap.Rounds))
	for i, rec := range snap.Rounds {
		dealer, ok := idByName[rec.Dealer]
		if !ok {
			return nil, fmt.Errorf("round %d: unknown dealer %q", i, rec.Dealer)
		}
		c := contract.Contract(rec.Contract)
		if !c.Valid() {
			return nil, fmt.Errorf("round %d: unknown contract %q", i, rec.Contract)
		}
		scores := make(game.Scores, len(rec.Scores))
		for name, pts := range rec.Scores {
			id, ok := idByName[name]
			if !ok {
				return nil, fmt.Errorf("round %d: score for unknown player %q", i, name)
			}
			scores[id] = pts
		}
		rounds[i] = game.Round{Dealer: dealer, Contract: c, Scores: scores}
	}

	return game.Restore(players, enabled, rounds, snap.CurrentDealerIndex, logger)
}
