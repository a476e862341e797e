// Package record saves finished sessions as JSON and replays them.
package record

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/op/go-logging"
	"github.com/pkg/errors"

	"gomoku_go/internal/game"
	"gomoku_go/internal/play"
)

var log = logging.MustGetLogger("record")

// Move is one applied move.
type Move struct {
	Ply    int    `json:"ply"`
	Player string `json:"player"`
	Move   string `json:"move"`
	Index  int    `json:"index"`
	Source string `json:"source"`
}

// Record is a whole session.
type Record struct {
	ID       string    `json:"id"`
	Model    string    `json:"model"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	Moves    []Move    `json:"moves"`
	Outcome  string    `json:"outcome"`
}

// New starts an empty record with a fresh random id.
func New(model string) Record {
	return Record{
		ID:      uuid.New().String(),
		Model:   model,
		Started: time.Now().UTC(),
		Outcome: game.Ongoing.String(),
	}
}

// Save writes rec to dir/<id>.json and returns the path.
func Save(dir string, rec Record) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "record dir")
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "encode record")
	}
	path := filepath.Join(dir, rec.ID+".json")
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", errors.Wrap(err, "write record")
	}
	return path, nil
}

// Load reads a record written by Save.
func Load(path string) (Record, error) {
	var rec Record
	data, err := os.ReadFile(path)
	if err != nil {
		return rec, errors.Wrap(err, "read record")
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, errors.Wrapf(err, "decode %s", path)
	}
	return rec, nil
}

// Replay plays the recorded moves on a fresh game, calling each (if not nil)
// with the position before every move. The replayed outcome must match.
func Replay(rec Record, each func(gs *game.GameState, m game.Move)) (*game.GameState, error) {
	gs := game.NewGameState()
	for _, mv := range rec.Moves {
		m, err := game.ParseMove(mv.Move)
		if err != nil {
			return gs, errors.Wrapf(err, "ply %d", mv.Ply)
		}
		if each != nil {
			each(gs, m)
		}
		if err := gs.Apply(m); err != nil {
			return gs, errors.Wrapf(err, "ply %d", mv.Ply)
		}
	}
	if got := gs.Outcome().String(); got != rec.Outcome {
		return gs, errors.Errorf("record %s: replay ends in %q, record says %q", rec.ID, got, rec.Outcome)
	}
	return gs, nil
}

// Recorder is a play.Observer that saves the session when it finishes.
type Recorder struct {
	dir  string
	rec  Record
	path string
	err  error
}

// NewRecorder records into dir.
func NewRecorder(dir, model string) *Recorder {
	return &Recorder{dir: dir, rec: New(model)}
}

// OnMove implements play.Observer.
func (r *Recorder) OnMove(ev play.MoveEvent) {
	r.rec.Moves = append(r.rec.Moves, Move{
		Ply:    ev.Ply,
		Player: ev.Player.String(),
		Move:   ev.Move.String(),
		Index:  ev.Move.Index(),
		Source: ev.Source.String(),
	})
}

// OnFinished implements play.Observer. Save failures are logged and kept in Err.
func (r *Recorder) OnFinished(outcome game.Outcome) {
	r.rec.Outcome = outcome.String()
	r.rec.Finished = time.Now().UTC()
	r.path, r.err = Save(r.dir, r.rec)
	if r.err != nil {
		log.Errorf("save record %s: %v", r.rec.ID, r.err)
		return
	}
	log.Infof("saved %s", r.path)
}

// Record returns the record collected so far.
func (r *Recorder) Record() Record { return r.rec }

// Path returns where the record was saved, once finished.
func (r *Recorder) Path() string { return r.path }

// Err returns the save error, if any.
func (r *Recorder) Err() error { return r.err }

var _ play.Observer = (*Recorder)(nil)
