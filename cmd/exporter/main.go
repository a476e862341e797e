// Command exporter turns saved game records into CSV training rows.
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/op/go-logging"
	"github.com/pkg/errors"

	"gomoku_go/internal/dataset"
	"gomoku_go/internal/game"
	"gomoku_go/internal/logs"
	"gomoku_go/internal/record"
)

var log = logging.MustGetLogger("main")

func main() {
	in := flag.String("in", "games", "directory of game records")
	out := flag.String("out", "records.csv", "CSV file to append to")
	level := flag.String("log", "INFO", "log level")
	flag.Parse()

	if err := logs.Setup(os.Stderr, *level); err != nil {
		log.Fatalf("logging: %v", err)
	}
	n, err := export(*in, *out)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Infof("exported %d games from %s to %s", n, *in, *out)
}

// export appends the rows of every record in dir to path and returns the
// number of games exported. Records that fail to replay are skipped.
func export(dir, path string) (int, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return 0, errors.Wrap(err, "list records")
	}
	w, _, err := dataset.Open(path)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, f := range files {
		rows, err := recordRows(f)
		if err != nil {
			log.Warningf("skip %s: %v", f, err)
			continue
		}
		if err := w.WriteGame(rows); err != nil {
			_ = w.Close()
			return n, err
		}
		n++
	}
	return n, w.Close()
}

func recordRows(path string) ([][]string, error) {
	rec, err := record.Load(path)
	if err != nil {
		return nil, err
	}
	var samples []dataset.Sample
	final, err := record.Replay(rec, func(gs *game.GameState, m game.Move) {
		samples = append(samples, dataset.Sample{
			Features: game.EncodeBoardTensor(gs),
			Move:     m,
			Mover:    gs.CurrentPlayer,
		})
	})
	if err != nil {
		return nil, err
	}
	return dataset.Rows(samples, final.Outcome(), rec.ID), nil
}
