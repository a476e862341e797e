// Command selfplay lets the network play itself and appends one CSV row per
// ply (features, chosen cell, final result, game id).
//
//	go build -o selfplay ./cmd/selfplay
package main

import (
	"flag"
	"math/rand"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/op/go-logging"
	"github.com/pkg/errors"

	"gomoku_go/internal/config"
	"gomoku_go/internal/dataset"
	"gomoku_go/internal/game"
	"gomoku_go/internal/logs"
	"gomoku_go/internal/ml"
	"gomoku_go/internal/play"
)

var log = logging.MustGetLogger("main")

func main() {
	numGames := flag.Int("n", 1000, "number of games to play")
	outFile := flag.String("out", "dataset.csv", "CSV file")
	workers := flag.Int("workers", max(1, runtime.NumCPU()/4), "parallel games")
	opening := flag.Int("opening", 4, "random opening plies")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		_ = logs.Setup(os.Stderr, "WARNING")
		log.Fatalf("config: %v", err)
	}
	level := cfg.LogLevel
	if level == config.Default().LogLevel {
		level = "INFO"
	}
	if err := logs.Setup(os.Stderr, level); err != nil {
		log.Fatalf("logging: %v", err)
	}
	tb, err := play.ParseTieBreak(cfg.TieBreak)
	if err != nil {
		log.Fatalf("%v", err)
	}

	eval, err := ml.LoadONNX(cfg.Model)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer eval.Close()

	w, done, err := dataset.Open(*outFile)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := w.Close(); err != nil {
			log.Errorf("close %s: %v", *outFile, err)
		}
	}()
	log.Infof("%s has %d rows, %d workers play %d games", *outFile, done, *workers, *numGames)

	jobs := make(chan int, *workers*2)
	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(*seed + int64(workerID)))
			agent := &play.Agent{Eval: eval, TieBreak: tb, Rand: r}
			for id := range jobs {
				rows, err := playOneGame(agent, *opening, r)
				if err != nil {
					log.Errorf("game %d: %v", id, err)
					continue
				}
				if err := w.WriteGame(rows); err != nil {
					log.Errorf("game %d: %v", id, err)
				}
			}
		}(i)
	}

	for g := 0; g < *numGames; g++ {
		jobs <- g
		if (g+1)%100 == 0 {
			log.Infof("queued %d/%d", g+1, *numGames)
		}
	}
	close(jobs)
	wg.Wait()
}

// playOneGame plays random opening plies, then the agent's choice for both
// sides until the game ends.
func playOneGame(agent *play.Agent, opening int, r *rand.Rand) ([][]string, error) {
	gs := game.NewGameState()
	addRandomOpening(gs, opening, r)

	var samples []dataset.Sample
	for !gs.Outcome().Terminal() {
		mv, _, err := agent.Choose(gs)
		if err != nil {
			return nil, err
		}
		samples = append(samples, dataset.Sample{
			Features: game.EncodeBoardTensor(gs),
			Move:     mv,
			Mover:    gs.CurrentPlayer,
		})
		if err := gs.Apply(mv); err != nil {
			return nil, errors.Wrapf(err, "ply %d", gs.Ply+1)
		}
	}
	return dataset.Rows(samples, gs.Outcome(), uuid.New().String()), nil
}

func addRandomOpening(gs *game.GameState, n int, r *rand.Rand) {
	for i := 0; i < n && !gs.Outcome().Terminal(); i++ {
		moves := gs.GenerateMoves()
		if err := gs.Apply(moves[r.Intn(len(moves))]); err != nil {
			log.Errorf("opening: %v", err)
			return
		}
	}
}
