// Command gomoku loads ./model.onnx, prints the network's opening policy and
// then plays it against you on a 9x9 board. Enter moves like e5; q quits.
package main

import (
	"io"
	"math/rand"
	"os"

	"github.com/op/go-logging"

	"gomoku_go/internal/config"
	"gomoku_go/internal/game"
	"gomoku_go/internal/logs"
	"gomoku_go/internal/ml"
	"gomoku_go/internal/play"
	"gomoku_go/internal/record"
	"gomoku_go/internal/ui"
)

var log = logging.MustGetLogger("main")

// model is the part of *ml.ONNXEvaluator the demo uses.
type model interface {
	ml.Evaluator
	Signature() []string
}

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		_ = logs.Setup(os.Stderr, "WARNING")
		log.Fatalf("config: %v", err)
	}
	if err := logs.Setup(os.Stderr, cfg.LogLevel); err != nil {
		_ = logs.Setup(os.Stderr, "WARNING")
		log.Fatalf("logging: %v", err)
	}
	log.Infof("cpu: %s", ml.CPUSummary())

	eval, err := ml.LoadONNX(cfg.Model)
	if err != nil {
		log.Fatalf("%v", err)
	}
	err = run(cfg, eval, os.Stdin, os.Stdout)
	if cerr := eval.Close(); cerr != nil {
		log.Warningf("close model: %v", cerr)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}

func run(cfg config.Config, eval model, in io.Reader, out io.Writer) error {
	tb, err := play.ParseTieBreak(cfg.TieBreak)
	if err != nil {
		return err
	}
	agent := &play.Agent{Eval: eval, TieBreak: tb, Rand: rand.New(rand.NewSource(cfg.Seed))}
	console := ui.NewConsole(out, true)
	console.PrintLines(eval.Signature())

	gs := game.NewGameState()
	policy, err := agent.Policy(gs)
	if err != nil {
		return err
	}
	console.PrintPolicy("opening policy", policy)
	if cfg.DiagramPath != "" {
		if err := ui.WriteDiagnostic(cfg.DiagramPath, eval.Signature(), policy); err != nil {
			log.Warningf("diagram: %v", err)
		}
	}

	observers := []play.Observer{console}
	if cfg.RecordDir != "" {
		observers = append(observers, record.NewRecorder(cfg.RecordDir, cfg.Model.Path))
	}
	return play.NewController(gs, agent, in, out, observers...).Run()
}
