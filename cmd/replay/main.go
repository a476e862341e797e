// Command replay prints a saved game record one ply at a time.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/op/go-logging"

	"gomoku_go/internal/game"
	"gomoku_go/internal/logs"
	"gomoku_go/internal/record"
	"gomoku_go/internal/ui"
)

var log = logging.MustGetLogger("main")

func main() {
	in := flag.String("in", "", "game record (.json)")
	delay := flag.Duration("delay", 500*time.Millisecond, "pause between plies")
	color := flag.Bool("color", true, "colour the board")
	flag.Parse()

	if err := logs.Setup(os.Stderr, "WARNING"); err != nil {
		log.Fatalf("logging: %v", err)
	}
	if *in == "" {
		flag.PrintDefaults()
		os.Exit(2)
	}
	if err := replay(*in, os.Stdout, *delay, *color); err != nil {
		log.Fatalf("%v", err)
	}
}

func replay(path string, out io.Writer, delay time.Duration, color bool) error {
	rec, err := record.Load(path)
	if err != nil {
		return err
	}
	console := ui.NewConsole(out, color)
	fmt.Fprintf(out, "game %s, model %s, %d plies\n", rec.ID, rec.Model, len(rec.Moves))
	ply := 0
	final, err := record.Replay(rec, func(gs *game.GameState, m game.Move) {
		if ply > 0 {
			fmt.Fprintf(out, "\n%d. %s plays %s\n", ply, rec.Moves[ply-1].Player, gs.LastMove)
			fmt.Fprint(out, console.Board(gs, gs.LastMove))
			time.Sleep(delay)
		}
		ply++
	})
	if err != nil {
		return err
	}
	if ply > 0 {
		fmt.Fprintf(out, "\n%d. %s plays %s\n", ply, rec.Moves[ply-1].Player, final.LastMove)
	}
	fmt.Fprint(out, console.Board(final, final.LastMove))
	console.OnFinished(final.Outcome())
	return nil
}
