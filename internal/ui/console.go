// Package ui renders boards and policies for the terminal and as images.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"gomoku_go/internal/game"
	"gomoku_go/internal/play"
)

// Console prints boards and results, coloured when the terminal allows it.
type Console struct {
	out *termenv.Output
	w   io.Writer
}

// NewConsole writes to w. With color false all styling is dropped.
func NewConsole(w io.Writer, color bool) *Console {
	var opts []termenv.OutputOption
	if !color {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &Console{out: termenv.NewOutput(w, opts...), w: w}
}

func (c *Console) stone(s game.CellState, last bool) string {
	st := c.out.String(s.String())
	switch s {
	case game.PlayerX:
		st = st.Foreground(c.out.Color("1"))
	case game.PlayerO:
		st = st.Foreground(c.out.Color("4"))
	default:
		st = st.Faint()
	}
	if last {
		st = st.Bold().Underline()
	}
	return st.String()
}

// Board renders the position with labels; the last move is highlighted.
func (c *Console) Board(pos game.CellReader, last game.Move) string {
	var sb strings.Builder
	for row := game.Size - 1; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d", row+1)
		for col := 0; col < game.Size; col++ {
			m := game.MoveAt(row, col)
			sb.WriteByte(' ')
			sb.WriteString(c.stone(pos.Cell(m.Index()), m == last))
		}
		sb.WriteByte('\n')
	}
	sb.WriteByte(' ')
	for col := 0; col < game.Size; col++ {
		fmt.Fprintf(&sb, " %c", 'a'+col)
	}
	sb.WriteByte('\n')
	return sb.String()
}

// PrintPolicy prints the 9x9 policy art under a title.
func (c *Console) PrintPolicy(title string, scores []float32) {
	fmt.Fprintln(c.w, c.out.String(title).Bold())
	fmt.Fprint(c.w, PolicyArt(scores, game.Size))
}

// PrintLines prints lines verbatim.
func (c *Console) PrintLines(lines []string) {
	for _, l := range lines {
		fmt.Fprintln(c.w, l)
	}
}

// OnMove implements play.Observer.
func (c *Console) OnMove(ev play.MoveEvent) {
	fmt.Fprintf(c.w, "\n%d. %s (%s) plays %s\n", ev.Ply, c.stone(ev.Player, false), ev.Source, ev.Move)
	fmt.Fprint(c.w, c.Board(ev.Position, ev.Move))
}

// OnFinished implements play.Observer.
func (c *Console) OnFinished(outcome game.Outcome) {
	if outcome.Terminal() {
		fmt.Fprintln(c.w, c.out.String("result: "+outcome.String()).Bold())
		return
	}
	fmt.Fprintln(c.w, "game abandoned")
}

var _ play.Observer = (*Console)(nil)
