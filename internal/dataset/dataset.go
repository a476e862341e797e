// Package dataset writes encoded positions as CSV training rows.
//
// A row is TensorLen feature columns (0 or 1), the chosen cell index, the
// final result z from the mover's point of view (+1, 0, -1) and a game id.
package dataset

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/op/go-logging"
	"github.com/pkg/errors"

	"gomoku_go/internal/game"
)

var log = logging.MustGetLogger("dataset")

// Columns is the number of fields per row.
const Columns = game.TensorLen + 3

// Sample is one position and the move played from it.
type Sample struct {
	Features [game.TensorLen]float32
	Move     game.Move
	Mover    game.CellState
}

// Z returns the result for mover: +1 win, -1 loss, 0 draw or unfinished.
func Z(outcome game.Outcome, mover game.CellState) int {
	switch outcome.Winner() {
	case game.Empty:
		return 0
	case mover:
		return 1
	}
	return -1
}

// Row renders one CSV row.
func Row(features []float32, moveIdx, z int, gameID string) []string {
	row := make([]string, 0, Columns)
	for _, v := range features {
		if v == 0 {
			row = append(row, "0")
		} else {
			row = append(row, "1")
		}
	}
	return append(row, strconv.Itoa(moveIdx), strconv.Itoa(z), gameID)
}

// Rows renders a finished game's samples.
func Rows(samples []Sample, outcome game.Outcome, gameID string) [][]string {
	rows := make([][]string, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, Row(s.Features[:], s.Move.Index(), Z(outcome, s.Mover), gameID))
	}
	return rows
}

// Writer is a CSV writer safe for concurrent WriteGame calls.
type Writer struct {
	mu sync.Mutex
	f  *os.File
	w  *csv.Writer
}

// Open repairs path and opens it for appending. It returns the writer and the
// number of complete rows already present.
func Open(path string) (*Writer, int, error) {
	done, err := Repair(path, Columns)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, 0, errors.Wrap(err, "open csv")
	}
	return &Writer{f: f, w: csv.NewWriter(f)}, done, nil
}

// WriteGame appends all rows of one game and flushes.
func (w *Writer) WriteGame(rows [][]string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.w.WriteAll(rows); err != nil {
		return errors.Wrap(err, "write csv")
	}
	return nil
}

// Close flushes and closes the file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		_ = w.f.Close()
		return err
	}
	return w.f.Close()
}

// Repair checks the tail of path and truncates a trailing partial row left by
// an interrupted run. It returns the number of complete rows.
func Repair(path string, expectCols int) (int, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return 0, errors.Wrap(err, "repair open")
	}
	defer f.Close()

	var offset int64
	rdr := bufio.NewReader(f)
	lines := 0
	for {
		line, err := rdr.ReadBytes('\n')
		if err == io.EOF {
			if len(line) == 0 {
				return lines, nil
			}
			break // no newline: partial row
		} else if err != nil {
			return 0, errors.Wrap(err, "read csv")
		}
		if countCSVColumns(line) != expectCols {
			break
		}
		offset += int64(len(line))
		lines++
	}
	if err := f.Truncate(offset); err != nil {
		return 0, errors.Wrap(err, "truncate")
	}
	log.Warningf("found a partial row, truncated %s to %d bytes (%d rows)", path, offset, lines)
	return lines, nil
}

// countCSVColumns counts comma separated fields; values never contain commas.
func countCSVColumns(b []byte) int {
	n := 1
	for _, c := range b {
		if c == ',' {
			n++
		}
	}
	return n
}
