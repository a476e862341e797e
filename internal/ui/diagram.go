package ui

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"

	"gomoku_go/internal/game"
)

var log = logging.MustGetLogger("ui")

const (
	cellPx   = 24
	marginPx = 12
	linePx   = 15 // basicfont.Face7x13 height plus leading
)

// heatmap draws scores as a Size x Size grayscale image, row 9 on top.
func heatmap(scores []float32) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, game.Size, game.Size))
	lo, hi := scoreRange(scores)
	for i, s := range scores {
		if i >= game.Cells {
			break
		}
		m := game.Move(i)
		v := normalize(float64(s), lo, hi)
		img.SetGray(m.Col(), game.Size-1-m.Row(), color.Gray{Y: uint8(math.Round(v * 255))})
	}
	return img
}

// RenderDiagnostic lays out the policy heat map with column labels and the
// text lines underneath.
func RenderDiagnostic(lines []string, scores []float32) *image.RGBA {
	gridPx := game.Size * cellPx
	w := gridPx
	for _, l := range lines {
		w = max(w, font.MeasureString(basicfont.Face7x13, l).Ceil())
	}
	w += 2 * marginPx
	h := marginPx + gridPx + linePx + marginPx + len(lines)*linePx + marginPx

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	grid := image.Rect(marginPx, marginPx, marginPx+gridPx, marginPx+gridPx)
	src := heatmap(scores)
	draw.NearestNeighbor.Scale(dst, grid, src, src.Bounds(), draw.Src, nil)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
	}
	y := grid.Max.Y + linePx
	for col := 0; col < game.Size; col++ {
		d.Dot = fixed.P(grid.Min.X+col*cellPx+cellPx/2-3, y)
		d.DrawString(string(rune('a' + col)))
	}
	y += marginPx
	for _, l := range lines {
		y += linePx
		d.Dot = fixed.P(marginPx, y)
		d.DrawString(l)
	}
	return dst
}

// encodeImage picks the encoder from the file extension; PNG by default.
func encodeImage(w io.Writer, path string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return png.Encode(w, img)
}

// WriteDiagnostic renders the diagnostic image to path.
func WriteDiagnostic(path string, lines []string, scores []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create diagram")
	}
	if err := encodeImage(f, path, RenderDiagnostic(lines, scores)); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Infof("wrote %s", path)
	return nil
}
