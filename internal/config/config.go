// Package config holds the demo's defaults and applies environment overrides.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Environment variables recognised by FromEnv.
const (
	EnvModelPath   = "GOMOKU_ONNX_PATH"
	EnvDiagramPath = "GOMOKU_DIAGRAM_PATH"
	EnvSharedLib   = "ONNXRUNTIME_SHARED_LIBRARY_PATH"
	EnvUseCUDA     = "GOMOKU_ONNX_CUDA"
	EnvThreads     = "GOMOKU_ONNX_THREADS"
	EnvTieBreak    = "GOMOKU_TIE_BREAK"
	EnvSeed        = "GOMOKU_SEED"
	EnvLogLevel    = "GOMOKU_LOG_LEVEL"
	EnvRecordDir   = "GOMOKU_RECORD_DIR"
)

// Model configures how the network artifact is loaded.
type Model struct {
	Path              string
	SharedLibraryPath string
	UseCUDA           bool
	IntraOpThreads    int // 0 picks the physical core count
}

// Config is the full demo configuration.
type Config struct {
	Model       Model
	DiagramPath string // empty disables the diagnostic image
	TieBreak    string // first | last | random
	Seed        int64
	LogLevel    string
	RecordDir   string // empty disables game records
}

// Default returns the built-in configuration: the model is read from a fixed
// relative path next to the working directory.
func Default() Config {
	return Config{
		Model: Model{
			Path: "./model.onnx",
		},
		DiagramPath: "./model.png",
		TieBreak:    "first",
		Seed:        1,
		LogLevel:    "WARNING",
	}
}

// FromEnv returns Default with every set environment variable applied.
func FromEnv() (Config, error) {
	cfg := Default()
	return cfg, cfg.apply(os.LookupEnv)
}

func (c *Config) apply(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvModelPath); ok && v != "" {
		c.Model.Path = v
	}
	if v, ok := lookup(EnvDiagramPath); ok {
		c.DiagramPath = v
	}
	if v, ok := lookup(EnvSharedLib); ok {
		c.Model.SharedLibraryPath = v
	}
	if v, ok := lookup(EnvUseCUDA); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvUseCUDA)
		}
		c.Model.UseCUDA = b
	}
	if v, ok := lookup(EnvThreads); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvThreads)
		}
		if n < 0 {
			return errors.Errorf("%s: negative thread count %d", EnvThreads, n)
		}
		c.Model.IntraOpThreads = n
	}
	if v, ok := lookup(EnvTieBreak); ok && v != "" {
		v = strings.ToLower(v)
		switch v {
		case "first", "last", "random":
			c.TieBreak = v
		default:
			return errors.Errorf("%s: unknown tie-break %q", EnvTieBreak, v)
		}
	}
	if v, ok := lookup(EnvSeed); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvSeed)
		}
		c.Seed = n
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToUpper(v)
	}
	if v, ok := lookup(EnvRecordDir); ok {
		c.RecordDir = v
	}
	return nil
}
