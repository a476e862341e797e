package ml

import (
	"fmt"
	"os"
	"sync"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"gomoku_go/internal/config"
)

var log = logging.MustGetLogger("ml")

// onnxruntime_go keeps one global environment; sessions share it.
var (
	envMu    sync.Mutex
	envUsers int
)

func acquireEnvironment(libPath string) error {
	envMu.Lock()
	defer envMu.Unlock()
	if envUsers == 0 && !ort.IsInitialized() {
		if libPath != "" {
			ort.SetSharedLibraryPath(libPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return errors.Wrap(err, "ort.InitializeEnvironment")
		}
	}
	envUsers++
	return nil
}

func releaseEnvironment() {
	envMu.Lock()
	defer envMu.Unlock()
	envUsers--
	if envUsers == 0 && ort.IsInitialized() {
		if err := ort.DestroyEnvironment(); err != nil {
			log.Warningf("ort.DestroyEnvironment: %v", err)
		}
	}
}

// ONNXEvaluator evaluates an ONNX model with ONNX Runtime.
type ONNXEvaluator struct {
	path    string
	session *ort.DynamicAdvancedSession
	input   ort.InputOutputInfo
	outputs []ort.InputOutputInfo
	useCUDA bool
	threads int
}

// LoadONNX opens the model artifact and prepares a session for it. Every
// failure is reported as a *ModelLoadError.
func LoadONNX(cfg config.Model) (*ONNXEvaluator, error) {
	fail := func(err error) (*ONNXEvaluator, error) {
		return nil, &ModelLoadError{Path: cfg.Path, Err: err}
	}
	if _, err := os.Stat(cfg.Path); err != nil {
		return fail(err)
	}
	if err := acquireEnvironment(cfg.SharedLibraryPath); err != nil {
		return fail(err)
	}
	e, err := newSession(cfg)
	if err != nil {
		releaseEnvironment()
		return fail(err)
	}
	log.Infof("loaded %s (cuda=%t, threads=%d)", cfg.Path, e.useCUDA, e.threads)
	return e, nil
}

func newSession(cfg config.Model) (*ONNXEvaluator, error) {
	ins, outs, err := ort.GetInputOutputInfo(cfg.Path)
	if err != nil {
		return nil, errors.Wrap(err, "ort.GetInputOutputInfo")
	}
	if len(ins) != 1 {
		return nil, errors.Errorf("model has %d inputs, want 1", len(ins))
	}
	if len(outs) == 0 {
		return nil, errors.New("model has no outputs")
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, errors.Wrap(err, "ort.NewSessionOptions")
	}
	defer opts.Destroy()

	threads := cfg.IntraOpThreads
	if threads == 0 {
		threads = defaultThreads()
	}
	if err := opts.SetIntraOpNumThreads(threads); err != nil {
		return nil, errors.Wrap(err, "SetIntraOpNumThreads")
	}

	useCUDA := cfg.UseCUDA
	if useCUDA {
		useCUDA = appendCUDA(opts)
	}

	outNames := make([]string, len(outs))
	for i, o := range outs {
		outNames[i] = o.Name
	}
	sess, err := ort.NewDynamicAdvancedSession(cfg.Path, []string{ins[0].Name}, outNames, opts)
	if err != nil {
		return nil, errors.Wrap(err, "ort.NewDynamicAdvancedSession")
	}
	return &ONNXEvaluator{
		path:    cfg.Path,
		session: sess,
		input:   ins[0],
		outputs: outs,
		useCUDA: useCUDA,
		threads: threads,
	}, nil
}

// appendCUDA tries the CUDA provider and reports whether it was added.
// Failure falls back to CPU.
func appendCUDA(opts *ort.SessionOptions) bool {
	cuOpts, err := ort.NewCUDAProviderOptions()
	if err != nil {
		log.Warningf("CUDA provider options: %v, using CPU", err)
		return false
	}
	defer cuOpts.Destroy()
	if err := opts.AppendExecutionProviderCUDA(cuOpts); err != nil {
		log.Warningf("CUDA provider: %v, using CPU", err)
		return false
	}
	return true
}

// Evaluate runs the session on one F32 input. Every declared model output is
// returned; non-float outputs come back with DType Other and no data.
func (e *ONNXEvaluator) Evaluate(in Tensor) ([]Tensor, error) {
	if in.DType != F32 {
		return nil, contractErrorf("input is %s, want f32", in)
	}
	input, err := ort.NewTensor(ort.NewShape(in.Shape...), in.Data)
	if err != nil {
		return nil, errors.Wrap(err, "input tensor")
	}
	defer input.Destroy()

	// nil outputs are allocated by ORT and must be destroyed here.
	outs := make([]ort.Value, len(e.outputs))
	if err := e.session.Run([]ort.Value{input}, outs); err != nil {
		return nil, errors.Wrapf(err, "run %s", e.path)
	}
	defer func() {
		for _, v := range outs {
			if v != nil {
				_ = v.Destroy()
			}
		}
	}()

	res := make([]Tensor, 0, len(outs))
	for _, v := range outs {
		if v == nil {
			res = append(res, Tensor{DType: Other})
			continue
		}
		t, ok := v.(*ort.Tensor[float32])
		if !ok {
			res = append(res, Tensor{DType: Other, Shape: []int64(v.GetShape())})
			continue
		}
		data := make([]float32, len(t.GetData()))
		copy(data, t.GetData())
		res = append(res, Tensor{DType: F32, Shape: []int64(t.GetShape()), Data: data})
	}
	log.Debugf("evaluated %s -> %v", in, res)
	return res, nil
}

// Signature describes the model inputs and outputs, one line each.
func (e *ONNXEvaluator) Signature() []string {
	lines := []string{
		fmt.Sprintf("model  %s", e.path),
		fmt.Sprintf("input  %s %v %v", e.input.Name, e.input.DataType, e.input.Dimensions),
	}
	for _, o := range e.outputs {
		lines = append(lines, fmt.Sprintf("output %s %v %v", o.Name, o.DataType, o.Dimensions))
	}
	return lines
}

// Close releases the session and, for the last user, the ORT environment.
func (e *ONNXEvaluator) Close() error {
	if e.session == nil {
		return nil
	}
	err := e.session.Destroy()
	e.session = nil
	releaseEnvironment()
	return err
}
