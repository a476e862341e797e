package ml

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrModelLoad matches every *ModelLoadError.
	ErrModelLoad = errors.New("model load failed")
	// ErrInferenceContract matches every *InferenceContractError.
	ErrInferenceContract = errors.New("inference contract violated")
)

// ModelLoadError reports a missing or unusable model artifact.
type ModelLoadError struct {
	Path string
	Err  error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("load model %s: %v", e.Path, e.Err)
}

func (e *ModelLoadError) Unwrap() error { return e.Err }

func (e *ModelLoadError) Is(target error) bool { return target == ErrModelLoad }

// InferenceContractError reports network outputs of the wrong arity, type or size.
type InferenceContractError struct {
	Reason string
}

func (e *InferenceContractError) Error() string {
	return "inference contract: " + e.Reason
}

func (e *InferenceContractError) Is(target error) bool { return target == ErrInferenceContract }

func contractErrorf(format string, args ...any) error {
	return &InferenceContractError{Reason: fmt.Sprintf(format, args...)}
}
