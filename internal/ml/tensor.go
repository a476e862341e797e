// Package ml wraps the policy network behind a small tensor contract.
package ml

import (
	"fmt"

	"gomoku_go/internal/game"
)

const (
	// BatchSize is the only batch size the demo ever evaluates.
	BatchSize = 1
	// PolicyOutDim is the number of per-cell scores the network must produce.
	PolicyOutDim = game.Cells
)

// DType is the element type of a Tensor.
type DType int

const (
	F32 DType = iota
	Other
)

func (d DType) String() string {
	if d == F32 {
		return "f32"
	}
	return "other"
}

// Tensor is a dense tensor. Data is only populated for F32.
type Tensor struct {
	DType DType
	Shape []int64
	Data  []float32
}

// Size is the product of the shape's dimensions.
func (t Tensor) Size() int64 {
	n := int64(1)
	for _, d := range t.Shape {
		n *= d
	}
	return n
}

func (t Tensor) String() string {
	return fmt.Sprintf("%s%v", t.DType, t.Shape)
}

// Evaluator runs the network on one input tensor.
type Evaluator interface {
	Evaluate(input Tensor) ([]Tensor, error)
}

// FeatureInput wraps an encoded board as the [1,162] F32 network input.
func FeatureInput(features []float32) Tensor {
	return Tensor{
		DType: F32,
		Shape: []int64{BatchSize, int64(len(features))},
		Data:  features,
	}
}

// DecodePolicy checks the outputs hold exactly one F32 tensor of 81 scores
// ([1,81] or [81]) and returns a copy of those scores.
func DecodePolicy(outputs []Tensor) ([]float32, error) {
	if len(outputs) != 1 {
		return nil, contractErrorf("got %d output tensors, want 1", len(outputs))
	}
	out := outputs[0]
	if out.DType != F32 {
		return nil, contractErrorf("output is %s, want f32", out)
	}
	if out.Size() != PolicyOutDim || len(out.Data) != PolicyOutDim {
		return nil, contractErrorf("output %s holds %d values, want %d", out, len(out.Data), PolicyOutDim)
	}
	policy := make([]float32, PolicyOutDim)
	copy(policy, out.Data)
	return policy, nil
}
