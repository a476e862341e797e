package game

const (
	GridSize  = Size // 9x9 planes
	PlaneCnt  = 2    // [X, O]
	TensorLen = PlaneCnt * GridSize * GridSize
)

// EncodeBoardTensor encodes the position as a [162]float32 tensor.
// plane 0: X stones, plane 1: O stones. Everything else is zero.
func EncodeBoardTensor(b CellReader) [TensorLen]float32 {
	var t [TensorLen]float32
	const plane = GridSize * GridSize
	for idx := 0; idx < plane; idx++ {
		switch b.Cell(idx) {
		case PlayerX:
			t[idx] = 1 // plane 0
		case PlayerO:
			t[plane+idx] = 1 // plane 1
		}
	}
	return t
}
