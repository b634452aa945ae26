package eval

import (
	"log"
	"sync"

	"commanderchess/internal/rules"
)

var webgpuNoticeOnce sync.Once

// BatchEvaluate scores every position in positions, routing through the
// CPU evaluator regardless of backend — there is no GPU kernel behind
// BackendWebGPU, only the batching shape the MCTS-AB leaf blend expects.
// The first call with BackendWebGPU logs a one-time notice, the same
// shape as the teacher's NN backend-selection logging, so a caller that
// asked for it isn't left wondering why nothing changed.
func BatchEvaluate(backend Backend, positions []*rules.Position, contempt int) []int {
	if backend == BackendWebGPU {
		webgpuNoticeOnce.Do(func() {
			log.Printf("eval: webgpu backend requested, routing batch of %d through the CPU evaluator", len(positions))
		})
	}
	out := make([]int, len(positions))
	for i, pos := range positions {
		out[i] = Evaluate(pos, contempt)
	}
	return out
}
