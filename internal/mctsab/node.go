package mctsab

import (
	"sync"

	"commanderchess/internal/rules"
)

// Node is one level of the two-level PUCT tree: the root's children are
// legal root moves (level 1), and a level-1 child's own children (level 2)
// are that move's reply moves, expanded lazily once the level-1 child has
// been visited at least twice. Modeled on the teacher's MCTSNode
// (internal/mcts/node.go), trimmed to the two-level shape this spec calls
// for instead of an unbounded recursive tree.
type Node struct {
	mu sync.Mutex

	Move     rules.Move
	NextPla  rules.Side // side to move at this node
	Children map[rules.Move]*Node
	Prior    float64

	Visits      int64
	ValueSum    float64 // accumulated value from NextPla's perspective
	VirtualLoss int32

	Expanded bool
}

func newNode(mv rules.Move, side rules.Side, prior float64) *Node {
	return &Node{Move: mv, NextPla: side, Prior: prior}
}

// Q returns the node's mean value from its own NextPla's perspective.
func (n *Node) Q() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Visits == 0 {
		return 0
	}
	return n.ValueSum / float64(n.Visits)
}

func (n *Node) record(value float64) {
	n.mu.Lock()
	n.Visits++
	n.ValueSum += value
	n.mu.Unlock()
}

func (n *Node) addVirtualLoss(delta int32) {
	n.mu.Lock()
	n.VirtualLoss += delta
	n.mu.Unlock()
}

func (n *Node) snapshot() (visits int64, valueSum float64, virtualLoss int32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.Visits, n.ValueSum, int32(n.VirtualLoss)
}
