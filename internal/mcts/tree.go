package mcts

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/merlinio2000/ultimate-tic-tac-toe/internal/game"
)

// DefaultNodeCapacity and DefaultEdgeCapacity size the arenas' initial
// backing arrays. The edge:node ratio of 30 is an empirical guess carried
// over from the original engine, scaled down to a size a single process can
// comfortably pre-allocate without blowing up on process start.
const (
	DefaultNodeCapacity = 1 << 19
	DefaultEdgeCapacity = DefaultNodeCapacity * 30
)

// noChild marks an edge slot whose child has not yet been materialised.
const noChild = ^uint32(0)

// Edge is one candidate move out of a node: the move index it represents,
// and the arena index of the child it leads to once explored.
type Edge struct {
	Child uint32
	Move  uint8
}

// Node is one position in the search tree: the game state it represents,
// its terminal outcome (ScoreIndeterminate if play continues there), the
// accumulated Monte Carlo score and visit count, and the slice of Edge
// records (in the arena, addressed by EdgeStart/EdgeCount) representing its
// legal moves. A terminal node (EdgeCount == 0) has no edges at all.
type Node struct {
	State     game.NodeState
	Outcome   game.NodeScore
	Score     int32
	Visits    uint32
	EdgeStart uint32
	EdgeCount uint16
}

// Tree owns the arena-based, memoized Monte Carlo search tree: one node
// arena, one edge arena, and a transposition table collapsing any two paths
// that reach the same NodeState onto the same node. The DAG this forms is
// why a node's edges are identified by (parent, move) rather than by a
// unique tree position.
type Tree struct {
	nodes         []Node
	edges         []Edge
	transposition map[game.NodeState]uint32
	root          uint32
	scratch       []uint32
	rng           *RNG
}

func newTree(rng *RNG) *Tree {
	return &Tree{
		nodes:         make([]Node, 0, DefaultNodeCapacity),
		edges:         make([]Edge, 0, DefaultEdgeCapacity),
		transposition: make(map[game.NodeState]uint32, DefaultNodeCapacity),
		scratch:       make([]uint32, 0, game.NCellsNested),
		rng:           rng,
	}
}

// NewAsPlayer1 starts a tree rooted at the empty board, to be searched by
// the player moving first.
func NewAsPlayer1(rng *RNG) *Tree {
	t := newTree(rng)
	t.root = t.addNode(game.EmptyState(), game.ScoreIndeterminate)
	return t
}

// NewAsPlayer2 starts a tree rooted at the state reached after the
// opponent's opening move, for the player moving second.
func NewAsPlayer2(rng *RNG, firstMove int) *Tree {
	t := newTree(rng)
	state, won := game.EmptyState().ApplyMove(firstMove)
	t.root = t.addNode(state, state.TerminalOutcome(won))
	return t
}

// addNode returns state's arena index, inserting it (and its edge slots, if
// any) first if this is the first time state has been reached.
func (t *Tree) addNode(state game.NodeState, outcome game.NodeScore) uint32 {
	if idx, ok := t.transposition[state]; ok {
		return idx
	}
	idx := uint32(len(t.nodes))
	edgeCount := 0
	if outcome == game.ScoreIndeterminate {
		edgeCount = state.AvailableMoves().CountOnes()
	}
	edgeStart := uint32(len(t.edges))
	for i := 0; i < edgeCount; i++ {
		t.edges = append(t.edges, Edge{Child: noChild})
	}
	t.nodes = append(t.nodes, Node{
		State:     state,
		Outcome:   outcome,
		EdgeStart: edgeStart,
		EdgeCount: uint16(edgeCount),
	})
	t.transposition[state] = idx
	return idx
}

// getOrInsertChild materialises (or looks up) the child reached from
// parentState by playing move k.
func (t *Tree) getOrInsertChild(parentState game.NodeState, k int) uint32 {
	childState, won := parentState.ApplyMove(k)
	return t.addNode(childState, childState.TerminalOutcome(won))
}

// expand runs one selection/expansion/rollout/backpropagation pass rooted
// at nodeIdx and returns the score delta to add to nodeIdx's parent,
// expressed from that parent's previous-player perspective — the classical
// negamax identity: a position's value is the negation of its best
// successor's. A node's score and its parent's score favour opposing
// players, so every branch below returns the negation of whatever it added
// to its own node's score; one sign flip per edge traversal, no more.
//
// All arena accesses go through t.nodes[idx]/t.edges[idx] rather than
// cached pointers, since recursive calls below can append to either arena
// and reallocate its backing array.
func (t *Tree) expand(nodeIdx uint32) int32 {
	t.nodes[nodeIdx].Visits++

	if t.nodes[nodeIdx].EdgeCount == 0 {
		v := t.nodes[nodeIdx].Outcome.ToMonteCarlo()
		t.nodes[nodeIdx].Score += v
		return -v
	}

	edgeStart := t.nodes[nodeIdx].EdgeStart
	edgeCount := t.nodes[nodeIdx].EdgeCount

	t.scratch = t.scratch[:0]
	for i := uint16(0); i < edgeCount; i++ {
		if t.edges[edgeStart+uint32(i)].Child == noChild {
			t.scratch = append(t.scratch, uint32(i))
		}
	}

	if len(t.scratch) > 0 {
		choice := t.scratch[t.rng.UniformExclusive(len(t.scratch))]
		parentState := t.nodes[nodeIdx].State
		available := parentState.AvailableMoves()
		move := available.NthSetBit(int(choice))

		childIdx := t.getOrInsertChild(parentState, move)
		t.edges[edgeStart+choice] = Edge{Child: childIdx, Move: uint8(move)}

		sim := t.nodes[childIdx].State.ToSimulation(t.nodes[childIdx].Outcome)
		simDelta := sim.SimulateRandom(t.rng.Rand())
		t.nodes[childIdx].Score += simDelta
		t.nodes[childIdx].Visits++

		t.nodes[nodeIdx].Score += -simDelta
		return simDelta
	}

	bestLocal := uint16(0)
	bestUCB := math.Inf(-1)
	parentVisits := float64(t.nodes[nodeIdx].Visits)
	for i := uint16(0); i < edgeCount; i++ {
		childIdx := t.edges[edgeStart+uint32(i)].Child
		score := t.nodes[childIdx].Score
		visits := t.nodes[childIdx].Visits
		exploitation := float64(score) / float64(maxUint32(visits, 1))
		exploration := math.Sqrt2 * math.Sqrt(math.Log(parentVisits)/float64(visits))
		ucb := exploitation + exploration
		if ucb > bestUCB {
			bestUCB = ucb
			bestLocal = i
		}
	}

	chosenChild := t.edges[edgeStart+uint32(bestLocal)].Child
	deltaFromChild := t.expand(chosenChild)
	t.nodes[nodeIdx].Score += deltaFromChild
	return -deltaFromChild
}

func maxUint32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// SearchN runs exactly n expansion passes from the root. It neither times
// itself nor polls input.
func (t *Tree) SearchN(n int) {
	for i := 0; i < n; i++ {
		t.expand(t.root)
	}
}

// SearchUntil runs expansion passes from the root until the monotonic clock
// passes deadline, checked once per iteration (so overrun is bounded by the
// cost of a single pass).
func (t *Tree) SearchUntil(deadline time.Time) {
	for time.Now().Before(deadline) {
		t.expand(t.root)
	}
}

// SearchWhile runs expansion passes from the root while flag remains set,
// polled once per iteration — the cooperative-cancellation counterpart to
// SearchUntil.
func (t *Tree) SearchWhile(flag *atomic.Bool) {
	for flag.Load() {
		t.expand(t.root)
	}
}

// BestExploredMove returns the move, among the root's materialised
// children, whose child has the most visits (the robust-child rule), with
// ties broken by edge order.
//
// Contract: at least one of the root's children has been explored.
func (t *Tree) BestExploredMove() int {
	edgeStart := t.nodes[t.root].EdgeStart
	edgeCount := t.nodes[t.root].EdgeCount

	bestLocal := -1
	var bestVisits uint32
	for i := uint16(0); i < edgeCount; i++ {
		e := t.edges[edgeStart+uint32(i)]
		if e.Child == noChild {
			continue
		}
		v := t.nodes[e.Child].Visits
		if bestLocal == -1 || v > bestVisits {
			bestVisits = v
			bestLocal = int(i)
		}
	}
	if bestLocal == -1 {
		panic("mcts: BestExploredMove called with no explored children")
	}
	return int(t.edges[edgeStart+uint32(bestLocal)].Move)
}

// ApplyExploredMove promotes the root to the already-materialised child
// reached by move k.
//
// Contract: such a child exists.
func (t *Tree) ApplyExploredMove(k int) {
	edgeStart := t.nodes[t.root].EdgeStart
	edgeCount := t.nodes[t.root].EdgeCount
	for i := uint16(0); i < edgeCount; i++ {
		e := t.edges[edgeStart+uint32(i)]
		if e.Child != noChild && int(e.Move) == k {
			t.root = e.Child
			return
		}
	}
	panic("mcts: ApplyExploredMove called with an unexplored move")
}

// ApplyMaybeExploredMove promotes the root to the child reached by move k,
// materialising it on the fly if search never visited that edge.
//
// Contract: k must be one of the root's AvailableMoves.
func (t *Tree) ApplyMaybeExploredMove(k int) {
	rootState := t.nodes[t.root].State
	available := rootState.AvailableMoves()
	n := available.And(game.LowBitsMask(k)).CountOnes()

	edgeStart := t.nodes[t.root].EdgeStart
	edgeCount := t.nodes[t.root].EdgeCount
	if uint16(n) >= edgeCount {
		panic("mcts: ApplyMaybeExploredMove called with a move not in the root's available mask")
	}

	e := t.edges[edgeStart+uint32(n)]
	if e.Child == noChild {
		childIdx := t.getOrInsertChild(rootState, k)
		t.edges[edgeStart+uint32(n)] = Edge{Child: childIdx, Move: uint8(k)}
		t.root = childIdx
		return
	}
	t.root = e.Child
}
