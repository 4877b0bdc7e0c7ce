package game

import (
	"math/rand"
	"testing"
)

func newSimulation(p1Super, p2Super OneBitBoard, active Player) Simulation {
	return Simulation{
		p1Super:     p1Super,
		p2Super:     p2Super,
		active:      active,
		forcedBoard: NoMoveForced,
	}
}

func TestSimulationDecideDrawWin(t *testing.T) {
	s := newSimulation(0b000011011, 0b100100100, Player1) // P1: 4 boards, P2: 3 boards
	if got := s.decideDraw(Player1); got != ScoreWin {
		t.Errorf("decideDraw(Player1) = %v, want ScoreWin", got)
	}
	if got := s.decideDraw(Player2); got != ScoreLoss {
		t.Errorf("decideDraw(Player2) = %v, want ScoreLoss", got)
	}
}

func TestSimulationDecideDrawLoss(t *testing.T) {
	s := newSimulation(0b000000011, 0b100100100, Player1) // P1: 2 boards, P2: 3 boards
	if got := s.decideDraw(Player1); got != ScoreLoss {
		t.Errorf("decideDraw(Player1) = %v, want ScoreLoss", got)
	}
	if got := s.decideDraw(Player2); got != ScoreWin {
		t.Errorf("decideDraw(Player2) = %v, want ScoreWin", got)
	}
}

func TestSimulationDecideDrawDraw(t *testing.T) {
	s := newSimulation(0b000000111, 0b000111000, Player1) // P1: 3 boards, P2: 3 boards
	if got := s.decideDraw(Player1); got != ScoreDraw {
		t.Errorf("decideDraw(Player1) = %v, want ScoreDraw", got)
	}
	if got := s.decideDraw(Player2); got != ScoreDraw {
		t.Errorf("decideDraw(Player2) = %v, want ScoreDraw", got)
	}
}

func TestSimulateRandomHonoursPredetermined(t *testing.T) {
	s := EmptyState().ToSimulation(ScoreWin)
	rng := rand.New(rand.NewSource(1))
	if got := s.SimulateRandom(rng); got != 1 {
		t.Errorf("SimulateRandom with predetermined ScoreWin = %d, want 1", got)
	}

	s = EmptyState().ToSimulation(ScoreLoss)
	if got := s.SimulateRandom(rng); got != -1 {
		t.Errorf("SimulateRandom with predetermined ScoreLoss = %d, want -1", got)
	}
}

func TestSimulateRandomTerminatesAndScoresInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		s := EmptyState().ToSimulation(ScoreIndeterminate)
		score := s.SimulateRandom(rng)
		if score != -1 && score != 0 && score != 1 {
			t.Fatalf("SimulateRandom returned out-of-range score %d", score)
		}
	}
}

func TestSimulateRandomPanicsFromTerminalState(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when simulating from a state with no available moves")
		}
	}()

	var full BoardMajorBitset
	for board := 0; board < NCells; board++ {
		full = full.Or(FullBoard(board))
	}
	s := Simulation{p1Occ: full, forcedBoard: NoMoveForced}
	rng := rand.New(rand.NewSource(1))
	s.SimulateRandom(rng)
}
