package game

import "math/rand"

// Simulation is the mutable rollout mirror of NodeState: the same
// occupancy/super-board/forced-board fields, plus a predetermined outcome a
// caller may have already computed (so a rollout that starts from a state
// Tree already knows is terminal skips straight to scoring it, instead of
// re-simulating a position with zero available moves).
type Simulation struct {
	p1Occ, p2Occ  BoardMajorBitset
	p1Super       OneBitBoard
	p2Super       OneBitBoard
	active        Player
	forcedBoard   uint8
	predetermined NodeScore
}

func (s Simulation) occBySide(p Player) BoardMajorBitset {
	if p == Player1 {
		return s.p1Occ
	}
	return s.p2Occ
}

func (s Simulation) superBySide(p Player) OneBitBoard {
	if p == Player1 {
		return s.p1Super
	}
	return s.p2Super
}

// availableInBoardOrFallback mirrors NodeState.AvailableMoves: restrict to
// ForcedBoard, falling back to the whole grid when that sub-board has no
// free cells left.
func (s Simulation) availableInBoardOrFallback() BoardMajorBitset {
	available := s.p1Occ.Or(s.p2Occ).Not()
	if s.forcedBoard == NoMoveForced {
		return available
	}
	restricted := FullBoard(int(s.forcedBoard)).And(available)
	if restricted.IsEmpty() {
		return available
	}
	return restricted
}

// applyMove mutates s in place the same way NodeState.ApplyMove does,
// returning whether the move completed the mover's super-board.
func (s *Simulation) applyMove(k int) (won bool) {
	mover := s.active
	board := k / NCells

	moverOcc := s.occBySide(mover).SetBit(k)
	hasWonSubBoard := moverOcc.SubBoard(board).HasWon()
	moverSuper := s.superBySide(mover)
	if hasWonSubBoard {
		moverOcc = moverOcc.FillBoard(board)
		moverSuper = moverSuper.SetCell(board)
	}

	if mover == Player1 {
		s.p1Occ, s.p1Super = moverOcc, moverSuper
	} else {
		s.p2Occ, s.p2Super = moverOcc, moverSuper
	}
	s.active = mover.Other()
	s.forcedBoard = uint8(k % NCells)

	return hasWonSubBoard && moverSuper.HasWon()
}

// decideDraw resolves a drawn game (board exhausted, nobody completed the
// super-board) by comparing sub-board counts, with the result favouring
// inFavorOf.
func (s Simulation) decideDraw(inFavorOf Player) NodeScore {
	return decideDraw(s.superBySide(inFavorOf), s.superBySide(inFavorOf.Other()))
}

// SimulateRandom plays s out with uniform-random move choice until someone
// completes the super-board or the grid is exhausted, and returns the
// signed outcome favouring the player who moved into s, i.e. the opponent of
// the player about to move when s was constructed (s's "previous player",
// per the negamax sign convention Tree relies on).
//
// If s already carries a predetermined outcome, the rollout is skipped
// entirely and that outcome's signed value is returned directly.
func (s Simulation) SimulateRandom(rng *rand.Rand) int32 {
	if s.predetermined != ScoreIndeterminate {
		return s.predetermined.ToMonteCarlo()
	}

	initialPlayer := s.active
	available := s.availableInBoardOrFallback()
	if available.IsEmpty() {
		panic("game: SimulateRandom called from a terminal state")
	}

	var won bool
	for !won && !available.IsEmpty() {
		nMoves := available.CountOnes()
		n := rng.Intn(nMoves)
		move := available.NthSetBit(n)
		won = s.applyMove(move)
		available = s.availableInBoardOrFallback()
	}

	if won {
		loser := s.active
		if loser == initialPlayer {
			return 1
		}
		return -1
	}
	return s.decideDraw(initialPlayer.Other()).ToMonteCarlo()
}
