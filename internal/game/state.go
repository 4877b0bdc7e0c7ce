package game

// Player identifies a side. The zero value is the player to move first.
type Player uint8

const (
	Player1 Player = iota
	Player2
)

// Other returns the opposing player.
func (p Player) Other() Player {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// NodeScore is a terminal-outcome tag, stated from the perspective of
// whichever player the caller names (Simulation uses it to mean "favouring
// the previous player", the same convention negamax backpropagation relies
// on). ScoreIndeterminate means "not known to be terminal without playing it
// out".
type NodeScore uint8

const (
	ScoreIndeterminate NodeScore = iota
	ScoreLoss
	ScoreDraw
	ScoreWin
)

// ToMonteCarlo converts a terminal score into the signed constant Tree
// backpropagation accumulates: +1 win, 0 draw, -1 loss.
//
// Contract: s must not be ScoreIndeterminate.
func (s NodeScore) ToMonteCarlo() int32 {
	switch s {
	case ScoreWin:
		return 1
	case ScoreDraw:
		return 0
	case ScoreLoss:
		return -1
	default:
		panic("game: ToMonteCarlo called on indeterminate score")
	}
}

// NodeState is the immutable, memoizable description of a position: which
// cells each player occupies, which sub-boards each player has completed,
// which sub-board (if any) the next move is forced into, and whose turn it
// is. Two NodeState values that compare equal represent the same position
// and collapse to the same arena slot, so NodeState carries no derived or
// search-specific data (it is not itself tagged with a terminal score —
// callers derive that from AvailableMoves and the bool ApplyMove returns).
type NodeState struct {
	P1Occ, P2Occ     BoardMajorBitset
	P1Super, P2Super OneBitBoard
	ForcedBoard      uint8
	Active           Player
}

// EmptyState returns the starting position: no cells claimed, free choice
// of sub-board, Player1 to move.
func EmptyState() NodeState {
	return NodeState{ForcedBoard: NoMoveForced, Active: Player1}
}

func (s NodeState) occBySide(p Player) BoardMajorBitset {
	if p == Player1 {
		return s.P1Occ
	}
	return s.P2Occ
}

func (s NodeState) superBySide(p Player) OneBitBoard {
	if p == Player1 {
		return s.P1Super
	}
	return s.P2Super
}

// HasWon reports whether player has completed the super-board.
func (s NodeState) HasWon(player Player) bool {
	return s.superBySide(player).HasWon()
}

// AvailableMoves returns the cells a legal move can be played on. When
// ForcedBoard restricts play to one sub-board but that sub-board no longer
// has free cells (because it was won or filled), the constraint lifts and
// any unclaimed cell anywhere on the grid becomes available — mirroring the
// rule that a closed sub-board sends the opponent "free choice" instead.
func (s NodeState) AvailableMoves() BoardMajorBitset {
	available := s.P1Occ.Or(s.P2Occ).Not()
	if s.ForcedBoard == NoMoveForced {
		return available
	}
	restricted := FullBoard(int(s.ForcedBoard)).And(available)
	if restricted.IsEmpty() {
		return available
	}
	return restricted
}

// ApplyMove plays move k for s.Active and returns the resulting state along
// with whether that move completed the super-board for the mover.
//
// Contract: k must be one of the bits AvailableMoves reports.
//
//  1. mark cell k in the mover's occupancy;
//  2. re-derive the mover's view of the affected sub-board and test it for a
//     completed line;
//  3. if won, fill the rest of that sub-board in the mover's own occupancy
//     (so it reads as fully occupied for availability purposes without a
//     separate "closed" field) and record it in the mover's super-board mask;
//  4. set the forced sub-board for the opponent to k's intra-board index,
//     unconditionally — AvailableMoves resolves the "already decided" case;
//  5. report whether the mover's super-board mask now has a winning line.
func (s NodeState) ApplyMove(k int) (child NodeState, won bool) {
	mover := s.Active
	board := k / NCells

	child = s
	child.Active = mover.Other()
	child.ForcedBoard = uint8(k % NCells)

	moverOcc := s.occBySide(mover).SetBit(k)
	hasWonSubBoard := moverOcc.SubBoard(board).HasWon()
	moverSuper := s.superBySide(mover)
	if hasWonSubBoard {
		moverOcc = moverOcc.FillBoard(board)
		moverSuper = moverSuper.SetCell(board)
	}

	if mover == Player1 {
		child.P1Occ, child.P1Super = moverOcc, moverSuper
	} else {
		child.P2Occ, child.P2Super = moverOcc, moverSuper
	}

	won = hasWonSubBoard && moverSuper.HasWon()
	return child, won
}

// TerminalOutcome returns the terminal score of s, a state just produced by
// ApplyMove, from the perspective of whoever made that move (s.Active's
// opponent) — ScoreIndeterminate if the game continues. won must be the
// bool ApplyMove returned for this same transition.
func (s NodeState) TerminalOutcome(won bool) NodeScore {
	if won {
		return ScoreWin
	}
	if !s.AvailableMoves().IsEmpty() {
		return ScoreIndeterminate
	}
	mover := s.Active.Other()
	return decideDraw(s.superBySide(mover), s.superBySide(mover.Other()))
}

// ToSimulation converts s into the mutable rollout mirror Simulation uses,
// carrying forward any predetermined terminal outcome the caller already
// knows (ScoreIndeterminate if none).
func (s NodeState) ToSimulation(predetermined NodeScore) Simulation {
	return Simulation{
		p1Occ:         s.P1Occ,
		p2Occ:         s.P2Occ,
		p1Super:       s.P1Super,
		p2Super:       s.P2Super,
		active:        s.Active,
		forcedBoard:   s.ForcedBoard,
		predetermined: predetermined,
	}
}

// decideDraw applies the tiebreak for a fully-decided position with no
// winning line for either side: whoever closed more sub-boards wins the
// draw, else it is a true draw. The returned score favours inFavorOf.
func decideDraw(inFavorOf, other OneBitBoard) NodeScore {
	switch {
	case inFavorOf.CountOwned() > other.CountOwned():
		return ScoreWin
	case inFavorOf.CountOwned() < other.CountOwned():
		return ScoreLoss
	default:
		return ScoreDraw
	}
}
