package game

import "github.com/merlinio2000/ultimate-tic-tac-toe/internal/bitops"

// OneBitBoard holds one bit per cell of a single 3x3 sub-board: bit i means
// "cell i is claimed" (by whichever player's occupancy this mask was read
// from). It only knows how to answer "has somebody completed a line".
type OneBitBoard uint16

// HasWon reports whether any of the 8 winning lines is a subset of the
// board's bits.
func (b OneBitBoard) HasWon() bool {
	for _, mask := range winnerMasks1Bit {
		if uint16(b)&mask == mask {
			return true
		}
	}
	return false
}

// SetCell returns the board with cell i additionally set.
func (b OneBitBoard) SetCell(i int) OneBitBoard {
	return b | (1 << uint(i))
}

// CountOwned returns how many of the 9 super-board cells are set, i.e. how
// many sub-boards this mask records as won.
func (b OneBitBoard) CountOwned() int {
	return bitops.CountOnes32(uint32(b))
}
