package game

import "github.com/merlinio2000/ultimate-tic-tac-toe/internal/bitops"

// hiMask81 truncates the high half to the 17 bits (bits 64..80) that belong
// to an 81-bit BoardMajorBitset; everything above that is never meaningful.
const hiMask81 = (1 << (NCellsNested - 64)) - 1

// BoardMajorBitset is an 81-bit mask over all cells of the nested board,
// split into a low 64-bit half (cells 0..63) and a high half (cells 64..80,
// held in the low 17 bits of hi). The invariant "bits above 80 are zero" is
// enforced by every constructor.
type BoardMajorBitset struct {
	lo, hi uint64
}

// NewBoardMajorBitset truncates to 81 bits, discarding anything higher.
func NewBoardMajorBitset(lo, hi uint64) BoardMajorBitset {
	return BoardMajorBitset{lo: lo, hi: hi & hiMask81}
}

// FullBoard materialises the 9-bit block mask for sub-board idx (the cells
// of one sub-board, all set).
func FullBoard(boardIdx int) BoardMajorBitset {
	lo, hi := place9(0b1_1111_1111, boardIdx*NCells)
	return BoardMajorBitset{lo: lo, hi: hi}
}

// place9 positions a <=9-bit pattern at bit offset shift within a 128-bit
// word represented as (lo, hi) 64-bit halves (hi holding bits 64..127).
func place9(pattern uint64, shift int) (lo, hi uint64) {
	if shift < 64 {
		lo = pattern << uint(shift)
		hi = pattern >> uint(64-shift)
		return lo, hi
	}
	return 0, pattern << uint(shift-64)
}

// IsEmpty reports whether no bit is set.
func (b BoardMajorBitset) IsEmpty() bool {
	return b.lo == 0 && b.hi == 0
}

// Not returns the bitwise complement, truncated back to 81 bits.
func (b BoardMajorBitset) Not() BoardMajorBitset {
	return NewBoardMajorBitset(^b.lo, ^b.hi)
}

// And returns the bitwise intersection.
func (b BoardMajorBitset) And(other BoardMajorBitset) BoardMajorBitset {
	return BoardMajorBitset{lo: b.lo & other.lo, hi: b.hi & other.hi}
}

// Or returns the bitwise union.
func (b BoardMajorBitset) Or(other BoardMajorBitset) BoardMajorBitset {
	return BoardMajorBitset{lo: b.lo | other.lo, hi: b.hi | other.hi}
}

// SetBit returns the set with cell k additionally set.
func (b BoardMajorBitset) SetBit(k int) BoardMajorBitset {
	lo, hi := place9(1, k) // a single bit is a 1-bit "pattern"; place9 works for any width <= 9
	return BoardMajorBitset{lo: b.lo | lo, hi: b.hi | hi}
}

// FillBoard returns the set with the entire 9-bit block of sub-board idx set
// (sealing it: no further moves will be counted available there).
func (b BoardMajorBitset) FillBoard(boardIdx int) BoardMajorBitset {
	return b.Or(FullBoard(boardIdx))
}

// LowBitsMask returns the mask of the lowest k cell indices (0..k-1 set).
// Used to rank a known move among the ascending-order set bits of another
// mask (popcount of the intersection gives the move's position).
func LowBitsMask(k int) BoardMajorBitset {
	if k <= 0 {
		return BoardMajorBitset{}
	}
	if k >= 64 {
		hiBits := k - 64
		return BoardMajorBitset{lo: ^uint64(0), hi: ((uint64(1) << uint(hiBits)) - 1) & hiMask81}
	}
	return BoardMajorBitset{lo: (uint64(1) << uint(k)) - 1}
}

// SubBoard extracts the 9 bits belonging to sub-board boardIdx as a
// OneBitBoard, regardless of whether that block straddles the lo/hi split.
func (b BoardMajorBitset) SubBoard(boardIdx int) OneBitBoard {
	shift := boardIdx * NCells
	var bits uint64
	if shift < 64 {
		bits = b.lo>>uint(shift) | b.hi<<uint(64-shift)
	} else {
		bits = b.hi >> uint(shift-64)
	}
	return OneBitBoard(bits & 0x1FF)
}

// CountOnes returns the number of set bits.
func (b BoardMajorBitset) CountOnes() int {
	return bitops.CountOnes128(b.lo, b.hi)
}

// NthSetBit returns the index of the n-th (0-based) set bit.
//
// Contract: n < b.CountOnes().
func (b BoardMajorBitset) NthSetBit(n int) int {
	return bitops.NthSetBitIndex128(b.lo, b.hi, n)
}

// Iter returns an iterator over the set bits of b, ascending by cell index.
func (b BoardMajorBitset) Iter() *BitsetIter {
	return &BitsetIter{remaining: b}
}

// BitsetIter is a restartable, finite, ascending-order iterator of set bits
// in a BoardMajorBitset.
type BitsetIter struct {
	remaining BoardMajorBitset
}

// Next returns the next set cell index and true, or (0, false) when
// exhausted.
func (it *BitsetIter) Next() (int, bool) {
	if it.remaining.IsEmpty() {
		return 0, false
	}
	idx := bitops.TrailingZeros128(it.remaining.lo, it.remaining.hi)
	// clear the lowest set bit
	if it.remaining.lo != 0 {
		it.remaining.lo &= it.remaining.lo - 1
	} else {
		it.remaining.hi &= it.remaining.hi - 1
	}
	return idx, true
}
