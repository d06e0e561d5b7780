package bitboard

import "math/bits"

// Neighbour positions in the mask returned by Neighbors.
const (
	NW = iota
	N
	NE
	W
	E
	SW
	S
	SE
)

// centerBit returns column wi*64+bit of row, or 0 when row is off-board.
func centerBit(row []uint64, wi, bit int) uint64 {
	if row == nil {
		return 0
	}
	return row[wi] >> bit & 1
}

// westBit returns the cell one column left of (wi, bit). At bit 0 it reads
// bit 63 of the previous word; at the left edge it is 0.
func westBit(row []uint64, wi, bit int) uint64 {
	switch {
	case row == nil:
		return 0
	case bit > 0:
		return row[wi] >> (bit - 1) & 1
	case wi > 0:
		return row[wi-1] >> (WordBits - 1)
	}
	return 0
}

// eastBit returns the cell one column right of (wi, bit). At bit 63 it reads
// bit 0 of the next word; at the right edge it is 0.
func eastBit(row []uint64, wi, bit int) uint64 {
	switch {
	case row == nil:
		return 0
	case bit < WordBits-1:
		return row[wi] >> (bit + 1) & 1
	case wi+1 < len(row):
		return row[wi+1] & 1
	}
	return 0
}

// Neighbors returns the eight neighbours of bit `bit` in word wi of cur as a
// mask indexed by NW..SE. prev and next are the rows above and below; pass
// nil for a row beyond the board edge.
func Neighbors(prev, cur, next []uint64, wi, bit int) uint8 {
	return uint8(westBit(prev, wi, bit)<<NW |
		centerBit(prev, wi, bit)<<N |
		eastBit(prev, wi, bit)<<NE |
		westBit(cur, wi, bit)<<W |
		eastBit(cur, wi, bit)<<E |
		westBit(next, wi, bit)<<SW |
		centerBit(next, wi, bit)<<S |
		eastBit(next, wi, bit)<<SE)
}

// NeighborCount returns the number of live neighbours of (wi, bit).
func NeighborCount(prev, cur, next []uint64, wi, bit int) int {
	return bits.OnesCount8(Neighbors(prev, cur, next, wi, bit))
}
