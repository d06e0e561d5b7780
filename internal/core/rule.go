package core

// lifeRule[cell][neighbours] is the next state under B3/S23.
var lifeRule = [2][9]uint8{
	{0, 0, 0, 1, 0, 0, 0, 0, 0},
	{0, 0, 1, 1, 0, 0, 0, 0, 0},
}

// Rule returns the next state (0 or 1) of a cell with the given state and
// live neighbour count: a live cell survives with 2 or 3 neighbours, a dead
// cell is born with exactly 3.
func Rule(cell, neighbours uint8) uint8 {
	return lifeRule[cell&1][neighbours]
}
