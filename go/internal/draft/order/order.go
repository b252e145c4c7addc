// Package order implements snake-draft turn arithmetic. Everything here is
// a pure function of (pickNumber, teamCount); callers guarantee
// pickNumber >= 1 and teamCount >= 1.
package order

// RoundOf returns the 1-based round containing the overall pick number.
func RoundOf(pickNumber, teamCount int) int {
	return (pickNumber-1)/teamCount + 1
}

// PositionInRound returns the 1-based position of the pick within its round.
func PositionInRound(pickNumber, teamCount int) int {
	return (pickNumber-1)%teamCount + 1
}

// PickerOf returns the drafter slot on the clock for the overall pick
// number. Odd rounds run 1..teamCount, even rounds reverse.
func PickerOf(pickNumber, teamCount int) int {
	pos := PositionInRound(pickNumber, teamCount)
	if RoundOf(pickNumber, teamCount)%2 == 1 {
		return pos
	}
	return teamCount - pos + 1
}

// PickNumberFor returns the overall pick number at which slot picks in the
// given round.
func PickNumberFor(round, slot, teamCount int) int {
	if round%2 == 1 {
		return (round-1)*teamCount + slot
	}
	return (round-1)*teamCount + (teamCount - slot + 1)
}

// PicksAway returns how many picks from now (pickNumber) until slot is on
// the clock; 0 when the slot is up right now. The snake reversal at round
// boundaries is handled by locating the slot's pick in the current round
// and, if that has already gone by, in the next round.
func PicksAway(pickNumber, slot, teamCount int) int {
	round := RoundOf(pickNumber, teamCount)
	next := PickNumberFor(round, slot, teamCount)
	if next < pickNumber {
		next = PickNumberFor(round+1, slot, teamCount)
	}
	return next - pickNumber
}
