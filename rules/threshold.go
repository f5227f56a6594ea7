package rules

const (
	// SurviveAt is the minimum neighbor count that keeps a live cell alive.
	SurviveAt = 3
	// BirthAt is the minimum neighbor count that brings a dead cell to life.
	BirthAt = 4
)

/*
Apply determines the next state of a cell from its live Moore neighbors.

Threshold rules: (alive && neighbors >= 3) || (!alive && neighbors >= 4)

These differ from classic Life (survive on 2 or 3, birth on 3) and are kept
as is.
*/
func Apply(neighbors int, alive bool) bool {
	if alive {
		return neighbors >= SurviveAt
	}
	return neighbors >= BirthAt
}
