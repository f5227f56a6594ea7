package model

// historySize is how many recent generations are remembered
const historySize = 5

// History remembers hashes of recent generations to detect boards that
// stopped evolving: static states and cycles of period two or three
type History struct {
	hashes []string
}

// Record adds g as the most recent generation
func (h *History) Record(g *Grid) {
	h.hashes = append(h.hashes, g.GetGridHash())
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant reports whether g repeats one of the last three generations
func (h *History) IsStagnant(g *Grid) bool {
	if len(h.hashes) == 0 {
		return false
	}
	current := g.GetGridHash()
	for i := 1; i <= 3 && i <= len(h.hashes); i++ {
		if h.hashes[len(h.hashes)-i] == current {
			return true
		}
	}
	return false
}

// Reset forgets every recorded generation
func (h *History) Reset() {
	h.hashes = nil
}
