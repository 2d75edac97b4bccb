package game

// Decision is the player's choice during their turn
type Decision int

const (
	Hit Decision = iota + 1
	Stand
)

// String returns the string representation of the decision
func (d Decision) String() string {
	switch d {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of Hit or Stand
func (d Decision) Valid() bool {
	return d == Hit || d == Stand
}
