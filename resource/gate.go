package resource

// DefaultThreshold is the lowest reputation score a chunk may have and
// still be trusted.
const DefaultThreshold = -3

// Gate decides whether a chunk's reputation is high enough to trust its
// content.
type Gate struct {
	Threshold int
}

// DefaultGate uses DefaultThreshold.
var DefaultGate = Gate{Threshold: DefaultThreshold}

// Passes reports whether score reaches the threshold.
func (g Gate) Passes(score int) bool {
	return score >= g.Threshold
}
