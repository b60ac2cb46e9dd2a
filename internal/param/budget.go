package param

// DefaultBudget bounds the number of fields expanded from a single top-level
// parameter.
const DefaultBudget = 100

// Budget is the shared expansion counter for one top-level parameter tree.
// It is mutated in place during classification and must not be shared
// between concurrent classification calls.
type Budget struct {
	remaining int
}

// NewBudget returns a budget holding n units. Non-positive values fall back to
// DefaultBudget.
func NewBudget(n int) *Budget {
	if n <= 0 {
		n = DefaultBudget
	}
	return &Budget{remaining: n}
}

// Reserve takes one unit, reporting false when the budget is exhausted.
func (b *Budget) Reserve() bool {
	if b.remaining <= 0 {
		return false
	}
	b.remaining--
	return true
}

// Refund returns n units.
func (b *Budget) Refund(n int) {
	if n > 0 {
		b.remaining += n
	}
}

// Remaining reports the units left.
func (b *Budget) Remaining() int {
	return b.remaining
}

// Exhausted reports whether no units remain.
func (b *Budget) Exhausted() bool {
	return b.remaining <= 0
}

// Mark captures the current level so a failed expansion can be rolled back.
func (b *Budget) Mark() int {
	return b.remaining
}

// Restore rolls the budget back to a previous Mark.
func (b *Budget) Restore(mark int) {
	b.remaining = mark
}
