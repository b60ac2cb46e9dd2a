package param

// Options configures the behaviour of the Classifier. Options are constructed
// by the public adapter in pkg/param and passed into New.
type Options struct {
	// Budget is the number of fields one top-level parameter may expand into.
	Budget int
}

func defaultOptions() Options {
	return Options{
		Budget: DefaultBudget,
	}
}
