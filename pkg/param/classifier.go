package param

import (
	internalparam "github.com/goliatone/go-paramgen/internal/param"
	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

// Classifier converts type descriptors into Parameter Node trees.
type Classifier interface {
	Classify(spec Spec, budget *Budget, warnings *WarningCollector) (Node, error)
	ClassifyOperation(op typedesc.Operation) (OperationResult, error)
	NewBudget() *Budget
}

// ClassifierOption configures the classifier behaviour.
type ClassifierOption func(*classifierOptions)

type classifierOptions struct {
	budget int
}

// WithBudget overrides the per-parameter expansion budget.
func WithBudget(n int) ClassifierOption {
	return func(opts *classifierOptions) {
		opts.budget = n
	}
}

// NewClassifier returns a Classifier backed by the internal implementation.
func NewClassifier(options ...ClassifierOption) Classifier {
	cfg := classifierOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	internalOpts := internalparam.Options{}
	if cfg.budget > 0 {
		internalOpts.Budget = cfg.budget
	}

	return internalparam.New(internalOpts)
}
