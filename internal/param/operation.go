package param

import (
	"fmt"

	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

// ReasonUnsupportedType is reported when a required parameter cannot be
// represented.
const ReasonUnsupportedType = "unsupported parameter type"

// OperationResult is the classified parameter list of one operation.
type OperationResult struct {
	Operation typedesc.Operation `json:"-"`
	Params    []Node             `json:"params"`
	// Skipped is set when the operation cannot be exposed safely.
	Skipped  bool      `json:"skipped"`
	Reason   string    `json:"reason,omitempty"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// ClassifyOperation classifies every parameter of op, each with its own
// budget. A required parameter without a renderable form skips the whole
// operation; an optional one is dropped with a warning.
func (c *Classifier) ClassifyOperation(op typedesc.Operation) (OperationResult, error) {
	result := OperationResult{Operation: op}
	warnings := NewWarningCollector()

	for _, p := range op.Params {
		required := p.Required() && !acceptsNil(p.Type)
		node, err := c.Classify(Spec{
			Name:        p.Name,
			Type:        p.Type,
			Required:    required,
			Default:     p.Default,
			Description: p.Doc,
		}, c.NewBudget(), warnings)
		if err != nil {
			return OperationResult{}, fmt.Errorf("param: operation %q: %w", op.Name, err)
		}
		if node != nil {
			result.Params = append(result.Params, node)
			continue
		}
		if required {
			warnings.Add(p.Name, WarningUnsupportedType, fmt.Sprintf("required parameter of type %s cannot be represented", typedesc.FormatType(p.Type)))
			result.Params = nil
			result.Skipped = true
			result.Reason = ReasonUnsupportedType
			break
		}
		warnings.Add(p.Name, WarningUnsupportedType, fmt.Sprintf("optional parameter of type %s dropped", typedesc.FormatType(p.Type)))
	}

	result.Warnings = warnings.Warnings
	return result, nil
}
