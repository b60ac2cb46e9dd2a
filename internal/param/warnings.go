package param

// Warning kinds recorded while classifying.
const (
	WarningUnsupportedType = "unsupported-type"
	WarningBudgetExhausted = "budget-exhausted"
	WarningEmptyUnion      = "empty-union"
	WarningDuplicateMember = "duplicate-member"
)

// Warning is a non-fatal classification diagnostic.
type Warning struct {
	// Path is the dotted value name the warning refers to.
	Path string `json:"path"`
	// Kind classifies the warning.
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// WarningCollector accumulates warnings for one classification pass.
type WarningCollector struct {
	Warnings []Warning
}

// NewWarningCollector creates an empty collector.
func NewWarningCollector() *WarningCollector {
	return &WarningCollector{}
}

// Add records a warning.
func (wc *WarningCollector) Add(path, kind, message string) {
	if wc == nil {
		return
	}
	wc.Warnings = append(wc.Warnings, Warning{Path: path, Kind: kind, Message: message})
}
