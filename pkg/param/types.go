package param

import internalparam "github.com/goliatone/go-paramgen/internal/param"

// Kind re-exports the internal parameter kind enumeration.
type Kind = internalparam.Kind

const (
	KindString  = internalparam.KindString
	KindInt     = internalparam.KindInt
	KindFloat   = internalparam.KindFloat
	KindDecimal = internalparam.KindDecimal
	KindBoolean = internalparam.KindBoolean
	KindXML     = internalparam.KindXML
	KindJSON    = internalparam.KindJSON
	KindRecord  = internalparam.KindRecord
	KindMap     = internalparam.KindMap
	KindArray   = internalparam.KindArray
	KindUnion   = internalparam.KindUnion
)

type Node = internalparam.Node
type Header = internalparam.Header
type Simple = internalparam.Simple
type Record = internalparam.Record
type Elements = internalparam.Elements
type Map = internalparam.Map
type Array = internalparam.Array
type Union = internalparam.Union
type Budget = internalparam.Budget
type Spec = internalparam.Spec
type Warning = internalparam.Warning
type WarningCollector = internalparam.WarningCollector
type OperationResult = internalparam.OperationResult

const (
	DefaultBudget          = internalparam.DefaultBudget
	ReasonUnsupportedType  = internalparam.ReasonUnsupportedType
	WarningUnsupportedType = internalparam.WarningUnsupportedType
	WarningBudgetExhausted = internalparam.WarningBudgetExhausted
	WarningEmptyUnion      = internalparam.WarningEmptyUnion
	WarningDuplicateMember = internalparam.WarningDuplicateMember
)

// ErrEmptyName is returned when a parameter has no name.
var ErrEmptyName = internalparam.ErrEmptyName

// NewBudget returns an expansion budget holding n units.
func NewBudget(n int) *Budget {
	return internalparam.NewBudget(n)
}

// NewWarningCollector returns an empty warning collector.
func NewWarningCollector() *WarningCollector {
	return internalparam.NewWarningCollector()
}

// JoinPath joins a parent value name and a child segment.
func JoinPath(parent, child string) string {
	return internalparam.JoinPath(parent, child)
}

// DiscriminatorCondition returns the condition selecting label on the union
// stored at name.
func DiscriminatorCondition(name, label string) string {
	return internalparam.DiscriminatorCondition(name, label)
}

// ErrMalformedVariant reports a node whose kind does not match its variant.
var ErrMalformedVariant = internalparam.ErrMalformedVariant

// AsSimple returns n as a Simple node when its kind is scalar.
func AsSimple(n Node) (*Simple, error) { return internalparam.AsSimple(n) }

// AsRecord returns n as a Record node when its kind is record.
func AsRecord(n Node) (*Record, error) { return internalparam.AsRecord(n) }

// AsMap returns n as a Map node when its kind is map.
func AsMap(n Node) (*Map, error) { return internalparam.AsMap(n) }

// AsArray returns n as an Array node when its kind is array.
func AsArray(n Node) (*Array, error) { return internalparam.AsArray(n) }

// AsUnion returns n as a Union node when its kind is union.
func AsUnion(n Node) (*Union, error) { return internalparam.AsUnion(n) }
