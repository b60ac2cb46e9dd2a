package form

import (
	"encoding/json"
	"fmt"
)

// ElementType identifies the kind of a schema element.
type ElementType string

const (
	ElementAttribute      ElementType = "attribute"
	ElementAttributeGroup ElementType = "attributeGroup"
	ElementTable          ElementType = "table"
)

// InputType is the widget used for an attribute.
type InputType string

const (
	InputString  InputType = "stringOrExpression"
	InputBoolean InputType = "booleanOrExpression"
	InputJSON    InputType = "jsonOrExpression"
	InputCombo   InputType = "combo"
	InputText    InputType = "textArea"
)

// ValidateRegex marks attributes validated by MatchPattern.
const ValidateRegex = "regex"

// Schema is the rendered form for one parameter list.
type Schema struct {
	Elements []Element `json:"elements"`
}

// Element is one entry of a schema, group or table. Exactly one of the
// pointers matches Type.
type Element struct {
	Type      ElementType
	Attribute *Attribute
	Group     *Group
	Table     *Table
}

// Attribute is a single input.
type Attribute struct {
	Name            string    `json:"name"`
	DisplayName     string    `json:"displayName"`
	InputType       InputType `json:"inputType"`
	DefaultValue    string    `json:"defaultValue"`
	Required        string    `json:"required"`
	HelpTip         string    `json:"helpTip"`
	ValidateType    string    `json:"validateType,omitempty"`
	MatchPattern    string    `json:"matchPattern,omitempty"`
	ComboValues     []string  `json:"comboValues,omitempty"`
	EnableCondition Condition `json:"enableCondition,omitempty"`

	// Synthetic marks discriminator combos and enable toggles, which have no
	// counterpart in the parameter tree.
	Synthetic bool `json:"-"`
}

// Group clusters the fields of one nested record.
type Group struct {
	Name     string    `json:"groupName"`
	Elements []Element `json:"elements"`
}

// Table is a tabular input for a map or array.
type Table struct {
	Name            string    `json:"name"`
	DisplayName     string    `json:"displayName"`
	Description     string    `json:"description"`
	Required        string    `json:"required"`
	EnableCondition Condition `json:"enableCondition,omitempty"`
	Columns         []Element `json:"elements"`
}

type elementJSON struct {
	Type  ElementType `json:"type"`
	Value any         `json:"value"`
}

// MarshalJSON encodes the element as {"type": ..., "value": ...}.
func (e Element) MarshalJSON() ([]byte, error) {
	var value any
	switch e.Type {
	case ElementAttribute:
		value = e.Attribute
	case ElementAttributeGroup:
		value = e.Group
	case ElementTable:
		value = e.Table
	default:
		return nil, fmt.Errorf("form: unknown element type %q", e.Type)
	}
	return json.Marshal(elementJSON{Type: e.Type, Value: value})
}

// UnmarshalJSON decodes the {"type": ..., "value": ...} envelope.
func (e *Element) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type  ElementType     `json:"type"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := Element{Type: raw.Type}
	switch raw.Type {
	case ElementAttribute:
		out.Attribute = &Attribute{}
		if err := json.Unmarshal(raw.Value, out.Attribute); err != nil {
			return err
		}
	case ElementAttributeGroup:
		out.Group = &Group{}
		if err := json.Unmarshal(raw.Value, out.Group); err != nil {
			return err
		}
	case ElementTable:
		out.Table = &Table{}
		if err := json.Unmarshal(raw.Value, out.Table); err != nil {
			return err
		}
	default:
		return fmt.Errorf("form: unknown element type %q", raw.Type)
	}
	*e = out
	return nil
}

func attributeElement(attr *Attribute) Element {
	return Element{Type: ElementAttribute, Attribute: attr}
}

func groupElement(group *Group) Element {
	return Element{Type: ElementAttributeGroup, Group: group}
}

func tableElement(table *Table) Element {
	return Element{Type: ElementTable, Table: table}
}
