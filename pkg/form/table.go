package form

import (
	"strconv"

	"github.com/goliatone/go-paramgen/pkg/naming"
	"github.com/goliatone/go-paramgen/pkg/param"
)

// Synthetic column names.
const (
	ColumnKey   = "key"
	ColumnValue = "value"
	ColumnType  = "type"
)

func (r *renderer) table(info *param.Header, elems param.Elements, isMap, twoD bool, display string, cond Condition) *Table {
	table := &Table{
		Name:            naming.Sanitize(info.Name),
		DisplayName:     display,
		Description:     sanitizeHelp(info.Description),
		Required:        strconv.FormatBool(info.Required),
		EnableCondition: cond,
	}
	if isMap {
		table.Columns = append(table.Columns, r.column(ColumnKey, param.KindString, true, nil, ""))
	}

	switch {
	case twoD:
		inner := &Table{
			Name:        ColumnValue,
			DisplayName: r.label(ColumnValue),
			Required:    "true",
			Columns:     []Element{r.column(ColumnValue, elems.InnerKind, true, nil, "")},
		}
		table.Columns = append(table.Columns, tableElement(inner))
	case len(elems.UnionTypes) > 0:
		combo := &Attribute{
			Name:         ColumnType,
			DisplayName:  r.label(ColumnType),
			InputType:    InputCombo,
			DefaultValue: elems.UnionTypes[0],
			Required:     "true",
			ComboValues:  append([]string(nil), elems.UnionTypes...),
			Synthetic:    true,
		}
		table.Columns = append(table.Columns,
			attributeElement(combo),
			r.column(ColumnValue, param.KindString, true, nil, ""),
		)
	case elems.ElemKind == param.KindRecord:
		for _, field := range elems.Fields {
			info := field.Info()
			table.Columns = append(table.Columns, r.column(info.Name, info.Kind, info.Required, info.Default, info.Description))
		}
	default:
		table.Columns = append(table.Columns, r.column(ColumnValue, elems.ElemKind, true, nil, ""))
	}
	return table
}

func (r *renderer) column(name string, kind param.Kind, required bool, def any, description string) Element {
	header := &param.Header{
		Name:        name,
		Kind:        kind,
		Required:    required,
		Default:     def,
		Description: description,
	}
	return attributeElement(r.attribute(header, kind, r.label(name), ""))
}
