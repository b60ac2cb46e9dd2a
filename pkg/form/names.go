package form

// ValueNames lists the identifiers of every non-synthetic attribute and table
// in schema order. Table columns are not part of the parameter tree and are
// skipped.
func ValueNames(elements []Element) []string {
	var names []string
	for _, element := range elements {
		switch element.Type {
		case ElementAttribute:
			if element.Attribute != nil && !element.Attribute.Synthetic {
				names = append(names, element.Attribute.Name)
			}
		case ElementAttributeGroup:
			if element.Group != nil {
				names = append(names, ValueNames(element.Group.Elements)...)
			}
		case ElementTable:
			if element.Table != nil {
				names = append(names, element.Table.Name)
			}
		}
	}
	return names
}

// SyntheticNames lists discriminator and toggle identifiers.
func SyntheticNames(elements []Element) []string {
	var names []string
	for _, element := range elements {
		switch element.Type {
		case ElementAttribute:
			if element.Attribute != nil && element.Attribute.Synthetic {
				names = append(names, element.Attribute.Name)
			}
		case ElementAttributeGroup:
			if element.Group != nil {
				names = append(names, SyntheticNames(element.Group.Elements)...)
			}
		}
	}
	return names
}
