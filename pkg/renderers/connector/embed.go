package connector

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Template names inside TemplatesFS.
const (
	OperationTemplate = "templates/operation.xml.tpl"
	ComponentTemplate = "templates/component.xml.tpl"
)

// TemplatesFS exposes the embedded template bundle so callers can copy or
// extend it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
