package paramgen

import (
	"io/fs"

	"github.com/goliatone/go-paramgen/pkg/renderers/connector"
)

// EmbeddedTemplates exposes the built-in connector templates so callers can
// copy or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return connector.TemplatesFS()
}
