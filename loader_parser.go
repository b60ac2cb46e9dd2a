package paramgen

import (
	internalLoader "github.com/goliatone/go-paramgen/internal/loader"
	internalParser "github.com/goliatone/go-paramgen/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-paramgen/pkg/openapi"
	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...typedesc.LoaderOption) typedesc.Loader {
	cfg := typedesc.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs an OpenAPI parser backed by the internal implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}
