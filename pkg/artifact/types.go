package artifact

import (
	"github.com/goliatone/go-paramgen/pkg/param"
	"github.com/goliatone/go-paramgen/pkg/render"
)

// Output is one rendered document.
type Output struct {
	Renderer    string `json:"renderer"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Artifact is everything generated for one operation.
type Artifact struct {
	render.View
	Outputs  []Output        `json:"outputs,omitempty"`
	Warnings []param.Warning `json:"warnings,omitempty"`
}

// Output returns the output produced by the named renderer.
func (a Artifact) Output(renderer string) (Output, bool) {
	for _, out := range a.Outputs {
		if out.Renderer == renderer {
			return out, true
		}
	}
	return Output{}, false
}

// SkippedOperation records an operation that was not generated.
type SkippedOperation struct {
	Operation string          `json:"operation"`
	Name      string          `json:"name"`
	Reason    string          `json:"reason"`
	Warnings  []param.Warning `json:"warnings,omitempty"`
}

// OperationWarning attributes a classifier warning to its operation.
type OperationWarning struct {
	Operation string `json:"operation"`
	param.Warning
}

// Report summarises one Generate call.
type Report struct {
	Total     int                `json:"total"`
	Generated int                `json:"generated"`
	Skipped   []SkippedOperation `json:"skipped,omitempty"`
	Warnings  []OperationWarning `json:"warnings,omitempty"`
}

// Bundle is the result of generating one module.
type Bundle struct {
	Module    string     `json:"module"`
	Artifacts []Artifact `json:"artifacts"`
	// Outputs holds module-level documents such as the component manifest.
	Outputs []Output `json:"outputs,omitempty"`
	Report  Report   `json:"report"`
}

// Artifact returns the artifact generated under the resolved name.
func (b Bundle) Artifact(name string) (Artifact, bool) {
	for _, artifact := range b.Artifacts {
		if artifact.Name == name {
			return artifact, true
		}
	}
	return Artifact{}, false
}
