package wire

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-paramgen/pkg/naming"
	"github.com/goliatone/go-paramgen/pkg/param"
)

// Descriptor documents one distinct leaf value name.
type Descriptor struct {
	Name string `json:"name"`
	// Description is already attribute-escaped.
	Description string `json:"description"`
}

var attributeEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// EscapeAttribute escapes &, <, > and double quotes. Single quotes are left
// as is.
func EscapeAttribute(value string) string {
	return attributeEscaper.Replace(value)
}

// Descriptors emits one descriptor per distinct leaf reachable from params.
// Names already present in seen are skipped and newly emitted names are added
// to it, so a name reachable through several union arms is declared once.
// A nil seen set is allocated internally.
func Descriptors(params []param.Node, seen map[string]struct{}) ([]Descriptor, error) {
	if seen == nil {
		seen = make(map[string]struct{})
	}
	c := &collector{seen: seen}
	for _, node := range params {
		if err := c.node(node); err != nil {
			return nil, err
		}
	}
	return c.out, nil
}

type collector struct {
	seen map[string]struct{}
	out  []Descriptor
}

func (c *collector) add(name, description string) {
	if _, ok := c.seen[name]; ok {
		return
	}
	c.seen[name] = struct{}{}
	c.out = append(c.out, Descriptor{Name: name, Description: EscapeAttribute(description)})
}

func (c *collector) node(node param.Node) error {
	if node == nil {
		return fmt.Errorf("wire: descriptor: %w", param.ErrMalformedVariant)
	}
	info := node.Info()
	switch info.Kind {
	case param.KindRecord:
		rec, err := param.AsRecord(node)
		if err != nil {
			return err
		}
		for _, field := range rec.Fields {
			if err := c.node(field); err != nil {
				return err
			}
		}
		return nil
	case param.KindUnion:
		union, err := param.AsUnion(node)
		if err != nil {
			return err
		}
		if union.Discriminated() {
			c.add(naming.DiscriminatorID(union.Name), fmt.Sprintf("Data type of %s", union.Leaf()))
		}
		for _, member := range union.Members {
			if err := c.node(member); err != nil {
				return err
			}
		}
		return nil
	default:
		if err := checkLeaf(node); err != nil {
			return err
		}
		c.add(naming.Sanitize(info.Name), describe(info))
		return nil
	}
}

func describe(info *param.Header) string {
	if desc := strings.TrimSpace(info.Description); desc != "" {
		return desc
	}
	return info.Leaf()
}
