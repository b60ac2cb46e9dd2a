package typedesc

import (
	"fmt"
	"strings"
)

// Resolver looks up named types while parsing type expressions.
type Resolver func(name string) (*Type, bool)

// ParseType parses a type expression such as "string", "Config[]",
// "map<int>", "string|int|()", "Person?" or "typedesc<Cat|Dog>". Named types
// are looked up through resolve; a nil resolver only accepts built-in names.
//
// Grammar:
//
//	union   := postfix ('|' postfix)*
//	postfix := primary ('[]' | '?')*
//	primary := '(' ')' | '(' union ')' | ('map'|'typedesc') '<' union '>' | ident
func ParseType(expr string, resolve Resolver) (*Type, error) {
	tokens, err := tokenizeType(expr)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("typedesc: empty type expression")
	}
	p := &typeParser{tokens: tokens, resolve: resolve, expr: expr}
	out, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, fmt.Errorf("typedesc: unexpected %q in %q", p.peek().raw, expr)
	}
	return out, nil
}

type typeTokenKind int

const (
	typeTokenIdent typeTokenKind = iota
	typeTokenPipe
	typeTokenLParen
	typeTokenRParen
	typeTokenLAngle
	typeTokenRAngle
	typeTokenBrackets
	typeTokenQuestion
)

type typeToken struct {
	kind typeTokenKind
	raw  string
}

func tokenizeType(input string) ([]typeToken, error) {
	var tokens []typeToken
	i := 0
	for i < len(input) {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '|':
			tokens = append(tokens, typeToken{kind: typeTokenPipe, raw: "|"})
			i++
		case ch == '(':
			tokens = append(tokens, typeToken{kind: typeTokenLParen, raw: "("})
			i++
		case ch == ')':
			tokens = append(tokens, typeToken{kind: typeTokenRParen, raw: ")"})
			i++
		case ch == '<':
			tokens = append(tokens, typeToken{kind: typeTokenLAngle, raw: "<"})
			i++
		case ch == '>':
			tokens = append(tokens, typeToken{kind: typeTokenRAngle, raw: ">"})
			i++
		case ch == '?':
			tokens = append(tokens, typeToken{kind: typeTokenQuestion, raw: "?"})
			i++
		case ch == '[':
			if i+1 >= len(input) || input[i+1] != ']' {
				return nil, fmt.Errorf("typedesc: expected ']' at offset %d in %q", i+1, input)
			}
			tokens = append(tokens, typeToken{kind: typeTokenBrackets, raw: "[]"})
			i += 2
		case isIdentStart(ch):
			start := i
			for i < len(input) && isIdentPart(input[i]) {
				i++
			}
			tokens = append(tokens, typeToken{kind: typeTokenIdent, raw: input[start:i]})
		default:
			return nil, fmt.Errorf("typedesc: unexpected character %q in %q", ch, input)
		}
	}
	return tokens, nil
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ch == '\'' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9') || ch == ':' || ch == '.'
}

type typeParser struct {
	tokens  []typeToken
	pos     int
	resolve Resolver
	expr    string
}

func (p *typeParser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *typeParser) peek() typeToken {
	if p.done() {
		return typeToken{}
	}
	return p.tokens[p.pos]
}

func (p *typeParser) accept(kind typeTokenKind) bool {
	if !p.done() && p.tokens[p.pos].kind == kind {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) expect(kind typeTokenKind, want string) error {
	if p.accept(kind) {
		return nil
	}
	if p.done() {
		return fmt.Errorf("typedesc: expected %q at end of %q", want, p.expr)
	}
	return fmt.Errorf("typedesc: expected %q, found %q in %q", want, p.peek().raw, p.expr)
}

func (p *typeParser) parseUnion() (*Type, error) {
	first, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	members := []*Type{first}
	for p.accept(typeTokenPipe) {
		next, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		members = append(members, next)
	}
	if len(members) == 1 {
		return first, nil
	}
	return NewUnion(members...), nil
}

func (p *typeParser) parsePostfix() (*Type, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.accept(typeTokenBrackets):
			base = NewArray(base)
		case p.accept(typeTokenQuestion):
			base = Optional(base)
		default:
			return base, nil
		}
	}
}

func (p *typeParser) parsePrimary() (*Type, error) {
	if p.accept(typeTokenLParen) {
		if p.accept(typeTokenRParen) {
			return Nil(), nil
		}
		inner, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if err := p.expect(typeTokenRParen, ")"); err != nil {
			return nil, err
		}
		return inner, nil
	}

	tok := p.peek()
	if tok.kind != typeTokenIdent || p.done() {
		if p.done() {
			return nil, fmt.Errorf("typedesc: unexpected end of %q", p.expr)
		}
		return nil, fmt.Errorf("typedesc: unexpected %q in %q", tok.raw, p.expr)
	}
	p.pos++

	switch tok.raw {
	case "map", "typedesc":
		if err := p.expect(typeTokenLAngle, "<"); err != nil {
			return nil, err
		}
		inner, err := p.parseUnion()
		if err != nil {
			return nil, err
		}
		if err := p.expect(typeTokenRAngle, ">"); err != nil {
			return nil, err
		}
		if tok.raw == "map" {
			return NewMap(inner), nil
		}
		return NewTypeDesc(inner), nil
	case "nil":
		return Nil(), nil
	case "anydata":
		return Simple(KindAnydata), nil
	case "any":
		return Simple(KindAny), nil
	case "function":
		return Simple(KindFunction), nil
	case "record":
		return NewRecord(""), nil
	}

	if prim, ok := LookupPrimitive(tok.raw); ok {
		return NewPrimitive(prim), nil
	}
	if p.resolve != nil {
		if named, ok := p.resolve(tok.raw); ok {
			return named, nil
		}
	}
	return nil, fmt.Errorf("typedesc: unknown type %q in %q", tok.raw, p.expr)
}

// FormatType renders a descriptor back into expression syntax. Named types
// are printed by name, which keeps cyclic graphs finite.
func FormatType(d Descriptor) string {
	if d == nil {
		return "()"
	}
	if name := d.Name(); name != "" && d.Kind() != KindPrimitive {
		return name
	}
	switch d.Kind() {
	case KindPrimitive:
		return string(d.Primitive())
	case KindNil:
		return "()"
	case KindArray:
		elem := FormatType(d.Elem())
		if d.Elem() != nil && d.Elem().Kind() == KindUnion && d.Elem().Name() == "" {
			elem = "(" + elem + ")"
		}
		return elem + "[]"
	case KindMap:
		return "map<" + FormatType(d.Elem()) + ">"
	case KindTypeDesc:
		return "typedesc<" + FormatType(d.Elem()) + ">"
	case KindUnion:
		parts := make([]string, 0, len(d.Members()))
		for _, member := range d.Members() {
			parts = append(parts, FormatType(member))
		}
		return strings.Join(parts, "|")
	case KindRecord:
		return "record"
	default:
		return string(d.Kind())
	}
}
