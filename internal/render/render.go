package render

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Vars is the variable map a template is rendered against. Values may be
// strings, bools, ints, string slices, or nested maps (looked up with
// dotted names).
type Vars map[string]any

// Error reports a rendering failure, naming the offending template.
type Error struct {
	Template string
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("template %s: %s", e.Template, e.Message)
}

// Render instantiates a template against vars. It is a pure function: no
// I/O, and the same (template, vars) pair always yields the same output.
//
// Referencing a variable absent from vars is an error rather than an empty
// substitution; a silently empty value would produce broken YAML or
// Dockerfiles that only fail much later in CI.
//
// Block tags ({% ... %}) follow trim semantics: whitespace between the
// start of a line and a block tag is dropped, as is the newline directly
// after the tag. Literal lines are never re-indented.
func Render(name, template string, vars Vars) (string, error) {
	tokens, err := lex(name, template)
	if err != nil {
		return "", err
	}
	nodes, rest, err := parseNodes(name, tokens, "")
	if err != nil {
		return "", err
	}
	if len(rest) > 0 {
		return "", errf(name, "unexpected {%% %s %%}", rest[0].content)
	}

	var b strings.Builder
	if err := eval(name, nodes, vars, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func errf(name, format string, args ...any) *Error {
	return &Error{Template: name, Message: fmt.Sprintf(format, args...)}
}

// ─── Lexer ─────────────────────────────────────────────────────────

type tokenKind int

const (
	tokText tokenKind = iota
	tokVar            // {{ ... }}
	tokTag            // {% ... %}
)

type token struct {
	kind    tokenKind
	content string
}

// lex splits the template into literal text, variable, and tag tokens,
// applying the block-tag whitespace trimming described on Render.
func lex(name, template string) ([]token, error) {
	var tokens []token
	rest := template

	for {
		iVar := indexVarOpen(rest)
		iTag := strings.Index(rest, "{%")

		if iVar < 0 && iTag < 0 {
			if rest != "" {
				tokens = append(tokens, token{tokText, rest})
			}
			return tokens, nil
		}

		isTag := iTag >= 0 && (iVar < 0 || iTag < iVar)
		i := iVar
		open, close := "{{", "}}"
		kind := tokVar
		if isTag {
			i, open, close, kind = iTag, "{%", "%}", tokTag
		}

		text := rest[:i]
		if isTag {
			// lstrip: drop indentation when the tag starts its line.
			text = stripLineLead(text)
		}
		if text != "" {
			tokens = append(tokens, token{tokText, text})
		}

		end := strings.Index(rest[i:], close)
		if end < 0 {
			return nil, errf(name, "unterminated %s tag", open)
		}
		content := strings.TrimSpace(rest[i+len(open) : i+end])
		if content == "" {
			return nil, errf(name, "empty %s %s tag", open, close)
		}
		tokens = append(tokens, token{kind, content})

		rest = rest[i+end+len(close):]
		if isTag {
			// trim: consume the newline directly after a block tag.
			if strings.HasPrefix(rest, "\r\n") {
				rest = rest[2:]
			} else if strings.HasPrefix(rest, "\n") {
				rest = rest[1:]
			}
		}
	}
}

// indexVarOpen finds the first {{ that opens a variable tag. A {{ directly
// preceded by $ is literal text: generated GitHub Actions workflows are full
// of ${{ ... }} expressions that must pass through untouched.
func indexVarOpen(s string) int {
	from := 0
	for {
		i := strings.Index(s[from:], "{{")
		if i < 0 {
			return -1
		}
		i += from
		if i > 0 && s[i-1] == '$' {
			// Advance one brace only: in "${{{ ARG }}}" the inner pair is a
			// real variable tag producing bash's "${ARG}".
			from = i + 1
			continue
		}
		return i
	}
}

// stripLineLead removes trailing spaces and tabs from text when they form
// the start of a line (i.e., follow a newline or the template start).
func stripLineLead(text string) string {
	trimmed := strings.TrimRight(text, " \t")
	if trimmed == "" || strings.HasSuffix(trimmed, "\n") {
		return trimmed
	}
	return text
}

// ─── Parser ────────────────────────────────────────────────────────

type nodeKind int

const (
	nodeText nodeKind = iota
	nodeVar
	nodeIf
	nodeFor
)

type node struct {
	kind nodeKind

	text string // nodeText

	name    string   // nodeVar: variable, nodeIf: condition, nodeFor: list
	filters []string // nodeVar
	negate  bool     // nodeIf

	loopVar  string // nodeFor
	body     []node // nodeIf, nodeFor
	elseBody []node // nodeIf
}

// parseNodes consumes tokens until it hits one of the stop tags (else,
// endif, endfor) belonging to the enclosing construct. It returns the
// remaining tokens starting at the stop tag.
func parseNodes(name string, tokens []token, enclosing string) ([]node, []token, error) {
	var nodes []node

	for len(tokens) > 0 {
		t := tokens[0]
		switch t.kind {
		case tokText:
			nodes = append(nodes, node{kind: nodeText, text: t.content})
			tokens = tokens[1:]

		case tokVar:
			n, err := parseVar(name, t.content)
			if err != nil {
				return nil, nil, err
			}
			nodes = append(nodes, n)
			tokens = tokens[1:]

		case tokTag:
			word, rest, _ := strings.Cut(t.content, " ")
			switch word {
			case "if":
				n, remaining, err := parseIf(name, rest, tokens[1:])
				if err != nil {
					return nil, nil, err
				}
				nodes = append(nodes, n)
				tokens = remaining

			case "for":
				n, remaining, err := parseFor(name, rest, tokens[1:])
				if err != nil {
					return nil, nil, err
				}
				nodes = append(nodes, n)
				tokens = remaining

			case "else", "endif", "endfor":
				if enclosing == "" {
					return nil, nil, errf(name, "%s outside of a block", word)
				}
				return nodes, tokens, nil

			default:
				return nil, nil, errf(name, "unknown tag %q", word)
			}
		}
	}

	if enclosing != "" {
		return nil, nil, errf(name, "missing {%% end%s %%}", enclosing)
	}
	return nodes, nil, nil
}

func parseVar(name, content string) (node, error) {
	parts := strings.Split(content, "|")
	varName := strings.TrimSpace(parts[0])
	if !validName(varName) {
		return node{}, errf(name, "invalid variable reference %q", content)
	}
	var filters []string
	for _, f := range parts[1:] {
		f = strings.TrimSpace(f)
		switch f {
		case "upper", "lower", "capitalize", "title":
			filters = append(filters, f)
		default:
			return node{}, errf(name, "unknown filter %q", f)
		}
	}
	return node{kind: nodeVar, name: varName, filters: filters}, nil
}

func parseIf(name, cond string, tokens []token) (node, []token, error) {
	cond = strings.TrimSpace(cond)
	negate := false
	if rest, ok := strings.CutPrefix(cond, "not "); ok {
		negate = true
		cond = strings.TrimSpace(rest)
	}
	if !validName(cond) {
		return node{}, nil, errf(name, "invalid if condition %q", cond)
	}

	body, tokens, err := parseNodes(name, tokens, "if")
	if err != nil {
		return node{}, nil, err
	}

	n := node{kind: nodeIf, name: cond, negate: negate, body: body}

	// tokens[0] is else, endif, or endfor.
	switch tokens[0].content {
	case "else":
		n.elseBody, tokens, err = parseNodes(name, tokens[1:], "if")
		if err != nil {
			return node{}, nil, err
		}
	}
	if tokens[0].content != "endif" {
		return node{}, nil, errf(name, "expected {%% endif %%}, got {%% %s %%}", tokens[0].content)
	}
	return n, tokens[1:], nil
}

func parseFor(name, header string, tokens []token) (node, []token, error) {
	fields := strings.Fields(header)
	if len(fields) != 3 || fields[1] != "in" || !validName(fields[0]) || !validName(fields[2]) {
		return node{}, nil, errf(name, "malformed for tag %q", "for "+header)
	}

	body, tokens, err := parseNodes(name, tokens, "for")
	if err != nil {
		return node{}, nil, err
	}
	if tokens[0].content != "endfor" {
		return node{}, nil, errf(name, "expected {%% endfor %%}, got {%% %s %%}", tokens[0].content)
	}

	return node{kind: nodeFor, loopVar: fields[0], name: fields[2], body: body}, tokens[1:], nil
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for _, seg := range strings.Split(s, ".") {
		if seg == "" {
			return false
		}
		for i, r := range seg {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			case r >= '0' && r <= '9':
				if i == 0 {
					return false
				}
			default:
				return false
			}
		}
	}
	return true
}

// ─── Evaluator ─────────────────────────────────────────────────────

var titleCaser = cases.Title(language.English)

func eval(name string, nodes []node, vars Vars, b *strings.Builder) error {
	for _, n := range nodes {
		switch n.kind {
		case nodeText:
			b.WriteString(n.text)

		case nodeVar:
			val, err := lookup(name, n.name, vars)
			if err != nil {
				return err
			}
			s, err := stringify(name, n.name, val)
			if err != nil {
				return err
			}
			for _, f := range n.filters {
				s = applyFilter(f, s)
			}
			b.WriteString(s)

		case nodeIf:
			val, err := lookup(name, n.name, vars)
			if err != nil {
				return err
			}
			cond := truthy(val)
			if n.negate {
				cond = !cond
			}
			body := n.body
			if !cond {
				body = n.elseBody
			}
			if err := eval(name, body, vars, b); err != nil {
				return err
			}

		case nodeFor:
			val, err := lookup(name, n.name, vars)
			if err != nil {
				return err
			}
			items, err := listify(name, n.name, val)
			if err != nil {
				return err
			}
			for _, item := range items {
				scope := Vars{}
				for k, v := range vars {
					scope[k] = v
				}
				scope[n.loopVar] = item
				if err := eval(name, n.body, scope, b); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// lookup resolves a dotted variable name against the map. Absent names are
// an error at every level.
func lookup(tmpl, name string, vars Vars) (any, error) {
	segs := strings.Split(name, ".")
	var cur any = map[string]any(vars)
	for i, seg := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, errf(tmpl, "variable %q is not a map (resolving %q)",
				strings.Join(segs[:i], "."), name)
		}
		cur, ok = m[seg]
		if !ok {
			return nil, errf(tmpl, "undefined variable %q", name)
		}
	}
	return cur, nil
}

func stringify(tmpl, name string, val any) (string, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	default:
		return "", errf(tmpl, "variable %q has non-scalar type %T", name, val)
	}
}

func truthy(val any) bool {
	switch v := val.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case []string:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

func listify(tmpl, name string, val any) ([]any, error) {
	switch v := val.(type) {
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return items, nil
	case []any:
		return v, nil
	default:
		return nil, errf(tmpl, "variable %q is not a list (got %T)", name, val)
	}
}

func applyFilter(filter, s string) string {
	switch filter {
	case "upper":
		return strings.ToUpper(s)
	case "lower":
		return strings.ToLower(s)
	case "capitalize":
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	case "title":
		return titleCaser.String(s)
	}
	return s
}
