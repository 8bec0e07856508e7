package routing

import (
	"strings"
)

type matcher struct {
	tokens  []string // tokens as written, folded when case-insensitive
	decoded []string // tokens with percent-encoding decoded
	maxVar  int
}

// Match resolves a path, with the site prefix and query string already
// stripped, to a module, an action and the captured arguments.
//
// Literal edges are tried before the variable edge at every node, and a
// variable captures as few tokens as possible. It returns
// ErrNoRouteMatched if no route accepts the path.
func (t *Table) Match(path string) (*Result, error) {
	path = strings.TrimPrefix(path, "/")
	toks := tokenize(path)

	m := &matcher{
		tokens:  make([]string, len(toks)),
		decoded: make([]string, len(toks)),
		maxVar:  t.maxVarTokens,
	}

	for i, tok := range toks {
		m.tokens[i] = tok.text
		if t.caseInsensitive {
			m.tokens[i] = lower(tok.text)
		}
		m.decoded[i] = unescape(tok.text)
	}

	r, captures := m.search(t.root, 0, nil)
	if r == nil {
		return nil, ErrNoRouteMatched
	}

	return r.result(captures), nil
}

// search explores the literal edge, then the variable edge, from n at the
// i-th token. captures is never modified in place.
func (m *matcher) search(n *node, i int, captures []string) (*Route, []string) {
	if i == len(m.tokens) {
		if n.route != nil && n.route.satisfies(captures) {
			return n.route, captures
		}

		return nil, nil
	}

	if child := n.children[m.tokens[i]]; child != nil {
		if r, c := m.search(child, i+1, captures); r != nil {
			return r, c
		}
	}

	if n.variable == nil {
		return nil, nil
	}

	end := len(m.tokens)
	if m.maxVar > 0 && i+m.maxVar < end {
		end = i + m.maxVar
	}

	var value strings.Builder

	for j := i; j < end; j++ {
		value.WriteString(m.decoded[j])

		next := make([]string, len(captures)+1)
		copy(next, captures)
		next[len(captures)] = value.String()

		if r, c := m.search(n.variable, j+1, next); r != nil {
			return r, c
		}
	}

	return nil, nil
}

// satisfies reports whether every captured value matches its constraint
func (r *Route) satisfies(captures []string) bool {
	for name, re := range r.constraints {
		for _, slot := range r.slots[name] {
			if !re.MatchString(captures[slot]) {
				return false
			}
		}
	}

	return true
}

// result binds the captures to their variables
func (r *Route) result(captures []string) *Result {
	res := &Result{
		Module: r.module,
		Action: r.action,
		Args:   make(Args, len(r.vars)+len(r.fixed)),
		Route:  r,
	}

	for name, v := range r.fixed {
		res.Args[name] = v
	}

	for _, name := range r.vars {
		slots := r.slots[name]
		items := make([]string, len(slots))

		for i, slot := range slots {
			items[i] = captures[slot]
		}

		switch name {
		case ModuleVar:
			if res.Module == Wildcard {
				res.Module = items[0]
			}
		case ActionVar:
			if res.Action == Wildcard {
				res.Action = items[0]
			}
		default:
			res.Args[name] = valueOf(items)
		}
	}

	return res
}
