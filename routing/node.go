package routing

import "sort"

func newNode() *node {
	return &node{}
}

// literalChild returns the child for the given literal, creating it if needed
func (n *node) literalChild(key string) *node {
	if n.children == nil {
		n.children = make(map[string]*node)
	}

	child, ok := n.children[key]
	if !ok {
		child = newNode()
		n.children[key] = child
	}

	return child
}

// variableChild returns the generic variable child, creating it if needed
func (n *node) variableChild() *node {
	if n.variable == nil {
		n.variable = newNode()
	}

	return n.variable
}

// walk visits every terminal route below n, literal children in sorted
// order before the variable child.
func (n *node) walk(fn func(*Route)) {
	if n.route != nil {
		fn(n.route)
	}

	keys := make([]string, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		n.children[k].walk(fn)
	}

	if n.variable != nil {
		n.variable.walk(fn)
	}
}
