package routing

// Routes returns the compiled routes in declaration order, including routes
// whose terminal node was later taken over by another declaration.
func (t *Table) Routes() []*Route {
	return append([]*Route(nil), t.routes...)
}

// QueryOptions returns the options the table encodes query strings with.
func (t *Table) QueryOptions() QueryOptions {
	return t.query
}

// Len returns the number of compiled routes.
func (t *Table) Len() int {
	return len(t.routes)
}

// CaseInsensitive reports whether literal tokens are folded while matching.
func (t *Table) CaseInsensitive() bool {
	return t.caseInsensitive
}

// Reachable returns the routes held by a terminal node of the trie, literal
// branches first.
func (t *Table) Reachable() []*Route {
	routes := make([]*Route, 0, len(t.routes))
	t.root.walk(func(r *Route) {
		routes = append(routes, r)
	})

	return routes
}

// Name returns the declaration name, if any.
func (r *Route) Name() string { return r.name }

// Pattern returns the URL pattern of the route.
func (r *Route) Pattern() string { return r.pattern }

// Module returns the declared module, or Wildcard when it is captured.
func (r *Route) Module() string { return r.module }

// Action returns the declared action, or Wildcard when it is captured.
func (r *Route) Action() string { return r.action }

// Variables returns the variable names by first appearance.
func (r *Route) Variables() []string {
	return append([]string(nil), r.vars...)
}

// Constraint returns the anchored expression constraining the given
// variable, if any.
func (r *Route) Constraint(name string) (string, bool) {
	re, ok := r.constraints[name]
	if !ok {
		return "", false
	}

	return re.String(), true
}

// Fixed returns a copy of the fixed arguments of the route.
func (r *Route) Fixed() Args {
	return r.fixed.Clone()
}
