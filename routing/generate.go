package routing

import (
	"fmt"
	"net/url"
	"sort"

	"go.uber.org/zap"
)

// Generate returns the URL of the given module and action. It never fails:
// when no route accepts the arguments, the generic path of Fallback is
// returned and a warning is logged.
func (t *Table) Generate(module, action string, args Args) string {
	link, err := t.Reverse(module, action, args)
	if err == nil {
		return link
	}

	t.log.Warn("no route to generate link, using the generic path",
		zap.String("module", module),
		zap.String("action", action),
	)

	return t.Fallback(module, action, args)
}

// Fallback returns the generic path /<module>/<action> followed by every
// argument in the query string.
func (t *Table) Fallback(module, action string, args Args) string {
	return "/" + url.PathEscape(module) + "/" + url.PathEscape(action) + EncodeQuery(args, t.query)
}

// Reverse generates the URL of the given module and action with the first
// candidate route accepting args. Candidates are the routes indexed under
// "module-action", else "module-$", else "$-$", in declaration order.
//
// Arguments which are neither substituted nor consumed as fixed arguments
// are appended as a query string. It returns ErrNoReverseRoute when no
// candidate accepts args.
func (t *Table) Reverse(module, action string, args Args) (string, error) {
	for _, r := range t.candidates(module, action) {
		link, err := r.generate(module, action, args, t.query)
		if err == nil {
			return link, nil
		}

		t.log.Debug("route rejected for link generation",
			zap.String("url", r.pattern),
			zap.Error(err),
		)
	}

	return "", fmt.Errorf("%w: %s/%s", ErrNoReverseRoute, module, action)
}

// candidates returns the first non-empty list of indexed routes
func (t *Table) candidates(module, action string) []*Route {
	keys := [...]string{
		t.indexKey(module, action),
		t.indexKey(module, Wildcard),
		Wildcard + "-" + Wildcard,
	}

	for _, key := range keys {
		if routes := t.index[key]; len(routes) > 0 {
			return routes
		}
	}

	return nil
}

type substitution struct {
	offset int
	size   int
	value  string
}

// generate substitutes args into the pattern of r
func (r *Route) generate(module, action string, args Args, qopts QueryOptions) (string, error) {
	working := args.Clone()
	values := make(map[string][]string, len(r.vars))

	for _, name := range r.vars {
		n := len(r.slots[name])

		switch name {
		case ModuleVar, ActionVar:
			v := module
			if name == ActionVar {
				v = action
			}

			items := make([]string, n)
			for i := range items {
				items[i] = v
			}

			if err := r.check(name, items); err != nil {
				return "", err
			}
			values[name] = items

			continue
		}

		v, ok := working[name]
		if !ok || v.IsNull() {
			return "", fmt.Errorf("%w: $%s", errMissingArgument, name)
		}

		items := v.Strings()
		if len(items) < n {
			return "", fmt.Errorf("%w: $%s needs %d values, got %d", errMissingArgument, name, n, len(items))
		}

		if err := r.check(name, items); err != nil {
			return "", err
		}

		values[name] = items
	}

	for name, want := range r.fixed {
		have, ok := working[name]
		if !ok {
			return "", fmt.Errorf("%w: %s", errMissingFixed, name)
		}

		remaining := have.Strings()
		for _, w := range want.Strings() {
			i := indexOf(remaining, w)
			if i < 0 {
				return "", fmt.Errorf("%w: %s=%q", errMissingFixed, name, w)
			}
			remaining = append(remaining[:i], remaining[i+1:]...)
		}

		if len(remaining) == 0 {
			delete(working, name)
		} else {
			working[name] = valueOf(remaining)
		}
	}

	subs := make([]substitution, 0, len(r.slots))

	for name, offsets := range r.offsets {
		items := values[name]
		n := len(offsets)

		// offsets are rightmost first, values are in appearance order
		for i, off := range offsets {
			subs = append(subs, substitution{
				offset: off,
				size:   len(name) + 1,
				value:  url.PathEscape(items[n-1-i]),
			})
		}

		if name == ModuleVar || name == ActionVar {
			continue
		}

		if _, ok := working[name]; ok {
			if rest := items[n:]; len(rest) > 0 {
				working[name] = valueOf(rest)
			} else {
				delete(working, name)
			}
		}
	}

	sort.Slice(subs, func(i, j int) bool {
		return subs[i].offset > subs[j].offset
	})

	link := r.pattern
	for _, s := range subs {
		link = link[:s.offset] + s.value + link[s.offset+s.size:]
	}

	return link + EncodeQuery(working, qopts), nil
}

// check rejects values a capture could never produce: empty ones, and ones
// breaking the constraint of the variable.
func (r *Route) check(name string, items []string) error {
	re := r.constraints[name]

	for _, item := range items {
		if item == "" {
			return fmt.Errorf("%w: $%s is empty", errMissingArgument, name)
		}

		if re != nil && !re.MatchString(item) {
			return fmt.Errorf("%w: $%s=%q", ErrConstraintViolation, name, item)
		}
	}

	return nil
}
