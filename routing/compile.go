package routing

import (
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"
)

// Compile builds a Table from the given declarations, in order.
//
// Malformed declarations are skipped. The returned table is always usable;
// the error, if any, joins a *DeclarationError per skipped declaration.
func Compile(decls []Declaration, opts Options) (*Table, error) {
	t := &Table{
		root:            newNode(),
		index:           make(map[string][]*Route),
		routes:          make([]*Route, 0, len(decls)),
		caseInsensitive: opts.CaseInsensitive,
		actionPrefix:    opts.ActionPrefix,
		maxVarTokens:    opts.MaxVariableTokens,
		query: QueryOptions{
			Encode:    true,
			Separator: opts.QuerySeparator,
		},
		log: opts.Logger,
	}

	if t.log == nil {
		t.log = zap.NewNop()
	}

	var errs []error

	for i, decl := range decls {
		if err := t.add(decl); err != nil {
			derr := &DeclarationError{Index: i, Name: decl.Name, URL: decl.URL, Err: err}
			t.log.Warn("skipping route declaration", zap.Error(derr))
			errs = append(errs, derr)
		}
	}

	return t, errors.Join(errs...)
}

// add compiles a declaration into the trie and the index
func (t *Table) add(decl Declaration) error {
	if decl.URL == "" {
		return errors.New("url must not be empty")
	}

	if decl.URL[0] != '/' {
		return errors.New("url must begin with '/'")
	}

	r := &Route{
		name:    decl.Name,
		pattern: decl.URL,
		module:  decl.Module,
		action:  decl.Action,
		slots:   make(map[string][]int),
		offsets: make(map[string][]int),
	}

	n := t.root
	slot := 0

	for _, tok := range tokenize(decl.URL[1:]) {
		if tok.kind != variable {
			key := tok.text
			if t.caseInsensitive {
				key = lower(key)
			}

			n = n.literalChild(key)
			continue
		}

		name := tok.name()
		if _, ok := r.slots[name]; !ok {
			r.vars = append(r.vars, name)
		}

		r.slots[name] = append(r.slots[name], slot)
		// Prepend, so offsets end up rightmost first
		r.offsets[name] = append([]int{tok.offset + 1}, r.offsets[name]...)
		slot++

		n = n.variableChild()
	}

	if r.module == "" {
		if _, ok := r.slots[ModuleVar]; !ok {
			return errors.New("module is neither declared nor captured by $" + ModuleVar)
		}
		r.module = Wildcard
	}

	if r.action == "" {
		if _, ok := r.slots[ActionVar]; !ok {
			return errors.New("action is neither declared nor captured by $" + ActionVar)
		}
		r.action = Wildcard
	}

	if len(decl.With) > 0 {
		r.constraints = make(map[string]*regexp.Regexp, len(decl.With))

		for name, expr := range decl.With {
			if _, ok := r.slots[name]; !ok {
				return fmt.Errorf("constraint on unknown variable $%s", name)
			}

			re, err := regexp.Compile(anchor(expr))
			if err != nil {
				return fmt.Errorf("constraint on $%s: %w", name, err)
			}

			r.constraints[name] = re
		}
	}

	if len(decl.Add) > 0 {
		r.fixed = decl.Add.Clone()
	}

	if n.route != nil {
		t.log.Warn("route declaration overrides a previous one",
			zap.String("url", r.pattern),
			zap.String("previous", n.route.pattern),
		)
	}
	n.route = r

	key := t.indexKey(r.module, r.action)
	t.index[key] = append(t.index[key], r)
	t.routes = append(t.routes, r)

	return nil
}

// anchor makes expr match the whole captured value
func anchor(expr string) string {
	return "^(?:" + expr + ")$"
}

// indexKey returns the module-action index key of the given target
func (t *Table) indexKey(module, action string) string {
	if module != Wildcard {
		module = lower(module)
	}

	if action != Wildcard {
		action = lower(stripActionPrefix(action, t.actionPrefix))
	}

	return module + "-" + action
}
