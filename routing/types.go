package routing

import (
	"regexp"

	"go.uber.org/zap"
)

// Declaration is a raw route declaration, as supplied by a configuration
// loader. The order of declarations is significant.
type Declaration struct {
	// Name identifies the declaration in diagnostics only.
	Name string

	// URL is the route pattern. It must begin with '/' and may contain
	// variables like $id.
	URL string

	// Module and Action are the fixed target of the route. When empty, they
	// are captured by the $module and $action variables.
	Module string
	Action string

	// With holds a regular expression per variable which must match the
	// whole captured value.
	With map[string]string

	// Add holds fixed arguments. They are injected into match results and
	// must be supplied to generate a link through this route.
	Add Args
}

// Options configures the compilation of a Table.
type Options struct {
	// CaseInsensitive folds literal tokens before matching. Captured values
	// keep their case.
	CaseInsensitive bool

	// ActionPrefix is stripped from actions before indexing them.
	ActionPrefix string

	// MaxVariableTokens bounds the tokens consumed by a single variable
	// while matching. Zero means unbounded.
	MaxVariableTokens int

	// QuerySeparator separates generated query arguments.
	// DefaultQuerySeparator is used when empty.
	QuerySeparator string

	// Logger receives compile diagnostics and link fallbacks.
	Logger *zap.Logger
}

// Route is a compiled route declaration.
type Route struct {
	name    string
	pattern string
	module  string
	action  string

	constraints map[string]*regexp.Regexp
	fixed       Args

	// vars lists the variable names by first appearance.
	vars []string

	// slots holds the capture-slot indices of each variable, left to right.
	slots map[string][]int

	// offsets holds the offsets of each "$name" in pattern, rightmost first.
	offsets map[string][]int
}

// Result is the outcome of a successful match.
type Result struct {
	Module string
	Action string
	Args   Args
	Route  *Route
}

// Table is an immutable compiled route table.
type Table struct {
	root   *node
	index  map[string][]*Route
	routes []*Route

	caseInsensitive bool
	actionPrefix    string
	maxVarTokens    int
	query           QueryOptions
	log             *zap.Logger
}

type node struct {
	children map[string]*node
	variable *node
	route    *Route
}

// QueryOptions configures EncodeQuery.
type QueryOptions struct {
	// Encode percent-encodes names and values.
	Encode bool

	// Separator separates arguments. DefaultQuerySeparator is used when empty.
	Separator string
}
