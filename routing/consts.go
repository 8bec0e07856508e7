// Copyright 2020-present Sergio Andres Virviescas Santana, fasthttp
// Use of this source code is governed by a BSD-style license that can be found
// in the LICENSE file.

// Package routing compiles ordered route declarations into a segment trie,
// used to match inbound paths to a module/action, and a module-action index,
// used to generate outbound URLs from a module/action and its arguments.
//
// A compiled Table is immutable and safe for concurrent use.
package routing

// Wildcard marks a module or action which is captured by a variable
// instead of being declared by the route.
const Wildcard = "$"

// Reserved variable names resolving the target of a route.
const (
	ModuleVar = "module"
	ActionVar = "action"
)

// DefaultActionPrefix is the conventional action-name prefix stripped before
// indexing, e.g. "executeShow" is indexed as "show".
const DefaultActionPrefix = "execute"

// DefaultQuerySeparator separates the arguments of a generated query string.
const DefaultQuerySeparator = "&"

const (
	literal tokenKind = iota
	separator
	variable
)

const separators = "-,;/$.+"
