package router

import "strings"

func validatePath(path string) {
	switch {
	case len(path) == 0 || !strings.HasPrefix(path, "/"):
		panic("path must begin with '/' in path '" + path + "'")
	}
}

func validateName(kind, name string) {
	switch {
	case len(name) == 0:
		panic(kind + " must not be empty")
	case strings.ContainsAny(name, "/?"):
		panic(kind + " must not contain '/' or '?' in '" + name + "'")
	}
}
