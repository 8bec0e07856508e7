package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fasthttp/routetable/routing"
	"gopkg.in/yaml.v3"
)

// ErrRouteFile is returned when a route file cannot be read or decoded.
var ErrRouteFile = errors.New("invalid route file")

type routeFile struct {
	Routes []routeDecl `yaml:"routes"`
}

type routeDecl struct {
	Name   string               `yaml:"name"`
	URL    string               `yaml:"url"`
	Module string               `yaml:"module"`
	Action string               `yaml:"action"`
	With   map[string]string    `yaml:"with"`
	Add    map[string]yaml.Node `yaml:"add"`
}

// Load reads the route declarations of a YAML file.
func Load(path string) ([]routing.Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRouteFile, err)
	}

	decls, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return decls, nil
}

// Parse decodes route declarations from YAML, keeping their order.
//
//	routes:
//	  - name: article
//	    url: /article/$id
//	    module: Article
//	    action: show
//	    with: {id: '\d+'}
//	    add: {format: html}
func Parse(data []byte) ([]routing.Declaration, error) {
	var file routeFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrRouteFile, err)
	}

	decls := make([]routing.Declaration, 0, len(file.Routes))

	for i, raw := range file.Routes {
		add, err := addArgs(raw.Add)
		if err != nil {
			return nil, fmt.Errorf("%w: route #%d (%s): %w", ErrRouteFile, i, raw.Name, err)
		}

		decls = append(decls, routing.Declaration{
			Name:   raw.Name,
			URL:    raw.URL,
			Module: raw.Module,
			Action: raw.Action,
			With:   raw.With,
			Add:    add,
		})
	}

	return decls, nil
}

// addArgs converts fixed arguments. Nodes are decoded by hand because a
// null value must stay distinguishable from an empty one.
func addArgs(nodes map[string]yaml.Node) (routing.Args, error) {
	if len(nodes) == 0 {
		return nil, nil
	}

	args := make(routing.Args, len(nodes))

	for name, node := range nodes {
		v, err := nodeValue(&node)
		if err != nil {
			return nil, fmt.Errorf("add %q: %w", name, err)
		}

		args[name] = v
	}

	return args, nil
}

func nodeValue(node *yaml.Node) (routing.Value, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!null" {
			return routing.Null(), nil
		}

		return routing.Scalar(node.Value), nil

	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))

		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode || item.ShortTag() == "!!null" {
				return routing.Value{}, fmt.Errorf("line %d: list items must be scalars", item.Line)
			}

			items = append(items, item.Value)
		}

		return routing.List(items...), nil

	case yaml.AliasNode:
		return nodeValue(node.Alias)
	}

	return routing.Value{}, fmt.Errorf("line %d: expected a scalar, a list or null", node.Line)
}
