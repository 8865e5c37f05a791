package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/tmplctx/web"
)

// Document is the YAML description of a simulated exchange used by the CLI
// to stand in for real request-handling infrastructure.
//
// Example:
//
//	variables:
//	  user: alice
//	attributes:
//	  shared: exchange-wide
//	params:
//	  q: [one, two]
//	session:
//	  cart: 3
type Document struct {
	// Variables are set into the context at level 0.
	Variables map[string]any `yaml:"variables"`
	// Attributes populate the exchange-global attribute store.
	Attributes map[string]any `yaml:"attributes"`
	// Params populate the request query parameters.
	Params map[string][]string `yaml:"params"`
	// Session populates the session attribute store.
	Session map[string]any `yaml:"session"`
}

// loadDocument reads and decodes a context document from path.
func loadDocument(path string) (*Document, error) {
	doc := &Document{}

	if path == "" {
		return doc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrLoadDocument.Wrap(err).
			With(slog.String("path", path))
	}

	err = yaml.Unmarshal(data, doc)
	if err != nil {
		return nil, ErrLoadDocument.Wrap(err).
			With(slog.String("path", path))
	}

	return doc, nil
}

// contextConfig declares the flags shared by every command that builds a
// render context. Flag values are layered over the document: an assignment
// flag with the same name as a document entry replaces it.
type contextConfig struct {
	Context string   `help:"YAML document describing the exchange"            short:"c" type:"existingfile" optional:""`
	Attr    []string `help:"Exchange attribute as name=value (repeatable)"    short:"a"`
	Param   []string `help:"Query parameter as name=value (repeatable)"       short:"q"`
	Session []string `help:"Session attribute as name=value (repeatable)"     short:"s"`
}

// build assembles the render context from the document and flags.
func (c *contextConfig) build() (*web.Context, error) {
	doc, err := loadDocument(c.Context)
	if err != nil {
		return nil, err
	}

	attrs := web.Attributes{}
	for name, value := range doc.Attributes {
		attrs[name] = value
	}

	for _, assign := range c.Attr {
		name, value, err := splitAssignment(assign)
		if err != nil {
			return nil, err
		}

		attrs[name] = value
	}

	params := web.QueryParams{}
	for name, values := range doc.Params {
		params[name] = values
	}

	for _, assign := range c.Param {
		name, value, err := splitAssignment(assign)
		if err != nil {
			return nil, err
		}

		params[name] = append(params[name], value)
	}

	session := web.Attributes{}
	for name, value := range doc.Session {
		session[name] = value
	}

	for _, assign := range c.Session {
		name, value, err := splitAssignment(assign)
		if err != nil {
			return nil, err
		}

		session[name] = value
	}

	return web.NewContext(attrs, params, web.SessionOf(session),
		web.WithVariables(doc.Variables),
	), nil
}

// splitAssignment splits a name=value flag argument.
func splitAssignment(assign string) (name, value string, err error) {
	name, value, ok := strings.Cut(assign, "=")
	if !ok || name == "" {
		return "", "", ErrBadAssignment.
			With(slog.String("argument", assign))
	}

	return name, value, nil
}

// formatResult renders an evaluation result for output. Structured values
// are rendered as YAML; scalars print with their native formatting.
func formatResult(result any) (string, error) {
	switch result.(type) {
	case nil:
		return "null", nil

	case map[string]any, []any, []string:
		data, err := yaml.Marshal(result)
		if err != nil {
			return "", ErrYAMLMarshal.Wrap(err)
		}

		return strings.TrimRight(string(data), "\n"), nil
	}

	if s, ok := result.(interface{ String() string }); ok {
		return s.String(), nil
	}

	data, err := yaml.Marshal(result)
	if err != nil {
		return "", ErrYAMLMarshal.Wrap(err)
	}

	return strings.TrimRight(string(data), "\n"), nil
}
