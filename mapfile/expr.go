package mapfile

import (
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"gopkg.in/yaml.v3"
)

// equates holds the named constants visible to $(...) expressions.
// Definitions evaluate in declaration order, so later equates may refer
// to earlier ones.
type equates struct {
	names starlark.StringDict
}

func newEquates() *equates {
	return &equates{names: starlark.StringDict{}}
}

// eval runs one expression with the current equates as predeclared
// names and requires a non-negative integer result.
func (eq *equates) eval(expr string) (value uint64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, eq.names)
	if err != nil {
		return
	}

	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 {
		err = ErrExpression(expr)
		return
	}

	value = uint64(st_int64)
	return
}

func (eq *equates) define(name, expr string) (err error) {
	value, err := eq.eval(stripWrapper(expr))
	if err != nil {
		return
	}

	eq.names[name] = starlark.MakeInt64(int64(value))
	return
}

var exprPattern = regexp.MustCompile(`^\$\((.*)\)$`)

// stripWrapper removes an optional $(...) wrapper; equate values are
// expressions either way.
func stripWrapper(text string) string {
	if m := exprPattern.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
		return m[1]
	}
	return text
}

// collect consumes the document's equates: table, if present.
func (eq *equates) collect(node *yaml.Node) (err error) {
	if node.Kind != yaml.MappingNode {
		return
	}

	for n := 0; n+1 < len(node.Content); n += 2 {
		if node.Content[n].Value != "equates" {
			continue
		}

		table := node.Content[n+1]
		if table.Kind != yaml.MappingNode {
			err = ErrExpression(table.Value)
			return
		}
		for e := 0; e+1 < len(table.Content); e += 2 {
			err = eq.define(table.Content[e].Value, table.Content[e+1].Value)
			if err != nil {
				return
			}
		}
	}

	return
}

// expand rewrites every $(...) scalar in the tree to its evaluated
// integer value.
func (eq *equates) expand(node *yaml.Node) (err error) {
	if node.Kind == yaml.ScalarNode {
		m := exprPattern.FindStringSubmatch(strings.TrimSpace(node.Value))
		if m == nil {
			return
		}

		var value uint64
		value, err = eq.eval(m[1])
		if err != nil {
			return
		}

		node.Value = strconv.FormatUint(value, 10)
		node.Tag = "!!int"
		node.Style = 0
		return
	}

	for _, child := range node.Content {
		err = eq.expand(child)
		if err != nil {
			return
		}
	}
	return
}
