// Package dqcir parses the DQCIR text format (spec.md §6) and applies
// a Tseitin translation to produce the clause matrix the solver core
// consumes. It is an external collaborator of internal/dqbf in the
// sense spec.md §1 describes: the core never imports it.
package dqcir

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/fslivovsky/pedantic/internal/ids"
)

// gateType names the three DQCIR gate kinds.
type gateType int

const (
	gateAnd gateType = iota
	gateOr
	gateXor
)

// input is one argument to a gate: the variable it names, and
// whether it appears negated.
type input struct {
	v       ids.Var
	negated bool
}

func (i input) lit() ids.Lit {
	return ids.Of(i.v, !i.negated)
}

type gate struct {
	typ    gateType
	inputs []input
}

// Document is the parsed, pre-Tseitin representation of a DQCIR
// instance.
type Document struct {
	Names   *ids.Names
	Counter *ids.Counter

	Universals   []ids.Var            // in order of introduction
	Existentials []ids.Var            // in order of introduction
	Dependencies map[ids.Var][]ids.Var // exists_var -> deps, in declared order

	gates  map[ids.Var]gate
	output ids.Var
}

// MalformedInput wraps a parse-time error with the offending line.
type MalformedInput struct {
	Line   int
	Detail string
}

func (e *MalformedInput) Error() string {
	return fmt.Sprintf("malformed DQCIR input at line %d: %s", e.Line, e.Detail)
}

// Parse reads a DQCIR document from r. Comments (`#`) and blank lines
// are ignored. counter, if non-nil, seeds variable allocation (reused
// across a caller's pipeline); if nil, a fresh Counter starting at 0
// is created.
func Parse(r io.Reader, counter *ids.Counter) (*Document, error) {
	if counter == nil {
		counter = ids.NewCounter(0)
	}
	d := &Document{
		Names:        ids.NewNames(),
		Counter:      counter,
		Dependencies: make(map[ids.Var][]ids.Var),
		gates:        make(map[ids.Var]gate),
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := d.parseLine(line); err != nil {
			return nil, &MalformedInput{Line: lineNo, Detail: err.Error()}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading DQCIR input")
	}
	if d.output == 0 {
		return nil, errors.New("DQCIR input declares no output gate")
	}
	return d, nil
}

func (d *Document) register(name string) ids.Var {
	return d.Names.Register(name, d.Counter)
}

func parenBody(line string) (string, error) {
	start := strings.IndexByte(line, '(')
	end := strings.LastIndexByte(line, ')')
	if start < 0 || end < start {
		return "", errors.Errorf("expected parenthesized arguments: %q", line)
	}
	return line[start+1 : end], nil
}

func splitArgs(body string) []string {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	parts := strings.Split(body, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (d *Document) parseLiteral(tok string) (input, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return input{}, errors.New("empty literal")
	}
	if strings.HasPrefix(tok, "-") {
		return input{v: d.register(tok[1:]), negated: true}, nil
	}
	return input{v: d.register(tok)}, nil
}

func (d *Document) parseLine(line string) error {
	switch {
	case strings.HasPrefix(line, "forall("):
		body, err := parenBody(line)
		if err != nil {
			return err
		}
		for _, name := range splitArgs(body) {
			v := d.register(name)
			d.Universals = append(d.Universals, v)
		}
		return nil

	case strings.HasPrefix(line, "exists("):
		body, err := parenBody(line)
		if err != nil {
			return err
		}
		for _, name := range splitArgs(body) {
			v := d.register(name)
			d.Existentials = append(d.Existentials, v)
			d.Dependencies[v] = append([]ids.Var(nil), d.Universals...)
		}
		return nil

	case strings.HasPrefix(line, "depend("):
		body, err := parenBody(line)
		if err != nil {
			return err
		}
		args := splitArgs(body)
		if len(args) == 0 {
			return errors.New("depend() requires at least one argument")
		}
		v := d.register(args[0])
		found := false
		for _, e := range d.Existentials {
			if e == v {
				found = true
				break
			}
		}
		if !found {
			d.Existentials = append(d.Existentials, v)
		}
		deps := make([]ids.Var, 0, len(args)-1)
		for _, dep := range args[1:] {
			deps = append(deps, d.register(dep))
		}
		d.Dependencies[v] = deps
		return nil

	case strings.HasPrefix(line, "output("):
		body, err := parenBody(line)
		if err != nil {
			return err
		}
		d.output = d.register(strings.TrimSpace(body))
		return nil

	case strings.Contains(line, "="):
		return d.parseGate(line)

	default:
		return errors.Errorf("unrecognized directive: %q", line)
	}
}

func (d *Document) parseGate(line string) error {
	eq := strings.IndexByte(line, '=')
	name := strings.TrimSpace(line[:eq])
	def := strings.TrimSpace(line[eq+1:])

	lower := strings.ToLower(def)
	var typ gateType
	switch {
	case strings.HasPrefix(lower, "and("):
		typ = gateAnd
	case strings.HasPrefix(lower, "or("):
		typ = gateOr
	case strings.HasPrefix(lower, "xor("):
		typ = gateXor
	default:
		return errors.Errorf("unrecognized gate definition: %q", def)
	}

	body, err := parenBody(def)
	if err != nil {
		return err
	}
	var inputs []input
	for _, tok := range splitArgs(body) {
		in, err := d.parseLiteral(tok)
		if err != nil {
			return err
		}
		inputs = append(inputs, in)
	}

	v := d.register(name)
	d.gates[v] = gate{typ: typ, inputs: inputs}
	return nil
}

// Output returns the output gate's Var.
func (d *Document) Output() ids.Var {
	return d.output
}

// gatesInOrder returns gate identifiers sorted ascending, giving
// deterministic Tseitin output regardless of Go's map iteration order.
func (d *Document) gatesInOrder() []ids.Var {
	out := make([]ids.Var, 0, len(d.gates))
	for v := range d.gates {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
