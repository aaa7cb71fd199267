package op

import (
	"fmt"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
)

// FilterLinesConfig configures the filter-lines operation.
type FilterLinesConfig struct {
	// Expression is a boolean predicate evaluated once per line with the
	// environment {line, index, total}.
	Expression string
	// Invert keeps the lines the predicate rejects.
	Invert bool
}

func (FilterLinesConfig) Kind() Kind {
	return KindFilterLines
}

func (c FilterLinesConfig) Raw() map[string]any {
	return map[string]any{
		"expression": c.Expression,
		"invert":     c.Invert,
	}
}

type lineEnv struct {
	Line  string `expr:"line"`
	Index int    `expr:"index"`
	Total int    `expr:"total"`
}

type filterLinesOp struct {
	mu    sync.RWMutex
	cache map[string]*vm.Program
}

// FilterLines keeps the lines matching a compiled expression predicate,
// e.g. `len(line) > 0` or `hasPrefix(line, "#")`.
func FilterLines() Operation {
	return &filterLinesOp{
		cache: make(map[string]*vm.Program),
	}
}

func (*filterLinesOp) Kind() Kind {
	return KindFilterLines
}

func (*filterLinesOp) Label() string {
	return "Filter lines"
}

func (*filterLinesOp) DefaultConfig() Config {
	return FilterLinesConfig{Expression: "true"}
}

func (o *filterLinesOp) DecodeConfig(raw map[string]any) (Config, error) {
	dec := newDecoder(KindFilterLines, raw)
	cfg := FilterLinesConfig{
		Expression: dec.stringField("expression", "true"),
		Invert:     dec.boolField("invert", false),
	}

	if _, err := o.compile(cfg.Expression); err != nil {
		dec.violation("expression", fmt.Sprintf("does not compile: %v", err))
	}

	if err := dec.err(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (o *filterLinesOp) Apply(cfg Config, text string) (string, error) {
	c, ok := cfg.(FilterLinesConfig)
	if !ok {
		return "", errors.Errorf("filter-lines: config is %T, want FilterLinesConfig", cfg)
	}

	program, err := o.compile(c.Expression)
	if err != nil {
		return "", &ExecutionError{Kind: KindFilterLines, Err: err}
	}

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))

	for i, line := range lines {
		out, err := expr.Run(program, lineEnv{Line: line, Index: i, Total: len(lines)})
		if err != nil {
			return "", &ExecutionError{Kind: KindFilterLines, Err: errors.Wrapf(err, "line %d", i+1)}
		}

		keep, ok := out.(bool)
		if !ok {
			return "", &ExecutionError{Kind: KindFilterLines, Err: errors.Errorf("expression returned %T, want bool", out)}
		}

		if keep != c.Invert {
			kept = append(kept, line)
		}
	}

	return strings.Join(kept, "\n"), nil
}

// compile caches compiled programs per expression, the same expression
// is evaluated on every keystroke of a live preview.
func (o *filterLinesOp) compile(expression string) (*vm.Program, error) {
	o.mu.RLock()
	program, ok := o.cache[expression]
	o.mu.RUnlock()

	if ok {
		return program, nil
	}

	program, err := expr.Compile(expression, expr.Env(lineEnv{}), expr.AsBool())
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	o.cache[expression] = program
	o.mu.Unlock()

	return program, nil
}
