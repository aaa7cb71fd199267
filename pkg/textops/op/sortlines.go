package op

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// SortLinesConfig configures the sort-lines operation.
type SortLinesConfig struct {
	Order         SortOrder
	CaseSensitive bool
}

func (SortLinesConfig) Kind() Kind {
	return KindSortLines
}

func (c SortLinesConfig) Raw() map[string]any {
	return map[string]any{
		"order":         string(c.Order),
		"caseSensitive": c.CaseSensitive,
	}
}

type sortLinesOp struct{}

// SortLines sorts the lines of the text. The sort is stable so lines
// that compare equal keep their original relative order.
func SortLines() Operation {
	return sortLinesOp{}
}

func (sortLinesOp) Kind() Kind {
	return KindSortLines
}

func (sortLinesOp) Label() string {
	return "Sort lines"
}

func (sortLinesOp) DefaultConfig() Config {
	return SortLinesConfig{Order: OrderAsc, CaseSensitive: true}
}

func (sortLinesOp) DecodeConfig(raw map[string]any) (Config, error) {
	dec := newDecoder(KindSortLines, raw)
	cfg := SortLinesConfig{
		Order:         SortOrder(dec.enumField("order", string(OrderAsc), string(OrderAsc), string(OrderDesc))),
		CaseSensitive: dec.boolField("caseSensitive", true),
	}

	if err := dec.err(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (sortLinesOp) Apply(cfg Config, text string) (string, error) {
	c, ok := cfg.(SortLinesConfig)
	if !ok {
		return "", errors.Errorf("sort-lines: config is %T, want SortLinesConfig", cfg)
	}

	if text == "" {
		return "", nil
	}

	key := func(line string) string {
		if c.CaseSensitive {
			return line
		}

		return strings.ToLower(line)
	}

	lines := strings.Split(text, "\n")
	sort.SliceStable(lines, func(i, j int) bool {
		if c.Order == OrderDesc {
			return key(lines[i]) > key(lines[j])
		}

		return key(lines[i]) < key(lines[j])
	})

	return strings.Join(lines, "\n"), nil
}
