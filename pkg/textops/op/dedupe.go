package op

import (
	"strings"

	"github.com/pkg/errors"
)

// DedupeKeep selects which occurrence of a duplicated line survives.
type DedupeKeep string

const (
	KeepFirst DedupeKeep = "first"
	KeepLast  DedupeKeep = "last"
)

// DedupeConfig configures the dedupe operation.
type DedupeConfig struct {
	Keep          DedupeKeep
	CaseSensitive bool
}

func (DedupeConfig) Kind() Kind {
	return KindDedupe
}

func (c DedupeConfig) Raw() map[string]any {
	return map[string]any{
		"keep":          string(c.Keep),
		"caseSensitive": c.CaseSensitive,
	}
}

type dedupeOp struct{}

// Dedupe removes duplicated lines, keeping either the first or the last
// occurrence and preserving the relative order of retained lines.
func Dedupe() Operation {
	return dedupeOp{}
}

func (dedupeOp) Kind() Kind {
	return KindDedupe
}

func (dedupeOp) Label() string {
	return "Remove duplicate lines"
}

func (dedupeOp) DefaultConfig() Config {
	return DedupeConfig{Keep: KeepFirst, CaseSensitive: true}
}

func (dedupeOp) DecodeConfig(raw map[string]any) (Config, error) {
	dec := newDecoder(KindDedupe, raw)
	cfg := DedupeConfig{
		Keep:          DedupeKeep(dec.enumField("keep", string(KeepFirst), string(KeepFirst), string(KeepLast))),
		CaseSensitive: dec.boolField("caseSensitive", true),
	}

	if err := dec.err(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (dedupeOp) Apply(cfg Config, text string) (string, error) {
	c, ok := cfg.(DedupeConfig)
	if !ok {
		return "", errors.Errorf("dedupe: config is %T, want DedupeConfig", cfg)
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
	seen := make(map[string]struct{}, len(lines))
	kept := make([]string, 0, len(lines))

	if c.Keep == KeepLast {
		// Backward scan keeps the final occurrence; the order of the
		// retained lines is restored afterwards.
		for i := len(lines) - 1; i >= 0; i-- {
			k := key(lines[i])
			if _, ok := seen[k]; ok {
				continue
			}

			seen[k] = struct{}{}
			kept = append(kept, lines[i])
		}

		for left, right := 0, len(kept)-1; left < right; left, right = left+1, right-1 {
			kept[left], kept[right] = kept[right], kept[left]
		}

		return strings.Join(kept, "\n"), nil
	}

	for _, line := range lines {
		k := key(line)
		if _, ok := seen[k]; ok {
			continue
		}

		seen[k] = struct{}{}
		kept = append(kept, line)
	}

	return strings.Join(kept, "\n"), nil
}
