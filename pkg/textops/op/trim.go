package op

import (
	"strings"

	"github.com/pkg/errors"
)

// TrimConfig configures the trim operation.
type TrimConfig struct {
	// Lines trims every line independently instead of the whole text.
	Lines bool
}

func (TrimConfig) Kind() Kind {
	return KindTrim
}

func (c TrimConfig) Raw() map[string]any {
	return map[string]any{"lines": c.Lines}
}

type trimOp struct{}

// Trim strips leading and trailing whitespace, either once for the whole
// text or independently per line.
func Trim() Operation {
	return trimOp{}
}

func (trimOp) Kind() Kind {
	return KindTrim
}

func (trimOp) Label() string {
	return "Trim whitespace"
}

func (trimOp) DefaultConfig() Config {
	return TrimConfig{}
}

func (trimOp) DecodeConfig(raw map[string]any) (Config, error) {
	dec := newDecoder(KindTrim, raw)
	cfg := TrimConfig{
		Lines: dec.boolField("lines", false),
	}

	if err := dec.err(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (trimOp) Apply(cfg Config, text string) (string, error) {
	c, ok := cfg.(TrimConfig)
	if !ok {
		return "", errors.Errorf("trim: config is %T, want TrimConfig", cfg)
	}

	if !c.Lines {
		return strings.TrimSpace(text), nil
	}

	return mapLines(text, strings.TrimSpace), nil
}
