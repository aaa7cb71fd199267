package op

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// ReplaceConfig configures the replace operation.
type ReplaceConfig struct {
	Find    string
	Replace string
	// Regex interprets Find as a regular expression and Replace as its
	// expansion template ($1, ${name}).
	Regex bool
}

func (ReplaceConfig) Kind() Kind {
	return KindReplace
}

func (c ReplaceConfig) Raw() map[string]any {
	return map[string]any{
		"find":    c.Find,
		"replace": c.Replace,
		"regex":   c.Regex,
	}
}

type replaceOp struct{}

// Replace substitutes every occurrence of a literal string or a regular
// expression.
func Replace() Operation {
	return replaceOp{}
}

func (replaceOp) Kind() Kind {
	return KindReplace
}

func (replaceOp) Label() string {
	return "Find & replace"
}

func (replaceOp) DefaultConfig() Config {
	return ReplaceConfig{}
}

func (replaceOp) DecodeConfig(raw map[string]any) (Config, error) {
	dec := newDecoder(KindReplace, raw)
	cfg := ReplaceConfig{
		Find:    dec.stringField("find", ""),
		Replace: dec.stringField("replace", ""),
		Regex:   dec.boolField("regex", false),
	}

	if cfg.Regex && cfg.Find != "" {
		if _, err := regexp.Compile(cfg.Find); err != nil {
			dec.violation("find", fmt.Sprintf("invalid pattern: %v", err))
		}
	}

	if err := dec.err(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (replaceOp) Apply(cfg Config, text string) (string, error) {
	c, ok := cfg.(ReplaceConfig)
	if !ok {
		return "", errors.Errorf("replace: config is %T, want ReplaceConfig", cfg)
	}

	if c.Find == "" {
		return text, nil
	}

	if !c.Regex {
		return strings.ReplaceAll(text, c.Find, c.Replace), nil
	}

	// Validation already vets the pattern; a failure here means the
	// config reached Apply without it, so treat it as a run-time failure.
	re, err := regexp.Compile(c.Find)
	if err != nil {
		return "", &ExecutionError{Kind: KindReplace, Err: err}
	}

	return re.ReplaceAllString(text, c.Replace), nil
}
