package op

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// CaseMode is one of the supported case conventions.
type CaseMode string

const (
	CaseUpper    CaseMode = "upper"
	CaseLower    CaseMode = "lower"
	CaseTitle    CaseMode = "title"
	CaseCamel    CaseMode = "camel"
	CaseSnake    CaseMode = "snake"
	CaseKebab    CaseMode = "kebab"
	CasePascal   CaseMode = "pascal"
	CaseConstant CaseMode = "constant"
)

var caseModes = []string{
	string(CaseUpper),
	string(CaseLower),
	string(CaseTitle),
	string(CaseCamel),
	string(CaseSnake),
	string(CaseKebab),
	string(CasePascal),
	string(CaseConstant),
}

// ChangeCaseConfig configures the change-case operation.
type ChangeCaseConfig struct {
	Mode CaseMode
}

func (ChangeCaseConfig) Kind() Kind {
	return KindChangeCase
}

func (c ChangeCaseConfig) Raw() map[string]any {
	return map[string]any{"mode": string(c.Mode)}
}

type changeCaseOp struct{}

// ChangeCase re-renders the words of every line in a case convention.
// Word boundaries are whitespace, hyphens, underscores and letter-case
// transitions, so "helloWorld" and "hello-world" segment identically.
func ChangeCase() Operation {
	return changeCaseOp{}
}

func (changeCaseOp) Kind() Kind {
	return KindChangeCase
}

func (changeCaseOp) Label() string {
	return "Change case"
}

func (changeCaseOp) DefaultConfig() Config {
	return ChangeCaseConfig{Mode: CaseLower}
}

func (changeCaseOp) DecodeConfig(raw map[string]any) (Config, error) {
	dec := newDecoder(KindChangeCase, raw)
	cfg := ChangeCaseConfig{
		Mode: CaseMode(dec.enumField("mode", string(CaseLower), caseModes...)),
	}

	if err := dec.err(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (changeCaseOp) Apply(cfg Config, text string) (string, error) {
	c, ok := cfg.(ChangeCaseConfig)
	if !ok {
		return "", errors.Errorf("change-case: config is %T, want ChangeCaseConfig", cfg)
	}

	return mapLines(text, func(line string) string {
		return renderWords(splitWords(line), c.Mode)
	}), nil
}

// splitWords segments a line into words. Boundaries are whitespace, '-'
// and '_' (the delimiters themselves are dropped), a lower-to-upper
// transition, and the last upper of an acronym run followed by a lower
// ("HTMLParser" segments into "HTML", "Parser").
func splitWords(line string) []string {
	runes := []rune(line)
	words := make([]string, 0, 4)

	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = nil
		}
	}

	for i, r := range runes {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			flush()

			continue
		}

		if len(current) > 0 {
			prev := current[len(current)-1]

			switch {
			case unicode.IsUpper(r) && !unicode.IsUpper(prev):
				flush()
			case unicode.IsUpper(prev) && unicode.IsUpper(r) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush()
			}
		}

		current = append(current, r)
	}

	flush()

	return words
}

func renderWords(words []string, mode CaseMode) string {
	lower := make([]string, len(words))
	for i, w := range words {
		lower[i] = strings.ToLower(w)
	}

	switch mode {
	case CaseUpper:
		return strings.ToUpper(strings.Join(lower, " "))
	case CaseLower:
		return strings.Join(lower, " ")
	case CaseTitle:
		return strings.Join(titleWords(lower), " ")
	case CaseCamel:
		titled := titleWords(lower)
		if len(titled) > 0 {
			titled[0] = lower[0]
		}

		return strings.Join(titled, "")
	case CaseSnake:
		return strings.Join(lower, "_")
	case CaseKebab:
		return strings.Join(lower, "-")
	case CasePascal:
		return strings.Join(titleWords(lower), "")
	case CaseConstant:
		return strings.ToUpper(strings.Join(lower, "_"))
	}

	return strings.Join(lower, " ")
}

func titleWords(lower []string) []string {
	titled := make([]string, len(lower))

	for i, w := range lower {
		runes := []rune(w)
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}

		titled[i] = string(runes)
	}

	return titled
}
