// effects/parser.go

package effects

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"mhalvorsen/dialog/internal/templates"
	"mhalvorsen/dialog/internal/values"
)

const segmentSeparator = " ^ "

// Parse reads the textual representation of an effect: segments of the form
// VAR:=VALUE, VAR!=VALUE or VAR+=VALUE joined by " ^ ", or "Void" for the
// empty effect. "{}" on the right of := denotes the none value. Parsed
// members always carry priority 1. Input matching neither "Void" nor one of
// the three operators is rejected.
func Parse(str string) (*Effect, error) {
	log.Debug().Str("input", str).Msg("Parsing effect string")
	if strings.Contains(str, segmentSeparator) {
		var members []BasicEffect
		for _, segment := range strings.Split(str, segmentSeparator) {
			sub, err := parseSegment(segment)
			if err != nil {
				return nil, err
			}
			members = append(members, sub.SubEffects()...)
		}
		return NewOf(members), nil
	}
	return parseSegment(str)
}

func parseSegment(segment string) (*Effect, error) {
	if strings.Contains(segment, "Void") {
		return New(), nil
	}

	variable, value, add, negated, err := splitOperator(segment)
	if err != nil {
		return nil, err
	}

	varTpl := templates.New(variable)
	valTpl := templates.New(value)
	if varTpl.IsUnderspecified() || valTpl.IsUnderspecified() {
		return NewFrom(NewTemplateEffect(varTpl, valTpl, 1, add, negated)), nil
	}
	return NewFrom(NewBasicEffect(variable, values.Create(value), 1, add, negated)), nil
}

// splitOperator finds the effect operator, checked in the order :=, !=, +=.
func splitOperator(segment string) (variable, value string, add, negated bool, err error) {
	switch {
	case strings.Contains(segment, ":="):
		parts := strings.SplitN(segment, ":=", 2)
		variable, value = parts[0], parts[1]
		if strings.Contains(value, "{}") {
			value = "None"
		}
	case strings.Contains(segment, "!="):
		parts := strings.SplitN(segment, "!=", 2)
		variable, value = parts[0], parts[1]
		negated = true
	case strings.Contains(segment, "+="):
		parts := strings.SplitN(segment, "+=", 2)
		variable, value = parts[0], parts[1]
		add = true
	default:
		err = fmt.Errorf("failed to parse effect %q: no := / != / += operator found", segment)
	}
	return
}
