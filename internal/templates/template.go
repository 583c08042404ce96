// templates/template.go

package templates

import (
	"regexp"
	"strings"

	"mhalvorsen/dialog/internal/bindings"
)

// slotPattern matches named placeholders such as {Name}. The empty braces
// "{}" are not a slot; they denote the none value in the effect grammar.
var slotPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Template is a piece of text possibly containing named placeholder slots.
type Template struct {
	raw   string
	slots []string
}

// New creates a template from raw text, extracting its slot names.
func New(text string) Template {
	var slots []string
	seen := make(map[string]bool)
	for _, match := range slotPattern.FindAllStringSubmatch(text, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			slots = append(slots, match[1])
		}
	}
	return Template{raw: text, slots: slots}
}

// Raw returns the original text, placeholders included.
func (t Template) Raw() string { return t.raw }

// IsUnderspecified reports whether the template still contains slots.
func (t Template) IsUnderspecified() bool { return len(t.slots) > 0 }

// Slots returns the slot names in order of first appearance.
func (t Template) Slots() []string {
	out := make([]string, len(t.slots))
	copy(out, t.slots)
	return out
}

// Fill substitutes every slot bound in the binding and returns the resulting
// text together with the names of the slots left unresolved. Unbound slots
// stay verbatim in the text.
func (t Template) Fill(b *bindings.Binding) (string, []string) {
	filled := t.raw
	var unresolved []string
	for _, slot := range t.slots {
		value, ok := b.Get(slot)
		if !ok {
			unresolved = append(unresolved, slot)
			continue
		}
		filled = strings.ReplaceAll(filled, "{"+slot+"}", value.String())
	}
	return filled, unresolved
}

func (t Template) String() string { return t.raw }
