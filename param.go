package syscallmd

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/hashicorp/go-hclog"
)

// The vocabulary below covers what actually shows up in syscall prototypes:
// primitive types, struct/enum/union tags, _t typedefs, single level
// pointers and the __user annotation. Function pointers and arrays are not
// handled.
const (
	voidType      = "void"
	typedefSuffix = "_t"
	pointerMarker = "*"
)

var (
	// Tokens that are part of a type when they show up where the name should be.
	primitiveTypes = map[string]bool{
		"int":   true,
		"long":  true,
		"short": true,
		"char":  true,
		"const": true,
	}

	// Types that can't stand on their own, so the token after them is not a name.
	incompleteQualifiers = map[string]bool{
		"struct":   true,
		"enum":     true,
		"union":    true,
		"const":    true,
		"volatile": true,
	}

	identifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z_0-9]*$`)
)

// mergeRule decides whether a tentative name is really the tail of a
// multi-word type, as in "unsigned long" or "struct timespec".
type mergeRule struct {
	name  string
	match func(typ, name string) bool
}

// Checked in order, first match wins.
var mergeRules = []mergeRule{
	{
		name: "typedef",
		match: func(_, name string) bool {
			return strings.HasSuffix(name, typedefSuffix)
		},
	},
	{
		name: "primitive",
		match: func(_, name string) bool {
			return primitiveTypes[name]
		},
	},
	{
		name: "incomplete",
		match: func(typ, _ string) bool {
			return incompleteQualifiers[typ]
		},
	},
}

// parseParameter splits the text of one parameter into its type and name.
// ok is false when the text does not declare a parameter at all, which is
// the case for "void" in an empty parameter list.
func parseParameter(logger hclog.Logger, text string) (param SystemCallParameter, ok bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return SystemCallParameter{}, false, nil
	}

	typ, name := text, ""
	if i := strings.LastIndexFunc(text, unicode.IsSpace); i != -1 {
		typ = strings.TrimSpace(text[:i])
		name = strings.TrimSpace(text[i+1:])

		// "char __user *buf": the pointer belongs to the type.
		if strings.HasPrefix(name, pointerMarker) {
			typ += " " + pointerMarker
			name = strings.TrimSpace(name[len(pointerMarker):])
		}
	}

	if name != "" && !identifierRegex.MatchString(name) {
		return SystemCallParameter{}, false, &ParameterError{Text: text, Name: name}
	}

	if name != "" {
		if rule, found := matchMergeRule(typ, name); found {
			logger.Trace("merging name into type", "text", text, "name", name, "rule", rule)
			typ += " " + name
			name = ""
		}
	}

	if typ == voidType && name == "" {
		return SystemCallParameter{}, false, nil
	}

	return SystemCallParameter{Name: name, Type: typ}, true, nil
}

func matchMergeRule(typ, name string) (string, bool) {
	for _, rule := range mergeRules {
		if rule.match(typ, name) {
			return rule.name, true
		}
	}
	return "", false
}
