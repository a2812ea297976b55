package gen

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	rules  = ruleset()
	titler = cases.Title(language.English)

	// reserved type names of the generated API. An entity named after one of
	// them would collide with a scalar or a shared declaration.
	reserved = names(
		"Boolean",
		"DateTime",
		"Float",
		"ID",
		"Int",
		"JSON",
		"MetaQueryPayload",
		"Mutation",
		"Query",
		"SortOrder",
		"String",
	)
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	for _, w := range []string{"API", "HTTP", "ID", "JSON", "SQL", "URL", "UUID"} {
		rules.AddAcronym(w)
	}
	return rules
}

func names(ids ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for i := range ids {
		m[ids[i]] = struct{}{}
	}
	return m
}

// Pascal converts a field or entity name into PascalCase.
//
//	Pascal("first_name") == "FirstName"
//	Pascal("orders") == "Orders"
func Pascal(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	var b strings.Builder
	for _, w := range words {
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(w[1:])
	}
	return b.String()
}

// Camel converts a name into camelCase by lowering its leading upper-case run.
//
//	Camel("ExampleEntity") == "exampleEntity"
//	Camel("URLItem") == "urlItem"
func Camel(s string) string {
	s = Pascal(s)
	rs := []rune(s)
	i := 0
	for i < len(rs) && unicode.IsUpper(rs[i]) {
		i++
	}
	if i > 1 && i < len(rs) {
		// Keep the first letter of the next word upper-cased.
		i--
	}
	for j := 0; j < i; j++ {
		rs[j] = unicode.ToLower(rs[j])
	}
	return string(rs)
}

// Plural returns the plural form of a type name.
func Plural(s string) string {
	return rules.Pluralize(s)
}

// Humanize returns a title-cased display name for an identifier.
//
//	Humanize("ExampleEntity") == "Example Entity"
//	Humanize("first_name") == "First Name"
func Humanize(s string) string {
	return titler.String(rules.Humanize(rules.Underscore(s)))
}

// ValidSchemaName reports an error if the entity name cannot be used as a type
// name of the generated API.
func ValidSchemaName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("entity name cannot be empty")
	case !token.IsIdentifier(name):
		return fmt.Errorf("entity name %q is not a valid identifier", name)
	case !unicode.IsUpper([]rune(name)[0]):
		return fmt.Errorf("entity name %q must start with an upper-case letter", name)
	}
	if _, ok := reserved[name]; ok {
		return fmt.Errorf("entity name %q conflicts with a predeclared type", name)
	}
	return nil
}

// validFieldName reports an error if the field name cannot be used as a
// property name of the generated declarations.
func validFieldName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("field name cannot be empty")
	case !token.IsIdentifier(name):
		return fmt.Errorf("field name %q is not a valid identifier", name)
	}
	return nil
}
