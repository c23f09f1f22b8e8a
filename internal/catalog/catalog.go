// Package catalog holds the static registry of user field definitions.
// Events name the fields they require; the catalog says what each field is:
// its input kind, display strings, constraints, and whether a stored value
// may ever be overwritten.
package catalog

import "regexp"

// Field is a catalog entry. Concrete variants are TextField and SelectField;
// each carries only the attributes relevant to its input kind.
type Field interface {
	FieldName() string
	IsMutable() bool
	// Accepts reports whether a submitted value satisfies the field's
	// constraint (regex for text, membership for select). Enforcement is
	// opt-in at the validator; the constraint itself always lives here.
	Accepts(value string) bool
	// WithValue pairs the definition with a user's current value, producing
	// the wire-shaped descriptor clients render.
	WithValue(value string) Descriptor
}

// TextField is a free-form input with an advisory regex constraint.
type TextField struct {
	Name        string
	Label       string
	Placeholder string
	Regex       string
	Mutable     bool
}

func (f TextField) FieldName() string { return f.Name }
func (f TextField) IsMutable() bool   { return f.Mutable }

func (f TextField) Accepts(value string) bool {
	re, err := regexp.Compile(f.Regex)
	if err != nil {
		// A broken pattern must not block registration.
		return true
	}
	return re.MatchString(value)
}

func (f TextField) WithValue(value string) Descriptor {
	return TextDescriptor{
		Type:        TypeText,
		Name:        f.Name,
		Label:       f.Label,
		Placeholder: f.Placeholder,
		Value:       value,
		Mutable:     f.Mutable,
		Regex:       f.Regex,
	}
}

// SelectField is a closed choice over an ordered option list.
type SelectField struct {
	Name    string
	Label   string
	Options []string
	Mutable bool
}

func (f SelectField) FieldName() string { return f.Name }
func (f SelectField) IsMutable() bool   { return f.Mutable }

func (f SelectField) Accepts(value string) bool {
	for _, opt := range f.Options {
		if opt == value {
			return true
		}
	}
	return false
}

func (f SelectField) WithValue(value string) Descriptor {
	return SelectDescriptor{
		Type:    TypeSelect,
		Name:    f.Name,
		Label:   f.Label,
		Value:   value,
		Mutable: f.Mutable,
		Options: f.Options,
	}
}

// Catalog is a read-only name-to-definition lookup table. Entries are fixed
// at construction; there are no runtime mutations.
type Catalog struct {
	fields map[string]Field
}

func New(fields ...Field) *Catalog {
	m := make(map[string]Field, len(fields))
	for _, f := range fields {
		m[f.FieldName()] = f
	}
	return &Catalog{fields: m}
}

// Lookup returns the definition for name. Absence is a normal case, not an
// error; callers fall back to Default.
func (c *Catalog) Lookup(name string) (Field, bool) {
	f, ok := c.fields[name]
	return f, ok
}

// Resolve returns the catalog definition for name, or a synthesized default
// when the catalog has no entry, so a required-field list is never blocked
// by a catalog gap.
func (c *Catalog) Resolve(name string) Field {
	if f, ok := c.fields[name]; ok {
		return f
	}
	return Default(name)
}

// Default synthesizes the definition used for names absent from the catalog:
// a mutable text field labelled by its own name, accepting any non-empty
// value.
func Default(name string) TextField {
	return TextField{
		Name:        name,
		Label:       name,
		Placeholder: name,
		Regex:       ".+",
		Mutable:     true,
	}
}
