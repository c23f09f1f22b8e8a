// Package account owns the per-user profile record: fixed identity attributes
// seeded from the identity provider on first contact plus the open set of
// registration field values accumulated across events.
package account

// Attribute names that live as fixed columns rather than in the open field
// set. They still resolve as field values so an event may require them.
const (
	AttrEmail       = "email"
	AttrDisplayName = "displayName"
	AttrPhotoURL    = "photoURL"
)

// Profile is the persisted per-user record. Created lazily on first field
// resolution; mutated only through partial merges; never deleted here.
type Profile struct {
	UID         string            `json:"uid"`
	Email       string            `json:"email"`
	DisplayName string            `json:"displayName"`
	PhotoURL    string            `json:"photoURL"`
	Fields      map[string]string `json:"fields"`
}

// Value resolves a field name against the profile: the open field set first,
// then the fixed attributes. The second return is false when the profile
// holds nothing under that name.
func (p *Profile) Value(name string) (string, bool) {
	if v, ok := p.Fields[name]; ok {
		return v, true
	}
	switch name {
	case AttrEmail:
		if p.Email != "" {
			return p.Email, true
		}
	case AttrDisplayName:
		if p.DisplayName != "" {
			return p.DisplayName, true
		}
	case AttrPhotoURL:
		if p.PhotoURL != "" {
			return p.PhotoURL, true
		}
	}
	return "", false
}

// Apply merges fields into the profile in place, routing fixed attribute
// names to their columns and everything else into the open field set. Keys
// absent from fields are untouched.
func (p *Profile) Apply(fields map[string]string) {
	for name, value := range fields {
		switch name {
		case AttrEmail:
			p.Email = value
		case AttrDisplayName:
			p.DisplayName = value
		case AttrPhotoURL:
			p.PhotoURL = value
		default:
			if p.Fields == nil {
				p.Fields = make(map[string]string)
			}
			p.Fields[name] = value
		}
	}
}
