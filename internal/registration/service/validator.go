package service

import (
	"strings"

	"github.com/Omkar76/nscc-backend/internal/account"
	"github.com/Omkar76/nscc-backend/internal/catalog"
	"github.com/Omkar76/nscc-backend/pkg/derrors"
)

// ValidatorOptions tune behavior the field model leaves open.
type ValidatorOptions struct {
	// EnforceConstraints rejects submitted values that fail the field's
	// constraint (regex for text, option membership for select). Off by
	// default: constraints are advisory client hints unless enabled.
	EnforceConstraints bool

	// ReportAllMissing names every missing required field in one error
	// instead of stopping at the first.
	ReportAllMissing bool
}

// Validator decides, for one submission, which values are accepted and which
// are silently dropped. It is pure: no I/O, no side effects.
type Validator struct {
	catalog *catalog.Catalog
	opts    ValidatorOptions
}

func NewValidator(c *catalog.Catalog, opts ValidatorOptions) *Validator {
	return &Validator{catalog: c, opts: opts}
}

// Validate iterates required names in order against the submitted values.
//
// A missing required name fails the whole submission: nothing is accepted and
// the caller must not write. A value for an immutable field that already has
// a stored value is dropped, never an error, so resubmitting a full form
// stays idempotent. Everything else is accepted verbatim (or checked against
// the field constraint when enforcement is on).
//
// The returned dropped list names the ignored fields so the caller can log
// and count them.
func (v *Validator) Validate(required []string, submitted map[string]string, profile *account.Profile) (accepted map[string]string, dropped []string, err error) {
	accepted = make(map[string]string)
	var missing []string

	for _, name := range required {
		value, ok := submitted[name]
		if !ok {
			if !v.opts.ReportAllMissing {
				return nil, nil, derrors.Newf(derrors.CodeRequiredFieldMissing,
					"%s is required but was not submitted", name)
			}
			missing = append(missing, name)
			continue
		}

		field := v.catalog.Resolve(name)

		if !field.IsMutable() && hasStoredValue(profile, name) {
			dropped = append(dropped, name)
			continue
		}

		if v.opts.EnforceConstraints && !field.Accepts(value) {
			return nil, nil, derrors.Newf(derrors.CodeBadRequest,
				"invalid value for field %s", name)
		}

		accepted[name] = value
	}

	if len(missing) > 0 {
		return nil, nil, derrors.Newf(derrors.CodeRequiredFieldMissing,
			"%s required but was not submitted", strings.Join(missing, ", "))
	}
	return accepted, dropped, nil
}

func hasStoredValue(profile *account.Profile, name string) bool {
	if profile == nil {
		return false
	}
	value, ok := profile.Value(name)
	return ok && value != ""
}
