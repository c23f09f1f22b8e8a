package catalog

// Builtin returns the project's static field catalog. Loaded once at process
// start and injected wherever field definitions are needed.
//
// prn is immutable: a PRN identifies the student record and must never change
// once captured.
func Builtin() *Catalog {
	return New(
		TextField{
			Name:        "name",
			Label:       "Full Name",
			Placeholder: "Your full name",
			Regex:       ".+",
			Mutable:     true,
		},
		TextField{
			Name:        "prn",
			Label:       "PRN",
			Placeholder: "10-digit PRN",
			Regex:       "^[0-9]{10}$",
			Mutable:     false,
		},
		TextField{
			Name:        "phone",
			Label:       "Phone Number",
			Placeholder: "10-digit mobile number",
			Regex:       "^[0-9]{10}$",
			Mutable:     true,
		},
		TextField{
			Name:        "college",
			Label:       "College",
			Placeholder: "Your college name",
			Regex:       ".+",
			Mutable:     true,
		},
		SelectField{
			Name:    "year",
			Label:   "Year of Study",
			Options: []string{"First", "Second", "Third", "Fourth"},
			Mutable: true,
		},
		SelectField{
			Name:    "branch",
			Label:   "Branch",
			Options: []string{"CSE", "IT", "ENTC", "Mechanical", "Civil", "Other"},
			Mutable: true,
		},
		TextField{
			Name:        "resumeLink",
			Label:       "Resume Link",
			Placeholder: "https://...",
			Regex:       "^https?://.+",
			Mutable:     true,
		},
	)
}
