package catalog

// Field type discriminators as they appear on the wire.
const (
	TypeText   = "text"
	TypeSelect = "select"
)

// Descriptor is a field definition paired with the user's current value,
// shaped for clients. It is derived and transient; never persisted.
type Descriptor interface {
	DescriptorName() string
}

// TextDescriptor is the wire form of a text field.
type TextDescriptor struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
	Value       string `json:"value"`
	Mutable     bool   `json:"mutable"`
	Regex       string `json:"regex"`
}

func (d TextDescriptor) DescriptorName() string { return d.Name }

// SelectDescriptor is the wire form of a select field.
type SelectDescriptor struct {
	Type    string   `json:"type"`
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Value   string   `json:"value"`
	Mutable bool     `json:"mutable"`
	Options []string `json:"options"`
}

func (d SelectDescriptor) DescriptorName() string { return d.Name }
