package transport

import "strings"

// Descriptor describes a supported robot model.
type Descriptor struct {
	// Name is the advertised name, or name prefix, of the model.
	Name string `yaml:"name"`

	// Kind is the transport family the model speaks.
	Kind Kind `yaml:"-"`

	// Service is the GATT service carrying robot commands (low energy only).
	Service string `yaml:"service,omitempty"`

	// Command is the GATT characteristic commands are written to (low energy only).
	Command string `yaml:"command,omitempty"`
}

// Matches reports whether an advertised name belongs to this model.
// Matching is case-insensitive on the name prefix, so "SK-1A2B" matches a
// descriptor named "SK-".
func (d Descriptor) Matches(advertised string) bool {
	if d.Name == "" {
		return false
	}
	return strings.HasPrefix(strings.ToLower(advertised), strings.ToLower(d.Name))
}

// Supported robot models.
var (
	// Sphero2 is the Sphero 2.0, reached over the classic link.
	Sphero2 = Descriptor{
		Name: "Sphero",
		Kind: KindClassic,
	}

	// SpheroSPRKPlus is the SPRK+, reached over low energy.
	SpheroSPRKPlus = Descriptor{
		Name:    "SK-",
		Kind:    KindLowEnergy,
		Service: "22bb746f-2ba0-7554-2d6f-726568705327",
		Command: "22bb746f-2ba1-7554-2d6f-726568705327",
	}

	// SpheroBB8 is the BB-8, reached over low energy.
	SpheroBB8 = Descriptor{
		Name:    "BB-",
		Kind:    KindLowEnergy,
		Service: "22bb746f-2ba0-7554-2d6f-726568705327",
		Command: "22bb746f-2ba1-7554-2d6f-726568705327",
	}

	// SpheroOllie is the Ollie, reached over low energy.
	SpheroOllie = Descriptor{
		Name:    "2B-",
		Kind:    KindLowEnergy,
		Service: "22bb746f-2ba0-7554-2d6f-726568705327",
		Command: "22bb746f-2ba1-7554-2d6f-726568705327",
	}
)

// SupportedDevices lists every known model.
var SupportedDevices = []Descriptor{Sphero2, SpheroSPRKPlus, SpheroBB8, SpheroOllie}

// LookupDescriptor finds a supported model by its descriptor name.
func LookupDescriptor(name string) (Descriptor, bool) {
	for _, d := range SupportedDevices {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return Descriptor{}, false
}
