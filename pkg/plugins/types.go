package plugins

import (
	"time"

	"github.com/dcahoon3/mbr-shapefile-generator/pkg/metadata"
)

// Plugin is an installed plugin directory together with its parsed and
// validated descriptor. Descriptors are read once at discovery time and
// never executed; this registry only describes them.
type Plugin struct {
	// Descriptor is the parsed metadata.txt contents.
	Descriptor *metadata.Descriptor `json:"descriptor"`

	// Validation is the result of validating the descriptor at load time.
	Validation *metadata.ValidationResult `json:"validation"`

	// Dir is the plugin directory the descriptor was read from.
	Dir string `json:"dir"`

	// LoadedAt records when the descriptor was last read.
	LoadedAt time.Time `json:"loaded_at"`
}

// Name returns the plugin's registry key, its descriptor name.
func (p *Plugin) Name() string {
	if p.Descriptor == nil {
		return ""
	}
	return p.Descriptor.Name
}

// ListFilter narrows registry listings.
type ListFilter struct {
	Category            string
	ExcludeDeprecated   bool
	ExcludeExperimental bool
}
