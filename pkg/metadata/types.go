package metadata

// GeneralSection is the section every descriptor must carry.
const GeneralSection = "general"

// Keys recognized by the QGIS plugin manager.
const (
	KeyName                  = "name"
	KeyQGISMinimumVersion    = "qgisMinimumVersion"
	KeyQGISMaximumVersion    = "qgisMaximumVersion"
	KeyDescription           = "description"
	KeyVersion               = "version"
	KeyAuthor                = "author"
	KeyEmail                 = "email"
	KeyAbout                 = "about"
	KeyTracker               = "tracker"
	KeyRepository            = "repository"
	KeyTags                  = "tags"
	KeyHomepage              = "homepage"
	KeyCategory              = "category"
	KeyIcon                  = "icon"
	KeyExperimental          = "experimental"
	KeyDeprecated            = "deprecated"
	KeyServer                = "server"
	KeyHasProcessingProvider = "hasProcessingProvider"
)

// MandatoryKeys must be present and non-empty for a descriptor to be valid.
var MandatoryKeys = []string{
	KeyName,
	KeyQGISMinimumVersion,
	KeyDescription,
	KeyVersion,
	KeyAuthor,
	KeyEmail,
}

// RecommendedKeys produce warnings when absent.
var RecommendedKeys = []string{
	KeyTracker,
	KeyRepository,
	KeyHomepage,
}

// Descriptor is the parsed form of a plugin metadata.txt file. The host
// plugin manager reads it once at discovery time; plugins never mutate it.
type Descriptor struct {
	Name                  string
	QGISMinimumVersion    string
	QGISMaximumVersion    string
	Description           string
	Version               string
	Author                string
	Email                 string
	About                 string
	Tracker               string
	Repository            string
	Tags                  []string
	Homepage              string
	Category              string
	Icon                  string
	Experimental          bool
	Deprecated            bool
	Server                bool
	HasProcessingProvider bool

	// Extra holds unrecognized [general] keys so a round-trip through
	// Parse and Serialize does not lose them.
	Extra map[string]string

	rawFlags map[string]string
}

// ValidationError describes a single problem found in a descriptor.
type ValidationError struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // error, warning
}

// ValidationResult collects validation errors and warnings for a descriptor.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors,omitempty"`
	Warnings []ValidationError `json:"warnings,omitempty"`
}

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)
