package metadata

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Dotted numeric versions: "1.0", "3.16", "1.0.2".
	versionRegex = regexp.MustCompile(`^\d+(\.\d+)*$`)
	emailRegex   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	flagRegex    = regexp.MustCompile(`(?i)^(true|false|yes|no|0|1)$`)
)

// Validate checks a parsed descriptor against the rules the host plugin
// manager enforces: mandatory keys non-empty, version strings well formed,
// boolean flags parseable. Recommended-but-absent keys and unrecognized
// keys are reported as warnings.
func Validate(d *Descriptor) *ValidationResult {
	result := &ValidationResult{}

	mandatory := map[string]string{
		KeyName:               d.Name,
		KeyQGISMinimumVersion: d.QGISMinimumVersion,
		KeyDescription:        d.Description,
		KeyVersion:            d.Version,
		KeyAuthor:             d.Author,
		KeyEmail:              d.Email,
	}
	for _, key := range MandatoryKeys {
		if strings.TrimSpace(mandatory[key]) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:    key,
				Message:  fmt.Sprintf("%s is required and must be non-empty", key),
				Severity: SeverityError,
			})
		}
	}

	if d.Version != "" && !versionRegex.MatchString(d.Version) {
		result.Errors = append(result.Errors, ValidationError{
			Field:    KeyVersion,
			Message:  fmt.Sprintf("invalid version format: %q", d.Version),
			Severity: SeverityError,
		})
	}
	if d.QGISMinimumVersion != "" && !versionRegex.MatchString(d.QGISMinimumVersion) {
		result.Errors = append(result.Errors, ValidationError{
			Field:    KeyQGISMinimumVersion,
			Message:  fmt.Sprintf("invalid version format: %q", d.QGISMinimumVersion),
			Severity: SeverityError,
		})
	}
	if d.QGISMaximumVersion != "" && !versionRegex.MatchString(d.QGISMaximumVersion) {
		result.Errors = append(result.Errors, ValidationError{
			Field:    KeyQGISMaximumVersion,
			Message:  fmt.Sprintf("invalid version format: %q", d.QGISMaximumVersion),
			Severity: SeverityError,
		})
	}

	if d.Email != "" && !emailRegex.MatchString(d.Email) {
		result.Errors = append(result.Errors, ValidationError{
			Field:    KeyEmail,
			Message:  fmt.Sprintf("invalid email address: %q", d.Email),
			Severity: SeverityError,
		})
	}

	for key, raw := range d.rawFlags {
		if !flagRegex.MatchString(strings.TrimSpace(raw)) {
			result.Errors = append(result.Errors, ValidationError{
				Field:    key,
				Message:  fmt.Sprintf("invalid boolean value: %q", raw),
				Severity: SeverityError,
			})
		}
	}

	recommended := map[string]string{
		KeyTracker:    d.Tracker,
		KeyRepository: d.Repository,
		KeyHomepage:   d.Homepage,
	}
	for _, key := range RecommendedKeys {
		if strings.TrimSpace(recommended[key]) == "" {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:    key,
				Message:  fmt.Sprintf("%s is recommended but not set", key),
				Severity: SeverityWarning,
			})
		}
	}

	for key := range d.Extra {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:    key,
			Message:  "unrecognized key, ignored by the plugin manager",
			Severity: SeverityWarning,
		})
	}

	if d.Deprecated && d.Experimental {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:    KeyDeprecated,
			Message:  "plugin is marked both deprecated and experimental",
			Severity: SeverityWarning,
		})
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// ValidateBytes parses raw descriptor text and validates it. A syntax-level
// failure is returned as a single-error result rather than a Go error so
// callers can report it the same way as field errors.
func ValidateBytes(data []byte) *ValidationResult {
	d, err := Parse(data)
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:    GeneralSection,
				Message:  err.Error(),
				Severity: SeverityError,
			}},
		}
	}
	return Validate(d)
}
