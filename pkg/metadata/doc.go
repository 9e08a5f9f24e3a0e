// Package metadata parses, validates, and serializes QGIS plugin metadata
// descriptors (metadata.txt).
//
// # Overview
//
// A descriptor is a section-delimited key/value file with a mandatory
// [general] section. The host plugin manager reads it once at plugin
// discovery time to register the plugin; the plugin itself never mutates it.
//
// # Usage Example
//
// Parse and validate a descriptor:
//
//	d, err := metadata.ParseFile("plugins/mbr_shapefile_generator/metadata.txt")
//	if err != nil {
//		return err
//	}
//	result := metadata.Validate(d)
//	for _, e := range result.Errors {
//		fmt.Printf("[%s] %s: %s\n", e.Severity, e.Field, e.Message)
//	}
//
// Validation distinguishes errors (missing mandatory keys, malformed
// versions, bad booleans) from warnings (missing recommended keys,
// unrecognized keys). Unrecognized keys are preserved in Descriptor.Extra
// so Serialize round-trips them.
//
// # Related Packages
//
//   - pkg/plugins: discovery and registry of installed plugin directories
package metadata
