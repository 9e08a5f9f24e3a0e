package metadata

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// DescriptorFileName is the file the host plugin manager looks for inside
// each plugin directory.
const DescriptorFileName = "metadata.txt"

var recognizedKeys = map[string]bool{
	KeyName:                  true,
	KeyQGISMinimumVersion:    true,
	KeyQGISMaximumVersion:    true,
	KeyDescription:           true,
	KeyVersion:               true,
	KeyAuthor:                true,
	KeyEmail:                 true,
	KeyAbout:                 true,
	KeyTracker:               true,
	KeyRepository:            true,
	KeyTags:                  true,
	KeyHomepage:              true,
	KeyCategory:              true,
	KeyIcon:                  true,
	KeyExperimental:          true,
	KeyDeprecated:            true,
	KeyServer:                true,
	KeyHasProcessingProvider: true,
}

// Parse parses descriptor text into a Descriptor. It fails only on malformed
// section/key-value syntax or a missing [general] section; field-level
// problems are reported by Validate, not here.
func Parse(data []byte) (*Descriptor, error) {
	f, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse descriptor: %w", err)
	}

	if !f.HasSection(GeneralSection) {
		return nil, fmt.Errorf("descriptor has no [%s] section", GeneralSection)
	}
	sec := f.Section(GeneralSection)

	d := &Descriptor{
		Name:                  sec.Key(KeyName).String(),
		QGISMinimumVersion:    sec.Key(KeyQGISMinimumVersion).String(),
		QGISMaximumVersion:    sec.Key(KeyQGISMaximumVersion).String(),
		Description:           sec.Key(KeyDescription).String(),
		Version:               sec.Key(KeyVersion).String(),
		Author:                sec.Key(KeyAuthor).String(),
		Email:                 sec.Key(KeyEmail).String(),
		About:                 sec.Key(KeyAbout).String(),
		Tracker:               sec.Key(KeyTracker).String(),
		Repository:            sec.Key(KeyRepository).String(),
		Homepage:              sec.Key(KeyHomepage).String(),
		Category:              sec.Key(KeyCategory).String(),
		Icon:                  sec.Key(KeyIcon).String(),
		Experimental:          parseFlag(sec.Key(KeyExperimental).String()),
		Deprecated:            parseFlag(sec.Key(KeyDeprecated).String()),
		Server:                parseFlag(sec.Key(KeyServer).String()),
		HasProcessingProvider: parseFlag(sec.Key(KeyHasProcessingProvider).String()),
		Tags:                  parseTags(sec.Key(KeyTags).String()),
	}

	for _, key := range sec.Keys() {
		if !recognizedKeys[key.Name()] {
			if d.Extra == nil {
				d.Extra = make(map[string]string)
			}
			d.Extra[key.Name()] = key.String()
		}
	}

	// Raw flag spellings are kept so Validate can flag values like
	// "maybe" that parseFlag silently treats as false.
	d.rawFlags = make(map[string]string)
	for _, key := range []string{KeyExperimental, KeyDeprecated, KeyServer, KeyHasProcessingProvider} {
		if sec.HasKey(key) {
			d.rawFlags[key] = sec.Key(key).String()
		}
	}

	return d, nil
}

// ParseFile reads and parses a descriptor file.
func ParseFile(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}
	return Parse(data)
}

// ParseDir parses the descriptor inside a plugin directory.
func ParseDir(dir string) (*Descriptor, error) {
	return ParseFile(filepath.Join(dir, DescriptorFileName))
}

// parseFlag interprets the boolean spellings the plugin manager accepts.
// Anything unrecognized is false; Validate reports the malformed value.
func parseFlag(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

// parseTags splits the comma-separated tags value, dropping empties.
func parseTags(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}
