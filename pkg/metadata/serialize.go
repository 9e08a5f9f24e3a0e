package metadata

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
)

// Serialize renders a descriptor back to canonical metadata.txt text.
// Recognized keys come first in their conventional order, empty optional
// keys are omitted, and boolean flags are only written when true or when
// the key was present in the parsed source.
func Serialize(d *Descriptor) ([]byte, error) {
	f := ini.Empty()
	sec, err := f.NewSection(GeneralSection)
	if err != nil {
		return nil, fmt.Errorf("failed to create section: %w", err)
	}

	set := func(key, value string) {
		if value != "" {
			sec.Key(key).SetValue(value)
		}
	}

	set(KeyName, d.Name)
	set(KeyQGISMinimumVersion, d.QGISMinimumVersion)
	set(KeyQGISMaximumVersion, d.QGISMaximumVersion)
	set(KeyDescription, d.Description)
	set(KeyVersion, d.Version)
	set(KeyAuthor, d.Author)
	set(KeyEmail, d.Email)
	set(KeyAbout, d.About)
	set(KeyTracker, d.Tracker)
	set(KeyRepository, d.Repository)
	set(KeyTags, strings.Join(d.Tags, ", "))
	set(KeyHomepage, d.Homepage)
	set(KeyCategory, d.Category)
	set(KeyIcon, d.Icon)

	setFlag := func(key string, value bool) {
		_, present := d.rawFlags[key]
		if value || present {
			sec.Key(key).SetValue(formatFlag(value))
		}
	}
	setFlag(KeyExperimental, d.Experimental)
	setFlag(KeyDeprecated, d.Deprecated)
	setFlag(KeyServer, d.Server)
	setFlag(KeyHasProcessingProvider, d.HasProcessingProvider)

	extraKeys := make([]string, 0, len(d.Extra))
	for key := range d.Extra {
		extraKeys = append(extraKeys, key)
	}
	sort.Strings(extraKeys)
	for _, key := range extraKeys {
		sec.Key(key).SetValue(d.Extra[key])
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize descriptor: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile serializes a descriptor and writes it to path.
func WriteFile(d *Descriptor, path string) error {
	data, err := Serialize(d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write descriptor: %w", err)
	}
	return nil
}

// formatFlag uses the True/False spelling QGIS descriptors conventionally use.
func formatFlag(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
