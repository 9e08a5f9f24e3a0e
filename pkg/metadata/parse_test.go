package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDescriptor = `[general]
name=MBR Shapefile Generator
qgisMinimumVersion=3.16
description=Generates shapefiles of routing zones from the areapoint table
version=1.0.2
author=MBR Development
email=dev@example.com
about=Reads the areapoint table and builds one polygon shapefile per customer.
tracker=https://github.com/example/mbr-shapefile-generator/issues
repository=https://github.com/example/mbr-shapefile-generator
tags=routing, zones, shapefile
homepage=https://github.com/example/mbr-shapefile-generator
category=Vector
icon=icon.png
experimental=False
deprecated=False
server=False
hasProcessingProvider=no
`

// TestParse tests parsing a complete valid descriptor
func TestParse(t *testing.T) {
	d, err := Parse([]byte(sampleDescriptor))
	require.NoError(t, err)

	assert.Equal(t, "MBR Shapefile Generator", d.Name)
	assert.Equal(t, "3.16", d.QGISMinimumVersion)
	assert.Equal(t, "Generates shapefiles of routing zones from the areapoint table", d.Description)
	assert.Equal(t, "1.0.2", d.Version)
	assert.Equal(t, "MBR Development", d.Author)
	assert.Equal(t, "dev@example.com", d.Email)
	assert.Equal(t, "Vector", d.Category)
	assert.Equal(t, "icon.png", d.Icon)
	assert.Equal(t, []string{"routing", "zones", "shapefile"}, d.Tags)
	assert.False(t, d.Experimental)
	assert.False(t, d.Deprecated)
	assert.False(t, d.Server)
	assert.False(t, d.HasProcessingProvider)
	assert.Empty(t, d.Extra)
}

// TestParse_MissingGeneralSection tests that a descriptor without [general] fails
func TestParse_MissingGeneralSection(t *testing.T) {
	d, err := Parse([]byte("[other]\nname=foo\n"))
	assert.Error(t, err)
	assert.Nil(t, d)
	assert.Contains(t, err.Error(), "[general]")
}

// TestParse_MalformedSyntax tests that broken key/value text fails
func TestParse_MalformedSyntax(t *testing.T) {
	d, err := Parse([]byte("[general\nname"))
	assert.Error(t, err)
	assert.Nil(t, d)
}

// TestParse_FlagSpellings tests the boolean spellings the plugin manager accepts
func TestParse_FlagSpellings(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"True", true},
		{"true", true},
		{"yes", true},
		{"1", true},
		{"False", false},
		{"false", false},
		{"no", false},
		{"0", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			src := "[general]\nname=x\nexperimental=" + tt.value + "\n"
			d, err := Parse([]byte(src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Experimental)
		})
	}
}

// TestParse_UnknownKeysPreserved tests that unrecognized keys land in Extra
func TestParse_UnknownKeysPreserved(t *testing.T) {
	src := "[general]\nname=x\nchangelog=1.0 initial release\nplugin_dependencies=processing\n"
	d, err := Parse([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "1.0 initial release", d.Extra["changelog"])
	assert.Equal(t, "processing", d.Extra["plugin_dependencies"])
}

// TestParse_EmptyTags tests tags parsing edge cases
func TestParse_EmptyTags(t *testing.T) {
	d, err := Parse([]byte("[general]\nname=x\ntags= , ,\n"))
	require.NoError(t, err)
	assert.Nil(t, d.Tags)

	d, err = Parse([]byte("[general]\nname=x\n"))
	require.NoError(t, err)
	assert.Nil(t, d.Tags)
}

// TestParseFile tests reading a descriptor from disk
func TestParseFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, DescriptorFileName)
	require.NoError(t, os.WriteFile(path, []byte(sampleDescriptor), 0644))

	d, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "MBR Shapefile Generator", d.Name)

	// ParseDir resolves the conventional file name
	d, err = ParseDir(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "1.0.2", d.Version)
}

// TestParseFile_Nonexistent tests the error path for a missing file
func TestParseFile_Nonexistent(t *testing.T) {
	d, err := ParseFile("/nonexistent/metadata.txt")
	assert.Error(t, err)
	assert.Nil(t, d)
	assert.Contains(t, err.Error(), "failed to read descriptor")
}

// TestSerialize_RoundTrip tests that parse -> serialize -> parse is lossless
func TestSerialize_RoundTrip(t *testing.T) {
	d, err := Parse([]byte(sampleDescriptor))
	require.NoError(t, err)

	out, err := Serialize(d)
	require.NoError(t, err)

	d2, err := Parse(out)
	require.NoError(t, err)

	assert.Equal(t, d.Name, d2.Name)
	assert.Equal(t, d.Version, d2.Version)
	assert.Equal(t, d.Tags, d2.Tags)
	assert.Equal(t, d.Experimental, d2.Experimental)
	assert.Equal(t, d.HasProcessingProvider, d2.HasProcessingProvider)
	assert.Equal(t, d.Extra, d2.Extra)
}

// TestWriteFile tests writing a descriptor to disk
func TestWriteFile(t *testing.T) {
	d := &Descriptor{
		Name:               "Test Plugin",
		QGISMinimumVersion: "3.0",
		Description:        "test",
		Version:            "0.1",
		Author:             "author",
		Email:              "a@b.co",
		Experimental:       true,
	}

	path := filepath.Join(t.TempDir(), DescriptorFileName)
	require.NoError(t, WriteFile(d, path))

	loaded, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Test Plugin", loaded.Name)
	assert.True(t, loaded.Experimental)
	// deprecated was false and never present, so it is omitted
	assert.NotContains(t, string(mustRead(t, path)), "deprecated")
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}
