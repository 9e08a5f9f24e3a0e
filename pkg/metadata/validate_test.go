package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(errs []ValidationError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

// TestValidate_ValidDescriptor tests that a complete descriptor passes
func TestValidate_ValidDescriptor(t *testing.T) {
	d, err := Parse([]byte(sampleDescriptor))
	require.NoError(t, err)

	result := Validate(d)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

// TestValidate_MissingMandatoryKeys tests that every absent mandatory key is reported
func TestValidate_MissingMandatoryKeys(t *testing.T) {
	d, err := Parse([]byte("[general]\nicon=icon.png\n"))
	require.NoError(t, err)

	result := Validate(d)
	assert.False(t, result.Valid)

	got := fields(result.Errors)
	for _, key := range MandatoryKeys {
		assert.Contains(t, got, key)
	}
}

// TestValidate_WhitespaceOnlyValue tests that blank-padded values count as empty
func TestValidate_WhitespaceOnlyValue(t *testing.T) {
	d := &Descriptor{
		Name:               "   ",
		QGISMinimumVersion: "3.0",
		Description:        "d",
		Version:            "1.0",
		Author:             "a",
		Email:              "a@b.co",
	}

	result := Validate(d)
	assert.False(t, result.Valid)
	assert.Contains(t, fields(result.Errors), KeyName)
}

// TestValidate_VersionFormats tests version well-formedness rules
func TestValidate_VersionFormats(t *testing.T) {
	tests := []struct {
		version string
		valid   bool
	}{
		{"1.0", true},
		{"3.16", true},
		{"1.0.2", true},
		{"2", true},
		{"v1.0", false},
		{"1.0-beta", false},
		{"one.two", false},
		{"1..2", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			d := &Descriptor{
				Name:               "x",
				QGISMinimumVersion: "3.0",
				Description:        "d",
				Version:            tt.version,
				Author:             "a",
				Email:              "a@b.co",
			}
			result := Validate(d)
			if tt.valid {
				assert.True(t, result.Valid)
			} else {
				assert.False(t, result.Valid)
				assert.Contains(t, fields(result.Errors), KeyVersion)
			}
		})
	}
}

// TestValidate_BadEmail tests the email shape check
func TestValidate_BadEmail(t *testing.T) {
	d := &Descriptor{
		Name:               "x",
		QGISMinimumVersion: "3.0",
		Description:        "d",
		Version:            "1.0",
		Author:             "a",
		Email:              "not-an-email",
	}

	result := Validate(d)
	assert.False(t, result.Valid)
	assert.Contains(t, fields(result.Errors), KeyEmail)
}

// TestValidate_BadFlagValue tests that unparseable booleans are errors
func TestValidate_BadFlagValue(t *testing.T) {
	src := `[general]
name=x
qgisMinimumVersion=3.0
description=d
version=1.0
author=a
email=a@b.co
tracker=https://t
repository=https://r
homepage=https://h
experimental=maybe
`
	result := ValidateBytes([]byte(src))
	assert.False(t, result.Valid)
	assert.Contains(t, fields(result.Errors), KeyExperimental)
}

// TestValidate_Warnings tests recommended-key and unknown-key warnings
func TestValidate_Warnings(t *testing.T) {
	src := `[general]
name=x
qgisMinimumVersion=3.0
description=d
version=1.0
author=a
email=a@b.co
changelog=whatever
`
	result := ValidateBytes([]byte(src))
	assert.True(t, result.Valid, "warnings must not invalidate the descriptor")

	got := fields(result.Warnings)
	assert.Contains(t, got, KeyTracker)
	assert.Contains(t, got, KeyRepository)
	assert.Contains(t, got, KeyHomepage)
	assert.Contains(t, got, "changelog")
}

// TestValidate_DeprecatedAndExperimental tests the conflicting-flags warning
func TestValidate_DeprecatedAndExperimental(t *testing.T) {
	d := &Descriptor{
		Name:               "x",
		QGISMinimumVersion: "3.0",
		Description:        "d",
		Version:            "1.0",
		Author:             "a",
		Email:              "a@b.co",
		Tracker:            "https://t",
		Repository:         "https://r",
		Homepage:           "https://h",
		Deprecated:         true,
		Experimental:       true,
	}

	result := Validate(d)
	assert.True(t, result.Valid)
	assert.Contains(t, fields(result.Warnings), KeyDeprecated)
}

// TestValidateBytes_SyntaxError tests that parse failures surface as a result
func TestValidateBytes_SyntaxError(t *testing.T) {
	result := ValidateBytes([]byte("no sections here"))
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, GeneralSection, result.Errors[0].Field)
}
