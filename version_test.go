package rescale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhimamg/rescale-go"
)

// TestVersion_Constants verifies version constants are set correctly.
func TestVersion_Constants(t *testing.T) {
	assert.NotEmpty(t, rescale.Version, "Version should not be empty")
	assert.NotEmpty(t, rescale.APIVersion, "APIVersion should not be empty")
	assert.NotEmpty(t, rescale.APIVersionRange, "APIVersionRange should not be empty")
	assert.True(t, rescale.IsCompatible(rescale.APIVersion), "target API version should be in range")

	t.Logf("SDK Version: %s", rescale.Version)
	t.Logf("API Version: %s", rescale.APIVersion)
	t.Logf("API Range: %s", rescale.APIVersionRange)
}

// TestIsCompatible tests the IsCompatible convenience function.
func TestIsCompatible(t *testing.T) {
	tests := []struct {
		name       string
		version    string
		compatible bool
	}{
		{"exact target version", "2.0.0", true},
		{"path segment form", "v2", true},
		{"minor version in range", "2.3", true},
		{"version too old", "1.9.0", false},
		{"version too new", "3.0.0", false},
		{"empty version", "", false},
		{"invalid version", "not-a-version", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := rescale.IsCompatible(tt.version)
			assert.Equal(t, tt.compatible, result, "IsCompatible(%q) should return %v", tt.version, tt.compatible)
		})
	}
}

// TestCheckCompatibility_Compatible tests CheckCompatibility with compatible versions.
func TestCheckCompatibility_Compatible(t *testing.T) {
	for _, version := range []string{"2.0.0", "2", "v2", "2.1.5"} {
		t.Run(version, func(t *testing.T) {
			result := rescale.CheckCompatibility(version)

			assert.Equal(t, rescale.Compatible, result.Status)
			assert.True(t, result.IsCompatible())
			assert.Equal(t, version, result.ServerVersion)
			assert.Equal(t, rescale.Version, result.SDKVersion)
			assert.Equal(t, rescale.APIVersion, result.TargetAPIVersion)
			assert.Equal(t, rescale.APIVersionRange, result.SupportedRange)
			assert.Contains(t, result.Message, "compatible")
		})
	}
}

// TestCheckCompatibility_Incompatible tests CheckCompatibility with incompatible versions.
func TestCheckCompatibility_Incompatible(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"too old", "1.0.0"},
		{"too new major", "3.0.0"},
		{"path segment form", "v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := rescale.CheckCompatibility(tt.version)

			assert.Equal(t, rescale.Incompatible, result.Status)
			assert.False(t, result.IsCompatible())
			assert.Equal(t, tt.version, result.ServerVersion)
			assert.Contains(t, result.Message, "not compatible")
		})
	}
}

// TestCheckCompatibility_Unknown tests CheckCompatibility with unparseable versions.
func TestCheckCompatibility_Unknown(t *testing.T) {
	for _, version := range []string{"", "not-a-version", "abc.def.ghi"} {
		t.Run(version, func(t *testing.T) {
			result := rescale.CheckCompatibility(version)

			assert.Equal(t, rescale.Unknown, result.Status)
			assert.False(t, result.IsCompatible())
			assert.NotEmpty(t, result.Message)
		})
	}
}

// TestCompatibilityStatus_String tests the String method on CompatibilityStatus.
func TestCompatibilityStatus_String(t *testing.T) {
	tests := []struct {
		status   rescale.CompatibilityStatus
		expected string
	}{
		{rescale.Compatible, "compatible"},
		{rescale.Incompatible, "incompatible"},
		{rescale.Unknown, "unknown"},
		{rescale.CompatibilityStatus(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

// TestMustBeCompatible tests that MustBeCompatible panics only outside the range.
func TestMustBeCompatible(t *testing.T) {
	require.NotPanics(t, func() {
		rescale.MustBeCompatible("2.0.0")
	})
	require.Panics(t, func() {
		rescale.MustBeCompatible("1.0.0")
	})
	require.Panics(t, func() {
		rescale.MustBeCompatible("invalid")
	})
}
