package rescale

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version is the current SDK version.
//
// This version follows semantic versioning (https://semver.org/).
const Version = "0.1.0"

// APIVersion is the Rescale REST API version this SDK was built for.
// It corresponds to the "/api/v2/" path of [DefaultBaseURL].
const APIVersion = "2.0.0"

// APIVersionRange is the semver constraint of API versions this SDK
// supports.
const APIVersionRange = ">=2.0.0, <3.0.0"

var targetVersion = semver.MustParse(APIVersion)

// CompatibilityStatus is the outcome of a version check.
type CompatibilityStatus int

const (
	// Unknown means the version could not be parsed.
	Unknown CompatibilityStatus = iota
	// Compatible means the version is within [APIVersionRange].
	Compatible
	// Incompatible means the version is outside [APIVersionRange].
	Incompatible
)

func (s CompatibilityStatus) String() string {
	switch s {
	case Compatible:
		return "compatible"
	case Incompatible:
		return "incompatible"
	default:
		return "unknown"
	}
}

// CompatibilityResult describes how an API version relates to this SDK.
type CompatibilityResult struct {
	Status           CompatibilityStatus
	ServerVersion    string
	SDKVersion       string
	TargetAPIVersion string
	SupportedRange   string
	Message          string
}

// IsCompatible reports whether Status is [Compatible].
func (r CompatibilityResult) IsCompatible() bool {
	return r.Status == Compatible
}

// CheckCompatibility checks version against [APIVersionRange].
//
// Versions may be given loosely ("2", "v2", "2.1"); they are coerced to
// semantic form before comparison.
func CheckCompatibility(version string) CompatibilityResult {
	res := CompatibilityResult{
		ServerVersion:    version,
		SDKVersion:       Version,
		TargetAPIVersion: APIVersion,
		SupportedRange:   APIVersionRange,
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		res.Status = Unknown
		res.Message = fmt.Sprintf("cannot parse API version %q: %v", version, err)
		return res
	}

	c, err := semver.NewConstraint(APIVersionRange)
	if err != nil {
		res.Status = Unknown
		res.Message = fmt.Sprintf("invalid supported range %q: %v", APIVersionRange, err)
		return res
	}

	if c.Check(v) {
		res.Status = Compatible
		res.Message = fmt.Sprintf("API version %s is compatible with SDK %s", v, Version)
		return res
	}

	res.Status = Incompatible
	if v.Major() < targetVersion.Major() {
		res.Message = fmt.Sprintf("API version %s is not compatible with SDK %s: too old, supported %s", v, Version, APIVersionRange)
	} else {
		res.Message = fmt.Sprintf("API version %s is not compatible with SDK %s: supported %s", v, Version, APIVersionRange)
	}
	return res
}

// IsCompatible reports whether version is within [APIVersionRange].
func IsCompatible(version string) bool {
	return CheckCompatibility(version).IsCompatible()
}

// MustBeCompatible panics unless version is within [APIVersionRange].
func MustBeCompatible(version string) {
	if res := CheckCompatibility(version); !res.IsCompatible() {
		panic("rescale: " + res.Message)
	}
}
