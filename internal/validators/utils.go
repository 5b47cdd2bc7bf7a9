package validators

import (
	"net/url"
	"strings"

	"golang.org/x/mod/semver"
)

// HasNoSpaces checks if a string contains no spaces
func HasNoSpaces(s string) bool {
	return !strings.Contains(s, " ")
}

// IsValidURL checks if a URL is in valid format
func IsValidURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	return u.Host != ""
}

// IsSemanticVersion checks if a version string follows semantic versioning format.
// Requires exactly three parts: major.minor.patch (optionally with prerelease/build)
func IsSemanticVersion(version string) bool {
	versionWithV := ensureVPrefix(version)
	if !semver.IsValid(versionWithV) {
		return false
	}

	// semver.IsValid accepts shorthands like v1 and v1.2
	versionCore := strings.TrimPrefix(versionWithV, "v")
	if idx := strings.IndexAny(versionCore, "-+"); idx != -1 {
		versionCore = versionCore[:idx]
	}

	return len(strings.Split(versionCore, ".")) == 3
}

// CompareVersions compares two semantic versions, returning -1, 0 or +1
func CompareVersions(v1, v2 string) int {
	return semver.Compare(ensureVPrefix(v1), ensureVPrefix(v2))
}

func ensureVPrefix(version string) string {
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}
