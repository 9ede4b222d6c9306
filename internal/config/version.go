package config

import (
	"github.com/Masterminds/semver/v3"
)

// versionConstraint accepts any configuration format with the same minor
// version as ConfigFormatVersion.
var versionConstraint *semver.Constraints

func init() {
	var err error
	versionConstraint, err = semver.NewConstraint("~" + ConfigFormatVersion)
	if err != nil {
		panic(err)
	}
}

// IsVersionCompatible reports whether the given format version can be read.
// Returns false for invalid version strings.
func IsVersionCompatible(version string) bool {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return versionConstraint.Check(v)
}
