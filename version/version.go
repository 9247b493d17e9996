/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package version

import (
	"fmt"
)

// ApplicationVersion represents application version.
var ApplicationVersion = NewVersion(0, 3, 0)

// SemanticVersion represents version information with Semantic Versioning specifications.
type SemanticVersion struct {
	major uint
	minor uint
	patch uint
}

// NewVersion initializes a new instance of SemanticVersion.
func NewVersion(major, minor, patch uint) *SemanticVersion {
	return &SemanticVersion{
		major: major,
		minor: minor,
		patch: patch,
	}
}

// String returns a string that represents this instance.
func (v *SemanticVersion) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.major, v.minor, v.patch)
}

// Compare returns -1, 0 or 1 depending on whether v is lower, equal or greater than v2.
func (v *SemanticVersion) Compare(v2 *SemanticVersion) int {
	switch {
	case v.major != v2.major:
		return cmp(v.major, v2.major)
	case v.minor != v2.minor:
		return cmp(v.minor, v2.minor)
	default:
		return cmp(v.patch, v2.patch)
	}
}

// IsEqual returns true if version instances are equal.
func (v *SemanticVersion) IsEqual(v2 *SemanticVersion) bool { return v.Compare(v2) == 0 }

// IsLess returns true if version instance is less than v2.
func (v *SemanticVersion) IsLess(v2 *SemanticVersion) bool { return v.Compare(v2) < 0 }

// IsGreater returns true if version instance is greater than v2.
func (v *SemanticVersion) IsGreater(v2 *SemanticVersion) bool { return v.Compare(v2) > 0 }

func cmp(a, b uint) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
