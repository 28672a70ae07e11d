// Package domain defines core business entities and value objects for gitgo.
//
// The domain layer is independent of infrastructure concerns: it holds the
// version math, the commit-message policy, and the release state machine
// types, with no knowledge of how git or the AI tool are actually invoked.
package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// BumpKind selects which version component is incremented when proposing
// the next release version.
type BumpKind string

const (
	BumpPatch BumpKind = "patch"
	BumpMinor BumpKind = "minor"
	BumpMajor BumpKind = "major"
)

// ParseBumpKind maps a user-supplied string onto a BumpKind, defaulting to patch.
func ParseBumpKind(s string) BumpKind {
	switch BumpKind(s) {
	case BumpMinor:
		return BumpMinor
	case BumpMajor:
		return BumpMajor
	default:
		return BumpPatch
	}
}

// VersionTag is a parsed vMAJOR.MINOR.PATCH release tag.
type VersionTag struct {
	Major uint64
	Minor uint64
	Patch uint64
	Raw   string
}

var tagPattern = regexp.MustCompile(`^v(\d+)\.(\d+)\.(\d+)$`)

// ParseTag parses a tag of the form vX.Y.Z. Tags that do not match the
// pattern are reported as invalid rather than partially parsed.
func ParseTag(raw string) (VersionTag, bool) {
	m := tagPattern.FindStringSubmatch(raw)
	if m == nil {
		return VersionTag{}, false
	}
	major, err1 := strconv.ParseUint(m[1], 10, 64)
	minor, err2 := strconv.ParseUint(m[2], 10, 64)
	patch, err3 := strconv.ParseUint(m[3], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return VersionTag{}, false
	}
	return VersionTag{Major: major, Minor: minor, Patch: patch, Raw: raw}, true
}

// String renders the canonical tag form, ignoring any leading-zero quirks
// the raw tag text may have carried.
func (v VersionTag) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Less orders tags component-wise: major, then minor, then patch.
func (v VersionTag) Less(other VersionTag) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}

// Equal compares the numeric tuple only; raw text differences (for example
// leading zeros) do not make two tags distinct.
func (v VersionTag) Equal(other VersionTag) bool {
	return v.Major == other.Major && v.Minor == other.Minor && v.Patch == other.Patch
}

// Bump returns the tag with the given component incremented. Minor bumps
// zero the patch; major bumps zero minor and patch.
func (v VersionTag) Bump(kind BumpKind) VersionTag {
	switch kind {
	case BumpMajor:
		return VersionTag{Major: v.Major + 1}
	case BumpMinor:
		return VersionTag{Major: v.Major, Minor: v.Minor + 1}
	default:
		return VersionTag{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// NextVersion proposes the next release tag from the full tag list.
//
// Every tag is parsed against the vX.Y.Z pattern; non-matching tags are
// skipped silently. The current version is the maximum surviving tag under
// numeric tuple ordering (never lexical ordering, so v0.10.0 beats v0.9.0).
// An empty or fully malformed tag set degrades to the v0.0.0 baseline.
// If the bumped candidate collides with an existing tuple (possible when
// the repository carries duplicate tags in variant spellings), the patch
// component is advanced until the candidate is free. This never errors.
func NextVersion(tags []string, kind BumpKind) VersionTag {
	taken := make(map[VersionTag]bool, len(tags))
	current := VersionTag{}
	for _, raw := range tags {
		parsed, ok := ParseTag(raw)
		if !ok {
			continue
		}
		key := VersionTag{Major: parsed.Major, Minor: parsed.Minor, Patch: parsed.Patch}
		taken[key] = true
		if current.Less(parsed) {
			current = parsed
		}
	}

	next := current.Bump(kind)
	for taken[VersionTag{Major: next.Major, Minor: next.Minor, Patch: next.Patch}] {
		next.Patch++
	}
	next.Raw = next.String()
	return next
}

// CurrentVersion returns the maximum valid tag, or v0.0.0 and false when no
// tag parses.
func CurrentVersion(tags []string) (VersionTag, bool) {
	current := VersionTag{}
	found := false
	for _, raw := range tags {
		parsed, ok := ParseTag(raw)
		if !ok {
			continue
		}
		if !found || current.Less(parsed) {
			current = parsed
			found = true
		}
	}
	return current, found
}
