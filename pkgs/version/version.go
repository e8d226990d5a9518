// Package version provides the version values and ranges used by package
// recipes. Versions are dotted release numbers ("1.10.7") or branch names
// ("develop"); ranges are inclusive on both ends.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// V is a version identifier: a dotted release number or a branch name.
type V string

// String returns the version as a plain string.
func (v V) String() string { return string(v) }

// IsBranch reports whether v names a VCS branch rather than a release.
// A branch version has a non-digit first character.
func (v V) IsBranch() bool {
	return v != "" && (v[0] < '0' || v[0] > '9')
}

// UpTo returns the version truncated to its first n dotted components.
// UpTo(2) of "1.10.7" is "1.10". Branch names are returned unchanged.
func (v V) UpTo(n int) V {
	if v.IsBranch() {
		return v
	}
	parts := strings.Split(string(v), ".")
	if len(parts) <= n {
		return v
	}
	return V(strings.Join(parts[:n], "."))
}

// Compare orders two versions. Release numbers that both parse as semantic
// versions are ordered by semver; everything else falls back to GNU version
// ordering, which places branch names like "develop" above any release.
func Compare(a, b V) int {
	va, vb := "v"+string(a), "v"+string(b)
	if semver.IsValid(va) && semver.IsValid(vb) {
		return semver.Compare(va, vb)
	}
	return gnuCompare(string(a), string(b))
}

// Latest returns the highest version in vs, or "" for an empty slice.
func Latest(vs []V) V {
	var max V
	for _, v := range vs {
		if max == "" || Compare(v, max) > 0 {
			max = v
		}
	}
	return max
}

// A Range is an inclusive version interval. A zero From or To leaves that
// end open; the zero Range matches every version.
type Range struct {
	From V
	To   V
}

// AtMost returns the range ":v".
func AtMost(v V) Range { return Range{To: v} }

// AtLeast returns the range "v:".
func AtLeast(v V) Range { return Range{From: v} }

// Between returns the range "from:to".
func Between(from, to V) Range { return Range{From: from, To: to} }

// Only returns the range matching exactly v and its point releases.
func Only(v V) Range { return Range{From: v, To: v} }

// Contains reports whether v lies within the range. An upper bound includes
// point releases of itself, so "1.8.12.2" satisfies ":1.8.12".
func (r Range) Contains(v V) bool {
	if r.From != "" && Compare(v, r.From) < 0 {
		return false
	}
	if r.To != "" && Compare(v, r.To) > 0 && !strings.HasPrefix(string(v), string(r.To)+".") {
		return false
	}
	return true
}

// ContainsAny reports whether v lies within any of the given ranges.
// An empty slice matches every version.
func ContainsAny(ranges []Range, v V) bool {
	if len(ranges) == 0 {
		return true
	}
	for _, r := range ranges {
		if r.Contains(v) {
			return true
		}
	}
	return false
}
