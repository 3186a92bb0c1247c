/*
   Copyright 2026 The SLML Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package specver defines the SLML spec version identifier.
//
// An SLML spec version names one immutable revision of the standard: a
// fixed, ordered rule set published under standards/vX.Y/. Published
// versions are never patched in place (any semantic change produces a new
// version value), so a Version is an address, not a mutable reference.
package specver

import (
	"encoding/json"
	"fmt"
	"strings"

	bsemver "github.com/blang/semver/v4"
	"gopkg.in/yaml.v3"

	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model"
)

// Version identifies one immutable SLML standard revision.
//
// This type implements the model.Model interface, providing validation,
// serialization to JSON and YAML, safe logging, type identification, and
// zero-value detection. Parsing and ordering are delegated to
// github.com/blang/semver/v4 for SemVer 2.0.0 correctness.
//
// The canonical textual form is the short identifier "vMAJOR.MINOR"
// (for example "v0.1"), matching the standards/vX.Y/ directory convention;
// a non-zero Patch is rendered as "vMAJOR.MINOR.PATCH". Prerelease and
// build-metadata components are rejected: a published standard is a plain
// release, and tolerating decorations would give one revision several
// spellings and therefore several content addresses.
//
// The zero value (0.0.0) is reserved as "no version declared" and fails
// validation; every manifest must declare a concrete version.
type Version struct {
	// Major is the first component of the version.
	//
	// Incrementing Major marks a revision of the standard that is not
	// structurally compatible with manifests written for earlier majors.
	Major int

	// Minor is the second component of the version.
	//
	// Incrementing Minor marks a new revision of the standard. Because
	// published revisions are immutable, even additive rule changes
	// require a new Minor; there is no in-place amendment.
	Minor int

	// Patch is the third component of the version.
	//
	// Patch exists for editorial re-issues that correct artifact
	// packaging without changing rule semantics. It is normally zero and
	// omitted from the short identifier.
	Patch int
}

// Parse converts a textual spec version identifier into a Version.
//
// Accepted spellings, all naming the same revision:
//
//	Parse("v0.1")   -> Version{Major: 0, Minor: 1}
//	Parse("0.1")    -> Version{Major: 0, Minor: 1}
//	Parse("v0.1.0") -> Version{Major: 0, Minor: 1}
//	Parse("0.1.0")  -> Version{Major: 0, Minor: 1}
//
// A leading "v" is stripped and a missing patch (or minor) component is
// padded with zero via semver tolerant parsing. Input carrying prerelease
// or build-metadata components, or anything else semver rejects, yields a
// *ParseError and a zero Version.
func Parse(s string) (Version, error) {
	trimmed := strings.TrimSpace(s)

	bv, err := bsemver.ParseTolerant(trimmed)
	if err != nil {
		return Version{}, &errors.ParseError{Type: "SpecVersion", Value: s}
	}
	if len(bv.Pre) > 0 || len(bv.Build) > 0 {
		return Version{}, &errors.ParseError{Type: "SpecVersion", Value: s}
	}

	return Version{
		Major: int(bv.Major),
		Minor: int(bv.Minor),
		Patch: int(bv.Patch),
	}, nil
}

// MustParse is Parse for compiled-in version identifiers; it panics on
// invalid input.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the canonical short identifier for the Version.
//
// The format is "vMAJOR.MINOR" when Patch is zero, "vMAJOR.MINOR.PATCH"
// otherwise:
//
//	Version{Major: 0, Minor: 1}.String()           // "v0.1"
//	Version{Major: 1, Minor: 2, Patch: 1}.String() // "v1.2.1"
//
// This is the form used in manifest declarations, registry lookups,
// standards directory names, and CLI flags.
func (v Version) String() string {
	if v.Patch == 0 {
		return fmt.Sprintf("v%d.%d", v.Major, v.Minor)
	}
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// DirName returns the standards directory name for the Version, which is
// identical to the short identifier (for example "v0.1" for
// standards/v0.1/).
func (v Version) DirName() string {
	return v.String()
}

// Compare returns -1, 0, or 1 when v is respectively lower than, equal to,
// or higher than other, following SemVer 2.0.0 precedence.
//
// Ordering exists for registry listings and release tooling only; the
// invariant engine never orders versions, because evaluation binds to
// exactly one version and never falls back to a "closest" one.
func (v Version) Compare(other Version) int {
	return v.toBlang().Compare(other.toBlang())
}

// Equal reports whether two Versions identify the same standard revision.
func (v Version) Equal(other Version) bool {
	return v == other
}

// toBlang converts the Version to its blang/semver representation for
// comparison. Validity is enforced separately by Validate; negative
// components would already have been rejected there.
func (v Version) toBlang() bsemver.Version {
	return bsemver.Version{
		Major: uint64(v.Major),
		Minor: uint64(v.Minor),
		Patch: uint64(v.Patch),
	}
}

// TypeName returns "SpecVersion", the name of the type for logging and
// diagnostics. This method implements part of the model.Model interface.
func (v Version) TypeName() string {
	return "SpecVersion"
}

// Redacted returns the same representation as String. Version identifiers
// carry no sensitive information. This method implements part of the
// model.Model interface.
func (v Version) Redacted() string {
	return v.String()
}

// IsZero reports whether the Version is the zero value, meaning no version
// has been declared. This method implements part of the model.Model
// interface.
func (v Version) IsZero() bool {
	return v == Version{}
}

// Validate checks that the Version is a declarable spec version.
//
// All components must be non-negative and the value must not be zero: the
// zero value means "no version declared", and a manifest without a
// declared version is malformed rather than inadmissible. This method
// implements part of the model.Model interface.
func (v Version) Validate() error {
	if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
		return &errors.ValidationError{
			Type:   "SpecVersion",
			Reason: "components must be non-negative",
			Value:  v.String(),
		}
	}
	if v.IsZero() {
		return &errors.ValidationError{
			Type:   "SpecVersion",
			Reason: "version must be declared (zero value is reserved)",
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler for Version. A valid Version is
// serialized as its short identifier string (for example "v0.1"); an
// invalid Version yields the validation error.
func (v Version) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON implements json.Unmarshaler for Version. Only the string
// form is accepted, resolved through Parse and re-validated.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "SpecVersion", Data: data, Reason: err.Error()}
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	if err := parsed.Validate(); err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for Version, emitting the short
// identifier string.
func (v Version) MarshalYAML() (any, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Version, accepting the
// same spellings as Parse.
func (v *Version) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "SpecVersion", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	if err := parsed.Validate(); err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for Version.
func (v Version) MarshalText() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for Version.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	if err := parsed.Validate(); err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Compile-time check that Version implements the model.Model interface.
var _ model.Model = (*Version)(nil)
