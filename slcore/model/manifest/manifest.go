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

// Package manifest defines the typed in-memory representation of an SLML
// manifest and the loader that produces it from raw input.
//
// The package enforces a deliberate separation: loading performs only
// syntactic and type-shape validation (the document parses, fields have
// the declared types, the mandatory spec version is present), while
// structural admissibility is decided later by the invariant engine
// against a specific spec version. "Manifest is not even parseable" and
// "manifest parses but is inadmissible" are different failure classes with
// different remediation paths, and the package boundary keeps them from
// blurring.
//
// All manifest types are immutable value types implementing model.Model.
// An optional manifest section that is absent is represented by a nil
// pointer (sections) or a zero value (fields); rule predicates treat
// absence as a distinct, explicit input, never as an implicit pass.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model"
	"slml.dev/slmlv/slcore/model/specver"
)

// System is the manifest section declaring which entities the system is
// operated by and for.
//
// The slices are pointers-to-slice semantics via nil: a nil slice means
// the declaration is absent (the required-sections rule reports it), while
// an empty non-nil slice is an explicit declaration of "no entities".
type System struct {
	// DeclaredUserEntities lists the entity IDs declared as users.
	DeclaredUserEntities []string `json:"declared_user_entities" yaml:"declared_user_entities"`

	// DeclaredBeneficiaryEntities lists the entity IDs declared as
	// beneficiaries.
	DeclaredBeneficiaryEntities []string `json:"declared_beneficiary_entities" yaml:"declared_beneficiary_entities"`
}

// String returns a human-readable representation of the System section.
func (s System) String() string {
	return fmt.Sprintf("System{users:%d beneficiaries:%d}",
		len(s.DeclaredUserEntities), len(s.DeclaredBeneficiaryEntities))
}

// Redacted returns the same representation as String. This method
// implements part of the model.Model interface.
func (s System) Redacted() string {
	return s.String()
}

// TypeName returns "System". This method implements part of the
// model.Model interface.
func (s System) TypeName() string {
	return "System"
}

// IsZero reports whether the System section is empty. This method
// implements part of the model.Model interface.
func (s System) IsZero() bool {
	return s.DeclaredUserEntities == nil && s.DeclaredBeneficiaryEntities == nil
}

// Validate checks the System type shape. Any combination of declarations
// is loadable; completeness is the required-sections rule's concern.
func (s System) Validate() error {
	return nil
}

// MarshalJSON implements json.Marshaler for System.
func (s System) MarshalJSON() ([]byte, error) {
	type alias System
	return json.Marshal((alias)(s))
}

// UnmarshalJSON implements json.Unmarshaler for System.
func (s *System) UnmarshalJSON(data []byte) error {
	type alias System
	if err := json.Unmarshal(data, (*alias)(s)); err != nil {
		return &errors.UnmarshalError{Type: "System", Data: data, Reason: err.Error()}
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler for System.
func (s System) MarshalYAML() (any, error) {
	type alias System
	return (alias)(s), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for System.
func (s *System) UnmarshalYAML(node *yaml.Node) error {
	type alias System
	if err := node.Decode((*alias)(s)); err != nil {
		return &errors.UnmarshalError{Type: "System", Reason: err.Error()}
	}
	return nil
}

// Compile-time check that System implements the model.Model interface.
var _ model.Model = (*System)(nil)

// Manifest is the typed representation of one SLML manifest: a versioned,
// structured declaration of claims about a system.
//
// This type implements the model.Model interface. A Manifest is
// well-formed once Load returns it; whether it is ADMISSIBLE under a
// given spec version is exclusively the invariant engine's verdict.
//
// Optional sections are pointers so that an absent section survives as an
// explicit nil input into rule evaluation rather than a default-populated
// struct.
type Manifest struct {
	// SLMLVersion is the spec version this manifest declares itself
	// against. It is the one field the loader requires: a manifest that
	// does not say which rules it is written for cannot be evaluated at
	// all.
	SLMLVersion specver.Version `json:"slml_version" yaml:"slml_version"`

	// Entities lists the declared participants.
	Entities []Entity `json:"entities,omitempty" yaml:"entities,omitempty"`

	// System declares the user and beneficiary entity sets; nil when the
	// section is absent.
	System *System `json:"system,omitempty" yaml:"system,omitempty"`

	// Ownership declares the ownership regime; nil when the section is
	// absent.
	Ownership *Ownership `json:"ownership,omitempty" yaml:"ownership,omitempty"`

	// Consent declares the consent regime; nil when the section is
	// absent.
	Consent *Consent `json:"consent,omitempty" yaml:"consent,omitempty"`

	// Inconvenience declares the inconvenience model; nil when the
	// section is absent.
	Inconvenience *Inconvenience `json:"inconvenience,omitempty" yaml:"inconvenience,omitempty"`

	// Obligations lists the declared obligations.
	Obligations []Obligation `json:"obligations,omitempty" yaml:"obligations,omitempty"`

	// Claims lists the declared claims for evidence binding. Never read
	// by the invariant engine.
	Claims []Claim `json:"claims,omitempty" yaml:"claims,omitempty"`
}

// EntityIDsWithRole returns the IDs of all entities declaring the given
// role, in declaration order.
func (m Manifest) EntityIDsWithRole(r Role) []string {
	var ids []string
	for _, e := range m.Entities {
		if e.Role == r {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// HasEntity reports whether an entity with the given ID is declared.
func (m Manifest) HasEntity(id string) bool {
	for _, e := range m.Entities {
		if e.ID == id {
			return true
		}
	}
	return false
}

// Digest returns the SHA-256 content hash of the Manifest's canonical
// JSON form, as lowercase hex.
//
// Canonical JSON is compact with lexicographically ordered object keys
// (the encoding/json map behavior), so structurally identical manifests
// hash identically regardless of the formatting of their source document.
// The digest keys the engine's result memoization and appears in audit
// output.
func (m Manifest) Digest() (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("cannot digest manifest: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// String returns a human-readable summary of the Manifest.
func (m Manifest) String() string {
	return fmt.Sprintf("Manifest{%s entities:%d obligations:%d claims:%d}",
		m.SLMLVersion, len(m.Entities), len(m.Obligations), len(m.Claims))
}

// Redacted returns the same representation as String. This method
// implements part of the model.Model interface.
func (m Manifest) Redacted() string {
	return m.String()
}

// TypeName returns "Manifest". This method implements part of the
// model.Model interface.
func (m Manifest) TypeName() string {
	return "Manifest"
}

// IsZero reports whether the Manifest is entirely empty. This method
// implements part of the model.Model interface.
func (m Manifest) IsZero() bool {
	return m.SLMLVersion.IsZero() && len(m.Entities) == 0 && m.System == nil &&
		m.Ownership == nil && m.Consent == nil && m.Inconvenience == nil &&
		len(m.Obligations) == 0 && len(m.Claims) == 0
}

// Validate checks the Manifest's type shape: the mandatory declared spec
// version and the shape of every present section. Section and list
// failures are aggregated so one pass reports the complete shape-defect
// set. It does not evaluate any version-specific invariant; a Manifest
// passing Validate can still be CORRUPTED.
func (m Manifest) Validate() error {
	if m.SLMLVersion.IsZero() {
		return &errors.ValidationError{
			Type:   "Manifest",
			Field:  "slml_version",
			Reason: "mandatory field is missing",
		}
	}
	if err := m.SLMLVersion.Validate(); err != nil {
		return err
	}
	var errs error
	if err := model.ValidateAll(m.Entities); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("entities: %w", err))
	}
	if m.Ownership != nil {
		errs = multierr.Append(errs, m.Ownership.Validate())
	}
	if m.Inconvenience != nil {
		errs = multierr.Append(errs, m.Inconvenience.Validate())
	}
	if err := model.ValidateAll(m.Obligations); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("obligations: %w", err))
	}
	if err := model.ValidateAll(m.Claims); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("claims: %w", err))
	}
	return errs
}

// MarshalJSON implements json.Marshaler for Manifest.
func (m Manifest) MarshalJSON() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	type alias Manifest
	return json.Marshal((alias)(m))
}

// UnmarshalJSON implements json.Unmarshaler for Manifest.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	type alias Manifest
	if err := json.Unmarshal(data, (*alias)(m)); err != nil {
		return &errors.UnmarshalError{Type: "Manifest", Data: data, Reason: err.Error()}
	}
	return m.Validate()
}

// MarshalYAML implements yaml.Marshaler for Manifest.
func (m Manifest) MarshalYAML() (any, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	type alias Manifest
	return (alias)(m), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Manifest.
func (m *Manifest) UnmarshalYAML(node *yaml.Node) error {
	type alias Manifest
	if err := node.Decode((*alias)(m)); err != nil {
		return &errors.UnmarshalError{Type: "Manifest", Reason: err.Error()}
	}
	return m.Validate()
}

// Compile-time check that Manifest implements the model.Model interface.
var _ model.Model = (*Manifest)(nil)

// Load parses raw YAML (or JSON, which YAML subsumes) into a typed
// Manifest.
//
// Load is the Manifest Loader contract: it performs syntactic and
// type-shape validation only (document parseability, field type
// conformance, closed-vocabulary enum values, and presence of the
// mandatory slml_version field) and returns a *MalformedManifestError
// identifying the failure otherwise. It never consults the spec registry
// and never evaluates version-specific invariants.
func Load(data []byte) (Manifest, error) {
	if len(data) == 0 {
		return Manifest{}, &errors.MalformedManifestError{Reason: "empty input"}
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, malformed(err)
	}

	// yaml.Unmarshal on an empty-but-commented document leaves the zero
	// value without invoking UnmarshalYAML; re-check the shape contract.
	if err := m.Validate(); err != nil {
		return Manifest{}, malformed(err)
	}

	return m, nil
}

// malformed converts a decode or shape-validation failure into the
// loader's error type, extracting a field path when the underlying error
// carries one.
func malformed(err error) *MalformedError {
	var verr *errors.ValidationError
	if stderrors.As(err, &verr) {
		return &errors.MalformedManifestError{Path: verr.Field, Reason: verr.Reason}
	}
	return &errors.MalformedManifestError{Reason: err.Error()}
}

// MalformedError aliases the shared loader error type so callers of this
// package can reference it without importing slcore/errors.
type MalformedError = errors.MalformedManifestError
