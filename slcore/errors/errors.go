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

// Package errors provides the reusable error types shared across the slmlv
// core packages.
//
// Two families of errors live here. The first family mirrors the needs of
// strongly typed enum-like model values (Role, RuleKind, Outcome, ...):
//
//   - ParseError
//     Returned when parsing a string into an enum-like type fails.
//
//   - MarshalError
//     Returned when marshaling an invalid enum-like value fails.
//
//   - UnmarshalError
//     Returned when unmarshaling data into a typed value fails due to
//     invalid input, parse errors or constraint violations.
//
//   - ValidationError
//     Returned when validation of a model type fails. Use this in
//     Validate() methods to report constraint violations, missing required
//     fields, or invalid field values.
//
// The second family is the SLML condition taxonomy. These conditions are
// deliberately distinct from rule failure: a CORRUPTED evaluation outcome is
// a valid terminal result carried in a ValidationResult, never an error.
// Everything below is a precondition failure that prevents evaluation or
// binding from producing an outcome at all:
//
//   - MalformedManifestError
//     Raw input could not be parsed into the generic typed manifest shape.
//
//   - UnknownSpecVersionError
//     The requested spec version is not present in the registry. Never
//     silently defaulted to "latest" or "closest".
//
//   - VersionMismatchError
//     The manifest's declared version differs from the version requested
//     for evaluation.
//
//   - IntegrityError
//     A loaded rule artifact does not match its recorded release hash.
//     Fatal for that version; evaluation must not proceed.
//
//   - BootstrapError
//     A version's self-manifest did not evaluate ADMISSIBLE under its own
//     rules; the version is not release-eligible.
//
//   - UnboundClaimError
//     A declared claim has no permitted evidence.
//
//   - DisallowedEvidenceClassError
//     An evidence entry's class is not on the claim's permitted list.
//
// All errors here are simple value carriers with stable message formats.
// None of them are retried, auto-corrected, or degraded to a default
// outcome by any slmlv component; they are reported to the caller verbatim.
package errors

import (
	"strconv"
	"strings"
)

// ParseError is returned when parsing a string into a strongly typed
// enum-like value fails.
//
// Type identifies the logical type being parsed (for example, "Role",
// "RuleKind", "Outcome"), and Value contains the exact string that could
// not be interpreted. Callers MAY pattern-match on Type to translate the
// error into friendlier diagnostics.
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "Role").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
//
// The message format is stable:
//
//	"slml: invalid {Type} value: {Value}"
func (e *ParseError) Error() string {
	return "slml: invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when marshaling a typed value fails because it
// is outside the set of valid constants.
//
// This error is primarily a guardrail: it prevents invalid enum-like values
// from being silently emitted into JSON or YAML. In most cases a
// MarshalError indicates a programming error (for example, an unchecked
// numeric cast).
type MarshalError struct {
	// Type is the logical name of the type being marshaled.
	Type string

	// Value is the underlying numeric representation that does not
	// correspond to a known constant.
	Value int
}

// Error implements the error interface for MarshalError.
//
// The message format is stable:
//
//	"slml: cannot marshal invalid {Type} value: {Value}"
func (e *MarshalError) Error() string {
	return "slml: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when unmarshaling data into a typed value
// fails.
//
// Type identifies the logical type being populated, Data contains the
// original raw payload (typically a JSON or YAML fragment), and Reason is a
// human-readable description of what went wrong.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal. Callers MAY log or
	// redact this field depending on size considerations.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The message format is stable:
//
//	"slml: cannot unmarshal {Type}: {Reason}"
//
// Data is intentionally not included in the formatted message; callers can
// log it separately when appropriate.
func (e *UnmarshalError) Error() string {
	return "slml: cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError is returned when validation of a model type fails.
//
// Type identifies the logical name of the type being validated (for
// example, "Manifest", "Rule"), Field optionally identifies which field
// failed, Reason explains the failure, and Value optionally carries the
// problematic value.
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field optionally identifies the field that failed validation.
	Field string

	// Reason is a short, human-readable explanation of the failure.
	Reason string

	// Value optionally contains the problematic value.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The message format is stable:
//
//	"slml: invalid {Type}: {Reason}"          (no field)
//	"slml: invalid {Type}.{Field}: {Reason}"  (with field)
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "slml: invalid " + e.Type + ": " + e.Reason
	}
	return "slml: invalid " + e.Type + "." + e.Field + ": " + e.Reason
}

// MalformedManifestError is returned by the manifest loader when raw input
// cannot be parsed into the generic typed manifest shape.
//
// Path identifies the offending field or document path when known (for
// example, "consent.consent_expires_at"), and Reason describes the
// syntactic or type-shape failure. This condition is distinct from
// structural inadmissibility: a manifest that fails to load never reaches
// rule evaluation, and the two failure classes have different remediation
// paths for a caller.
type MalformedManifestError struct {
	// Path is the manifest field or document path that failed, if known.
	Path string

	// Reason describes the parse or type-shape failure.
	Reason string
}

// Error implements the error interface for MalformedManifestError.
//
// The message format is stable:
//
//	"slml: malformed manifest: {Reason}"          (no path)
//	"slml: malformed manifest at {Path}: {Reason}" (with path)
func (e *MalformedManifestError) Error() string {
	if e.Path == "" {
		return "slml: malformed manifest: " + e.Reason
	}
	return "slml: malformed manifest at " + e.Path + ": " + e.Reason
}

// UnknownSpecVersionError is returned by the spec registry when the
// requested version identifier is not present.
//
// The registry never falls back to another version; absence is surfaced to
// the caller as this condition.
type UnknownSpecVersionError struct {
	// Version is the requested version identifier, as given by the caller.
	Version string
}

// Error implements the error interface for UnknownSpecVersionError.
//
// The message format is stable:
//
//	"slml: unknown spec version: {Version}"
func (e *UnknownSpecVersionError) Error() string {
	return "slml: unknown spec version: " + e.Version
}

// VersionMismatchError is returned by the invariant engine when a
// manifest's declared spec version differs from the version requested for
// evaluation.
//
// A manifest declaring v0.1 must not be evaluated "as if" against v0.2,
// even on explicit request; no rules are evaluated when this condition is
// raised.
type VersionMismatchError struct {
	// Declared is the version the manifest declares for itself.
	Declared string

	// Requested is the version the caller asked to evaluate against.
	Requested string
}

// Error implements the error interface for VersionMismatchError.
//
// The message format is stable:
//
//	"slml: version mismatch: manifest declares {Declared}, requested {Requested}"
func (e *VersionMismatchError) Error() string {
	return "slml: version mismatch: manifest declares " + e.Declared +
		", requested " + e.Requested
}

// IntegrityError is returned when a version's rule-definition artifacts do
// not match their recorded release hashes.
//
// Violations lists the individual discrepancies in a stable, sorted order;
// each entry has the form "MISSING: path", "EXTRA: path" or
// "MISMATCH: path". This condition is fatal for the affected version:
// evaluation halts rather than proceeding with possibly tampered rules. It
// is reported distinctly from CORRUPTED, which is a statement about a
// manifest, not about the rule artifacts.
type IntegrityError struct {
	// Version is the affected version identifier.
	Version string

	// Violations lists individual hash discrepancies in sorted order.
	Violations []string
}

// Error implements the error interface for IntegrityError.
//
// The message format is stable:
//
//	"slml: integrity violation for {Version}: {violation; violation; ...}"
func (e *IntegrityError) Error() string {
	return "slml: integrity violation for " + e.Version + ": " +
		strings.Join(e.Violations, "; ")
}

// BootstrapError is returned when a version's self-manifest does not
// evaluate ADMISSIBLE under that version's own rules.
//
// Reasons carries the reason codes from the CORRUPTED result, in rule
// declaration order. The condition is fatal to the affected version's
// release eligibility only; it says nothing about already-published
// versions.
type BootstrapError struct {
	// Version is the version whose self-manifest failed.
	Version string

	// Reasons are the reason codes, in rule declaration order.
	Reasons []string
}

// Error implements the error interface for BootstrapError.
//
// The message format is stable:
//
//	"slml: self-manifest for {Version} is CORRUPTED: {R..., R...}"
func (e *BootstrapError) Error() string {
	return "slml: self-manifest for " + e.Version + " is CORRUPTED: " +
		strings.Join(e.Reasons, ", ")
}

// UnboundClaimError is returned by the claim/evidence binder when a
// declared claim ends up with no permitted evidence.
type UnboundClaimError struct {
	// Claim is the claim identifier that could not be bound.
	Claim string
}

// Error implements the error interface for UnboundClaimError.
//
// The message format is stable:
//
//	"slml: unbound claim: {Claim}"
func (e *UnboundClaimError) Error() string {
	return "slml: unbound claim: " + e.Claim
}

// DisallowedEvidenceClassError is returned by the claim/evidence binder
// when an evidence entry's class is not on the permitted list for its
// claim.
type DisallowedEvidenceClassError struct {
	// Claim is the claim the evidence was supplied for.
	Claim string

	// Class is the evidence class that is not permitted.
	Class string

	// Permitted lists the classes the version's rules allow for the claim.
	Permitted []string
}

// Error implements the error interface for DisallowedEvidenceClassError.
//
// The message format is stable:
//
//	"slml: disallowed evidence class {Class} for claim {Claim} (permitted: {a, b})"
func (e *DisallowedEvidenceClassError) Error() string {
	return "slml: disallowed evidence class " + e.Class + " for claim " +
		e.Claim + " (permitted: " + strings.Join(e.Permitted, ", ") + ")"
}
