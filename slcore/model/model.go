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

// Package model defines the core contracts that all slmlv domain model
// types implement to guarantee validation, serialization, safe logging,
// and zero-value detection across the system.
//
// Every domain type representing an SLML concept (Manifest, Entity,
// Consent, Rule, ValidationResult, ...) implements the Model interface or
// its constituent parts. These contracts exist to serve the determinism
// discipline of the validator: a value that passes Validate is in a state
// that will serialize, compare, and evaluate identically on every call, in
// every process.
//
// Unless explicitly documented otherwise, model types are immutable value
// types: methods never mutate their receiver, which makes concurrent reads
// safe without coordination. This property is load-bearing: rule
// evaluation is specified as a pure function of (SpecVersion, Manifest),
// and the model layer is where that purity starts.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining the fundamental contracts required
// of slmlv domain types. Types implementing Model participate in the
// generic operations provided by this package (ValidateAll, FilterZero,
// ToJSON, ToYAML).
//
// Implementations MUST satisfy all embedded interfaces: Validatable checks
// invariants; Serializable provides round-trip JSON and YAML encoding;
// Loggable offers a redaction-aware string form; Identifiable supplies a
// canonical type name; ZeroCheckable detects empty instances.
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable is the contract for types that validate their own state.
//
// Validate MUST check required fields, cross-field consistency, and any
// nested objects, returning nil if and only if the instance is fully
// valid. Error messages MUST say what is invalid ("Entity.ID must not be
// empty"), not merely that something is.
//
// Validate MUST be deterministic and idempotent, MUST NOT mutate the
// receiver, MUST NOT perform I/O, and MUST NOT consult ambient state such
// as the clock or environment. Callers invoke it at trust boundaries:
// after unmarshaling, before marshaling, and before handing a value to the
// invariant engine.
type Validatable interface {
	// Validate returns nil if the instance satisfies all invariants, or a
	// descriptive error explaining what is wrong.
	Validate() error
}

// Serializable is the contract for types with round-trip JSON and YAML
// encodings.
//
// Implementations MUST validate before marshaling (invalid values must not
// leak into artifacts or payloads) and after unmarshaling (external input
// must not construct invalid values). A value serialized and then
// deserialized MUST equal the original; this round-trip stability is what
// allows rule sets and results to be content-hashed.
//
// Implementations SHOULD use the type-alias pattern to avoid recursive
// marshal calls:
//
//	func (m Manifest) MarshalJSON() ([]byte, error) {
//	    if err := m.Validate(); err != nil {
//	        return nil, err
//	    }
//	    type alias Manifest
//	    return json.Marshal((alias)(m))
//	}
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable is the contract for types that provide string representations
// for logging and diagnostics.
//
// Redacted returns a form safe for production logs; String MAY include
// full detail and is intended for development and test output. SLML
// manifests describe systems, not people, so for most types the two forms
// coincide; the split exists so types carrying locators or free-form
// references can mask them without changing call sites.
type Loggable interface {
	// Redacted returns a string representation safe for production
	// logging. It MUST NOT mutate the receiver and MUST be safe for
	// concurrent use.
	Redacted() string

	// String returns a human-readable representation that MAY include
	// full detail. It MUST NOT mutate the receiver and MUST be safe for
	// concurrent use.
	String() string
}

// Identifiable is the contract for types that name themselves.
//
// TypeName MUST return a constant, CamelCase name unique within slmlv and
// without a package prefix (for example, "Manifest", "RuleSet",
// "ValidationResult"). The name identifies the type, never the instance.
type Identifiable interface {
	// TypeName returns the canonical name of this model type. It SHOULD
	// return a string constant and MUST NOT allocate.
	TypeName() string
}

// ZeroCheckable is the contract for types that can report whether they are
// in a zero or empty state, enabling optional-field detection and
// filtering of placeholder values.
//
// IsZero MUST return true if and only if the instance is semantically
// empty. For enum types whose zero constant is meaningful, IsZero
// returning true is not an error condition.
type ZeroCheckable interface {
	// IsZero reports whether this instance contains no meaningful data.
	// It MUST be fast, deterministic, and free of side effects.
	IsZero() bool
}

// Comparable is the optional contract for value types that support
// equality testing in tests and business logic.
//
// Equal MUST be reflexive, symmetric, transitive, and consistent, MUST
// compare all semantically significant fields, and MUST ignore internal or
// cached fields that do not affect the logical value.
type Comparable[T any] interface {
	// Equal reports whether this instance and other represent the same
	// logical value.
	Equal(other T) bool
}

// Cloneable is the optional contract for types that can produce deep
// copies sharing no references with the original.
//
// Clone MUST preserve validity: cloning a valid instance yields a valid
// instance. For immutable value types Clone MAY return the receiver.
type Cloneable[T any] interface {
	// Clone creates a deep copy of this instance.
	Clone() T
}
