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

package engine

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model"
	"slml.dev/slmlv/slcore/model/specver"
	"slml.dev/slmlv/slcore/spec"
)

// ValidationResult is the complete outcome of one evaluation.
//
// Reasons lists the reason code of every failing rule, in rule
// declaration order; evaluation never stops at the first failure. An
// ADMISSIBLE result carries no reasons; a CORRUPTED result carries at
// least one. The result is a pure function of (SpecVersion, manifest
// content): the same pair always yields an identical result.
type ValidationResult struct {
	// Outcome is the terminal verdict.
	Outcome Outcome `json:"outcome" yaml:"outcome"`

	// Reasons are the codes of failing rules, in rule declaration order.
	Reasons []spec.ReasonCode `json:"reasons,omitempty" yaml:"reasons,omitempty"`

	// SpecVersion is the revision the manifest was evaluated against.
	SpecVersion specver.Version `json:"spec_version" yaml:"spec_version"`

	// ManifestDigest is the content digest of the evaluated manifest.
	ManifestDigest string `json:"manifest_digest,omitempty" yaml:"manifest_digest,omitempty"`
}

// Admissible reports whether the result's verdict is ADMISSIBLE.
func (r ValidationResult) Admissible() bool {
	return r.Outcome == OutcomeAdmissible
}

// TypeName returns "ValidationResult". This method implements part of the
// model.Model interface.
func (r ValidationResult) TypeName() string { return "ValidationResult" }

// String returns a compact single-line representation of the result.
func (r ValidationResult) String() string {
	if len(r.Reasons) == 0 {
		return r.Outcome.String()
	}
	codes := make([]string, len(r.Reasons))
	for i, c := range r.Reasons {
		codes[i] = c.String()
	}
	return r.Outcome.String() + " [" + strings.Join(codes, ", ") + "]"
}

// Redacted returns the same representation as String. Results carry no
// sensitive material. This method implements part of the model.Model
// interface.
func (r ValidationResult) Redacted() string { return r.String() }

// IsZero reports whether the result is the zero value. This method
// implements part of the model.Model interface.
func (r ValidationResult) IsZero() bool {
	return r.Outcome == OutcomeUnknown && r.Reasons == nil &&
		r.SpecVersion.IsZero() && r.ManifestDigest == ""
}

// Validate returns nil if the result is internally consistent: a known
// non-zero outcome, reasons present exactly when the verdict is
// CORRUPTED, and well-formed reason codes.
func (r ValidationResult) Validate() error {
	if err := r.Outcome.Validate(); err != nil {
		return err
	}
	switch r.Outcome {
	case OutcomeUnknown:
		return &errors.ValidationError{Type: "ValidationResult", Field: "outcome", Reason: "must not be unknown"}
	case OutcomeAdmissible:
		if len(r.Reasons) != 0 {
			return &errors.ValidationError{Type: "ValidationResult", Field: "reasons", Reason: "must be empty for ADMISSIBLE"}
		}
	case OutcomeCorrupted:
		if len(r.Reasons) == 0 {
			return &errors.ValidationError{Type: "ValidationResult", Field: "reasons", Reason: "must not be empty for CORRUPTED"}
		}
	}
	for _, c := range r.Reasons {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return r.SpecVersion.Validate()
}

// MarshalJSON implements json.Marshaler for ValidationResult.
func (r ValidationResult) MarshalJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	type alias ValidationResult
	return json.Marshal(alias(r))
}

// UnmarshalJSON implements json.Unmarshaler for ValidationResult.
func (r *ValidationResult) UnmarshalJSON(data []byte) error {
	type alias ValidationResult
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return &errors.UnmarshalError{Type: "ValidationResult", Data: data, Reason: err.Error()}
	}
	parsed := ValidationResult(a)
	if err := parsed.Validate(); err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for ValidationResult.
func (r ValidationResult) MarshalYAML() (any, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	type alias ValidationResult
	return alias(r), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for ValidationResult.
func (r *ValidationResult) UnmarshalYAML(node *yaml.Node) error {
	type alias ValidationResult
	var a alias
	if err := node.Decode(&a); err != nil {
		return &errors.UnmarshalError{Type: "ValidationResult", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed := ValidationResult(a)
	if err := parsed.Validate(); err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Compile-time check that ValidationResult implements the model.Model
// interface.
var _ model.Model = (*ValidationResult)(nil)
