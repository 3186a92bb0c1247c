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

package spec

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model"
)

// Params carries the numeric thresholds a rule's predicate is evaluated
// with. Which fields a predicate reads depends on its kind; unused fields
// are ignored. All thresholds are part of the published revision and are
// immutable once the revision is tagged.
type Params struct {
	// Epsilon is the tolerance for weight-sum normalization.
	Epsilon float64 `json:"epsilon,omitempty" yaml:"epsilon,omitempty"`

	// MaxRatio is the upper bound on the user-to-beneficiary weighted
	// burden ratio.
	MaxRatio float64 `json:"max_ratio,omitempty" yaml:"max_ratio,omitempty"`

	// Tolerance is the upper bound on the relative burden spread between
	// user and beneficiary entities.
	Tolerance float64 `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`
}

// IsZero reports whether no threshold is set.
func (p Params) IsZero() bool {
	return p == Params{}
}

// Validate returns nil if every set threshold is non-negative.
func (p Params) Validate() error {
	if p.Epsilon < 0 {
		return &errors.ValidationError{Type: "Params", Field: "epsilon", Reason: "must be non-negative", Value: p.Epsilon}
	}
	if p.MaxRatio < 0 {
		return &errors.ValidationError{Type: "Params", Field: "max_ratio", Reason: "must be non-negative", Value: p.MaxRatio}
	}
	if p.Tolerance < 0 {
		return &errors.ValidationError{Type: "Params", Field: "tolerance", Reason: "must be non-negative", Value: p.Tolerance}
	}
	return nil
}

// Rule binds a predicate kind to the reason code it emits on failure,
// together with its thresholds. A rule set is an ordered list of rules;
// the order in which they are declared is the order in which reason codes
// appear in a CORRUPTED result.
type Rule struct {
	// ID uniquely identifies the rule within its rule set.
	ID string `json:"id" yaml:"id"`

	// Kind selects the predicate evaluated for this rule.
	Kind RuleKind `json:"kind" yaml:"kind"`

	// Code is the reason code emitted when the predicate does not hold.
	Code ReasonCode `json:"code" yaml:"code"`

	// Params carries the rule's thresholds, if any.
	Params Params `json:"params,omitempty" yaml:"params,omitempty"`
}

// TypeName returns "Rule". This method implements part of the model.Model
// interface.
func (r Rule) TypeName() string { return "Rule" }

// String returns a compact single-line representation of the rule.
func (r Rule) String() string {
	return r.ID + " (" + r.Kind.String() + " -> " + r.Code.String() + ")"
}

// Redacted returns the same representation as String. Rules carry no
// sensitive material. This method implements part of the model.Model
// interface.
func (r Rule) Redacted() string { return r.String() }

// IsZero reports whether the rule is the zero value. This method
// implements part of the model.Model interface.
func (r Rule) IsZero() bool {
	return r.ID == "" && r.Kind == KindUnspecified && r.Code == "" && r.Params.IsZero()
}

// Validate returns nil if the rule has an identifier, a concrete kind, a
// well-formed reason code, and valid thresholds.
func (r Rule) Validate() error {
	if r.ID == "" {
		return &errors.ValidationError{Type: "Rule", Field: "id", Reason: "must not be empty"}
	}
	if err := r.Kind.Validate(); err != nil {
		return err
	}
	if r.Kind == KindUnspecified {
		return &errors.ValidationError{Type: "Rule", Field: "kind", Reason: "must declare a concrete kind", Value: r.ID}
	}
	if err := r.Code.Validate(); err != nil {
		return err
	}
	return r.Params.Validate()
}

// MarshalJSON implements json.Marshaler for Rule.
func (r Rule) MarshalJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	type alias Rule
	return json.Marshal(alias(r))
}

// UnmarshalJSON implements json.Unmarshaler for Rule.
func (r *Rule) UnmarshalJSON(data []byte) error {
	type alias Rule
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return &errors.UnmarshalError{Type: "Rule", Data: data, Reason: err.Error()}
	}
	parsed := Rule(a)
	if err := parsed.Validate(); err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for Rule.
func (r Rule) MarshalYAML() (any, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	type alias Rule
	return alias(r), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Rule.
func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	type alias Rule
	var a alias
	if err := node.Decode(&a); err != nil {
		return &errors.UnmarshalError{Type: "Rule", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed := Rule(a)
	if err := parsed.Validate(); err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Compile-time check that Rule implements the model.Model interface.
var _ model.Model = (*Rule)(nil)
