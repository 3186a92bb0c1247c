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
	"slml.dev/slmlv/slcore/model/manifest"
	"slml.dev/slmlv/slcore/model/specver"
)

// EvidencePolicy names the evidence classes a version's rules permit for
// one claim. The class vocabulary is open; only membership in the
// permitted list is checked when evidence is bound.
type EvidencePolicy struct {
	// Claim is the claim identifier the policy applies to.
	Claim string `json:"claim" yaml:"claim"`

	// Classes are the permitted evidence class labels for the claim.
	Classes []string `json:"classes" yaml:"classes"`
}

// Permits reports whether the policy allows the given evidence class.
func (p EvidencePolicy) Permits(class string) bool {
	for _, c := range p.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// Validate returns nil if the policy names a claim and at least one class.
func (p EvidencePolicy) Validate() error {
	if p.Claim == "" {
		return &errors.ValidationError{Type: "EvidencePolicy", Field: "claim", Reason: "must not be empty"}
	}
	if len(p.Classes) == 0 {
		return &errors.ValidationError{Type: "EvidencePolicy", Field: "classes", Reason: "must not be empty", Value: p.Claim}
	}
	for _, c := range p.Classes {
		if c == "" {
			return &errors.ValidationError{Type: "EvidencePolicy", Field: "classes", Reason: "class labels must not be empty", Value: p.Claim}
		}
	}
	return nil
}

// RuleSet is one immutable published revision of the standard: an ordered
// list of invariant rules, the evidence policies its claims are bound
// under, and the revision's own self-manifest.
//
// Rule order is semantic. A CORRUPTED result lists the reason codes of
// failing rules in exactly the order the rules are declared here.
//
// SelfManifest and Digest are companion artifacts of a revision, not part
// of its serialized rule definition; they are attached by the source that
// loads the revision.
type RuleSet struct {
	// Version is the revision identifier, e.g. v0.1.
	Version specver.Version `json:"version" yaml:"version"`

	// Rules is the ordered rule list of this revision.
	Rules []Rule `json:"rules" yaml:"rules"`

	// Evidence lists the per-claim evidence policies of this revision.
	Evidence []EvidencePolicy `json:"evidence,omitempty" yaml:"evidence,omitempty"`

	// SelfManifest is the manifest this revision publishes about itself.
	// It must evaluate ADMISSIBLE under this revision's own rules before
	// the revision is release-eligible.
	SelfManifest manifest.Manifest `json:"-" yaml:"-"`

	// Digest is the composite content digest of the revision's artifacts,
	// computed by the loading source. Empty for rule sets that were never
	// loaded through a source.
	Digest string `json:"-" yaml:"-"`
}

// Policy returns the evidence policy declared for the given claim, or
// false when the revision declares none.
func (rs *RuleSet) Policy(claim string) (EvidencePolicy, bool) {
	for _, p := range rs.Evidence {
		if p.Claim == claim {
			return p, true
		}
	}
	return EvidencePolicy{}, false
}

// TypeName returns "RuleSet". This method implements part of the
// model.Model interface.
func (rs RuleSet) TypeName() string { return "RuleSet" }

// String returns a compact single-line representation of the rule set.
func (rs RuleSet) String() string {
	return "RuleSet(" + rs.Version.String() + ")"
}

// Redacted returns the same representation as String. This method
// implements part of the model.Model interface.
func (rs RuleSet) Redacted() string { return rs.String() }

// IsZero reports whether the rule set is the zero value. This method
// implements part of the model.Model interface.
func (rs RuleSet) IsZero() bool {
	return rs.Version.IsZero() && rs.Rules == nil && rs.Evidence == nil &&
		rs.SelfManifest.IsZero() && rs.Digest == ""
}

// Validate returns nil if the rule set declares a version, at least one
// rule, unique rule identifiers, and well-formed rules and policies.
//
// The self-manifest, when attached, must itself be shape-valid and must
// declare the same version as the rule set; a revision whose self-manifest
// points at a different revision is rejected at load time rather than
// surfacing later as a bootstrap mismatch.
func (rs RuleSet) Validate() error {
	if err := rs.Version.Validate(); err != nil {
		return err
	}
	if len(rs.Rules) == 0 {
		return &errors.ValidationError{Type: "RuleSet", Field: "rules", Reason: "must declare at least one rule", Value: rs.Version.String()}
	}
	seen := make(map[string]struct{}, len(rs.Rules))
	for _, r := range rs.Rules {
		if err := r.Validate(); err != nil {
			return err
		}
		if _, dup := seen[r.ID]; dup {
			return &errors.ValidationError{Type: "RuleSet", Field: "rules", Reason: "duplicate rule id", Value: r.ID}
		}
		seen[r.ID] = struct{}{}
	}
	claims := make(map[string]struct{}, len(rs.Evidence))
	for _, p := range rs.Evidence {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, dup := claims[p.Claim]; dup {
			return &errors.ValidationError{Type: "RuleSet", Field: "evidence", Reason: "duplicate claim policy", Value: p.Claim}
		}
		claims[p.Claim] = struct{}{}
	}
	if !rs.SelfManifest.IsZero() {
		if err := rs.SelfManifest.Validate(); err != nil {
			return err
		}
		if rs.SelfManifest.SLMLVersion.Compare(rs.Version) != 0 {
			return &errors.ValidationError{
				Type:   "RuleSet",
				Field:  "self_manifest",
				Reason: "self-manifest declares " + rs.SelfManifest.SLMLVersion.String() + ", rule set is " + rs.Version.String(),
			}
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler for RuleSet.
func (rs RuleSet) MarshalJSON() ([]byte, error) {
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	type alias RuleSet
	return json.Marshal(alias(rs))
}

// UnmarshalJSON implements json.Unmarshaler for RuleSet.
func (rs *RuleSet) UnmarshalJSON(data []byte) error {
	type alias RuleSet
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return &errors.UnmarshalError{Type: "RuleSet", Data: data, Reason: err.Error()}
	}
	parsed := RuleSet(a)
	if err := parsed.Validate(); err != nil {
		return err
	}
	*rs = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for RuleSet.
func (rs RuleSet) MarshalYAML() (any, error) {
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	type alias RuleSet
	return alias(rs), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for RuleSet.
func (rs *RuleSet) UnmarshalYAML(node *yaml.Node) error {
	type alias RuleSet
	var a alias
	if err := node.Decode(&a); err != nil {
		return &errors.UnmarshalError{Type: "RuleSet", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed := RuleSet(a)
	if err := parsed.Validate(); err != nil {
		return err
	}
	*rs = parsed
	return nil
}

// Compile-time check that RuleSet implements the model.Model interface.
var _ model.Model = (*RuleSet)(nil)
