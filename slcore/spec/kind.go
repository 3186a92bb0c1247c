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
	"strconv"

	"gopkg.in/yaml.v3"

	"slml.dev/slmlv/slcore/errors"
	"slml.dev/slmlv/slcore/model"
)

// RuleKind identifies the predicate behind an invariant rule.
//
// Rules are data: a rule set binds an ordered list of (kind, reason code,
// parameters) triples, and each kind maps to exactly one total, pure
// predicate in the invariant engine. The kind vocabulary is closed per
// engine build; a rule set naming a kind the engine does not know fails
// validation at load time rather than at evaluation time.
type RuleKind int

const (
	// KindUnspecified is the zero value. It is not a usable rule kind;
	// rules must declare one of the concrete kinds below.
	KindUnspecified RuleKind = iota

	// KindRequiredSections checks that the manifest declares its user and
	// beneficiary entity sets.
	KindRequiredSections

	// KindRoleIntegrity checks that declared entities carry a role and
	// unique identifiers.
	KindRoleIntegrity

	// KindUserBeneficiaryAlignment checks that the declared user and
	// beneficiary entity sets are equal as sets.
	KindUserBeneficiaryAlignment

	// KindOwnershipExplicit checks that ownership is declared explicit.
	KindOwnershipExplicit

	// KindControlDirection checks that control runs from designer to user.
	KindControlDirection

	// KindConsentExplicit checks that consent is declared explicit.
	KindConsentExplicit

	// KindImpliedConsentAbsent checks that implied consent is declared
	// absent, not merely undeclared.
	KindImpliedConsentAbsent

	// KindRenegotiationEnabled checks that consent renegotiation on change
	// is enabled.
	KindRenegotiationEnabled

	// KindConsentExpiry checks that consent declares an expiry instant.
	KindConsentExpiry

	// KindWeightNormalization checks that inconvenience weights cover the
	// dimension vocabulary and sum to one within epsilon.
	KindWeightNormalization

	// KindBurdenCoverage checks that every user and beneficiary entity has
	// an expected burden entry.
	KindBurdenCoverage

	// KindCorruptionRatio checks the user-to-beneficiary weighted burden
	// ratio against the parameterized maximum.
	KindCorruptionRatio

	// KindSymmetryTolerance checks the relative burden spread between user
	// and beneficiary entities against the parameterized tolerance.
	KindSymmetryTolerance

	// KindObligationDirection checks that obligations run between declared
	// entities.
	KindObligationDirection

	// KindObligationConsent checks that consent-requiring obligations stay
	// revocable.
	KindObligationConsent

	// KindObligationExpiry checks that every obligation declares an expiry.
	KindObligationExpiry

	// KindUserCoercion checks that no user entity bears an irrevocable
	// consent-requiring obligation.
	KindUserCoercion
)

// ruleKindStrings maps each kind to its canonical wire representation.
var ruleKindStrings = map[RuleKind]string{
	KindUnspecified:              "",
	KindRequiredSections:         "required-sections",
	KindRoleIntegrity:            "role-integrity",
	KindUserBeneficiaryAlignment: "user-beneficiary-alignment",
	KindOwnershipExplicit:        "ownership-explicit",
	KindControlDirection:         "control-direction",
	KindConsentExplicit:          "consent-explicit",
	KindImpliedConsentAbsent:     "implied-consent-absent",
	KindRenegotiationEnabled:     "renegotiation-enabled",
	KindConsentExpiry:            "consent-expiry",
	KindWeightNormalization:      "weight-normalization",
	KindBurdenCoverage:           "burden-coverage",
	KindCorruptionRatio:          "corruption-ratio",
	KindSymmetryTolerance:        "symmetry-tolerance",
	KindObligationDirection:      "obligation-direction",
	KindObligationConsent:        "obligation-consent",
	KindObligationExpiry:         "obligation-expiry",
	KindUserCoercion:             "user-coercion",
}

// ParseRuleKind converts a wire representation into a RuleKind. The empty
// string parses to KindUnspecified; any other unknown string is an error.
func ParseRuleKind(s string) (RuleKind, error) {
	for kind, str := range ruleKindStrings {
		if s == str {
			return kind, nil
		}
	}
	return KindUnspecified, &errors.ParseError{Type: "RuleKind", Value: s}
}

// String returns the canonical wire representation of the kind, or
// "RuleKind(N)" for values outside the known set.
func (k RuleKind) String() string {
	if s, ok := ruleKindStrings[k]; ok {
		return s
	}
	return "RuleKind(" + strconv.Itoa(int(k)) + ")"
}

// Valid reports whether the kind is one of the defined constants,
// including KindUnspecified.
func (k RuleKind) Valid() bool {
	_, ok := ruleKindStrings[k]
	return ok
}

// TypeName returns "RuleKind". This method implements part of the
// model.Model interface.
func (k RuleKind) TypeName() string { return "RuleKind" }

// Redacted returns the same representation as String. This method
// implements part of the model.Model interface.
func (k RuleKind) Redacted() string { return k.String() }

// IsZero reports whether the kind is KindUnspecified. This method
// implements part of the model.Model interface.
func (k RuleKind) IsZero() bool { return k == KindUnspecified }

// Validate returns nil if the kind is a defined constant.
func (k RuleKind) Validate() error {
	if !k.Valid() {
		return &errors.ValidationError{
			Type:   "RuleKind",
			Reason: "unknown rule kind",
			Value:  int(k),
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler for RuleKind.
func (k RuleKind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, &errors.MarshalError{Type: "RuleKind", Value: int(k)}
	}
	return json.Marshal(k.String())
}

// UnmarshalJSON implements json.Unmarshaler for RuleKind.
func (k *RuleKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "RuleKind", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseRuleKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for RuleKind.
func (k RuleKind) MarshalYAML() (any, error) {
	if !k.Valid() {
		return nil, &errors.MarshalError{Type: "RuleKind", Value: int(k)}
	}
	return k.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for RuleKind.
func (k *RuleKind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "RuleKind", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseRuleKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Compile-time check that RuleKind implements the model.Model interface.
var _ model.Model = (*RuleKind)(nil)
